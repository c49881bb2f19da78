package transcript_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/spacemeshos/go-deliberation/common/types"
	"github.com/spacemeshos/go-deliberation/deliberation"
	"github.com/spacemeshos/go-deliberation/log/logtest"
	"github.com/spacemeshos/go-deliberation/profile"
	"github.com/spacemeshos/go-deliberation/transcript"
)

type counts = map[types.Alternative]int

var ab = types.MustUniverse("a", "b")

func deliberate(tb testing.TB, cfg deliberation.Config, disposition types.Disposition, agents ...counts) *deliberation.Result {
	tb.Helper()
	p, err := profile.FromCounts(ab, disposition, agents...)
	require.NoError(tb, err)
	rst, err := deliberation.New(
		deliberation.WithConfig(cfg),
		deliberation.WithLogger(logtest.New(tb)),
	).Run(p)
	require.NoError(tb, err)
	return rst
}

func TestAgentView(t *testing.T) {
	expected := fmt.Sprintf("%-50s[3]\n%-50s[0]\n", "01: ---a", "    b")
	require.Equal(t, expected, transcript.AgentView(1, ab, counts{"a": 3}))

	expected = fmt.Sprintf("%-50s[1]\n%-50s[2]\n", "12: -a", "    --b")
	require.Equal(t, expected, transcript.AgentView(12, ab, counts{"a": 1, "b": 2}))

	long := transcript.AgentView(3, ab, counts{"a": 60})
	require.True(t, strings.HasPrefix(long, "03: "+strings.Repeat("-", 60)+"a[60]\n"), long)
}

func TestRenderSequential(t *testing.T) {
	cfg := deliberation.DefaultConfig()
	cfg.Protocol = deliberation.Sequential
	rst := deliberate(t, cfg, types.Keen, counts{"a": 3}, counts{"b": 3}, counts{"a": 1, "b": 1})

	text := transcript.Render(rst.History)
	require.True(t, strings.HasPrefix(text, "sequential protocol\n\n\tRound 0\nInitial profile:\n\n"), text)
	require.Contains(t, text, transcript.AgentView(1, ab, counts{"a": 3}))
	require.Contains(t, text, "\tRound 1\n"+
		"Agent 1 nominates a.\n\t\t\t\tWinning: a\n"+
		"Agent 2 nominates b, discloses for b.\n\t\t\t\tWinning: a, b\n"+
		"Agent 3 nominates b, discloses for b.\n\t\t\t\tWinning: b\n"+
		"\nEnd of round winners: b.\n"+
		"\nProfile after updates:\n\n")
	require.Contains(t, text, "\tRound 4\n")
	require.NotContains(t, text, "\tRound 5\n")
	require.True(t, strings.HasSuffix(text,
		"No unhappy agents that have something to disclose. We stop.\nFinal winners: b."), text)
}

func TestRenderSimultaneous(t *testing.T) {
	t.Run("no disclosure", func(t *testing.T) {
		cfg := deliberation.DefaultConfig()
		rst := deliberate(t, cfg, types.Lazy, counts{"a": 2}, counts{"b": 2})

		text := transcript.Render(rst.History)
		expected := "simultaneous protocol\n\n\tRound 0\nInitial profile:\n\n" +
			transcript.AgentView(1, ab, counts{"a": 2}) + "\n" +
			transcript.AgentView(2, ab, counts{"b": 2}) + "\n" +
			"No unhappy agents that have something to disclose. We stop.\nFinal winners: a, b."
		require.Equal(t, expected, text)
	})
	t.Run("disclose all", func(t *testing.T) {
		cfg := deliberation.DefaultConfig()
		cfg.Disclosure = deliberation.DiscloseAll
		rst := deliberate(t, cfg, types.Keen, counts{"a": 3}, counts{"b": 2}, counts{"a": 1, "b": 1})

		text := transcript.Render(rst.History)
		require.Contains(t, text, "\tRound 1\nCurrent winners: a, b\n\n"+
			"Agent 1 discloses for a.\n"+
			"Agent 2 discloses for b.\n"+
			"\nProfile after updates:\n\n"+
			transcript.AgentView(1, ab, counts{"a": 3, "b": 2}))
		require.True(t, strings.HasSuffix(text, "Final winners: a."), text)
	})
}

func TestStore(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := transcript.NewStore(fs, "/data/transcripts", transcript.WithLogger(logtest.New(t)))

	names, err := store.List()
	require.NoError(t, err)
	require.Empty(t, names)

	cfg := deliberation.DefaultConfig()
	first := deliberate(t, cfg, types.Lazy, counts{"a": 2}, counts{"b": 2})
	cfg.Protocol = deliberation.Sequential
	second := deliberate(t, cfg, types.Keen, counts{"a": 3}, counts{"b": 3}, counts{"a": 1, "b": 1})

	path, err := store.Save(first)
	require.NoError(t, err)
	require.Equal(t, "/data/transcripts/simultaneous_"+first.ID.String()+".txt", path)
	_, err = store.Save(second)
	require.NoError(t, err)

	names, err = store.List()
	require.NoError(t, err)
	require.ElementsMatch(t, []string{transcript.Name(first), transcript.Name(second)}, names)

	text, err := store.Load(transcript.Name(second))
	require.NoError(t, err)
	require.Equal(t, transcript.Render(second.History), text)

	_, err = store.Load("missing.txt")
	require.ErrorIs(t, err, transcript.ErrNotFound)
}
