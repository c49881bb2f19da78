package plurality_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spacemeshos/go-deliberation/common/types"
	"github.com/spacemeshos/go-deliberation/plurality"
	"github.com/spacemeshos/go-deliberation/profile"
)

var abc = types.MustUniverse("a", "b", "c")

func TestWinners(t *testing.T) {
	for _, tc := range []struct {
		desc    string
		counts  []map[types.Alternative]int
		scores  map[types.Alternative]int
		winners types.Alternatives
	}{
		{
			desc: "single winner",
			counts: []map[types.Alternative]int{
				{"a": 3},
				{"a": 1, "b": 0},
				{"b": 2},
			},
			scores:  map[types.Alternative]int{"a": 2, "b": 1, "c": 0},
			winners: types.NewAlternatives("a"),
		},
		{
			desc: "tie",
			counts: []map[types.Alternative]int{
				{"a": 2},
				{"b": 2},
			},
			scores:  map[types.Alternative]int{"a": 1, "b": 1, "c": 0},
			winners: types.NewAlternatives("a", "b"),
		},
		{
			desc: "agent without evidence votes for everything",
			counts: []map[types.Alternative]int{
				{"c": 1},
				nil,
			},
			scores:  map[types.Alternative]int{"a": 1, "b": 1, "c": 2},
			winners: types.NewAlternatives("c"),
		},
		{
			desc:    "no agents",
			counts:  nil,
			scores:  map[types.Alternative]int{"a": 0, "b": 0, "c": 0},
			winners: types.NewAlternatives("a", "b", "c"),
		},
	} {
		t.Run(tc.desc, func(t *testing.T) {
			p, err := profile.FromCounts(abc, types.Keen, tc.counts...)
			require.NoError(t, err)
			require.Equal(t, tc.scores, plurality.Scores(p))
			require.Equal(t, tc.winners, plurality.Winners(p))
		})
	}
}

func TestTally(t *testing.T) {
	tally := plurality.NewTally(abc)
	require.Equal(t, types.NewAlternatives("a", "b", "c"), tally.Winners())
	require.Zero(t, tally.Nominations())

	tally.Add(types.NewAlternatives("b"))
	require.Equal(t, types.NewAlternatives("b"), tally.Winners())

	tally.Add(types.NewAlternatives("a", "c"))
	tally.Add(types.NewAlternatives("a"))
	require.Equal(t, types.NewAlternatives("a"), tally.Winners())
	require.Equal(t, 3, tally.Nominations())

	counts := tally.Counts()
	require.Equal(t, map[types.Alternative]int{"a": 2, "b": 1, "c": 1}, counts)
	counts["b"] = 10
	require.Equal(t, types.NewAlternatives("a"), tally.Winners())

	tally.Add(types.NewAlternatives("z"))
	require.Equal(t, map[types.Alternative]int{"a": 2, "b": 1, "c": 1}, tally.Counts())
}
