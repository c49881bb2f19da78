package config

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/spacemeshos/go-deliberation/common/types"
)

func TestValidateProfile(t *testing.T) {
	for _, tc := range []struct {
		desc  string
		data  string
		valid bool
	}{
		{"valid", `{"universe": ["a", "b"], "agents": [{"disposition": "keen", "evidence": {"a": 3}}]}`, true},
		{"without evidence", `{"universe": ["a"], "agents": [{"id": 4, "disposition": "lazy"}]}`, true},
		{"not json", `universe: [a]`, false},
		{"empty universe", `{"universe": [], "agents": [{"disposition": "keen"}]}`, false},
		{"duplicate alternative", `{"universe": ["a", "a"], "agents": [{"disposition": "keen"}]}`, false},
		{"no agents", `{"universe": ["a"], "agents": []}`, false},
		{"unknown disposition", `{"universe": ["a"], "agents": [{"disposition": "eager"}]}`, false},
		{"negative evidence", `{"universe": ["a"], "agents": [{"disposition": "keen", "evidence": {"a": -1}}]}`, false},
		{"zero id", `{"universe": ["a"], "agents": [{"id": 0, "disposition": "keen"}]}`, false},
		{"unknown field", `{"universe": ["a"], "agents": [{"disposition": "keen", "rank": 1}]}`, false},
	} {
		t.Run(tc.desc, func(t *testing.T) {
			err := ValidateProfile([]byte(tc.data))
			if tc.valid {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
			}
		})
	}
}

func TestLoadProfile(t *testing.T) {
	fs := afero.NewMemMapFs()
	data := `{
  "universe": ["x", "y"],
  "agents": [
    {"disposition": "lazy", "evidence": {"x": 2}},
    {"id": 9, "disposition": "keen", "evidence": {"x": 1, "y": 5}}
  ]
}`
	require.NoError(t, afero.WriteFile(fs, "/profile.json", []byte(data), 0o600))

	cfg := DefaultConfig()
	require.NoError(t, cfg.LoadProfile(fs, "/profile.json"))
	require.Equal(t, []types.Alternative{"x", "y"}, cfg.Universe)
	p, err := cfg.Profile()
	require.NoError(t, err)
	require.Equal(t, []types.AgentID{1, 9}, p.IDs())
	a, err := p.Agent(9)
	require.NoError(t, err)
	require.Equal(t, types.Keen, a.Disposition())
	require.Equal(t, map[types.Alternative]int{"x": 1, "y": 5}, a.Counts())

	require.Error(t, cfg.LoadProfile(fs, "/missing.json"))
	require.NoError(t, afero.WriteFile(fs, "/bad.json", []byte(`{"universe": ["x"]}`), 0o600))
	require.ErrorContains(t, cfg.LoadProfile(fs, "/bad.json"), "validate profile")
}
