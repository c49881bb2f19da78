package config

import (
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/spacemeshos/go-deliberation/common/types"
	"github.com/spacemeshos/go-deliberation/deliberation"
	"github.com/spacemeshos/go-deliberation/experiment"
	"github.com/spacemeshos/go-deliberation/profile"
)

func TestDefaultProfile(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	p, err := cfg.Profile()
	require.NoError(t, err)
	require.Equal(t, []types.AgentID{1, 2, 3}, p.IDs())
	a, err := p.Agent(3)
	require.NoError(t, err)
	require.Equal(t, types.Keen, a.Disposition())
	require.Equal(t, map[types.Alternative]int{"a": 1, "b": 1}, a.Counts())
}

func TestProfileErrors(t *testing.T) {
	for _, tc := range []struct {
		desc   string
		modify func(*Config)
		err    error
	}{
		{"no agents", func(c *Config) { c.Agents = nil }, ErrNoAgents},
		{"empty universe", func(c *Config) { c.Universe = nil }, types.ErrEmptyUniverse},
		{"duplicate alternative", func(c *Config) { c.Universe = []types.Alternative{"a", "a"} }, types.ErrDuplicateAlternative},
		{
			"unknown alternative",
			func(c *Config) { c.Agents[0].Evidence = map[types.Alternative]int{"z": 1} },
			profile.ErrUnknownAlternative,
		},
		{
			"unknown disposition",
			func(c *Config) { c.Agents[1].Disposition = 2 },
			types.ErrUnknownDisposition,
		},
		{
			"duplicate id",
			func(c *Config) { c.Agents[2].ID = 1 },
			profile.ErrDuplicateAgent,
		},
	} {
		t.Run(tc.desc, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.modify(&cfg)
			_, err := cfg.Profile()
			require.ErrorIs(t, err, tc.err)
		})
	}
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Metrics.Push = "http://localhost:9091"
	cfg.Metrics.PushJob = ""
	require.ErrorIs(t, cfg.Validate(), ErrNoPushJob)

	cfg = DefaultConfig()
	cfg.Sweep.Trials = 0
	require.ErrorIs(t, cfg.Validate(), experiment.ErrInvalidConfig)

	cfg = DefaultConfig()
	cfg.Sweep.Dispositions = []types.Disposition{3}
	require.ErrorIs(t, cfg.Validate(), types.ErrUnknownDisposition)
}

func TestDecodeNumericDisposition(t *testing.T) {
	vip, err := loadFromMemory(t, "/config.yaml", `
universe: [a, b]
agents:
  - disposition: 2
    evidence: {a: 3}
  - disposition: 2
    evidence: {b: 3}
  - disposition: 2
    evidence: {a: 1, b: 1}
`)
	require.NoError(t, err)
	cfg := DefaultConfig()
	require.NoError(t, Decode(vip, &cfg))
	require.Equal(t, types.Disposition(2), cfg.Agents[0].Disposition)
	require.ErrorIs(t, cfg.Validate(), types.ErrUnknownDisposition)
	_, err = cfg.Profile()
	require.ErrorIs(t, err, types.ErrUnknownDisposition)
}

const testConfig = `
universe: [x, y, z]
agents:
  - disposition: lazy
    evidence: {x: 2}
  - id: 7
    disposition: keen
    evidence: {y: 1, z: 4}
deliberation:
  protocol: seq
  disclosure: all
  log-rounds: true
sweep:
  protocols: [sequential]
  dispositions: [keen]
  algorithm: increment
  progress-interval: 5s
  spreads:
    - name: wide
      target: {below: 3, above: 4, start: 0}
      rival: {below: 1, above: 2, start: 1}
transcripts: /tmp/transcripts
logging:
  level: debug
`

func loadFromMemory(tb testing.TB, name, content string) (*viper.Viper, error) {
	tb.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(tb, afero.WriteFile(fs, name, []byte(content), 0o600))
	vip := viper.New()
	vip.SetFs(fs)
	return vip, LoadConfig(name, vip)
}

func TestDecode(t *testing.T) {
	vip, err := loadFromMemory(t, "/config.yaml", testConfig)
	require.NoError(t, err)

	cfg := DefaultConfig()
	require.NoError(t, Decode(vip, &cfg))

	require.Equal(t, []types.Alternative{"x", "y", "z"}, cfg.Universe)
	require.Equal(t, deliberation.Config{
		Protocol:   deliberation.Sequential,
		Disclosure: deliberation.DiscloseAll,
		LogRounds:  true,
	}, cfg.Deliberation)
	require.Equal(t, []deliberation.Protocol{deliberation.Sequential}, cfg.Sweep.Protocols)
	require.Equal(t, []types.Disposition{types.Keen}, cfg.Sweep.Dispositions)
	require.Equal(t, 5*time.Second, cfg.Sweep.ProgressInterval)
	require.Equal(t, []experiment.Spread{{
		Name:   "wide",
		Target: experiment.Gap{Below: 3, Above: 4},
		Rival:  experiment.Gap{Below: 1, Above: 2, Start: 1},
	}}, cfg.Sweep.Spreads)
	require.Equal(t, experiment.DefaultConfig().Trials, cfg.Sweep.Trials, "missing values keep defaults")
	require.Equal(t, "/tmp/transcripts", cfg.Transcripts)
	require.Equal(t, "debug", cfg.LOGGING.Level)
	require.Equal(t, "console", cfg.LOGGING.Encoding)

	p, err := cfg.Profile()
	require.NoError(t, err)
	require.Equal(t, []types.AgentID{1, 7}, p.IDs())
	a, err := p.Agent(7)
	require.NoError(t, err)
	require.Equal(t, types.Keen, a.Disposition())
	require.Equal(t, map[types.Alternative]int{"x": 0, "y": 1, "z": 4}, a.Counts())
}

func TestDecodeErrors(t *testing.T) {
	t.Run("unknown key", func(t *testing.T) {
		vip, err := loadFromMemory(t, "/config.yaml", "deliberation:\n  rounds: 3\n")
		require.NoError(t, err)
		cfg := DefaultConfig()
		require.ErrorContains(t, Decode(vip, &cfg), "rounds")
	})
	t.Run("unknown protocol", func(t *testing.T) {
		vip, err := loadFromMemory(t, "/config.yaml", "deliberation:\n  protocol: round-robin\n")
		require.NoError(t, err)
		cfg := DefaultConfig()
		require.ErrorContains(t, Decode(vip, &cfg), "round-robin")
	})
	t.Run("missing file", func(t *testing.T) {
		vip := viper.New()
		vip.SetFs(afero.NewMemMapFs())
		require.ErrorIs(t, LoadConfig("/missing.yaml", vip), ErrNoConfigFile)
	})
	t.Run("no file", func(t *testing.T) {
		vip := viper.New()
		require.NoError(t, LoadConfig("", vip))
		cfg := DefaultConfig()
		require.NoError(t, Decode(vip, &cfg))
		require.Equal(t, DefaultConfig(), cfg)
	})
}
