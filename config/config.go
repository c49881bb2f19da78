// Package config contains the configuration of the deliberate command.
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/spacemeshos/go-deliberation/common/types"
	"github.com/spacemeshos/go-deliberation/deliberation"
	"github.com/spacemeshos/go-deliberation/experiment"
	"github.com/spacemeshos/go-deliberation/log"
	"github.com/spacemeshos/go-deliberation/profile"
)

var (
	ErrNoAgents     = errors.New("profile has no agents")
	ErrNoConfigFile = errors.New("config file not found")
	ErrNoPushJob    = errors.New("metrics push requires a job name")
)

// Config is the top level configuration.
type Config struct {
	// Preset selects the base values that the config file overrides.
	Preset string `mapstructure:"preset"`

	Universe []types.Alternative `mapstructure:"universe"`
	Agents   []AgentConfig       `mapstructure:"agents"`
	// ProfileFile is a json profile document that replaces Universe and Agents.
	ProfileFile string `mapstructure:"profile-file"`

	Deliberation deliberation.Config `mapstructure:"deliberation"`
	Sweep        experiment.Config   `mapstructure:"sweep"`

	// Transcripts is the directory run transcripts are stored in.
	// Empty disables storage.
	Transcripts string `mapstructure:"transcripts"`
	// Output is the file sweep results are written to. Empty writes to stdout.
	Output string `mapstructure:"output"`

	Metrics MetricsConfig `mapstructure:"metrics"`
	LOGGING log.Config    `mapstructure:"logging"`
}

// AgentConfig describes one agent of a profile by its evidence counts.
type AgentConfig struct {
	// ID defaults to the position of the agent, starting from 1.
	ID          types.AgentID             `mapstructure:"id"`
	Disposition types.Disposition         `mapstructure:"disposition"`
	Evidence    map[types.Alternative]int `mapstructure:"evidence"`
}

type MetricsConfig struct {
	// Listen serves metrics on this address while the command runs.
	Listen string `mapstructure:"listen"`
	// Push sends metrics to a pushgateway url once the command completes.
	Push    string `mapstructure:"push"`
	PushJob string `mapstructure:"push-job"`
}

func DefaultConfig() Config {
	return Config{
		Universe: []types.Alternative{"a", "b"},
		Agents: []AgentConfig{
			{Disposition: types.Keen, Evidence: map[types.Alternative]int{"a": 3}},
			{Disposition: types.Keen, Evidence: map[types.Alternative]int{"b": 3}},
			{Disposition: types.Keen, Evidence: map[types.Alternative]int{"a": 1, "b": 1}},
		},
		Deliberation: deliberation.DefaultConfig(),
		Sweep:        experiment.DefaultConfig(),
		Metrics:      MetricsConfig{PushJob: "deliberate"},
		LOGGING:      log.DefaultConfig(),
	}
}

// Profile builds the configured profile.
func (cfg *Config) Profile() (*profile.Profile, error) {
	universe, err := types.NewUniverse(cfg.Universe...)
	if err != nil {
		return nil, err
	}
	if len(cfg.Agents) == 0 {
		return nil, ErrNoAgents
	}
	agents := make([]*profile.Agent, 0, len(cfg.Agents))
	for i, ac := range cfg.Agents {
		id := ac.ID
		if id == 0 {
			id = types.AgentID(i + 1)
		}
		a, err := profile.NewAgentFromCounts(universe, id, ac.Disposition, ac.Evidence)
		if err != nil {
			return nil, fmt.Errorf("agent %d: %w", id, err)
		}
		agents = append(agents, a)
	}
	return profile.New(universe, agents...)
}

func (cfg *Config) Validate() error {
	if err := cfg.Deliberation.Validate(); err != nil {
		return err
	}
	if err := cfg.Sweep.Validate(); err != nil {
		return err
	}
	for i, ac := range cfg.Agents {
		if !ac.Disposition.Valid() {
			return fmt.Errorf("agent %d: %w: %s", i+1, types.ErrUnknownDisposition, ac.Disposition)
		}
	}
	if cfg.Metrics.Push != "" && cfg.Metrics.PushJob == "" {
		return ErrNoPushJob
	}
	return nil
}

// LoadConfig reads the config file at path into vip.
// An empty path leaves vip untouched.
func LoadConfig(path string, vip *viper.Viper) error {
	if path == "" {
		return nil
	}
	vip.SetConfigFile(path)
	if err := vip.ReadInConfig(); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrNoConfigFile, path)
		}
		return fmt.Errorf("read config %s: %w", path, err)
	}
	return nil
}

// Decode unmarshals everything loaded into vip over cfg.
// Values missing from vip keep their values in cfg.
func Decode(vip *viper.Viper, cfg *Config) error {
	hook := mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
		mapstructure.TextUnmarshallerHookFunc(),
	)
	opts := []viper.DecoderConfigOption{
		viper.DecodeHook(hook),
		WithZeroFields(),
		WithErrorUnused(),
	}
	if err := vip.Unmarshal(cfg, opts...); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}
	return nil
}

func WithZeroFields() viper.DecoderConfigOption {
	return func(cfg *mapstructure.DecoderConfig) {
		cfg.ZeroFields = true
	}
}

func WithErrorUnused() viper.DecoderConfigOption {
	return func(cfg *mapstructure.DecoderConfig) {
		cfg.ErrorUnused = true
	}
}
