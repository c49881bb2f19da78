package experiment

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap/zapcore"

	"github.com/spacemeshos/go-deliberation/common/types"
	"github.com/spacemeshos/go-deliberation/deliberation"
	"github.com/spacemeshos/go-deliberation/partition"
)

var ErrInvalidConfig = errors.New("invalid sweep config")

// Gap offsets share bounds from the even share of an agent.
type Gap struct {
	Below int `mapstructure:"below"`
	Above int `mapstructure:"above"`
	Start int `mapstructure:"start"`
}

// Spread describes how unevenly evidence is split among agents.
type Spread struct {
	Name   string `mapstructure:"name"`
	Target Gap    `mapstructure:"target"`
	Rival  Gap    `mapstructure:"rival"`
}

// Bounds for the target and the rival shares when agents split target and
// rival evidence. Both upper bounds are offsets from the even target share,
// so a rival share may grow as large as a target share. Lower bounds and
// start shares are never negative.
func (s Spread) Bounds(target, rival, agents int) (partition.Bounds, partition.Bounds) {
	ts, rs := target/agents, rival/agents
	return partition.Bounds{
			Min:   max(ts-s.Target.Below, 0),
			Max:   ts + s.Target.Above,
			Start: max(ts-s.Target.Start, 0),
		}, partition.Bounds{
			Min:   max(rs-s.Rival.Below, 0),
			Max:   ts + s.Rival.Above,
			Start: max(rs-s.Rival.Start, 0),
		}
}

type Config struct {
	// Trials per point.
	Trials int `mapstructure:"trials"`
	// Agents lists profile sizes.
	Agents []int             `mapstructure:"agents"`
	Target types.Alternative `mapstructure:"target"`
	Rival  types.Alternative `mapstructure:"rival"`
	// TargetFrom and TargetTo bound the amount of target evidence, inclusive.
	TargetFrom    int                     `mapstructure:"target-from"`
	TargetTo      int                     `mapstructure:"target-to"`
	RivalEvidence int                     `mapstructure:"rival-evidence"`
	Protocols     []deliberation.Protocol `mapstructure:"protocols"`
	Dispositions  []types.Disposition     `mapstructure:"dispositions"`
	Disclosure    deliberation.Policy     `mapstructure:"disclosure"`
	Spreads       []Spread                `mapstructure:"spreads"`
	Algorithm     partition.Algorithm     `mapstructure:"algorithm"`
	Seed          int64                   `mapstructure:"seed"`
	// Workers limits concurrent trials. Zero uses one worker per CPU.
	Workers int `mapstructure:"workers"`
	// ProgressInterval between progress logs. Zero disables them.
	ProgressInterval time.Duration `mapstructure:"progress-interval"`
}

// DefaultConfig compares both protocols with lazy and keen agents while the
// evidence for the target grows past a fixed amount of rival evidence.
func DefaultConfig() Config {
	return Config{
		Trials:        200,
		Agents:        []int{10},
		Target:        "a",
		Rival:         "b",
		TargetFrom:    31,
		TargetTo:      100,
		RivalEvidence: 30,
		Protocols:     []deliberation.Protocol{deliberation.Simultaneous, deliberation.Sequential},
		Dispositions:  []types.Disposition{types.Lazy, types.Keen},
		Disclosure:    deliberation.DiscloseOne,
		Spreads: []Spread{{
			Name:   "narrow",
			Target: Gap{Below: 2, Above: 2, Start: 1},
			Rival:  Gap{Below: 2, Above: 2, Start: 1},
		}},
		Algorithm:        partition.Deviate,
		Seed:             1,
		ProgressInterval: 10 * time.Second,
	}
}

func (cfg *Config) Validate() error {
	switch {
	case cfg.Trials < 1:
		return fmt.Errorf("%w: trials must be positive, got %d", ErrInvalidConfig, cfg.Trials)
	case len(cfg.Agents) == 0:
		return fmt.Errorf("%w: no profile sizes", ErrInvalidConfig)
	case cfg.Target == "" || cfg.Rival == "":
		return fmt.Errorf("%w: target and rival must be set", ErrInvalidConfig)
	case cfg.Target == cfg.Rival:
		return fmt.Errorf("%w: target and rival are both %q", ErrInvalidConfig, cfg.Target)
	case cfg.TargetFrom < 0 || cfg.TargetTo < cfg.TargetFrom:
		return fmt.Errorf("%w: target evidence range [%d, %d]", ErrInvalidConfig, cfg.TargetFrom, cfg.TargetTo)
	case cfg.RivalEvidence < 0:
		return fmt.Errorf("%w: negative rival evidence %d", ErrInvalidConfig, cfg.RivalEvidence)
	case len(cfg.Protocols) == 0:
		return fmt.Errorf("%w: no protocols", ErrInvalidConfig)
	case len(cfg.Dispositions) == 0:
		return fmt.Errorf("%w: no dispositions", ErrInvalidConfig)
	case len(cfg.Spreads) == 0:
		return fmt.Errorf("%w: no spreads", ErrInvalidConfig)
	case cfg.Workers < 0:
		return fmt.Errorf("%w: negative workers %d", ErrInvalidConfig, cfg.Workers)
	}
	for _, n := range cfg.Agents {
		if n < 1 {
			return fmt.Errorf("%w: profile size %d", ErrInvalidConfig, n)
		}
	}
	for _, p := range cfg.Protocols {
		if !p.Valid() {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, deliberation.ErrUnknownProtocol)
		}
	}
	for _, d := range cfg.Dispositions {
		if !d.Valid() {
			return fmt.Errorf("%w: %w: %s", ErrInvalidConfig, types.ErrUnknownDisposition, d)
		}
	}
	if !cfg.Disclosure.Valid() {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, deliberation.ErrUnknownDisclosure)
	}
	return nil
}

func (cfg *Config) MarshalLogObject(encoder zapcore.ObjectEncoder) error {
	encoder.AddInt("trials", cfg.Trials)
	encoder.AddString("target", string(cfg.Target))
	encoder.AddString("rival", string(cfg.Rival))
	encoder.AddInt("target from", cfg.TargetFrom)
	encoder.AddInt("target to", cfg.TargetTo)
	encoder.AddInt("rival evidence", cfg.RivalEvidence)
	encoder.AddString("algorithm", cfg.Algorithm.String())
	encoder.AddString("disclosure", cfg.Disclosure.String())
	encoder.AddInt64("seed", cfg.Seed)
	encoder.AddInt("spreads", len(cfg.Spreads))
	return nil
}
