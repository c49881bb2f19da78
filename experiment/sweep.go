// Package experiment sweeps deliberation runs over randomly generated profiles
// and aggregates how often the alternative with more evidence wins.
package experiment

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"github.com/spacemeshos/go-deliberation/common/types"
	"github.com/spacemeshos/go-deliberation/deliberation"
	"github.com/spacemeshos/go-deliberation/hash"
	"github.com/spacemeshos/go-deliberation/partition"
	"github.com/spacemeshos/go-deliberation/profile"
)

var errShares = errors.New("partitioner returned wrong number of shares")

// Point is one combination of sweep parameters with its aggregated trials.
type Point struct {
	Protocol       deliberation.Protocol
	Disposition    types.Disposition
	Agents         int
	Spread         string
	TargetEvidence int

	Trials int
	// Successes counts trials that ended with the target as the only winner.
	Successes int
	// Infeasible counts trials without a valid evidence split.
	Infeasible int
	// Rounds sums rounds over feasible trials.
	Rounds int
}

// Feasible is the number of trials that ran.
func (p Point) Feasible() int {
	return p.Trials - p.Infeasible
}

// SuccessRate over feasible trials.
func (p Point) SuccessRate() float64 {
	if p.Feasible() == 0 {
		return 0
	}
	return float64(p.Successes) / float64(p.Feasible())
}

// MeanRounds over feasible trials.
func (p Point) MeanRounds() float64 {
	if p.Feasible() == 0 {
		return 0
	}
	return float64(p.Rounds) / float64(p.Feasible())
}

func (p *Point) MarshalLogObject(encoder zapcore.ObjectEncoder) error {
	encoder.AddString("protocol", p.Protocol.String())
	encoder.AddString("disposition", p.Disposition.String())
	encoder.AddInt("agents", p.Agents)
	encoder.AddString("spread", p.Spread)
	encoder.AddInt("target evidence", p.TargetEvidence)
	encoder.AddInt("successes", p.Successes)
	encoder.AddInt("infeasible", p.Infeasible)
	encoder.AddFloat64("success rate", p.SuccessRate())
	return nil
}

type outcome struct {
	infeasible bool
	success    bool
	rounds     int
}

type Opt func(*Sweep)

func WithLogger(logger *zap.Logger) Opt {
	return func(s *Sweep) {
		s.log = logger
	}
}

// WithPartitioner overrides the configured partition algorithm.
func WithPartitioner(p Partitioner) Opt {
	return func(s *Sweep) {
		s.partitioner = p
	}
}

func WithClock(clock clockwork.Clock) Opt {
	return func(s *Sweep) {
		s.clock = clock
	}
}

// Sweep runs every trial of every point of a config.
type Sweep struct {
	cfg         Config
	log         *zap.Logger
	clock       clockwork.Clock
	partitioner Partitioner
	universe    types.Universe
}

func New(cfg Config, opts ...Opt) (*Sweep, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	universe, err := types.NewUniverse(cfg.Target, cfg.Rival)
	if err != nil {
		return nil, err
	}
	s := &Sweep{
		cfg:         cfg,
		log:         zap.NewNop(),
		clock:       clockwork.NewRealClock(),
		partitioner: cfg.Algorithm,
		universe:    universe,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Points returns the sweep grid without results, in the order Run reports it.
func (s *Sweep) Points() []Point {
	var points []Point
	for _, protocol := range s.cfg.Protocols {
		for _, disposition := range s.cfg.Dispositions {
			for _, spread := range s.cfg.Spreads {
				for _, agents := range s.cfg.Agents {
					for evidence := s.cfg.TargetFrom; evidence <= s.cfg.TargetTo; evidence++ {
						points = append(points, Point{
							Protocol:       protocol,
							Disposition:    disposition,
							Agents:         agents,
							Spread:         spread.Name,
							TargetEvidence: evidence,
							Trials:         s.cfg.Trials,
						})
					}
				}
			}
		}
	}
	return points
}

// Run executes all trials and returns the aggregated points.
// Trial i of a point sees the same profile under every protocol and
// disposition, so points differ only by how the profile is deliberated.
func (s *Sweep) Run(ctx context.Context) ([]Point, error) {
	points := s.Points()
	spreads := make(map[string]int, len(s.cfg.Spreads))
	for i, spread := range s.cfg.Spreads {
		spreads[spread.Name] = i
	}
	outcomes := make([][]outcome, len(points))
	for i := range outcomes {
		outcomes[i] = make([]outcome, s.cfg.Trials)
	}
	total := len(points) * s.cfg.Trials
	s.log.Info("sweep started",
		zap.Inline(&s.cfg),
		zap.Int("points", len(points)),
		zap.Int("total trials", total),
	)
	start := s.clock.Now()

	var (
		done     atomic.Int64
		wg       sync.WaitGroup
		progress = make(chan struct{})
	)
	if s.cfg.ProgressInterval > 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.progress(progress, &done, total)
		}()
	}
	defer func() {
		close(progress)
		wg.Wait()
	}()

	workers := s.cfg.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for i := range points {
		for trial := range s.cfg.Trials {
			eg.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				o, err := s.trial(points[i], spreads[points[i].Spread], trial)
				if err != nil {
					return fmt.Errorf("trial %d of %s/%s with %d agents and %d target evidence: %w",
						trial, points[i].Protocol, points[i].Disposition,
						points[i].Agents, points[i].TargetEvidence, err)
				}
				outcomes[i][trial] = o
				done.Add(1)
				return nil
			})
		}
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	for i := range points {
		label := points[i].Protocol.String()
		for _, o := range outcomes[i] {
			switch {
			case o.infeasible:
				points[i].Infeasible++
				trialCounter.WithLabelValues(label, infeasibleTrials).Inc()
			case o.success:
				points[i].Successes++
				points[i].Rounds += o.rounds
				trialCounter.WithLabelValues(label, successTrials).Inc()
			default:
				points[i].Rounds += o.rounds
				trialCounter.WithLabelValues(label, failedTrials).Inc()
			}
		}
		s.log.Debug("point aggregated", zap.Inline(&points[i]))
	}
	s.log.Info("sweep completed",
		zap.Int("points", len(points)),
		zap.Duration("duration", s.clock.Since(start)),
	)
	return points, nil
}

// progress logs the number of finished trials on every tick until stop is closed.
func (s *Sweep) progress(stop <-chan struct{}, done *atomic.Int64, total int) {
	ticker := s.clock.NewTicker(s.cfg.ProgressInterval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.Chan():
			s.log.Info("sweep progress",
				zap.Int64("done", done.Load()),
				zap.Int("total", total),
			)
		}
	}
}

// seed of a trial ignores protocol and disposition.
func (s *Sweep) seed(spread int, pt Point, trial int) int64 {
	return int64(hash.Uint64(
		uint64(s.cfg.Seed),
		uint64(spread),
		uint64(pt.Agents),
		uint64(pt.TargetEvidence),
		uint64(trial),
	))
}

func (s *Sweep) trial(pt Point, spread, trial int) (outcome, error) {
	rng := partition.NewSource(s.seed(spread, pt, trial))
	tb, rb := s.cfg.Spreads[spread].Bounds(pt.TargetEvidence, s.cfg.RivalEvidence, pt.Agents)
	target, err := s.split(rng, pt.TargetEvidence, pt.Agents, tb)
	if err != nil {
		return outcome{infeasible: errors.Is(err, partition.ErrInfeasible)}, ignoreInfeasible(err)
	}
	rival, err := s.split(rng, s.cfg.RivalEvidence, pt.Agents, rb)
	if err != nil {
		return outcome{infeasible: errors.Is(err, partition.ErrInfeasible)}, ignoreInfeasible(err)
	}

	agents := make([]*profile.Agent, 0, pt.Agents)
	for i := range pt.Agents {
		a, err := profile.NewAgentFromCounts(s.universe, types.AgentID(i+1), pt.Disposition,
			map[types.Alternative]int{s.cfg.Target: target[i], s.cfg.Rival: rival[i]})
		if err != nil {
			return outcome{}, err
		}
		agents = append(agents, a)
	}
	p, err := profile.New(s.universe, agents...)
	if err != nil {
		return outcome{}, err
	}
	d := deliberation.New(
		deliberation.WithConfig(deliberation.Config{Protocol: pt.Protocol, Disclosure: s.cfg.Disclosure}),
		deliberation.WithLogger(s.log.Named("deliberation")),
	)
	rst, err := d.Run(p)
	if err != nil {
		return outcome{}, err
	}
	return outcome{
		success: rst.FinalWinners.Equal(types.NewAlternatives(s.cfg.Target)),
		rounds:  rst.Rounds,
	}, nil
}

func (s *Sweep) split(rng *rand.Rand, total, n int, b partition.Bounds) ([]int, error) {
	shares, err := s.partitioner.Partition(rng, total, n, b)
	if err != nil {
		return nil, err
	}
	if len(shares) != n {
		return nil, fmt.Errorf("%w: %d for %d agents", errShares, len(shares), n)
	}
	return shares, nil
}

func ignoreInfeasible(err error) error {
	if errors.Is(err, partition.ErrInfeasible) {
		return nil
	}
	return err
}
