// Package deliberation runs disclosure protocols over a profile of agents
// until no agent is willing and able to disclose more evidence.
package deliberation

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/spacemeshos/go-deliberation/common/types"
	"github.com/spacemeshos/go-deliberation/plurality"
	"github.com/spacemeshos/go-deliberation/profile"
)

type Opt func(*Deliberation)

func WithConfig(cfg Config) Opt {
	return func(d *Deliberation) {
		d.config = cfg
	}
}

func WithLogger(logger *zap.Logger) Opt {
	return func(d *Deliberation) {
		d.log = logger
	}
}

func WithTracer(tracer Tracer) Opt {
	return func(d *Deliberation) {
		d.tracer = tracer
	}
}

// Deliberation is the protocol driver. It is safe to run it concurrently,
// every run works on its own copy of the profile.
type Deliberation struct {
	config Config
	log    *zap.Logger
	tracer Tracer
}

func New(opts ...Opt) *Deliberation {
	d := &Deliberation{
		config: DefaultConfig(),
		log:    zap.NewNop(),
		tracer: noopTracer{},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Deliberation) Config() Config {
	return d.config
}

// Result of a completed run.
type Result struct {
	ID           uuid.UUID
	Protocol     Protocol
	Disclosure   Policy
	FinalWinners types.Alternatives
	// Rounds excludes record 0.
	Rounds  int
	History *History
	// Profile is the terminal profile. The input profile is not modified.
	Profile *profile.Profile
}

func (r *Result) MarshalLogObject(encoder zapcore.ObjectEncoder) error {
	encoder.AddString("id", r.ID.String())
	encoder.AddString("protocol", r.Protocol.String())
	encoder.AddString("disclosure", r.Disclosure.String())
	encoder.AddArray("winners", r.FinalWinners)
	encoder.AddInt("rounds", r.Rounds)
	return nil
}

// Run deliberates over a copy of p with the configured protocol.
func (d *Deliberation) Run(p *profile.Profile) (*Result, error) {
	if p == nil {
		return nil, ErrNilProfile
	}
	if err := d.config.Validate(); err != nil {
		return nil, err
	}
	s := &session{
		id:      uuid.New(),
		config:  d.config,
		tracer:  d.tracer,
		profile: p.Clone(),
		public:  profile.NewPublic(p.Universe()),
		history: newHistory(d.config, p),
	}
	s.log = d.log.With(
		zap.Stringer("run", s.id),
		zap.Stringer("protocol", d.config.Protocol),
	)

	initial := plurality.Winners(s.profile)
	s.record(RoundRecord{
		WinnersAtStart: initial,
		WinnersAtEnd:   initial,
		Disclosures:    map[types.AgentID]profile.Evidence{},
		Nominations:    map[types.AgentID]types.Alternatives{},
		Evidence:       s.profile.Snapshot(),
	})

	var (
		winners types.Alternatives
		err     error
	)
	switch d.config.Protocol {
	case Simultaneous:
		winners, err = s.simultaneous()
	case Sequential:
		winners, err = s.sequential()
	}
	if err != nil {
		return nil, fmt.Errorf("%s run %s: %w", d.config.Protocol, s.id, err)
	}

	rst := &Result{
		ID:           s.id,
		Protocol:     d.config.Protocol,
		Disclosure:   d.config.Disclosure,
		FinalWinners: winners,
		Rounds:       s.history.Len() - 1,
		History:      s.history,
		Profile:      s.profile,
	}
	runCounter.WithLabelValues(d.config.Protocol.String()).Inc()
	roundsHistogram.WithLabelValues(d.config.Protocol.String()).Observe(float64(rst.Rounds))
	s.log.Debug("deliberation completed", zap.Inline(rst))
	return rst, nil
}

// session is the state owned by a single run.
type session struct {
	id      uuid.UUID
	config  Config
	log     *zap.Logger
	tracer  Tracer
	profile *profile.Profile
	public  *profile.Public
	history *History
}

func (s *session) record(r RoundRecord) {
	s.history.append(r)
	r.Index = s.history.Len() - 1
	if n := r.DisclosedItems(); n > 0 {
		disclosedCounter.WithLabelValues(s.config.Protocol.String()).Add(float64(n))
	}
	level := zapcore.DebugLevel
	if s.config.LogRounds {
		level = zapcore.InfoLevel
	}
	if ce := s.log.Check(level, "round completed"); ce != nil {
		ce.Write(zap.Inline(&r))
	}
	s.tracer.OnRound(r)
}

// disclose makes items public and adds them to the evidence of every agent.
// For the discloser the update is a no-op.
func (s *session) disclose(x types.Alternative, items types.ItemSet) error {
	if err := s.public.Disclose(x, items...); err != nil {
		return err
	}
	for _, a := range s.profile.Agents() {
		if err := a.Learn(x, items...); err != nil {
			return err
		}
	}
	return nil
}
