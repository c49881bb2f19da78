// Package profile holds the evidence model of a deliberation: agents with
// private evidence, the ordered profile of agents and the public pool of
// disclosed evidence.
package profile

import (
	"errors"
	"fmt"

	"go.uber.org/zap/zapcore"

	"github.com/spacemeshos/go-deliberation/common/types"
)

var (
	ErrDuplicateAgent     = errors.New("duplicate agent id")
	ErrAgentNotFound      = errors.New("agent not found")
	ErrUnknownAlternative = errors.New("alternative is not in the universe")
	ErrNegativeCount      = errors.New("negative evidence count")
	ErrUniverseMismatch   = errors.New("agent universe differs from profile universe")
)

// Profile is an ordered collection of agents with unique ids.
// Order is the turn order of the sequential protocol.
type Profile struct {
	universe types.Universe
	agents   []*Agent
	index    map[types.AgentID]int
}

// New validates agents and builds a profile over universe.
func New(universe types.Universe, agents ...*Agent) (*Profile, error) {
	if universe.Len() == 0 {
		return nil, types.ErrEmptyUniverse
	}
	p := &Profile{
		universe: universe,
		agents:   make([]*Agent, 0, len(agents)),
		index:    make(map[types.AgentID]int, len(agents)),
	}
	for _, a := range agents {
		if _, exist := p.index[a.ID()]; exist {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateAgent, a.ID())
		}
		if !a.Universe().Equal(universe) {
			return nil, fmt.Errorf("%w: agent %d", ErrUniverseMismatch, a.ID())
		}
		p.index[a.ID()] = len(p.agents)
		p.agents = append(p.agents, a)
	}
	return p, nil
}

// FromCounts builds a profile of agents with the same disposition, one per
// element of counts. Agent ids start from 1 in the order of counts.
func FromCounts(
	universe types.Universe,
	disposition types.Disposition,
	counts ...map[types.Alternative]int,
) (*Profile, error) {
	agents := make([]*Agent, 0, len(counts))
	for i, c := range counts {
		a, err := NewAgentFromCounts(universe, types.AgentID(i+1), disposition, c)
		if err != nil {
			return nil, err
		}
		agents = append(agents, a)
	}
	return New(universe, agents...)
}

func (p *Profile) Universe() types.Universe {
	return p.universe
}

// Agents returns agents in profile order. Agents are shared, not copied.
func (p *Profile) Agents() []*Agent {
	return append([]*Agent(nil), p.agents...)
}

// IDs returns agent ids in profile order.
func (p *Profile) IDs() []types.AgentID {
	ids := make([]types.AgentID, 0, len(p.agents))
	for _, a := range p.agents {
		ids = append(ids, a.ID())
	}
	return ids
}

// Agent looks up an agent by id.
func (p *Profile) Agent(id types.AgentID) (*Agent, error) {
	i, exist := p.index[id]
	if !exist {
		return nil, fmt.Errorf("%w: %d", ErrAgentNotFound, id)
	}
	return p.agents[i], nil
}

func (p *Profile) Len() int {
	return len(p.agents)
}

// TotalItems is the number of distinct evidence items held across all agents.
func (p *Profile) TotalItems() int {
	seen := map[types.Alternative]types.ItemSet{}
	for _, a := range p.agents {
		for x, items := range a.evidence {
			seen[x] = seen[x].Add(items...)
		}
	}
	total := 0
	for _, items := range seen {
		total += items.Len()
	}
	return total
}

// Snapshot returns a deep copy of every agent's evidence keyed by agent id.
func (p *Profile) Snapshot() map[types.AgentID]Evidence {
	rst := make(map[types.AgentID]Evidence, len(p.agents))
	for _, a := range p.agents {
		rst[a.ID()] = a.Evidence()
	}
	return rst
}

// Clone returns a profile with independent copies of every agent.
func (p *Profile) Clone() *Profile {
	rst := &Profile{
		universe: p.universe,
		agents:   make([]*Agent, 0, len(p.agents)),
		index:    make(map[types.AgentID]int, len(p.agents)),
	}
	for i, a := range p.agents {
		rst.agents = append(rst.agents, a.Clone())
		rst.index[a.ID()] = i
	}
	return rst
}

func (p *Profile) MarshalLogObject(encoder zapcore.ObjectEncoder) error {
	encoder.AddInt("agents", len(p.agents))
	return encoder.AddArray("universe", p.universe)
}
