package profile

import (
	"fmt"

	"go.uber.org/zap/zapcore"

	"github.com/spacemeshos/go-deliberation/common/types"
)

// Evidence maps each alternative of a universe to the items supporting it.
type Evidence map[types.Alternative]types.ItemSet

// Clone returns a deep copy of e.
func (e Evidence) Clone() Evidence {
	rst := make(Evidence, len(e))
	for x, items := range e {
		rst[x] = items.Clone()
	}
	return rst
}

// Counts returns the number of items for every alternative.
func (e Evidence) Counts() map[types.Alternative]int {
	rst := make(map[types.Alternative]int, len(e))
	for x, items := range e {
		rst[x] = items.Len()
	}
	return rst
}

// Total is the number of items across all alternatives.
func (e Evidence) Total() int {
	total := 0
	for _, items := range e {
		total += items.Len()
	}
	return total
}

// Agent holds private evidence and a fixed disposition.
// Evidence of an agent only grows.
type Agent struct {
	id          types.AgentID
	disposition types.Disposition
	universe    types.Universe
	evidence    Evidence
}

// NewAgent creates an agent with explicit evidence items. Alternatives missing
// from evidence start with no items.
func NewAgent(
	universe types.Universe,
	id types.AgentID,
	disposition types.Disposition,
	evidence Evidence,
) (*Agent, error) {
	if universe.Len() == 0 {
		return nil, types.ErrEmptyUniverse
	}
	if !disposition.Valid() {
		return nil, fmt.Errorf("%w: agent %d has %s", types.ErrUnknownDisposition, id, disposition)
	}
	for x := range evidence {
		if !universe.Contains(x) {
			return nil, fmt.Errorf("%w: agent %d has evidence for %q", ErrUnknownAlternative, id, x)
		}
	}
	a := &Agent{
		id:          id,
		disposition: disposition,
		universe:    universe,
		evidence:    make(Evidence, universe.Len()),
	}
	for _, x := range universe.Alternatives() {
		a.evidence[x] = types.NewItemSet(evidence[x]...)
	}
	return a, nil
}

// NewAgentFromCounts creates an agent that owns counts[x] fresh items for every
// alternative x. Items are numbered from 1 in universe order, so no two items
// of the agent share a sequence number.
func NewAgentFromCounts(
	universe types.Universe,
	id types.AgentID,
	disposition types.Disposition,
	counts map[types.Alternative]int,
) (*Agent, error) {
	for x, n := range counts {
		if !universe.Contains(x) {
			return nil, fmt.Errorf("%w: agent %d has evidence for %q", ErrUnknownAlternative, id, x)
		}
		if n < 0 {
			return nil, fmt.Errorf("%w: agent %d has %d items for %q", ErrNegativeCount, id, n, x)
		}
	}
	evidence := make(Evidence, len(counts))
	seq := uint32(0)
	for _, x := range universe.Alternatives() {
		n, exist := counts[x]
		if !exist {
			continue
		}
		items := make(types.ItemSet, 0, n)
		for range n {
			seq++
			items = append(items, types.EvidenceItem{Owner: id, Seq: seq})
		}
		evidence[x] = items
	}
	return NewAgent(universe, id, disposition, evidence)
}

func (a *Agent) ID() types.AgentID {
	return a.id
}

func (a *Agent) Disposition() types.Disposition {
	return a.disposition
}

func (a *Agent) Universe() types.Universe {
	return a.universe
}

// Items returns a copy of the items the agent holds for x.
func (a *Agent) Items(x types.Alternative) types.ItemSet {
	return a.evidence[x].Clone()
}

// Count is the number of items the agent holds for x.
func (a *Agent) Count(x types.Alternative) int {
	return a.evidence[x].Len()
}

// Counts returns the number of items for every alternative.
func (a *Agent) Counts() map[types.Alternative]int {
	return a.evidence.Counts()
}

// Evidence returns a deep copy of the agent's evidence.
func (a *Agent) Evidence() Evidence {
	return a.evidence.Clone()
}

// Learn adds items to the agent's evidence for x. Items already held are ignored.
func (a *Agent) Learn(x types.Alternative, items ...types.EvidenceItem) error {
	if !a.universe.Contains(x) {
		return fmt.Errorf("%w: %q", ErrUnknownAlternative, x)
	}
	if len(items) == 0 {
		return nil
	}
	a.evidence[x] = a.evidence[x].Add(items...)
	return nil
}

// Clone returns an independent copy of the agent.
func (a *Agent) Clone() *Agent {
	return &Agent{
		id:          a.id,
		disposition: a.disposition,
		universe:    a.universe,
		evidence:    a.evidence.Clone(),
	}
}

func (a *Agent) MarshalLogObject(encoder zapcore.ObjectEncoder) error {
	encoder.AddInt("id", int(a.id))
	encoder.AddString("disposition", a.disposition.String())
	return encoder.AddObject("counts", zapcore.ObjectMarshalerFunc(func(encoder zapcore.ObjectEncoder) error {
		counts := a.evidence.Counts()
		for _, x := range a.universe.Alternatives() {
			encoder.AddInt(string(x), counts[x])
		}
		return nil
	}))
}
