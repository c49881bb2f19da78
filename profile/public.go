package profile

import (
	"fmt"

	"github.com/spacemeshos/go-deliberation/common/types"
)

// Public is the pool of evidence disclosed during a single run.
// It only grows.
type Public struct {
	universe types.Universe
	items    Evidence
}

// NewPublic returns an empty pool for universe.
func NewPublic(universe types.Universe) *Public {
	items := make(Evidence, universe.Len())
	for _, x := range universe.Alternatives() {
		items[x] = types.ItemSet{}
	}
	return &Public{universe: universe, items: items}
}

// Disclose makes items public for x.
func (p *Public) Disclose(x types.Alternative, items ...types.EvidenceItem) error {
	if !p.universe.Contains(x) {
		return fmt.Errorf("%w: %q", ErrUnknownAlternative, x)
	}
	p.items[x] = p.items[x].Add(items...)
	return nil
}

// IsPublic is true if item was disclosed for x.
func (p *Public) IsPublic(x types.Alternative, item types.EvidenceItem) bool {
	return p.items[x].Contains(item)
}

// Items returns a copy of the items disclosed for x.
func (p *Public) Items(x types.Alternative) types.ItemSet {
	return p.items[x].Clone()
}

// Private returns the items of agent for x that are not public yet.
func (p *Public) Private(a *Agent, x types.Alternative) types.ItemSet {
	return a.evidence[x].Minus(p.items[x])
}

// Len is the number of disclosed items across all alternatives.
func (p *Public) Len() int {
	return p.items.Total()
}

// Snapshot returns a deep copy of the pool.
func (p *Public) Snapshot() Evidence {
	return p.items.Clone()
}
