// Package plurality implements the plurality voting rule over agents' top
// sets and the running nomination tally of the sequential protocol.
package plurality

import (
	"maps"

	"github.com/spacemeshos/go-deliberation/common/types"
	"github.com/spacemeshos/go-deliberation/preference"
	"github.com/spacemeshos/go-deliberation/profile"
)

// Scores counts, for every alternative of the profile universe, the agents
// whose top set contains it.
func Scores(p *profile.Profile) map[types.Alternative]int {
	scores := make(map[types.Alternative]int, p.Universe().Len())
	for _, x := range p.Universe().Alternatives() {
		scores[x] = 0
	}
	for _, a := range p.Agents() {
		for _, x := range preference.Top(a) {
			scores[x]++
		}
	}
	return scores
}

// Winners returns every alternative with the maximum score.
// Ties are a normal outcome.
func Winners(p *profile.Profile) types.Alternatives {
	return best(p.Universe(), Scores(p))
}

func best(universe types.Universe, scores map[types.Alternative]int) types.Alternatives {
	high := 0
	for _, n := range scores {
		high = max(high, n)
	}
	return universe.Filter(func(x types.Alternative) bool {
		return scores[x] == high
	})
}

// Tally is a multiset of nominations accumulated within one round.
type Tally struct {
	universe types.Universe
	counts   map[types.Alternative]int
	size     int
}

func NewTally(universe types.Universe) *Tally {
	counts := make(map[types.Alternative]int, universe.Len())
	for _, x := range universe.Alternatives() {
		counts[x] = 0
	}
	return &Tally{universe: universe, counts: counts}
}

// Add records one nomination. Alternatives outside the universe are ignored.
func (t *Tally) Add(nomination types.Alternatives) {
	for _, x := range nomination {
		if _, exist := t.counts[x]; exist {
			t.counts[x]++
		}
	}
	t.size++
}

// Winners are the most frequently nominated alternatives.
// Before the first nomination every alternative ties at zero.
func (t *Tally) Winners() types.Alternatives {
	return best(t.universe, t.counts)
}

// Counts returns a copy of the multiplicities.
func (t *Tally) Counts() map[types.Alternative]int {
	return maps.Clone(t.counts)
}

// Nominations is the number of nominations added so far.
func (t *Tally) Nominations() int {
	return t.size
}
