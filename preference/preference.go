// Package preference derives an agent's preference order from the amount of
// evidence it holds and decides which alternatives it would argue for given a
// provisional outcome.
package preference

import (
	"slices"

	"github.com/spacemeshos/go-deliberation/common/types"
	"github.com/spacemeshos/go-deliberation/profile"
)

// Ranks maps every alternative of the agent's universe to its rank.
// Rank 1 is the best. Alternatives with the same amount of evidence share a
// rank, and ranks follow the distinct evidence counts in descending order, so
// counts {a:3, b:3, c:1, d:0} rank as {a:1, b:1, c:2, d:3}.
//
// Ranks are never cached, evidence changes between calls.
func Ranks(a *profile.Agent) map[types.Alternative]int {
	counts := a.Counts()
	distinct := make([]int, 0, len(counts))
	for _, n := range counts {
		distinct = append(distinct, n)
	}
	slices.Sort(distinct)
	distinct = slices.Compact(distinct)
	slices.Reverse(distinct)

	byCount := make(map[int]int, len(distinct))
	for i, n := range distinct {
		byCount[n] = i + 1
	}
	ranks := make(map[types.Alternative]int, len(counts))
	for x, n := range counts {
		ranks[x] = byCount[n]
	}
	return ranks
}

// Top returns the alternatives the agent ranks first.
// An agent without evidence ranks every alternative first.
func Top(a *profile.Agent) types.Alternatives {
	ranks := Ranks(a)
	return a.Universe().Filter(func(x types.Alternative) bool {
		return ranks[x] == 1
	})
}

// PreferredTo returns the alternatives the agent is willing to disclose
// evidence for while outcome is the provisional set of winners.
//
// A keen agent is satisfied only when outcome is exactly its top set. If
// outcome is a strict subset of its top set it argues for the rest of its top
// set. Otherwise it argues for every alternative ranked better than at least
// one member of outcome.
//
// A lazy agent argues for alternatives ranked better than the best ranked
// member of outcome. With an empty outcome the reference rank is 0 and nothing
// qualifies.
func PreferredTo(a *profile.Agent, outcome types.Alternatives) types.Alternatives {
	ranks := Ranks(a)
	switch a.Disposition() {
	case types.Keen:
		top := Top(a)
		if top.Equal(outcome) {
			return types.Alternatives{}
		}
		if outcome.IsStrictSubsetOf(top) {
			return top.Difference(outcome)
		}
		return a.Universe().Filter(func(x types.Alternative) bool {
			for _, y := range outcome {
				if ranks[x] < ranks[y] {
					return true
				}
			}
			return false
		})
	case types.Lazy:
		reference := 0
		for i, y := range outcome {
			if i == 0 || ranks[y] < reference {
				reference = ranks[y]
			}
		}
		return a.Universe().Filter(func(x types.Alternative) bool {
			return ranks[x] < reference
		})
	}
	return types.Alternatives{}
}

// UnhappyWith is true if the agent prefers some alternative to outcome.
func UnhappyWith(a *profile.Agent, outcome types.Alternatives) bool {
	return !PreferredTo(a, outcome).Empty()
}
