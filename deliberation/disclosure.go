package deliberation

import (
	"maps"
	"slices"

	"github.com/spacemeshos/go-deliberation/common/types"
	"github.com/spacemeshos/go-deliberation/preference"
	"github.com/spacemeshos/go-deliberation/profile"
)

// Disclosable returns the non-public items the agent holds for alternatives
// it prefers to outcome. Alternatives without such items are omitted.
// Nothing is disclosable while outcome is empty.
func Disclosable(a *profile.Agent, outcome types.Alternatives, public *profile.Public) profile.Evidence {
	rst := profile.Evidence{}
	if outcome.Empty() {
		return rst
	}
	for _, x := range preference.PreferredTo(a, outcome) {
		if private := public.Private(a, x); !private.Empty() {
			rst[x] = private
		}
	}
	return rst
}

// DisclosableByProfile applies Disclosable to every agent of the profile and
// keeps agents that have something to disclose.
func DisclosableByProfile(
	p *profile.Profile,
	outcome types.Alternatives,
	public *profile.Public,
) map[types.AgentID]profile.Evidence {
	rst := map[types.AgentID]profile.Evidence{}
	for _, a := range p.Agents() {
		if eligible := Disclosable(a, outcome, public); len(eligible) > 0 {
			rst[a.ID()] = eligible
		}
	}
	return rst
}

// Select picks the part of eligible evidence that is disclosed.
func (p Policy) Select(eligible profile.Evidence) profile.Evidence {
	if p == DiscloseAll {
		return eligible.Clone()
	}
	return first(eligible)
}

// first is the smallest item of the smallest alternative with items.
func first(eligible profile.Evidence) profile.Evidence {
	for _, x := range slices.Sorted(maps.Keys(eligible)) {
		if item, ok := eligible[x].First(); ok {
			return profile.Evidence{x: types.ItemSet{item}}
		}
	}
	return profile.Evidence{}
}
