package deliberation

import (
	"github.com/spacemeshos/go-deliberation/common/types"
	"github.com/spacemeshos/go-deliberation/plurality"
	"github.com/spacemeshos/go-deliberation/preference"
	"github.com/spacemeshos/go-deliberation/profile"
)

// simultaneous runs rounds in which every agent decides against the same
// pre-round state. Disclosures of a round are merged after all agents decided.
func (s *session) simultaneous() (types.Alternatives, error) {
	winners := plurality.Winners(s.profile)
	for {
		eligible := DisclosableByProfile(s.profile, winners, s.public)
		if len(eligible) == 0 {
			return winners, nil
		}

		nominations := make(map[types.AgentID]types.Alternatives, s.profile.Len())
		disclosures := make(map[types.AgentID]profile.Evidence, len(eligible))
		merged := profile.Evidence{}
		for _, a := range s.profile.Agents() {
			nominations[a.ID()] = preference.Top(a)
			e, exist := eligible[a.ID()]
			if !exist {
				continue
			}
			chosen := s.config.Disclosure.Select(e)
			disclosures[a.ID()] = chosen
			for x, items := range chosen {
				merged[x] = merged[x].Add(items...)
			}
		}
		for _, x := range s.profile.Universe().Alternatives() {
			if items := merged[x]; !items.Empty() {
				if err := s.disclose(x, items); err != nil {
					return nil, err
				}
			}
		}

		start := winners
		winners = plurality.Winners(s.profile)
		s.record(RoundRecord{
			WinnersAtStart: start,
			WinnersAtEnd:   winners,
			Disclosures:    disclosures,
			Nominations:    nominations,
			Evidence:       s.profile.Snapshot(),
		})
	}
}
