package deliberation

import (
	"github.com/spacemeshos/go-deliberation/common/types"
	"github.com/spacemeshos/go-deliberation/plurality"
	"github.com/spacemeshos/go-deliberation/preference"
	"github.com/spacemeshos/go-deliberation/profile"
)

// sequential runs rounds in which agents act in profile order and every
// action is visible to the agents after it. Provisional winners come from the
// nominations of the current round and carry over into the next round until
// its first nomination. The run stops after the first round without
// disclosures and reports the plurality winners of the terminal profile.
func (s *session) sequential() (types.Alternatives, error) {
	// no winners before anybody nominated
	current := types.Alternatives{}
	for disclosed := true; disclosed; {
		disclosed = false
		start := current
		tally := plurality.NewTally(s.profile.Universe())
		nominations := make(map[types.AgentID]types.Alternatives, s.profile.Len())
		disclosures := map[types.AgentID]profile.Evidence{}

		for _, a := range s.profile.Agents() {
			if eligible := Disclosable(a, current, s.public); len(eligible) > 0 {
				chosen := DiscloseOne.Select(eligible)
				for x, items := range chosen {
					if err := s.disclose(x, items); err != nil {
						return nil, err
					}
				}
				disclosures[a.ID()] = chosen
				disclosed = true
			}

			nominees := preference.PreferredTo(a, current)
			if nominees.Empty() {
				nominees = preference.Top(a)
			}
			nominations[a.ID()] = nominees
			tally.Add(nominees)
			current = tally.Winners()
		}

		s.record(RoundRecord{
			WinnersAtStart: start,
			WinnersAtEnd:   plurality.Winners(s.profile),
			Disclosures:    disclosures,
			Nominations:    nominations,
			Evidence:       s.profile.Snapshot(),
		})
	}
	return plurality.Winners(s.profile), nil
}
