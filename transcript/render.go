// Package transcript renders run histories as human readable text and keeps
// rendered transcripts on a filesystem.
package transcript

import (
	"fmt"
	"io"
	"strings"

	"github.com/spacemeshos/go-deliberation/common/types"
	"github.com/spacemeshos/go-deliberation/deliberation"
	"github.com/spacemeshos/go-deliberation/plurality"
	"github.com/spacemeshos/go-deliberation/profile"
)

// rowLength is the column where evidence counts are printed.
const rowLength = 50

const stopLine = "No unhappy agents that have something to disclose. We stop.\n"

// AgentView draws the evidence of one agent as bars, one row per alternative:
//
//	01: ---a                                          [3]
//	    b                                             [0]
func AgentView(id types.AgentID, universe types.Universe, counts map[types.Alternative]int) string {
	prefix := fmt.Sprintf("%d: ", id)
	if id >= 0 && id < 10 {
		prefix = "0" + prefix
	}
	var b strings.Builder
	for i, x := range universe.Alternatives() {
		row := prefix
		if i > 0 {
			row = strings.Repeat(" ", len(prefix))
		}
		row += strings.Repeat("-", counts[x]) + string(x)
		row += strings.Repeat(" ", max(0, rowLength-len(row)))
		fmt.Fprintf(&b, "%s[%d]\n", row, counts[x])
	}
	return b.String()
}

// Render writes the transcript of a complete history.
func Render(h *deliberation.History) string {
	var b strings.Builder
	_ = Write(&b, h)
	return b.String()
}

// Write renders h to w.
func Write(w io.Writer, h *deliberation.History) error {
	r := &renderer{h: h}
	fmt.Fprintf(&r.b, "%s protocol\n\n", h.Protocol())
	for _, record := range h.Rounds() {
		fmt.Fprintf(&r.b, "\tRound %d\n", record.Index)
		if record.Index == 0 {
			r.b.WriteString("Initial profile:\n\n")
			r.profile(record)
			continue
		}
		switch h.Protocol() {
		case deliberation.Sequential:
			r.sequential(record)
		default:
			r.simultaneous(record)
		}
	}
	if h.Protocol() != deliberation.Sequential {
		// the simultaneous protocol stops without recording the idle round
		r.stop()
	}
	_, err := io.WriteString(w, r.b.String())
	return err
}

type renderer struct {
	h *deliberation.History
	b strings.Builder
}

func (r *renderer) profile(record deliberation.RoundRecord) {
	for _, id := range r.h.Agents() {
		r.b.WriteString(AgentView(id, r.h.Universe(), record.Evidence[id].Counts()))
		r.b.WriteString("\n")
	}
}

func (r *renderer) updates(record deliberation.RoundRecord) {
	r.b.WriteString("\nProfile after updates:\n\n")
	r.profile(record)
}

func (r *renderer) stop() {
	r.b.WriteString(stopLine)
	last, _ := r.h.Last()
	fmt.Fprintf(&r.b, "Final winners: %s.", join(last.WinnersAtEnd))
}

func (r *renderer) sequential(record deliberation.RoundRecord) {
	tally := plurality.NewTally(r.h.Universe())
	for _, id := range r.h.Agents() {
		nominees := record.Nominations[id]
		tally.Add(nominees)
		if disclosed, exist := record.Disclosures[id]; exist {
			fmt.Fprintf(&r.b, "Agent %d nominates %s, discloses for %s.\n", id, join(nominees), alternatives(disclosed))
		} else {
			fmt.Fprintf(&r.b, "Agent %d nominates %s.\n", id, join(nominees))
		}
		fmt.Fprintf(&r.b, "\t\t\t\tWinning: %s\n", join(tally.Winners()))
	}
	fmt.Fprintf(&r.b, "\nEnd of round winners: %s.\n", join(tally.Winners()))
	if record.Disclosed() {
		r.updates(record)
		return
	}
	r.stop()
}

func (r *renderer) simultaneous(record deliberation.RoundRecord) {
	fmt.Fprintf(&r.b, "Current winners: %s\n\n", join(record.WinnersAtStart))
	for _, id := range r.h.Agents() {
		if disclosed, exist := record.Disclosures[id]; exist {
			fmt.Fprintf(&r.b, "Agent %d discloses for %s.\n", id, alternatives(disclosed))
		}
	}
	r.updates(record)
}

func join(xs types.Alternatives) string {
	return strings.Join(xs.Strings(), ", ")
}

func alternatives(e profile.Evidence) string {
	xs := make([]types.Alternative, 0, len(e))
	for x := range e {
		xs = append(xs, x)
	}
	return join(types.NewAlternatives(xs...))
}
