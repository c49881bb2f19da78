package deliberation

import (
	"maps"
	"slices"

	"github.com/spacemeshos/go-scale"
	"go.uber.org/zap/zapcore"

	"github.com/spacemeshos/go-deliberation/codec"
	"github.com/spacemeshos/go-deliberation/common/types"
	"github.com/spacemeshos/go-deliberation/hash"
	"github.com/spacemeshos/go-deliberation/profile"
)

// RoundRecord is the state of a run after one round.
// Record 0 is the state before the protocol started.
type RoundRecord struct {
	Index          int
	WinnersAtStart types.Alternatives
	WinnersAtEnd   types.Alternatives
	// Disclosures holds items disclosed by each agent that disclosed in the round.
	Disclosures map[types.AgentID]profile.Evidence
	// Nominations is empty for record 0.
	Nominations map[types.AgentID]types.Alternatives
	// Evidence of every agent at the end of the round.
	Evidence map[types.AgentID]profile.Evidence
}

// Disclosed is true if at least one agent disclosed in the round.
func (r *RoundRecord) Disclosed() bool {
	return len(r.Disclosures) > 0
}

// DisclosedItems is the number of items disclosed in the round.
func (r *RoundRecord) DisclosedItems() int {
	total := 0
	for _, e := range r.Disclosures {
		total += e.Total()
	}
	return total
}

func (r *RoundRecord) MarshalLogObject(encoder zapcore.ObjectEncoder) error {
	encoder.AddInt("round", r.Index)
	encoder.AddArray("winners at start", r.WinnersAtStart)
	encoder.AddArray("winners at end", r.WinnersAtEnd)
	encoder.AddInt("disclosers", len(r.Disclosures))
	encoder.AddInt("disclosed items", r.DisclosedItems())
	return nil
}

// History is the append-only log of a run.
type History struct {
	protocol   Protocol
	disclosure Policy
	universe   types.Universe
	agents     []types.AgentID
	records    []RoundRecord
}

func newHistory(cfg Config, p *profile.Profile) *History {
	return &History{
		protocol:   cfg.Protocol,
		disclosure: cfg.Disclosure,
		universe:   p.Universe(),
		agents:     p.IDs(),
	}
}

func (h *History) append(r RoundRecord) {
	r.Index = len(h.records)
	h.records = append(h.records, r)
}

func (h *History) Protocol() Protocol {
	return h.protocol
}

func (h *History) Disclosure() Policy {
	return h.disclosure
}

func (h *History) Universe() types.Universe {
	return h.universe
}

// Agents returns agent ids in profile order.
func (h *History) Agents() []types.AgentID {
	return append([]types.AgentID(nil), h.agents...)
}

// Len is the number of records including record 0.
func (h *History) Len() int {
	return len(h.records)
}

// Rounds returns all records. Records are shared and must not be modified.
func (h *History) Rounds() []RoundRecord {
	return append([]RoundRecord(nil), h.records...)
}

// Round returns the record with index i.
func (h *History) Round(i int) (RoundRecord, bool) {
	if i < 0 || i >= len(h.records) {
		return RoundRecord{}, false
	}
	return h.records[i], true
}

// Last returns the latest record. It is false for an empty history.
func (h *History) Last() (RoundRecord, bool) {
	return h.Round(len(h.records) - 1)
}

// Fingerprint is a digest of the canonical encoding of the history.
// Runs that made the same decisions have equal fingerprints.
func (h *History) Fingerprint() types.Hash32 {
	hasher := hash.GetHasher()
	defer hash.PutHasher(hasher)
	codec.MustEncodeTo(hasher, h)
	var rst types.Hash32
	hasher.Sum(rst[:0])
	return rst
}

// EncodeScale writes the canonical encoding of the history.
func (h *History) EncodeScale(enc *scale.Encoder) (int, error) {
	w := codec.NewWriter(enc)
	w.String(h.protocol.String())
	w.String(h.disclosure.String())
	encodeAlternatives(w, h.universe.Alternatives())
	w.Int(len(h.records))
	for i := range h.records {
		w.Struct(&h.records[i])
	}
	return w.Result()
}

// EncodeScale writes the canonical encoding of the record. Agents are
// written in id order and alternatives without items are skipped, so a
// missing set and an empty set encode the same.
func (r *RoundRecord) EncodeScale(enc *scale.Encoder) (int, error) {
	w := codec.NewWriter(enc)
	w.Int(r.Index)
	encodeAlternatives(w, r.WinnersAtStart)
	encodeAlternatives(w, r.WinnersAtEnd)

	ids := map[types.AgentID]struct{}{}
	for id := range r.Evidence {
		ids[id] = struct{}{}
	}
	for id := range r.Disclosures {
		ids[id] = struct{}{}
	}
	for id := range r.Nominations {
		ids[id] = struct{}{}
	}
	sorted := slices.Sorted(maps.Keys(ids))
	w.Int(len(sorted))
	for _, id := range sorted {
		w.Int(int(id))
		disclosed, exist := r.Disclosures[id]
		w.Bool(exist)
		if exist {
			encodeEvidence(w, disclosed)
		}
		encodeAlternatives(w, r.Nominations[id])
		encodeEvidence(w, r.Evidence[id])
	}
	return w.Result()
}

func encodeAlternatives(w *codec.Writer, xs types.Alternatives) {
	w.Int(len(xs))
	for _, x := range xs {
		w.String(string(x))
	}
}

func encodeEvidence(w *codec.Writer, e profile.Evidence) {
	var keys []types.Alternative
	for x, items := range e {
		if !items.Empty() {
			keys = append(keys, x)
		}
	}
	slices.Sort(keys)
	w.Int(len(keys))
	for _, x := range keys {
		items := e[x]
		w.String(string(x))
		w.Int(items.Len())
		for _, item := range items {
			w.Int(int(item.Owner))
			w.Uint64(uint64(item.Seq))
		}
	}
}
