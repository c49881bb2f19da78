package types

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap/zapcore"
)

// AgentID identifies an agent within a profile.
type AgentID int

// EvidenceItem is a single unit of evidence generated by its owner.
// Owner and sequence number together identify the item.
type EvidenceItem struct {
	Owner AgentID
	Seq   uint32
}

// Compare orders items by owner and then by sequence number.
func (e EvidenceItem) Compare(other EvidenceItem) int {
	if c := cmp.Compare(e.Owner, other.Owner); c != 0 {
		return c
	}
	return cmp.Compare(e.Seq, other.Seq)
}

func (e EvidenceItem) String() string {
	return fmt.Sprintf("(%d,%d)", e.Owner, e.Seq)
}

// ItemSet is an ordered set of evidence items backed by a sorted slice.
// The zero value is an empty set.
type ItemSet []EvidenceItem

// NewItemSet sorts and deduplicates items.
func NewItemSet(items ...EvidenceItem) ItemSet {
	rst := append(ItemSet{}, items...)
	slices.SortFunc(rst, EvidenceItem.Compare)
	return slices.Compact(rst)
}

func (s ItemSet) Len() int {
	return len(s)
}

func (s ItemSet) Empty() bool {
	return len(s) == 0
}

func (s ItemSet) Contains(item EvidenceItem) bool {
	_, found := slices.BinarySearchFunc(s, item, EvidenceItem.Compare)
	return found
}

// Add returns a set that holds members of s and items.
// The receiver is not modified.
func (s ItemSet) Add(items ...EvidenceItem) ItemSet {
	rst := s.Clone()
	for _, item := range items {
		i, found := slices.BinarySearchFunc(rst, item, EvidenceItem.Compare)
		if !found {
			rst = slices.Insert(rst, i, item)
		}
	}
	return rst
}

// Minus returns members of s that are not in other.
func (s ItemSet) Minus(other ItemSet) ItemSet {
	rst := ItemSet{}
	for _, item := range s {
		if !other.Contains(item) {
			rst = append(rst, item)
		}
	}
	return rst
}

// IsSubsetOf is true if every member of s is in other.
func (s ItemSet) IsSubsetOf(other ItemSet) bool {
	for _, item := range s {
		if !other.Contains(item) {
			return false
		}
	}
	return true
}

func (s ItemSet) Equal(other ItemSet) bool {
	return slices.Equal(s, other)
}

// First returns the smallest member. It is false for an empty set.
func (s ItemSet) First() (EvidenceItem, bool) {
	if len(s) == 0 {
		return EvidenceItem{}, false
	}
	return s[0], true
}

func (s ItemSet) Clone() ItemSet {
	return append(ItemSet{}, s...)
}

func (s ItemSet) String() string {
	parts := make([]string, 0, len(s))
	for _, item := range s {
		parts = append(parts, item.String())
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func (s ItemSet) MarshalLogArray(encoder zapcore.ArrayEncoder) error {
	for _, item := range s {
		encoder.AppendString(item.String())
	}
	return nil
}
