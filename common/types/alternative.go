package types

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap/zapcore"
)

var (
	ErrEmptyUniverse         = errors.New("universe has no alternatives")
	ErrDuplicateAlternative  = errors.New("duplicate alternative")
	ErrEmptyAlternativeLabel = errors.New("alternative label is empty")
)

// Alternative is one of the mutually exclusive options agents deliberate about.
// Alternatives are ordered by byte-wise comparison of their labels.
type Alternative string

func (a Alternative) String() string {
	return string(a)
}

// Compare returns -1, 0 or 1 depending on the lexicographic order of a and other.
func (a Alternative) Compare(other Alternative) int {
	return strings.Compare(string(a), string(other))
}

// Universe is the fixed set of alternatives of a single run.
type Universe struct {
	alternatives Alternatives
}

// NewUniverse validates alternatives and returns them as a sorted universe.
func NewUniverse(alternatives ...Alternative) (Universe, error) {
	if len(alternatives) == 0 {
		return Universe{}, ErrEmptyUniverse
	}
	sorted := slices.Clone(alternatives)
	slices.Sort(sorted)
	for i, x := range sorted {
		if x == "" {
			return Universe{}, ErrEmptyAlternativeLabel
		}
		if i > 0 && sorted[i-1] == x {
			return Universe{}, fmt.Errorf("%w: %s", ErrDuplicateAlternative, x)
		}
	}
	return Universe{alternatives: sorted}, nil
}

// MustUniverse is NewUniverse that panics on invalid input. Intended for tests and presets.
func MustUniverse(alternatives ...Alternative) Universe {
	u, err := NewUniverse(alternatives...)
	if err != nil {
		panic(err)
	}
	return u
}

// Alternatives returns every alternative of the universe in order.
func (u Universe) Alternatives() Alternatives {
	return slices.Clone(u.alternatives)
}

func (u Universe) Len() int {
	return len(u.alternatives)
}

func (u Universe) Contains(x Alternative) bool {
	return u.alternatives.Contains(x)
}

// Equal is true if both universes hold the same alternatives.
func (u Universe) Equal(other Universe) bool {
	return u.alternatives.Equal(other.alternatives)
}

// Filter returns alternatives of the universe, in order, for which keep is true.
func (u Universe) Filter(keep func(Alternative) bool) Alternatives {
	rst := Alternatives{}
	for _, x := range u.alternatives {
		if keep(x) {
			rst = append(rst, x)
		}
	}
	return rst
}

func (u Universe) String() string {
	return u.alternatives.String()
}

func (u Universe) MarshalLogArray(encoder zapcore.ArrayEncoder) error {
	return u.alternatives.MarshalLogArray(encoder)
}

// Alternatives is an ordered set of alternatives backed by a sorted slice.
// The zero value is an empty set.
type Alternatives []Alternative

// NewAlternatives sorts and deduplicates xs.
func NewAlternatives(xs ...Alternative) Alternatives {
	rst := append(Alternatives{}, xs...)
	slices.Sort(rst)
	return slices.Compact(rst)
}

func (s Alternatives) Len() int {
	return len(s)
}

func (s Alternatives) Empty() bool {
	return len(s) == 0
}

func (s Alternatives) Contains(x Alternative) bool {
	_, found := slices.BinarySearch(s, x)
	return found
}

func (s Alternatives) Equal(other Alternatives) bool {
	return slices.Equal(s, other)
}

// IsSubsetOf is true if every member of s is in other.
func (s Alternatives) IsSubsetOf(other Alternatives) bool {
	for _, x := range s {
		if !other.Contains(x) {
			return false
		}
	}
	return true
}

// IsStrictSubsetOf is true if s is a subset of other and other has more members.
func (s Alternatives) IsStrictSubsetOf(other Alternatives) bool {
	return len(s) < len(other) && s.IsSubsetOf(other)
}

// Difference returns members of s that are not in other.
func (s Alternatives) Difference(other Alternatives) Alternatives {
	rst := Alternatives{}
	for _, x := range s {
		if !other.Contains(x) {
			rst = append(rst, x)
		}
	}
	return rst
}

// Union returns members of both sets.
func (s Alternatives) Union(other Alternatives) Alternatives {
	return NewAlternatives(append(slices.Clone(s), other...)...)
}

// First returns the smallest member. It is false for an empty set.
func (s Alternatives) First() (Alternative, bool) {
	if len(s) == 0 {
		return "", false
	}
	return s[0], true
}

// Strings returns labels in order.
func (s Alternatives) Strings() []string {
	rst := make([]string, 0, len(s))
	for _, x := range s {
		rst = append(rst, string(x))
	}
	return rst
}

func (s Alternatives) String() string {
	return "{" + strings.Join(s.Strings(), ", ") + "}"
}

func (s Alternatives) MarshalLogArray(encoder zapcore.ArrayEncoder) error {
	for _, x := range s {
		encoder.AppendString(string(x))
	}
	return nil
}
