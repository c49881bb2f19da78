package partition

import (
	"fmt"
	"iter"
)

// Variance selects splits by how unevenly they distribute the total.
type Variance uint8

const (
	// Low splits have at most 1/8 of the maximal variance.
	Low Variance = iota
	// High splits have at least 2/3 of the maximal variance.
	High
)

var varianceNames = [...]string{"low", "high"}

func (v Variance) String() string {
	if int(v) < len(varianceNames) {
		return varianceNames[v]
	}
	return fmt.Sprintf("variance(%d)", v)
}

func (v *Variance) UnmarshalText(text []byte) error {
	for i, name := range varianceNames {
		if name == string(text) {
			*v = Variance(i)
			return nil
		}
	}
	return fmt.Errorf("unknown variance %q", text)
}

// Enumerate yields every ordered split of total into n non-negative shares.
// Splits with a larger first share come first. Yielded slices are not reused.
func Enumerate(n, total int) iter.Seq[[]int] {
	return func(yield func([]int) bool) {
		if n < 1 || total < 0 {
			return
		}
		enumerate(make([]int, 0, n), n, total, yield)
	}
}

func enumerate(prefix []int, n, left int, yield func([]int) bool) bool {
	if n == 1 {
		return yield(append(prefix, left))
	}
	for rest := range left + 1 {
		next := append(prefix[:len(prefix):len(prefix)], left-rest)
		if !enumerate(next, n-1, rest, yield) {
			return false
		}
	}
	return true
}

// ByVariance yields splits from Enumerate whose population variance is low or
// high relative to the variance of the split that gives everything to one agent.
func ByVariance(n, total int, level Variance) iter.Seq[[]int] {
	return func(yield func([]int) bool) {
		if n < 1 || total < 0 {
			return
		}
		extreme := make([]int, n)
		extreme[0] = total
		high := variance(extreme)
		for split := range Enumerate(n, total) {
			v := variance(split)
			if level == Low && v > high/8 {
				continue
			}
			if level == High && v < 2*high/3 {
				continue
			}
			if !yield(split) {
				return
			}
		}
	}
}

func variance(xs []int) float64 {
	var sum float64
	for _, x := range xs {
		sum += float64(x)
	}
	mean := sum / float64(len(xs))
	var rst float64
	for _, x := range xs {
		d := float64(x) - mean
		rst += d * d
	}
	return rst / float64(len(xs))
}
