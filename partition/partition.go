// Package partition splits an amount of evidence among agents.
//
// Every algorithm returns n non-negative shares that add up to the total and
// lie within the requested bounds, or ErrInfeasible when no such split exists.
package partition

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/seehuhn/mt19937"
	"go.uber.org/zap/zapcore"
)

var (
	ErrInfeasible       = errors.New("infeasible distribution")
	ErrUnknownAlgorithm = errors.New("unknown partition algorithm")
)

// MaxAttempts bounds rejection sampling of the constrained algorithm.
const MaxAttempts = 100_000

// NewSource returns a Mersenne Twister backed generator.
// Equal seeds produce equal sequences.
func NewSource(seed int64) *rand.Rand {
	mt := mt19937.New()
	mt.Seed(seed)
	return rand.New(mt)
}

// Bounds of a single share.
type Bounds struct {
	Min int `mapstructure:"min"`
	Max int `mapstructure:"max"`
	// Start is the share every agent starts from in the deviate algorithm.
	Start int `mapstructure:"start"`
}

func (b Bounds) MarshalLogObject(encoder zapcore.ObjectEncoder) error {
	encoder.AddInt("min", b.Min)
	encoder.AddInt("max", b.Max)
	encoder.AddInt("start", b.Start)
	return nil
}

func feasible(total, n int, b Bounds) error {
	switch {
	case n < 1:
		return fmt.Errorf("%w: %d shares", ErrInfeasible, n)
	case total < 0:
		return fmt.Errorf("%w: negative total %d", ErrInfeasible, total)
	case b.Min < 0 || b.Max < b.Min:
		return fmt.Errorf("%w: share bounds [%d, %d]", ErrInfeasible, b.Min, b.Max)
	case n*b.Min > total:
		return fmt.Errorf("%w: %d shares of at least %d exceed %d", ErrInfeasible, n, b.Min, total)
	case n*b.Max < total:
		return fmt.Errorf("%w: %d shares of at most %d do not reach %d", ErrInfeasible, n, b.Max, total)
	}
	return nil
}

// Algorithm selects how shares are drawn.
type Algorithm uint8

const (
	// Slicing draws shares one by one, each from the range that keeps the
	// remainder feasible. The last share takes the remainder.
	Slicing Algorithm = iota
	// Constrained draws all shares uniformly from the bounds and rejects
	// samples until they add up to the total.
	Constrained
	// Increment starts every share at the minimum and adds one unit to a
	// random share below the maximum until the total is reached.
	Increment
	// Deviate starts every share at Bounds.Start and moves a random share one
	// unit up or down within the bounds until the total is reached.
	Deviate
)

var algorithmNames = [...]string{"slicing", "constrained", "increment", "deviate"}

func (a Algorithm) String() string {
	if int(a) < len(algorithmNames) {
		return algorithmNames[a]
	}
	return fmt.Sprintf("algorithm(%d)", a)
}

func (a Algorithm) MarshalText() ([]byte, error) {
	if int(a) >= len(algorithmNames) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownAlgorithm, a)
	}
	return []byte(a.String()), nil
}

func (a *Algorithm) UnmarshalText(text []byte) error {
	for i, name := range algorithmNames {
		if name == string(text) {
			*a = Algorithm(i)
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownAlgorithm, text)
}

// Partition splits total into n shares within bounds.
func (a Algorithm) Partition(rng *rand.Rand, total, n int, b Bounds) ([]int, error) {
	switch a {
	case Slicing:
		return slicing(rng, total, n, b)
	case Constrained:
		return constrained(rng, total, n, b)
	case Increment:
		return increment(rng, total, n, b)
	case Deviate:
		return deviate(rng, total, n, b)
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownAlgorithm, a)
}

func slicing(rng *rand.Rand, total, n int, b Bounds) ([]int, error) {
	if err := feasible(total, n, b); err != nil {
		return nil, err
	}
	shares := make([]int, n)
	left := total
	for i := range n - 1 {
		rest := n - 1 - i
		lo := max(b.Min, left-rest*b.Max)
		hi := min(b.Max, left-rest*b.Min)
		shares[i] = lo + rng.Intn(hi-lo+1)
		left -= shares[i]
	}
	shares[n-1] = left
	return shares, nil
}

func constrained(rng *rand.Rand, total, n int, b Bounds) ([]int, error) {
	if err := feasible(total, n, b); err != nil {
		return nil, err
	}
	shares := make([]int, n)
	for range MaxAttempts {
		sum := 0
		for i := range shares {
			shares[i] = b.Min + rng.Intn(b.Max-b.Min+1)
			sum += shares[i]
		}
		if sum == total {
			return shares, nil
		}
	}
	return nil, fmt.Errorf("%w: no sample of %d shares in [%d, %d] added up to %d after %d attempts",
		ErrInfeasible, n, b.Min, b.Max, total, MaxAttempts)
}

func increment(rng *rand.Rand, total, n int, b Bounds) ([]int, error) {
	if err := feasible(total, n, b); err != nil {
		return nil, err
	}
	shares := make([]int, n)
	sum := 0
	for i := range shares {
		shares[i] = b.Min
		sum += b.Min
	}
	for sum < total {
		i := rng.Intn(n)
		if shares[i] < b.Max {
			shares[i]++
			sum++
		}
	}
	return shares, nil
}

func deviate(rng *rand.Rand, total, n int, b Bounds) ([]int, error) {
	b.Min = max(b.Min, 0)
	b.Max = min(b.Max, total)
	b.Start = min(max(b.Start, b.Min), b.Max)
	if err := feasible(total, n, b); err != nil {
		return nil, err
	}
	if n*b.Start > total {
		return nil, fmt.Errorf("%w: %d shares starting at %d exceed %d", ErrInfeasible, n, b.Start, total)
	}
	shares := make([]int, n)
	sum := 0
	for i := range shares {
		shares[i] = b.Start
		sum += b.Start
	}
	for sum < total {
		i := rng.Intn(n)
		step := 1
		if rng.Intn(2) == 0 {
			step = -1
		}
		if next := shares[i] + step; next >= b.Min && next <= b.Max {
			shares[i] = next
			sum += step
		}
	}
	return shares, nil
}
