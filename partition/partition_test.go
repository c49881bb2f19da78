package partition

import (
	"fmt"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

var algorithms = []Algorithm{Slicing, Constrained, Increment, Deviate}

func TestPartition(t *testing.T) {
	for _, alg := range algorithms {
		for _, tc := range []struct {
			total, n int
			bounds   Bounds
		}{
			{total: 10, n: 3, bounds: Bounds{Min: 1, Max: 5, Start: 2}},
			{total: 7, n: 7, bounds: Bounds{Min: 1, Max: 1, Start: 1}},
			{total: 0, n: 4, bounds: Bounds{Min: 0, Max: 3}},
			{total: 20, n: 4, bounds: Bounds{Min: 0, Max: 20, Start: 5}},
			{total: 12, n: 1, bounds: Bounds{Min: 0, Max: 12, Start: 12}},
		} {
			t.Run(fmt.Sprintf("%s/%d/%d", alg, tc.total, tc.n), func(t *testing.T) {
				rng := NewSource(101)
				for range 50 {
					shares, err := alg.Partition(rng, tc.total, tc.n, tc.bounds)
					require.NoError(t, err)
					require.Len(t, shares, tc.n)
					sum := 0
					for _, s := range shares {
						require.GreaterOrEqual(t, s, tc.bounds.Min)
						require.LessOrEqual(t, s, tc.bounds.Max)
						sum += s
					}
					require.Equal(t, tc.total, sum)
				}
			})
		}
	}
}

func TestPartitionInfeasible(t *testing.T) {
	for _, alg := range algorithms {
		t.Run(alg.String(), func(t *testing.T) {
			rng := NewSource(1)
			_, err := alg.Partition(rng, 5, 3, Bounds{Min: 2, Max: 4})
			require.ErrorIs(t, err, ErrInfeasible)
			_, err = alg.Partition(rng, 20, 3, Bounds{Min: 0, Max: 6})
			require.ErrorIs(t, err, ErrInfeasible)
			_, err = alg.Partition(rng, 5, 0, Bounds{Max: 5})
			require.ErrorIs(t, err, ErrInfeasible)
		})
	}
	t.Run("deviate start", func(t *testing.T) {
		_, err := Deviate.Partition(NewSource(1), 5, 3, Bounds{Min: 0, Max: 5, Start: 2})
		require.ErrorIs(t, err, ErrInfeasible)
	})
	t.Run("unknown", func(t *testing.T) {
		_, err := Algorithm(9).Partition(NewSource(1), 5, 3, Bounds{Max: 5})
		require.ErrorIs(t, err, ErrUnknownAlgorithm)
	})
}

func TestPartitionDeterministic(t *testing.T) {
	for _, alg := range algorithms {
		first, err := alg.Partition(NewSource(7), 30, 5, Bounds{Min: 2, Max: 10, Start: 4})
		require.NoError(t, err)
		second, err := alg.Partition(NewSource(7), 30, 5, Bounds{Min: 2, Max: 10, Start: 4})
		require.NoError(t, err)
		require.Equal(t, first, second, alg.String())
	}
}

func TestAlgorithmText(t *testing.T) {
	for _, alg := range algorithms {
		text, err := alg.MarshalText()
		require.NoError(t, err)
		var decoded Algorithm
		require.NoError(t, decoded.UnmarshalText(text))
		require.Equal(t, alg, decoded)
	}
	var a Algorithm
	require.ErrorIs(t, a.UnmarshalText([]byte("uniform")), ErrUnknownAlgorithm)
}

func TestEnumerate(t *testing.T) {
	require.Equal(t, [][]int{
		{2, 0, 0},
		{1, 1, 0},
		{1, 0, 1},
		{0, 2, 0},
		{0, 1, 1},
		{0, 0, 2},
	}, slices.Collect(Enumerate(3, 2)))

	require.Equal(t, [][]int{{4}}, slices.Collect(Enumerate(1, 4)))
	require.Empty(t, slices.Collect(Enumerate(0, 4)))

	// C(9, 3) compositions of 6 into 4 parts
	require.Len(t, slices.Collect(Enumerate(4, 6)), 84)
}

func TestByVariance(t *testing.T) {
	high := slices.Collect(ByVariance(3, 6, High))
	require.ElementsMatch(t, [][]int{{6, 0, 0}, {0, 6, 0}, {0, 0, 6}}, high)

	low := slices.Collect(ByVariance(3, 6, Low))
	require.Len(t, low, 7)
	require.Contains(t, low, []int{2, 2, 2})
	require.Contains(t, low, []int{3, 2, 1})
	require.NotContains(t, low, []int{3, 3, 0})
}
