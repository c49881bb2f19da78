package experiment

import (
	"math/rand"

	"github.com/spacemeshos/go-deliberation/partition"
)

//go:generate mockgen -typed -package=experiment -destination=./mocks.go -source=./interface.go

// Partitioner splits total evidence into n shares within bounds.
type Partitioner interface {
	Partition(rng *rand.Rand, total, n int, b partition.Bounds) ([]int, error)
}
