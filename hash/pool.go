package hash

import (
	"sync"

	"github.com/zeebo/blake3"
)

var pool = sync.Pool{
	New: func() any {
		return blake3.New()
	},
}

// GetHasher takes a blake3 hasher for a history fingerprint from the pool.
func GetHasher() *blake3.Hasher {
	return pool.Get().(*blake3.Hasher)
}

// PutHasher resets hasher and returns it to the pool.
// The hasher must not be used after the call.
func PutHasher(hasher *blake3.Hasher) {
	hasher.Reset()
	pool.Put(hasher)
}
