package hash

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUint64(t *testing.T) {
	require.Equal(t, Uint64(1, 2, 3), Uint64(1, 2, 3))
	require.NotEqual(t, Uint64(1, 2, 3), Uint64(1, 3, 2))
	require.NotEqual(t, Uint64(), Uint64(0))
}

func TestHasherPool(t *testing.T) {
	sum := func(data []byte) []byte {
		h := GetHasher()
		defer PutHasher(h)
		h.Write(data)
		return h.Sum(nil)
	}
	first := sum([]byte("deliberation"))
	require.Len(t, first, 32)
	require.Equal(t, first, sum([]byte("deliberation")))
	require.NotEqual(t, first, sum([]byte("other")))
}
