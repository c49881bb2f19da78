package hash

import (
	"encoding/binary"

	"github.com/minio/sha256-simd"
)

// Sum is an alias to minio sha256.Sum256.
var Sum = sha256.Sum256

// Uint64 derives a number from the sha256 digest of big endian encoded parts.
// Equal parts give equal numbers.
func Uint64(parts ...uint64) uint64 {
	buf := make([]byte, 0, 8*len(parts))
	for _, p := range parts {
		buf = binary.BigEndian.AppendUint64(buf, p)
	}
	digest := Sum(buf)
	return binary.BigEndian.Uint64(digest[:8])
}
