package types

import "encoding/hex"

// Hash32Length is 32, the expected length of the hash.
const Hash32Length = 32

// Hash32 represents a 32-byte blake3 digest.
type Hash32 [Hash32Length]byte

// Hex converts a hash to a hex string.
func (h Hash32) Hex() string { return hex.EncodeToString(h[:]) }

// String implements the stringer interface.
func (h Hash32) String() string {
	return h.Hex()
}

// ShortString returns the first 5 characters of the hash, for logging purposes.
func (h Hash32) ShortString() string {
	return h.Hex()[:5]
}
