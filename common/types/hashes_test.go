package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHash32Strings(t *testing.T) {
	h := Hash32{0xab, 0xcd, 0xef}
	assert.Equal(t, "abcdef00", h.Hex()[:8])
	assert.Len(t, h.String(), 2*Hash32Length)
	assert.Equal(t, "abcde", h.ShortString())
	assert.NotEqual(t, Hash32{}, h)
}
