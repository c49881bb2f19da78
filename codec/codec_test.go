package codec

import (
	"bytes"
	"testing"

	"github.com/spacemeshos/go-scale"
	"github.com/stretchr/testify/require"
)

type pair struct {
	name  string
	value uint64
	ok    bool
}

func (p *pair) EncodeScale(enc *scale.Encoder) (int, error) {
	w := NewWriter(enc)
	w.String(p.name)
	w.Uint64(p.value)
	w.Bool(p.ok)
	return w.Result()
}

type nested struct {
	pairs []pair
}

func (n *nested) EncodeScale(enc *scale.Encoder) (int, error) {
	w := NewWriter(enc)
	w.Int(len(n.pairs))
	for i := range n.pairs {
		w.Struct(&n.pairs[i])
	}
	return w.Result()
}

func encode(t *testing.T, value Encodable) []byte {
	t.Helper()
	var buf bytes.Buffer
	n, err := EncodeTo(&buf, value)
	require.NoError(t, err)
	require.Equal(t, buf.Len(), n)
	return buf.Bytes()
}

func TestEncode(t *testing.T) {
	first := encode(t, &pair{name: "a", value: 7, ok: true})
	// compact length, byte, compact value, bool
	require.Equal(t, []byte{1 << 2, 'a', 7 << 2, 1}, first)
	require.NotEqual(t, first, encode(t, &pair{name: "a", value: 8, ok: true}))

	var buf bytes.Buffer
	n, err := EncodeTo(&buf, &nested{pairs: []pair{{name: "a", value: 7, ok: true}}})
	require.NoError(t, err)
	require.Equal(t, buf.Len(), n)
	require.Equal(t, append([]byte{1 << 2}, first...), buf.Bytes())
}

type failing struct{}

func (failing) Write([]byte) (int, error) {
	return 0, bytes.ErrTooLarge
}

func TestMustEncodeTo(t *testing.T) {
	require.Panics(t, func() {
		MustEncodeTo(failing{}, &pair{name: "a"})
	})
	require.NotPanics(t, func() {
		MustEncodeTo(&bytes.Buffer{}, &pair{name: "a"})
	})
}
