// Package codec wraps the scale codec used for canonical encodings.
package codec

import (
	"fmt"
	"io"

	"github.com/spacemeshos/go-scale"
)

// Encodable is an interface that must be implemented by a struct to be encoded.
type Encodable = scale.Encodable

// EncodeTo encodes value to a writer stream.
func EncodeTo(w io.Writer, value Encodable) (int, error) {
	return value.EncodeScale(scale.NewEncoder(w))
}

// MustEncodeTo encodes value to w and panics on failure.
// Use it only with writers that never fail, such as hashers.
func MustEncodeTo(w io.Writer, value Encodable) {
	if _, err := EncodeTo(w, value); err != nil {
		panic(fmt.Sprintf("encode %T: %v", value, err))
	}
}

// Writer accumulates fields of a hand written EncodeScale method and keeps
// the first error.
type Writer struct {
	enc   *scale.Encoder
	total int
	err   error
}

func NewWriter(enc *scale.Encoder) *Writer {
	return &Writer{enc: enc}
}

// MaxStringLength bounds encoded strings.
const MaxStringLength = 1 << 20

func (w *Writer) add(n int, err error) {
	w.total += n
	w.err = err
}

func (w *Writer) Uint64(v uint64) {
	if w.err == nil {
		w.add(scale.EncodeCompact64(w.enc, v))
	}
}

func (w *Writer) Int(v int) {
	w.Uint64(uint64(v))
}

func (w *Writer) Bool(v bool) {
	if w.err == nil {
		w.add(scale.EncodeBool(w.enc, v))
	}
}

func (w *Writer) String(v string) {
	if w.err == nil {
		w.add(scale.EncodeByteSliceWithLimit(w.enc, []byte(v), MaxStringLength))
	}
}

func (w *Writer) Struct(v Encodable) {
	if w.err == nil {
		w.add(v.EncodeScale(w.enc))
	}
}

// Result returns the number of written bytes and the first error.
func (w *Writer) Result() (int, error) {
	return w.total, w.err
}
