package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDispositionText(t *testing.T) {
	for _, d := range []Disposition{Keen, Lazy} {
		text, err := d.MarshalText()
		require.NoError(t, err)
		var decoded Disposition
		require.NoError(t, decoded.UnmarshalText(text))
		require.Equal(t, d, decoded)
	}
	var d Disposition
	require.ErrorIs(t, d.UnmarshalText([]byte("eager")), ErrUnknownDisposition)
	_, err := Disposition(7).MarshalText()
	require.ErrorIs(t, err, ErrUnknownDisposition)
	require.Equal(t, "lazy", Lazy.String())
	require.True(t, Keen.Valid())
	require.True(t, Lazy.Valid())
	require.False(t, Disposition(2).Valid())
	require.Equal(t, "disposition(2)", Disposition(2).String())
}
