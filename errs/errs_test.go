package errs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKindString(t *testing.T) {
	cases := map[Kind]string{
		KindInvalidInput:  "invalid input",
		KindInvalidFormat: "invalid format",
		KindCorrupt:       "corrupt",
		KindUnsupported:   "unsupported",
		KindNotFound:      "not found",
		KindIO:            "io",
		Kind(255):         "unknown",
	}
	for k, want := range cases {
		require.Equal(t, want, k.String())
	}
}

func TestNewAndWrap(t *testing.T) {
	e := New(KindCorrupt, "bad checksum")
	require.Equal(t, "mdict: corrupt: bad checksum", e.Error())
	require.Nil(t, e.Unwrap())

	inner := errors.New("boom")
	w := Wrap(KindIO, "read file", inner)
	require.Contains(t, w.Error(), "read file")
	require.Contains(t, w.Error(), "boom")
	require.Equal(t, inner, w.Unwrap())
}

func TestErrorIsSentinel(t *testing.T) {
	err := New(KindNotFound, "missing key")
	require.True(t, errors.Is(err, ErrNotFound))
	require.False(t, errors.Is(err, ErrCorrupt))
}

func TestWrapIsSentinelThroughChain(t *testing.T) {
	inner := New(KindIO, "disk read failed")
	outer := Wrap(KindIO, "fetch record", inner)
	require.True(t, errors.Is(outer, ErrIO))
}

func TestOf(t *testing.T) {
	k, ok := Of(New(KindUnsupported, "nope"))
	require.True(t, ok)
	require.Equal(t, KindUnsupported, k)

	_, ok = Of(errors.New("plain"))
	require.False(t, ok)
}

func TestSentinel(t *testing.T) {
	require.Equal(t, ErrInvalidInput, Sentinel(KindInvalidInput))
	require.Nil(t, Sentinel(Kind(255)))
}
