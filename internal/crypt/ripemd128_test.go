package crypt

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

// Official RIPEMD-128 test vectors from Dobbertin, Bosselaers & Preneel
// (1996), reproduced in every conformant implementation's test suite.
func TestRIPEMD128Vectors(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", "cdf26213a150dc3ecb610f18f6b38b46"},
		{"a", "86be7afa339d0fc7cfc785e72f578d33"},
		{"abc", "c14a12199c66e4ba84636b0f69144c77"},
		{"message digest", "9e327b3d6e523062afc1132d7df9d1b8"},
		{"abcdefghijklmnopqrstuvwxyz", "fd2aa607f71dc8f510714922b371834e"},
	}

	for _, c := range cases {
		got := Sum128([]byte(c.in))
		require.Equal(t, c.want, hex.EncodeToString(got[:]), "input %q", c.in)
	}
}

func TestRIPEMD128IncrementalWriteMatchesSingleShot(t *testing.T) {
	data := []byte("the quick brown fox jumps over the lazy dog, and then some more padding bytes to cross a 64-byte block boundary")

	h1 := NewRIPEMD128()
	h1.Write(data)
	want := h1.Sum(nil)

	h2 := NewRIPEMD128()
	for i := 0; i < len(data); i += 7 {
		end := i + 7
		if end > len(data) {
			end = len(data)
		}
		h2.Write(data[i:end])
	}
	got := h2.Sum(nil)

	require.Equal(t, want, got)
}

func TestRIPEMD128ResetReusesState(t *testing.T) {
	h := NewRIPEMD128()
	h.Write([]byte("abc"))
	first := h.Sum(nil)

	h.Reset()
	h.Write([]byte("abc"))
	second := h.Sum(nil)

	require.Equal(t, first, second)
}
