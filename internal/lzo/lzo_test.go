package lzo

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecompress1XEmptyInput(t *testing.T) {
	out, err := Decompress1X(nil, 0)
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestDecompress1XEmptyInputNonZeroLength(t *testing.T) {
	_, err := Decompress1X(nil, 5)
	require.Error(t, err)
}

func TestDecompress1XInputOverrun(t *testing.T) {
	// A lone 0x00 literal-run-length byte demands at least one more length
	// byte; with nothing following it, decoding must fail rather than panic.
	_, err := Decompress1X([]byte{0x00}, 100)
	require.Error(t, err)
}
