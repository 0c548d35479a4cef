package bio

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/go-mdict/mdict/errs"
)

func TestFromReaderAtReadExactAt(t *testing.T) {
	src := FromReaderAt(bytes.NewReader([]byte("hello world")), "mem")
	require.Equal(t, "mem", src.Name())

	got, err := src.ReadExactAt(6, 5)
	require.NoError(t, err)
	require.Equal(t, "world", string(got))
}

func TestReadAtShortReadIsError(t *testing.T) {
	src := FromReaderAt(bytes.NewReader([]byte("short")), "mem")
	_, err := src.ReadExactAt(0, 100)
	require.Error(t, err)
	k, ok := errs.Of(err)
	require.True(t, ok)
	require.Equal(t, errs.KindIO, k)
}

func TestCloseOnNonCloser(t *testing.T) {
	src := FromReaderAt(bytes.NewReader([]byte("x")), "mem")
	require.NoError(t, src.Close())
}
