package textcodec

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-mdict/mdict/format"
)

func TestNulWidth(t *testing.T) {
	require.Equal(t, 2, NulWidth(format.EncodingUTF16LE))
	require.Equal(t, 1, NulWidth(format.EncodingUTF8))
	require.Equal(t, 1, NulWidth(format.EncodingGBK))
}

func TestDecodeUTF8Passthrough(t *testing.T) {
	s, err := Decode([]byte("hello"), format.EncodingUTF8)
	require.NoError(t, err)
	require.Equal(t, "hello", s)
}

func TestEncodeDecodeUTF16LERoundTrip(t *testing.T) {
	want := "hello 中文"
	enc, err := Encode(want, format.EncodingUTF16LE)
	require.NoError(t, err)

	got, err := Decode(enc, format.EncodingUTF16LE)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestEncodeDecodeGBKRoundTrip(t *testing.T) {
	want := "中文词典"
	enc, err := Encode(want, format.EncodingGBK)
	require.NoError(t, err)

	got, err := Decode(enc, format.EncodingGBK)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestCanonicalizeMddKey(t *testing.T) {
	got, err := CanonicalizeMddKey(`\img\cat.png`)
	require.NoError(t, err)
	require.Equal(t, "img/cat.png", got)
}

func TestCanonicalizeMddKeyRequiresLeadingBackslash(t *testing.T) {
	_, err := CanonicalizeMddKey("img/cat.png")
	require.Error(t, err)
}

func TestCanonicalizeMddKeyEmpty(t *testing.T) {
	_, err := CanonicalizeMddKey("")
	require.Error(t, err)
}
