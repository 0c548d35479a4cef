package header

import (
	"bytes"
	"encoding/binary"
	"hash/adler32"
	"testing"

	"golang.org/x/text/encoding/unicode"

	"github.com/stretchr/testify/require"

	"github.com/go-mdict/mdict/format"
	"github.com/go-mdict/mdict/internal/bio"
)

func buildHeaderFile(attrXML string) []byte {
	enc := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
	declBytes, err := enc.NewEncoder().Bytes([]byte(attrXML + "\x00"))
	if err != nil {
		panic(err)
	}

	var buf bytes.Buffer
	lenBuf := make([]byte, 4)
	binary.BigEndian.PutUint32(lenBuf, uint32(len(declBytes)))
	buf.Write(lenBuf)
	buf.Write(declBytes)

	checksum := make([]byte, 4)
	binary.LittleEndian.PutUint32(checksum, adler32.Checksum(declBytes))
	buf.Write(checksum)

	return buf.Bytes()
}

func TestParseHeaderV2UTF8(t *testing.T) {
	xml := `<Dictionary GeneratedByEngineVersion="2.0" Encoding="UTF-8" Encrypted="0" Title="Demo"/>`
	raw := buildHeaderFile(xml)
	src := bio.FromReaderAt(bytes.NewReader(raw), "mem")

	h, headerEnd, err := Parse(src)
	require.NoError(t, err)
	require.Equal(t, format.Version2, h.Version)
	require.Equal(t, format.EncodingUTF8, h.Encoding)
	require.Equal(t, format.CipherNone, h.Cipher)
	require.Equal(t, "Demo", h.Title)
	require.Equal(t, int64(len(raw)), headerEnd)

	v, ok := h.Attr("Title")
	require.True(t, ok)
	require.Equal(t, "Demo", v)
}

func TestParseHeaderV1DefaultsAndEncrypted(t *testing.T) {
	xml := `<Dictionary GeneratedByEngineVersion="1.2" Encoding="UTF-16" Encrypted="1"/>`
	raw := buildHeaderFile(xml)
	src := bio.FromReaderAt(bytes.NewReader(raw), "mem")

	h, _, err := Parse(src)
	require.NoError(t, err)
	require.Equal(t, format.Version1, h.Version)
	require.Equal(t, format.EncodingUTF16LE, h.Encoding)
	require.True(t, h.Cipher.KeywordIndexEncrypted())
	require.False(t, h.Cipher.RecordDataEncrypted())
}

func TestParseHeaderMissingVersionDefaultsToV1(t *testing.T) {
	xml := `<Dictionary Encoding="UTF-8"/>`
	raw := buildHeaderFile(xml)
	src := bio.FromReaderAt(bytes.NewReader(raw), "mem")

	h, _, err := Parse(src)
	require.NoError(t, err)
	require.Equal(t, format.Version1, h.Version)
}

func TestParseHeaderChecksumMismatch(t *testing.T) {
	xml := `<Dictionary GeneratedByEngineVersion="2.0" Encoding="UTF-8"/>`
	raw := buildHeaderFile(xml)
	raw[len(raw)-1] ^= 0xFF // corrupt checksum
	src := bio.FromReaderAt(bytes.NewReader(raw), "mem")

	_, _, err := Parse(src)
	require.Error(t, err)
}

func TestParseHeaderImplausibleLength(t *testing.T) {
	raw := make([]byte, 4)
	binary.BigEndian.PutUint32(raw, 0xFFFFFFFF)
	src := bio.FromReaderAt(bytes.NewReader(raw), "mem")

	_, _, err := Parse(src)
	require.Error(t, err)
}
