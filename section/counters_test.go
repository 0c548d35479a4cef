package section

import (
	"encoding/binary"
	"hash/adler32"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-mdict/mdict/format"
	"github.com/go-mdict/mdict/internal/sizeword"
)

func be32(v uint32) []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, v)
	return b
}

func TestParseKeywordCountersV1NoChecksum(t *testing.T) {
	sw := sizeword.NewReader(format.Version1)
	var data []byte
	data = append(data, be32(3)...)   // num_blocks
	data = append(data, be32(100)...) // num_entries
	data = append(data, be32(500)...) // index_compressed_size
	data = append(data, be32(9000)...) // blocks_total_size

	c, n, err := ParseKeywordCounters(data, sw, false)
	require.NoError(t, err)
	require.Equal(t, int64(3), c.NumBlocks)
	require.Equal(t, int64(100), c.NumEntries)
	require.Equal(t, int64(0), c.IndexDecompressedSize)
	require.Equal(t, int64(500), c.IndexCompressedSize)
	require.Equal(t, int64(9000), c.BlocksTotalSize)
	require.Equal(t, 16, n)
}

func TestParseKeywordCountersV2WithChecksum(t *testing.T) {
	sw := sizeword.NewReader(format.Version2)
	var payload []byte
	payload = append(payload, make([]byte, 8)...)
	binary.BigEndian.PutUint64(payload[0:8], 2)
	nb := make([]byte, 8)
	binary.BigEndian.PutUint64(nb, 40)
	payload = append(payload, nb...)
	decSize := make([]byte, 8)
	binary.BigEndian.PutUint64(decSize, 1000)
	payload = append(payload, decSize...)
	compSize := make([]byte, 8)
	binary.BigEndian.PutUint64(compSize, 300)
	payload = append(payload, compSize...)
	blocksTotal := make([]byte, 8)
	binary.BigEndian.PutUint64(blocksTotal, 5000)
	payload = append(payload, blocksTotal...)

	checksum := be32(adler32.Checksum(payload))
	data := append(append([]byte(nil), payload...), checksum...)

	c, n, err := ParseKeywordCounters(data, sw, true)
	require.NoError(t, err)
	require.Equal(t, int64(2), c.NumBlocks)
	require.Equal(t, int64(40), c.NumEntries)
	require.Equal(t, int64(1000), c.IndexDecompressedSize)
	require.Equal(t, int64(300), c.IndexCompressedSize)
	require.Equal(t, int64(5000), c.BlocksTotalSize)
	require.Equal(t, len(data), n)
}

func TestParseKeywordCountersV2ChecksumMismatch(t *testing.T) {
	sw := sizeword.NewReader(format.Version2)
	payload := make([]byte, 40)
	data := append(payload, be32(0xDEADBEEF)...)

	_, _, err := ParseKeywordCounters(data, sw, true)
	require.Error(t, err)
}

func TestParseRecordCounters(t *testing.T) {
	sw := sizeword.NewReader(format.Version1)
	var data []byte
	data = append(data, be32(4)...)
	data = append(data, be32(77)...)
	data = append(data, be32(900)...)
	data = append(data, be32(12000)...)

	c, n, err := ParseRecordCounters(data, sw)
	require.NoError(t, err)
	require.Equal(t, int64(4), c.NumBlocks)
	require.Equal(t, int64(77), c.NumRecords)
	require.Equal(t, int64(900), c.IndexSize)
	require.Equal(t, int64(12000), c.BlocksTotalSize)
	require.Equal(t, 16, n)
}
