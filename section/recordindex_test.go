package section

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-mdict/mdict/format"
	"github.com/go-mdict/mdict/internal/sizeword"
)

func TestParseRecordBlockIndex(t *testing.T) {
	sw := sizeword.NewReader(format.Version1)
	var data []byte
	data = appendSizeWord(data, sw, 100) // compressed_size block 0
	data = appendSizeWord(data, sw, 800) // decompressed_size block 0
	data = appendSizeWord(data, sw, 50)  // compressed_size block 1
	data = appendSizeWord(data, sw, 300) // decompressed_size block 1

	idx, err := ParseRecordBlockIndex(data, 2, sw, 2000)
	require.NoError(t, err)
	require.Equal(t, 2, idx.Len())
	require.Equal(t, int64(2000), idx.Entries[0].CompressedOffset)
	require.Equal(t, int64(100), idx.Entries[0].CompressedSize)
	require.Equal(t, int64(800), idx.Entries[0].DecompressedSize)
	require.Equal(t, int64(2100), idx.Entries[1].CompressedOffset)
	require.Equal(t, int64(50), idx.Entries[1].CompressedSize)
	require.Equal(t, int64(300), idx.Entries[1].DecompressedSize)
	require.Equal(t, int64(1100), idx.TotalDecompressedSize())
}

func TestParseRecordBlockIndexTruncated(t *testing.T) {
	sw := sizeword.NewReader(format.Version1)
	data := []byte{0, 0, 0, 1}

	_, err := ParseRecordBlockIndex(data, 1, sw, 0)
	require.Error(t, err)
}
