package section

import (
	"github.com/go-mdict/mdict/errs"
	"github.com/go-mdict/mdict/internal/sizeword"
)

// ParseRecordBlockIndex decodes the record-block index table (spec §4.C
// step 5): n pairs of (compressed_size, decompressed_size) size-words,
// turned into absolute compressed offsets via a running sum starting at
// blocksBaseOffset.
func ParseRecordBlockIndex(data []byte, n int64, sw sizeword.Reader, blocksBaseOffset int64) (*BlockIndex, error) {
	entries := make([]BlockIndexEntry, 0, n)
	offset := blocksBaseOffset

	for i := int64(0); i < n; i++ {
		compressedSize, err := sw.ReadUint(&data)
		if err != nil {
			return nil, errs.Wrap(errs.KindInvalidFormat, "read record block compressed-size", err)
		}
		decompressedSize, err := sw.ReadUint(&data)
		if err != nil {
			return nil, errs.Wrap(errs.KindInvalidFormat, "read record block decompressed-size", err)
		}

		entries = append(entries, BlockIndexEntry{
			CompressedOffset: offset,
			CompressedSize:   int64(compressedSize),
			DecompressedSize: int64(decompressedSize),
		})
		offset += int64(compressedSize)
	}

	return NewBlockIndex(entries), nil
}
