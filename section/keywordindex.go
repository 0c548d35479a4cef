package section

import (
	"github.com/go-mdict/mdict/errs"
	"github.com/go-mdict/mdict/format"
	"github.com/go-mdict/mdict/internal/sizeword"
	"github.com/go-mdict/mdict/textcodec"
)

// KeywordBlockMeta is the per-block metadata carried in the keyword-block
// index table: the key range it covers and how many (key, record-offset)
// pairs it decompresses to.
type KeywordBlockMeta struct {
	NumEntries int64
	FirstKey   string
	LastKey    string
}

// KeywordBlockIndex is the parsed keyword-block index table: one
// BlockIndexEntry plus one KeywordBlockMeta per keyword block.
type KeywordBlockIndex struct {
	Blocks *BlockIndex
	Meta   []KeywordBlockMeta
}

// ParseKeywordBlockIndex decodes the keyword-block index table (spec
// §4.C step 2, post-decryption and post-decompression) into n block
// entries, deriving each block's absolute compressed offset from
// blocksBaseOffset and the running sum of compressed sizes.
func ParseKeywordBlockIndex(data []byte, n int64, sw sizeword.Reader, enc format.Encoding, blocksBaseOffset int64) (*KeywordBlockIndex, error) {
	entries := make([]BlockIndexEntry, 0, n)
	meta := make([]KeywordBlockMeta, 0, n)

	offset := blocksBaseOffset
	nul := textcodec.NulWidth(enc)

	for i := int64(0); i < n; i++ {
		numEntries, err := sw.ReadUint(&data)
		if err != nil {
			return nil, errs.Wrap(errs.KindInvalidFormat, "read keyword block num-entries", err)
		}

		firstKey, err := readKeyword(&data, sw, enc, nul)
		if err != nil {
			return nil, errs.Wrap(errs.KindInvalidFormat, "read keyword block first-key", err)
		}

		lastKey, err := readKeyword(&data, sw, enc, nul)
		if err != nil {
			return nil, errs.Wrap(errs.KindInvalidFormat, "read keyword block last-key", err)
		}

		compressedSize, err := sw.ReadUint(&data)
		if err != nil {
			return nil, errs.Wrap(errs.KindInvalidFormat, "read keyword block compressed-size", err)
		}
		decompressedSize, err := sw.ReadUint(&data)
		if err != nil {
			return nil, errs.Wrap(errs.KindInvalidFormat, "read keyword block decompressed-size", err)
		}

		entries = append(entries, BlockIndexEntry{
			CompressedOffset: offset,
			CompressedSize:   int64(compressedSize),
			DecompressedSize: int64(decompressedSize),
		})
		meta = append(meta, KeywordBlockMeta{
			NumEntries: int64(numEntries),
			FirstKey:   firstKey,
			LastKey:    lastKey,
		})

		offset += int64(compressedSize)
	}

	return &KeywordBlockIndex{Blocks: NewBlockIndex(entries), Meta: meta}, nil
}

// readKeyword reads a size-prefixed, NUL-terminated key and returns it
// decoded per enc, advancing *data past the size word and the key bytes
// (including its terminator).
func readKeyword(data *[]byte, sw sizeword.Reader, enc format.Encoding, nulWidth int) (string, error) {
	size, err := sw.ReadUint(data)
	if err != nil {
		return "", err
	}
	n := int(size)
	if n < nulWidth || n > len(*data) {
		return "", errs.New(errs.KindInvalidFormat, "implausible keyword size")
	}

	raw := (*data)[:n-nulWidth]
	*data = (*data)[n:]

	return textcodec.Decode(raw, enc)
}
