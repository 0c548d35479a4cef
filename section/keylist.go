package section

import (
	"github.com/go-mdict/mdict/errs"
	"github.com/go-mdict/mdict/format"
	"github.com/go-mdict/mdict/internal/sizeword"
	"github.com/go-mdict/mdict/textcodec"
)

// Locator identifies one entry's bytes within the virtual decompressed
// record stream: which record block it lives in, its offset within that
// block's decompressed bytes, and its decompressed length. MddID selects
// which archive (the mdx itself, or one of its numbered mdd siblings) owns
// the record-block table Block indexes into; mdx locators always carry
// MddID 0 and it is ignored by a facade that knows it is resolving a word
// lookup rather than a resource lookup.
type Locator struct {
	Block  int
	Offset int64
	Length int64
	MddID  int
}

// Entry pairs a decoded key with the locator its record-offset resolves to.
type Entry struct {
	Key     string
	Locator Locator
}

// DecodeKeyList walks each keyword block's decompressed bytes, decoding
// (record_offset, key_bytes) pairs in block order, and resolves each
// record_offset to a Locator against recordIndex (spec §4.D). blocks must
// be in the same order as meta; the total pair count across blocks must
// equal the sum of meta[i].NumEntries, enforced by the caller via invariant
// checks over the returned slice.
func DecodeKeyList(blocks [][]byte, meta []KeywordBlockMeta, sw sizeword.Reader, enc format.Encoding, recordIndex *BlockIndex, mddID int) ([]Entry, error) {
	if len(blocks) != len(meta) {
		return nil, errs.New(errs.KindCorrupt, "keyword block count does not match block-index metadata")
	}

	type rawPair struct {
		key          string
		recordOffset int64
	}

	var raw []rawPair
	nul := textcodec.NulWidth(enc)

	for bi, block := range meta {
		data := blocks[bi]
		var n int64
		for n = 0; n < block.NumEntries; n++ {
			offset, err := sw.ReadUint(&data)
			if err != nil {
				return nil, errs.Wrap(errs.KindCorrupt, "read key-list record offset", err)
			}

			key, keyLen, err := readTerminatedKey(data, enc, nul)
			if err != nil {
				return nil, errs.Wrap(errs.KindCorrupt, "read key-list key bytes", err)
			}
			data = data[keyLen:]

			raw = append(raw, rawPair{key: key, recordOffset: int64(offset)})
		}
	}

	entries := make([]Entry, len(raw))
	for i, p := range raw {
		blockIdx, within, err := recordIndex.Locate(p.recordOffset)
		if err != nil {
			return nil, err
		}

		var length int64
		if i+1 < len(raw) {
			nextOffset := raw[i+1].recordOffset
			nextBlockIdx, nextWithin, err := recordIndex.Locate(nextOffset)
			if err != nil {
				return nil, err
			}
			if nextBlockIdx == blockIdx {
				length = nextWithin - within
			} else {
				length = recordIndex.Entries[blockIdx].DecompressedSize - within
			}
		} else {
			length = recordIndex.Entries[blockIdx].DecompressedSize - within
		}

		entries[i] = Entry{
			Key: p.key,
			Locator: Locator{
				Block:  blockIdx,
				Offset: within,
				Length: length,
				MddID:  mddID,
			},
		}
	}

	return entries, nil
}

// readTerminatedKey decodes a NUL-terminated key from the front of data and
// returns the decoded string plus the number of raw bytes it occupied
// (including the terminator).
func readTerminatedKey(data []byte, enc format.Encoding, nulWidth int) (string, int, error) {
	end := -1
	if nulWidth == 2 {
		for i := 0; i+1 < len(data); i += 2 {
			if data[i] == 0 && data[i+1] == 0 {
				end = i
				break
			}
		}
	} else {
		for i := 0; i < len(data); i++ {
			if data[i] == 0 {
				end = i
				break
			}
		}
	}
	if end < 0 {
		return "", 0, errs.New(errs.KindCorrupt, "unterminated key in key-list block")
	}

	s, err := textcodec.Decode(data[:end], enc)
	if err != nil {
		return "", 0, err
	}

	return s, end + nulWidth, nil
}
