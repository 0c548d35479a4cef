package section

import (
	"hash/adler32"

	"github.com/go-mdict/mdict/errs"
	"github.com/go-mdict/mdict/internal/sizeword"
)

// KeywordCounters is the fixed run of size-words that precedes the
// keyword-block index table (spec §4.C step 1).
type KeywordCounters struct {
	NumBlocks               int64
	NumEntries              int64
	IndexDecompressedSize   int64 // v2 only; zero for v1
	IndexCompressedSize     int64
	BlocksTotalSize         int64
}

// ParseKeywordCounters reads the counter block starting at data[0] and
// returns the counters plus the number of bytes consumed (including the
// trailing ADLER-32 checksum present in v2 archives).
func ParseKeywordCounters(data []byte, r sizeword.Reader, hasChecksum bool) (KeywordCounters, int, error) {
	start := data
	var c KeywordCounters

	read := func(dst *int64) error {
		v, err := r.ReadUint(&data)
		if err != nil {
			return err
		}
		*dst = int64(v)

		return nil
	}

	if err := read(&c.NumBlocks); err != nil {
		return c, 0, err
	}
	if err := read(&c.NumEntries); err != nil {
		return c, 0, err
	}
	if hasChecksum {
		if err := read(&c.IndexDecompressedSize); err != nil {
			return c, 0, err
		}
	}
	if err := read(&c.IndexCompressedSize); err != nil {
		return c, 0, err
	}
	if err := read(&c.BlocksTotalSize); err != nil {
		return c, 0, err
	}

	consumed := len(start) - len(data)

	if hasChecksum {
		if len(data) < 4 {
			return c, 0, errs.New(errs.KindInvalidFormat, "truncated keyword-counter checksum")
		}
		want := uint32(data[0])<<24 | uint32(data[1])<<16 | uint32(data[2])<<8 | uint32(data[3])
		if got := adler32.Checksum(start[:consumed]); got != want {
			return c, 0, errs.New(errs.KindInvalidFormat, "keyword-counter checksum mismatch")
		}
		consumed += 4
	}

	return c, consumed, nil
}

// RecordCounters is the fixed run of size-words that precedes the
// record-block index table (spec §4.C step 4).
type RecordCounters struct {
	NumBlocks       int64
	NumRecords      int64
	IndexSize       int64
	BlocksTotalSize int64
}

// ParseRecordCounters reads the record-block-index counter block starting
// at data[0] and returns the counters plus bytes consumed.
func ParseRecordCounters(data []byte, r sizeword.Reader) (RecordCounters, int, error) {
	start := data
	var c RecordCounters

	read := func(dst *int64) error {
		v, err := r.ReadUint(&data)
		if err != nil {
			return err
		}
		*dst = int64(v)

		return nil
	}

	if err := read(&c.NumBlocks); err != nil {
		return c, 0, err
	}
	if err := read(&c.NumRecords); err != nil {
		return c, 0, err
	}
	if err := read(&c.IndexSize); err != nil {
		return c, 0, err
	}
	if err := read(&c.BlocksTotalSize); err != nil {
		return c, 0, err
	}

	return c, len(start) - len(data), nil
}
