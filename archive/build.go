package archive

import (
	"github.com/go-mdict/mdict/codec"
	"github.com/go-mdict/mdict/errs"
	"github.com/go-mdict/mdict/format"
	"github.com/go-mdict/mdict/header"
	"github.com/go-mdict/mdict/internal/bio"
	"github.com/go-mdict/mdict/internal/crypt"
	"github.com/go-mdict/mdict/internal/pool"
	"github.com/go-mdict/mdict/internal/sizeword"
	"github.com/go-mdict/mdict/section"
)

// builtFile is the result of walking spec.md §4.B-§4.D over one physical
// file: its decoded header, its record-block table (kept for later
// FetchRecord calls), and the (key, locator) pairs ready for insertion into
// an index.Store.
type builtFile struct {
	header      *header.Header
	recordIndex *section.BlockIndex
	entries     []section.Entry
}

// buildFile parses path end to end: header, keyword counters, keyword-block
// index (with decryption if the header's cipher mode calls for it),
// keyword blocks, record counters, and the record-block index. mddID tags
// every resolved locator, 0 for the mdx file itself. isMdd forces key
// decoding to UTF-16LE regardless of the file's own declared Encoding
// attribute, per spec.md §3: "Mdd keys are always UTF-16LE" — an mdd
// header typically carries no Encoding attribute at all, which would
// otherwise default to UTF-8 and corrupt every key.
func buildFile(path string, mddID int, isMdd bool) (*builtFile, error) {
	src, err := bio.Open(path)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	h, headerEnd, err := header.Parse(src)
	if err != nil {
		return nil, err
	}
	if h.Cipher.RecordDataEncrypted() {
		return nil, errs.New(errs.KindUnsupported, "record-body encryption is not supported")
	}

	sw := sizeword.NewReader(h.Version)
	hasChecksum := h.Version == format.Version2

	kwFieldCount := 4
	if hasChecksum {
		kwFieldCount = 5
	}
	kwCounterLen := sw.Width() * kwFieldCount
	if hasChecksum {
		kwCounterLen += 4
	}

	kwCounterBytes, err := src.ReadExactAt(headerEnd, kwCounterLen)
	if err != nil {
		return nil, err
	}
	kwCounters, _, err := section.ParseKeywordCounters(kwCounterBytes, sw, hasChecksum)
	if err != nil {
		return nil, err
	}

	kwIndexTableOffset := headerEnd + int64(kwCounterLen)
	kwBuf := pool.GetIndexBuffer()
	kwBuf.SetLength(int(kwCounters.IndexCompressedSize))
	if err := src.ReadAt(kwBuf.Bytes(), kwIndexTableOffset); err != nil {
		pool.PutIndexBuffer(kwBuf)
		return nil, err
	}
	kwTableBytes := kwBuf.Bytes()

	if h.Cipher.KeywordIndexEncrypted() {
		if len(kwTableBytes) < 8 {
			pool.PutIndexBuffer(kwBuf)
			return nil, errs.New(errs.KindCorrupt, "keyword index table too short to carry its opaque prefix")
		}
		key := crypt.DeriveKeywordIndexKey(uint32(kwCounters.IndexCompressedSize))
		crypt.DescrambleKeywordIndex(kwTableBytes[8:], key)
	}

	kwDecompressedSize := int(kwCounters.IndexDecompressedSize)
	if !hasChecksum {
		kwDecompressedSize = codec.UnknownSize
	}
	kwTableDecompressed, err := codec.DecompressBlock(kwTableBytes, kwDecompressedSize)
	pool.PutIndexBuffer(kwBuf)
	if err != nil {
		return nil, err
	}

	keyEncoding := h.Encoding
	if isMdd {
		keyEncoding = format.EncodingUTF16LE
	}

	kwBlocksBaseOffset := kwIndexTableOffset + kwCounters.IndexCompressedSize
	kwIndex, err := section.ParseKeywordBlockIndex(kwTableDecompressed, kwCounters.NumBlocks, sw, keyEncoding, kwBlocksBaseOffset)
	if err != nil {
		return nil, err
	}

	blocksDecompressed := make([][]byte, len(kwIndex.Blocks.Entries))
	for i, e := range kwIndex.Blocks.Entries {
		raw, err := src.ReadExactAt(e.CompressedOffset, int(e.CompressedSize))
		if err != nil {
			return nil, err
		}
		dec, err := codec.DecompressBlock(raw, int(e.DecompressedSize))
		if err != nil {
			return nil, err
		}
		blocksDecompressed[i] = dec
	}

	recCounterHeaderOffset := kwBlocksBaseOffset + kwCounters.BlocksTotalSize
	recCounterLen := sw.Width() * 4
	recCounterBytes, err := src.ReadExactAt(recCounterHeaderOffset, recCounterLen)
	if err != nil {
		return nil, err
	}
	recCounters, _, err := section.ParseRecordCounters(recCounterBytes, sw)
	if err != nil {
		return nil, err
	}

	recordIndexTableOffset := recCounterHeaderOffset + int64(recCounterLen)
	recIdxBuf := pool.GetIndexBuffer()
	recIdxBuf.SetLength(int(recCounters.IndexSize))
	if err := src.ReadAt(recIdxBuf.Bytes(), recordIndexTableOffset); err != nil {
		pool.PutIndexBuffer(recIdxBuf)
		return nil, err
	}
	recordBlocksBaseOffset := recordIndexTableOffset + recCounters.IndexSize
	recordIndex, err := section.ParseRecordBlockIndex(recIdxBuf.Bytes(), recCounters.NumBlocks, sw, recordBlocksBaseOffset)
	pool.PutIndexBuffer(recIdxBuf)
	if err != nil {
		return nil, err
	}

	entries, err := section.DecodeKeyList(blocksDecompressed, kwIndex.Meta, sw, keyEncoding, recordIndex, mddID)
	if err != nil {
		return nil, err
	}
	if int64(len(entries)) != kwCounters.NumEntries {
		return nil, errs.New(errs.KindCorrupt, "key-list entry count does not match keyword counters")
	}
	if int64(len(entries)) != recCounters.NumRecords {
		return nil, errs.New(errs.KindCorrupt, "key-list entry count does not match record counters")
	}

	var expectedEntries int64
	for _, m := range kwIndex.Meta {
		expectedEntries += m.NumEntries
	}
	if expectedEntries != kwCounters.NumEntries {
		return nil, errs.New(errs.KindCorrupt, "sum of per-block entry counts does not match n_entries")
	}

	return &builtFile{header: h, recordIndex: recordIndex, entries: entries}, nil
}
