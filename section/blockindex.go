// Package section decodes the two block-index tables that sit after an
// MDict header — the keyword-block index and the record-block index — and
// the keyword blocks' decompressed (key, record-offset) payload. The shape
// mirrors mebo's section.NumericHeader/TextHeader: small structs filled by
// Parse* functions that read a fixed, version-dependent layout directly out
// of a byte slice.
package section

import (
	"github.com/go-mdict/mdict/errs"
)

// BlockIndexEntry describes one compressed block: its absolute location in
// the archive file and its compressed/decompressed sizes.
type BlockIndexEntry struct {
	CompressedOffset int64
	CompressedSize   int64
	DecompressedSize int64
}

// BlockIndex is an ordered list of block-index entries plus the running sum
// of decompressed sizes, used to resolve a virtual-stream offset to a
// block + intra-block offset.
type BlockIndex struct {
	Entries []BlockIndexEntry

	// runningStart[i] is the decompressed-stream offset at which Entries[i]
	// begins; runningStart has len(Entries)+1 elements, the last being the
	// total decompressed size.
	runningStart []int64
}

// NewBlockIndex builds a BlockIndex from entries already positioned in file
// order, deriving the running-sum table used by Locate.
func NewBlockIndex(entries []BlockIndexEntry) *BlockIndex {
	running := make([]int64, len(entries)+1)
	for i, e := range entries {
		running[i+1] = running[i] + e.DecompressedSize
	}

	return &BlockIndex{Entries: entries, runningStart: running}
}

// Len returns the number of blocks.
func (bi *BlockIndex) Len() int { return len(bi.Entries) }

// TotalDecompressedSize returns the size of the virtual decompressed stream
// formed by concatenating every block in order.
func (bi *BlockIndex) TotalDecompressedSize() int64 {
	return bi.runningStart[len(bi.runningStart)-1]
}

// Locate resolves a byte offset in the virtual decompressed stream to the
// owning block index and the offset within that block.
func (bi *BlockIndex) Locate(streamOffset int64) (blockIdx int, withinBlock int64, err error) {
	if streamOffset < 0 || streamOffset >= bi.TotalDecompressedSize() {
		return 0, 0, errs.New(errs.KindCorrupt, "record offset out of range of record-block stream")
	}

	// Binary search for the last runningStart[i] <= streamOffset.
	lo, hi := 0, len(bi.Entries)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if bi.runningStart[mid] <= streamOffset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}

	return lo, streamOffset - bi.runningStart[lo], nil
}

// BlockStart returns the decompressed-stream offset at which block i begins.
func (bi *BlockIndex) BlockStart(i int) int64 { return bi.runningStart[i] }
