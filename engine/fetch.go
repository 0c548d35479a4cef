// Package engine implements the record fetcher and lookup facade: the two
// components that turn a resolved Locator into decoded bytes, and a key
// string into a facade call.
package engine

import (
	"context"

	"github.com/go-mdict/mdict/cache"
	"github.com/go-mdict/mdict/codec"
	"github.com/go-mdict/mdict/errs"
	"github.com/go-mdict/mdict/internal/bio"
	"github.com/go-mdict/mdict/internal/pool"
	"github.com/go-mdict/mdict/section"
)

// FileRef names the physical file backing one record-block table, so the
// fetcher can open it on demand without the owning archive set retaining a
// handle between lookups.
type FileRef struct {
	// ID distinguishes this file's blocks in the shared cache: -1 for the
	// mdx file, the mdd_id for an mdd sibling.
	ID          int
	Path        string
	RecordIndex *section.BlockIndex
}

// FetchRecord opens ref.Path, reads the compressed block covering loc,
// verifies and decompresses it, and slices out loc's bytes. ref.ID, table
// and the block index together form the cache key, since different files,
// and the keyword-block and record-block tables of one file, are addressed
// independently. A cache hit is served without opening ref.Path.
func FetchRecord(ctx context.Context, ref FileRef, loc section.Locator, bc *cache.BlockCache, table cache.BlockTable) ([]byte, error) {
	if loc.Block < 0 || loc.Block >= ref.RecordIndex.Len() {
		return nil, errs.New(errs.KindCorrupt, "locator block index out of range")
	}
	entry := ref.RecordIndex.Entries[loc.Block]

	key := cache.Key{FileID: ref.ID, Table: table, Index: loc.Block}

	var decompressed []byte
	ok := false
	if bc != nil {
		if cached, hit := bc.Get(key); hit {
			decompressed = cached
			ok = true
		}
	}

	if !ok {
		if err := ctx.Err(); err != nil {
			return nil, errs.Wrap(errs.KindIO, "fetch record", err)
		}

		src, err := bio.Open(ref.Path)
		if err != nil {
			return nil, err
		}
		defer src.Close()

		buf := pool.GetBlockBuffer()
		buf.SetLength(int(entry.CompressedSize))
		if err := src.ReadAt(buf.Bytes(), entry.CompressedOffset); err != nil {
			pool.PutBlockBuffer(buf)
			return nil, err
		}

		if err := ctx.Err(); err != nil {
			pool.PutBlockBuffer(buf)
			return nil, errs.Wrap(errs.KindIO, "fetch record", err)
		}

		decompressed, err = codec.DecompressBlock(buf.Bytes(), int(entry.DecompressedSize))
		pool.PutBlockBuffer(buf)
		if err != nil {
			return nil, err
		}

		if bc != nil {
			bc.Put(key, decompressed)
		}
	}

	end := loc.Offset + loc.Length
	if loc.Offset < 0 || end > int64(len(decompressed)) {
		return nil, errs.New(errs.KindCorrupt, "locator range exceeds decompressed block size")
	}

	out := make([]byte, loc.Length)
	copy(out, decompressed[loc.Offset:end])

	return out, nil
}
