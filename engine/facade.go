package engine

import (
	"context"

	"github.com/go-mdict/mdict/cache"
	"github.com/go-mdict/mdict/errs"
	"github.com/go-mdict/mdict/format"
	"github.com/go-mdict/mdict/index"
	"github.com/go-mdict/mdict/section"
	"github.com/go-mdict/mdict/textcodec"
)

// Facade orchestrates index.Store lookups and FetchRecord calls, then
// decodes the resulting bytes per the archive's declared encoding. It holds
// no file handle: every lookup that misses the block cache opens, reads,
// and closes its own source.
type Facade struct {
	words     *index.Store
	resources *index.Store
	mdx       FileRef
	mdds      []FileRef
	encoding  format.Encoding
	cache     *cache.BlockCache
}

// NewFacade constructs a Facade over an already-built word and resource
// index, the file references needed to fetch their records, and the
// archive's text encoding.
func NewFacade(words, resources *index.Store, mdx FileRef, mdds []FileRef, enc format.Encoding, bc *cache.BlockCache) *Facade {
	return &Facade{words: words, resources: resources, mdx: mdx, mdds: mdds, encoding: enc, cache: bc}
}

// WordExists reports whether key is present in the mdx word index. It never
// performs I/O.
func (f *Facade) WordExists(key string) bool {
	_, ok := f.words.Get(key)
	return ok
}

// Keys returns every mdx key, in the word index's lexicographic order.
func (f *Facade) Keys() []string { return f.words.Keys() }

// WordLocators returns the raw locators bound to a word key, without
// fetching or decoding their bodies — the shape a persistence collaborator
// needs to serialize the index instead of recomputing it on every open.
func (f *Facade) WordLocators(key string) ([]section.Locator, bool) {
	v, ok := f.words.Get(key)
	if !ok {
		return nil, false
	}

	return v.Locators(), true
}

// LookupWord fetches and decodes every body bound to key, in the order
// Locators() returns them. It returns errs.KindNotFound if key is absent.
func (f *Facade) LookupWord(ctx context.Context, key string) ([]string, error) {
	v, ok := f.words.Get(key)
	if !ok {
		return nil, errs.New(errs.KindNotFound, "word not found: "+key)
	}

	locs := v.Locators()
	out := make([]string, 0, len(locs))
	for _, loc := range locs {
		raw, err := FetchRecord(ctx, f.mdx, loc, f.cache, cache.RecordBlockTable)
		if err != nil {
			return nil, err
		}

		text, err := textcodec.Decode(raw, f.encoding)
		if err != nil {
			return nil, err
		}

		out = append(out, text)
	}

	return out, nil
}

// LookupResource fetches the raw bytes bound to a canonicalized mdd key
// (already '/'-separated, no leading slash), choosing the owning mdd file
// by the locator's MddID.
func (f *Facade) LookupResource(ctx context.Context, key string) ([]byte, error) {
	v, ok := f.resources.Get(key)
	if !ok {
		return nil, errs.New(errs.KindNotFound, "resource not found: "+key)
	}

	locs := v.Locators()
	if len(locs) == 0 {
		return nil, errs.New(errs.KindCorrupt, "resource key has no locators")
	}
	loc := locs[0]

	if loc.MddID < 0 || loc.MddID >= len(f.mdds) {
		return nil, errs.New(errs.KindCorrupt, "resource locator references unknown mdd file")
	}

	return FetchRecord(ctx, f.mdds[loc.MddID], loc, f.cache, cache.RecordBlockTable)
}
