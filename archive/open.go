package archive

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-mdict/mdict/cache"
	"github.com/go-mdict/mdict/engine"
	"github.com/go-mdict/mdict/errs"
	"github.com/go-mdict/mdict/index"
	intopts "github.com/go-mdict/mdict/internal/options"
)

// maxMddSiblings bounds mdd discovery: mdd_id is a single byte, so at most
// 256 companion files can be addressed.
const maxMddSiblings = 256

// config collects the knobs Option values can set before Open builds the
// archive set.
type config struct {
	blockCacheBytes int64
}

// Option configures Open. Construct one with WithBlockCacheBytes.
type Option = intopts.Option[*config]

// WithBlockCacheBytes overrides the default decompressed-block cache
// budget (LZ4-packed bytes; see the cache package).
func WithBlockCacheBytes(n int64) Option {
	return intopts.NoError[*config](func(c *config) { c.blockCacheBytes = n })
}

const defaultBlockCacheBytes = 16 << 20

// Open implements spec.md §4.H: validates the extension, discovers mdd
// siblings, builds the mdx and mdd indexes, and publishes an immutable
// Set.
func Open(path string, opts ...Option) (*Set, error) {
	if !strings.EqualFold(filepath.Ext(path), ".mdx") {
		return nil, errs.New(errs.KindInvalidInput, "archive path must end in .mdx")
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, errs.Wrap(errs.KindInvalidInput, "canonicalize archive path", err)
	}

	cfg := &config{blockCacheBytes: defaultBlockCacheBytes}
	if err := intopts.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	mddPaths := discoverMddSiblings(absPath)

	mdxBuilt, err := buildFile(absPath, 0, false)
	if err != nil {
		return nil, err
	}

	words := index.New()
	for _, e := range mdxBuilt.entries {
		words.Insert(e.Key, e.Locator)
	}

	resources := index.New()
	mddRefs := make([]engine.FileRef, 0, len(mddPaths))
	for id, p := range mddPaths {
		built, err := buildFile(p, id, true)
		if err != nil {
			return nil, err
		}
		for _, e := range built.entries {
			key, err := canonicalMddKey(e.Key)
			if err != nil {
				return nil, err
			}
			resources.Insert(key, e.Locator)
		}
		mddRefs = append(mddRefs, engine.FileRef{ID: id, Path: p, RecordIndex: built.recordIndex})
	}

	blockCache := cache.New(cfg.blockCacheBytes)
	mdxRef := engine.FileRef{ID: -1, Path: absPath, RecordIndex: mdxBuilt.recordIndex}
	facade := engine.NewFacade(words, resources, mdxRef, mddRefs, mdxBuilt.header.Encoding, blockCache)

	return &Set{
		path:    absPath,
		header:  mdxBuilt.header,
		mddDirs: mddPaths,
		facade:  facade,
	}, nil
}

// discoverMddSiblings returns the mdd files bound to an mdx path: first
// "<stem>.mdd", then "<stem>.1.mdd", "<stem>.2.mdd", ..., stopping at the
// first missing index or at maxMddSiblings.
func discoverMddSiblings(mdxPath string) []string {
	stem := strings.TrimSuffix(mdxPath, filepath.Ext(mdxPath))

	var found []string
	if p := stem + ".mdd"; pathExists(p) {
		found = append(found, p)
	} else {
		return found
	}

	for i := 1; i < maxMddSiblings; i++ {
		p := fmt.Sprintf("%s.%d.mdd", stem, i)
		if !pathExists(p) {
			break
		}
		found = append(found, p)
	}

	return found
}
