// Package archive binds one mdx file and its discovered mdd siblings into a
// single logical dictionary (spec.md §4.H), and exposes the public lookup
// contract (spec.md §6) host layers consume.
package archive

import (
	"context"
	"os"

	"github.com/go-mdict/mdict/engine"
	"github.com/go-mdict/mdict/header"
	"github.com/go-mdict/mdict/textcodec"
)

// Set is an immutable, concurrency-safe handle over one mdx file and its
// mdd companions. Construct with Open.
type Set struct {
	path    string
	header  *header.Header
	mddDirs []string
	facade  *engine.Facade
}

// Keys returns every mdx keyword, in the prefix store's lexicographic
// order.
func (s *Set) Keys() []string { return s.facade.Keys() }

// WordExists reports whether key is present, without performing I/O.
func (s *Set) WordExists(key string) bool { return s.facade.WordExists(key) }

// LookupWord returns every decoded body bound to key, in stored order.
func (s *Set) LookupWord(ctx context.Context, key string) ([]string, error) {
	return s.facade.LookupWord(ctx, key)
}

// LookupResource returns the raw bytes bound to a canonical '/'-separated
// resource path (no leading slash).
func (s *Set) LookupResource(ctx context.Context, key string) ([]byte, error) {
	return s.facade.LookupResource(ctx, key)
}

// HeaderAttribute returns a raw header attribute value, if present.
func (s *Set) HeaderAttribute(name string) (string, bool) {
	return s.header.Attr(name)
}

// MddPaths returns the discovered companion mdd file paths, in mdd_id
// order.
func (s *Set) MddPaths() []string { return append([]string(nil), s.mddDirs...) }

func canonicalMddKey(rawKey string) (string, error) {
	return textcodec.CanonicalizeMddKey(rawKey)
}

func pathExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
