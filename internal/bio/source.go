// Package bio provides the positioned, non-retained byte source the parser
// reads an archive through. It never mmaps: block tables and block payloads
// live in disjoint regions of the file and records are fetched sparsely, so
// ranged reads are the right tool.
package bio

import (
	"fmt"
	"io"
	"os"

	"github.com/go-mdict/mdict/errs"
)

// Source is a random-access reader over an archive file. It is safe for
// concurrent use: ReadAt never mutates shared state, matching the
// lookup-opens-its-own-handle model described by the lookup facade.
type Source struct {
	ra   io.ReaderAt
	name string
}

// Open opens the file at path as a Source. The caller must Close it.
func Open(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.Wrap(errs.KindIO, "open archive file", err)
	}

	return &Source{ra: f, name: path}, nil
}

// FromReaderAt wraps an existing io.ReaderAt (e.g. for in-memory archives in
// tests) as a Source.
func FromReaderAt(ra io.ReaderAt, name string) *Source {
	return &Source{ra: ra, name: name}
}

// Name returns the path the Source was opened from.
func (s *Source) Name() string { return s.name }

// ReadAt fills buf by reading len(buf) bytes starting at off. It is a thin
// wrapper over io.ReaderAt.ReadAt that turns short reads into errs.KindIO.
func (s *Source) ReadAt(buf []byte, off int64) error {
	n, err := s.ra.ReadAt(buf, off)
	if err != nil && !(err == io.EOF && n == len(buf)) {
		return errs.Wrap(errs.KindIO, fmt.Sprintf("read %d bytes at offset %d", len(buf), off), err)
	}

	return nil
}

// ReadExactAt reads and returns exactly n bytes starting at off.
func (s *Source) ReadExactAt(off int64, n int) ([]byte, error) {
	buf := make([]byte, n)
	if err := s.ReadAt(buf, off); err != nil {
		return nil, err
	}

	return buf, nil
}

// Close closes the underlying file, if the Source owns one.
func (s *Source) Close() error {
	if c, ok := s.ra.(io.Closer); ok {
		return c.Close()
	}

	return nil
}
