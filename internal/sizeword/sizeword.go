// Package sizeword encapsulates the one branch that otherwise recurs at
// every structural integer field in an MDict archive: v2.0+ archives use
// 64-bit big-endian counters and offsets, v1.x archives use 32-bit. Callers
// pick the width once per archive and read every subsequent field through
// the same Reader, instead of branching on version at each call site.
package sizeword

import (
	"encoding/binary"

	"github.com/go-mdict/mdict/errs"
	"github.com/go-mdict/mdict/format"
)

// Width is the byte width of a size-word: 4 for v1.x archives, 8 for v2.0+.
type Width int

const (
	Width32 Width = 4
	Width64 Width = 8
)

// ForVersion returns the size-word width an archive version uses.
func ForVersion(v format.Version) Width {
	if v == format.Version2 {
		return Width64
	}

	return Width32
}

// Reader decodes big-endian size-words of a fixed width from a byte slice.
type Reader struct {
	width Width
}

// NewReader creates a Reader for the given version's size-word width.
func NewReader(v format.Version) Reader {
	return Reader{width: ForVersion(v)}
}

// Width reports the byte width this Reader decodes.
func (r Reader) Width() int { return int(r.width) }

// Uint decodes one size-word from the front of b and returns it along with
// the number of bytes consumed.
func (r Reader) Uint(b []byte) (uint64, int, error) {
	if len(b) < int(r.width) {
		return 0, 0, errs.New(errs.KindInvalidFormat, "truncated size-word")
	}

	switch r.width {
	case Width64:
		return binary.BigEndian.Uint64(b[:8]), 8, nil
	default:
		return uint64(binary.BigEndian.Uint32(b[:4])), 4, nil
	}
}

// ReadUint decodes a size-word at the front of b, advancing *b past it.
func (r Reader) ReadUint(b *[]byte) (uint64, error) {
	v, n, err := r.Uint(*b)
	if err != nil {
		return 0, err
	}
	*b = (*b)[n:]

	return v, nil
}
