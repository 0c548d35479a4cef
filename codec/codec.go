// Package codec provides the per-block decompressors MDict archives use:
// raw passthrough, zlib/DEFLATE, and LZO1X. The interface and registry shape
// mirror mebo's compress.Codec/CreateCodec pattern, narrowed to
// decompression only since this module never authors archives.
package codec

import (
	"fmt"
	"hash/adler32"

	"github.com/go-mdict/mdict/errs"
	"github.com/go-mdict/mdict/format"
)

// Decompressor decompresses one block of data. The decompressed size is
// known in advance from the owning index table, so implementations may use
// it to preallocate or to validate.
type Decompressor interface {
	// Decompress decompresses src, which is expected to expand to exactly
	// decompressedSize bytes.
	Decompress(src []byte, decompressedSize int) ([]byte, error)
}

// ForTag returns the Decompressor for a block's compression tag.
func ForTag(tag format.CompressionTag) (Decompressor, error) {
	switch tag {
	case format.CompressionRaw:
		return Raw{}, nil
	case format.CompressionZlib:
		return Zlib{}, nil
	case format.CompressionLZO:
		return LZO1X{}, nil
	default:
		return nil, errs.New(errs.KindCorrupt, fmt.Sprintf("unknown block compression tag %d", tag))
	}
}

// UnknownSize is passed as decompressedSize to DecompressBlock when the
// owning index table does not carry a separate decompressed-size counter
// (v1.x keyword-index tables, per spec §4.C step 1). The length-equality
// check is skipped in that case; the ADLER-32 check still runs. The
// decompressor is then given the payload length as its size argument, which
// Raw and Zlib accept; LZO1X treats it as the exact output length, so an
// LZO1X block of unknown size decodes only if it does not change length.
const UnknownSize = -1

// DecompressBlock strips a block's 4-byte tag + 4-byte big-endian ADLER-32
// header, decompresses the remainder per §4.C.2, and verifies the checksum
// against the decompressed bytes. raw is the full on-disk block payload
// (tag + checksum + compressed/raw bytes); decompressedSize is the size
// recorded for this block in the owning index table, or UnknownSize.
func DecompressBlock(raw []byte, decompressedSize int) ([]byte, error) {
	if len(raw) < 8 {
		return nil, errs.New(errs.KindCorrupt, "block shorter than its 8-byte tag+checksum header")
	}

	tag := format.CompressionTag(uint32(raw[0]) | uint32(raw[1])<<8 | uint32(raw[2])<<16 | uint32(raw[3])<<24)
	wantChecksum := uint32(raw[4])<<24 | uint32(raw[5])<<16 | uint32(raw[6])<<8 | uint32(raw[7])

	dec, err := ForTag(tag)
	if err != nil {
		return nil, err
	}

	// Raw passthrough needs a target length to validate against; when it is
	// unknown, the payload itself is authoritative.
	decodeSize := decompressedSize
	if decodeSize == UnknownSize {
		decodeSize = len(raw) - 8
	}

	out, err := dec.Decompress(raw[8:], decodeSize)
	if err != nil {
		return nil, errs.Wrap(errs.KindCorrupt, "decompress block", err)
	}
	if decompressedSize != UnknownSize && len(out) != decompressedSize {
		return nil, errs.New(errs.KindCorrupt, fmt.Sprintf(
			"decompressed size mismatch: expected %d, got %d", decompressedSize, len(out)))
	}

	if got := adler32.Checksum(out); got != wantChecksum {
		return nil, errs.New(errs.KindCorrupt, "block ADLER-32 checksum mismatch")
	}

	return out, nil
}
