package codec

import "github.com/go-mdict/mdict/errs"

// Raw is the no-op decompressor for blocks tagged 00 00 00 00: the payload
// is copied as-is.
type Raw struct{}

var _ Decompressor = Raw{}

func (Raw) Decompress(src []byte, decompressedSize int) ([]byte, error) {
	if len(src) != decompressedSize {
		return nil, errs.New(errs.KindCorrupt, "raw block length does not match declared decompressed size")
	}

	out := make([]byte, len(src))
	copy(out, src)

	return out, nil
}
