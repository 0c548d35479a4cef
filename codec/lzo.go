package codec

import "github.com/go-mdict/mdict/internal/lzo"

// LZO1X decompresses blocks tagged 01 00 00 00.
type LZO1X struct{}

var _ Decompressor = LZO1X{}

func (LZO1X) Decompress(src []byte, decompressedSize int) ([]byte, error) {
	return lzo.Decompress1X(src, decompressedSize)
}
