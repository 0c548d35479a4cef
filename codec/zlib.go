package codec

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/zlib"

	"github.com/go-mdict/mdict/errs"
)

// Zlib decompresses blocks tagged 02 00 00 00 using klauspost/compress's
// drop-in zlib reader (the same dependency mebo and pebble both already
// pull in for faster-than-stdlib DEFLATE).
type Zlib struct{}

var _ Decompressor = Zlib{}

func (Zlib) Decompress(src []byte, decompressedSize int) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(src))
	if err != nil {
		return nil, errs.Wrap(errs.KindCorrupt, "open zlib stream", err)
	}
	defer r.Close()

	out := make([]byte, 0, decompressedSize)
	buf := bytes.NewBuffer(out)
	if _, err := io.Copy(buf, r); err != nil {
		return nil, errs.Wrap(errs.KindCorrupt, "inflate zlib stream", err)
	}

	return buf.Bytes(), nil
}
