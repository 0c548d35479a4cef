// Package textcodec decodes MDict key and entry bytes according to the
// archive's declared encoding. UTF-16LE, GBK, BIG5, and GB18030 all go
// through golang.org/x/text transforms; UTF-8 is a passthrough.
package textcodec

import (
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"

	"github.com/go-mdict/mdict/errs"
	"github.com/go-mdict/mdict/format"
)

// NulWidth returns the width, in bytes, of the codec-dependent NUL
// terminator MDict appends to stored key bytes: 1 for single-byte/UTF-8
// encodings, 2 for UTF-16.
func NulWidth(enc format.Encoding) int {
	if enc == format.EncodingUTF16LE {
		return 2
	}

	return 1
}

// Decode converts raw archive bytes (already stripped of their NUL
// terminator) to a Go string, per the archive's declared encoding.
func Decode(b []byte, enc format.Encoding) (string, error) {
	codec := encodingFor(enc)
	if codec == nil {
		return string(b), nil
	}

	out, err := codec.NewDecoder().Bytes(b)
	if err != nil {
		return "", errs.Wrap(errs.KindInvalidFormat, "decode "+enc.String()+" text", err)
	}

	return string(out), nil
}

// Encode converts a Go string back to archive bytes in the given encoding;
// it is the inverse of Decode, exercised by the package's round-trip tests.
func Encode(s string, enc format.Encoding) ([]byte, error) {
	codec := encodingFor(enc)
	if codec == nil {
		return []byte(s), nil
	}

	out, err := codec.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, errs.Wrap(errs.KindInvalidFormat, "encode "+enc.String()+" text", err)
	}

	return out, nil
}

func encodingFor(enc format.Encoding) encoding.Encoding {
	switch enc {
	case format.EncodingUTF16LE:
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
	case format.EncodingGBK:
		return simplifiedchinese.GBK
	case format.EncodingGB18030:
		return simplifiedchinese.GB18030
	case format.EncodingBIG5:
		return traditionalchinese.Big5
	default:
		return nil
	}
}

// CanonicalizeMddKey strips an mdd key's leading '\' and rewrites '\' path
// separators to '/'. MDict's own source treats the leading byte as an
// unconditional single backslash and aborts otherwise; per the spec's
// resolved open question, this implementation returns InvalidFormat instead.
func CanonicalizeMddKey(key string) (string, error) {
	if len(key) == 0 || key[0] != '\\' {
		return "", errs.New(errs.KindInvalidFormat, "mdd key does not begin with '\\'")
	}

	out := make([]byte, 0, len(key)-1)
	for i := 1; i < len(key); i++ {
		if key[i] == '\\' {
			out = append(out, '/')
		} else {
			out = append(out, key[i])
		}
	}

	return string(out), nil
}
