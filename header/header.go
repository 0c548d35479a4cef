// Package header decodes the MDict archive header: a length-prefixed
// UTF-16LE XML attribute declaration, ADLER-32 checksummed, that selects the
// archive's version, text encoding, and cipher mode.
package header

import (
	"bytes"
	"encoding/binary"
	"encoding/xml"
	"hash/adler32"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/unicode"

	"github.com/go-mdict/mdict/errs"
	"github.com/go-mdict/mdict/format"
	"github.com/go-mdict/mdict/internal/bio"
)

// Header holds the parsed attribute bag plus the derived fields the rest of
// the parser needs: version, text encoding, and cipher mode.
type Header struct {
	Attrs    map[string]string
	Version  format.Version
	Encoding format.Encoding
	Cipher   format.CipherMode
	Title    string
}

// Attr returns the raw attribute value and whether it was present.
func (h *Header) Attr(name string) (string, bool) {
	v, ok := h.Attrs[name]
	return v, ok
}

// Parse reads the header starting at the beginning of src and returns the
// decoded Header plus the absolute byte offset where the rest of the archive
// (the size-word counters block) begins.
func Parse(src *bio.Source) (*Header, int64, error) {
	lenBuf, err := src.ReadExactAt(0, 4)
	if err != nil {
		return nil, 0, err
	}
	declLen := int64(binary.BigEndian.Uint32(lenBuf))
	if declLen <= 0 || declLen > 64<<20 {
		return nil, 0, errs.New(errs.KindInvalidFormat, "implausible header declaration length")
	}

	declBytes, err := src.ReadExactAt(4, int(declLen))
	if err != nil {
		return nil, 0, err
	}

	checksumBuf, err := src.ReadExactAt(4+declLen, 4)
	if err != nil {
		return nil, 0, err
	}
	wantChecksum := binary.LittleEndian.Uint32(checksumBuf)
	if got := adler32.Checksum(declBytes); got != wantChecksum {
		return nil, 0, errs.New(errs.KindInvalidFormat, "header declaration checksum mismatch")
	}

	attrs, err := decodeDeclaration(declBytes)
	if err != nil {
		return nil, 0, err
	}

	h := &Header{Attrs: attrs}
	if v, ok := attrs["GeneratedByEngineVersion"]; ok {
		h.Version = versionFromString(v)
	} else {
		h.Version = format.Version1
	}
	h.Encoding = format.ParseEncoding(attrs["Encoding"])
	h.Title = attrs["Title"]

	if v, ok := attrs["Encrypted"]; ok {
		mode, perr := strconv.Atoi(strings.TrimSpace(v))
		if perr != nil {
			return nil, 0, errs.Wrap(errs.KindInvalidFormat, "parse Encrypted attribute", perr)
		}
		h.Cipher = format.CipherMode(mode)
	}

	return h, 4 + declLen + 4, nil
}

// decodeDeclaration turns the raw UTF-16LE, NUL-terminated XML declaration
// bytes into an attribute map. Unknown attributes are retained verbatim.
func decodeDeclaration(declBytes []byte) (map[string]string, error) {
	utf16le := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
	text, err := utf16le.NewDecoder().Bytes(declBytes)
	if err != nil {
		return nil, errs.Wrap(errs.KindInvalidFormat, "decode UTF-16LE header declaration", err)
	}
	text = bytes.TrimRight(text, "\x00")

	dec := xml.NewDecoder(bytes.NewReader(text))
	dec.Strict = false
	attrs := make(map[string]string)
	for {
		tok, terr := dec.Token()
		if terr != nil {
			break
		}
		if start, ok := tok.(xml.StartElement); ok {
			for _, a := range start.Attr {
				attrs[a.Name.Local] = a.Value
			}

			break
		}
	}

	if len(attrs) == 0 {
		return nil, errs.New(errs.KindInvalidFormat, "header declaration has no recognizable attributes")
	}

	return attrs, nil
}

// versionFromString maps a GeneratedByEngineVersion value (e.g. "1.2",
// "2.0") to the size-word layout it implies.
func versionFromString(v string) format.Version {
	v = strings.TrimSpace(v)
	if dot := strings.IndexByte(v, '.'); dot >= 0 {
		if major, err := strconv.Atoi(v[:dot]); err == nil && major >= 2 {
			return format.Version2
		}

		return format.Version1
	}

	if major, err := strconv.Atoi(v); err == nil && major >= 2 {
		return format.Version2
	}

	return format.Version1
}
