// Package errs defines the error taxonomy used across the mdict parser and
// lookup engine, and the sentinel/wrapping helpers built around it.
package errs

import (
	"errors"
	"fmt"
)

// Kind classifies why an operation failed, matching the archive's error
// taxonomy: callers can branch on Kind without string-matching messages.
type Kind uint8

const (
	// KindInvalidInput: the path is not .mdx, not a file, or not canonical.
	KindInvalidInput Kind = iota
	// KindInvalidFormat: header parse failure or unknown version.
	KindInvalidFormat
	// KindCorrupt: checksum mismatch, decompression failure, or an
	// out-of-range locator.
	KindCorrupt
	// KindUnsupported: a cipher variant this parser does not implement.
	KindUnsupported
	// KindNotFound: the key is absent from the index.
	KindNotFound
	// KindIO: the underlying read failed.
	KindIO
)

func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid input"
	case KindInvalidFormat:
		return "invalid format"
	case KindCorrupt:
		return "corrupt"
	case KindUnsupported:
		return "unsupported"
	case KindNotFound:
		return "not found"
	case KindIO:
		return "io"
	default:
		return "unknown"
	}
}

// Error is the concrete error type returned by this module. Kind lets
// callers use errors.Is against the Sentinel of the matching Kind.
type Error struct {
	Kind Kind
	msg  string
	err  error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("mdict: %s: %s: %v", e.Kind, e.msg, e.err)
	}

	return fmt.Sprintf("mdict: %s: %s", e.Kind, e.msg)
}

func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is the Sentinel for e's Kind, so
// errors.Is(err, errs.ErrNotFound) works regardless of the attached message.
func (e *Error) Is(target error) bool {
	return target == Sentinel(e.Kind)
}

// New creates an *Error of the given Kind with a message.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, msg: msg}
}

// Wrap creates an *Error of the given Kind that wraps an underlying error.
func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, msg: msg, err: err}
}

// Sentinel errors, one per Kind, for plain errors.Is comparisons.
var (
	ErrInvalidInput  = errors.New("mdict: invalid input")
	ErrInvalidFormat = errors.New("mdict: invalid format")
	ErrCorrupt       = errors.New("mdict: corrupt")
	ErrUnsupported   = errors.New("mdict: unsupported")
	ErrNotFound      = errors.New("mdict: not found")
	ErrIO            = errors.New("mdict: io")
)

// Sentinel returns the sentinel error for a Kind.
func Sentinel(kind Kind) error {
	switch kind {
	case KindInvalidInput:
		return ErrInvalidInput
	case KindInvalidFormat:
		return ErrInvalidFormat
	case KindCorrupt:
		return ErrCorrupt
	case KindUnsupported:
		return ErrUnsupported
	case KindNotFound:
		return ErrNotFound
	case KindIO:
		return ErrIO
	default:
		return nil
	}
}

// Of reports the Kind of err if it (or something it wraps) is an *Error,
// and ok=true. Otherwise ok=false.
func Of(err error) (kind Kind, ok bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}

	return 0, false
}
