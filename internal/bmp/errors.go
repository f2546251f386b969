package bmp

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by this package matches exactly one of
// them with errors.Is.
var (
	ErrBadMagic            = errors.New("bad magic")
	ErrBadLength           = errors.New("bad length")
	ErrUnsupportedVersion  = errors.New("unsupported DIB header version")
	ErrUnsupportedBitDepth = errors.New("unsupported bit depth")
	ErrOpen                = errors.New("open failed")
	ErrIO                  = errors.New("short read or write")
)

// Op values used by ErrOpen and ErrIO.
const (
	OpRead  = "read"
	OpWrite = "write"
)

// Error reports a failure on a named file.
type Error struct {
	Kind  error  // one of the Err* sentinels
	File  string // file (or stream) name
	Op    string // OpRead or OpWrite, for ErrOpen and ErrIO
	Value int    // offending bit depth, for ErrUnsupportedBitDepth
	Err   error  // underlying cause, may be nil
}

func (e *Error) Error() string {
	var msg string
	switch e.Kind {
	case ErrBadMagic:
		msg = fmt.Sprintf("%s does not appear to be a valid BMP file (bad magic)", e.File)
	case ErrBadLength:
		msg = fmt.Sprintf("%s does not appear to be a valid BMP file (bad length)", e.File)
	case ErrUnsupportedVersion:
		msg = fmt.Sprintf("%s is an unsupported version of BMP", e.File)
	case ErrUnsupportedBitDepth:
		msg = fmt.Sprintf("%s is %dbpp which is unsupported", e.File, e.Value)
	case ErrOpen:
		if e.Op == OpWrite {
			msg = fmt.Sprintf("could not open %s for writing", e.File)
		} else {
			msg = fmt.Sprintf("could not open %s for reading", e.File)
		}
	case ErrIO:
		if e.Op == OpWrite {
			msg = fmt.Sprintf("failed to write to %s", e.File)
		} else {
			msg = fmt.Sprintf("failed to read from %s", e.File)
		}
	default:
		msg = fmt.Sprintf("%s: %v", e.File, e.Kind)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the kind sentinel and the underlying cause.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func ioError(file, op string, err error) *Error {
	return &Error{Kind: ErrIO, File: file, Op: op, Err: err}
}
