package smf

import (
	"fmt"

	"github.com/pkg/errors"

	"midiwire/midi"
)

// FileError wraps a parse failure with enough position context to
// diagnose a damaged file. Partial holds everything decoded before the
// failure, so a caller may choose to keep the intact tracks.
type FileError struct {
	Err       error
	Offset    int    // byte offset of the failed element
	Parsing   string // what was being parsed, e.g. "track 2"
	Partial   *File  // successfully decoded prefix, possibly nil
	Remaining int    // bytes left unconsumed
	NextBytes []byte // up to eight bytes at the failure offset
}

func (e *FileError) Error() string {
	return fmt.Sprintf("smf: %v (offset %d, parsing %s, % X ahead)",
		e.Err, e.Offset, e.Parsing, e.NextBytes)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// fileErr builds a FileError for a failure at data[offset].
func fileErr(err error, data []byte, offset int, partial *File, format string, args ...interface{}) *FileError {
	next := data[min(offset, len(data)):]
	if len(next) > 8 {
		next = next[:8]
	}
	return &FileError{
		Err:       errors.Wrapf(err, format, args...),
		Offset:    offset,
		Parsing:   fmt.Sprintf(format, args...),
		Partial:   partial,
		Remaining: len(data) - offset,
		NextBytes: next,
	}
}

func errUnexpectedEnd() error {
	return &midi.ParseError{Kind: midi.UnexpectedEnd}
}

func errInvalidf(format string, args ...interface{}) error {
	return &midi.ParseError{Kind: midi.Invalid, Reason: fmt.Sprintf(format, args...)}
}
