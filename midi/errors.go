package midi

import "fmt"

// ErrorKind discriminates the failure classes a decoder can report.
type ErrorKind uint8

const (
	// UnexpectedEnd means the input was exhausted mid-message.
	UnexpectedEnd ErrorKind = iota
	// ByteOverflow means a 7-bit field had its top bit set.
	ByteOverflow
	// ContextlessRunningStatus means a data byte led the stream with no
	// prior channel message recorded in the receiver context.
	ContextlessRunningStatus
	// NoEndOfSystemExclusiveFlag means the buffer ended inside a sysex
	// message without an 0xF7 terminator.
	NoEndOfSystemExclusiveFlag
	// VLQOverflow means a variable-length quantity ran past four bytes.
	VLQOverflow
	// UndefinedSystemRealTimeMessage means a reserved status byte (0xF9 or
	// 0xFD) was encountered.
	UndefinedSystemRealTimeMessage
	// Invalid covers all other structural violations.
	Invalid
	// NotImplemented marks a recognised but unsupported payload class.
	NotImplemented
)

// String returns the kind name.
func (k ErrorKind) String() string {
	switch k {
	case UnexpectedEnd:
		return "unexpected end of input"
	case ByteOverflow:
		return "byte overflow"
	case ContextlessRunningStatus:
		return "running status without context"
	case NoEndOfSystemExclusiveFlag:
		return "missing end of system exclusive flag"
	case VLQOverflow:
		return "variable-length quantity overflow"
	case UndefinedSystemRealTimeMessage:
		return "undefined system real-time message"
	case Invalid:
		return "invalid"
	case NotImplemented:
		return "not implemented"
	default:
		return fmt.Sprintf("unknown(%d)", k)
	}
}

// ParseError is the error type returned by all decoders in this package.
type ParseError struct {
	Kind   ErrorKind
	Byte   byte   // The offending byte, when meaningful.
	Reason string // Free-form detail for Invalid / NotImplemented.
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case ByteOverflow, UndefinedSystemRealTimeMessage:
		return fmt.Sprintf("midi: %s: 0x%02X", e.Kind, e.Byte)
	case Invalid, NotImplemented:
		return fmt.Sprintf("midi: %s: %s", e.Kind, e.Reason)
	default:
		return "midi: " + e.Kind.String()
	}
}

func errEnd() *ParseError {
	return &ParseError{Kind: UnexpectedEnd}
}

func errOverflow(b byte) *ParseError {
	return &ParseError{Kind: ByteOverflow, Byte: b}
}

func errInvalid(format string, args ...interface{}) *ParseError {
	return &ParseError{Kind: Invalid, Reason: fmt.Sprintf(format, args...)}
}

func errNotImplemented(feature string) *ParseError {
	return &ParseError{Kind: NotImplemented, Reason: feature}
}
