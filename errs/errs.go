// Package errs implements the structured error value every fallible
// operation in this module returns (§7): a Kind drawn from a fixed
// taxonomy, a human-readable message, an optional source Location, and an
// optional actionable Hint. Nothing in this module uses exceptions or
// panics for flow control — every error kind is reachable by inspecting the
// returned value.
package errs

import "fmt"

// Kind enumerates the error taxonomy from §7.
type Kind uint8

const (
	_ Kind = iota
	KindInputTooLarge
	KindRecursionLimitExceeded
	KindTableTooLarge
	KindUnclosedQuote
	KindUnknownSigil
	KindSchemaMismatch
	KindInvalidUTF8
	KindInvalidMagic
	KindUnsupportedVersion
	KindUnsupportedPlatform
	KindBufferTooSmall
	KindIntegrityCheckFailed
	KindDuplicateSection
	KindDuplicateKey
)

func (k Kind) String() string {
	switch k {
	case KindInputTooLarge:
		return "InputTooLarge"
	case KindRecursionLimitExceeded:
		return "RecursionLimitExceeded"
	case KindTableTooLarge:
		return "TableTooLarge"
	case KindUnclosedQuote:
		return "UnclosedQuote"
	case KindUnknownSigil:
		return "UnknownSigil"
	case KindSchemaMismatch:
		return "SchemaMismatch"
	case KindInvalidUTF8:
		return "InvalidUtf8"
	case KindInvalidMagic:
		return "InvalidMagic"
	case KindUnsupportedVersion:
		return "UnsupportedVersion"
	case KindUnsupportedPlatform:
		return "UnsupportedPlatform"
	case KindBufferTooSmall:
		return "BufferTooSmall"
	case KindIntegrityCheckFailed:
		return "IntegrityCheckFailed"
	case KindDuplicateSection:
		return "DuplicateSection"
	case KindDuplicateKey:
		return "DuplicateKey"
	default:
		return "Unknown"
	}
}

// Location pinpoints where in the input an error occurred.
type Location struct {
	Offset  int
	Line    int
	Column  int
	Excerpt string
}

// Error is the structured value every fallible operation returns.
type Error struct {
	Kind     Kind
	Message  string
	Location *Location
	Hint     string
}

func (e *Error) Error() string {
	if e.Location != nil {
		return fmt.Sprintf("%s: %s (line %d, col %d)", e.Kind, e.Message, e.Location.Line, e.Location.Column)
	}

	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Is reports whether target is an *Error with the same Kind, so callers can
// use errors.Is(err, errs.ErrSchemaMismatch) without caring about the
// specific message/location carried by err.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return e.Kind == t.Kind
}

// WithLocation returns a copy of e with Location set.
func (e *Error) WithLocation(loc Location) *Error {
	cp := *e
	cp.Location = &loc

	return &cp
}

// WithHint returns a copy of e with Hint set.
func (e *Error) WithHint(hint string) *Error {
	cp := *e
	cp.Hint = hint

	return &cp
}

// Sentinel errors, one per Kind, usable with errors.Is and as a base for
// WithLocation/WithHint.
var (
	ErrInputTooLarge          = &Error{Kind: KindInputTooLarge, Message: "input exceeds maximum size"}
	ErrRecursionLimitExceeded = &Error{Kind: KindRecursionLimitExceeded, Message: "array nesting exceeds maximum depth"}
	ErrTableTooLarge          = &Error{Kind: KindTableTooLarge, Message: "section exceeds maximum row count"}
	ErrUnclosedQuote          = &Error{Kind: KindUnclosedQuote, Message: "string literal missing terminating quote"}
	ErrUnknownSigil           = &Error{Kind: KindUnknownSigil, Message: "line starts with '#' but matches no sigil rule"}
	ErrSchemaMismatch         = &Error{Kind: KindSchemaMismatch, Message: "row key count disagrees with section schema"}
	ErrInvalidUTF8            = &Error{Kind: KindInvalidUTF8, Message: "input contains invalid UTF-8"}
	ErrInvalidMagic           = &Error{Kind: KindInvalidMagic, Message: "machine container has an invalid magic number"}
	ErrUnsupportedVersion     = &Error{Kind: KindUnsupportedVersion, Message: "machine container version is not supported"}
	ErrUnsupportedPlatform    = &Error{Kind: KindUnsupportedPlatform, Message: "big-endian hosts are not supported in machine format v1"}
	ErrBufferTooSmall         = &Error{Kind: KindBufferTooSmall, Message: "output buffer is smaller than required"}
	ErrIntegrityCheckFailed   = &Error{Kind: KindIntegrityCheckFailed, Message: "machine container header hash mismatch"}
	ErrDuplicateSection       = &Error{Kind: KindDuplicateSection, Message: "section id already present in document"}
	ErrDuplicateKey           = &Error{Kind: KindDuplicateKey, Message: "key already present in schema"}
)

// InputTooLarge builds the InputTooLarge error for the observed size/max.
func InputTooLarge(size, max int) *Error {
	return ErrInputTooLarge.WithHint(fmt.Sprintf("observed %d bytes, maximum is %d bytes", size, max))
}

// RecursionLimitExceeded builds the RecursionLimitExceeded error.
func RecursionLimitExceeded(depth, max int) *Error {
	return ErrRecursionLimitExceeded.WithHint(fmt.Sprintf("observed depth %d, maximum is %d", depth, max))
}

// TableTooLarge builds the TableTooLarge error.
func TableTooLarge(rows, max int) *Error {
	return ErrTableTooLarge.WithHint(fmt.Sprintf("observed %d rows, maximum is %d", rows, max))
}

// BufferTooSmall builds the BufferTooSmall error, naming the required size.
func BufferTooSmall(required int) *Error {
	return ErrBufferTooSmall.WithHint(fmt.Sprintf("required %d bytes", required))
}
