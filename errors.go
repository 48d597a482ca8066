package jsontree

import (
	"errors"
	"fmt"
)

// Sentinel errors reported for the various classes of parse failure.  Errors
// returned by the scanner and stream parser wrap one of these values, so the
// caller can classify a failure with errors.Is.
var (
	// ErrMalformedNumber: a numeric literal violates the number grammar,
	// or an integer literal does not fit in an int64.
	ErrMalformedNumber = errors.New("malformed number")

	// ErrUnterminatedString: a string literal has no closing quote.
	ErrUnterminatedString = errors.New("unterminated string")

	// ErrInvalidEscape: a string literal contains an invalid or incomplete
	// escape sequence.
	ErrInvalidEscape = errors.New("invalid escape sequence")

	// ErrNoMatch: no grammar production applies at the current position.
	// This includes unexpected characters, truncated keywords, empty
	// objects, trailing commas, and trailing input after a complete value.
	ErrNoMatch = errors.New("no grammar production matches")

	// ErrDepthExceeded: the nesting depth of the input exceeds the
	// configured limit.
	ErrDepthExceeded = errors.New("nesting depth exceeded")
)

// SyntaxError is the concrete type of errors reported by the scanner and the
// stream parser. It records where in the input the failure was detected.
type SyntaxError struct {
	Pos      int     // byte offset where the error was detected
	Location LineCol // line and column of Pos
	Message  string

	Err error // the underlying cause, usually one of the sentinel errors
}

// Error satisfies the error interface.
func (s *SyntaxError) Error() string {
	return fmt.Sprintf("at %s (offset %d): %s", s.Location, s.Pos, s.Message)
}

// Unwrap supports error wrapping.
func (s *SyntaxError) Unwrap() error { return s.Err }
