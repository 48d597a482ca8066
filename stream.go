package jsontree

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
)

// An Anchor represents a location in source text. The methods of an Anchor
// will report the location, token type, and contents of the anchor.
type Anchor interface {
	Token() Token       // Returns the token type of the anchor
	Text() []byte       // Returns a view of the raw (undecoded) text of the anchor
	Copy() []byte       // Returns a copy of the raw text of the anchor
	Location() Location // Returns the full location of the anchor
}

// A Handler handles events from parsing an input stream.  If a method reports
// an error, parsing stops and that error is returned to the caller.
// The parser ensures objects and arrays are correctly balanced.
//
// The Anchor argument to a Handler method is only valid for the duration of
// that method call. If the method needs to retain information about the
// location after it returns, it must copy the relevant data.
type Handler interface {
	// Begin a new object, whose open brace is at loc.
	BeginObject(loc Anchor) error

	// End the most-recently-opened object, whose close brace is at loc.
	EndObject(loc Anchor) error

	// Begin a new array, whose open bracket is at loc.
	BeginArray(loc Anchor) error

	// End the most-recently-opened array, whose close bracket is at loc.
	EndArray(loc Anchor) error

	// Begin a new object member, whose key is at loc.  The text of the key is
	// still quoted; the handler is responsible for unescaping key values if
	// the plain string is required (see Unquote).
	BeginMember(loc Anchor) error

	// End the current object member giving the location and type of the token
	// that terminated the member (either Comma or RBrace).
	EndMember(loc Anchor) error

	// Report a data value at the given location. The type of the value can be
	// recovered from the token. String tokens are quoted.
	Value(loc Anchor) error

	// EndOfInput reports the end of the input stream.
	EndOfInput(loc Anchor)
}

// CommentHandler is an optional interface that a Handler may implement to
// handle comment tokens. If a handler implements this method and comments are
// enabled in the scanner, Comment will be called for each comment token that
// occurs in the input. If the handler does not provide this method, comments
// will be silently discarded.
type CommentHandler interface {
	// Process the line or block comment at the specified location.
	// Line comments include their leading "//" and trailing newline (if present).
	// Block comments include their leading "/*" and trailing "*/".
	Comment(loc Anchor)
}

// DefaultMaxDepth is the nesting depth limit used by a Stream unless the
// caller overrides it with SetMaxDepth.
const DefaultMaxDepth = 10000

// Stream is a stream parser that consumes input and delivers events to a
// Handler corresponding with the structure of the input.
//
// The grammar differs from strict JSON in two fixed respects: numeric
// literals are permissive (see Scanner), and an object must contain at least
// one member, so "{}" is a syntax error.
type Stream struct {
	sc       *Scanner
	maxDepth int
	tcomma   bool // allow trailing commas in objects and arrays
}

// NewStream constructs a new Stream that consumes input from data.
func NewStream(data []byte) *Stream { return NewStreamWithScanner(NewScanner(data)) }

// NewStreamWithScanner constructs a new Stream that consumes input from sc.
func NewStreamWithScanner(sc *Scanner) *Stream {
	return &Stream{sc: sc, maxDepth: DefaultMaxDepth}
}

// AllowComments configures the scanner associated with s to report (true) or
// reject (false) comment tokens.
func (s *Stream) AllowComments(ok bool) { s.sc.AllowComments(ok) }

// AllowTrailingCommas configures the parser to allow (true) or reject (false)
// trailing commas in objects and arrays.
func (s *Stream) AllowTrailingCommas(ok bool) { s.tcomma = ok }

// SetMaxDepth sets the maximum nesting depth of objects and arrays the parser
// will accept before failing with ErrDepthExceeded. Values n <= 0 select
// DefaultMaxDepth.
func (s *Stream) SetMaxDepth(n int) {
	if n <= 0 {
		n = DefaultMaxDepth
	}
	s.maxDepth = n
}

func (s *Stream) recoverParseError(errp *error) {
	if serr := recover(); serr != nil {
		switch err := serr.(type) {
		case *SyntaxError:
			*errp = err
		case handlerError:
			*errp = err.error
		default:
			panic(serr)
		}
	}
}

// Parse parses the input stream and delivers events to h until either an
// error occurs or the input is exhausted. In case of a syntax error, the
// returned error has type [*SyntaxError].
func (s *Stream) Parse(h Handler) (err error) {
	defer s.recoverParseError(&err)

	for {
		if err := s.nextToken(h); err == io.EOF {
			h.EndOfInput(s.sc)
			return nil
		} else if err != nil {
			s.scanError(err)
		}
		s.parseElement(h, 1)
	}
}

// ParseOne parses a single value from the input stream and delivers events to
// h until the value is complete or an error occurs. If no further value is
// available from the input, ParseOne returns io.EOF. In case of a syntax
// error, the returned error has type [*SyntaxError].
func (s *Stream) ParseOne(h Handler) (err error) {
	defer s.recoverParseError(&err)

	if err := s.nextToken(h); err == io.EOF {
		h.EndOfInput(s.sc)
		return err
	} else if err != nil {
		s.scanError(err)
	}
	s.parseElement(h, 1)
	return nil
}

// parseElement consumes a single value of any type at the given nesting
// depth. Precondition: token != Invalid.
func (s *Stream) parseElement(h Handler, depth int) {
	switch tok := s.sc.Token(); tok {
	case LBrace:
		s.checkDepth(depth)
		s.checkError(h.BeginObject(s.sc))
		s.parseMembers(h, depth)
		s.require(RBrace)
		s.checkError(h.EndObject(s.sc))
	case LSquare:
		s.checkDepth(depth)
		s.checkError(h.BeginArray(s.sc))
		s.parseElements(h, depth)
		s.require(RSquare)
		s.checkError(h.EndArray(s.sc))
	case Integer, Number, String, True, False, Null:
		s.checkError(h.Value(s.sc))
	default:
		s.syntaxError(ErrNoMatch, "unexpected %v", tok)
	}
}

// checkDepth fails the parse if opening a container at the given depth would
// exceed the nesting limit. Only containers count toward the limit.
func (s *Stream) checkDepth(depth int) {
	if depth > s.maxDepth {
		s.syntaxError(ErrDepthExceeded, "nesting depth exceeds %d", s.maxDepth)
	}
}

// parseMembers consumes one or more key:value object members.
// An object with no members is a syntax error.
// Precondition: token == LBrace.
// Postcondition: token == RBrace.
func (s *Stream) parseMembers(h Handler, depth int) {
	if tok := s.advance(h, String, RBrace); tok == RBrace {
		s.syntaxError(ErrNoMatch, "object must have at least one member")
	}
	for {
		// Parse a single member: "key": value
		s.checkError(h.BeginMember(s.sc))
		s.advance(h, Colon)
		s.advance(h)
		s.parseElement(h, depth+1)

		// Check whether we have more members (",") or are done ("}").
		tok := s.advance(h, RBrace, Comma)
		s.checkError(h.EndMember(s.sc))
		if tok == RBrace {
			return // end of object
		} else if s.tcomma {
			// If trailing commas are allowed and the next token is a close
			// brace, consider this a valid end of the object. Otherwise, it
			// must be a key for a subsequent member.
			if next := s.advance(h, String, RBrace); next == RBrace {
				return // end of object with trailing comma
			}
		} else {
			s.advance(h, String) // advance to next key
		}
	}
}

// parseElements consumes zero or more comma-separated array values.
// Precondition: token == LSquare.
// Postcondition: token == RSquare.
func (s *Stream) parseElements(h Handler, depth int) {
	if tok := s.advance(h); tok == RSquare {
		return // end of array
	}
	s.parseElement(h, depth+1)
	for {
		if tok := s.advance(h, RSquare, Comma); tok == RSquare {
			return // end of array
		}

		// If trailing commas are allowed and the next token is a close
		// bracket, consider this a valid end of the array; otherwise it will
		// fail on the next element.
		if next := s.advance(h); s.tcomma && next == RSquare {
			return // end of array with trailing comma
		}
		s.parseElement(h, depth+1)
	}
}

func (s *Stream) nextToken(h Handler) error {
	for {
		if err := s.sc.Next(); err != nil {
			return err
		}
		// If we see a comment token, pass it to the handler if it implements
		// CommentHandler. Either way, discard the comment and fetch the next
		// available token for the rest of the parser.
		if tok := s.sc.Token(); tok == LineComment || tok == BlockComment {
			if ch, ok := h.(CommentHandler); ok {
				ch.Comment(s.sc)
			}
			continue
		}
		return nil
	}
}

func (s *Stream) advance(h Handler, tokens ...Token) Token {
	if err := s.nextToken(h); err == io.EOF {
		if len(tokens) == 0 {
			s.syntaxError(ErrNoMatch, "unexpected end of input")
		}
		s.syntaxError(ErrNoMatch, "%s", tokLabel(tokens, "end of input"))
	} else if err != nil {
		s.scanError(err)
	}
	tok := s.sc.Token()
	if len(tokens) != 0 && !slices.Contains(tokens, tok) {
		s.syntaxError(ErrNoMatch, "%s", tokLabel(tokens, tok))
	}
	return tok
}

func (s *Stream) require(token Token) {
	if tok := s.sc.Token(); tok != token {
		s.syntaxError(ErrNoMatch, "expected %v, got %v", token, tok)
	}
}

// scanError propagates a scanner failure out of the parse. Scanner errors
// already carry their own position.
func (s *Stream) scanError(err error) {
	var serr *SyntaxError
	if errors.As(err, &serr) {
		panic(serr)
	}
	s.syntaxError(err, "%v", err)
}

func (s *Stream) syntaxError(base error, msg string, args ...any) {
	loc := s.sc.Location()
	panic(&SyntaxError{
		Pos:      loc.Pos,
		Location: loc.First,
		Message:  fmt.Sprintf(msg, args...),
		Err:      base,
	})
}

func (s *Stream) checkError(err error) {
	if err != nil {
		panic(handlerError{err})
	}
}

type handlerError struct{ error }

func (h handlerError) Unwrap() error { return h.error }

// tokLabel makes a human-readable summary string for the given token types.
func tokLabel(tokens []Token, got any) string {
	if len(tokens) == 0 {
		return fmt.Sprint(got)
	}
	var exp string
	if len(tokens) == 1 {
		exp = tokens[0].String()
	} else {
		last := len(tokens) - 1
		ss := make([]string, last)
		for i, tok := range tokens[:last] {
			ss[i] = tok.String()
		}
		exp = strings.Join(ss, ", ") + " or " + tokens[last].String()
	}
	return fmt.Sprintf("expected %s, got %v", exp, got)
}
