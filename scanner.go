package jsontree

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go4.org/mem"
)

// Token is the type of a lexical token in the grammar.
type Token byte

// Constants defining the valid Token values.
const (
	Invalid Token = iota // invalid token
	LBrace               // left brace "{"
	RBrace               // right brace "}"
	LSquare              // left square bracket "["
	RSquare              // right square bracket "]"
	Comma                // comma ","
	Colon                // colon ":"
	Integer              // number: integer with no fraction or exponent
	Number               // number with fraction and/or exponent
	String               // quoted string
	True                 // constant: true
	False                // constant: false
	Null                 // constant: null

	BlockComment // comment: /* ... */
	LineComment  // comment: // ... <LF>

	// Do not modify the order of these constants without updating the
	// self-delimiting token check below.
)

var tokenStr = [...]string{
	Invalid: "invalid token",
	LBrace:  `"{"`,
	RBrace:  `"}"`,
	LSquare: `"["`,
	RSquare: `"]"`,
	Comma:   `","`,
	Colon:   `":"`,
	Integer: "integer",
	Number:  "number",
	String:  "string",
	True:    "true",
	False:   "false",
	Null:    "null",

	BlockComment: "block comment",
	LineComment:  "line comment",
}

func (t Token) String() string {
	v := int(t)
	if v >= len(tokenStr) {
		return tokenStr[Invalid]
	}
	return tokenStr[v]
}

// A Scanner reads lexical tokens from an input buffer.  Each call to Next
// advances the scanner to the next token, or reports an error.
//
// The grammar scanned is a permissive variant of JSON: numbers may carry a
// leading "+", may have redundant leading zeroes, and may have an exponent
// without a fractional part. String escape sequences are validated but not
// decoded; use Unescape or Unquote to decode them.
type Scanner struct {
	data     []byte
	comments bool // allow comments
	tok      Token
	err      error

	pos, end int // start and end offsets of current token

	// Apparent line and column offsets (0-based)
	pline, pcol int
	eline, ecol int
}

// NewScanner constructs a new lexical scanner that consumes input from data.
// The scanner does not modify data, and does not retain token text beyond a
// view into the input.
func NewScanner(data []byte) *Scanner { return &Scanner{data: data} }

// AllowComments configures the scanner to report (true) or reject (false)
// comment tokens. Comments are a non-standard extension.  If enabled, C++
// style block comments (/* ... */) and line comments (// ...) are recognized
// and emitted as tokens.
func (s *Scanner) AllowComments(ok bool) { s.comments = ok }

// Next advances s to the next token of the input, or reports an error.
// At the end of the input, Next returns io.EOF. Any other error has concrete
// type [*SyntaxError].
func (s *Scanner) Next() error {
	s.err = nil
	s.tok = Invalid

	for !s.atEOF() && isSpace(s.data[s.end]) {
		s.advance()
	}
	s.pos, s.pline, s.pcol = s.end, s.eline, s.ecol
	if s.atEOF() {
		return s.setErr(io.EOF)
	}

	ch := s.data[s.end]
	if t, ok := selfDelim(ch); ok {
		s.advance()
		s.tok = t
		return nil
	}
	switch {
	case isNumStart(ch):
		return s.scanNumber()
	case ch == '"':
		return s.scanString()
	case ch == '/' && s.comments:
		return s.scanComment()
	case ch == 't' || ch == 'f' || ch == 'n':
		return s.scanKeyword()
	}
	return s.failf(ErrNoMatch, "unexpected character %q", ch)
}

// Token returns the type of the current token.
func (s *Scanner) Token() Token { return s.tok }

// Err returns the last error reported by Next.
func (s *Scanner) Err() error { return s.err }

// Text returns the undecoded text of the current token.  The return value is
// a view into the input buffer; the caller must not modify it.
func (s *Scanner) Text() []byte { return s.data[s.pos:s.end] }

// Copy returns a copy of the undecoded text of the current token.
func (s *Scanner) Copy() []byte { return append([]byte(nil), s.Text()...) }

// Span returns the location span of the current token.
func (s *Scanner) Span() Span { return Span{Pos: s.pos, End: s.end} }

// Location returns the complete location of the current token.
func (s *Scanner) Location() Location {
	return Location{
		Span:  s.Span(),
		First: LineCol{Line: s.pline + 1, Column: s.pcol},
		Last:  LineCol{Line: s.eline + 1, Column: s.ecol},
	}
}

// Int64 decodes the text of the current token as an int64.
// It reports an error if the token is not an Integer, or if its value does
// not fit in an int64.
func (s *Scanner) Int64() (int64, error) {
	if s.tok != Integer {
		return 0, fmt.Errorf("token is %v, not %v", s.tok, Integer)
	}
	v, err := strconv.ParseInt(string(s.Text()), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrMalformedNumber, err)
	}
	return v, nil
}

// Float64 decodes the text of the current token as a float64.  It reports an
// error if the token is not an Integer or Number. A value too large in
// magnitude for a float64 decodes to an infinity without error.
func (s *Scanner) Float64() (float64, error) {
	if s.tok != Integer && s.tok != Number {
		return 0, fmt.Errorf("token is %v, not a number", s.tok)
	}
	v, err := strconv.ParseFloat(string(s.Text()), 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, fmt.Errorf("%w: %v", ErrMalformedNumber, err)
	}
	return v, nil
}

// Unescape decodes the text of the current token as a string, with the
// surrounding quotes removed and escape sequences replaced.  It reports an
// error if the token is not a String.
func (s *Scanner) Unescape() ([]byte, error) {
	if s.tok != String {
		return nil, fmt.Errorf("token is %v, not %v", s.tok, String)
	}
	return Unquote(s.Text())
}

// scanNumber scans a numeric literal:
//
//	[+|-] digit+ [. digit+] [(e|E) [+|-] digit+]
//
// A literal with a fractional part or an exponent scans as Number, any other
// as Integer.
func (s *Scanner) scanNumber() error {
	if b := s.data[s.end]; b == '+' || b == '-' {
		s.advance()
	}
	if s.digits() == 0 {
		return s.failf(ErrMalformedNumber, "no digits in number")
	}

	var isFloat bool
	if !s.atEOF() && s.data[s.end] == '.' {
		s.advance()
		if s.digits() == 0 {
			return s.failf(ErrMalformedNumber, "no digits after decimal point")
		}
		isFloat = true
	}
	if !s.atEOF() && (s.data[s.end] == 'e' || s.data[s.end] == 'E') {
		s.advance()
		if !s.atEOF() && (s.data[s.end] == '+' || s.data[s.end] == '-') {
			s.advance()
		}
		if s.digits() == 0 {
			return s.failf(ErrMalformedNumber, "no digits in exponent")
		}
		isFloat = true
	}

	if isFloat {
		s.tok = Number
	} else {
		s.tok = Integer
	}
	return nil
}

func (s *Scanner) scanString() error {
	s.advance() // opening quote
	for !s.atEOF() {
		switch b := s.data[s.end]; b {
		case '"':
			s.advance()
			s.tok = String
			return nil

		case '\\':
			s.advance()
			if s.atEOF() {
				return s.failf(ErrInvalidEscape, "incomplete escape sequence")
			}
			switch e := s.data[s.end]; e {
			case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
				s.advance()
			case 'u':
				s.advance()
				for range 4 {
					if s.atEOF() || !isHexDigit(s.data[s.end]) {
						return s.failf(ErrInvalidEscape, "incomplete Unicode escape")
					}
					s.advance()
				}
			default:
				return s.failf(ErrInvalidEscape, "invalid %q after backslash", e)
			}

		default:
			s.advance()
		}
	}
	return s.failf(ErrUnterminatedString, "missing closing quote")
}

func (s *Scanner) scanComment() error {
	s.advance() // leading "/"
	if s.atEOF() {
		return s.failf(ErrNoMatch, "incomplete comment")
	}
	switch s.data[s.end] {
	case '/': // line comment, to LF or end of input
		for !s.atEOF() {
			b := s.data[s.end]
			s.advance()
			if b == '\n' {
				break
			}
		}
		s.tok = LineComment
		return nil

	case '*': // block comment
		s.advance()
		for !s.atEOF() {
			b := s.data[s.end]
			s.advance()
			if b == '*' && !s.atEOF() && s.data[s.end] == '/' {
				s.advance()
				s.tok = BlockComment
				return nil
			}
		}
		return s.failf(ErrNoMatch, "unterminated block comment")

	default:
		return s.failf(ErrNoMatch, "invalid %q in comment", s.data[s.end])
	}
}

// scanKeyword scans a run of lowercase letters and requires it to be one of
// the literal keywords null, true, or false.
func (s *Scanner) scanKeyword() error {
	start := s.end
	for !s.atEOF() && isNameByte(s.data[s.end]) {
		s.advance()
	}
	word := mem.B(s.data[start:s.end])
	switch {
	case word.Equal(mem.S("null")):
		s.tok = Null
	case word.Equal(mem.S("true")):
		s.tok = True
	case word.Equal(mem.S("false")):
		s.tok = False
	default:
		return s.failf(ErrNoMatch, "unknown constant %q", s.data[start:s.end])
	}
	return nil
}

func (s *Scanner) atEOF() bool { return s.end >= len(s.data) }

// advance consumes one byte of input, maintaining the line and column
// offsets of the cursor.
func (s *Scanner) advance() {
	if s.data[s.end] == '\n' {
		s.eline++
		s.ecol = 0
	} else {
		s.ecol++
	}
	s.end++
}

// digits consumes a run of decimal digits and reports how many were consumed.
func (s *Scanner) digits() (n int) {
	for !s.atEOF() && isDigit(s.data[s.end]) {
		s.advance()
		n++
	}
	return
}

func (s *Scanner) setErr(err error) error {
	s.err = err
	return err
}

func (s *Scanner) failf(base error, msg string, args ...any) error {
	return s.setErr(&SyntaxError{
		Pos:      s.end,
		Location: LineCol{Line: s.eline + 1, Column: s.ecol},
		Message:  fmt.Sprintf(msg, args...),
		Err:      base,
	})
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\r' || ch == '\n' || ch == '\t'
}

func isNumStart(ch byte) bool { return ch == '-' || ch == '+' || isDigit(ch) }
func isDigit(ch byte) bool    { return '0' <= ch && ch <= '9' }
func isNameByte(ch byte) bool { return ch >= 'a' && ch <= 'z' }

func isHexDigit(ch byte) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

var self = [...]Token{LBrace, RBrace, LSquare, RSquare, Comma, Colon}

func selfDelim(ch byte) (Token, bool) {
	i := strings.IndexByte("{}[],:", ch)
	if i >= 0 {
		return self[i], true
	}
	return Invalid, false
}
