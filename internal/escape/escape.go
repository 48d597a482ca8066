// Package escape handles quoting and unquoting of JSON-style strings.
package escape

import (
	"errors"
	"unicode/utf8"

	"go4.org/mem"
)

var hexDigit = []byte("0123456789abcdef")

// Quote encodes a string, escaping characters as needed for inclusion in a
// quoted string literal. The enclosing quotation marks are not added.
func Quote(src mem.RO) []byte {
	out := make([]byte, 0, src.Len())
	for src.Len() != 0 {
		r, n := mem.DecodeRune(src)
		src = src.SliceFrom(n)
		switch {
		case r == '"' || r == '\\':
			out = append(out, '\\', byte(r))
		case r >= ' ' && r < utf8.RuneSelf:
			out = append(out, byte(r))
		case r == '\b':
			out = append(out, '\\', 'b')
		case r == '\f':
			out = append(out, '\\', 'f')
		case r == '\n':
			out = append(out, '\\', 'n')
		case r == '\r':
			out = append(out, '\\', 'r')
		case r == '\t':
			out = append(out, '\\', 't')
		case r < ' ':
			out = append(out, '\\', 'u', '0', '0', hexDigit[r>>4], hexDigit[r&15])
		case r == '\u2028' || r == '\u2029':
			// Line and paragraph separators, valid in JSON strings but not in
			// JavaScript source. Escape them for safety.
			out = append(out, '\\', 'u', '2', '0', '2', hexDigit[r&15])
		default:
			out = utf8.AppendRune(out, r)
		}
	}
	return out
}

// Unquote decodes the text of a string literal. The input must have the
// enclosing quotation marks already removed.
//
// Escape sequences are replaced with their unescaped equivalents. Invalid
// escapes are replaced by the Unicode replacement rune. Unquote reports an
// error for an incomplete escape sequence.
func Unquote(src mem.RO) ([]byte, error) {
	out := make([]byte, 0, src.Len())
	for i := 0; i < src.Len(); {
		b := src.At(i)
		if b != '\\' {
			out = append(out, b)
			i++
			continue
		}
		i++ // skip the backslash
		if i >= src.Len() {
			return nil, errors.New("incomplete escape sequence")
		}
		switch c := src.At(i); c {
		case '"', '\\', '/':
			out = append(out, c)
		case 'b':
			out = append(out, '\b')
		case 'f':
			out = append(out, '\f')
		case 'n':
			out = append(out, '\n')
		case 'r':
			out = append(out, '\r')
		case 't':
			out = append(out, '\t')
		case 'u':
			if src.Len()-i-1 < 4 {
				return nil, errors.New("incomplete Unicode escape")
			}
			r, ok := parseHex4(src, i+1)
			if !ok {
				r = utf8.RuneError
			}
			out = utf8.AppendRune(out, r)
			i += 4
		default:
			out = utf8.AppendRune(out, utf8.RuneError)
		}
		i++
	}
	return out, nil
}

// parseHex4 decodes the four hex digits of src at offset pos.
func parseHex4(src mem.RO, pos int) (rune, bool) {
	var v rune
	for _, b := range []byte{src.At(pos), src.At(pos + 1), src.At(pos + 2), src.At(pos + 3)} {
		v <<= 4
		switch {
		case '0' <= b && b <= '9':
			v += rune(b - '0')
		case 'a' <= b && b <= 'f':
			v += rune(b - 'a' + 10)
		case 'A' <= b && b <= 'F':
			v += rune(b - 'A' + 10)
		default:
			return 0, false
		}
	}
	return v, true
}
