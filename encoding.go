package jsontree

import (
	"errors"
	"fmt"

	"github.com/kwardlow/jsontree/internal/escape"

	"go4.org/mem"
)

// Quote encodes src as a quoted string value. The contents are escaped and
// double quotation marks are added.
func Quote(src string) string {
	return `"` + string(escape.Quote(mem.S(src))) + `"`
}

// Unquote decodes a quoted string value. Double quotation marks are removed,
// and escape sequences are replaced with their unescaped equivalents.
//
// Invalid escapes are replaced by the Unicode replacement rune. Unquote
// reports an error wrapping ErrInvalidEscape for an incomplete escape
// sequence.
func Unquote(src []byte) ([]byte, error) {
	if len(src) < 2 || src[0] != '"' || src[len(src)-1] != '"' {
		return nil, errors.New("missing quotations")
	}
	dec, err := escape.Unquote(mem.B(src[1 : len(src)-1]))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEscape, err)
	}
	return dec, nil
}
