package ast_test

import (
	"errors"
	"testing"

	"github.com/kwardlow/jsontree"
	"github.com/kwardlow/jsontree/ast"
	"github.com/tailscale/hujson"
)

func mustParse(t *testing.T, input string) ast.Value {
	t.Helper()
	v, err := ast.ParseString(input)
	if err != nil {
		t.Fatalf("Parse %#q failed: %v", input, err)
	}
	return v
}

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  ast.Value
	}{
		// Keyword literals.
		{`null`, ast.Null{}},
		{`true`, ast.Bool(true)},
		{`false`, ast.Bool(false)},

		// Integer literals, signed and unsigned.
		{`0`, ast.Int(0)},
		{`-1`, ast.Int(-1)},
		{`123`, ast.Int(123)},
		{`-123`, ast.Int(-123)},
		{`+5`, ast.Int(5)},
		{`007`, ast.Int(7)},
		{`9223372036854775807`, ast.Int(1<<63 - 1)},
		{`-9223372036854775808`, ast.Int(-1 << 63)},

		// A decimal point or exponent makes a literal floating-point,
		// even when its value is a whole number.
		{`123.456`, ast.Float(123.456)},
		{`-123.456`, ast.Float(-123.456)},
		{`1.0`, ast.Float(1)},
		{`1.23e4`, ast.Float(12300)},
		{`1.23e+4`, ast.Float(12300)},
		{`1.23e-4`, ast.Float(0.000123)},
		{`1.23E4`, ast.Float(12300)},
		{`2e3`, ast.Float(2000)},
		{`+0.5`, ast.Float(0.5)},

		// Strings, with escape processing.
		{`""`, ast.String("")},
		{`"hello"`, ast.String("hello")},
		{`"a\tb\nc"`, ast.String("a\tb\nc")},
		{`"say \"when\""`, ast.String(`say "when"`)},
		{`"a \u0026 b"`, ast.String("a & b")},

		// Arrays.
		{`[]`, ast.Array{}},
		{`[1, 2, 3]`, ast.Array{ast.Int(1), ast.Int(2), ast.Int(3)}},
		{`["a", "b", "c"]`, ast.Array{ast.String("a"), ast.String("b"), ast.String("c")}},
		{`[null, [true, []]]`, ast.Array{
			ast.Null{},
			ast.Array{ast.Bool(true), ast.Array{}},
		}},

		// Objects.
		{`{"a": 1, "b": 2}`, ast.Object{
			ast.Field("a", ast.Int(1)),
			ast.Field("b", ast.Int(2)),
		}},
		{`{"a": 1, "b": [1, 2, 3]}`, ast.Object{
			ast.Field("a", ast.Int(1)),
			ast.Field("b", ast.Array{ast.Int(1), ast.Int(2), ast.Int(3)}),
		}},
		{`{"out": {"in": {"deep": null}}}`, ast.Object{
			ast.Field("out", ast.Object{
				ast.Field("in", ast.Object{
					ast.Field("deep", ast.Null{}),
				}),
			}),
		}},

		// Duplicate keys: the last value wins, and the key is not repeated.
		{`{"a": 1, "a": 2, "b": 3}`, ast.Object{
			ast.Field("a", ast.Int(2)),
			ast.Field("b", ast.Int(3)),
		}},
	}

	for _, test := range tests {
		got := mustParse(t, test.input)
		if !ast.Equal(got, test.want) {
			t.Errorf("Parse %#q:\ngot:  %v\nwant: %v", test.input, got, test.want)
		}
	}
}

func TestParse_document(t *testing.T) {
	const input = `{
        "name": "John Doe",
        "age": 30,
        "is_student": false,
        "marks": [90.0, -80.0, 85.1],
        "address": {
            "city": "New York",
            "zip": 10001
        }
    }`

	root, ok := mustParse(t, input).(ast.Object)
	if !ok {
		t.Fatal("Root is not an object")
	}
	if got := root.Len(); got != 5 {
		t.Errorf("Root has %d members, want 5", got)
	}
	marks := root.Find("marks")
	if marks == nil {
		t.Fatal(`Key "marks" not found`)
	}
	want := ast.Array{ast.Float(90), ast.Float(-80), ast.Float(85.1)}
	if !ast.Equal(marks.Value, want) {
		t.Errorf("marks: got %v, want %v", marks.Value, want)
	}
	zip, err := ast.ParseString(`10001`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	addr, ok := root.Find("address").Value.(ast.Object)
	if !ok {
		t.Fatal("address is not an object")
	}
	if got := addr.Find("zip"); got == nil || !ast.Equal(got.Value, zip) {
		t.Errorf("address.zip: got %v, want %v", got, zip)
	}
}

func TestParse_whitespace(t *testing.T) {
	base := mustParse(t, `{"a":[1,2,{"b":true}],"c":"d"}`)
	spaced := []string{
		` {"a":[1,2,{"b":true}],"c":"d"} `,
		"{\n  \"a\": [ 1 , 2 , { \"b\" : true } ] ,\n  \"c\": \"d\"\n}",
		"\t{ \"a\"\t:\t[1,\r\n2,{ \"b\": true}\n],\"c\" : \"d\" }\r\n",
	}
	for _, input := range spaced {
		got := mustParse(t, input)
		if !ast.Equal(got, base) {
			t.Errorf("Parse %#q:\ngot:  %v\nwant: %v", input, got, base)
		}
	}
}

func TestParse_idempotent(t *testing.T) {
	inputs := []string{
		`null`, `-1.25e3`, `[1, [2, [3]]]`, `{"a": {"b": [true, null]}}`,
	}
	for _, input := range inputs {
		v1 := mustParse(t, input)
		v2 := mustParse(t, input)
		if !ast.Equal(v1, v2) {
			t.Errorf("Parse %#q: independent parses differ: %v vs %v", input, v1, v2)
		}
	}
}

func TestParse_errors(t *testing.T) {
	tests := []struct {
		input string
		want  error // sentinel the parse error must wrap
	}{
		{``, jsontree.ErrNoMatch},   // empty input
		{`  `, jsontree.ErrNoMatch}, // empty input
		{`{}`, jsontree.ErrNoMatch}, // empty object
		{`[1, 2,]`, jsontree.ErrNoMatch},
		{`tru`, jsontree.ErrNoMatch},
		{`"unterminated`, jsontree.ErrUnterminatedString},
		{`[1 2]`, jsontree.ErrNoMatch},
		{`{"a":}`, jsontree.ErrNoMatch},

		// The whole input must be one value.
		{`1 2`, jsontree.ErrNoMatch},
		{`[1] [2]`, jsontree.ErrNoMatch},
		{`null garbage`, jsontree.ErrNoMatch},

		{`+`, jsontree.ErrMalformedNumber},
		{`5e`, jsontree.ErrMalformedNumber},
		{`12.`, jsontree.ErrMalformedNumber},
		{`9223372036854775808`, jsontree.ErrMalformedNumber}, // out of int64 range
	}

	for _, test := range tests {
		v, err := ast.ParseString(test.input)
		if err == nil {
			t.Errorf("Parse %#q: got %v, want error wrapping %v", test.input, v, test.want)
			continue
		}
		if !errors.Is(err, test.want) {
			t.Errorf("Parse %#q: got error %v, want wrapping %v", test.input, err, test.want)
		}
		if v != nil {
			t.Errorf("Parse %#q: got partial value %v with error", test.input, v)
		}
	}
}

func TestParse_maxDepth(t *testing.T) {
	opts := ast.Options{MaxDepth: 3}

	if _, err := opts.Parse([]byte(`[[[1]]]`)); err != nil {
		t.Errorf("Parse within depth limit failed: %v", err)
	}
	if _, err := opts.Parse([]byte(`[[[[1]]]]`)); !errors.Is(err, jsontree.ErrDepthExceeded) {
		t.Errorf("Parse: got error %v, want wrapping %v", err, jsontree.ErrDepthExceeded)
	}

	// The default limit admits ordinary nesting.
	deep := ""
	for range 100 {
		deep = "[" + deep + "]"
	}
	if _, err := ast.ParseString(deep); err != nil {
		t.Errorf("Parse 100-deep array failed: %v", err)
	}
}

func TestParse_dialect(t *testing.T) {
	const input = `{
  // leading comment
  "a": [1, 2, 3,], /* block */
  "b": {"c": true,},
}`
	opts := ast.Options{AllowComments: true, AllowTrailingCommas: true}

	lenient, err := opts.Parse([]byte(input))
	if err != nil {
		t.Fatalf("Lenient parse failed: %v", err)
	}

	// The strict dialect must reject the same input.
	if _, err := ast.ParseString(input); err == nil {
		t.Error("Strict parse succeeded, want error")
	}

	// Cross-check against an independent implementation: standardizing the
	// input with hujson and parsing the result strictly must give the same
	// tree.
	std, err := hujson.Standardize([]byte(input))
	if err != nil {
		t.Fatalf("Standardize failed: %v", err)
	}
	strict, err := ast.Parse(std)
	if err != nil {
		t.Fatalf("Parse standardized input failed: %v", err)
	}
	if !ast.Equal(lenient, strict) {
		t.Errorf("Trees differ:\nlenient: %v\nstrict:  %v", lenient, strict)
	}
}

func TestParse_trailingComments(t *testing.T) {
	opts := ast.Options{AllowComments: true}
	tests := []struct {
		input string
		want  ast.Value
	}{
		{"1 // c", ast.Int(1)},
		{"true // done\n", ast.Bool(true)},
		{"[1, 2] /* end */", ast.Array{ast.Int(1), ast.Int(2)}},
		{"null /* a */ // b\n", ast.Null{}},
	}
	for _, test := range tests {
		got, err := opts.Parse([]byte(test.input))
		if err != nil {
			t.Errorf("Parse %#q failed: %v", test.input, err)
			continue
		}
		if !ast.Equal(got, test.want) {
			t.Errorf("Parse %#q: got %v, want %v", test.input, got, test.want)
		}

		// The strict dialect still rejects the comment.
		if v, err := ast.ParseString(test.input); err == nil {
			t.Errorf("Strict parse %#q: got %v, want error", test.input, v)
		}
	}

	// A comment does not excuse genuine trailing garbage.
	if v, err := opts.Parse([]byte("1 // c\n2")); !errors.Is(err, jsontree.ErrNoMatch) {
		t.Errorf("Parse: got %v, %v; want error wrapping %v", v, err, jsontree.ErrNoMatch)
	}
}

func TestParse_errorPosition(t *testing.T) {
	var serr *jsontree.SyntaxError
	_, err := ast.ParseString("[1,\n 2,\n @]")
	if !errors.As(err, &serr) {
		t.Fatalf("Parse: got %v, want a *SyntaxError", err)
	}
	if serr.Pos != 9 {
		t.Errorf("Error offset: got %d, want 9", serr.Pos)
	}
	if want := (jsontree.LineCol{Line: 3, Column: 1}); serr.Location != want {
		t.Errorf("Error location: got %v, want %v", serr.Location, want)
	}
}
