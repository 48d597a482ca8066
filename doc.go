// Package jsontree implements a scanner and parser for a permissive dialect
// of JSON, producing a tree of typed values.
//
// The dialect differs from RFC 8259 JSON in a few deliberate respects:
// numbers may carry a leading "+" and redundant leading zeroes, an exponent
// may follow a bare integer part (promoting the literal to floating-point),
// and an object must contain at least one member, so "{}" is rejected.
// Unescaped control characters are permitted inside strings. Comments and
// trailing commas are available as opt-in extensions.
//
// # Scanning
//
// The Scanner type implements a lexical scanner over an in-memory buffer.
// Construct a scanner from a []byte and call its Next method to iterate over
// the input. Next advances to the next token and returns nil, or reports an
// error:
//
//	s := jsontree.NewScanner(input)
//	for s.Next() == nil {
//	   log.Printf("Next token: %v", s.Token())
//	}
//
// Next returns io.EOF when the input has been fully consumed. Any other
// error is a *SyntaxError describing a lexical error in the input.
//
//	if s.Err() != io.EOF {
//	   log.Fatalf("Scanning failed: %v", s.Err())
//	}
//
// # Streaming
//
// The Stream type implements an event-driven structural parser.  The parser
// works by calling methods on a Handler value to report the structure of the
// input. In case of error, parsing is terminated and an error of concrete
// type *SyntaxError is returned.
//
// Construct a Stream from a []byte and call its Parse method. Parse returns
// nil if the input was fully processed without error. If a Handler method
// reports an error, parsing stops and that error is returned.
//
//	s := jsontree.NewStream(input)
//	if err := s.Parse(handler); err != nil {
//	   log.Fatalf("Parse failed: %v", err)
//	}
//
// To parse a single value from the front of the input, call ParseOne. This
// method returns io.EOF if no further values are available.
//
// Most callers will not use Stream directly, but through the ast package,
// whose Parse function builds a tree of concrete values from the input.
//
// # Errors
//
// Scanner and Stream failures have concrete type *SyntaxError, carrying the
// byte offset and line/column position where the failure was detected, and
// wrapping one of the sentinel errors ErrMalformedNumber,
// ErrUnterminatedString, ErrInvalidEscape, ErrNoMatch, or ErrDepthExceeded,
// so errors.Is can classify a failure. A malformed input never causes a
// panic.
//
// # Handlers
//
// The Handler interface accepts parser events from a Stream. The methods of
// a handler correspond to the syntax of the input:
//
//	Value type | Methods                   | Description
//	---------- | ------------------------- | ---------------------------------
//	object     | BeginObject, EndObject    | { ... }
//	array      | BeginArray, EndArray      | [ ... ]
//	member     | BeginMember, EndMember    | "key": value
//	value      | Value                     | true, false, null, number, string
//	--         | EndOfInput                | end of input
//
// Each method is passed an Anchor value that can be used to retrieve location
// and type information. The Anchor passed to a handler method is only valid
// for the duration of that method call; the handler must copy any data it
// needs to retain beyond the lifetime of the call.
//
// The parser ensures that corresponding Begin and End methods are correctly
// paired, and that the nesting depth of objects and arrays does not exceed
// the configured limit (see Stream.SetMaxDepth).
package jsontree
