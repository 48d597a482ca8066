package ast

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/kwardlow/jsontree"
)

// Options control the optional behavior of the parser. A zero Options value
// selects the default dialect.
type Options struct {
	// MaxDepth limits the nesting depth of objects and arrays. Zero or
	// negative selects jsontree.DefaultMaxDepth.
	MaxDepth int

	// AllowComments permits // line and /* block */ comments in the input.
	AllowComments bool

	// AllowTrailingCommas permits a comma before the closing bracket of a
	// non-empty array or object.
	AllowTrailingCommas bool
}

// Parse parses data as a single value. The input must contain exactly one
// value; leftover input after the value, other than whitespace, is reported
// as an error wrapping jsontree.ErrNoMatch, as is an empty input.
//
// In case of any error, Parse returns a nil Value and an error of concrete
// type [*jsontree.SyntaxError]; no partial tree is returned.
func Parse(data []byte) (Value, error) { return Options{}.Parse(data) }

// ParseString parses s as a single value. See Parse.
func ParseString(s string) (Value, error) { return Parse([]byte(s)) }

// Parse parses data as a single value using the receiver's options.
// See the package-level Parse for the contract.
func (o Options) Parse(data []byte) (Value, error) {
	sc := jsontree.NewScanner(data)
	sc.AllowComments(o.AllowComments)
	st := jsontree.NewStreamWithScanner(sc)
	st.SetMaxDepth(o.MaxDepth)
	st.AllowTrailingCommas(o.AllowTrailingCommas)

	b := new(treeBuilder)
	if err := st.ParseOne(b); err == io.EOF {
		return nil, anchorError(sc, jsontree.ErrNoMatch, "empty input")
	} else if err != nil {
		return nil, err
	}

	// The value must be the whole document. Comments after the value are not
	// trailing garbage when the dialect permits them.
	for {
		if err := sc.Next(); err == io.EOF {
			return b.root, nil
		} else if err != nil {
			return nil, err
		}
		switch tok := sc.Token(); tok {
		case jsontree.LineComment, jsontree.BlockComment:
			continue
		default:
			return nil, anchorError(sc, jsontree.ErrNoMatch,
				fmt.Sprintf("unexpected %v after value", tok))
		}
	}
}

// A treeBuilder implements the jsontree.Handler interface to construct value
// trees. Completed containers and leaves reduce into the member or array
// atop the stack; the final value left behind is the root.
type treeBuilder struct {
	root Value
	stk  []any // *Object, *Array, or *Member
}

func (b *treeBuilder) BeginObject(jsontree.Anchor) error {
	b.push(new(Object))
	return nil
}

func (b *treeBuilder) EndObject(jsontree.Anchor) error {
	obj := b.pop().(*Object)
	b.emit(*obj)
	return nil
}

func (b *treeBuilder) BeginArray(jsontree.Anchor) error {
	b.push(new(Array))
	return nil
}

func (b *treeBuilder) EndArray(jsontree.Anchor) error {
	arr := b.pop().(*Array)
	b.emit(*arr)
	return nil
}

func (b *treeBuilder) BeginMember(loc jsontree.Anchor) error {
	key, err := jsontree.Unquote(loc.Text())
	if err != nil {
		return err
	}
	b.push(&Member{Key: string(key)})
	return nil
}

func (b *treeBuilder) EndMember(jsontree.Anchor) error {
	m := b.pop().(*Member)
	obj := b.top().(*Object)

	// A repeated key silently overwrites the existing member's value.
	if old := obj.Find(m.Key); old != nil {
		old.Value = m.Value
	} else {
		*obj = append(*obj, m)
	}
	return nil
}

func (b *treeBuilder) Value(loc jsontree.Anchor) error {
	v, err := decodeValue(loc)
	if err != nil {
		return err
	}
	b.emit(v)
	return nil
}

func (b *treeBuilder) EndOfInput(jsontree.Anchor) {}

// emit attaches a completed value to the container under construction, or
// records it as the root when the stack is empty. An object is never atop
// the stack here, since values inside an object arrive through a member.
func (b *treeBuilder) emit(v Value) {
	if len(b.stk) == 0 {
		b.root = v
		return
	}
	switch t := b.top().(type) {
	case *Member:
		t.Value = v
	case *Array:
		*t = append(*t, v)
	}
}

func (b *treeBuilder) push(v any) { b.stk = append(b.stk, v) }

func (b *treeBuilder) top() any { return b.stk[len(b.stk)-1] }

func (b *treeBuilder) pop() any {
	last := b.top()
	b.stk = b.stk[:len(b.stk)-1]
	return last
}

// decodeValue converts the leaf token at loc into a Value. The text of each
// leaf is decoded and copied, so the tree does not alias the input buffer.
func decodeValue(loc jsontree.Anchor) (Value, error) {
	switch loc.Token() {
	case jsontree.String:
		text, err := jsontree.Unquote(loc.Text())
		if err != nil {
			return nil, err
		}
		return String(text), nil
	case jsontree.Integer:
		z, err := strconv.ParseInt(string(loc.Text()), 10, 64)
		if err != nil {
			return nil, anchorError(loc, jsontree.ErrMalformedNumber,
				fmt.Sprintf("integer %s out of range", loc.Text()))
		}
		return Int(z), nil
	case jsontree.Number:
		f, err := strconv.ParseFloat(string(loc.Text()), 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return nil, anchorError(loc, jsontree.ErrMalformedNumber,
				fmt.Sprintf("invalid number %s", loc.Text()))
		}
		return Float(f), nil
	case jsontree.True:
		return Bool(true), nil
	case jsontree.False:
		return Bool(false), nil
	case jsontree.Null:
		return Null{}, nil
	default:
		return nil, fmt.Errorf("unknown value %v", loc.Token())
	}
}

func anchorError(loc jsontree.Anchor, base error, msg string) error {
	l := loc.Location()
	return &jsontree.SyntaxError{Pos: l.Pos, Location: l.First, Message: msg, Err: base}
}
