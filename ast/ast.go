// Package ast defines the tree of typed values produced by parsing, and a
// parser that constructs value trees from source text.
package ast

import (
	"strconv"
	"strings"

	"github.com/kwardlow/jsontree"
)

// A Value is a single value in a parsed tree. The concrete types are Null,
// Bool, Int, Float, String, Array, and Object.
type Value interface {
	// String returns a compact debug rendering of the value.
	String() string
}

// A Number is the numeric subtype of Value. Exactly two concrete types
// satisfy it, Int and Float; a type switch over those two cases is
// exhaustive.
type Number interface {
	Value

	// IsInt reports whether the number is an integer.
	IsInt() bool

	// Float64 returns the value of the number as a float64.
	Float64() float64
}

// Null represents the null constant.
type Null struct{}

func (Null) String() string { return "null" }

// A Bool is a Boolean constant, true or false.
type Bool bool

func (b Bool) String() string {
	if b {
		return "true"
	}
	return "false"
}

// An Int is an integer value.
type Int int64

func (z Int) String() string { return strconv.FormatInt(int64(z), 10) }

// Int64 returns the value of z as an int64.
func (z Int) Int64() int64 { return int64(z) }

// Float64 satisfies the Number interface.
func (z Int) Float64() float64 { return float64(z) }

// IsInt satisfies the Number interface. It is always true for Int.
func (Int) IsInt() bool { return true }

// A Float is a floating-point value.
type Float float64

func (f Float) String() string { return strconv.FormatFloat(float64(f), 'g', -1, 64) }

// Float64 satisfies the Number interface.
func (f Float) Float64() float64 { return float64(f) }

// IsInt satisfies the Number interface. It is always false for Float.
func (Float) IsInt() bool { return false }

// A String is a string value. Its contents are decoded; escape processing
// happens during parsing.
type String string

func (s String) String() string { return jsontree.Quote(string(s)) }

// Len returns the length of s in bytes.
func (s String) Len() int { return len(s) }

// An Array is a sequence of values in source order. It may be empty.
type Array []Value

func (a Array) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, v := range a {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(v.String())
	}
	sb.WriteByte(']')
	return sb.String()
}

// Len returns the number of elements in a.
func (a Array) Len() int { return len(a) }

// A Member is a single key-value member of an Object.
type Member struct {
	Key   string
	Value Value
}

// Field constructs a Member with the given key and value.
func Field(key string, v Value) *Member { return &Member{Key: key, Value: v} }

func (m *Member) String() string {
	return jsontree.Quote(m.Key) + ":" + m.Value.String()
}

// An Object is a collection of key-value members.
//
// An Object built by the parser never contains two members with the same
// key: a duplicate key in the input overwrites the value of the existing
// member. Member order records source order but is not semantically
// significant; Equal compares objects without regard to order.
type Object []*Member

// Find returns the first member of o with the given key, or nil.
func (o Object) Find(key string) *Member {
	for _, m := range o {
		if m.Key == key {
			return m
		}
	}
	return nil
}

// Len returns the number of members in o.
func (o Object) Len() int { return len(o) }

func (o Object) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, m := range o {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(m.String())
	}
	sb.WriteByte('}')
	return sb.String()
}

// Equal reports whether a and b are structurally equal: the same shape with
// equal leaves. Objects are compared without regard to member order, on the
// assumption that keys are unique, as the parser guarantees. An Int and a
// Float are never equal, even if they represent the same mathematical value.
func Equal(a, b Value) bool {
	switch t := a.(type) {
	case nil:
		return b == nil
	case Null:
		_, ok := b.(Null)
		return ok
	case Bool:
		u, ok := b.(Bool)
		return ok && t == u
	case Int:
		u, ok := b.(Int)
		return ok && t == u
	case Float:
		u, ok := b.(Float)
		return ok && t == u
	case String:
		u, ok := b.(String)
		return ok && t == u
	case Array:
		u, ok := b.(Array)
		if !ok || len(t) != len(u) {
			return false
		}
		for i, v := range t {
			if !Equal(v, u[i]) {
				return false
			}
		}
		return true
	case Object:
		u, ok := b.(Object)
		if !ok || len(t) != len(u) {
			return false
		}
		for _, m := range t {
			um := u.Find(m.Key)
			if um == nil || !Equal(m.Value, um.Value) {
				return false
			}
		}
		return true
	}
	return false
}
