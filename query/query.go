// Package query implements structural queries over parsed value trees.
//
// A query describes a substructure of a value tree, such as an object
// member, an array element, or a path through the tree. Evaluating a query
// against a concrete value traverses the structure described by the query
// and returns the resulting value.
//
// The simplest query is for a "path", a sequence of object keys and/or array
// indices from the root of a value. For example, given the value parsed from
//
//	[{"a": 1, "b": 2}, {"c": {"d": true}, "e": false}]
//
// the query
//
//	query.Path(1, "c", "d")
//
// yields the value true.
package query

import (
	"errors"
	"fmt"

	"github.com/kwardlow/jsontree/ast"
)

// A Query describes a traversal of a value tree.
type Query interface {
	eval(ast.Value) (ast.Value, error)
}

// Eval evaluates the given query beginning from root, returning the
// resulting value or an error.
func Eval(root ast.Value, q Query) (ast.Value, error) { return q.eval(root) }

// Path traverses a sequence of nested object keys or array indices from the
// root. If no keys are specified, the root is returned. Each key must be a
// string, an int, or a Query.
func Path(keys ...any) Query {
	pq := make(Seq, 0, len(keys))
	for _, key := range keys {
		if sq, ok := pathElem(key).(Seq); ok {
			pq = append(pq, sq...)
		} else {
			pq = append(pq, pathElem(key))
		}
	}
	if len(pq) == 1 {
		return pq[0]
	}
	return pq
}

func pathElem(key any) Query {
	switch t := key.(type) {
	case string:
		return Key(t)
	case int:
		return Index(t)
	case Query:
		return t
	default:
		panic(fmt.Sprintf("invalid path element %T", key))
	}
}

// Key selects the value of the named member of an object.
type Key string

func (k Key) eval(v ast.Value) (ast.Value, error) {
	obj, ok := v.(ast.Object)
	if !ok {
		return nil, fmt.Errorf("got %T, want object", v)
	}
	m := obj.Find(string(k))
	if m == nil {
		return nil, fmt.Errorf("key %q not found", string(k))
	}
	return m.Value, nil
}

// Index selects the array element at the given offset. A negative offset
// selects from the end of the array.
type Index int

func (n Index) eval(v ast.Value) (ast.Value, error) {
	arr, ok := v.(ast.Array)
	if !ok {
		return nil, fmt.Errorf("got %T, want array", v)
	}
	idx := int(n)
	if idx < 0 {
		idx += len(arr)
	}
	if idx < 0 || idx >= len(arr) {
		return nil, fmt.Errorf("index %d out of range (0..%d)", int(n), len(arr))
	}
	return arr[idx], nil
}

// Seq is a sequential composition of queries. An empty sequence selects the
// root; otherwise, each query is applied to the result selected by the
// previous query in the sequence.
type Seq []Query

func (q Seq) eval(v ast.Value) (ast.Value, error) {
	cur := v
	for _, sq := range q {
		next, err := sq.eval(cur)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}

// Alt is a query that selects among a sequence of alternatives. The result
// of the first alternative that does not report an error is returned. If
// there are no alternatives, the query fails on all inputs.
type Alt []Query

func (q Alt) eval(v ast.Value) (ast.Value, error) {
	for _, alt := range q {
		if w, err := alt.eval(v); err == nil {
			return w, nil
		}
	}
	return nil, errors.New("no matching alternatives")
}

// Each applies a path query to every element of an array and returns an
// array of the resulting values. It fails if the input is not an array or
// if the query fails on any element. The arguments have the same constraints
// as Path.
func Each(keys ...any) Query { return eachQuery{Path(keys...)} }

type eachQuery struct{ Query }

func (q eachQuery) eval(v ast.Value) (ast.Value, error) {
	arr, ok := v.(ast.Array)
	if !ok {
		return nil, fmt.Errorf("got %T, want array", v)
	}
	out := make(ast.Array, len(arr))
	for i, elt := range arr {
		w, err := q.Query.eval(elt)
		if err != nil {
			return nil, fmt.Errorf("index %d: %w", i, err)
		}
		out[i] = w
	}
	return out, nil
}

// Recur applies a path query to each recursive descendant of its input and
// returns an array of the values for which the query succeeds. It fails if
// no descendant matches. The arguments have the same constraints as Path.
func Recur(keys ...any) Query { return recQuery{Path(keys...)} }

type recQuery struct{ Query }

func (q recQuery) eval(v ast.Value) (ast.Value, error) {
	var out ast.Array

	stk := []ast.Value{v}
	for len(stk) != 0 {
		next := stk[len(stk)-1]
		stk = stk[:len(stk)-1]

		if r, err := q.Query.eval(next); err == nil {
			out = append(out, r)
		}

		// Push in reverse order, so we visit in lexical order.
		switch t := next.(type) {
		case ast.Object:
			for i := len(t) - 1; i >= 0; i-- {
				stk = append(stk, t[i].Value)
			}
		case ast.Array:
			for i := len(t) - 1; i >= 0; i-- {
				stk = append(stk, t[i])
			}
		}
	}

	if len(out) == 0 {
		return nil, errors.New("no matches")
	}
	return out, nil
}

// A Filter constructs an array of the elements of its input array for which
// the function reports true.
type Filter func(ast.Value) bool

func (q Filter) eval(v ast.Value) (ast.Value, error) {
	arr, ok := v.(ast.Array)
	if !ok {
		return nil, fmt.Errorf("got %T, want array", v)
	}
	out := ast.Array{}
	for _, elt := range arr {
		if q(elt) {
			out = append(out, elt)
		}
	}
	return out, nil
}

// A Map constructs an array in which each element of the input array is
// replaced by the result of the function on that element.
type Map func(ast.Value) ast.Value

func (q Map) eval(v ast.Value) (ast.Value, error) {
	arr, ok := v.(ast.Array)
	if !ok {
		return nil, fmt.Errorf("got %T, want array", v)
	}
	out := make(ast.Array, len(arr))
	for i, elt := range arr {
		out[i] = q(elt)
	}
	return out, nil
}

// Len returns an integer giving the length of the root.
//
// For an object, the length is the number of members.
// For an array, the length is the number of elements.
// For a string, the length is the length of the string in bytes.
func Len() Query { return lenQuery{} }

type lenQuery struct{}

func (lenQuery) eval(v ast.Value) (ast.Value, error) {
	if t, ok := v.(interface{ Len() int }); ok {
		return ast.Int(t.Len()), nil
	}
	return nil, fmt.Errorf("cannot take length of %T", v)
}

// A String query ignores its input and returns the given string.
func String(s string) Query { return Const(ast.String(s)) }

// A Float query ignores its input and returns the given number.
func Float(f float64) Query { return Const(ast.Float(f)) }

// An Int query ignores its input and returns the given integer.
func Int(z int64) Query { return Const(ast.Int(z)) }

// A Bool query ignores its input and returns the given bool.
func Bool(b bool) Query { return Const(ast.Bool(b)) }

// A Null query ignores its input and returns a null value.
func Null() Query { return Const(ast.Null{}) }

// A Const query ignores its input and returns the given value.
func Const(v ast.Value) Query { return constQuery{v} }

type constQuery struct{ ast.Value }

func (c constQuery) eval(ast.Value) (ast.Value, error) { return c.Value, nil }
