package query

import "github.com/kwardlow/jsontree/ast"

// Exists keeps the elements of an array against which the path given by keys
// resolves. The keys have the same constraints as Path.
func Exists(keys ...any) Filter {
	q := Path(keys...)
	return func(v ast.Value) bool {
		_, err := Eval(v, q)
		return err == nil
	}
}

// Is keeps the elements of an array whose concrete type is T.
func Is[T ast.Value]() Filter {
	return func(v ast.Value) bool { _, ok := v.(T); return ok }
}

// IsNot keeps the elements of an array whose concrete type is not T.
func IsNot[T ast.Value]() Filter {
	is := Is[T]()
	return func(v ast.Value) bool { return !is(v) }
}

// NonNull keeps the elements of an array that are not null.
func NonNull() Filter { return IsNot[ast.Null]() }

// Match keeps the elements of an array of type T for which f reports true.
// Elements of any other type are dropped.
func Match[T ast.Value](f func(T) bool) Filter {
	return func(v ast.Value) bool {
		w, ok := v.(T)
		return ok && f(w)
	}
}

// Transform rewrites each element of an array of type T using f. Elements of
// any other type pass through unchanged.
func Transform[T, U ast.Value](f func(T) U) Map {
	return func(v ast.Value) ast.Value {
		if w, ok := v.(T); ok {
			return f(w)
		}
		return v
	}
}
