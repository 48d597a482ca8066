package ast

import (
	"fmt"
	"maps"
	"slices"
)

// ToValue converts a plain Go value of a compatible type into a Value.
// It supports nil, bool, string, the built-in signed and unsigned integer
// types, float32 and float64, []any, map[string]any, and values that already
// satisfy Value. Map keys are emitted in sorted order so the result is
// deterministic. ToValue panics if v is not of a supported type.
func ToValue(v any) Value {
	switch t := v.(type) {
	case nil:
		return Null{}
	case Value:
		return t
	case bool:
		return Bool(t)
	case string:
		return String(t)
	case int:
		return Int(t)
	case int8:
		return Int(t)
	case int16:
		return Int(t)
	case int32:
		return Int(t)
	case int64:
		return Int(t)
	case uint:
		return Int(t)
	case uint8:
		return Int(t)
	case uint16:
		return Int(t)
	case uint32:
		return Int(t)
	case uint64:
		return Int(t)
	case float32:
		return Float(t)
	case float64:
		return Float(t)
	case []any:
		out := make(Array, len(t))
		for i, elt := range t {
			out[i] = ToValue(elt)
		}
		return out
	case map[string]any:
		out := make(Object, 0, len(t))
		for _, key := range slices.Sorted(maps.Keys(t)) {
			out = append(out, Field(key, ToValue(t[key])))
		}
		return out
	}
	panic(fmt.Sprintf("cannot convert %T to a value", v))
}
