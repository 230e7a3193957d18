// Package value implements the generated-value tree: the immutable,
// reference-counted-by-handle result of evaluating a schema node.
package value

import (
	"errors"
	"fmt"
	"math"
)

// Kind tags the variant a Value holds. Returned by Value.Kind and used in
// error messages and the Sort/Compare ordering.
type Kind int

const (
	KindNone Kind = iota
	KindInteger
	KindReal
	KindBool
	KindString
	KindList
	KindMap
	KindOpaque
)

// ErrNotFinite is returned when constructing a Real from a NaN or infinite
// float. The value tree requires totally-ordered floats.
var ErrNotFinite = errors.New("value: real must be finite (NaN/Inf not allowed)")

// Value is an immutable node in the generated-value tree. The zero Value is
// None. Values are handles: List and Map share their children by reference,
// so cloning a Value never deep-copies its descendants.
type Value struct {
	kind   Kind
	i      int64
	r      float64
	b      bool
	s      string
	list   []Value
	m      *orderedMap
	opaque any
}

// None is the canonical null value.
var None = Value{kind: KindNone}

// Integer constructs an integer value.
func Integer(i int64) Value { return Value{kind: KindInteger, i: i} }

// Real constructs a real value. Returns ErrNotFinite for NaN/Inf.
func Real(f float64) (Value, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Value{}, ErrNotFinite
	}
	return Value{kind: KindReal, r: f}, nil
}

// MustReal is Real without the error return, for callers that already
// guarantee finiteness (e.g. rand.Float64() scaled into a bounded range).
func MustReal(f float64) Value {
	v, err := Real(f)
	if err != nil {
		panic(err)
	}
	return v
}

// Bool constructs a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// String constructs a string value.
func String(s string) Value { return Value{kind: KindString, s: s} }

// List constructs a list value from a slice of children. The slice is
// copied so the caller's backing array may be reused.
func List(items []Value) Value {
	cp := make([]Value, len(items))
	copy(cp, items)
	return Value{kind: KindList, list: cp}
}

// Opaque wraps a foreign JSON-decoded value (e.g. from a File source)
// verbatim, without attempting to fold it into the typed variants.
func Opaque(v any) Value { return Value{kind: KindOpaque, opaque: v} }

// Kind returns the variant tag.
func (v Value) Kind() Kind { return v.kind }

// Name returns the variant tag as a short string, used in error messages.
func (v Value) Name() string {
	switch v.kind {
	case KindNone:
		return "none"
	case KindInteger:
		return "integer"
	case KindReal:
		return "real"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	case KindOpaque:
		return "opaque"
	default:
		return "unknown"
	}
}

// IsNone reports whether v is the None variant.
func (v Value) IsNone() bool { return v.kind == KindNone }

// AsInteger returns the integer payload and whether v is an Integer.
func (v Value) AsInteger() (int64, bool) { return v.i, v.kind == KindInteger }

// AsReal returns the real payload and whether v is a Real.
func (v Value) AsReal() (float64, bool) { return v.r, v.kind == KindReal }

// AsBool returns the bool payload and whether v is a Bool.
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

// AsString returns the string payload and whether v is a String.
func (v Value) AsString() (string, bool) { return v.s, v.kind == KindString }

// AsList returns the list payload and whether v is a List. The returned
// slice must not be mutated by the caller.
func (v Value) AsList() ([]Value, bool) { return v.list, v.kind == KindList }

// AsMap returns the map payload and whether v is a Map.
func (v Value) AsMap() (*OrderedMap, bool) {
	if v.kind != KindMap {
		return nil, false
	}
	return (*OrderedMap)(v.m), true
}

// AsOpaque returns the opaque payload and whether v is Opaque.
func (v Value) AsOpaque() (any, bool) { return v.opaque, v.kind == KindOpaque }

// Map constructs a map value from an OrderedMap builder.
func Map(m *OrderedMap) Value {
	return Value{kind: KindMap, m: (*orderedMap)(m)}
}

// String representation, for debugging and plain-text fallbacks (such as
// the plugin ABI's rendering of Opaque values).
func (v Value) String() string {
	switch v.kind {
	case KindNone:
		return ""
	case KindInteger:
		return fmt.Sprintf("%d", v.i)
	case KindReal:
		return fmt.Sprintf("%g", v.r)
	case KindBool:
		return fmt.Sprintf("%t", v.b)
	case KindString:
		return v.s
	case KindList:
		return fmt.Sprintf("%v", v.list)
	case KindMap:
		return v.m.String()
	case KindOpaque:
		return fmt.Sprintf("%v", v.opaque)
	default:
		return ""
	}
}

// Equal reports deep structural equality between two Values, used by the
// reference cache's de-duplication, by Filter, and by Reference's "except"
// exclusion.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNone:
		return true
	case KindInteger:
		return a.i == b.i
	case KindReal:
		return a.r == b.r
	case KindBool:
		return a.b == b.b
	case KindString:
		return a.s == b.s
	case KindList:
		if len(a.list) != len(b.list) {
			return false
		}
		for i := range a.list {
			if !Equal(a.list[i], b.list[i]) {
				return false
			}
		}
		return true
	case KindMap:
		return a.m.Equal(b.m)
	case KindOpaque:
		return fmt.Sprintf("%v", a.opaque) == fmt.Sprintf("%v", b.opaque)
	default:
		return false
	}
}
