package value

import (
	"encoding/json"
	"fmt"
)

// ToJSON converts v to a generic JSON-able value. Maps become
// map[string]any, which does not keep insertion order; Value.MarshalJSON
// below is the encoding path that keeps it.
func ToJSON(v Value) (any, error) {
	switch v.kind {
	case KindNone:
		return nil, nil
	case KindInteger:
		return v.i, nil
	case KindReal:
		return v.r, nil
	case KindBool:
		return v.b, nil
	case KindString:
		return v.s, nil
	case KindList:
		out := make([]any, len(v.list))
		for i, item := range v.list {
			conv, err := ToJSON(item)
			if err != nil {
				return nil, err
			}
			out[i] = conv
		}
		return out, nil
	case KindMap:
		// Go's encoding/json sorts map[string]any keys alphabetically on
		// marshal, discarding insertion order. Callers that need the
		// ordering guarantee (pkg/serialize's JSON serialiser) must walk
		// the OrderedMap directly instead of going through this path.
		out := make(map[string]any, (*OrderedMap)(v.m).Len())
		var rangeErr error
		(*OrderedMap)(v.m).Range(func(k string, child Value) bool {
			conv, err := ToJSON(child)
			if err != nil {
				rangeErr = err
				return false
			}
			out[k] = conv
			return true
		})
		if rangeErr != nil {
			return nil, rangeErr
		}
		return out, nil
	case KindOpaque:
		return v.opaque, nil
	default:
		return nil, fmt.Errorf("value: cannot convert %s to JSON", v.Name())
	}
}

// MarshalJSON implements json.Marshaler directly on Value so that encoding
// a Map preserves insertion order, unlike round-tripping through
// map[string]any.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNone:
		return []byte("null"), nil
	case KindInteger:
		return json.Marshal(v.i)
	case KindReal:
		return json.Marshal(v.r)
	case KindBool:
		return json.Marshal(v.b)
	case KindString:
		return json.Marshal(v.s)
	case KindList:
		return json.Marshal(v.list)
	case KindMap:
		var buf []byte
		buf = append(buf, '{')
		first := true
		var rangeErr error
		(*OrderedMap)(v.m).Range(func(k string, child Value) bool {
			if !first {
				buf = append(buf, ',')
			}
			first = false
			keyBytes, err := json.Marshal(k)
			if err != nil {
				rangeErr = err
				return false
			}
			buf = append(buf, keyBytes...)
			buf = append(buf, ':')
			valBytes, err := json.Marshal(child)
			if err != nil {
				rangeErr = err
				return false
			}
			buf = append(buf, valBytes...)
			return true
		})
		if rangeErr != nil {
			return nil, rangeErr
		}
		buf = append(buf, '}')
		return buf, nil
	case KindOpaque:
		return json.Marshal(v.opaque)
	default:
		return nil, fmt.Errorf("value: cannot marshal %s", v.Name())
	}
}

// FromJSON builds a Value tree from a generic JSON-decoded value (as
// produced by json.Unmarshal into an any). pkg/schema decodes an object
// node's "properties" with its own token-by-token decoder to keep their
// order; that decoder does not go through this function.
func FromJSON(v any) (Value, error) {
	switch t := v.(type) {
	case nil:
		return None, nil
	case bool:
		return Bool(t), nil
	case string:
		return String(t), nil
	case float64:
		if t == float64(int64(t)) {
			return Integer(int64(t)), nil
		}
		return Real(t)
	case int64:
		return Integer(t), nil
	case int:
		return Integer(int64(t)), nil
	case []any:
		items := make([]Value, len(t))
		for i, item := range t {
			conv, err := FromJSON(item)
			if err != nil {
				return Value{}, err
			}
			items[i] = conv
		}
		return List(items), nil
	case map[string]any:
		// NB: map[string]any has no stable iteration order, so the key
		// order of the resulting Map is arbitrary. Literal values, filter
		// operands and plugin args decoded this way all share that.
		m := NewOrderedMap()
		for k, child := range t {
			conv, err := FromJSON(child)
			if err != nil {
				return Value{}, err
			}
			m.Set(k, conv)
		}
		return Map(m), nil
	default:
		return Opaque(v), nil
	}
}
