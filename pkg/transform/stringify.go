package transform

import (
	"strconv"

	"github.com/datagen-go/datagen/pkg/value"
)

// scalarString renders a scalar Value (string/integer/real/bool) the way
// the case-conversion and Format transforms do: strings pass through,
// numbers/bools use their natural textual form. ok is false for
// lists/maps/opaque/none, which the caller handles itself (recursing or
// falling back to JSON serialisation).
func scalarString(v value.Value) (string, bool) {
	switch v.Kind() {
	case value.KindString:
		s, _ := v.AsString()
		return s, true
	case value.KindInteger:
		i, _ := v.AsInteger()
		return strconv.FormatInt(i, 10), true
	case value.KindReal:
		r, _ := v.AsReal()
		return strconv.FormatFloat(r, 'g', -1, 64), true
	case value.KindBool:
		b, _ := v.AsBool()
		return strconv.FormatBool(b), true
	default:
		return "", false
	}
}

// jsonString serialises v with the package's order-preserving
// MarshalJSON, for the serialize_non_strings fallback path.
func jsonString(v value.Value) (string, error) {
	b, err := v.MarshalJSON()
	if err != nil {
		return "", err
	}
	return string(b), nil
}
