package transform

import (
	"fmt"

	"github.com/datagen-go/datagen/pkg/evalctx"
	"github.com/datagen-go/datagen/pkg/value"
)

// FilterNonNull removes None entries from a list or map; any other kind
// is an error.
type FilterNonNull struct{}

func (FilterNonNull) Apply(_ *evalctx.Context, v value.Value) (value.Value, error) {
	switch v.Kind() {
	case value.KindList:
		items, _ := v.AsList()
		out := make([]value.Value, 0, len(items))
		for _, item := range items {
			if !item.IsNone() {
				out = append(out, item)
			}
		}
		return value.List(out), nil

	case value.KindMap:
		m, _ := v.AsMap()
		out := value.NewOrderedMap()
		m.Range(func(k string, child value.Value) bool {
			if !child.IsNone() {
				out.Set(k, child)
			}
			return true
		})
		return value.Map(out), nil

	default:
		return value.Value{}, fmt.Errorf("filterNonNull: can only be used on arrays and objects, got %s", v.Name())
	}
}
