package transform

import (
	"fmt"

	"github.com/datagen-go/datagen/pkg/evalctx"
	"github.com/datagen-go/datagen/pkg/value"
)

// FilterOp is the comparison operator for a Filter transform.
type FilterOp string

const (
	FilterEquals    FilterOp = "equals"
	FilterNotEquals FilterOp = "notEquals"
)

// Filter keeps or drops a value by comparing it (or one of its fields) to
// a fixed other value.
type Filter struct {
	// Field, when set, is resolved as a reference-or-literal expression
	// (via ctx.ResolveRef) and compared instead of the value itself. When
	// unset and the value is a list or map, the filter applies
	// elementwise; otherwise the value itself is compared.
	Field    *string
	Operator FilterOp
	Other    value.Value
}

func (f Filter) matches(v value.Value) bool {
	eq := value.Equal(v, f.Other)
	if f.Operator == FilterNotEquals {
		return !eq
	}
	return eq
}

func (f Filter) Apply(ctx *evalctx.Context, v value.Value) (value.Value, error) {
	if f.Field != nil {
		current, err := ctx.ResolveRef(*f.Field)
		if err != nil {
			return value.Value{}, fmt.Errorf("filter: resolving field %q: %w", *f.Field, err)
		}
		if f.matches(current) {
			return v, nil
		}
		return value.None, nil
	}

	switch v.Kind() {
	case value.KindList:
		items, _ := v.AsList()
		out := make([]value.Value, len(items))
		for i, item := range items {
			next, err := f.Apply(ctx, item)
			if err != nil {
				return value.Value{}, err
			}
			out[i] = next
		}
		return value.List(out), nil

	case value.KindMap:
		m, _ := v.AsMap()
		out := value.NewOrderedMap()
		var rangeErr error
		m.Range(func(k string, child value.Value) bool {
			next, err := f.Apply(ctx, child)
			if err != nil {
				rangeErr = err
				return false
			}
			out.Set(k, next)
			return true
		})
		if rangeErr != nil {
			return value.Value{}, rangeErr
		}
		return value.Map(out), nil

	default:
		if f.matches(v) {
			return v, nil
		}
		return value.None, nil
	}
}
