package transform

import (
	"fmt"

	"github.com/datagen-go/datagen/pkg/evalctx"
	"github.com/datagen-go/datagen/pkg/value"
)

// ChooseFromArray returns a single element or a sub-list of a list's
// elements. With Indices unset, one element is chosen uniformly at
// random; with Indices set, those positions are collected (a single
// index collapses to that element, not a one-element list).
type ChooseFromArray struct {
	Indices []int
}

func (c ChooseFromArray) Apply(ctx *evalctx.Context, v value.Value) (value.Value, error) {
	items, ok := v.AsList()
	if !ok {
		return v, nil
	}

	if c.Indices == nil {
		if len(items) == 0 {
			return value.None, nil
		}
		return items[ctx.Rand().Intn(len(items))], nil
	}

	if len(items) == 0 {
		return value.None, nil
	}

	chosen := make([]value.Value, 0, len(c.Indices))
	for _, i := range c.Indices {
		if i < 0 || i >= len(items) {
			return value.Value{}, fmt.Errorf("chooseFromArray: could not get index %d from array at %q", i, ctx.Path())
		}
		chosen = append(chosen, items[i])
	}

	if len(chosen) == 1 {
		return chosen[0], nil
	}
	return value.List(chosen), nil
}
