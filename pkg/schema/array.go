package schema

import (
	"encoding/json"
	"fmt"

	"github.com/datagen-go/datagen/pkg/evalctx"
	"github.com/datagen-go/datagen/pkg/transform"
	"github.com/datagen-go/datagen/pkg/value"
)

// ArrayLength is either a short-form constant, a {value} constant, or a
// {min, max} random range.
type ArrayLength struct {
	Constant *uint32
	Min, Max *uint32
}

func (l *ArrayLength) UnmarshalJSON(data []byte) error {
	var asNumber uint32
	if err := json.Unmarshal(data, &asNumber); err == nil {
		l.Constant = &asNumber
		return nil
	}
	var wire struct {
		Value *uint32 `json:"value"`
		Min   *uint32 `json:"min"`
		Max   *uint32 `json:"max"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	if wire.Value != nil {
		l.Constant = wire.Value
		return nil
	}
	l.Min, l.Max = wire.Min, wire.Max
	return nil
}

func (l ArrayLength) resolve(ctx *evalctx.Context) uint32 {
	if l.Constant != nil {
		return *l.Constant
	}
	min, max := uint32(0), uint32(0)
	if l.Min != nil {
		min = *l.Min
	}
	if l.Max != nil {
		max = *l.Max
	}
	if max <= min {
		return min
	}
	return min + uint32(ctx.Rand().Intn(int(max-min)+1))
}

// Array is either a random-length list of one item schema, or a literal
// sequence of per-element schemas.
type Array struct {
	// RandomLength/Items set for the random-array form.
	RandomLength *ArrayLength
	Items        *AnyValue

	// Values set for the array-with-values form.
	Values []AnyValue

	Transform transform.Pipeline
}

func parseArray(raw json.RawMessage) (Node, error) {
	var wire struct {
		Length json.RawMessage `json:"length"`
		Items  json.RawMessage `json:"items"`
		Values []AnyValue      `json:"values"`
	}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, err
	}
	t, err := parseTransform(raw)
	if err != nil {
		return nil, err
	}

	if len(wire.Length) > 0 && len(wire.Items) > 0 {
		var length ArrayLength
		if err := json.Unmarshal(wire.Length, &length); err != nil {
			return nil, fmt.Errorf("array: length: %w", err)
		}
		var items AnyValue
		if err := json.Unmarshal(wire.Items, &items); err != nil {
			return nil, fmt.Errorf("array: items: %w", err)
		}
		return Array{RandomLength: &length, Items: &items, Transform: t}, nil
	}

	return Array{Values: wire.Values, Transform: t}, nil
}

func (n Array) Evaluate(ctx *evalctx.Context) (value.Value, error) {
	var items []value.Value

	if n.RandomLength != nil {
		length := n.RandomLength.resolve(ctx)
		items = make([]value.Value, length)
		for i := uint32(0); i < length; i++ {
			child := ctx.Child(value.IndexComponent(int(i)), nil)
			v, err := n.Items.Evaluate(child)
			if err != nil {
				return value.Value{}, fmt.Errorf("array[%d]: %w", i, err)
			}
			items[i] = v
		}
	} else {
		items = make([]value.Value, len(n.Values))
		for i, av := range n.Values {
			child := ctx.Child(value.IndexComponent(i), nil)
			v, err := av.Evaluate(child)
			if err != nil {
				return value.Value{}, fmt.Errorf("array[%d]: %w", i, err)
			}
			items[i] = v
		}
	}

	return finish(ctx, value.List(items), n.Transform, true)
}
