package schema

import (
	"encoding/json"
	"fmt"

	"github.com/datagen-go/datagen/pkg/evalctx"
	"github.com/datagen-go/datagen/pkg/transform"
	"github.com/datagen-go/datagen/pkg/value"
)

// AnyOf shuffles its values and picks a prefix of them: Num==1 (default)
// picks one bare value, Num==0 picks all, Num<0 picks a random count, and
// a positive Num picks exactly that many.
type AnyOf struct {
	Values    []AnyValue
	Num       *int64
	AllowNull *bool
	Transform transform.Pipeline
}

func parseAnyOf(raw json.RawMessage) (Node, error) {
	var wire struct {
		Values    []AnyValue `json:"values"`
		Num       *int64     `json:"num"`
		AllowNull *bool      `json:"allowNull"`
	}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, err
	}
	t, err := parseTransform(raw)
	if err != nil {
		return nil, err
	}
	return AnyOf{Values: wire.Values, Num: wire.Num, AllowNull: wire.AllowNull, Transform: t}, nil
}

func (n AnyOf) Evaluate(ctx *evalctx.Context) (value.Value, error) {
	values := append([]AnyValue(nil), n.Values...)
	ctx.Rand().Shuffle(len(values), func(i, j int) { values[i], values[j] = values[j], values[i] })

	min := int64(1)
	if n.AllowNull != nil && *n.AllowNull {
		min = 0
	}

	num := int64(1)
	if n.Num != nil {
		num = *n.Num
	}
	switch {
	case num == 0:
		num = int64(len(values))
	case num < 0:
		span := int64(len(values)) - min
		if span < 0 {
			span = 0
		}
		num = min + int64(ctx.Rand().Int63n(span+1))
	}
	if num > int64(len(values)) {
		num = int64(len(values))
	}
	if num < 0 {
		num = 0
	}

	chosen := values[:num]
	generated := make([]value.Value, len(chosen))
	for i, av := range chosen {
		v, err := av.Evaluate(ctx)
		if err != nil {
			return value.Value{}, fmt.Errorf("anyOf[%d]: %w", i, err)
		}
		generated[i] = v
	}

	var result value.Value
	switch len(generated) {
	case 0:
		result = value.None
	case 1:
		result = generated[0]
	default:
		result = value.List(generated)
	}

	return finish(ctx, result, n.Transform, true)
}
