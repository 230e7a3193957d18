package schema

import (
	"encoding/json"
	"math"

	"github.com/datagen-go/datagen/pkg/evalctx"
	"github.com/datagen-go/datagen/pkg/transform"
	"github.com/datagen-go/datagen/pkg/value"
)

// Real is either a constant value or a uniformly random value in a
// half-open interval defaulting to [0, 1), optionally rounded to a fixed
// number of decimals.
type Real struct {
	Value     *float64
	Min, Max  *float64
	Precision *int
	Transform transform.Pipeline
}

func parseReal(raw json.RawMessage) (Node, error) {
	var wire struct {
		Value     *float64 `json:"value"`
		Min       *float64 `json:"min"`
		Max       *float64 `json:"max"`
		Precision *int     `json:"precision"`
	}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, err
	}
	t, err := parseTransform(raw)
	if err != nil {
		return nil, err
	}
	return Real{Value: wire.Value, Min: wire.Min, Max: wire.Max, Precision: wire.Precision, Transform: t}, nil
}

func (n Real) Evaluate(ctx *evalctx.Context) (value.Value, error) {
	var f float64
	if n.Value != nil {
		f = *n.Value
	} else {
		min := 0.0
		if n.Min != nil {
			min = *n.Min
		}
		max := 1.0
		if n.Max != nil {
			max = *n.Max
		}
		f = min + ctx.Rand().Float64()*(max-min)
		if n.Precision != nil {
			scale := math.Pow(10, float64(*n.Precision))
			f = math.Round(f*scale) / scale
		}
	}
	v, err := value.Real(f)
	if err != nil {
		return value.Value{}, err
	}
	return finish(ctx, v, n.Transform, true)
}
