package schema

import (
	"encoding/json"
	"math"

	"github.com/datagen-go/datagen/pkg/evalctx"
	"github.com/datagen-go/datagen/pkg/transform"
	"github.com/datagen-go/datagen/pkg/value"
)

// Integer is either a constant value or a uniformly random value in a
// closed interval defaulting to the full int64 range.
type Integer struct {
	Value     *int64
	Min, Max  *int64
	Transform transform.Pipeline
}

func parseInteger(raw json.RawMessage) (Node, error) {
	var wire struct {
		Value *int64 `json:"value"`
		Min   *int64 `json:"min"`
		Max   *int64 `json:"max"`
	}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, err
	}
	t, err := parseTransform(raw)
	if err != nil {
		return nil, err
	}
	return Integer{Value: wire.Value, Min: wire.Min, Max: wire.Max, Transform: t}, nil
}

func (n Integer) Evaluate(ctx *evalctx.Context) (value.Value, error) {
	var v value.Value
	if n.Value != nil {
		v = value.Integer(*n.Value)
	} else {
		min := int64(math.MinInt64)
		if n.Min != nil {
			min = *n.Min
		}
		max := int64(math.MaxInt64)
		if n.Max != nil {
			max = *n.Max
		}
		v = value.Integer(randInt64Range(ctx, min, max))
	}
	return finish(ctx, v, n.Transform, true)
}

// randInt64Range returns a uniformly chosen value in [min, max], tolerating
// the full i64 range without overflowing math/rand's Int63n.
func randInt64Range(ctx *evalctx.Context, min, max int64) int64 {
	if min > max {
		min, max = max, min
	}
	span := uint64(max) - uint64(min)
	if span == math.MaxUint64 {
		return int64(ctx.Rand().Uint64())
	}
	return min + int64(ctx.Rand().Uint64()%(span+1))
}
