package schema

import (
	"encoding/json"

	"github.com/datagen-go/datagen/pkg/evalctx"
	"github.com/datagen-go/datagen/pkg/transform"
	"github.com/datagen-go/datagen/pkg/value"
)

// Bool is either a constant value or a weighted coin flip, defaulting to
// probability 0.5.
type Bool struct {
	Value       *bool
	Probability *float64
	Transform   transform.Pipeline
}

func parseBool(raw json.RawMessage) (Node, error) {
	var wire struct {
		Value       *bool    `json:"value"`
		Probability *float64 `json:"probability"`
	}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, err
	}
	t, err := parseTransform(raw)
	if err != nil {
		return nil, err
	}
	return Bool{Value: wire.Value, Probability: wire.Probability, Transform: t}, nil
}

func (n Bool) Evaluate(ctx *evalctx.Context) (value.Value, error) {
	var b bool
	if n.Value != nil {
		b = *n.Value
	} else {
		p := 0.5
		if n.Probability != nil {
			p = *n.Probability
		}
		b = ctx.Rand().Float64() < p
	}
	return finish(ctx, value.Bool(b), n.Transform, true)
}
