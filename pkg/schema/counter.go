package schema

import (
	"encoding/json"

	"github.com/datagen-go/datagen/pkg/evalctx"
	"github.com/datagen-go/datagen/pkg/transform"
	"github.com/datagen-go/datagen/pkg/value"
)

// Counter produces a monotonically increasing integer, either from a
// single process-wide sequence or one sequence per normalized path.
//
// Step is accepted for schema compatibility but not applied: the
// underlying sequence always advances by 1, matching the open question
// noted in the spec's design notes.
type Counter struct {
	Step         *int64
	Start        *int64
	PathSpecific *bool
	Transform    transform.Pipeline
}

func parseCounter(raw json.RawMessage) (Node, error) {
	var wire struct {
		Step         *int64 `json:"step"`
		Start        *int64 `json:"start"`
		PathSpecific *bool  `json:"pathSpecific"`
	}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, err
	}
	t, err := parseTransform(raw)
	if err != nil {
		return nil, err
	}
	return Counter{Step: wire.Step, Start: wire.Start, PathSpecific: wire.PathSpecific, Transform: t}, nil
}

func (n Counter) Evaluate(ctx *evalctx.Context) (value.Value, error) {
	var next int64
	if n.PathSpecific != nil && *n.PathSpecific {
		next = ctx.Counters().PathSpecific(ctx.PathValue().NormalizedString())
	} else {
		start := int64(0)
		if n.Start != nil {
			start = *n.Start
		}
		next = ctx.Counters().Global(start)
	}
	return finish(ctx, value.Integer(next), n.Transform, true)
}
