package schema

import (
	"encoding/json"
	"fmt"

	"github.com/datagen-go/datagen/pkg/evalctx"
	"github.com/datagen-go/datagen/pkg/transform"
	"github.com/datagen-go/datagen/pkg/value"
)

// StringOrNumber is one entry of a Reference's "except" list: either a
// reference expression (resolved and excluded as a whole) or a literal
// number to exclude directly.
type StringOrNumber struct {
	Str    *string
	Number *float64
}

func (s *StringOrNumber) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		s.Str = &str
		return nil
	}
	var num float64
	if err := json.Unmarshal(data, &num); err != nil {
		return fmt.Errorf("reference: except entry must be a string or number: %w", err)
	}
	s.Number = &num
	return nil
}

// Reference resolves a reference expression, optionally filtering out a
// list of excluded values before selecting (or keeping every remaining
// match when KeepAll is set).
type Reference struct {
	ReferenceExpr string
	Except        []StringOrNumber
	KeepAll       *bool
	Transform     transform.Pipeline
}

func parseReference(raw json.RawMessage) (Node, error) {
	var wire struct {
		Reference string           `json:"reference"`
		Except    []StringOrNumber `json:"except"`
		KeepAll   *bool            `json:"keepAll"`
	}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, err
	}
	t, err := parseTransform(raw)
	if err != nil {
		return nil, err
	}
	return Reference{ReferenceExpr: wire.Reference, Except: wire.Except, KeepAll: wire.KeepAll, Transform: t}, nil
}

func (n Reference) Evaluate(ctx *evalctx.Context) (value.Value, error) {
	v, err := n.resolve(ctx)
	if err != nil {
		return value.Value{}, err
	}
	return finish(ctx, v, n.Transform, true)
}

func (n Reference) resolve(ctx *evalctx.Context) (value.Value, error) {
	expr := n.ReferenceExpr
	if len(expr) < 4 || expr[:4] != "ref:" {
		expr = "ref:" + expr
	}

	matches, err := ctx.ResolveRefAll(expr)
	if err != nil {
		return value.Value{}, err
	}

	if len(matches) == 0 {
		return value.None, nil
	}

	var excluded []value.Value
	for _, item := range n.Except {
		switch {
		case item.Str != nil:
			more, err := ctx.ResolveRefAll(*item.Str)
			if err != nil {
				return value.Value{}, err
			}
			excluded = append(excluded, more...)
		case item.Number != nil:
			num, err := value.FromJSON(*item.Number)
			if err != nil {
				return value.Value{}, err
			}
			excluded = append(excluded, num)
		}
	}

	remaining := make([]value.Value, 0, len(matches))
	for _, m := range matches {
		if !containsValue(excluded, m) {
			remaining = append(remaining, m)
		}
	}

	if n.KeepAll != nil && *n.KeepAll {
		return value.List(remaining), nil
	}
	return pickOne(ctx, remaining), nil
}

func containsValue(haystack []value.Value, needle value.Value) bool {
	for _, v := range haystack {
		if value.Equal(v, needle) {
			return true
		}
	}
	return false
}

func pickOne(ctx *evalctx.Context, values []value.Value) value.Value {
	if len(values) == 0 {
		return value.None
	}
	return values[ctx.Rand().Intn(len(values))]
}
