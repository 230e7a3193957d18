package schema

import (
	"encoding/json"
	"fmt"

	"github.com/datagen-go/datagen/pkg/evalctx"
	"github.com/datagen-go/datagen/pkg/transform"
	"github.com/datagen-go/datagen/pkg/value"
)

// ObjectProperty is one ordered property of an Object node.
type ObjectProperty struct {
	Key   string
	Value AnyValue
}

// Object evaluates its properties in declaration order, chaining each
// child after the first onto the previous child's context so that later
// properties can resolve "ref:./name" against earlier ones.
type Object struct {
	Properties []ObjectProperty
	Transform  transform.Pipeline
}

func parseObject(raw json.RawMessage) (Node, error) {
	var wire struct {
		Properties json.RawMessage `json:"properties"`
	}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, err
	}
	t, err := parseTransform(raw)
	if err != nil {
		return nil, err
	}

	var props []ObjectProperty
	if len(wire.Properties) > 0 {
		entries, err := decodeOrderedObject(wire.Properties)
		if err != nil {
			return nil, fmt.Errorf("object: %w", err)
		}
		props = make([]ObjectProperty, len(entries))
		for i, e := range entries {
			var av AnyValue
			if err := json.Unmarshal(e.Raw, &av); err != nil {
				return nil, fmt.Errorf("object: property %q: %w", e.Key, err)
			}
			props[i] = ObjectProperty{Key: e.Key, Value: av}
		}
	}

	return Object{Properties: props, Transform: t}, nil
}

func (n Object) Evaluate(ctx *evalctx.Context) (value.Value, error) {
	out := value.NewOrderedMap()

	var sibling *evalctx.Context
	for _, prop := range n.Properties {
		child := ctx.Child(prop.Key, sibling)
		v, err := prop.Value.Evaluate(child)
		if err != nil {
			return value.Value{}, fmt.Errorf("object property %q: %w", prop.Key, err)
		}
		out.Set(prop.Key, v)
		sibling = child
	}

	return finish(ctx, value.Map(out), n.Transform, true)
}
