package schema

import (
	"encoding/json"
	"fmt"

	"github.com/datagen-go/datagen/pkg/evalctx"
	"github.com/datagen-go/datagen/pkg/transform"
	"github.com/datagen-go/datagen/pkg/value"
)

// Flatten evaluates each of its values (objects, arrays, references, or
// plugin calls) and merges them: every value must produce the same
// container kind, fixed by the first one, or evaluation fails.
type Flatten struct {
	Values    []Node
	Transform transform.Pipeline
}

func parseFlatten(raw json.RawMessage) (Node, error) {
	var wire struct {
		Values []json.RawMessage `json:"values"`
	}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, err
	}
	t, err := parseTransform(raw)
	if err != nil {
		return nil, err
	}

	values := make([]Node, len(wire.Values))
	for i, v := range wire.Values {
		// Flatten entries are restricted to object/array/reference/plugin
		// nodes, tagged like every other schema node per §6, even though
		// the original implementation matched them structurally.
		values[i] = NodeFromJSON(v)
	}
	return Flatten{Values: values, Transform: t}, nil
}

func (n Flatten) Evaluate(ctx *evalctx.Context) (value.Value, error) {
	generated := make([]value.Value, len(n.Values))
	for i, v := range n.Values {
		val, err := v.Evaluate(ctx)
		if err != nil {
			return value.Value{}, fmt.Errorf("flatten[%d]: %w", i, err)
		}
		generated[i] = val
	}

	if len(generated) == 0 {
		return finish(ctx, value.None, n.Transform, true)
	}

	isList := generated[0].Kind() == value.KindList

	var result value.Value
	if isList {
		var items []value.Value
		for i, v := range generated {
			list, ok := v.AsList()
			if !ok {
				return value.Value{}, fmt.Errorf("flatten: values must all either be objects or arrays (the first value was an array, value %d is not)", i)
			}
			items = append(items, list...)
		}
		result = value.List(items)
	} else {
		merged := value.NewOrderedMap()
		for i, v := range generated {
			m, ok := v.AsMap()
			if !ok {
				return value.Value{}, fmt.Errorf("flatten: values must all either be objects or arrays (the first value was an object, value %d is not)", i)
			}
			m.Range(func(k string, child value.Value) bool {
				merged.Set(k, child)
				return true
			})
		}
		result = value.Map(merged)
	}

	return finish(ctx, result, n.Transform, true)
}
