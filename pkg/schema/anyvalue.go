package schema

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/datagen-go/datagen/pkg/evalctx"
	"github.com/datagen-go/datagen/pkg/value"
)

// AnyValue is the polymorphic slot used for object properties, array
// items/values, flatten inputs, and anyOf values: either a tagged node
// variant or a bare JSON literal (string, number, bool, null).
type AnyValue struct {
	Node    Node
	Literal value.Value
	isNode  bool
}

func (a *AnyValue) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var tag typeTag
		if err := json.Unmarshal(trimmed, &tag); err == nil && tag.Type != "" {
			a.Node = NodeFromJSON(trimmed)
			a.isNode = true
			return nil
		}
	}

	var generic any
	if err := json.Unmarshal(trimmed, &generic); err != nil {
		a.Node = Invalid{Raw: append(json.RawMessage(nil), trimmed...)}
		a.isNode = true
		return nil
	}
	lit, err := value.FromJSON(generic)
	if err != nil {
		return fmt.Errorf("anyValue: %w", err)
	}
	a.Literal = lit
	a.isNode = false
	return nil
}

// IsNode reports whether this slot wraps a tagged node rather than a bare
// literal, so external walkers (the validator) can tell which of Node and
// Literal is meaningful.
func (a AnyValue) IsNode() bool { return a.isNode }

// Evaluate dispatches to the wrapped node, or finalizes a bare literal
// directly (resolving it through the reference layer first if it's a
// "ref:"-prefixed string), per spec's AnyValue semantics.
func (a AnyValue) Evaluate(ctx *evalctx.Context) (value.Value, error) {
	if a.isNode {
		return a.Node.Evaluate(ctx)
	}

	v := a.Literal
	if s, ok := v.AsString(); ok {
		resolved, err := ctx.ResolveRef(s)
		if err != nil {
			return value.Value{}, err
		}
		v = resolved
	}
	return ctx.Finalize(v), nil
}
