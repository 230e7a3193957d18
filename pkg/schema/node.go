// Package schema implements the schema tree: the tagged union of node
// kinds that describe how to produce a generated value, decoded from the
// input JSON document and evaluated against an evaluation context.
package schema

import (
	"encoding/json"
	"fmt"

	"github.com/datagen-go/datagen/pkg/evalctx"
	"github.com/datagen-go/datagen/pkg/transform"
	"github.com/datagen-go/datagen/pkg/value"
)

// Node is one schema tree variant. Evaluate runs the node's own body, its
// transform pipeline, and (for most variants) registers the result with
// the context's reference registry.
type Node interface {
	Evaluate(ctx *evalctx.Context) (value.Value, error)
}

// finish threads a freshly generated value through pipeline and, unless
// shouldFinalize is false (string generators, and the bare literal slot of
// an AnyValue which finalizes itself earlier), registers it with ctx.
func finish(ctx *evalctx.Context, v value.Value, pipeline transform.Pipeline, shouldFinalize bool) (value.Value, error) {
	next, err := pipeline.Apply(ctx, v)
	if err != nil {
		return value.Value{}, err
	}
	if shouldFinalize {
		next = ctx.Finalize(next)
	}
	return next, nil
}

// typeTag is the shape every node's raw JSON carries: a "type" discriminator
// plus whatever the variant itself needs.
type typeTag struct {
	Type string `json:"type"`
}

// NodeFromJSON decodes a single schema node by its "type" tag, tolerating a
// failure to parse by keeping the raw JSON in an Invalid node rather than
// aborting the whole document (spec's partial-parse tolerance).
func NodeFromJSON(raw json.RawMessage) Node {
	var tag typeTag
	if err := json.Unmarshal(raw, &tag); err != nil {
		return Invalid{Raw: raw}
	}

	var node Node
	var err error
	switch tag.Type {
	case "integer":
		node, err = parseInteger(raw)
	case "real":
		node, err = parseReal(raw)
	case "bool":
		node, err = parseBool(raw)
	case "counter":
		node, err = parseCounter(raw)
	case "string":
		node, err = parseStringSchema(raw)
	case "object":
		node, err = parseObject(raw)
	case "array":
		node, err = parseArray(raw)
	case "anyOf":
		node, err = parseAnyOf(raw)
	case "reference":
		node, err = parseReference(raw)
	case "flatten":
		node, err = parseFlatten(raw)
	case "file":
		node, err = parseFile(raw)
	case "include":
		node, err = parseInclude(raw)
	case "plugin":
		node, err = parsePlugin(raw)
	default:
		return Invalid{Raw: raw}
	}
	if err != nil {
		return Invalid{Raw: raw}
	}
	return node
}

// parseTransform reads an optional "transform" array field from raw.
func parseTransform(raw json.RawMessage) (transform.Pipeline, error) {
	var holder struct {
		Transform json.RawMessage `json:"transform"`
	}
	if err := json.Unmarshal(raw, &holder); err != nil {
		return nil, err
	}
	if len(holder.Transform) == 0 {
		return nil, nil
	}
	return transform.ParseList(holder.Transform)
}

func pathQualifiedErrorf(ctx *evalctx.Context, format string, args ...any) error {
	return fmt.Errorf("%s: %w", ctx.Path(), fmt.Errorf(format, args...))
}
