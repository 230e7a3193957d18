// Package transform implements the transform pipeline applied to a
// generated value: an ordered list of typed operations (filters, case
// conversion, sorting, removal, a plugin escape hatch) threaded through
// the evaluation context so they can resolve references and consult
// run-wide options.
package transform

import (
	"fmt"

	"github.com/datagen-go/datagen/pkg/evalctx"
	"github.com/datagen-go/datagen/pkg/value"
)

// Transform is one step of a pipeline. It receives the context the owning
// schema node evaluated under (for reference resolution and plugin
// dispatch) and the value produced so far, and returns the next value.
type Transform interface {
	Apply(ctx *evalctx.Context, v value.Value) (value.Value, error)
}

// Pipeline is an ordered list of transforms, applied left to right.
type Pipeline []Transform

// Apply threads v through every transform in order, stopping at the first
// error (wrapped with the transform's position for diagnosability).
func (p Pipeline) Apply(ctx *evalctx.Context, v value.Value) (value.Value, error) {
	for i, t := range p {
		next, err := t.Apply(ctx, v)
		if err != nil {
			return value.Value{}, fmt.Errorf("transform[%d] at %q: %w", i, ctx.Path(), err)
		}
		v = next
	}
	return v, nil
}

// serializeNonStrings resolves a transform-local override against the
// run's options default, mirroring the teacher-era `.or(options.default)`
// fallback chain used throughout the original transform bodies.
func serializeNonStrings(local *bool, ctx *evalctx.Context) bool {
	if local != nil {
		return *local
	}
	return ctx.OptionsValue().SerializeNonStrings
}
