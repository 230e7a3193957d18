package transform

import (
	"fmt"

	"github.com/datagen-go/datagen/pkg/evalctx"
	"github.com/datagen-go/datagen/pkg/value"
)

// PluginTransform dispatches to a declared plugin's transform operation.
type PluginTransform struct {
	Name string
	Args value.Value
}

func (p PluginTransform) Apply(ctx *evalctx.Context, v value.Value) (value.Value, error) {
	pl, ok := ctx.GetPlugin(p.Name)
	if !ok {
		return value.Value{}, fmt.Errorf("plugin transform: no plugin registered under %q", p.Name)
	}
	out, err := pl.Transform(evalctx.AsPluginContext{Context: ctx}, p.Args, v)
	if err != nil {
		return value.Value{}, fmt.Errorf("plugin transform %q: %w", p.Name, err)
	}
	return out, nil
}
