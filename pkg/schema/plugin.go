package schema

import (
	"encoding/json"
	"fmt"

	"github.com/datagen-go/datagen/pkg/evalctx"
	"github.com/datagen-go/datagen/pkg/transform"
	"github.com/datagen-go/datagen/pkg/value"
)

// Plugin dispatches to a declared plugin's generate operation.
type Plugin struct {
	PluginName string
	Args       value.Value
	Transform  transform.Pipeline
}

func parsePlugin(raw json.RawMessage) (Node, error) {
	var wire struct {
		PluginName string          `json:"pluginName"`
		Args       json.RawMessage `json:"args"`
	}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, err
	}
	t, err := parseTransform(raw)
	if err != nil {
		return nil, err
	}

	args := value.None
	if len(wire.Args) > 0 {
		var generic any
		if err := json.Unmarshal(wire.Args, &generic); err != nil {
			return nil, fmt.Errorf("plugin: args: %w", err)
		}
		args, err = value.FromJSON(generic)
		if err != nil {
			return nil, fmt.Errorf("plugin: args: %w", err)
		}
	}

	return Plugin{PluginName: wire.PluginName, Args: args, Transform: t}, nil
}

func (n Plugin) Evaluate(ctx *evalctx.Context) (value.Value, error) {
	pl, ok := ctx.GetPlugin(n.PluginName)
	if !ok {
		return value.Value{}, fmt.Errorf("plugin %q is not registered", n.PluginName)
	}
	v, err := pl.Generate(evalctx.AsPluginContext{Context: ctx}, n.Args)
	if err != nil {
		return value.Value{}, fmt.Errorf("plugin %q: generate: %w", n.PluginName, err)
	}
	return finish(ctx, v, n.Transform, true)
}
