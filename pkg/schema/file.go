package schema

import (
	"encoding/json"

	"github.com/datagen-go/datagen/pkg/evalctx"
	"github.com/datagen-go/datagen/pkg/transform"
	"github.com/datagen-go/datagen/pkg/value"
)

// File reads a JSON array from disk once, lazily, and returns one element
// per evaluation: advancing a wrapping cursor in Sequential mode (the
// default) or picking uniformly in Random mode.
type File struct {
	Path      string
	Mode      evalctx.FileMode
	Transform transform.Pipeline
}

func parseFile(raw json.RawMessage) (Node, error) {
	var wire struct {
		Path string  `json:"path"`
		Mode *string `json:"mode"`
	}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, err
	}
	t, err := parseTransform(raw)
	if err != nil {
		return nil, err
	}

	mode := evalctx.FileSequential
	if wire.Mode != nil && *wire.Mode == "random" {
		mode = evalctx.FileRandom
	}
	return File{Path: wire.Path, Mode: mode, Transform: t}, nil
}

func (n File) Evaluate(ctx *evalctx.Context) (value.Value, error) {
	v, err := ctx.Files().Next(n.Path, n.Mode, ctx.Rand())
	if err != nil {
		return value.Value{}, err
	}
	return finish(ctx, v, n.Transform, true)
}
