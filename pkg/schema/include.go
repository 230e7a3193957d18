package schema

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/datagen-go/datagen/pkg/evalctx"
	"github.com/datagen-go/datagen/pkg/value"
)

// Include loads a sub-schema node from disk and evaluates it at the
// current path; the file is read fresh on every evaluation (no caching),
// matching the original's plain File::open-per-call behaviour. Include
// carries no transform of its own — the loaded node runs its own.
type Include struct {
	Path string
}

func parseInclude(raw json.RawMessage) (Node, error) {
	var wire struct {
		Path string `json:"path"`
	}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, err
	}
	return Include{Path: wire.Path}, nil
}

func (n Include) Evaluate(ctx *evalctx.Context) (value.Value, error) {
	raw, err := os.ReadFile(n.Path)
	if err != nil {
		return value.Value{}, fmt.Errorf("include: could not open file at %q: %w", n.Path, err)
	}
	node := NodeFromJSON(raw)
	v, err := node.Evaluate(ctx)
	if err != nil {
		return value.Value{}, fmt.Errorf("include %q: %w", n.Path, err)
	}
	return v, nil
}
