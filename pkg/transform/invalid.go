package transform

import (
	"encoding/json"
	"fmt"

	"github.com/datagen-go/datagen/pkg/evalctx"
	"github.com/datagen-go/datagen/pkg/value"
)

// Invalid stands in for a transform entry that failed to parse, so a
// schema document with one bad transform still loads — the error only
// surfaces if that node is actually evaluated, path-qualified.
type Invalid struct {
	Raw json.RawMessage
}

func (i Invalid) Apply(ctx *evalctx.Context, _ value.Value) (value.Value, error) {
	return value.Value{}, fmt.Errorf("invalid transform at %q: %s", ctx.Path(), string(i.Raw))
}
