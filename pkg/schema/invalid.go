package schema

import (
	"encoding/json"
	"fmt"

	"github.com/datagen-go/datagen/pkg/evalctx"
	"github.com/datagen-go/datagen/pkg/value"
)

// Invalid stands in for a schema node that failed to parse, so a document
// with one bad node still loads — the error only surfaces if that node is
// actually reached during evaluation, path-qualified.
type Invalid struct {
	Raw json.RawMessage
}

func (i Invalid) Evaluate(ctx *evalctx.Context) (value.Value, error) {
	return value.Value{}, fmt.Errorf("failed to parse schema at %q, raw value was: %s", ctx.Path(), string(i.Raw))
}
