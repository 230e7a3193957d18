package transform

import (
	"fmt"
	"regexp"

	"github.com/datagen-go/datagen/pkg/evalctx"
	"github.com/datagen-go/datagen/pkg/value"
)

// templatePlaceholder matches a Handlebars-style "{{name}}" placeholder;
// the substitution is a single flat replace pass (no blocks, partials, or
// pipelines), the same regex-replace-function shape the config loader
// uses for "${VAR}"/"$VAR" environment expansion.
var templatePlaceholder = regexp.MustCompile(`\{\{\s*([A-Za-z0-9_.]+)\s*\}\}`)

// ToString renders the value to its string form: either the default
// JSON-serialised form, or a Format template rendered over a map's
// entries.
type ToString struct {
	// Format, when non-nil, selects the Format variant with the given
	// template; nil selects the Default variant.
	Format              *string
	SerializeNonStrings *bool
}

func (t ToString) Apply(ctx *evalctx.Context, v value.Value) (value.Value, error) {
	if t.Format == nil {
		b, err := v.MarshalJSON()
		if err != nil {
			return value.Value{}, fmt.Errorf("toString: %w", err)
		}
		return value.String(string(b)), nil
	}

	m, ok := v.AsMap()
	if !ok {
		return value.Value{}, fmt.Errorf("toString: format can only be applied to objects, got %s", v.Name())
	}

	serializeNonStr := serializeNonStrings(t.SerializeNonStrings, ctx)

	data := make(map[string]string, m.Len())
	var rangeErr error
	m.Range(func(k string, child value.Value) bool {
		if s, ok := scalarString(child); ok {
			data[k] = s
			return true
		}
		if serializeNonStr {
			rendered, err := jsonString(child)
			if err != nil {
				rangeErr = err
				return false
			}
			data[k] = rendered
			return true
		}
		rangeErr = fmt.Errorf("toString: cannot format non-string value %q, which is of type %s", k, child.Name())
		return false
	})
	if rangeErr != nil {
		return value.Value{}, rangeErr
	}

	var missing error
	rendered := templatePlaceholder.ReplaceAllStringFunc(*t.Format, func(match string) string {
		name := templatePlaceholder.FindStringSubmatch(match)[1]
		val, ok := data[name]
		if !ok {
			missing = fmt.Errorf("toString: template references unknown field %q", name)
			return match
		}
		return val
	})
	if missing != nil {
		return value.Value{}, missing
	}

	return value.String(rendered), nil
}
