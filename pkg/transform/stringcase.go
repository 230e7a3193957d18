package transform

import (
	"fmt"
	"strings"

	"github.com/datagen-go/datagen/pkg/evalctx"
	"github.com/datagen-go/datagen/pkg/value"
)

// ToUpperCase converts a scalar value to its uppercased string form, or
// recurses into lists/maps when Recursive is set.
type ToUpperCase struct {
	SerializeNonStrings *bool
	Recursive           bool
}

func (t ToUpperCase) Apply(ctx *evalctx.Context, v value.Value) (value.Value, error) {
	return applyCase(ctx, v, true, serializeNonStrings(t.SerializeNonStrings, ctx), t.Recursive)
}

// ToLowerCase is ToUpperCase's mirror.
type ToLowerCase struct {
	SerializeNonStrings *bool
	Recursive           bool
}

func (t ToLowerCase) Apply(ctx *evalctx.Context, v value.Value) (value.Value, error) {
	return applyCase(ctx, v, false, serializeNonStrings(t.SerializeNonStrings, ctx), t.Recursive)
}

func applyCase(ctx *evalctx.Context, v value.Value, upper, serializeNonStr, recursive bool) (value.Value, error) {
	caseName := "lower"
	if upper {
		caseName = "upper"
	}

	if s, ok := scalarString(v); ok {
		if upper {
			return value.String(strings.ToUpper(s)), nil
		}
		return value.String(strings.ToLower(s)), nil
	}

	if recursive {
		switch v.Kind() {
		case value.KindMap:
			m, _ := v.AsMap()
			out := value.NewOrderedMap()
			var rangeErr error
			m.Range(func(k string, child value.Value) bool {
				next, err := applyCase(ctx, child, upper, serializeNonStr, recursive)
				if err != nil {
					rangeErr = err
					return false
				}
				out.Set(k, next)
				return true
			})
			if rangeErr != nil {
				return value.Value{}, rangeErr
			}
			return value.Map(out), nil

		case value.KindList:
			items, _ := v.AsList()
			out := make([]value.Value, len(items))
			for i, item := range items {
				next, err := applyCase(ctx, item, upper, serializeNonStr, recursive)
				if err != nil {
					return value.Value{}, err
				}
				out[i] = next
			}
			return value.List(out), nil

		default:
			return value.Value{}, fmt.Errorf("%sCase: cannot convert non-string value of type %s", caseName, v.Name())
		}
	}

	if serializeNonStr {
		rendered, err := jsonString(v)
		if err != nil {
			return value.Value{}, err
		}
		if upper {
			return value.String(strings.ToUpper(rendered)), nil
		}
		return value.String(strings.ToLower(rendered)), nil
	}

	return value.Value{}, fmt.Errorf("%sCase: cannot convert non-string value of type %s", caseName, v.Name())
}
