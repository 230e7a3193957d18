package schema

import (
	"encoding/json"
	"fmt"

	"github.com/datagen-go/datagen/pkg/evalctx"
	"github.com/datagen-go/datagen/pkg/transform"
	"github.com/datagen-go/datagen/pkg/value"
)

// StringGeneratorKind names one of the fixed set of string generators.
type StringGeneratorKind string

const (
	GenUUID        StringGeneratorKind = "uuid"
	GenEmail       StringGeneratorKind = "email"
	GenFirstName   StringGeneratorKind = "firstName"
	GenLastName    StringGeneratorKind = "lastName"
	GenFullName    StringGeneratorKind = "fullName"
	GenUsername    StringGeneratorKind = "username"
	GenCity        StringGeneratorKind = "city"
	GenCountry     StringGeneratorKind = "country"
	GenCountryCode StringGeneratorKind = "countryCode"
	GenStreet      StringGeneratorKind = "street"
	GenState       StringGeneratorKind = "state"
	GenZipCode     StringGeneratorKind = "zipCode"
	GenLatitude    StringGeneratorKind = "latitude"
	GenLongitude   StringGeneratorKind = "longitude"
	GenPhone       StringGeneratorKind = "phone"
	GenFormat      StringGeneratorKind = "format"
)

// Generator implements the actual random/templated production of a string
// generator's value; it is supplied by internal/stringgen to keep this
// package free of the faker/uuid dependency, and set once at process
// start via SetGenerator.
type Generator interface {
	Generate(ctx *evalctx.Context, kind StringGeneratorKind) (value.Value, error)
	Format(ctx *evalctx.Context, format string, args map[string]value.Value) (value.Value, error)
}

var activeGenerator Generator

// SetGenerator installs the concrete string-generator implementation. Called
// once by internal/generate's driver wiring at startup.
func SetGenerator(g Generator) { activeGenerator = g }

// StringSchema is either a constant value (itself possibly a "ref:"
// expression) or a named/templated generator. String generators never
// finalize themselves into the reference registry.
type StringSchema struct {
	// Constant, when non-nil, is a literal (or reference expression)
	// string value.
	Constant *string

	// Generator, when Constant is nil, selects one of the fixed
	// generators.
	Generator StringGeneratorKind

	// Format fields, used only when Generator == GenFormat.
	FormatTemplate      string
	FormatArgs          map[string]FormatArg
	SerializeNonStrings *bool

	Transform transform.Pipeline
}

// FormatArg is one named argument slot for a Format string generator:
// a literal string (itself resolved through the reference layer), a
// number/integer coerced to its string form, a nested string schema, or a
// full reference node.
type FormatArg struct {
	Literal     *string
	Number      *float64
	StringNode  *StringSchema
	RefNode     *Reference
}

func (f *FormatArg) UnmarshalJSON(data []byte) error {
	var asString string
	if err := json.Unmarshal(data, &asString); err == nil {
		f.Literal = &asString
		return nil
	}
	var asNumber float64
	if err := json.Unmarshal(data, &asNumber); err == nil {
		f.Number = &asNumber
		return nil
	}
	var tag struct {
		Reference string `json:"reference"`
	}
	if err := json.Unmarshal(data, &tag); err == nil && tag.Reference != "" {
		var ref Reference
		if err := json.Unmarshal(data, &ref); err != nil {
			return err
		}
		f.RefNode = &ref
		return nil
	}
	var node StringSchema
	if err := json.Unmarshal(data, &node); err != nil {
		return fmt.Errorf("formatArg: %w", err)
	}
	f.StringNode = &node
	return nil
}

func parseStringSchema(raw json.RawMessage) (Node, error) {
	var s StringSchema
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *StringSchema) UnmarshalJSON(data []byte) error {
	var wire struct {
		Value               *string              `json:"value"`
		Generator           StringGeneratorKind   `json:"generator"`
		Format              *string               `json:"format"`
		Args                map[string]FormatArg  `json:"args"`
		SerializeNonStrings *bool                 `json:"serializeNonStrings"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	t, err := parseTransform(data)
	if err != nil {
		return err
	}

	out := StringSchema{Transform: t}
	switch {
	case wire.Value != nil:
		out.Constant = wire.Value
	case wire.Generator == GenFormat || wire.Format != nil:
		if wire.Format == nil {
			return fmt.Errorf("string: format generator requires a format template")
		}
		out.Generator = GenFormat
		out.FormatTemplate = *wire.Format
		out.FormatArgs = wire.Args
		out.SerializeNonStrings = wire.SerializeNonStrings
	default:
		out.Generator = wire.Generator
	}
	*s = out
	return nil
}

func (s StringSchema) Evaluate(ctx *evalctx.Context) (value.Value, error) {
	var v value.Value
	var err error

	if s.Constant != nil {
		v, err = ctx.ResolveRef(*s.Constant)
		if err != nil {
			return value.Value{}, err
		}
		return finish(ctx, v, s.Transform, true)
	}

	if activeGenerator == nil {
		return value.Value{}, fmt.Errorf("string: no string generator installed")
	}

	if s.Generator == GenFormat {
		args := make(map[string]value.Value, len(s.FormatArgs))
		for name, arg := range s.FormatArgs {
			resolved, err := arg.resolve(ctx)
			if err != nil {
				return value.Value{}, err
			}
			args[name] = resolved
		}
		v, err = activeGenerator.Format(ctx, s.FormatTemplate, args)
	} else {
		v, err = activeGenerator.Generate(ctx, s.Generator)
	}
	if err != nil {
		return value.Value{}, err
	}

	// String generators never finalize themselves.
	return finish(ctx, v, s.Transform, false)
}

func (f FormatArg) resolve(ctx *evalctx.Context) (value.Value, error) {
	switch {
	case f.Literal != nil:
		return ctx.ResolveRef(*f.Literal)
	case f.Number != nil:
		return value.String(formatNumber(*f.Number)), nil
	case f.StringNode != nil:
		v, err := f.StringNode.Evaluate(ctx)
		if err != nil {
			return value.Value{}, err
		}
		return coerceScalarToString(v), nil
	case f.RefNode != nil:
		return f.RefNode.Evaluate(ctx)
	default:
		return value.None, nil
	}
}

func coerceScalarToString(v value.Value) value.Value {
	if i, ok := v.AsInteger(); ok {
		return value.String(fmt.Sprintf("%d", i))
	}
	if r, ok := v.AsReal(); ok {
		return value.String(formatNumber(r))
	}
	return v
}

func formatNumber(f float64) string {
	return fmt.Sprintf("%g", f)
}
