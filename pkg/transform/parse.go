package transform

import (
	"encoding/json"
	"fmt"

	"github.com/datagen-go/datagen/pkg/value"
)

// wireTransform mirrors every possible field across all transform
// variants; Parse dispatches on Type and copies out only the fields that
// variant uses. This is the same flat-struct-then-dispatch shape JSON
// schemas with a discriminator tag naturally decode into.
type wireTransform struct {
	Type string `json:"type"`

	// Filter
	Field    *string         `json:"field,omitempty"`
	Operator *string         `json:"operator,omitempty"`
	Other    json.RawMessage `json:"other,omitempty"`

	// RegexFilter
	Pattern *string `json:"pattern,omitempty"`

	// ToString
	SubType             *string `json:"subType,omitempty"`
	Format              *string `json:"format,omitempty"`
	SerializeNonStrings *bool   `json:"serializeNonStrings,omitempty"`

	// ToUpperCase / ToLowerCase
	Recursive *bool `json:"recursive,omitempty"`

	// Sort
	By      *string `json:"by,omitempty"`
	Reverse *bool   `json:"reverse,omitempty"`

	// RandomRemove
	Fields []string `json:"fields,omitempty"`
	Min    *int      `json:"min,omitempty"`
	Max    *int      `json:"max,omitempty"`
	Chance *float64  `json:"chance,omitempty"`

	// RemoveAll
	Include []string `json:"include,omitempty"`
	Exclude []string `json:"exclude,omitempty"`

	// ChooseFromArray
	Indices []int `json:"indices,omitempty"`

	// Plugin
	Name string          `json:"name,omitempty"`
	Args json.RawMessage `json:"args,omitempty"`
}

// Parse decodes one transform entry from raw JSON. A document that fails
// to decode at all, or carries an unrecognised "type", is kept as an
// Invalid slot rather than aborting the whole schema parse.
func Parse(raw json.RawMessage) Transform {
	var w wireTransform
	if err := json.Unmarshal(raw, &w); err != nil {
		return Invalid{Raw: raw}
	}

	switch w.Type {
	case "filter":
		op := FilterEquals
		if w.Operator != nil && *w.Operator == "notEquals" {
			op = FilterNotEquals
		}
		other, err := decodeValue(w.Other)
		if err != nil {
			return Invalid{Raw: raw}
		}
		return Filter{Field: w.Field, Operator: op, Other: other}

	case "regexFilter":
		if w.Pattern == nil {
			return Invalid{Raw: raw}
		}
		return RegexFilter{Pattern: *w.Pattern, SerializeNonStrings: w.SerializeNonStrings}

	case "filterNonNull":
		return FilterNonNull{}

	case "toString":
		if w.SubType != nil && *w.SubType == "format" {
			return ToString{Format: w.Format, SerializeNonStrings: w.SerializeNonStrings}
		}
		return ToString{}

	case "toUpperCase":
		return ToUpperCase{SerializeNonStrings: w.SerializeNonStrings, Recursive: boolVal(w.Recursive)}

	case "toLowerCase":
		return ToLowerCase{SerializeNonStrings: w.SerializeNonStrings, Recursive: boolVal(w.Recursive)}

	case "sort":
		return Sort{By: w.By, Reverse: boolVal(w.Reverse)}

	case "randomRemove":
		return RandomRemove{Fields: w.Fields, Min: w.Min, Max: w.Max, Chance: w.Chance}

	case "removeAll":
		if len(w.Include) == 0 && len(w.Exclude) == 0 {
			return Invalid{Raw: raw}
		}
		return RemoveAll{Include: w.Include, Exclude: w.Exclude}

	case "chooseFromArray":
		return ChooseFromArray{Indices: w.Indices}

	case "plugin":
		args, err := decodeValue(w.Args)
		if err != nil {
			return Invalid{Raw: raw}
		}
		return PluginTransform{Name: w.Name, Args: args}

	default:
		return Invalid{Raw: raw}
	}
}

// ParseList decodes a JSON array of transform entries into a Pipeline.
func ParseList(raw json.RawMessage) (Pipeline, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("transform: decoding transform list: %w", err)
	}
	pipeline := make(Pipeline, len(entries))
	for i, entry := range entries {
		pipeline[i] = Parse(entry)
	}
	return pipeline, nil
}

func boolVal(b *bool) bool {
	return b != nil && *b
}

func decodeValue(raw json.RawMessage) (value.Value, error) {
	if len(raw) == 0 {
		return value.None, nil
	}
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return value.Value{}, err
	}
	return value.FromJSON(generic)
}
