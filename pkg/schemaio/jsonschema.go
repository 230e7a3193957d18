package schemaio

import (
	"encoding/json"
	"fmt"
	"os"
)

// nodeTypes lists every schema node's "type" tag, for the JSON Schema
// reflection the "type" enum constrains these to.
var nodeTypes = []string{
	"integer", "real", "bool", "counter", "string", "object", "array",
	"anyOf", "reference", "flatten", "file", "include", "plugin",
}

// stringGeneratorKinds lists every built-in string generator name.
var stringGeneratorKinds = []string{
	"uuid", "email", "firstName", "lastName", "fullName", "username",
	"city", "country", "countryCode", "street", "state", "zipCode",
	"latitude", "longitude", "phone", "format",
}

// jsonSchemaDocument builds a JSON Schema (draft 2020-12) describing the
// input format: a node is an object carrying a "type" discriminator and a
// shape that varies by kind. It's a reflection aid for editors/linters,
// not something the parser itself consults — schema.NodeFromJSON decodes
// the same shapes directly.
func jsonSchemaDocument() map[string]any {
	node := map[string]any{
		"$id":      "https://datagen.example/schema.json",
		"$schema":  "https://json-schema.org/draft/2020-12/schema",
		"title":    "datagen schema",
		"type":     "object",
		"required": []string{"type"},
		"properties": map[string]any{
			"type": map[string]any{"type": "string", "enum": nodeTypes},

			// integer / real
			"value": map[string]any{},
			"min":   map[string]any{"type": "number"},
			"max":   map[string]any{"type": "number"},

			// real
			"precision": map[string]any{"type": "integer"},

			// bool
			"probability": map[string]any{"type": "number", "minimum": 0, "maximum": 1},

			// counter
			"step":         map[string]any{"type": "integer"},
			"start":        map[string]any{"type": "integer"},
			"pathSpecific": map[string]any{"type": "boolean"},

			// string
			"generator": map[string]any{"type": "string", "enum": stringGeneratorKinds},
			"format":    map[string]any{"type": "string"},
			"args":      map[string]any{"type": "object"},

			// object
			"properties": map[string]any{"type": "object"},

			// array
			"length": map[string]any{},
			"items":  map[string]any{"$ref": "#"},
			"values": map[string]any{"type": "array", "items": map[string]any{"$ref": "#"}},

			// anyOf
			"num":       map[string]any{"type": "integer"},
			"allowNull": map[string]any{"type": "boolean"},

			// reference
			"reference": map[string]any{"type": "string"},
			"except":    map[string]any{"type": "array"},
			"keepAll":   map[string]any{"type": "boolean"},

			// file / include
			"path": map[string]any{"type": "string"},
			"mode": map[string]any{"type": "string", "enum": []string{"sequential", "random"}},

			// plugin
			"pluginName": map[string]any{"type": "string"},

			"transform": map[string]any{"type": "array"},
		},
	}

	return map[string]any{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"title":   "datagen document",
		"type":    "object",
		"allOf":   []any{map[string]any{"$ref": "#/$defs/node"}},
		"$defs":   map[string]any{"node": node},
		"properties": map[string]any{
			"options": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"plugins":                 map[string]any{"type": "object"},
					"ignoreNotFoundLocalRefs": map[string]any{"type": "boolean"},
					"maxRefCacheSize":         map[string]any{"type": "integer"},
					"serializeNonStrings":     map[string]any{"type": "boolean"},
					"onDuplicateProperty":     map[string]any{"type": "string", "enum": []string{"error", "useFirst", "useLast"}},
					"serializer": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"type":        map[string]any{"type": "string", "enum": []string{"json", "yaml", "xml", "plugin"}},
							"pretty":      map[string]any{"type": "boolean"},
							"rootElement": map[string]any{"type": "string"},
							"pluginName":  map[string]any{"type": "string"},
							"args":        map[string]any{"type": "object"},
						},
					},
				},
			},
		},
	}
}

// WriteJSONSchema renders the input format's JSON Schema to path.
func WriteJSONSchema(path string) error {
	b, err := json.MarshalIndent(jsonSchemaDocument(), "", "  ")
	if err != nil {
		return fmt.Errorf("schemaio: marshalling json schema: %w", err)
	}
	b = append(b, '\n')
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("schemaio: writing json schema to %q: %w", path, err)
	}
	return nil
}
