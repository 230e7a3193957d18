package schema

import (
	"encoding/json"
	"fmt"

	"github.com/datagen-go/datagen/pkg/evalctx"
)

// PluginInitArgs is a declared plugin's construction arguments: either an
// explicit path to a dynamically-loaded library plus arguments, or a bare
// value passed straight to an in-process plugin the host already knows how
// to build. The two forms are told apart structurally (no type tag), per
// the original's untagged enum.
type PluginInitArgs struct {
	Path string          `json:"path,omitempty"`
	Args json.RawMessage `json:"args,omitempty"`
	// Value holds the raw arguments when Path is empty.
	Value json.RawMessage `json:"-"`
}

func (p *PluginInitArgs) UnmarshalJSON(raw []byte) error {
	var withPath struct {
		Path string          `json:"path"`
		Args json.RawMessage `json:"args"`
	}
	if err := json.Unmarshal(raw, &withPath); err == nil && withPath.Path != "" {
		p.Path = withPath.Path
		p.Args = withPath.Args
		return nil
	}
	p.Value = json.RawMessage(raw)
	return nil
}

// Serializer names the output renderer §9's generation driver hands the
// evaluated tree to, and its per-kind configuration.
type Serializer struct {
	Type        string          `json:"type"`
	Pretty      bool            `json:"pretty,omitempty"`
	RootElement string          `json:"rootElement,omitempty"`
	PluginName  string          `json:"pluginName,omitempty"`
	Args        json.RawMessage `json:"args,omitempty"`
}

// DefaultSerializer is used when SchemaOptions.serializer is absent.
var DefaultSerializer = Serializer{Type: "json"}

// SchemaOptions is the document's top-level "options" object.
type SchemaOptions struct {
	Plugins                 map[string]PluginInitArgs `json:"plugins,omitempty"`
	IgnoreNotFoundLocalRefs bool                      `json:"ignoreNotFoundLocalRefs,omitempty"`
	// MaxRefCacheSize is nil when unset (unbounded); *MaxRefCacheSize == 0
	// disables the reference cache entirely.
	MaxRefCacheSize     *int                `json:"maxRefCacheSize,omitempty"`
	SerializeNonStrings bool                `json:"serializeNonStrings,omitempty"`
	Serializer          *Serializer         `json:"serializer,omitempty"`
	OnDuplicateProperty OnDuplicateProperty `json:"onDuplicateProperty,omitempty"`
}

// Document is a fully parsed schema: its root node, ready to Evaluate, plus
// the run options and output serialiser derived from its "options" block.
type Document struct {
	Root       Node
	Options    evalctx.Options
	Serializer Serializer
}

// ParseDocument decodes a top-level schema document. Per §6, the "options"
// key is peeled off first (its OnDuplicateProperty governs how the rest of
// the document, including the root node, is decoded), and the remaining
// fields are parsed as the root node itself, options and node properties
// living side by side in the same JSON object.
func ParseDocument(raw json.RawMessage) (*Document, error) {
	var wire struct {
		Options *SchemaOptions `json:"options"`
	}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, fmt.Errorf("schema: %w", err)
	}

	opts := wire.Options
	if opts == nil {
		opts = &SchemaOptions{}
	}
	SetDuplicatePropertyPolicy(opts.OnDuplicateProperty)

	root := NodeFromJSON(raw)

	serializer := DefaultSerializer
	if opts.Serializer != nil {
		serializer = *opts.Serializer
	}

	refCache := evalctx.Unbounded
	if opts.MaxRefCacheSize != nil {
		refCache = evalctx.Bounded(*opts.MaxRefCacheSize)
	}

	var plugins []evalctx.PluginDeclaration
	for name, init := range opts.Plugins {
		decl := evalctx.PluginDeclaration{Name: name, Path: init.Path, Value: init.Value}
		if len(init.Args) > 0 {
			var args map[string]string
			if err := json.Unmarshal(init.Args, &args); err == nil {
				decl.Args = args
			}
		}
		plugins = append(plugins, decl)
	}

	return &Document{
		Root: root,
		Options: evalctx.Options{
			Plugins:             plugins,
			IgnoreMissingRefs:   opts.IgnoreNotFoundLocalRefs,
			MaxRefCacheSize:     refCache,
			SerializeNonStrings: opts.SerializeNonStrings,
			Serializer:          serializer.Type,
		},
		Serializer: serializer,
	}, nil
}
