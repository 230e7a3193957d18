// Package plugin defines the generator's plugin interface: the operations a
// plugin may implement (generate, transform, serialise), the ABI used to
// call in-process and dynamically-loaded plugins uniformly, and the
// Registry that tracks which plugins are known to a run.
package plugin

import (
	"fmt"
	"math/rand"

	"github.com/datagen-go/datagen/pkg/value"
)

// Op names an optional plugin capability, used in ErrNotSupported.
type Op string

const (
	OpGenerate  Op = "generate"
	OpTransform Op = "transform"
	OpSerialize Op = "serialize"
)

// ErrNotSupported is returned by a plugin method it doesn't implement, so
// the caller can report a precise error instead of silently no-op'ing.
type ErrNotSupported struct {
	Plugin string
	Op     Op
}

func (e *ErrNotSupported) Error() string {
	return fmt.Sprintf("plugin %q does not support %s", e.Plugin, e.Op)
}

// Context is the subset of the evaluation context a plugin call may use. It
// is implemented by the wrapper that evalctx.AsPluginContext returns around
// an *evalctx.Context; defining it here (rather than
// importing evalctx) keeps this package a dependency leaf and avoids an
// import cycle, since evalctx itself needs to reference Registry/Plugin.
type Context interface {
	// Child pushes pathComponent onto the path and returns a context
	// scoped to it, mirroring the schema tree's recursive descent.
	Child(pathComponent string) Context
	// ResolveRef resolves a "ref:" expression against the current context,
	// exactly as the core reference resolver would.
	ResolveRef(expr string) (value.Value, error)
	// Finalize registers v under the context's current path so later
	// siblings can ref: it, then returns v unchanged.
	Finalize(v value.Value) value.Value
	// Path returns the dotted path string of the current context.
	Path() string
	// GetPlugin looks up another declared plugin by name.
	GetPlugin(name string) (Plugin, bool)
	// PluginExists reports whether name is a declared plugin.
	PluginExists(name string) bool
	// Rand returns the run's shared random source, so plugins draw from
	// the same stream as the core generators.
	Rand() *rand.Rand
	// Options returns the run's SchemaOptions rendered as plugin-visible
	// key/value pairs (serialiser name, ignore_missing_refs, etc.).
	Options() map[string]string
	// SchemaValueProperties returns the declared property names of the
	// object-typed schema node at the given dotted path, so a plugin can
	// introspect sibling shape without walking the schema tree itself.
	SchemaValueProperties(path string) ([]string, bool)
}

// Plugin is the interface a plugin value implements, whether constructed
// in-process (declared in a Go program's own registry) or loaded from a
// shared object via dynload.go. Each method may return ErrNotSupported if
// the concrete plugin doesn't implement that capability.
type Plugin interface {
	// Name identifies the plugin for error messages and ref: lookups of
	// its emitted values.
	Name() string
	// Generate produces a value.Value given the plugin's schema-node
	// arguments (already evaluated to a Value, typically a Map).
	Generate(ctx Context, args value.Value) (value.Value, error)
	// Transform post-processes an already-generated value.
	Transform(ctx Context, args, input value.Value) (value.Value, error)
	// Serialize renders v as the final output bytes for a custom format.
	Serialize(ctx Context, args, v value.Value) ([]byte, error)
}

// Base embeds into a concrete plugin to provide default ErrNotSupported
// implementations, so a plugin author only overrides the methods they
// implement — mirrors the teacher's base-plugin pattern of embedding a
// no-op struct.
type Base struct {
	PluginName string
}

func (b Base) Name() string { return b.PluginName }

func (b Base) Generate(Context, value.Value) (value.Value, error) {
	return value.None, &ErrNotSupported{Plugin: b.PluginName, Op: OpGenerate}
}

func (b Base) Transform(_ Context, _, _ value.Value) (value.Value, error) {
	return value.None, &ErrNotSupported{Plugin: b.PluginName, Op: OpTransform}
}

func (b Base) Serialize(_ Context, _, _ value.Value) ([]byte, error) {
	return nil, &ErrNotSupported{Plugin: b.PluginName, Op: OpSerialize}
}
