// Package evalctx implements the per-node evaluation environment threaded
// through the recursive schema walk: the context tree (root/child/sibling
// chaining, finalisation into each ancestor's own reference table), the
// counter backends, and the file-source cache.
package evalctx

import (
	"fmt"
	"math/rand"
	"sync/atomic"

	"github.com/datagen-go/datagen/pkg/plugin"
	"github.com/datagen-go/datagen/pkg/reference"
	"github.com/datagen-go/datagen/pkg/value"
)

// shared holds the state every Context in a run has equal access to: the
// plugin registry, options, counters, file cache, and a single PRNG. It is
// allocated once by Root and never copied.
type shared struct {
	options    Options
	plugins    *plugin.Registry
	counters   *Counters
	fileCache  *FileCache
	rng        *rand.Rand
	propsIndex map[string][]string
}

// Context is one node's evaluation environment: its path from the schema
// root, a back-pointer to its parent, and its own reference table (shared
// by pointer with earlier siblings within the same object, per §4.8).
type Context struct {
	parent    *Context
	path      value.Path
	own       *Registry
	shared    *shared
	finalized atomic.Bool
}

// Root creates the root context for one generation run: a fresh reference
// table and the shared plugin registry, options, counters, and file cache.
func Root(options Options, plugins *plugin.Registry) *Context {
	return &Context{
		path: value.RootPath,
		own:  NewRegistry(options.MaxRefCacheSize),
		shared: &shared{
			options:    options,
			plugins:    plugins,
			counters:   NewCounters(),
			fileCache:  NewFileCache(),
			rng:        rand.New(rand.NewSource(rand.Int63())),
			propsIndex: make(map[string][]string),
		},
	}
}

// Child creates a new context nested one path component below parent. When
// sibling is non-nil, the child adopts the sibling's own reference table
// (by pointer) instead of starting a fresh one, so later properties of the
// same object can resolve earlier ones via "ref:./name" (§4.8).
func (c *Context) Child(pathComponent string, sibling *Context) *Context {
	own := sibling.ownTable(c.shared.options.MaxRefCacheSize)
	return &Context{
		parent: c,
		path:   c.path.Append(pathComponent),
		own:    own,
		shared: c.shared,
	}
}

func (c *Context) ownTable(max RefCacheSize) *Registry {
	if c != nil {
		return c.own
	}
	return NewRegistry(max)
}

// Path returns the dotted path from root to this context.
func (c *Context) Path() string { return c.path.String() }

// PathValue returns the raw Path, for callers that need to append further
// (e.g. list-index children).
func (c *Context) PathValue() value.Path { return c.path }

// OptionsValue returns the run's options.
func (c *Context) OptionsValue() Options { return c.shared.options }

// Rand returns the run's shared PRNG.
func (c *Context) Rand() *rand.Rand { return c.shared.rng }

// Counters returns the run's counter backends.
func (c *Context) Counters() *Counters { return c.shared.counters }

// Files returns the run's file-source cache.
func (c *Context) Files() *FileCache { return c.shared.fileCache }

// GetPlugin looks up a declared plugin by name.
func (c *Context) GetPlugin(name string) (plugin.Plugin, bool) {
	return c.shared.plugins.Get(name)
}

// PluginExists reports whether name is a declared plugin.
func (c *Context) PluginExists(name string) bool {
	return c.shared.plugins.Has(name)
}

// IndexSchemaProperties records the declared property names of the
// object-typed schema node at path, for later SchemaValueProperties
// lookups by plugins. The index starts empty for each run and nothing in
// this module fills it, so SchemaValueProperties reports false for any
// path a caller has not indexed with this method.
func (c *Context) IndexSchemaProperties(path string, props []string) {
	c.shared.propsIndex[path] = props
}

// SchemaValueProperties returns the declared property names of the
// object-typed schema node at the given dotted path.
func (c *Context) SchemaValueProperties(path string) ([]string, bool) {
	props, ok := c.shared.propsIndex[path]
	return props, ok
}

// Finalize registers v into every ancestor's own reference table (this
// context's table included), keyed by the path suffix relative to that
// ancestor, then marks this context finalized so a repeated call is a
// no-op. Returns v unchanged, for chaining.
func (c *Context) Finalize(v value.Value) value.Value {
	if c.finalized.Load() {
		return v
	}
	c.finalizeInner(v, c.path, c.path.Len()-1)
	c.finalized.Store(true)
	return v
}

func (c *Context) finalizeInner(v value.Value, fullPath value.Path, remove int) {
	truncated := fullPath.Pop(remove)
	if key := truncated.NormalizedString(); key != "" {
		c.own.Finalize(key, v)
	}
	if c.parent != nil {
		c.parent.finalizeInner(v, fullPath, remove-1)
	}
}

// ResolveRef resolves a textual reference expression per §4.3: a plain
// literal yields itself as a string, "ref:name" looks up name in the root
// context's own table, "ref:./name" looks it up in this context's own
// table, and "ref:../name" (possibly chained) climbs that many ancestors
// first. One match is picked at random when more than one value is found.
func (c *Context) ResolveRef(expr string) (value.Value, error) {
	matches, err := c.ResolveRefAll(expr)
	if err != nil {
		return value.Value{}, err
	}
	return reference.NewResolution(matches).IntoRandom(c.shared.rng), nil
}

// ResolveRefAll resolves expr the same way ResolveRef does, but returns
// every match instead of picking one — used by Reference's except/keepAll
// filtering, which needs the full candidate set before selecting.
func (c *Context) ResolveRefAll(expr string) ([]value.Value, error) {
	parsed := reference.Parse(expr)

	switch parsed.Scope {
	case reference.ScopeLiteral:
		return []value.Value{value.String(parsed.Literal)}, nil

	case reference.ScopeRelative:
		return c.own.Lookup(parsed.Name), nil

	case reference.ScopeParent:
		ancestor := c
		for i := 0; i < parsed.UpLevels; i++ {
			if ancestor.parent == nil {
				return nil, fmt.Errorf("evalctx: reference %q: context at %q has no parent", expr, ancestor.Path())
			}
			ancestor = ancestor.parent
		}
		return ancestor.own.Lookup(parsed.Name), nil

	case reference.ScopeGlobal:
		root := c
		for root.parent != nil {
			root = root.parent
		}
		return root.own.Lookup(parsed.Name), nil

	default:
		return nil, fmt.Errorf("evalctx: unrecognised reference expression %q", expr)
	}
}
