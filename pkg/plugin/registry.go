package plugin

import (
	"fmt"
	"sync"

	"github.com/datagen-go/datagen/pkg/value"
)

// ConstructFunc builds a Plugin instance from its construction args, the
// in-process counterpart to dynload.go's ABI construct symbol. A host
// program that wants a plugin available without a dynamic library calls
// RegisterConstructor before running a generation.
type ConstructFunc func(args value.Value) (Plugin, error)

var (
	constructorsMu sync.RWMutex
	constructors   = map[string]ConstructFunc{}
)

// RegisterConstructor makes an in-process plugin buildable under name. It
// mirrors schema.SetGenerator's installer pattern: the host registers its
// constructors during init, and buildPluginRegistry calls Construct for
// any declared plugin that has no "path".
func RegisterConstructor(name string, fn ConstructFunc) {
	constructorsMu.Lock()
	defer constructorsMu.Unlock()
	constructors[name] = fn
}

// Construct builds a plugin instance via its registered ConstructFunc, if
// any. ok is false when no in-process constructor was registered under
// name, distinct from a construction failure (err).
func Construct(name string, args value.Value) (p Plugin, ok bool, err error) {
	constructorsMu.RLock()
	fn, found := constructors[name]
	constructorsMu.RUnlock()
	if !found {
		return nil, false, nil
	}
	p, err = fn(args)
	return p, true, err
}

// Registry tracks the plugins known to a generation run: both plugins
// declared explicitly in a schema document's top-level "plugins" block,
// and plugins discovered by scanning the schema tree for plugin-typed
// nodes that reference a name not yet declared.
type Registry struct {
	mu      sync.RWMutex
	plugins map[string]Plugin
}

// NewRegistry creates an empty plugin registry.
func NewRegistry() *Registry {
	return &Registry{plugins: make(map[string]Plugin)}
}

// Register adds plugin under its own Name(). Returns an error if a plugin
// with the same name is already registered, mirroring the teacher's
// registry's duplicate-name rejection.
func (r *Registry) Register(p Plugin) error {
	if p == nil {
		return fmt.Errorf("plugin: cannot register nil plugin")
	}
	name := p.Name()
	if name == "" {
		return fmt.Errorf("plugin: plugin name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.plugins[name]; exists {
		return fmt.Errorf("plugin: %q already registered", name)
	}
	r.plugins[name] = p
	return nil
}

// Get retrieves a plugin by name. Safe for concurrent use by plugin
// threads, which is why the registry is mutex-guarded rather than a bare
// map: a dynamically-loaded plugin may itself spawn goroutines that call
// back into GetPlugin through the Context interface.
func (r *Registry) Get(name string) (Plugin, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.plugins[name]
	return p, ok
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.plugins[name]
	return ok
}

// List returns all registered plugin names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.plugins))
	for name := range r.plugins {
		names = append(names, name)
	}
	return names
}
