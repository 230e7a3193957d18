package evalctx

import (
	"github.com/datagen-go/datagen/pkg/plugin"
)

// AsPluginContext adapts a *Context to the plugin.Context interface, which
// plugins call back into. It's a thin wrapper rather than having *Context
// itself implement plugin.Context directly, because plugin.Context.Child
// takes no sibling argument — plugins never need sibling chaining, only
// the core object evaluator does.
type AsPluginContext struct {
	*Context
}

var _ plugin.Context = AsPluginContext{}

// Child implements plugin.Context.
func (c AsPluginContext) Child(pathComponent string) plugin.Context {
	return AsPluginContext{c.Context.Child(pathComponent, nil)}
}

// Options implements plugin.Context.
func (c AsPluginContext) Options() map[string]string {
	return c.shared.options.AsStringMap()
}
