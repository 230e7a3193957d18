package serialize

import (
	"github.com/datagen-go/datagen/pkg/plugin"
	"github.com/datagen-go/datagen/pkg/value"
)

// Plugin dispatches serialisation to a declared plugin's Serialize method,
// for output formats the core doesn't know about (§9's custom serialisers).
// It carries the context and args a plain Serializer.Serialize call has no
// room for, since the driver constructs one Plugin value per run rather
// than per call.
type Plugin struct {
	Impl plugin.Plugin
	Ctx  plugin.Context
	Args value.Value
}

func (p Plugin) Serialize(v value.Value, _ bool) ([]byte, error) {
	return p.Impl.Serialize(p.Ctx, p.Args, v)
}
