// Package serialize renders an evaluated value.Value tree as output bytes
// in one of a handful of formats, chosen by the schema document's
// "options.serializer" block.
package serialize

import (
	"fmt"

	"github.com/datagen-go/datagen/pkg/value"
)

// Serializer renders a fully evaluated value tree as bytes.
type Serializer interface {
	Serialize(v value.Value, pretty bool) ([]byte, error)
}

// New builds the Serializer named by kind ("json", "yaml", "xml"), with
// kind-specific configuration (root element name for XML). An empty kind
// selects JSON; any other unknown kind is an error.
func New(kind string, rootElement string) (Serializer, error) {
	switch kind {
	case "", "json":
		return JSON{}, nil
	case "yaml":
		return YAML{}, nil
	case "xml":
		if rootElement == "" {
			return nil, fmt.Errorf("serialize: xml serializer requires a root element name")
		}
		return XML{RootElement: rootElement}, nil
	default:
		return nil, fmt.Errorf("serialize: unknown serializer %q", kind)
	}
}
