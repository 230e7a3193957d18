package serialize

import (
	"fmt"

	"github.com/clbanning/mxj/v2"

	"github.com/datagen-go/datagen/pkg/value"
)

// XML serializes v by converting it to a generic map[string]any (via
// value.ToJSON, so property order is not preserved — XML element order
// isn't guaranteed by the schema anyway) and rendering it with mxj under
// RootElement.
type XML struct {
	RootElement string
}

func (x XML) Serialize(v value.Value, pretty bool) ([]byte, error) {
	conv, err := value.ToJSON(v)
	if err != nil {
		return nil, err
	}

	m, ok := conv.(map[string]any)
	if !ok {
		// A non-object root is wrapped under the root element as a single
		// scalar child, since mxj.Map requires a map to render from.
		m = map[string]any{"value": conv}
	}

	mm := mxj.Map(m)
	if pretty {
		return mm.XmlIndent("", "  ", x.RootElement)
	}
	out, err := mm.Xml(x.RootElement)
	if err != nil {
		return nil, fmt.Errorf("serialize: xml: %w", err)
	}
	return out, nil
}
