package serialize

import (
	"bytes"
	"encoding/json"

	"github.com/datagen-go/datagen/pkg/value"
)

// JSON serializes via value.Value's own json.Marshaler implementation,
// which walks the ordered Map directly rather than round-tripping through
// map[string]any, so property order survives.
type JSON struct{}

func (JSON) Serialize(v value.Value, pretty bool) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	if !pretty {
		return raw, nil
	}
	var out bytes.Buffer
	if err := json.Indent(&out, raw, "", "  "); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
