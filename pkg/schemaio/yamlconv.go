package schemaio

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// yamlToJSON re-renders a YAML document as JSON text, preserving mapping
// key order (yaml.v3's own map-based decode would randomize it, the same
// problem pkg/serialize's YAML writer solves in the opposite direction).
func yamlToJSON(raw []byte) (json.RawMessage, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("schemaio: parsing yaml: %w", err)
	}
	if len(doc.Content) == 0 {
		return json.RawMessage("null"), nil
	}

	var buf bytes.Buffer
	if err := writeYAMLNodeAsJSON(&buf, doc.Content[0]); err != nil {
		return nil, err
	}
	return json.RawMessage(buf.Bytes()), nil
}

func writeYAMLNodeAsJSON(buf *bytes.Buffer, n *yaml.Node) error {
	switch n.Kind {
	case yaml.MappingNode:
		buf.WriteByte('{')
		for i := 0; i+1 < len(n.Content); i += 2 {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(n.Content[i].Value)
			if err != nil {
				return err
			}
			buf.Write(key)
			buf.WriteByte(':')
			if err := writeYAMLNodeAsJSON(buf, n.Content[i+1]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil

	case yaml.SequenceNode:
		buf.WriteByte('[')
		for i, child := range n.Content {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeYAMLNodeAsJSON(buf, child); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil

	case yaml.AliasNode:
		return writeYAMLNodeAsJSON(buf, n.Alias)

	case yaml.ScalarNode:
		return writeYAMLScalarAsJSON(buf, n)

	default:
		return fmt.Errorf("schemaio: unsupported yaml node kind %v", n.Kind)
	}
}

func writeYAMLScalarAsJSON(buf *bytes.Buffer, n *yaml.Node) error {
	switch n.Tag {
	case "!!null":
		buf.WriteString("null")
		return nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return err
		}
		if b {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
		return nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err != nil {
			return err
		}
		fmt.Fprintf(buf, "%d", i)
		return nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return err
		}
		fmt.Fprintf(buf, "%g", f)
		return nil
	default:
		encoded, err := json.Marshal(n.Value)
		if err != nil {
			return err
		}
		buf.Write(encoded)
		return nil
	}
}
