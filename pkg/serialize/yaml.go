package serialize

import (
	"bytes"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/datagen-go/datagen/pkg/value"
)

// YAML serializes via a hand-built yaml.Node tree rather than round-tripping
// through a bare map[string]any, so object property order is preserved the
// same way the JSON serializer preserves it. The original's Serializer::Yaml
// variant carries no fields (no pretty-printing knob), so YAML ignores the
// pretty argument.
type YAML struct{}

func (YAML) Serialize(v value.Value, _ bool) ([]byte, error) {
	node, err := toYAMLNode(v)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func toYAMLNode(v value.Value) (*yaml.Node, error) {
	switch v.Kind() {
	case value.KindNone:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	case value.KindBool:
		b, _ := v.AsBool()
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(b)}, nil
	case value.KindInteger:
		i, _ := v.AsInteger()
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(i, 10)}, nil
	case value.KindReal:
		r, _ := v.AsReal()
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: strconv.FormatFloat(r, 'g', -1, 64)}, nil
	case value.KindString:
		s, _ := v.AsString()
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}, nil
	case value.KindList:
		items, _ := v.AsList()
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range items {
			child, err := toYAMLNode(item)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, child)
		}
		return node, nil
	case value.KindMap:
		m, _ := v.AsMap()
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		var rangeErr error
		m.Range(func(k string, child value.Value) bool {
			keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}
			valNode, err := toYAMLNode(child)
			if err != nil {
				rangeErr = err
				return false
			}
			node.Content = append(node.Content, keyNode, valNode)
			return true
		})
		if rangeErr != nil {
			return nil, rangeErr
		}
		return node, nil
	default:
		conv, err := value.ToJSON(v)
		if err != nil {
			return nil, err
		}
		var node yaml.Node
		if err := node.Encode(conv); err != nil {
			return nil, err
		}
		return &node, nil
	}
}
