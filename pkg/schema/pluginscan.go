package schema

import (
	"os"

	"github.com/datagen-go/datagen/pkg/transform"
)

// CollectPluginNames walks a parsed (not evaluated) schema tree and returns
// every plugin name referenced by a Plugin node or a PluginTransform step,
// in first-encountered order with duplicates removed. It backs §4.12's
// discovery pass: plugins referenced but never declared in a document's
// "options.plugins" block still need a registry entry under their default
// name.
//
// Include targets are read and scanned too, best effort: a missing or
// unparsable include is left for evaluation to report and contributes no
// names here.
func CollectPluginNames(root Node) []string {
	s := &pluginScanner{seen: map[string]bool{}}
	s.node(root)
	return s.order
}

type pluginScanner struct {
	seen  map[string]bool
	order []string
}

func (s *pluginScanner) add(name string) {
	if name == "" || s.seen[name] {
		return
	}
	s.seen[name] = true
	s.order = append(s.order, name)
}

func (s *pluginScanner) node(n Node) {
	switch v := n.(type) {
	case Object:
		for _, prop := range v.Properties {
			s.anyValue(prop.Value)
		}
		s.pipeline(v.Transform)

	case Array:
		if v.Items != nil {
			s.anyValue(*v.Items)
		}
		for _, av := range v.Values {
			s.anyValue(av)
		}
		s.pipeline(v.Transform)

	case AnyOf:
		for _, av := range v.Values {
			s.anyValue(av)
		}
		s.pipeline(v.Transform)

	case Flatten:
		for _, child := range v.Values {
			s.node(child)
		}
		s.pipeline(v.Transform)

	case Include:
		s.include(v)

	case Plugin:
		s.add(v.PluginName)
		s.pipeline(v.Transform)

	case Integer:
		s.pipeline(v.Transform)
	case Real:
		s.pipeline(v.Transform)
	case Bool:
		s.pipeline(v.Transform)
	case Counter:
		s.pipeline(v.Transform)
	case StringSchema:
		s.pipeline(v.Transform)
	case Reference:
		s.pipeline(v.Transform)
	case File:
		s.pipeline(v.Transform)
	}
}

func (s *pluginScanner) anyValue(av AnyValue) {
	if av.IsNode() {
		s.node(av.Node)
	}
}

func (s *pluginScanner) include(v Include) {
	if v.Path == "" {
		return
	}
	raw, err := os.ReadFile(v.Path)
	if err != nil {
		return
	}
	s.node(NodeFromJSON(raw))
}

func (s *pluginScanner) pipeline(p transform.Pipeline) {
	for _, t := range p {
		if pt, ok := t.(transform.PluginTransform); ok {
			s.add(pt.Name)
		}
	}
}
