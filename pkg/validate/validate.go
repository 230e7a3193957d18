// Package validate walks a parsed (not evaluated) schema tree and
// accumulates path-qualified structural errors, per §4.13: invalid bounds,
// regex patterns that don't compile, includes that won't load, and the
// other checks that don't require actually generating a value.
package validate

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"regexp"

	"github.com/datagen-go/datagen/pkg/schema"
	"github.com/datagen-go/datagen/pkg/transform"
)

// Error is one path-qualified validation failure.
type Error struct {
	Path    string
	Message string
}

func (e Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// walker accumulates errors across the whole walk rather than
// short-circuiting at the first one, per §4.13.
type walker struct {
	errs []Error
}

func (w *walker) add(path, format string, args ...any) {
	w.errs = append(w.errs, Error{Path: path, Message: fmt.Sprintf(format, args...)})
}

// Node validates a single parsed schema node and everything reachable from
// it, returning every error found.
func Node(path string, n schema.Node) []Error {
	w := &walker{}
	w.node(path, n)
	return w.errs
}

func (w *walker) node(path string, n schema.Node) {
	switch v := n.(type) {
	case schema.Invalid:
		w.add(path, "failed to parse, raw value was: %s", string(v.Raw))

	case schema.Integer:
		w.bounds(path, "integer", asFloat(v.Value), asFloat(v.Min), asFloat(v.Max))
		w.pipeline(path, v.Transform)

	case schema.Real:
		w.realBounds(path, v)
		w.pipeline(path, v.Transform)

	case schema.Bool:
		if v.Probability != nil && (*v.Probability < 0 || *v.Probability > 1) {
			w.add(path, "bool: probability must be between 0 and 1, got %v", *v.Probability)
		}
		w.pipeline(path, v.Transform)

	case schema.Counter:
		w.pipeline(path, v.Transform)

	case schema.StringSchema:
		w.stringSchema(path, v)
		w.pipeline(path, v.Transform)

	case schema.Object:
		for _, prop := range v.Properties {
			w.anyValue(path+"."+prop.Key, prop.Value)
		}
		w.pipeline(path, v.Transform)

	case schema.Array:
		w.array(path, v)
		w.pipeline(path, v.Transform)

	case schema.AnyOf:
		if len(v.Values) == 0 && (v.Num == nil || *v.Num != 0) {
			w.add(path, "anyOf: values must not be empty unless num is 0")
		}
		for i, av := range v.Values {
			w.anyValue(fmt.Sprintf("%s[%d]", path, i), av)
		}
		w.pipeline(path, v.Transform)

	case schema.Reference:
		if v.ReferenceExpr == "" {
			w.add(path, "reference: reference expression must not be empty")
		}
		w.pipeline(path, v.Transform)

	case schema.Flatten:
		for i, child := range v.Values {
			w.node(fmt.Sprintf("%s[%d]", path, i), child)
		}
		w.pipeline(path, v.Transform)

	case schema.File:
		if v.Path == "" {
			w.add(path, "file: path must not be empty")
		}
		w.pipeline(path, v.Transform)

	case schema.Include:
		w.include(path, v)

	case schema.Plugin:
		if v.PluginName == "" {
			w.add(path, "plugin: pluginName must not be empty")
		}
		w.pipeline(path, v.Transform)
	}
}

func (w *walker) anyValue(path string, av schema.AnyValue) {
	if av.IsNode() {
		w.node(path, av.Node)
	}
}

func (w *walker) array(path string, v schema.Array) {
	if v.RandomLength != nil {
		length := v.RandomLength
		if length.Min != nil && length.Max != nil && *length.Min > *length.Max {
			w.add(path, "array: length.min (%d) must be <= length.max (%d)", *length.Min, *length.Max)
		}
		if v.Items != nil {
			w.anyValue(path+"[]", *v.Items)
		}
		return
	}
	for i, av := range v.Values {
		w.anyValue(fmt.Sprintf("%s[%d]", path, i), av)
	}
}

func (w *walker) realBounds(path string, v schema.Real) {
	w.bounds(path, "real", v.Value, v.Min, v.Max)
	if v.Value != nil && !isFinite(*v.Value) {
		w.add(path, "real: value must be finite")
	}
}

func (w *walker) bounds(path, kind string, value *float64, min, max *float64) {
	if value != nil && !isFinite(*value) {
		w.add(path, "%s: value must be finite", kind)
	}
	if min != nil && !isFinite(*min) {
		w.add(path, "%s: min must be finite", kind)
	}
	if max != nil && !isFinite(*max) {
		w.add(path, "%s: max must be finite", kind)
	}
	if min != nil && max != nil && *min > *max {
		w.add(path, "%s: min (%v) must be <= max (%v)", kind, *min, *max)
	}
}

func (w *walker) stringSchema(path string, v schema.StringSchema) {
	if v.Constant != nil {
		return
	}
	if v.Generator != schema.GenFormat {
		return
	}
	if v.FormatTemplate == "" {
		w.add(path, "string: format generator requires a non-empty template")
		return
	}
	if !bracesBalanced(v.FormatTemplate) {
		w.add(path, "string: format template %q has unbalanced {{ }}", v.FormatTemplate)
	}
}

// bracesBalanced is a cheap structural check standing in for "the
// template parses": every "{{" is eventually closed by a matching "}}".
func bracesBalanced(s string) bool {
	depth := 0
	for i := 0; i < len(s)-1; i++ {
		switch {
		case s[i] == '{' && s[i+1] == '{':
			depth++
			i++
		case s[i] == '}' && s[i+1] == '}':
			depth--
			if depth < 0 {
				return false
			}
			i++
		}
	}
	return depth == 0
}

func (w *walker) include(path string, v schema.Include) {
	if v.Path == "" {
		w.add(path, "include: path must not be empty")
		return
	}
	raw, err := os.ReadFile(v.Path)
	if err != nil {
		w.add(path, "include: could not open file at %q: %v", v.Path, err)
		return
	}
	var generic json.RawMessage
	if err := json.Unmarshal(raw, &generic); err != nil {
		w.add(path, "include: %q is not valid JSON: %v", v.Path, err)
		return
	}
	w.node(path, schema.NodeFromJSON(raw))
}

func (w *walker) pipeline(path string, p transform.Pipeline) {
	for i, t := range p {
		w.transform(fmt.Sprintf("%s.transform[%d]", path, i), t)
	}
}

func (w *walker) transform(path string, t transform.Transform) {
	switch tr := t.(type) {
	case transform.Invalid:
		w.add(path, "failed to parse, raw value was: %s", string(tr.Raw))
	case transform.RegexFilter:
		if tr.Pattern == "" {
			w.add(path, "regexFilter: pattern must not be empty")
		} else if _, err := regexp.Compile(tr.Pattern); err != nil {
			w.add(path, "regexFilter: invalid pattern %q: %v", tr.Pattern, err)
		}
	case transform.ToString:
		if tr.Format != nil && !bracesBalanced(*tr.Format) {
			w.add(path, "toString: format template %q has unbalanced {{ }}", *tr.Format)
		}
	case transform.RandomRemove:
		if tr.Min != nil && tr.Max != nil && *tr.Min > *tr.Max {
			w.add(path, "randomRemove: min (%d) must be <= max (%d)", *tr.Min, *tr.Max)
		}
	case transform.RemoveAll:
		if len(tr.Include) == 0 && len(tr.Exclude) == 0 {
			w.add(path, "removeAll: include or exclude must be non-empty")
		}
	}
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func asFloat(i *int64) *float64 {
	if i == nil {
		return nil
	}
	f := float64(*i)
	return &f
}
