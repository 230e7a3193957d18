package value

import (
	"strconv"
	"strings"
)

// Path is an ordered sequence of string components from the schema root.
// Paths are immutable: Append and Pop return new Paths.
type Path struct {
	components []string
}

// RootPath is the empty path.
var RootPath = Path{}

// NewPath builds a path from its components.
func NewPath(components ...string) Path {
	cp := make([]string, len(components))
	copy(cp, components)
	return Path{components: cp}
}

// Append returns a new path with component added at the end.
func (p Path) Append(component string) Path {
	cp := make([]string, len(p.components)+1)
	copy(cp, p.components)
	cp[len(p.components)] = component
	return Path{components: cp}
}

// Pop returns a new path with the first n components removed. Negative n
// is a no-op (identity), matching the teacher-era leniency the spec asks
// for rather than panicking on bad input from reference-expression parsing.
func (p Path) Pop(n int) Path {
	if n <= 0 {
		return p
	}
	if n >= len(p.components) {
		return Path{}
	}
	cp := make([]string, len(p.components)-n)
	copy(cp, p.components[n:])
	return Path{components: cp}
}

// Len returns the number of components.
func (p Path) Len() int { return len(p.components) }

// Components returns the raw components. The caller must not mutate it.
func (p Path) Components() []string { return p.components }

// isAllDigits reports whether s is a non-empty run of decimal digits, i.e.
// the component came from a list index rather than a named property.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Normalized drops any component that is entirely decimal digits, so list
// indices don't participate in reference name lookup.
func (p Path) Normalized() Path {
	out := make([]string, 0, len(p.components))
	for _, c := range p.components {
		if !isAllDigits(c) {
			out = append(out, c)
		}
	}
	return Path{components: out}
}

// String joins the path's components with ".".
func (p Path) String() string {
	return strings.Join(p.components, ".")
}

// NormalizedString is a convenience for Normalized().String(), the key used
// throughout the reference registry.
func (p Path) NormalizedString() string {
	return p.Normalized().String()
}

// IndexComponent renders i as a path component for list children.
func IndexComponent(i int) string {
	return strconv.Itoa(i)
}
