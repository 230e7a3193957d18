// Package reference implements the textual reference-expression grammar
// (ref:name, ref:./name, ref:../name) and the Resolution variant returned by
// a lookup, independent of how the lookup itself walks the context tree
// (that walk lives in pkg/evalctx, which owns the registry and parent
// chain).
package reference

import "strings"

// Scope tags how a parsed reference expression is anchored.
type Scope int

const (
	// ScopeLiteral means the input wasn't a "ref:" expression at all; it's
	// a pure string literal.
	ScopeLiteral Scope = iota
	// ScopeGlobal looks up Name in the root context's registry ("ref:name").
	ScopeGlobal
	// ScopeRelative looks up Name in the current context's registry only
	// ("ref:./name").
	ScopeRelative
	// ScopeParent strips UpLevels levels and re-resolves against an
	// ancestor context ("ref:../name", "ref:../../name", ...).
	ScopeParent
)

// Expr is a parsed reference expression.
type Expr struct {
	Scope Scope
	// UpLevels is the number of "../" segments for ScopeParent.
	UpLevels int
	// Name is the (possibly dotted) lookup key.
	Name string
	// Literal holds the original string when Scope == ScopeLiteral.
	Literal string
}

const prefix = "ref:"

// Parse parses a reference expression per the grammar in spec §6:
//
//	ref-expr := "ref:" segment-path
//	segment-path := rel | abs
//	rel := ("../")+ name | "./" name
//	abs := name
//
// A string not starting with "ref:" yields a ScopeLiteral Expr wrapping the
// original string, matching the "pure literal" rule in §4.3.
func Parse(s string) Expr {
	if !strings.HasPrefix(s, prefix) {
		return Expr{Scope: ScopeLiteral, Literal: s}
	}
	rest := s[len(prefix):]

	if strings.HasPrefix(rest, "./") {
		return Expr{Scope: ScopeRelative, Name: rest[len("./"):]}
	}

	if strings.HasPrefix(rest, "../") {
		levels := 0
		for strings.HasPrefix(rest, "../") {
			levels++
			rest = rest[len("../"):]
		}
		return Expr{Scope: ScopeParent, UpLevels: levels, Name: rest}
	}

	return Expr{Scope: ScopeGlobal, Name: rest}
}

// IsRef reports whether s looks like a reference expression at all (used by
// callers that need to special-case literal strings starting with "ref:"
// themselves vs. treating every such string as a real reference — the core
// itself always treats them as references per §4.3).
func IsRef(s string) bool {
	return strings.HasPrefix(s, prefix)
}
