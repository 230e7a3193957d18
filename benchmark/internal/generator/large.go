package generator

import "context"

// LargeGenerator produces a deep object tree exercising AnyOf, Flatten,
// and cross-references on top of the nested objects/arrays MidGenerator
// already covers.
type LargeGenerator struct {
	*BaseGenerator
}

func NewLargeGenerator() *LargeGenerator {
	return &LargeGenerator{BaseGenerator: NewBaseGenerator(3)}
}

func (g *LargeGenerator) Generate(ctx context.Context, dir string) (string, error) {
	// A deep chain of nested objects, two properties each, five levels down.
	leaf := g.objectNode(5, newObj().
		set("value", g.realNode(6)).
		set("label", g.stringNode(6, "country")))
	level4 := g.objectNode(4, newObj().set("child", leaf).set("weight", g.intNode(5)))
	level3 := g.objectNode(3, newObj().set("child", level4).set("note", g.stringNode(4, "city")))
	level2 := g.objectNode(2, newObj().set("child", level3).set("flag", g.boolNode(3)))

	// AnyOf between two differently-shaped variant payloads.
	variantA := g.objectNode(3, newObj().
		set("kind", g.stringNode(4, "firstName")).
		set("amount", g.realNode(4)))
	variantB := g.objectNode(3, newObj().
		set("kind", g.stringNode(4, "lastName")).
		set("count", g.intNode(4)))
	oneOf := g.anyOfNode(2, []any{variantA, variantB})

	// Flatten merges two sibling objects into one.
	base := g.objectNode(3, newObj().
		set("id", g.uuidNode(4)).
		set("createdAt", g.counterNode(4)))
	extra := g.objectNode(3, newObj().
		set("nickname", g.stringNode(4, "username")).
		set("homeCity", g.stringNode(4, "city")))
	merged := g.flattenNode(2, []any{base, extra})

	recordProps := newObj().
		set("nested", level2).
		set("variant", oneOf).
		set("merged", merged).
		set("ownerId", g.referenceNode(3, "ref:rootId")).
		set("siblingLabel", g.referenceNode(3, "ref:./nested"))
	recordTemplate := g.objectNode(1, recordProps)

	rootProps := newObj().
		set("rootId", g.uuidNode(1)).
		set("records", g.arrayNode(1, 8, 16, recordTemplate)).
		set("summary", g.stringNode(1, "email"))

	root := g.objectNode(0, rootProps)
	return g.WriteSchema(dir, root)
}
