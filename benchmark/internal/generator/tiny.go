package generator

import (
	"context"
	"fmt"
)

// TinyGenerator produces a flat object of primitive properties: the
// smallest schema shape the harness exercises.
type TinyGenerator struct {
	*BaseGenerator
}

func NewTinyGenerator() *TinyGenerator {
	return &TinyGenerator{BaseGenerator: NewBaseGenerator(1)}
}

func (g *TinyGenerator) Generate(ctx context.Context, dir string) (string, error) {
	props := newObj().
		set("id", g.uuidNode(1)).
		set("firstName", g.stringNode(1, "firstName")).
		set("lastName", g.stringNode(1, "lastName")).
		set("email", g.stringNode(1, "email")).
		set("age", g.intNode(1)).
		set("score", g.realNode(1)).
		set("active", g.boolNode(1)).
		set("signupNumber", g.counterNode(1))

	for i := 0; i < 12; i++ {
		props.set(fmt.Sprintf("field%d", i), g.stringNode(1, g.randFakerKind()))
	}

	root := g.objectNode(0, props)
	return g.WriteSchema(dir, root)
}
