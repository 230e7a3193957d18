package generator

import "context"

// MidGenerator produces nested objects, arrays of records, and one
// cross-reference into the generated data.
type MidGenerator struct {
	*BaseGenerator
}

func NewMidGenerator() *MidGenerator {
	return &MidGenerator{BaseGenerator: NewBaseGenerator(2)}
}

func (g *MidGenerator) Generate(ctx context.Context, dir string) (string, error) {
	addressProps := newObj().
		set("street", g.stringNode(3, "street")).
		set("city", g.stringNode(3, "city")).
		set("state", g.stringNode(3, "state")).
		set("zip", g.stringNode(3, "zipCode"))
	address := g.objectNode(2, addressProps)

	userProps := newObj().
		set("id", g.uuidNode(2)).
		set("name", g.stringNode(2, "fullName")).
		set("address", address).
		set("tags", g.arrayNode(2, 1, 5, g.stringNode(3, "country"))).
		set("balance", g.realNode(2))
	userTemplate := g.objectNode(1, userProps)

	orderProps := newObj().
		set("orderId", g.uuidNode(2)).
		set("customerRef", g.referenceNode(2, "ref:supportEmail")).
		set("quantity", g.intNode(2)).
		set("total", g.realNode(2))
	orderTemplate := g.objectNode(1, orderProps)

	rootProps := newObj().
		set("supportEmail", g.stringNode(1, "email")).
		set("users", g.arrayNode(1, 5, 10, userTemplate)).
		set("orders", g.arrayNode(1, 10, 20, orderTemplate)).
		set("createdAt", g.counterNode(1))

	root := g.objectNode(0, rootProps)
	return g.WriteSchema(dir, root)
}
