package generator

import (
	"context"
	"encoding/json"
	"math/rand"
	"os"
	"path/filepath"
)

// Generator builds a synthetic datagen schema file of a fixed shape and
// reports stats describing it, the benchmark-domain counterpart to the
// GraphQL fixture generators this package is adapted from.
type Generator interface {
	Generate(ctx context.Context, dir string) (schemaPath string, err error)
	GetStats() Stats
}

// Stats describes the schema a Generator produced.
type Stats struct {
	NodeCount   int
	MaxDepth    int
	SchemaBytes int
}

// BaseGenerator holds the bits every concrete generator needs: a seeded
// RNG for reproducible fixture shapes and the running Stats tally.
type BaseGenerator struct {
	stats Stats
	rand  *rand.Rand
}

func NewBaseGenerator(seed int64) *BaseGenerator {
	return &BaseGenerator{rand: rand.New(rand.NewSource(seed))}
}

func (g *BaseGenerator) GetStats() Stats {
	return g.stats
}

func (g *BaseGenerator) mark(depth int) {
	g.stats.NodeCount++
	if depth > g.stats.MaxDepth {
		g.stats.MaxDepth = depth
	}
}

// WriteSchema marshals doc as the schema file a Generator produces and
// records its size in Stats.
func (g *BaseGenerator) WriteSchema(dir string, doc any) (string, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", err
	}
	g.stats.SchemaBytes = len(data)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, "datagen.schema.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

var fakerKinds = []string{
	"email", "firstName", "lastName", "fullName", "username",
	"city", "country", "countryCode", "street", "state", "zipCode", "phone",
}

func (g *BaseGenerator) randFakerKind() string {
	return fakerKinds[g.rand.Intn(len(fakerKinds))]
}

func (g *BaseGenerator) intNode(depth int) map[string]any {
	g.mark(depth)
	return map[string]any{"type": "integer", "min": 0, "max": 1_000_000}
}

func (g *BaseGenerator) realNode(depth int) map[string]any {
	g.mark(depth)
	return map[string]any{"type": "real", "min": 0, "max": 1, "precision": 2}
}

func (g *BaseGenerator) boolNode(depth int) map[string]any {
	g.mark(depth)
	return map[string]any{"type": "bool", "probability": 0.5}
}

func (g *BaseGenerator) counterNode(depth int) map[string]any {
	g.mark(depth)
	return map[string]any{"type": "counter"}
}

func (g *BaseGenerator) stringNode(depth int, kind string) map[string]any {
	g.mark(depth)
	return map[string]any{"type": "string", "generator": kind}
}

func (g *BaseGenerator) uuidNode(depth int) map[string]any {
	return g.stringNode(depth, "uuid")
}

func (g *BaseGenerator) objectNode(depth int, props *obj) map[string]any {
	g.mark(depth)
	return map[string]any{"type": "object", "properties": props}
}

func (g *BaseGenerator) arrayNode(depth int, min, max uint32, items any) map[string]any {
	g.mark(depth)
	return map[string]any{
		"type":   "array",
		"length": map[string]any{"min": min, "max": max},
		"items":  items,
	}
}

func (g *BaseGenerator) anyOfNode(depth int, values []any) map[string]any {
	g.mark(depth)
	return map[string]any{"type": "anyOf", "values": values}
}

func (g *BaseGenerator) flattenNode(depth int, values []any) map[string]any {
	g.mark(depth)
	return map[string]any{"type": "flatten", "values": values}
}

func (g *BaseGenerator) referenceNode(depth int, expr string) map[string]any {
	g.mark(depth)
	return map[string]any{"type": "reference", "reference": expr}
}
