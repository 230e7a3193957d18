package schema_test

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datagen-go/datagen/pkg/evalctx"
	"github.com/datagen-go/datagen/pkg/plugin"
	"github.com/datagen-go/datagen/pkg/schema"
	"github.com/datagen-go/datagen/pkg/value"
)

func newCtx() *evalctx.Context {
	return evalctx.Root(evalctx.Options{}, plugin.NewRegistry())
}

func evalJSON(t *testing.T, raw string, ctx *evalctx.Context) (value.Value, error) {
	t.Helper()
	node := schema.NodeFromJSON(json.RawMessage(raw))
	return node.Evaluate(ctx)
}

func TestIntegerConstant(t *testing.T) {
	v, err := evalJSON(t, `{"type":"integer","value":42}`, newCtx())
	require.NoError(t, err)
	i, ok := v.AsInteger()
	require.True(t, ok)
	assert.EqualValues(t, 42, i)
}

func TestIntegerRandomRangeIsClamped(t *testing.T) {
	v, err := evalJSON(t, `{"type":"integer","min":5,"max":5}`, newCtx())
	require.NoError(t, err)
	i, _ := v.AsInteger()
	assert.EqualValues(t, 5, i)
}

func TestRealConstantValue(t *testing.T) {
	v, err := evalJSON(t, `{"type":"real","value":1.23456}`, newCtx())
	require.NoError(t, err)
	f, ok := v.AsReal()
	require.True(t, ok)
	assert.InDelta(t, 1.23456, f, 1e-9)
}

func TestRealRandomDefaultRangeIsUnitInterval(t *testing.T) {
	v, err := evalJSON(t, `{"type":"real"}`, newCtx())
	require.NoError(t, err)
	f, _ := v.AsReal()
	assert.GreaterOrEqual(t, f, 0.0)
	assert.Less(t, f, 1.0)
}

func TestBoolConstant(t *testing.T) {
	v, err := evalJSON(t, `{"type":"bool","value":true}`, newCtx())
	require.NoError(t, err)
	b, ok := v.AsBool()
	require.True(t, ok)
	assert.True(t, b)
}

func TestBoolProbabilityZeroAlwaysFalse(t *testing.T) {
	v, err := evalJSON(t, `{"type":"bool","probability":0}`, newCtx())
	require.NoError(t, err)
	b, _ := v.AsBool()
	assert.False(t, b)
}

func TestCounterGlobalIncrementsAcrossCalls(t *testing.T) {
	ctx := newCtx()
	node := schema.NodeFromJSON(json.RawMessage(`{"type":"counter","start":10}`))

	first, err := node.Evaluate(ctx.Child("a", nil))
	require.NoError(t, err)
	second, err := node.Evaluate(ctx.Child("b", nil))
	require.NoError(t, err)

	fi, _ := first.AsInteger()
	si, _ := second.AsInteger()
	assert.EqualValues(t, 10, fi)
	assert.EqualValues(t, 11, si)
}

func TestCounterPathSpecificIsKeyedByNormalizedPath(t *testing.T) {
	ctx := newCtx()
	node := schema.NodeFromJSON(json.RawMessage(`{"type":"counter","pathSpecific":true}`))

	list := ctx.Child("items", nil)
	first, err := node.Evaluate(list.Child(value.IndexComponent(0), nil))
	require.NoError(t, err)
	second, err := node.Evaluate(list.Child(value.IndexComponent(1), nil))
	require.NoError(t, err)

	fi, _ := first.AsInteger()
	si, _ := second.AsInteger()
	assert.EqualValues(t, 1, fi)
	assert.EqualValues(t, 2, si)
}

// fakeGenerator is a minimal schema.Generator used to exercise StringSchema
// without pulling in internal/stringgen's faker dependency.
type fakeGenerator struct{}

func (fakeGenerator) Generate(ctx *evalctx.Context, kind schema.StringGeneratorKind) (value.Value, error) {
	return value.String("generated:" + string(kind)), nil
}

func (fakeGenerator) Format(ctx *evalctx.Context, format string, args map[string]value.Value) (value.Value, error) {
	greeting, _ := args["name"].AsString()
	return value.String(fmt.Sprintf(format, greeting)), nil
}

func TestStringConstantResolvesReference(t *testing.T) {
	ctx := newCtx()
	ctx.Child("name", nil).Finalize(value.String("Ada"))

	v, err := evalJSON(t, `{"type":"string","value":"ref:name"}`, ctx)
	require.NoError(t, err)
	s, _ := v.AsString()
	assert.Equal(t, "Ada", s)
}

func TestStringNamedGeneratorDispatchesToInstalledGenerator(t *testing.T) {
	schema.SetGenerator(fakeGenerator{})
	t.Cleanup(func() { schema.SetGenerator(nil) })

	v, err := evalJSON(t, `{"type":"string","generator":"email"}`, newCtx())
	require.NoError(t, err)
	s, _ := v.AsString()
	assert.Equal(t, "generated:email", s)
}

func TestStringWithoutGeneratorInstalledErrors(t *testing.T) {
	schema.SetGenerator(nil)
	_, err := evalJSON(t, `{"type":"string","generator":"email"}`, newCtx())
	require.Error(t, err)
}

func TestObjectSiblingReferenceScenario(t *testing.T) {
	v, err := evalJSON(t, `{"type":"object","properties":{
		"a": {"type":"string","value":"x"},
		"b": "ref:./a"
	}}`, newCtx())
	require.NoError(t, err)

	m, ok := v.AsMap()
	require.True(t, ok)
	a, _ := m.Get("a")
	b, _ := m.Get("b")
	as, _ := a.AsString()
	bs, _ := b.AsString()
	assert.Equal(t, "x", as)
	assert.Equal(t, "x", bs)
}

func TestObjectPreservesDeclarationOrder(t *testing.T) {
	v, err := evalJSON(t, `{"type":"object","properties":{"z":{"type":"bool","value":true},"a":{"type":"bool","value":false}}}`, newCtx())
	require.NoError(t, err)
	m, _ := v.AsMap()
	assert.Equal(t, []string{"z", "a"}, m.Keys())
}

func TestArrayRandomLengthForm(t *testing.T) {
	v, err := evalJSON(t, `{"type":"array","length":3,"items":{"type":"integer","value":9}}`, newCtx())
	require.NoError(t, err)
	items, ok := v.AsList()
	require.True(t, ok)
	require.Len(t, items, 3)
	for _, it := range items {
		i, _ := it.AsInteger()
		assert.EqualValues(t, 9, i)
	}
}

func TestArrayValuesForm(t *testing.T) {
	v, err := evalJSON(t, `{"type":"array","values":[{"type":"integer","value":1},{"type":"integer","value":2}]}`, newCtx())
	require.NoError(t, err)
	items, _ := v.AsList()
	require.Len(t, items, 2)
	a, _ := items[0].AsInteger()
	b, _ := items[1].AsInteger()
	assert.EqualValues(t, 1, a)
	assert.EqualValues(t, 2, b)
}

func TestAnyOfNumZeroReturnsAllAsList(t *testing.T) {
	v, err := evalJSON(t, `{"type":"anyOf","num":0,"values":[{"type":"integer","value":1},{"type":"integer","value":2},{"type":"integer","value":3}]}`, newCtx())
	require.NoError(t, err)
	items, ok := v.AsList()
	require.True(t, ok)
	assert.Len(t, items, 3)
}

func TestAnyOfDefaultPicksSingleBareValue(t *testing.T) {
	v, err := evalJSON(t, `{"type":"anyOf","values":[{"type":"integer","value":1},{"type":"integer","value":2}]}`, newCtx())
	require.NoError(t, err)
	_, isList := v.AsList()
	assert.False(t, isList)
	i, ok := v.AsInteger()
	require.True(t, ok)
	assert.Contains(t, []int64{1, 2}, i)
}

func TestAnyOfExplicitNumPicksExactCount(t *testing.T) {
	v, err := evalJSON(t, `{"type":"anyOf","num":2,"values":[{"type":"integer","value":1},{"type":"integer","value":2},{"type":"integer","value":3}]}`, newCtx())
	require.NoError(t, err)
	items, ok := v.AsList()
	require.True(t, ok)
	assert.Len(t, items, 2)
}

func TestReferenceExceptFiltersMatches(t *testing.T) {
	ctx := newCtx()
	ctx.Child("items", nil).Finalize(value.Integer(1))

	// The single match (1) is excluded, leaving nothing; pickOne falls back
	// to None rather than erroring.
	v, err := evalJSON(t, `{"type":"reference","reference":"items","except":[1]}`, ctx)
	require.NoError(t, err)
	assert.True(t, v.IsNone())
}

func TestReferenceKeepAllReturnsEveryRemainingMatch(t *testing.T) {
	ctx := newCtx()
	list := ctx.Child("items", nil)
	list.Child(value.IndexComponent(0), nil).Finalize(value.Integer(1))
	list.Child(value.IndexComponent(1), nil).Finalize(value.Integer(2))

	v, err := evalJSON(t, `{"type":"reference","reference":"items","keepAll":true}`, ctx)
	require.NoError(t, err)
	items, ok := v.AsList()
	require.True(t, ok)
	assert.Len(t, items, 2)
}

func TestFlattenMergesObjectsInOrderLastWins(t *testing.T) {
	v, err := evalJSON(t, `{"type":"flatten","values":[
		{"type":"object","properties":{"a":{"type":"integer","value":1},"b":{"type":"integer","value":2}}},
		{"type":"object","properties":{"b":{"type":"integer","value":20}}}
	]}`, newCtx())
	require.NoError(t, err)
	m, ok := v.AsMap()
	require.True(t, ok)
	a, _ := m.Get("a")
	b, _ := m.Get("b")
	ai, _ := a.AsInteger()
	bi, _ := b.AsInteger()
	assert.EqualValues(t, 1, ai)
	assert.EqualValues(t, 20, bi)
}

func TestFlattenMismatchedKindsErrors(t *testing.T) {
	_, err := evalJSON(t, `{"type":"flatten","values":[
		{"type":"object","properties":{"a":{"type":"integer","value":1}}},
		{"type":"array","values":[{"type":"integer","value":1}]}
	]}`, newCtx())
	require.Error(t, err)
}

func TestFlattenMergesArrays(t *testing.T) {
	v, err := evalJSON(t, `{"type":"flatten","values":[
		{"type":"array","values":[{"type":"integer","value":1}]},
		{"type":"array","values":[{"type":"integer","value":2}]}
	]}`, newCtx())
	require.NoError(t, err)
	items, ok := v.AsList()
	require.True(t, ok)
	require.Len(t, items, 2)
}

func TestIncludeLoadsSubSchemaFromDisk(t *testing.T) {
	dir := t.TempDir()
	incl := filepath.Join(dir, "incl.json")
	require.NoError(t, os.WriteFile(incl, []byte(`{"type":"string","value":"Hello, World!"}`), 0o644))

	raw := fmt.Sprintf(`{"type":"object","properties":{"name":{"type":"include","path":%q}}}`, incl)
	v, err := evalJSON(t, raw, newCtx())
	require.NoError(t, err)

	m, ok := v.AsMap()
	require.True(t, ok)
	name, _ := m.Get("name")
	s, _ := name.AsString()
	assert.Equal(t, "Hello, World!", s)
}

func TestIncludeMissingFileErrors(t *testing.T) {
	_, err := evalJSON(t, `{"type":"include","path":"/nonexistent/path.json"}`, newCtx())
	require.Error(t, err)
}

// fakePlugin is a minimal plugin.Plugin used to exercise the Plugin node.
type fakePlugin struct {
	plugin.Base
}

func (p fakePlugin) Generate(ctx plugin.Context, args value.Value) (value.Value, error) {
	m, _ := args.AsMap()
	greeting, _ := m.Get("greeting")
	return greeting, nil
}

func TestPluginDispatchesGenerate(t *testing.T) {
	reg := plugin.NewRegistry()
	require.NoError(t, reg.Register(fakePlugin{Base: plugin.Base{PluginName: "greeter"}}))
	ctx := evalctx.Root(evalctx.Options{}, reg)

	v, err := evalJSON(t, `{"type":"plugin","pluginName":"greeter","args":{"greeting":"hi"}}`, ctx)
	require.NoError(t, err)
	s, _ := v.AsString()
	assert.Equal(t, "hi", s)
}

func TestPluginUnregisteredNameErrors(t *testing.T) {
	_, err := evalJSON(t, `{"type":"plugin","pluginName":"missing"}`, newCtx())
	require.Error(t, err)
}

func TestInvalidNodeAlwaysErrors(t *testing.T) {
	_, err := evalJSON(t, `{"type":"bogus"}`, newCtx())
	require.Error(t, err)
}

func TestInvalidNodeFromMalformedJSON(t *testing.T) {
	node := schema.NodeFromJSON(json.RawMessage(`not json`))
	_, err := node.Evaluate(newCtx())
	require.Error(t, err)
}

func TestOrderedObjectDuplicatePropertyDefaultErrors(t *testing.T) {
	schema.SetDuplicatePropertyPolicy(schema.OnDuplicateError)
	_, err := evalJSON(t, `{"type":"object","properties":{"a":{"type":"integer","value":1},"a":{"type":"integer","value":2}}}`, newCtx())
	require.Error(t, err)
}

func TestOrderedObjectDuplicatePropertyUseFirst(t *testing.T) {
	schema.SetDuplicatePropertyPolicy(schema.OnDuplicateUseFirst)
	t.Cleanup(func() { schema.SetDuplicatePropertyPolicy(schema.OnDuplicateError) })

	v, err := evalJSON(t, `{"type":"object","properties":{"a":{"type":"integer","value":1},"a":{"type":"integer","value":2}}}`, newCtx())
	require.NoError(t, err)
	m, _ := v.AsMap()
	a, _ := m.Get("a")
	i, _ := a.AsInteger()
	assert.EqualValues(t, 1, i)
}

func TestOrderedObjectDuplicatePropertyUseLast(t *testing.T) {
	schema.SetDuplicatePropertyPolicy(schema.OnDuplicateUseLast)
	t.Cleanup(func() { schema.SetDuplicatePropertyPolicy(schema.OnDuplicateError) })

	v, err := evalJSON(t, `{"type":"object","properties":{"a":{"type":"integer","value":1},"a":{"type":"integer","value":2}}}`, newCtx())
	require.NoError(t, err)
	m, _ := v.AsMap()
	a, _ := m.Get("a")
	i, _ := a.AsInteger()
	assert.EqualValues(t, 2, i)
	assert.Equal(t, []string{"a"}, m.Keys())
}

func TestParseDocumentAppliesOptionsBeforeRootNode(t *testing.T) {
	raw := json.RawMessage(`{
		"type":"object",
		"properties":{"a":{"type":"integer","value":1},"a":{"type":"integer","value":2}},
		"options":{"onDuplicateProperty":"useLast","maxRefCacheSize":5,"serializer":{"type":"yaml"}}
	}`)

	doc, err := schema.ParseDocument(raw)
	require.NoError(t, err)
	assert.Equal(t, "yaml", doc.Serializer.Type)
	require.True(t, doc.Options.MaxRefCacheSize.IsSet())
	assert.Equal(t, 5, doc.Options.MaxRefCacheSize.Value())

	ctx := evalctx.Root(doc.Options, plugin.NewRegistry())
	v, err := doc.Root.Evaluate(ctx)
	require.NoError(t, err)
	m, _ := v.AsMap()
	a, _ := m.Get("a")
	i, _ := a.AsInteger()
	assert.EqualValues(t, 2, i)
}

func TestParseDocumentDefaultsToJSONSerializer(t *testing.T) {
	doc, err := schema.ParseDocument(json.RawMessage(`{"type":"bool","value":true}`))
	require.NoError(t, err)
	assert.Equal(t, "json", doc.Serializer.Type)
}
