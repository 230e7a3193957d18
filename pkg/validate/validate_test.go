package validate_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datagen-go/datagen/pkg/schema"
	"github.com/datagen-go/datagen/pkg/validate"
)

func parse(t *testing.T, raw string) schema.Node {
	t.Helper()
	return schema.NodeFromJSON(json.RawMessage(raw))
}

func TestIntegerMinGreaterThanMaxErrors(t *testing.T) {
	n := parse(t, `{"type":"integer","min":10,"max":1}`)
	errs := validate.Node("root", n)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "min")
	assert.Equal(t, "root", errs[0].Path)
}

func TestIntegerValidRangeHasNoErrors(t *testing.T) {
	n := parse(t, `{"type":"integer","min":1,"max":10}`)
	assert.Empty(t, validate.Node("root", n))
}

func TestRealMinGreaterThanMaxErrors(t *testing.T) {
	// NaN/Inf can't be spelled in JSON directly, so the non-finite check
	// has no case here; this covers the real min <= max ordering check.
	n := parse(t, `{"type":"real","min":5,"max":2}`)
	errs := validate.Node("root", n)
	require.NotEmpty(t, errs)
	assert.Contains(t, errs[0].Message, "min")
}

func TestBoolProbabilityOutOfRangeErrors(t *testing.T) {
	n := parse(t, `{"type":"bool","probability":1.5}`)
	errs := validate.Node("root", n)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "probability")
}

func TestBoolValidProbabilityHasNoErrors(t *testing.T) {
	n := parse(t, `{"type":"bool","probability":0.5}`)
	assert.Empty(t, validate.Node("root", n))
}

func TestArrayRandomLengthMinGreaterThanMaxErrors(t *testing.T) {
	n := parse(t, `{"type":"array","length":{"min":5,"max":1},"items":{"type":"integer","value":1}}`)
	errs := validate.Node("root", n)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "length.min")
}

func TestArrayRandomLengthValidatesItems(t *testing.T) {
	n := parse(t, `{"type":"array","length":2,"items":{"type":"bool","probability":2}}`)
	errs := validate.Node("root", n)
	require.Len(t, errs, 1)
	assert.Equal(t, "root[]", errs[0].Path)
}

func TestArrayValuesFormValidatesEachEntry(t *testing.T) {
	n := parse(t, `{"type":"array","values":[{"type":"bool","probability":2},{"type":"integer","min":9,"max":1}]}`)
	errs := validate.Node("root", n)
	require.Len(t, errs, 2)
	assert.Equal(t, "root[0]", errs[0].Path)
	assert.Equal(t, "root[1]", errs[1].Path)
}

func TestObjectValidatesEachProperty(t *testing.T) {
	n := parse(t, `{"type":"object","properties":{"a":{"type":"bool","probability":2},"b":{"type":"integer","value":1}}}`)
	errs := validate.Node("root", n)
	require.Len(t, errs, 1)
	assert.Equal(t, "root.a", errs[0].Path)
}

func TestAnyOfEmptyValuesWithDefaultNumErrors(t *testing.T) {
	n := parse(t, `{"type":"anyOf","values":[]}`)
	errs := validate.Node("root", n)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "anyOf")
}

func TestAnyOfEmptyValuesWithNumZeroIsFine(t *testing.T) {
	n := parse(t, `{"type":"anyOf","values":[],"num":0}`)
	assert.Empty(t, validate.Node("root", n))
}

func TestAnyOfValidatesEachValue(t *testing.T) {
	n := parse(t, `{"type":"anyOf","values":[{"type":"integer","min":9,"max":1}]}`)
	errs := validate.Node("root", n)
	require.Len(t, errs, 1)
	assert.Equal(t, "root[0]", errs[0].Path)
}

func TestReferenceEmptyExpressionErrors(t *testing.T) {
	n := parse(t, `{"type":"reference","reference":""}`)
	errs := validate.Node("root", n)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "reference")
}

func TestFlattenValidatesEachChild(t *testing.T) {
	n := parse(t, `{"type":"flatten","values":[{"type":"integer","min":9,"max":1}]}`)
	errs := validate.Node("root", n)
	require.Len(t, errs, 1)
	assert.Equal(t, "root[0]", errs[0].Path)
}

func TestFileEmptyPathErrors(t *testing.T) {
	n := parse(t, `{"type":"file","path":""}`)
	errs := validate.Node("root", n)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "path")
}

func TestPluginEmptyNameErrors(t *testing.T) {
	n := parse(t, `{"type":"plugin","pluginName":""}`)
	errs := validate.Node("root", n)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "pluginName")
}

func TestInvalidNodeAlwaysReported(t *testing.T) {
	n := parse(t, `{"type":"bogus"}`)
	errs := validate.Node("root", n)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "failed to parse")
}

func TestStringFormatBalancedTemplateHasNoErrors(t *testing.T) {
	n := parse(t, `{"type":"string","generator":"format","format":"{{name}} {{other}}"}`)
	assert.Empty(t, validate.Node("root", n))
}

func TestStringFormatUnbalancedBracesErrors(t *testing.T) {
	n := parse(t, `{"type":"string","generator":"format","format":"{{name} there"}`)
	errs := validate.Node("root", n)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "unbalanced")
}

func TestIncludeMissingFileErrors(t *testing.T) {
	n := parse(t, `{"type":"include","path":"/does/not/exist.json"}`)
	errs := validate.Node("root", n)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "could not open")
}

func TestIncludeEmptyPathErrors(t *testing.T) {
	n := parse(t, `{"type":"include","path":""}`)
	errs := validate.Node("root", n)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "path")
}

func TestIncludeInvalidJSONErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	n := parse(t, `{"type":"include","path":"`+path+`"}`)
	errs := validate.Node("root", n)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "not valid JSON")
}

func TestIncludePropagatesSubSchemaErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"type":"bool","probability":5}`), 0o644))

	n := parse(t, `{"type":"include","path":"`+path+`"}`)
	errs := validate.Node("root", n)
	require.Len(t, errs, 1)
	assert.Equal(t, "root", errs[0].Path)
	assert.Contains(t, errs[0].Message, "probability")
}

func TestTransformRegexFilterEmptyPatternErrors(t *testing.T) {
	n := parse(t, `{"type":"integer","value":1,"transform":[{"type":"regexFilter","pattern":""}]}`)
	errs := validate.Node("root", n)
	require.Len(t, errs, 1)
	assert.Equal(t, "root.transform[0]", errs[0].Path)
}

func TestTransformRegexFilterInvalidPatternErrors(t *testing.T) {
	n := parse(t, `{"type":"integer","value":1,"transform":[{"type":"regexFilter","pattern":"("}]}`)
	errs := validate.Node("root", n)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "invalid pattern")
}

func TestTransformToStringUnbalancedBracesErrors(t *testing.T) {
	n := parse(t, `{"type":"integer","value":1,"transform":[{"type":"toString","subType":"format","format":"{{a} b"}]}`)
	errs := validate.Node("root", n)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "unbalanced")
}

func TestTransformRandomRemoveMinGreaterThanMaxErrors(t *testing.T) {
	n := parse(t, `{"type":"array","values":[],"transform":[{"type":"randomRemove","min":5,"max":1}]}`)
	errs := validate.Node("root", n)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "min")
}

func TestTransformRemoveAllBothEmptyFailsToParse(t *testing.T) {
	// A removeAll with neither include nor exclude never reaches a
	// RemoveAll value at all: it's kept as an Invalid transform slot at
	// parse time, so it's reported as a parse failure rather than the
	// include/exclude rule.
	n := parse(t, `{"type":"object","properties":{},"transform":[{"type":"removeAll"}]}`)
	errs := validate.Node("root", n)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "failed to parse")
}

func TestErrorsAccumulateAcrossSiblingsWithoutShortCircuiting(t *testing.T) {
	n := parse(t, `{"type":"object","properties":{
		"a":{"type":"bool","probability":2},
		"b":{"type":"integer","min":9,"max":1},
		"c":{"type":"plugin","pluginName":""}
	}}`)
	errs := validate.Node("root", n)
	require.Len(t, errs, 3)
	assert.Equal(t, "root.a", errs[0].Path)
	assert.Equal(t, "root.b", errs[1].Path)
	assert.Equal(t, "root.c", errs[2].Path)
}

func TestErrorStringFormat(t *testing.T) {
	err := validate.Error{Path: "root.a", Message: "boom"}
	assert.Equal(t, "root.a: boom", err.Error())
}
