package schemaio_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datagen-go/datagen/pkg/schema"
	"github.com/datagen-go/datagen/pkg/schemaio"
)

func TestExpandEnvVarsBraced(t *testing.T) {
	t.Setenv("DATAGEN_TEST_VAR", "hello")
	got := schemaio.ExpandEnvVars(`value is ${DATAGEN_TEST_VAR}`)
	assert.Equal(t, "value is hello", got)
}

func TestExpandEnvVarsBare(t *testing.T) {
	t.Setenv("DATAGEN_TEST_VAR", "hello")
	got := schemaio.ExpandEnvVars(`value is $DATAGEN_TEST_VAR`)
	assert.Equal(t, "value is hello", got)
}

func TestExpandEnvVarsUsesDefaultWhenUnset(t *testing.T) {
	os.Unsetenv("DATAGEN_TEST_MISSING")
	got := schemaio.ExpandEnvVars(`value is ${DATAGEN_TEST_MISSING:-fallback}`)
	assert.Equal(t, "value is fallback", got)
}

func TestExpandEnvVarsLeavesUnsetWithoutDefaultUntouched(t *testing.T) {
	os.Unsetenv("DATAGEN_TEST_MISSING")
	got := schemaio.ExpandEnvVars(`value is ${DATAGEN_TEST_MISSING}`)
	assert.Equal(t, "value is ${DATAGEN_TEST_MISSING}", got)
}

func TestLoaderRegistryLoadsJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "datagen.schema.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"type":"bool","value":true}`), 0o644))

	doc, err := schemaio.NewLoaderRegistry().Load(path)
	require.NoError(t, err)
	require.NotNil(t, doc.Root)
}

func TestLoaderRegistryLoadsYAMLPreservingOrder(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "datagen.schema.yaml")
	contents := "type: object\nproperties:\n  z:\n    type: bool\n    value: true\n  a:\n    type: bool\n    value: false\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	doc, err := schemaio.NewLoaderRegistry().Load(path)
	require.NoError(t, err)
	require.NotNil(t, doc.Root)
	obj, ok := doc.Root.(schema.Object)
	require.True(t, ok)
	require.Len(t, obj.Properties, 2)
	assert.Equal(t, "z", obj.Properties[0].Key)
	assert.Equal(t, "a", obj.Properties[1].Key)
}

func TestLoaderRegistryExpandsEnvVars(t *testing.T) {
	t.Setenv("DATAGEN_SCHEMA_TEST", "ref:name")
	dir := t.TempDir()
	path := filepath.Join(dir, "datagen.schema.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"type":"string","value":"${DATAGEN_SCHEMA_TEST}"}`), 0o644))

	doc, err := schemaio.NewLoaderRegistry().Load(path)
	require.NoError(t, err)
	require.NotNil(t, doc.Root)
	s, ok := doc.Root.(schema.StringSchema)
	require.True(t, ok)
	require.NotNil(t, s.Constant)
	assert.Equal(t, "ref:name", *s.Constant)
}

func TestLoaderRegistryUnsupportedExtensionErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "datagen.schema.txt")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0o644))

	_, err := schemaio.NewLoaderRegistry().Load(path)
	require.Error(t, err)
}

func TestDiscoverSchemaFindsExplicitPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0o644))

	found, err := schemaio.DiscoverSchema(path)
	require.NoError(t, err)
	assert.Equal(t, path, found)
}

func TestDiscoverSchemaFindsDefaultCandidateInDirectory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "datagen.schema.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0o644))

	found, err := schemaio.DiscoverSchema(filepath.Join(dir, "nonexistent.json"))
	require.NoError(t, err)
	assert.Equal(t, path, found)
}

func TestDiscoverSchemaErrorsWhenNothingFound(t *testing.T) {
	dir := t.TempDir()
	_, err := schemaio.DiscoverSchema(filepath.Join(dir, "nope.json"))
	require.Error(t, err)
}

func TestWriteJSONSchemaProducesValidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "schema.json")

	require.NoError(t, schemaio.WriteJSONSchema(path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "datagen document", decoded["title"])
}
