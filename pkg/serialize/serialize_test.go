package serialize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datagen-go/datagen/pkg/serialize"
	"github.com/datagen-go/datagen/pkg/value"
)

func sampleObject() value.Value {
	m := value.NewOrderedMap()
	m.Set("name", value.String("Ada"))
	m.Set("age", value.Integer(30))
	return value.Map(m)
}

func TestJSONPreservesPropertyOrder(t *testing.T) {
	out, err := serialize.JSON{}.Serialize(sampleObject(), false)
	require.NoError(t, err)
	assert.Equal(t, `{"name":"Ada","age":30}`, string(out))
}

func TestJSONPrettyIndents(t *testing.T) {
	out, err := serialize.JSON{}.Serialize(sampleObject(), true)
	require.NoError(t, err)
	assert.Contains(t, string(out), "\n  \"name\"")
}

func TestYAMLPreservesPropertyOrder(t *testing.T) {
	out, err := serialize.YAML{}.Serialize(sampleObject(), false)
	require.NoError(t, err)
	s := string(out)
	nameIdx := indexOf(s, "name:")
	ageIdx := indexOf(s, "age:")
	require.GreaterOrEqual(t, nameIdx, 0)
	require.GreaterOrEqual(t, ageIdx, 0)
	assert.Less(t, nameIdx, ageIdx)
}

func TestXMLRequiresRootElement(t *testing.T) {
	_, err := serialize.New("xml", "")
	require.Error(t, err)
}

func TestXMLRendersUnderRootElement(t *testing.T) {
	s, err := serialize.New("xml", "person")
	require.NoError(t, err)
	out, err := s.Serialize(sampleObject(), false)
	require.NoError(t, err)
	assert.Contains(t, string(out), "<person>")
	assert.Contains(t, string(out), "Ada")
}

func TestNewDefaultsUnknownKindNotAllowed(t *testing.T) {
	_, err := serialize.New("bogus", "")
	require.Error(t, err)
}

func TestNewEmptyKindDefaultsToJSON(t *testing.T) {
	s, err := serialize.New("", "")
	require.NoError(t, err)
	assert.IsType(t, serialize.JSON{}, s)
}

func indexOf(s, substr string) int {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return i
		}
	}
	return -1
}
