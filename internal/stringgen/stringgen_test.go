package stringgen_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datagen-go/datagen/internal/stringgen"
	"github.com/datagen-go/datagen/pkg/schema"
	"github.com/datagen-go/datagen/pkg/value"
)

func TestGenerateUUIDProducesWellFormedValue(t *testing.T) {
	g := stringgen.New()
	v, err := g.Generate(nil, schema.GenUUID)
	require.NoError(t, err)
	s, ok := v.AsString()
	require.True(t, ok)
	assert.Len(t, s, 36)
}

func TestGenerateEmailProducesNonEmptyString(t *testing.T) {
	g := stringgen.New()
	v, err := g.Generate(nil, schema.GenEmail)
	require.NoError(t, err)
	s, ok := v.AsString()
	require.True(t, ok)
	assert.NotEmpty(t, s)
}

func TestGenerateUnknownKindErrors(t *testing.T) {
	g := stringgen.New()
	_, err := g.Generate(nil, schema.StringGeneratorKind("bogus"))
	require.Error(t, err)
}

func TestFormatSubstitutesKnownFields(t *testing.T) {
	g := stringgen.New()
	args := map[string]value.Value{
		"name": value.String("Ada"),
		"age":  value.Integer(30),
	}
	v, err := g.Format(nil, "{{name}} is {{age}}", args)
	require.NoError(t, err)
	s, _ := v.AsString()
	assert.Equal(t, "Ada is 30", s)
}

func TestFormatUnknownFieldErrors(t *testing.T) {
	g := stringgen.New()
	_, err := g.Format(nil, "{{missing}}", map[string]value.Value{})
	require.Error(t, err)
}
