package evalctx_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datagen-go/datagen/pkg/evalctx"
	"github.com/datagen-go/datagen/pkg/plugin"
	"github.com/datagen-go/datagen/pkg/value"
)

func TestSiblingChainingExposesEarlierProperty(t *testing.T) {
	root := evalctx.Root(evalctx.Options{}, plugin.NewRegistry())
	obj := root.Child("obj", nil)

	a := obj.Child("a", nil)
	a.Finalize(value.String("hello"))

	b := obj.Child("b", a)
	got, err := b.ResolveRef("ref:./a")
	require.NoError(t, err)
	s, ok := got.AsString()
	require.True(t, ok)
	assert.Equal(t, "hello", s)
}

func TestGlobalReferenceResolvesFromRoot(t *testing.T) {
	root := evalctx.Root(evalctx.Options{}, plugin.NewRegistry())
	obj := root.Child("user", nil)
	email := obj.Child("email", nil)
	email.Finalize(value.String("a@b.com"))

	leaf := root.Child("other", nil)
	got, err := leaf.ResolveRef("ref:user.email")
	require.NoError(t, err)
	s, _ := got.AsString()
	assert.Equal(t, "a@b.com", s)
}

func TestParentReferenceClimbsAncestors(t *testing.T) {
	root := evalctx.Root(evalctx.Options{}, plugin.NewRegistry())
	obj := root.Child("obj", nil)
	obj.Finalize(value.Integer(7))

	nested := obj.Child("inner", nil)
	got, err := nested.ResolveRef("ref:../obj")
	require.NoError(t, err)
	i, ok := got.AsInteger()
	require.True(t, ok)
	assert.EqualValues(t, 7, i)

	missing, err := nested.ResolveRef("ref:../nonexistent")
	require.NoError(t, err)
	assert.True(t, missing.IsNone())
}

func TestLiteralReferenceIsPassthrough(t *testing.T) {
	root := evalctx.Root(evalctx.Options{}, plugin.NewRegistry())
	v, err := root.ResolveRef("plain-string")
	require.NoError(t, err)
	s, _ := v.AsString()
	assert.Equal(t, "plain-string", s)
}

func TestFinalizeIsIdempotent(t *testing.T) {
	root := evalctx.Root(evalctx.Options{}, plugin.NewRegistry())
	child := root.Child("x", nil)
	child.Finalize(value.Integer(1))
	child.Finalize(value.Integer(2)) // second call is a no-op

	v, err := root.ResolveRef("ref:x")
	require.NoError(t, err)
	i, _ := v.AsInteger()
	assert.EqualValues(t, 1, i)
}

func TestMaxRefCacheSizeZeroDisablesCaching(t *testing.T) {
	root := evalctx.Root(evalctx.Options{MaxRefCacheSize: evalctx.Bounded(0)}, plugin.NewRegistry())
	child := root.Child("x", nil)
	child.Finalize(value.Integer(1))

	v, err := root.ResolveRef("ref:x")
	require.NoError(t, err)
	assert.True(t, v.IsNone())
}

func TestCountersGlobalAndPathSpecific(t *testing.T) {
	c := evalctx.NewCounters()
	assert.EqualValues(t, 0, c.Global(0))
	assert.EqualValues(t, 1, c.Global(0))

	assert.EqualValues(t, 1, c.PathSpecific("a.b"))
	assert.EqualValues(t, 2, c.PathSpecific("a.b"))
	assert.EqualValues(t, 1, c.PathSpecific("a.c"))
}
