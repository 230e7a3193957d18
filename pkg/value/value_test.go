package value_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datagen-go/datagen/pkg/value"
)

func TestPathAppendPop(t *testing.T) {
	p := value.NewPath("a", "b")
	appended := p.Append("c")
	assert.Equal(t, "a.b.c", appended.String())

	// append then pop(1) is the identity
	popped := appended.Pop(1)
	assert.Equal(t, p.String(), popped.String())

	// negative n is a no-op
	assert.Equal(t, appended.String(), appended.Pop(-3).String())

	// pop(len) yields the empty path
	assert.Equal(t, 0, p.Pop(2).Len())
}

func TestPathNormalizedDropsNumericComponents(t *testing.T) {
	p := value.NewPath("items", "0", "name", "1")
	assert.Equal(t, "items.name", p.NormalizedString())
}

func TestRealRejectsNaNAndInf(t *testing.T) {
	_, err := value.Real(nanFloat())
	require.ErrorIs(t, err, value.ErrNotFinite)
}

func nanFloat() float64 {
	var zero float64
	return zero / zero
}

func TestEqualDeepStructural(t *testing.T) {
	m1 := value.NewOrderedMap()
	m1.Set("a", value.Integer(1))
	m2 := value.NewOrderedMap()
	m2.Set("a", value.Integer(1))

	assert.True(t, value.Equal(value.Map(m1), value.Map(m2)))

	m2.Set("a", value.Integer(2))
	assert.False(t, value.Equal(value.Map(m1), value.Map(m2)))
}

func TestOrderedMapPreservesInsertionOrderOnOverwrite(t *testing.T) {
	m := value.NewOrderedMap()
	m.Set("b", value.Integer(1))
	m.Set("a", value.Integer(2))
	m.Set("b", value.Integer(3)) // overwrite shouldn't move b to the end

	assert.Equal(t, []string{"b", "a"}, m.Keys())
	v, ok := m.Get("b")
	require.True(t, ok)
	i, _ := v.AsInteger()
	assert.EqualValues(t, 3, i)
}

func TestCompareOrdering(t *testing.T) {
	r := value.MustReal(1.5)
	i := value.Integer(1)
	s := value.String("x")
	b := value.Bool(true)
	n := value.None

	assert.Equal(t, -1, value.Compare(r, i))
	assert.Equal(t, -1, value.Compare(i, s))
	assert.Equal(t, -1, value.Compare(s, b))
	assert.Equal(t, -1, value.Compare(b, n))
	assert.Equal(t, 0, value.Compare(n, value.None))
}

func TestMarshalJSONPreservesMapOrder(t *testing.T) {
	m := value.NewOrderedMap()
	m.Set("z", value.Integer(1))
	m.Set("a", value.Integer(2))

	b, err := value.Map(m).MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"z":1,"a":2}`, string(b))
}

func TestFromJSONIntegerVsReal(t *testing.T) {
	v, err := value.FromJSON(float64(3))
	require.NoError(t, err)
	i, ok := v.AsInteger()
	require.True(t, ok)
	assert.EqualValues(t, 3, i)

	v, err = value.FromJSON(float64(3.5))
	require.NoError(t, err)
	_, ok = v.AsReal()
	require.True(t, ok)
}
