package transform

import (
	"fmt"
	"sort"

	"github.com/datagen-go/datagen/pkg/evalctx"
	"github.com/datagen-go/datagen/pkg/value"
)

// Sort orders a list's elements by value.Compare, optionally keyed by a
// map field (By) and optionally reversed. The ascending sort is stable, so
// ties keep their relative order; Reverse then reverses the whole sorted
// list, which puts ties in the opposite of their input order.
type Sort struct {
	By      *string
	Reverse bool
}

func sortKey(v value.Value, by *string) (value.Value, error) {
	if by == nil {
		return v, nil
	}
	m, ok := v.AsMap()
	if !ok {
		if v.IsNone() {
			return value.None, nil
		}
		return value.Value{}, fmt.Errorf("sort: can only be applied to objects when 'by' is set")
	}
	key, ok := m.Get(*by)
	if !ok {
		return value.Value{}, fmt.Errorf("sort: key %q not found in object", *by)
	}
	return key, nil
}

func (s Sort) Apply(_ *evalctx.Context, v value.Value) (value.Value, error) {
	items, ok := v.AsList()
	if !ok {
		return value.Value{}, fmt.Errorf("sort: can only be applied to arrays, got %s", v.Name())
	}

	type keyed struct {
		key value.Value
		val value.Value
	}
	pairs := make([]keyed, len(items))
	for i, item := range items {
		key, err := sortKey(item, s.By)
		if err != nil {
			return value.Value{}, err
		}
		pairs[i] = keyed{key: key, val: item}
	}

	sort.SliceStable(pairs, func(i, j int) bool {
		return value.Compare(pairs[i].key, pairs[j].key) < 0
	})

	if s.Reverse {
		for i, j := 0, len(pairs)-1; i < j; i, j = i+1, j-1 {
			pairs[i], pairs[j] = pairs[j], pairs[i]
		}
	}

	out := make([]value.Value, len(pairs))
	for i, p := range pairs {
		out[i] = p.val
	}
	return value.List(out), nil
}
