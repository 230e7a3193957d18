package transform

import (
	"fmt"

	"github.com/datagen-go/datagen/pkg/evalctx"
	"github.com/datagen-go/datagen/pkg/value"
)

// RemoveAll keeps or drops map entries by name. Exactly one of Include or
// Exclude is populated: Include retains everything *not* listed, Exclude
// retains *only* the listed keys.
type RemoveAll struct {
	Include []string
	Exclude []string
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

func (r RemoveAll) Apply(_ *evalctx.Context, v value.Value) (value.Value, error) {
	if v.IsNone() {
		return value.None, nil
	}

	m, ok := v.AsMap()
	if !ok {
		return value.Value{}, fmt.Errorf("removeAll: can only be applied to objects, got %s", v.Name())
	}

	out := value.NewOrderedMap()
	m.Range(func(k string, child value.Value) bool {
		var keep bool
		if len(r.Include) > 0 {
			keep = !contains(r.Include, k)
		} else {
			keep = contains(r.Exclude, k)
		}
		if keep {
			out.Set(k, child)
		}
		return true
	})
	return value.Map(out), nil
}
