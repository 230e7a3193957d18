package transform

import (
	"fmt"

	"github.com/datagen-go/datagen/pkg/evalctx"
	"github.com/datagen-go/datagen/pkg/value"
)

// RandomRemove removes a uniformly-chosen count of entries from a list or
// map, or replaces a scalar with None with probability Chance.
type RandomRemove struct {
	Fields []string
	Min    *int
	Max    *int
	Chance *float64
}

func (r RandomRemove) Apply(ctx *evalctx.Context, v value.Value) (value.Value, error) {
	rng := ctx.Rand()

	switch v.Kind() {
	case value.KindList:
		items, _ := v.AsList()
		out := append([]value.Value(nil), items...)

		min := 0
		if r.Min != nil {
			min = *r.Min
		}
		max := len(out)
		if r.Max != nil {
			max = *r.Max
		}
		if max < min {
			return value.Value{}, fmt.Errorf("randomRemove: max must be greater than or equal to min")
		}
		num := min
		if max > min {
			num = min + rng.Intn(max-min+1)
		}
		for i := 0; i < num && len(out) > 0; i++ {
			idx := rng.Intn(len(out))
			out = append(out[:idx], out[idx+1:]...)
		}
		return value.List(out), nil

	case value.KindMap:
		m, _ := v.AsMap()
		out := m.Clone()

		fields := r.Fields
		if fields == nil {
			fields = append([]string(nil), out.Keys()...)
		}
		rng.Shuffle(len(fields), func(i, j int) { fields[i], fields[j] = fields[j], fields[i] })

		min := 0
		if r.Min != nil {
			min = *r.Min
		}
		max := len(fields)
		if r.Max != nil {
			max = *r.Max
		}
		if max < min {
			return value.Value{}, fmt.Errorf("randomRemove: max must be greater than or equal to min")
		}
		num := min
		if max > min {
			num = min + rng.Intn(max-min+1)
		}
		for i := 0; i < num && i < len(fields); i++ {
			out.Delete(fields[i])
		}
		return value.Map(out), nil

	default:
		chance := 0.5
		if r.Chance != nil {
			chance = *r.Chance
		}
		if rng.Float64() < chance {
			return value.None, nil
		}
		return v, nil
	}
}
