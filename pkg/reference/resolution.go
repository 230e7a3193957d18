package reference

import (
	"math/rand"

	"github.com/datagen-go/datagen/pkg/value"
)

// Kind tags the shape of a Resolution.
type Kind int

const (
	// None means the lookup produced no candidate values at all.
	None Kind = iota
	// Single means exactly one candidate value was registered under the
	// name (the common case — a scalar property referenced by name).
	Single
	// Multiple means more than one value shares the name, as happens when
	// the same property path repeats under a List's items (§4.3): the
	// registry keeps every occurrence and a reference to it must pick one.
	Multiple
)

// Resolution is the outcome of looking a name up in the registry.
type Resolution struct {
	Kind   Kind
	Values []value.Value
}

// NoneResolution is the zero-candidate Resolution.
var NoneResolution = Resolution{Kind: None}

// NewResolution builds a Resolution from the set of registered values under
// a name, classifying it as None/Single/Multiple by count.
func NewResolution(values []value.Value) Resolution {
	switch len(values) {
	case 0:
		return NoneResolution
	case 1:
		return Resolution{Kind: Single, Values: values}
	default:
		return Resolution{Kind: Multiple, Values: values}
	}
}

// IntoRandom collapses a Resolution to a single Value: None becomes
// value.None, Single returns its only value, and Multiple picks uniformly
// at random using rng.
func (r Resolution) IntoRandom(rng *rand.Rand) value.Value {
	switch r.Kind {
	case Single:
		return r.Values[0]
	case Multiple:
		return r.Values[rng.Intn(len(r.Values))]
	default:
		return value.None
	}
}
