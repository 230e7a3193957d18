package plugin

import (
	"fmt"

	"github.com/datagen-go/datagen/pkg/value"
)

// ABIKind tags an ABIValue's variant. String-valued (rather than an int
// enum) so it round-trips stably across a boundary where the two sides
// were compiled independently.
type ABIKind string

const (
	ABINone    ABIKind = "none"
	ABIInteger ABIKind = "integer"
	ABIReal    ABIKind = "real"
	ABIBool    ABIKind = "bool"
	ABIString  ABIKind = "string"
	ABIList    ABIKind = "list"
	ABIMap     ABIKind = "map"
)

// ABIMapEntry is one key/value pair of an ABI map, kept as an ordered slice
// (rather than a Go map) so property order survives the boundary crossing
// the same way it does inside the native Value tree.
type ABIMapEntry struct {
	Key   string    `json:"key"`
	Value ABIValue  `json:"value"`
}

// ABIValue is the FFI-safe value representation used at the plugin
// boundary: every field is a plain, independently-serialisable type (no
// internal Value handles), so a dynamically loaded plugin can construct
// and inspect values without linking against value.Value's unexported
// layout. The host-side bridge (abiBridge, below) converts to/from
// value.Value on every call.
type ABIValue struct {
	Kind ABIKind       `json:"kind"`
	Int  int64         `json:"int,omitempty"`
	Real float64       `json:"real,omitempty"`
	Bool bool          `json:"bool,omitempty"`
	Str  string        `json:"str,omitempty"`
	List []ABIValue    `json:"list,omitempty"`
	Map  []ABIMapEntry `json:"map,omitempty"`
}

// ToABI converts a native Value into its FFI-safe representation.
func ToABI(v value.Value) ABIValue {
	switch v.Kind() {
	case value.KindNone:
		return ABIValue{Kind: ABINone}
	case value.KindInteger:
		i, _ := v.AsInteger()
		return ABIValue{Kind: ABIInteger, Int: i}
	case value.KindReal:
		r, _ := v.AsReal()
		return ABIValue{Kind: ABIReal, Real: r}
	case value.KindBool:
		b, _ := v.AsBool()
		return ABIValue{Kind: ABIBool, Bool: b}
	case value.KindString:
		s, _ := v.AsString()
		return ABIValue{Kind: ABIString, Str: s}
	case value.KindList:
		items, _ := v.AsList()
		out := make([]ABIValue, len(items))
		for i, item := range items {
			out[i] = ToABI(item)
		}
		return ABIValue{Kind: ABIList, List: out}
	case value.KindMap:
		m, _ := v.AsMap()
		entries := make([]ABIMapEntry, 0, m.Len())
		m.Range(func(k string, child value.Value) bool {
			entries = append(entries, ABIMapEntry{Key: k, Value: ToABI(child)})
			return true
		})
		return ABIValue{Kind: ABIMap, Map: entries}
	default:
		// Opaque values have no stable cross-boundary shape; render as a
		// string so a plugin at least receives something legible.
		return ABIValue{Kind: ABIString, Str: v.String()}
	}
}

// FromABI converts an ABI value back into the native Value tree.
func FromABI(a ABIValue) (value.Value, error) {
	switch a.Kind {
	case ABINone, "":
		return value.None, nil
	case ABIInteger:
		return value.Integer(a.Int), nil
	case ABIReal:
		return value.Real(a.Real)
	case ABIBool:
		return value.Bool(a.Bool), nil
	case ABIString:
		return value.String(a.Str), nil
	case ABIList:
		items := make([]value.Value, len(a.List))
		for i, item := range a.List {
			v, err := FromABI(item)
			if err != nil {
				return value.Value{}, err
			}
			items[i] = v
		}
		return value.List(items), nil
	case ABIMap:
		m := value.NewOrderedMap()
		for _, entry := range a.Map {
			v, err := FromABI(entry.Value)
			if err != nil {
				return value.Value{}, err
			}
			m.Set(entry.Key, v)
		}
		return value.Map(m), nil
	default:
		return value.Value{}, fmt.Errorf("plugin: unknown ABI kind %q", a.Kind)
	}
}

// ABIPlugin is the interface a dynamically-loaded plugin implements using
// only FFI-safe types, so it never has to import this module's internal
// value.Value layout. abiBridge adapts it to the native Plugin interface,
// converting values on every call.
type ABIPlugin interface {
	Name() string
	Generate(ctx Context, args ABIValue) (ABIValue, error)
	Transform(ctx Context, args, input ABIValue) (ABIValue, error)
	Serialize(ctx Context, args, v ABIValue) ([]byte, error)
}

// abiBridge adapts an ABIPlugin to the native Plugin interface.
type abiBridge struct {
	inner ABIPlugin
}

func (b *abiBridge) Name() string { return b.inner.Name() }

func (b *abiBridge) Generate(ctx Context, args value.Value) (value.Value, error) {
	out, err := b.inner.Generate(ctx, ToABI(args))
	if err != nil {
		return value.Value{}, err
	}
	return FromABI(out)
}

func (b *abiBridge) Transform(ctx Context, args, input value.Value) (value.Value, error) {
	out, err := b.inner.Transform(ctx, ToABI(args), ToABI(input))
	if err != nil {
		return value.Value{}, err
	}
	return FromABI(out)
}

func (b *abiBridge) Serialize(ctx Context, args, v value.Value) ([]byte, error) {
	return b.inner.Serialize(ctx, ToABI(args), ToABI(v))
}

// BridgeABIPlugin wraps an ABIPlugin so it satisfies Plugin, for plugins
// loaded across the dynamic-library boundary.
func BridgeABIPlugin(p ABIPlugin) Plugin {
	return &abiBridge{inner: p}
}
