// Package stringgen implements schema.Generator: the concrete random and
// templated string producers a "string" node dispatches to. It is kept
// out of pkg/schema so that package stays free of the faker/uuid
// dependency and can be tested without them.
package stringgen

import (
	"fmt"
	"regexp"
	"sync"

	"github.com/google/uuid"
	"github.com/jaswdr/faker"

	"github.com/datagen-go/datagen/pkg/evalctx"
	"github.com/datagen-go/datagen/pkg/schema"
	"github.com/datagen-go/datagen/pkg/value"
)

// templatePlaceholder matches a Handlebars-style "{{name}}" placeholder,
// the same flat single-pass substitution shape used by the transform
// package's toString format and the config loader's env expansion.
var templatePlaceholder = regexp.MustCompile(`\{\{\s*([A-Za-z0-9_.]+)\s*\}\}`)

// Faker implements schema.Generator using a single shared faker.Faker,
// installed process-wide. Every Generate call holds mu, so concurrent
// callers never use the faker instance at the same time.
type Faker struct {
	mu sync.Mutex
	f  faker.Faker
}

// New constructs the default string generator.
func New() *Faker {
	return &Faker{f: faker.New()}
}

var _ schema.Generator = (*Faker)(nil)

// Generate produces a value for one of the fixed generator kinds. It
// never consults ctx: the faker library carries its own rand source
// rather than the schema's per-node one, matching the original's
// standalone RNG for named generators.
func (g *Faker) Generate(ctx *evalctx.Context, kind schema.StringGeneratorKind) (value.Value, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	switch kind {
	case schema.GenUUID:
		return value.String(uuid.New().String()), nil
	case schema.GenEmail:
		return value.String(g.f.Internet().Email()), nil
	case schema.GenFirstName:
		return value.String(g.f.Person().FirstName()), nil
	case schema.GenLastName:
		return value.String(g.f.Person().LastName()), nil
	case schema.GenFullName:
		return value.String(g.f.Person().Name()), nil
	case schema.GenUsername:
		return value.String(g.f.Internet().User()), nil
	case schema.GenCity:
		return value.String(g.f.Address().City()), nil
	case schema.GenCountry:
		return value.String(g.f.Address().Country()), nil
	case schema.GenCountryCode:
		return value.String(g.f.Address().CountryAbbr()), nil
	case schema.GenStreet:
		return value.String(g.f.Address().StreetName()), nil
	case schema.GenState:
		return value.String(g.f.Address().State()), nil
	case schema.GenZipCode:
		return value.String(g.f.Address().PostCode()), nil
	case schema.GenLatitude:
		r, err := value.Real(g.f.Address().Latitude())
		return r, err
	case schema.GenLongitude:
		r, err := value.Real(g.f.Address().Longitude())
		return r, err
	case schema.GenPhone:
		return value.String(g.f.Phone().Number()), nil
	default:
		return value.Value{}, fmt.Errorf("stringgen: unknown generator %q", kind)
	}
}

// Format renders a "{{name}}" template against already-resolved args,
// coercing non-string scalars to their string form.
func (g *Faker) Format(ctx *evalctx.Context, format string, args map[string]value.Value) (value.Value, error) {
	data := make(map[string]string, len(args))
	for name, v := range args {
		data[name] = scalarString(v)
	}

	var missing error
	rendered := templatePlaceholder.ReplaceAllStringFunc(format, func(match string) string {
		name := templatePlaceholder.FindStringSubmatch(match)[1]
		s, ok := data[name]
		if !ok {
			missing = fmt.Errorf("stringgen: format template references unknown field %q", name)
			return match
		}
		return s
	})
	if missing != nil {
		return value.Value{}, missing
	}
	return value.String(rendered), nil
}

func scalarString(v value.Value) string {
	if s, ok := v.AsString(); ok {
		return s
	}
	if i, ok := v.AsInteger(); ok {
		return fmt.Sprintf("%d", i)
	}
	if r, ok := v.AsReal(); ok {
		return fmt.Sprintf("%g", r)
	}
	if b, ok := v.AsBool(); ok {
		return fmt.Sprintf("%t", b)
	}
	return v.String()
}
