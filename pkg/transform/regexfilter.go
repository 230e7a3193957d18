package transform

import (
	"fmt"
	"regexp"

	"github.com/datagen-go/datagen/pkg/evalctx"
	"github.com/datagen-go/datagen/pkg/value"
)

// RegexFilter keeps a value whose string form matches Pattern, replacing
// it with None otherwise.
type RegexFilter struct {
	Pattern             string
	SerializeNonStrings *bool
}

func (f RegexFilter) Apply(ctx *evalctx.Context, v value.Value) (value.Value, error) {
	if f.Pattern == "" {
		return value.Value{}, fmt.Errorf("regexFilter: pattern must not be empty")
	}

	var str string
	if s, ok := v.AsString(); ok {
		str = s
	} else if serializeNonStrings(f.SerializeNonStrings, ctx) {
		rendered, err := jsonString(v)
		if err != nil {
			return value.Value{}, err
		}
		str = rendered
	} else {
		return value.Value{}, fmt.Errorf("regexFilter: cannot filter non-string value by regex")
	}

	re, err := regexp.Compile(f.Pattern)
	if err != nil {
		return value.Value{}, fmt.Errorf("regexFilter: invalid pattern %q: %w", f.Pattern, err)
	}
	if re.MatchString(str) {
		return v, nil
	}
	return value.None, nil
}
