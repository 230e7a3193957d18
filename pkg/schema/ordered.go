package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// OnDuplicateProperty names the conflict-resolution policy applied when an
// object literal's properties contain the same key twice, the same
// three-way choice the teacher used for GraphQL type-merge conflicts,
// repurposed here for duplicate object keys.
type OnDuplicateProperty string

const (
	OnDuplicateError    OnDuplicateProperty = "error"
	OnDuplicateUseFirst OnDuplicateProperty = "useFirst"
	OnDuplicateUseLast  OnDuplicateProperty = "useLast"
)

// duplicatePropertyPolicy is set once by Document parsing, before the root
// node (and therefore any nested Object) is decoded, mirroring the
// activeGenerator wiring pattern used for string generation.
var duplicatePropertyPolicy = OnDuplicateError

// SetDuplicatePropertyPolicy installs the policy used by every Object
// decoded afterwards.
func SetDuplicatePropertyPolicy(p OnDuplicateProperty) {
	if p == "" {
		p = OnDuplicateError
	}
	duplicatePropertyPolicy = p
}

// PropertyEntry is one key/raw-value pair from an object literal, decoded
// in declaration order.
type PropertyEntry struct {
	Key string
	Raw json.RawMessage
}

// decodeOrderedObject reads a JSON object's members in declaration order
// using token-stream decoding (map[string]json.RawMessage would discard
// order), applying duplicatePropertyPolicy to repeated keys.
func decodeOrderedObject(raw json.RawMessage) ([]PropertyEntry, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("ordered object: expected '{', got %v", tok)
	}

	var entries []PropertyEntry
	index := make(map[string]int)

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("ordered object: expected string key, got %v", keyTok)
		}

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}

		if existing, dup := index[key]; dup {
			switch duplicatePropertyPolicy {
			case OnDuplicateUseFirst:
				continue
			case OnDuplicateUseLast:
				entries[existing].Raw = value
				continue
			default:
				return nil, fmt.Errorf("ordered object: duplicate property %q", key)
			}
		}

		index[key] = len(entries)
		entries = append(entries, PropertyEntry{Key: key, Raw: value})
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return entries, nil
}
