package domain

import (
	"fmt"
	"maps"
	"slices"

	"go.trai.ch/zerr"
)

// Document is a decoded lockfile entry or dependency descriptor.
// Values are whatever the decoder produced: strings, numbers, bools, lists and nested maps.
type Document map[string]any

// String returns a required string field.
func (d Document) String(key string) (string, error) {
	v, ok := d[key]
	if !ok {
		return "", zerr.With(ErrMissingField, "field", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", zerr.With(zerr.With(ErrInvalidField, "field", key), "expected", "string")
	}
	return s, nil
}

// OptionalString returns a string field or def when it is absent.
func (d Document) OptionalString(key, def string) (string, error) {
	if _, ok := d[key]; !ok {
		return def, nil
	}
	return d.String(key)
}

// Strings returns a list-of-strings field. A single string is accepted as a one element list.
// A missing field yields nil.
func (d Document) Strings(key string) ([]string, error) {
	v, ok := d[key]
	if !ok || v == nil {
		return nil, nil
	}
	switch t := v.(type) {
	case string:
		return []string{t}, nil
	case []string:
		return slices.Clone(t), nil
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			s, ok := item.(string)
			if !ok {
				return nil, zerr.With(zerr.With(ErrInvalidField, "field", key), "expected", "list of strings")
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, zerr.With(zerr.With(ErrInvalidField, "field", key), "expected", "list of strings")
	}
}

// Clone returns a shallow copy of the document.
func (d Document) Clone() Document {
	if d == nil {
		return Document{}
	}
	return maps.Clone(d)
}

// Keys returns the document keys in sorted order.
func (d Document) Keys() []string {
	return slices.Sorted(maps.Keys(d))
}

// AsDocument converts a decoded value into a Document.
func AsDocument(v any) (Document, error) {
	switch t := v.(type) {
	case nil:
		return Document{}, nil
	case Document:
		return t, nil
	case map[string]any:
		return Document(t), nil
	case map[any]any:
		out := make(Document, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = val
		}
		return out, nil
	default:
		return nil, zerr.With(ErrInvalidField, "expected", "mapping")
	}
}
