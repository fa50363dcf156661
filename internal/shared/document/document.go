// Package document decodes raw search-index documents defensively.
//
// Required fields fail closed with ErrMissingField. Everything else is
// repaired in place: a scalar where a list is expected reads as an empty
// list, a wrongly typed optional field reads as absent.
package document

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
)

// ErrMissingField marks a document without one of its required fields.
var ErrMissingField = errors.New("document missing required field")

// Fields is a decoded top-level JSON object.
type Fields map[string]json.RawMessage

// Decode parses raw as a JSON object.
func Decode(raw json.RawMessage) (Fields, error) {
	if kind(raw) != '{' {
		return nil, fmt.Errorf("%w: document is not an object", ErrMissingField)
	}
	var f Fields
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingField, err)
	}
	return f, nil
}

// RequiredString returns a non-empty string field or ErrMissingField.
func (f Fields) RequiredString(name string) (string, error) {
	s := f.String(name)
	if s == "" {
		return "", fmt.Errorf("%w: %q", ErrMissingField, name)
	}
	return s, nil
}

// String returns the field as a string, "" when absent or not a string.
func (f Fields) String(name string) string {
	raw, ok := f[name]
	if !ok || kind(raw) != '"' {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// FirstString returns the first non-empty string among names.
func (f Fields) FirstString(names ...string) string {
	for _, n := range names {
		if s := f.String(n); s != "" {
			return s
		}
	}
	return ""
}

// OptionalString returns nil when the field is absent, null or not a string.
func (f Fields) OptionalString(name string) *string {
	raw, ok := f[name]
	if !ok || kind(raw) != '"' {
		return nil
	}
	s := f.String(name)
	return &s
}

// OptionalFloat returns nil when the field is absent, null or not a number.
func (f Fields) OptionalFloat(name string) *float64 {
	raw, ok := f[name]
	if !ok {
		return nil
	}
	k := kind(raw)
	if k != '-' && (k < '0' || k > '9') {
		return nil
	}
	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	return &v
}

// List returns the elements of a list field. Absent, null and non-list
// values read as an empty list.
func (f Fields) List(name string) []json.RawMessage {
	raw, ok := f[name]
	if !ok || kind(raw) != '[' {
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	return items
}

// Ref is one element of a reference list: an embedded object or a bare
// string.
type Ref struct {
	ID     string
	Name   string
	Scalar string
}

// IsScalar reports whether the element was a bare string.
func (r Ref) IsScalar() bool {
	return r.Scalar != ""
}

// Refs decodes a reference list. Object elements read their id from "id"
// and their display name from the first non-empty of nameKeys; string
// elements land in Scalar. Other elements are skipped.
func (f Fields) Refs(name string, nameKeys ...string) []Ref {
	items := f.List(name)
	refs := make([]Ref, 0, len(items))
	for _, item := range items {
		switch kind(item) {
		case '"':
			var s string
			if err := json.Unmarshal(item, &s); err == nil && s != "" {
				refs = append(refs, Ref{Scalar: s})
			}
		case '{':
			obj, err := Decode(item)
			if err != nil {
				continue
			}
			refs = append(refs, Ref{
				ID:   obj.String("id"),
				Name: obj.FirstString(nameKeys...),
			})
		}
	}
	return refs
}

// kind returns the first significant byte of a JSON value, 'n' for null
// and 0 for empty input.
func kind(raw json.RawMessage) byte {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return 0
	}
	return trimmed[0]
}
