package person

import (
	"fmt"

	"github.com/goccy/go-json"

	"movies-backend/internal/shared/document"
)

// Role is a participation category of a person on a film.
type Role string

const (
	RoleActor    Role = "actor"
	RoleWriter   Role = "writer"
	RoleDirector Role = "director"
)

// Roles lists every role in canonical order.
var Roles = []Role{RoleActor, RoleWriter, RoleDirector}

// Field is the movies document list holding participants of this role.
func (r Role) Field() string {
	return string(r) + "s"
}

// PersonFilm is one film a person took part in with every role they held.
type PersonFilm struct {
	ID    string `json:"id"`
	Roles []Role `json:"roles"`
}

// HasRole reports whether role is in the film's role set.
func (pf PersonFilm) HasRole(role Role) bool {
	for _, r := range pf.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Person is a persons document enriched with the films it appears in.
type Person struct {
	ID       string       `json:"id"`
	FullName string       `json:"full_name"`
	Films    []PersonFilm `json:"films"`
}

// FromDocument maps a raw persons document. Films are left empty.
// Required: id, full_name.
func FromDocument(raw json.RawMessage) (*Person, error) {
	f, err := document.Decode(raw)
	if err != nil {
		return nil, err
	}
	id, err := f.RequiredString("id")
	if err != nil {
		return nil, fmt.Errorf("person: %w", err)
	}
	name, err := f.RequiredString("full_name")
	if err != nil {
		return nil, fmt.Errorf("person %s: %w", id, err)
	}
	return &Person{ID: id, FullName: name, Films: []PersonFilm{}}, nil
}
