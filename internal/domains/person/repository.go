package person

import (
	"context"

	"movies-backend/pkg/search"
)

// Repository defines data access for persons.
type Repository interface {
	// GetByID retrieves a person with their films, cache first.
	// Returns: ErrPersonNotFound if the store has no such document
	GetByID(ctx context.Context, id string) (*Person, error)

	// List returns one page of persons, each with films resolved per call.
	List(ctx context.Context, page search.Page) (int64, []Person, error)

	// Search matches persons by full name, films resolved per call.
	Search(ctx context.Context, text string, page search.Page) (int64, []Person, error)
}

// RoleResolver finds the films a person took part in.
type RoleResolver interface {
	// PersonFilms returns one entry per film referencing personID in any
	// role list, with roles accumulated across actors, writers, directors.
	PersonFilms(ctx context.Context, personID string) ([]PersonFilm, error)
}
