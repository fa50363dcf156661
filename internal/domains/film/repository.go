package film

import (
	"context"

	"movies-backend/pkg/search"
)

// ListQuery is a normalised list request handed to the repository.
type ListQuery struct {
	Sort    search.Sort
	GenreID string
	Page    search.Page
}

// Repository defines data access for films.
type Repository interface {
	// GetByID retrieves a film detail, cache first. Bare genre ids in the
	// document are resolved to full genres.
	// Returns: ErrFilmNotFound if the store has no such document
	GetByID(ctx context.Context, id string) (*Film, error)

	// List filters by genre when GenreID is set and sorts by Sort.
	List(ctx context.Context, q ListQuery) (int64, []Film, error)

	// Search ranks films by weighted relevance over SearchFields.
	Search(ctx context.Context, text string, page search.Page) (int64, []Film, error)
}
