package genre

import (
	"context"

	"movies-backend/pkg/search"
)

// Repository defines data access for genres.
type Repository interface {
	// GetByID retrieves a genre by id, cache first.
	// Returns: ErrGenreNotFound if the store has no such document
	GetByID(ctx context.Context, id string) (*Genre, error)

	// List returns one page of genres plus the store-reported total.
	// Listing is not cached.
	List(ctx context.Context, page search.Page) (int64, []Genre, error)
}
