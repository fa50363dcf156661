package film

import (
	"fmt"

	"movies-backend/internal/shared"
)

var (
	ErrFilmNotFound = fmt.Errorf("film %w", shared.ErrNotFound)
	ErrInvalidID    = fmt.Errorf("%w: film id must not be empty", shared.ErrInvalid)
	ErrEmptyQuery   = fmt.Errorf("%w: search query must not be empty", shared.ErrInvalid)
	ErrInvalidSort  = fmt.Errorf("%w: unsupported sort field", shared.ErrInvalid)
)
