package genre

import (
	"fmt"

	"movies-backend/internal/shared"
)

var (
	ErrGenreNotFound = fmt.Errorf("genre %w", shared.ErrNotFound)
	ErrInvalidID     = fmt.Errorf("%w: genre id must not be empty", shared.ErrInvalid)
)
