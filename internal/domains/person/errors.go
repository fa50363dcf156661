package person

import (
	"fmt"

	"movies-backend/internal/shared"
)

var (
	ErrPersonNotFound = fmt.Errorf("person %w", shared.ErrNotFound)
	ErrInvalidID      = fmt.Errorf("%w: person id must not be empty", shared.ErrInvalid)
	ErrEmptyQuery     = fmt.Errorf("%w: search query must not be empty", shared.ErrInvalid)
)
