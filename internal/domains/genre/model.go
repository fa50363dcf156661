package genre

import (
	"fmt"

	"github.com/goccy/go-json"

	"movies-backend/internal/shared/document"
)

// Genre is a film genre as stored in the genres collection.
type Genre struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// FromDocument maps a raw genres document.
// Required: id, name. Description is optional.
func FromDocument(raw json.RawMessage) (*Genre, error) {
	f, err := document.Decode(raw)
	if err != nil {
		return nil, err
	}
	id, err := f.RequiredString("id")
	if err != nil {
		return nil, fmt.Errorf("genre: %w", err)
	}
	name, err := f.RequiredString("name")
	if err != nil {
		return nil, fmt.Errorf("genre %s: %w", id, err)
	}
	return &Genre{
		ID:          id,
		Name:        name,
		Description: f.OptionalString("description"),
	}, nil
}
