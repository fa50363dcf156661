package shared

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"movies-backend/pkg/search"
)

// PageQuery is the pagination part of every list/search request.
// Query params: page_number (default 1), page_size (default 50)
type PageQuery struct {
	PageNumber int `form:"page_number,default=1" json:"page_number"`
	PageSize   int `form:"page_size,default=50" json:"page_size"`
}

// DefaultPageQuery is used when the caller supplies no pagination.
func DefaultPageQuery() PageQuery {
	return PageQuery{PageNumber: 1, PageSize: search.DefaultPageSize}
}

// Validate rejects non-positive values and oversized pages.
func (p PageQuery) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.PageNumber, validation.Required, validation.Min(1)),
		validation.Field(&p.PageSize, validation.Required, validation.Min(1), validation.Max(search.MaxPageSize)),
	)
}

// Page converts the query into a normalized store page.
func (p PageQuery) Page() search.Page {
	return search.Page{Number: p.PageNumber, Size: p.PageSize}.Normalize()
}

// Invalid wraps a validation failure into ErrInvalid.
func Invalid(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrInvalid, err)
}
