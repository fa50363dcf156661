package shared

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"movies-backend/pkg/search"
)

func TestPageQuery_Validate(t *testing.T) {
	tests := []struct {
		name    string
		query   PageQuery
		wantErr bool
	}{
		{"defaults", DefaultPageQuery(), false},
		{"max size", PageQuery{PageNumber: 3, PageSize: search.MaxPageSize}, false},
		{"zero page", PageQuery{PageNumber: 0, PageSize: 10}, true},
		{"negative page", PageQuery{PageNumber: -1, PageSize: 10}, true},
		{"zero size", PageQuery{PageNumber: 1, PageSize: 0}, true},
		{"oversized", PageQuery{PageNumber: 1, PageSize: search.MaxPageSize + 1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.query.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, errors.Is(Invalid(err), ErrInvalid))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestPageQuery_Page(t *testing.T) {
	p := PageQuery{PageNumber: 2, PageSize: 10}.Page()
	assert.Equal(t, 10, p.Offset())
	assert.Nil(t, Invalid(nil))
}
