package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movies-backend/internal/domains/person"
	"movies-backend/internal/shared"
	"movies-backend/pkg/search"
)

type recordingRepo struct {
	calls      int
	lastSearch string
	lastPage   search.Page
}

func (r *recordingRepo) GetByID(_ context.Context, id string) (*person.Person, error) {
	r.calls++
	return &person.Person{ID: id}, nil
}

func (r *recordingRepo) List(_ context.Context, page search.Page) (int64, []person.Person, error) {
	r.calls++
	r.lastPage = page
	return 0, nil, nil
}

func (r *recordingRepo) Search(_ context.Context, text string, page search.Page) (int64, []person.Person, error) {
	r.calls++
	r.lastSearch = text
	r.lastPage = page
	return 0, nil, nil
}

func TestPersonService_Validation(t *testing.T) {
	repo := &recordingRepo{}
	svc := NewPersonService(repo)
	ctx := context.Background()

	_, err := svc.GetByID(ctx, "")
	assert.ErrorIs(t, err, person.ErrInvalidID)

	_, _, err = svc.Search(ctx, person.SearchRequest{Query: "  ", PageQuery: shared.DefaultPageQuery()})
	assert.ErrorIs(t, err, person.ErrEmptyQuery)

	_, _, err = svc.List(ctx, person.ListRequest{PageQuery: shared.PageQuery{PageNumber: 1, PageSize: 0}})
	assert.ErrorIs(t, err, shared.ErrInvalid)

	assert.Equal(t, 0, repo.calls)
}

func TestPersonService_Delegates(t *testing.T) {
	repo := &recordingRepo{}
	svc := NewPersonService(repo)
	ctx := context.Background()

	_, _, err := svc.Search(ctx, person.SearchRequest{Query: " lucas ", PageQuery: shared.PageQuery{PageNumber: 3, PageSize: 4}})
	require.NoError(t, err)
	assert.Equal(t, "lucas", repo.lastSearch)
	assert.Equal(t, search.Page{Number: 3, Size: 4}, repo.lastPage)

	_, _, err = svc.List(ctx, person.ListRequest{PageQuery: shared.DefaultPageQuery()})
	require.NoError(t, err)
	assert.Equal(t, search.Page{Number: 1, Size: 50}, repo.lastPage)

	p, err := svc.GetByID(ctx, " p1 ")
	require.NoError(t, err)
	assert.Equal(t, "p1", p.ID)
}
