package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movies-backend/internal/domains/genre"
	"movies-backend/internal/domains/genre/repository"
	infraCache "movies-backend/internal/infrastructure/cache"
	infraSearch "movies-backend/internal/infrastructure/search"
	"movies-backend/internal/infrastructure/search/searchtest"
	"movies-backend/internal/shared"
)

func newTestService(t *testing.T) (genre.Service, *searchtest.CountingStore) {
	t.Helper()
	mem := infraSearch.NewMemoryStore()
	require.NoError(t, mem.Put("genres", "g1", `{"id":"g1","name":"Drama"}`))
	counting := searchtest.NewCountingStore(mem)
	aside := infraCache.NewAside(infraCache.NewMemoryCache(time.Minute))
	return NewGenreService(repository.NewElasticRepository(counting, aside, "genres", time.Minute)), counting
}

func TestGenreService_GetByID(t *testing.T) {
	svc, _ := newTestService(t)

	g, err := svc.GetByID(context.Background(), "g1")
	require.NoError(t, err)
	assert.Equal(t, genre.Genre{ID: "g1", Name: "Drama"}, *g)

	_, err = svc.GetByID(context.Background(), "g2")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGenreService_RejectsInvalidInputBeforeStore(t *testing.T) {
	svc, counting := newTestService(t)

	_, err := svc.GetByID(context.Background(), "  ")
	assert.ErrorIs(t, err, shared.ErrInvalid)

	_, _, err = svc.List(context.Background(), genre.ListRequest{PageQuery: shared.PageQuery{PageNumber: 0, PageSize: 10}})
	assert.ErrorIs(t, err, shared.ErrInvalid)

	_, _, err = svc.List(context.Background(), genre.ListRequest{PageQuery: shared.PageQuery{PageNumber: 1, PageSize: 500}})
	assert.ErrorIs(t, err, shared.ErrInvalid)

	assert.Equal(t, int64(0), counting.Calls())
}

func TestGenreService_List(t *testing.T) {
	svc, _ := newTestService(t)

	total, genres, err := svc.List(context.Background(), genre.ListRequest{PageQuery: shared.DefaultPageQuery()})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, genres, 1)
}
