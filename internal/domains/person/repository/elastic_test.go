package repository

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movies-backend/internal/domains/person"
	infraCache "movies-backend/internal/infrastructure/cache"
	"movies-backend/internal/infrastructure/search/searchtest"
	"movies-backend/internal/shared"
	"movies-backend/pkg/search"
)

func stringsReader(s string) io.Reader { return strings.NewReader(s) }

type fixture struct {
	counting *searchtest.CountingStore
	cache    *infraCache.MemoryCache
	repo     person.Repository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	mem := newMovieStore(t)
	require.NoError(t, mem.Put("persons", "p1", `{"id":"p1","full_name":"Mark Hamill"}`))
	require.NoError(t, mem.Put("persons", "p2", `{"id":"p2","full_name":"Harrison Ford"}`))
	require.NoError(t, mem.Put("persons", "p3", `{"id":"p3","full_name":"George Lucas"}`))
	require.NoError(t, mem.Put("persons", "p4", `{"id":"p4"}`))

	counting := searchtest.NewCountingStore(mem)
	mc := infraCache.NewMemoryCache(time.Minute)
	roles := NewFilmRoleResolver(counting, "movies", 100)
	return &fixture{
		counting: counting,
		cache:    mc,
		repo:     NewElasticRepository(counting, infraCache.NewAside(mc), roles, "persons", time.Minute),
	}
}

func TestGetByID_EmbedsFilmsAndCaches(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	cold, err := fx.repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "Mark Hamill", cold.FullName)
	assert.Len(t, cold.Films, 2)
	assert.Equal(t, int64(1), fx.counting.Gets())
	assert.Equal(t, int64(1), fx.counting.Searches(), "one role query per miss")

	warm, err := fx.repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, cold, warm)
	assert.Equal(t, int64(2), fx.counting.Calls(), "warm read must not reach the store")

	var cached person.Person
	hit, err := fx.cache.Get(ctx, "person:p1", &cached)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, *cold, cached)
}

func TestGetByID_Errors(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	_, err := fx.repo.GetByID(ctx, "p-missing")
	assert.ErrorIs(t, err, person.ErrPersonNotFound)
	assert.Equal(t, 0, fx.cache.Len())

	_, err = fx.repo.GetByID(ctx, "p4")
	assert.ErrorIs(t, err, shared.ErrUnavailable)
}

func TestList_ResolvesFilmsPerPersonUncached(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	total, people, err := fx.repo.List(ctx, search.Page{Number: 1, Size: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
	require.Len(t, people, 3, "malformed person is skipped")
	assert.Equal(t, "Harrison Ford", people[1].FullName)
	assert.Equal(t, []person.PersonFilm{
		{ID: "f1", Roles: []person.Role{person.RoleActor}},
		{ID: "f3", Roles: []person.Role{person.RoleActor}},
	}, people[1].Films)
	assert.Equal(t, 0, fx.cache.Len(), "listing is not cached")

	_, _, err = fx.repo.List(ctx, search.Page{Number: 1, Size: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(8), fx.counting.Searches())
}

func TestSearch_MatchesFullName(t *testing.T) {
	fx := newFixture(t)

	total, people, err := fx.repo.Search(context.Background(), "lucas", search.Page{Number: 1, Size: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, people, 1)
	assert.Equal(t, "p3", people[0].ID)
	assert.Len(t, people[0].Films, 2)
}
