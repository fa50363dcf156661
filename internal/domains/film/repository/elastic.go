package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"movies-backend/internal/domains/film"
	infraCache "movies-backend/internal/infrastructure/cache"
	"movies-backend/internal/shared"
	"movies-backend/pkg/search"
)

const (
	filmCacheKeyPrefix = "film:"
	cacheEntity        = "film"
)

// elasticRepository implements film.Repository
type elasticRepository struct {
	store        search.DocumentStore
	aside        *infraCache.Aside
	mapper       *mapper
	genreMapping film.GenreMapping
	index        string
	ttl          time.Duration
}

// NewElasticRepository creates a film repository over index. genres
// resolves bare genre ids on detail reads; genreMapping selects the
// genre filter clause and defaults to nested.
func NewElasticRepository(store search.DocumentStore, aside *infraCache.Aside, genres GenreLookup, genreMapping film.GenreMapping, index string, ttl time.Duration) film.Repository {
	if genreMapping == "" {
		genreMapping = film.GenreMappingNested
	}
	return &elasticRepository{
		store:        store,
		aside:        aside,
		mapper:       &mapper{genres: genres},
		genreMapping: genreMapping,
		index:        index,
		ttl:          ttl,
	}
}

// ════════════════════════════════════════════════════════════════
// READ: cache-aside detail
// ════════════════════════════════════════════════════════════════

func (r *elasticRepository) GetByID(ctx context.Context, id string) (*film.Film, error) {
	return infraCache.GetOrLoad(ctx, r.aside, cacheEntity, filmCacheKeyPrefix+id, r.ttl,
		func(ctx context.Context) (*film.Film, error) {
			return r.fetch(ctx, id)
		})
}

func (r *elasticRepository) fetch(ctx context.Context, id string) (*film.Film, error) {
	raw, err := r.store.Get(ctx, r.index, id)
	if errors.Is(err, search.ErrNotFound) {
		return nil, film.ErrFilmNotFound
	}
	if err != nil {
		log.Error().Err(err).Str("index", r.index).Str("id", id).Msg("film fetch failed")
		return nil, fmt.Errorf("%w: %v", shared.ErrUnavailable, err)
	}

	f, err := r.mapper.toFilm(ctx, raw, true)
	if err != nil {
		if errors.Is(err, shared.ErrUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", shared.ErrUnavailable, err)
	}
	return f, nil
}

// ════════════════════════════════════════════════════════════════
// LIST / SEARCH: query composition
// ════════════════════════════════════════════════════════════════

func (r *elasticRepository) List(ctx context.Context, q film.ListQuery) (int64, []film.Film, error) {
	req := search.NewRequest(listQuery(q.GenreID, r.genreMapping), q.Page, q.Sort)
	return r.query(ctx, "list", req)
}

func (r *elasticRepository) Search(ctx context.Context, text string, page search.Page) (int64, []film.Film, error) {
	req := search.NewRequest(search.MultiMatch{Text: text, Fields: film.SearchFields}, page)
	return r.query(ctx, "search", req)
}

// listQuery is match_all, narrowed to films of genreID when set. The
// filter clause follows the index mapping of the genres field.
func listQuery(genreID string, mapping film.GenreMapping) search.Query {
	if genreID == "" {
		return search.MatchAll{}
	}
	var filter search.Query = search.Nested{
		Path:  film.FieldGenres,
		Query: search.Term{Field: film.FieldGenres + ".id", Value: genreID},
	}
	if mapping == film.GenreMappingKeyword {
		filter = search.Term{Field: film.FieldGenres, Value: genreID}
	}
	return search.Bool{
		Must:   []search.Query{search.MatchAll{}},
		Filter: []search.Query{filter},
	}
}

func (r *elasticRepository) query(ctx context.Context, op string, req search.Request) (int64, []film.Film, error) {
	res, err := r.store.Search(ctx, r.index, req)
	if err != nil {
		log.Error().Err(err).Str("index", r.index).Str("op", op).Msg("film query failed")
		return 0, nil, fmt.Errorf("%w: %v", shared.ErrUnavailable, err)
	}

	films := make([]film.Film, 0, len(res.Hits))
	for _, hit := range res.Hits {
		f, err := r.mapper.toFilm(ctx, hit.Source, false)
		if err != nil {
			log.Warn().Err(err).Str("index", r.index).Str("id", hit.ID).Msg("skipping malformed film document")
			continue
		}
		films = append(films, *f)
	}
	return res.Total, films, nil
}
