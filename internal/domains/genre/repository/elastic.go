package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"movies-backend/internal/domains/genre"
	infraCache "movies-backend/internal/infrastructure/cache"
	"movies-backend/internal/shared"
	"movies-backend/pkg/search"
)

const (
	genreCacheKeyPrefix = "genre:"
	cacheEntity         = "genre"
)

// elasticRepository implements genre.Repository
// Uses the document store as source of truth and the cache for GetByID
type elasticRepository struct {
	store search.DocumentStore
	aside *infraCache.Aside
	index string
	ttl   time.Duration
}

// NewElasticRepository creates a genre repository over index.
func NewElasticRepository(store search.DocumentStore, aside *infraCache.Aside, index string, ttl time.Duration) genre.Repository {
	return &elasticRepository{
		store: store,
		aside: aside,
		index: index,
		ttl:   ttl,
	}
}

func (r *elasticRepository) GetByID(ctx context.Context, id string) (*genre.Genre, error) {
	return infraCache.GetOrLoad(ctx, r.aside, cacheEntity, genreCacheKeyPrefix+id, r.ttl,
		func(ctx context.Context) (*genre.Genre, error) {
			return r.fetch(ctx, id)
		})
}

func (r *elasticRepository) fetch(ctx context.Context, id string) (*genre.Genre, error) {
	raw, err := r.store.Get(ctx, r.index, id)
	if errors.Is(err, search.ErrNotFound) {
		return nil, genre.ErrGenreNotFound
	}
	if err != nil {
		log.Error().Err(err).Str("index", r.index).Str("id", id).Msg("genre fetch failed")
		return nil, fmt.Errorf("%w: %v", shared.ErrUnavailable, err)
	}

	g, err := genre.FromDocument(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrUnavailable, err)
	}
	return g, nil
}

func (r *elasticRepository) List(ctx context.Context, page search.Page) (int64, []genre.Genre, error) {
	res, err := r.store.Search(ctx, r.index, search.NewRequest(search.MatchAll{}, page))
	if err != nil {
		log.Error().Err(err).Str("index", r.index).Msg("genre list failed")
		return 0, nil, fmt.Errorf("%w: %v", shared.ErrUnavailable, err)
	}

	genres := make([]genre.Genre, 0, len(res.Hits))
	for _, hit := range res.Hits {
		g, err := genre.FromDocument(hit.Source)
		if err != nil {
			log.Warn().Err(err).Str("index", r.index).Str("id", hit.ID).Msg("skipping malformed genre document")
			continue
		}
		genres = append(genres, *g)
	}
	return res.Total, genres, nil
}
