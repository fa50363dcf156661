package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"movies-backend/internal/domains/person"
	infraCache "movies-backend/internal/infrastructure/cache"
	"movies-backend/internal/shared"
	"movies-backend/pkg/search"
)

const (
	personCacheKeyPrefix = "person:"
	cacheEntity          = "person"
)

// elasticRepository implements person.Repository
type elasticRepository struct {
	store search.DocumentStore
	aside *infraCache.Aside
	roles person.RoleResolver
	index string
	ttl   time.Duration
}

// NewElasticRepository creates a person repository over index. roles
// fills in each person's films.
func NewElasticRepository(store search.DocumentStore, aside *infraCache.Aside, roles person.RoleResolver, index string, ttl time.Duration) person.Repository {
	return &elasticRepository{
		store: store,
		aside: aside,
		roles: roles,
		index: index,
		ttl:   ttl,
	}
}

// GetByID caches the person together with their films.
func (r *elasticRepository) GetByID(ctx context.Context, id string) (*person.Person, error) {
	return infraCache.GetOrLoad(ctx, r.aside, cacheEntity, personCacheKeyPrefix+id, r.ttl,
		func(ctx context.Context) (*person.Person, error) {
			return r.fetch(ctx, id)
		})
}

func (r *elasticRepository) fetch(ctx context.Context, id string) (*person.Person, error) {
	raw, err := r.store.Get(ctx, r.index, id)
	if errors.Is(err, search.ErrNotFound) {
		return nil, person.ErrPersonNotFound
	}
	if err != nil {
		log.Error().Err(err).Str("index", r.index).Str("id", id).Msg("person fetch failed")
		return nil, fmt.Errorf("%w: %v", shared.ErrUnavailable, err)
	}

	p, err := person.FromDocument(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrUnavailable, err)
	}
	if p.Films, err = r.roles.PersonFilms(ctx, p.ID); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *elasticRepository) List(ctx context.Context, page search.Page) (int64, []person.Person, error) {
	return r.query(ctx, "list", search.NewRequest(search.MatchAll{}, page))
}

func (r *elasticRepository) Search(ctx context.Context, text string, page search.Page) (int64, []person.Person, error) {
	return r.query(ctx, "search", search.NewRequest(search.Match{Field: "full_name", Text: text}, page))
}

// query runs req and resolves films for every hit, one store round trip
// per person. Results are not cached.
func (r *elasticRepository) query(ctx context.Context, op string, req search.Request) (int64, []person.Person, error) {
	res, err := r.store.Search(ctx, r.index, req)
	if err != nil {
		log.Error().Err(err).Str("index", r.index).Str("op", op).Msg("person query failed")
		return 0, nil, fmt.Errorf("%w: %v", shared.ErrUnavailable, err)
	}

	people := make([]person.Person, 0, len(res.Hits))
	for _, hit := range res.Hits {
		p, err := person.FromDocument(hit.Source)
		if err != nil {
			log.Warn().Err(err).Str("index", r.index).Str("id", hit.ID).Msg("skipping malformed person document")
			continue
		}
		if p.Films, err = r.roles.PersonFilms(ctx, p.ID); err != nil {
			return 0, nil, err
		}
		people = append(people, *p)
	}
	return res.Total, people, nil
}
