package cache

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"movies-backend/internal/infrastructure/metrics"
	"movies-backend/pkg/cache"
)

// Loader fetches one entity from the source of truth.
type Loader[T any] func(ctx context.Context) (*T, error)

// DefaultLoadTimeout bounds a shared load once it is detached from the
// caller that started it.
const DefaultLoadTimeout = 10 * time.Second

// Aside implements cache-aside reads over a Cache. Concurrent misses on
// the same key share a single load and a single cache write.
type Aside struct {
	cache       cache.Cache
	group       singleflight.Group
	loadTimeout time.Duration
}

type AsideOption func(*Aside)

// WithLoadTimeout overrides DefaultLoadTimeout. Non-positive values are
// ignored.
func WithLoadTimeout(d time.Duration) AsideOption {
	return func(a *Aside) {
		if d > 0 {
			a.loadTimeout = d
		}
	}
}

func NewAside(c cache.Cache, opts ...AsideOption) *Aside {
	a := &Aside{cache: c, loadTimeout: DefaultLoadTimeout}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// GetOrLoad returns the entity cached under key, or loads it, writes it
// back with ttl and returns it.
//
//   - hit: load is never called
//   - backend error on Get: logged and treated as a miss
//   - load error (not found included): returned as is, nothing is cached
//   - backend error on Set: logged, the loaded entity is still returned
//
// The shared load keeps the values of the first caller's ctx but not its
// cancellation, so one caller giving up never fails the others. Each
// caller still returns ctx.Err() as soon as its own ctx is done.
//
// Entities returned from a shared load are the same pointer for every
// waiter and must be treated as read-only.
func GetOrLoad[T any](ctx context.Context, a *Aside, entity, key string, ttl time.Duration, load Loader[T]) (*T, error) {
	var cached T
	found, err := a.cache.Get(ctx, key, &cached)
	switch {
	case err != nil:
		metrics.RecordCacheLookup(entity, metrics.CacheError)
		log.Warn().Err(err).Str("key", key).Str("entity", entity).Msg("cache get failed, falling back to store")
	case found:
		metrics.RecordCacheLookup(entity, metrics.CacheHit)
		return &cached, nil
	default:
		metrics.RecordCacheLookup(entity, metrics.CacheMiss)
		log.Debug().Str("key", key).Str("entity", entity).Msg("cache miss")
	}

	ch := a.group.DoChan(key, func() (interface{}, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.loadTimeout)
		defer cancel()

		loaded, err := load(loadCtx)
		if err != nil {
			return nil, err
		}
		if err := a.cache.Set(loadCtx, key, loaded, ttl); err != nil {
			log.Warn().Err(err).Str("key", key).Str("entity", entity).Msg("cache set failed")
		}
		return loaded, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*T), nil
	}
}
