package search

import (
	"context"
	"errors"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
	gobreaker "github.com/sony/gobreaker/v2"

	"movies-backend/internal/infrastructure/metrics"
	"movies-backend/pkg/search"
)

var _ search.DocumentStore = (*BreakerStore)(nil)

// BreakerConfig holds the circuit breaker settings of the document store.
type BreakerConfig struct {
	Name             string
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	FailureThreshold uint32
}

func DefaultBreakerConfig(name string) BreakerConfig {
	return BreakerConfig{
		Name:             name,
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          30 * time.Second,
		FailureThreshold: 5,
	}
}

// BreakerStore fails fast while the wrapped store keeps failing. It never
// replays a request. Not-found answers and caller cancellations do not
// count as failures.
type BreakerStore struct {
	next search.DocumentStore
	cb   *gobreaker.CircuitBreaker[any]
}

func NewBreakerStore(next search.DocumentStore, cfg BreakerConfig) *BreakerStore {
	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		IsSuccessful: func(err error) bool {
			return err == nil ||
				errors.Is(err, search.ErrNotFound) ||
				errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.BreakerState.WithLabelValues(name).Set(float64(to))
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("document store breaker state changed")
		},
	}
	metrics.BreakerState.WithLabelValues(cfg.Name).Set(float64(gobreaker.StateClosed))

	return &BreakerStore{
		next: next,
		cb:   gobreaker.NewCircuitBreaker[any](settings),
	}
}

// State returns the breaker state as a string for health reporting.
func (b *BreakerStore) State() string {
	return b.cb.State().String()
}

func (b *BreakerStore) Get(ctx context.Context, index, id string) (json.RawMessage, error) {
	v, err := b.cb.Execute(func() (any, error) {
		return b.next.Get(ctx, index, id)
	})
	if err != nil {
		return nil, err
	}
	return v.(json.RawMessage), nil
}

func (b *BreakerStore) Search(ctx context.Context, index string, req search.Request) (*search.Result, error) {
	v, err := b.cb.Execute(func() (any, error) {
		return b.next.Search(ctx, index, req)
	})
	if err != nil {
		return nil, err
	}
	return v.(*search.Result), nil
}

func (b *BreakerStore) Ping(ctx context.Context) error {
	return b.next.Ping(ctx)
}
