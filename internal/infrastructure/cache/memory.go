package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	gocache "github.com/patrickmn/go-cache"

	"movies-backend/pkg/cache"
)

var _ cache.Cache = (*MemoryCache)(nil)

// MemoryCache is an in-process Cache. Values are stored JSON-encoded so a
// hit returns a fresh copy, the same as a Redis round trip would.
type MemoryCache struct {
	store *gocache.Cache
}

// NewMemoryCache creates a cache whose expired entries are purged every
// cleanupInterval.
func NewMemoryCache(cleanupInterval time.Duration) *MemoryCache {
	return &MemoryCache{
		store: gocache.New(gocache.NoExpiration, cleanupInterval),
	}
}

func (m *MemoryCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	v, ok := m.store.Get(key)
	if !ok {
		return false, nil
	}
	data, ok := v.([]byte)
	if !ok {
		return false, fmt.Errorf("memory cache: unexpected value type %T for %s", v, key)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("memory cache decode %s: %w", key, err)
	}
	return true, nil
}

func (m *MemoryCache) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("memory cache encode %s: %w", key, err)
	}
	m.store.Set(key, data, ttl)
	return nil
}

func (m *MemoryCache) Ping(context.Context) error {
	return nil
}

func (m *MemoryCache) Close() error {
	m.store.Flush()
	return nil
}

// Len returns the number of stored entries, expired ones included until
// the next cleanup.
func (m *MemoryCache) Len() int {
	return m.store.ItemCount()
}
