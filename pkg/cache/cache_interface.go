package cache

import (
	"context"
	"time"
)

// Cache is the contract of the fast-path key/value layer.
// Implementations: Redis (production), in-memory (local + tests).
type Cache interface {
	// Get loads the value stored under key and unmarshals it into dest.
	// Returns: (found bool, error)
	// - found = true: hit, dest is populated
	// - found = false: miss, dest is left untouched
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set marshals value and stores it under key with the given TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Ping checks the backend connection.
	Ping(ctx context.Context) error

	// Close releases the backend connection.
	Close() error
}
