// Package searchtest provides document store helpers for tests.
package searchtest

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/goccy/go-json"

	"movies-backend/pkg/search"
)

// CountingStore wraps a DocumentStore and counts calls that reach it.
type CountingStore struct {
	Next     search.DocumentStore
	gets     atomic.Int64
	searches atomic.Int64

	mu   sync.Mutex
	last search.Request
}

func NewCountingStore(next search.DocumentStore) *CountingStore {
	return &CountingStore{Next: next}
}

func (c *CountingStore) Get(ctx context.Context, index, id string) (json.RawMessage, error) {
	c.gets.Add(1)
	return c.Next.Get(ctx, index, id)
}

func (c *CountingStore) Search(ctx context.Context, index string, req search.Request) (*search.Result, error) {
	c.searches.Add(1)
	c.mu.Lock()
	c.last = req
	c.mu.Unlock()
	return c.Next.Search(ctx, index, req)
}

func (c *CountingStore) Ping(ctx context.Context) error {
	return c.Next.Ping(ctx)
}

// Gets returns the number of Get calls so far.
func (c *CountingStore) Gets() int64 { return c.gets.Load() }

// Searches returns the number of Search calls so far.
func (c *CountingStore) Searches() int64 { return c.searches.Load() }

// LastSearch returns the most recent request passed to Search.
func (c *CountingStore) LastSearch() search.Request {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

// Calls returns Get plus Search calls.
func (c *CountingStore) Calls() int64 { return c.Gets() + c.Searches() }

// FailingStore fails every call with Err.
type FailingStore struct {
	Err error
}

func (f FailingStore) Get(context.Context, string, string) (json.RawMessage, error) {
	return nil, f.Err
}

func (f FailingStore) Search(context.Context, string, search.Request) (*search.Result, error) {
	return nil, f.Err
}

func (f FailingStore) Ping(context.Context) error { return f.Err }
