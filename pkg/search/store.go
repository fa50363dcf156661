package search

import (
	"context"
	"errors"

	"github.com/goccy/go-json"
)

// ErrNotFound is returned by DocumentStore.Get when the collection holds no
// document with the requested id.
var ErrNotFound = errors.New("document not found")

// DocumentStore is the contract of the full-text document store.
// Implementations: Elasticsearch (production), in-memory (local + tests).
type DocumentStore interface {
	// Get returns the raw _source of a single document.
	// Returns ErrNotFound when the document does not exist.
	Get(ctx context.Context, index, id string) (json.RawMessage, error)

	// Search runs a structured query and returns the total hit count
	// together with the requested page of documents, ranked by the store.
	Search(ctx context.Context, index string, req Request) (*Result, error)

	// Ping checks the backend connection.
	Ping(ctx context.Context) error
}

// Hit is one ranked document of a search result.
type Hit struct {
	ID     string
	Score  float64
	Source json.RawMessage
}

// Result is a page of hits plus the store-reported total.
type Result struct {
	Total int64
	Hits  []Hit
}
