package search

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"

	"movies-backend/internal/infrastructure/metrics"
	"movies-backend/pkg/search"
)

var _ search.DocumentStore = (*ElasticStore)(nil)

// ElasticOptions configures the Elasticsearch client.
type ElasticOptions struct {
	Addresses  []string
	Username   string
	Password   string
	MaxRetries int
}

// ElasticStore is the Elasticsearch-backed DocumentStore.
type ElasticStore struct {
	client *elasticsearch.Client
}

func NewElasticStore(opts ElasticOptions) (*ElasticStore, error) {
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses:     opts.Addresses,
		Username:      opts.Username,
		Password:      opts.Password,
		MaxRetries:    opts.MaxRetries,
		RetryOnStatus: []int{http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout},
	})
	if err != nil {
		return nil, fmt.Errorf("create elasticsearch client: %w", err)
	}
	return &ElasticStore{client: client}, nil
}

func (s *ElasticStore) Connect(ctx context.Context) error {
	log.Info().Msg("[ELASTIC] Connecting to Elasticsearch...")
	if err := s.Ping(ctx); err != nil {
		return err
	}
	log.Info().Msg("[ELASTIC] Connected successfully")
	return nil
}

func (s *ElasticStore) Get(ctx context.Context, index, id string) (raw json.RawMessage, err error) {
	start := time.Now()
	defer func() {
		metrics.RecordStoreRequest("get", index, time.Since(start), err)
	}()

	res, err := s.client.Get(index, id, s.client.Get.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("elasticsearch get %s/%s: %w", index, id, err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, search.ErrNotFound
	}
	if res.IsError() {
		return nil, responseError("get", index, res)
	}

	var doc struct {
		Found  bool            `json:"found"`
		Source json.RawMessage `json:"_source"`
	}
	if err := json.NewDecoder(res.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("elasticsearch get %s/%s: decode response: %w", index, id, err)
	}
	if !doc.Found {
		return nil, search.ErrNotFound
	}
	return doc.Source, nil
}

func (s *ElasticStore) Search(ctx context.Context, index string, req search.Request) (result *search.Result, err error) {
	start := time.Now()
	defer func() {
		metrics.RecordStoreRequest("search", index, time.Since(start), err)
	}()

	body, err := json.Marshal(req.Body())
	if err != nil {
		return nil, fmt.Errorf("elasticsearch search %s: encode query: %w", index, err)
	}

	res, err := s.client.Search(
		s.client.Search.WithContext(ctx),
		s.client.Search.WithIndex(index),
		s.client.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, fmt.Errorf("elasticsearch search %s: %w", index, err)
	}
	defer res.Body.Close()

	// Missing index: nothing has been ingested yet.
	if res.StatusCode == http.StatusNotFound {
		log.Warn().Str("index", index).Msg("[ELASTIC] index not found, returning empty result")
		return &search.Result{}, nil
	}
	if res.IsError() {
		return nil, responseError("search", index, res)
	}

	var payload struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				ID     string          `json:"_id"`
				Score  *float64        `json:"_score"`
				Source json.RawMessage `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("elasticsearch search %s: decode response: %w", index, err)
	}

	result = &search.Result{
		Total: payload.Hits.Total.Value,
		Hits:  make([]search.Hit, 0, len(payload.Hits.Hits)),
	}
	for _, h := range payload.Hits.Hits {
		hit := search.Hit{ID: h.ID, Source: h.Source}
		if h.Score != nil {
			hit.Score = *h.Score
		}
		result.Hits = append(result.Hits, hit)
	}
	return result, nil
}

func (s *ElasticStore) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	res, err := s.client.Ping(s.client.Ping.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("elasticsearch ping failed: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("elasticsearch ping failed: %s", res.Status())
	}
	return nil
}

func responseError(op, index string, res *esapi.Response) error {
	body, _ := io.ReadAll(io.LimitReader(res.Body, 1<<10))
	return fmt.Errorf("elasticsearch %s %s: %s: %s", op, index, res.Status(), bytes.TrimSpace(body))
}
