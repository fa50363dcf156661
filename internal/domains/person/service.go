package person

import "context"

// Service is the retrieval facade for persons consumed by the HTTP layer.
type Service interface {
	GetByID(ctx context.Context, id string) (*Person, error)
	List(ctx context.Context, req ListRequest) (int64, []Person, error)
	Search(ctx context.Context, req SearchRequest) (int64, []Person, error)
}
