package film

import "context"

// Service is the retrieval facade for films consumed by the HTTP layer.
// Errors wrap shared.ErrNotFound, shared.ErrInvalid or shared.ErrUnavailable.
type Service interface {
	GetByID(ctx context.Context, id string) (*Film, error)
	List(ctx context.Context, req ListRequest) (int64, []Film, error)
	Search(ctx context.Context, req SearchRequest) (int64, []Film, error)
}
