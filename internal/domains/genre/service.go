package genre

import "context"

// Service is the retrieval facade for genres consumed by the HTTP layer.
// Errors wrap shared.ErrNotFound, shared.ErrInvalid or shared.ErrUnavailable.
type Service interface {
	GetByID(ctx context.Context, id string) (*Genre, error)
	List(ctx context.Context, req ListRequest) (int64, []Genre, error)
}
