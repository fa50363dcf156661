package shared

import (
	"errors"
	"net/http"
)

// Error taxonomy of the catalog core. Domain errors wrap one of these so
// callers classify with errors.Is.
var (
	// ErrNotFound: entity absent in the document store.
	ErrNotFound = errors.New("not found")
	// ErrInvalid: caller-supplied parameter violates a precondition.
	// Raised before any store or cache access.
	ErrInvalid = errors.New("invalid request")
	// ErrUnavailable: store unreachable, transport error, or a stored
	// document that cannot be mapped.
	ErrUnavailable = errors.New("service unavailable")
)

// HTTPStatus converts an error to an HTTP status code
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalid):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// ErrorCode converts an error to an API error code
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "NOT_FOUND"
	case errors.Is(err, ErrInvalid):
		return "BAD_REQUEST"
	default:
		return "SERVICE_UNAVAILABLE"
	}
}
