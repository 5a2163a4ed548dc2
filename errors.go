package iconik

import (
	"errors"
	"fmt"
)

// Common errors returned by the iconik client.
var (
	// ErrInvalidConfig indicates invalid client configuration.
	ErrInvalidConfig = errors.New("invalid iconik configuration")

	// ErrInvalidArgument is returned when an argument is rejected locally,
	// before any HTTP request is made.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidBody is returned when a request body is neither a typed
	// payload, a map, nor pre-serialised JSON.
	ErrInvalidBody = errors.New("invalid request body")

	// ErrInvalidResponse is returned when a 2xx response body is not valid
	// JSON or fails payload validation.
	ErrInvalidResponse = errors.New("invalid response body")

	// ErrRequestFailed is returned when the transport exhausted its retries
	// without reaching the server.
	ErrRequestFailed = errors.New("request failed after retries")

	// ErrPaginationExhausted is returned when a paginated traversal failed
	// on a single page more than the configured number of retries.
	ErrPaginationExhausted = errors.New("pagination retries exhausted")
)

// APIError describes a non-2xx response for callers that prefer an error
// value over inspecting the raw response.
type APIError struct {
	StatusCode int
	Body       string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("iconik API error: status %d: %s", e.StatusCode, e.Body)
}

// IsNotFound reports whether the error is a 404.
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == 404
}

// IsUnauthorized reports whether the error indicates an auth failure.
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == 401 || e.StatusCode == 403
}

// IsConflict reports whether the error is a 409.
func (e *APIError) IsConflict() bool {
	return e.StatusCode == 409
}

// IsExpired reports whether the error is a 419 (expired token).
func (e *APIError) IsExpired() bool {
	return e.StatusCode == 419
}

// IsServerError reports whether the error is a 5xx.
func (e *APIError) IsServerError() bool {
	return e.StatusCode >= 500
}
