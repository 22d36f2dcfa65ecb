package transport

import (
	"errors"
	"fmt"
)

var (
	// ErrNotConfigured indicates the API token or endpoint is unset.
	ErrNotConfigured = errors.New("api token or url not configured")
	// ErrGatewayTimeout indicates an HTTP 504. The write may or may not
	// have landed server-side; callers reconcile rather than retry.
	ErrGatewayTimeout = errors.New("gateway timeout (504)")
)

// APIError is a deterministic API failure: a non-504 HTTP error status, a
// GraphQL-level errors array, or a response missing its data field.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api error: %s", e.Message)
}
