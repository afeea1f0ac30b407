package checkout

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions.
var (
	// ErrNoEndpoint is returned when the endpoint URL is missing.
	ErrNoEndpoint = errors.New("checkout: endpoint URL required")
)

// APIError represents a non-2xx response from the billing endpoint.
type APIError struct {
	// StatusCode is the HTTP status code.
	StatusCode int

	// Body is the (truncated) response body, for logs.
	Body string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("checkout: endpoint returned %d: %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("checkout: endpoint returned %d", e.StatusCode)
}

// IsServerError returns true if this is a server-side error (HTTP 5xx).
func (e *APIError) IsServerError() bool {
	return e.StatusCode >= 500 && e.StatusCode < 600
}
