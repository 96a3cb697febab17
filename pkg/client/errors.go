package client

import (
	"errors"
	"fmt"
)

// ErrSessionExpired marks an authorization failure that the silent
// refresh cycle could not recover. Callers should send the user back to
// `recyco login`.
var ErrSessionExpired = errors.New("session expired")

// HTTPError represents a non-2xx HTTP response from the API.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// APIError is a well-formed API refusal: the server answered with
// success=false and a user-facing message. The message is surfaced
// verbatim and the operation is never retried.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return "api error"
	}
	return e.Message
}

// IsStatus returns true if err (or any wrapped error) carries the given
// HTTP status code.
func IsStatus(err error, code int) bool {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == code
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == code
	}
	return false
}
