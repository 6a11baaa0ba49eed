// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pure

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotFound matches API errors with status 404.
	ErrNotFound = errors.New("not found")

	// ErrRateLimited matches API errors with status 429.
	ErrRateLimited = errors.New("rate limited")

	// ErrUnavailable matches API errors with a 5xx status.
	ErrUnavailable = errors.New("pure unavailable")
)

// APIError is a non-2xx response from the Pure web API.
type APIError struct {
	Method     string
	Endpoint   string
	StatusCode int
	Body       string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("pure %s %s: HTTP %d: %s", e.Method, e.Endpoint, e.StatusCode, e.Body)
}

// Is lets errors.Is match on the sentinel for the status class.
func (e *APIError) Is(target error) bool {
	switch {
	case e.StatusCode == http.StatusNotFound:
		return target == ErrNotFound
	case e.StatusCode == http.StatusTooManyRequests:
		return target == ErrRateLimited
	case e.StatusCode >= 500:
		return target == ErrUnavailable
	}
	return false
}
