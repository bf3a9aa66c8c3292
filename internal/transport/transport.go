// Package transport performs the single outbound GET behind a token key request.
//
// Implementations return the raw response; interpreting the status code is left
// to the caller.
package transport

import (
	"context"
	"errors"
	"net/http"
)

// ErrBodyTooLarge is returned when a response body exceeds the configured limit.
var ErrBodyTooLarge = errors.New("response body exceeds limit")

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Doer issues GET requests.
type Doer interface {
	// Get sends a GET to rawURL with exactly the given headers.
	Get(ctx context.Context, rawURL string, header http.Header) (*Response, error)

	// Name identifies the transport in logs and metrics.
	Name() string
}
