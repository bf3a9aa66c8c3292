package tokenkey

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrServiceRequest matches every *ServiceError.
	ErrServiceRequest   = errors.New("token keys request failed")
	ErrInvalidEndpoint  = errors.New("invalid token keys endpoint")
	ErrUnexpectedStatus = errors.New("unexpected response status")
	ErrResponseTooLarge = errors.New("token keys response too large")
)

// maxErrorBody bounds the response body kept in a ServiceError.
const maxErrorBody = 512

// ServiceError reports a failed token key request.
type ServiceError struct {
	// Endpoint is the requested URI.
	Endpoint string
	// StatusCode is the HTTP status, or 0 when no response was received.
	StatusCode int
	// Headers are the response headers, if any.
	Headers http.Header
	// Body is the beginning of the response body, if any.
	Body string
	// Err is the underlying cause.
	Err error
}

func (e *ServiceError) Error() string {
	msg := fmt.Sprintf("retrieve token keys from %s", e.Endpoint)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(": status %d", e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Body != "" {
		msg += fmt.Sprintf(": body %q", e.Body)
	}
	return msg
}

func (e *ServiceError) Unwrap() error { return e.Err }

func (e *ServiceError) Is(target error) bool { return target == ErrServiceRequest }

func truncateBody(b []byte) string {
	if len(b) > maxErrorBody {
		b = b[:maxErrorBody]
	}
	return string(b)
}
