package fetcher

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrTransport marks failures reaching an upstream: network errors and
	// non-2xx responses.
	ErrTransport = errors.New("transport error")
	// ErrUserNotFound means the upstream answered but has no such user.
	ErrUserNotFound = errors.New("user not found")
	// ErrUnexpectedResponse means the upstream answered with a payload we
	// could not interpret.
	ErrUnexpectedResponse = errors.New("unexpected response")
)

// StatusError is returned for a non-2xx upstream response. Body holds at most
// the configured body limit and may be empty.
type StatusError struct {
	StatusCode int
	URL        string
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s", e.StatusCode, e.URL)
}

func (e *StatusError) Unwrap() error {
	return ErrTransport
}

// Retryable reports whether a second attempt could succeed.
func (e *StatusError) Retryable() bool {
	return e.StatusCode >= http.StatusInternalServerError || e.StatusCode == http.StatusTooManyRequests
}

// IsTransport reports whether err is a transport failure.
func IsTransport(err error) bool {
	return errors.Is(err, ErrTransport)
}
