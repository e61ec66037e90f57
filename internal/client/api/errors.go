package api

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnavailable covers failures where no response arrived.
	ErrUnavailable = errors.New("server unavailable")
	// ErrTimeout is an attempt that ran past its deadline. It also matches
	// ErrUnavailable.
	ErrTimeout = fmt.Errorf("%w: request timed out", ErrUnavailable)
	// ErrUnauthorized is matched by every 401 HTTPError.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrSessionLost means the stored session could not be recovered and
	// has been wiped.
	ErrSessionLost = errors.New("session lost")
)

// HTTPError is a non-2xx response.
type HTTPError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("request failed: %s: %s", e.Status, e.Body)
	}
	return fmt.Sprintf("request failed: %s", e.Status)
}

func (e *HTTPError) Is(target error) bool {
	return target == ErrUnauthorized && e.StatusCode == http.StatusUnauthorized
}

// RenewalError is returned by a failed token renewal. The same value is
// delivered to the owner of the renewal and to every request queued behind
// it.
type RenewalError struct {
	Err error
}

func (e *RenewalError) Error() string {
	return "token renewal failed: " + e.Err.Error()
}

func (e *RenewalError) Unwrap() error {
	return e.Err
}

func (e *RenewalError) Is(target error) bool {
	return target == ErrSessionLost
}
