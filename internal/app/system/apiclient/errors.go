package apiclient

import (
	"errors"
	"fmt"
)

// ErrFetchFailed is the single error class surfaced to views. Every error
// returned by a Client fetch wraps it, so callers only need errors.Is.
var ErrFetchFailed = errors.New("fetch failed")

// ErrInvalidCredentials is returned by Login when the API rejects the
// login ID / password pair.
var ErrInvalidCredentials = errors.New("invalid credentials")

// FetchError describes a failed call to the remote API.
type FetchError struct {
	Endpoint string
	Status   int // HTTP status, 0 when the request never completed
	Err      error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("api %s: status %d: %v", e.Endpoint, e.Status, e.Err)
	}
	return fmt.Sprintf("api %s: %v", e.Endpoint, e.Err)
}

func (e *FetchError) Unwrap() []error {
	return []error{ErrFetchFailed, e.Err}
}

func fetchErr(endpoint string, status int, err error) error {
	return &FetchError{Endpoint: endpoint, Status: status, Err: err}
}
