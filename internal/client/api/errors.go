package api

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
)

// APIError is a non-2xx answer from the backend.
type APIError struct {
	StatusCode int
	// Body is the raw response text, or a generic message when it was empty.
	Body string
}

func (e *APIError) Error() string {
	return e.Body
}

// Is lets callers match the status class with errors.Is.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
	case ErrUnavailable:
		return e.StatusCode >= http.StatusInternalServerError
	}
	return false
}

func newAPIError(status int, body []byte, fallback string) *APIError {
	msg := string(body)
	if msg == "" {
		msg = fallback
	}
	return &APIError{StatusCode: status, Body: msg}
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, ErrUnavailable, err)
}
