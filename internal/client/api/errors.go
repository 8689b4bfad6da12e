package api

import (
	"errors"
	"fmt"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
)

// APIError is a non-2xx response from the auth server. Reason holds the
// server-supplied error text when the body contained one, otherwise "".
type APIError struct {
	Status int
	Reason string
}

func (e *APIError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("api error (status %d): %s", e.Status, e.Reason)
	}
	return fmt.Sprintf("api error (status %d)", e.Status)
}

// Reason extracts the server-supplied error text from err, or "" if err is
// not an APIError or carried no reason. Used by the session manager to decide
// between surfacing the server message verbatim and a generic fallback.
func Reason(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Reason
	}
	return ""
}
