package Client

import (
	"errors"
	"fmt"
)

// ErrSessionExpired is returned by every call made after the server rejected
// our token. The session is cleared exactly once; callers should send the
// user back to login.
var ErrSessionExpired = errors.New("session expired")

// ErrNotAuthenticated is returned when a call requiring a session is made
// without one.
var ErrNotAuthenticated = errors.New("not authenticated")

// APIError is a response the server produced on purpose: validation failures,
// lifecycle violations, missing records. Transport problems are returned as
// plain wrapped errors instead.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err is a 404 from the server.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == 404
}

// IsValidation reports whether err is a 400 from the server, which covers
// both field validation and illegal lifecycle transitions.
func IsValidation(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == 400
}
