package roster

import "errors"

var (
	// ErrNotConfigured is returned when the Canvas URL or token is missing.
	ErrNotConfigured = errors.New("canvas is not configured")
	// ErrUnauthorized is returned for 401 and 403 responses.
	ErrUnauthorized = errors.New("canvas rejected the token")
	// ErrNotFound is returned for 404 responses.
	ErrNotFound = errors.New("canvas resource not found")
	// ErrUnavailable is returned when Canvas cannot be reached or answers 5xx.
	ErrUnavailable = errors.New("canvas unavailable")
	// ErrTimeout is returned when a request exceeds its deadline.
	ErrTimeout = errors.New("canvas request timed out")
)
