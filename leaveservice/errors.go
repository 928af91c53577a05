package leaveservice

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrUnavailable is returned when the connection itself fails.
	ErrUnavailable = errors.New("cannot connect to leave service")

	// ErrNotFound is returned when the service reports a missing record.
	ErrNotFound = errors.New("not found")
)

// APIError is a failure reported by the service itself: either a
// {success:false, error:...} envelope or a bare non-2xx status.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("leave service: %s (status %d)", e.Message, e.StatusCode)
	}
	return fmt.Sprintf("leave service: status %d", e.StatusCode)
}

// Is lets errors.Is(err, ErrNotFound) match 404 responses.
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == 404
}
