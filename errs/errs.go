// Package errs defines the error taxonomy shared by services and handlers.
// Services wrap one of the sentinel errors with context; handlers translate
// the sentinel into an HTTP status with StatusCode.
package errs

import (
	"errors"
	"net/http"
)

var (
	// ErrValidation marks a missing or malformed required field or id.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound marks a lookup that matched no record.
	ErrNotFound = errors.New("not found")
	// ErrForbidden marks a role policy violation.
	ErrForbidden = errors.New("forbidden")
	// ErrUnauthorized marks a missing or unusable credential.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNoChange marks an update that produced no modifications. Not a
	// failure, but distinct from success with changes.
	ErrNoChange = errors.New("no change")
	// ErrStore marks an underlying datastore failure. The cause is logged
	// server-side; callers only see a generic message.
	ErrStore = errors.New("store error")
)

// StatusCode maps a taxonomy error to its HTTP status. Unknown errors are
// treated as store failures.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNoChange):
		return http.StatusNotModified
	default:
		return http.StatusInternalServerError
	}
}
