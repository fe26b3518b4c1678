// Package apperr holds the error taxonomy shared by the clients, the search
// service and the HTTP layer.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrConfigurationMissing blocks a search from starting.
	ErrConfigurationMissing = errors.New("configuration missing")

	// ErrInvalidRequest wraps request validation failures.
	ErrInvalidRequest = errors.New("invalid search request")

	// ErrNoQualifyingResults is the "nothing found" outcome. It is reported to
	// the user as a result, not as a failure.
	ErrNoQualifyingResults = errors.New("no open venues matched the search")

	// ErrSessionNotFound is returned for unknown or expired sessions.
	ErrSessionNotFound = errors.New("search session not found")

	// ErrUnexpected marks anything the search could not anticipate.
	ErrUnexpected = errors.New("unexpected system error")
)

// SourceError reports that an upstream source (directory, places, model)
// could not serve a call.
type SourceError struct {
	Source string
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("%s unavailable: %v", e.Source, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// Source wraps err as a SourceError for the named source.
func Source(source string, err error) error {
	if err == nil {
		return nil
	}
	return &SourceError{Source: source, Err: err}
}

// IsSourceUnavailable reports whether err came from an upstream source.
func IsSourceUnavailable(err error) bool {
	var se *SourceError
	return errors.As(err, &se)
}
