package schema

import (
	"errors"
	"fmt"
)

var (
	// ErrRowNotFound is returned by the table store when no row has the id.
	ErrRowNotFound = errors.New("row not found")
	// ErrStaleRow is returned by the table store when a guarded update matched the
	// id but not the guard values.
	ErrStaleRow = errors.New("row changed since it was fetched")
)

// ValidationError reports a row that fails the table's constraints, either
// locally before transmission or as a constraint violation from the backend.
type ValidationError struct {
	Table  string
	Field  string
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed on %s.%s: %s", e.Table, e.Field, e.Reason)
	}
	return fmt.Sprintf("validation failed on %s: %s", e.Table, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
