package query

import "fmt"

// FetchError reports a failed read. The caller receives an empty result alongside it.
type FetchError struct {
	Table string
	Op    string
	Err   error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("error fetching %s from %s: %v", e.Op, e.Table, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
