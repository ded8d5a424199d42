package reconcile

import "fmt"

// MutationError reports a create, update or delete request that failed for a reason
// other than validation.
type MutationError struct {
	Op    ActionType
	Table string
	ID    string
	Err   error
}

func (e *MutationError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s on %s failed: %v", e.Op, e.Table, e.Err)
	}
	return fmt.Sprintf("%s %s/%s failed: %v", e.Op, e.Table, e.ID, e.Err)
}

func (e *MutationError) Unwrap() error {
	return e.Err
}

// ConflictError reports a guarded update whose row changed after the snapshot.
type ConflictError struct {
	Table string
	ID    string
	Err   error
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("update %s/%s rejected: row was modified by someone else", e.Table, e.ID)
}

func (e *ConflictError) Unwrap() error {
	return e.Err
}
