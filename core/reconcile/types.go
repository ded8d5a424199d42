package reconcile

import (
	"kb-admin/core/query"
)

// ActionType represents the type of mutation action.
type ActionType string

const (
	// ActionDelete deletes a row by id.
	ActionDelete ActionType = "delete"
	// ActionCreate inserts a new row.
	ActionCreate ActionType = "create"
	// ActionUpdate writes changed fields of an existing row.
	ActionUpdate ActionType = "update"
)

// Action represents a planned mutation request.
type Action struct {
	// Type specifies the request to issue.
	Type ActionType `json:"type"`

	// Key is the row id. Empty for creations.
	Key string `json:"key,omitempty"`

	// Row is the position of the record in the edited view, or -1 for deletions.
	Row int `json:"row"`

	// Payload is the body sent with creations and updates, in wire form.
	Payload map[string]any `json:"payload,omitempty"`

	// Changed lists the fields that differ from the snapshot. Updates only.
	Changed []string `json:"changed,omitempty"`

	// Guard holds column values the row must still carry for the update to apply.
	// Only set when optimistic locking is enabled.
	Guard map[string]any `json:"guard,omitempty"`

	// Reason explains why this action is needed.
	Reason string `json:"reason"`
}

// Status is the terminal state of one action.
type Status string

const (
	StatusApplied Status = "applied"
	StatusFailed  Status = "failed"
)

// Outcome records how one action, or one rejected row, ended.
type Outcome struct {
	Type   ActionType     `json:"type"`
	Key    string         `json:"key,omitempty"`
	Row    int            `json:"row"`
	Status Status         `json:"status"`
	Reason string         `json:"reason,omitempty"`
	Result map[string]any `json:"result,omitempty"`

	// Err is the underlying error of a failed outcome.
	Err error `json:"-"`
}

// ReconcilePlan contains the actions derived from a snapshot and an edited view.
type ReconcilePlan struct {
	// Table is the backend table the plan targets.
	Table string `json:"table"`

	// Actions are ordered deletions, then creations, then updates.
	Actions []Action `json:"actions"`

	// Rejected holds rows that could not be turned into a request, such as rows
	// failing validation or carrying an id the snapshot does not contain.
	Rejected []Outcome `json:"rejected"`

	// Summary provides aggregate counts.
	Summary PlanSummary `json:"summary"`
}

// PlanSummary provides aggregate statistics for a reconcile plan.
type PlanSummary struct {
	Deletes   int `json:"deletes"`
	Creates   int `json:"creates"`
	Updates   int `json:"updates"`
	Unchanged int `json:"unchanged"`
	Rejected  int `json:"rejected"`
}

// Empty reports whether the plan issues no request.
func (p *ReconcilePlan) Empty() bool {
	return len(p.Actions) == 0
}

// ReconcileResult is the output of a full reconciliation pass.
type ReconcileResult struct {
	Plan *ReconcilePlan `json:"plan"`

	// Outcomes holds one entry per action in execution order, followed by the
	// rejected rows.
	Outcomes []Outcome `json:"outcomes"`

	Applied int `json:"applied"`
	Failed  int `json:"failed"`

	// Version is the cache-version token after the pass.
	Version uint64 `json:"version"`

	// Page is the fresh snapshot that replaces the prior one.
	Page *query.Page `json:"page"`
}

// Options controls reconcile behavior.
type Options struct {
	// DryRun builds the plan without issuing any request.
	DryRun bool

	// OptimisticLocking guards updates with the snapshot's last_updated_time.
	OptimisticLocking bool

	// BumpOnNoop invalidates the table cache even when the pass issued no request.
	BumpOnNoop bool
}
