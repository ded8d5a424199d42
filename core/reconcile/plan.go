package reconcile

import (
	"errors"
	"fmt"
	"strings"

	"kb-admin/core/schema"
)

// Diff compares the snapshot against the edited view and returns the plan of
// requests needed to make the table match the edited view. It issues nothing.
func Diff(s *schema.Schema, prior, edited []schema.Record, opts Options) *ReconcilePlan {
	plan := &ReconcilePlan{
		Table:    s.Table,
		Actions:  []Action{},
		Rejected: []Outcome{},
	}

	priorByID := make(map[string]schema.Record, len(prior))
	for _, rec := range prior {
		if rec.IsNew() {
			continue
		}
		if _, dup := priorByID[rec.ID]; !dup {
			priorByID[rec.ID] = rec
		}
	}

	editedIDs := make(map[string]struct{}, len(edited))
	var creates, updates []Action

	for row, rec := range edited {
		if rec.IsNew() {
			action, err := planCreate(s, row, rec)
			if err != nil {
				plan.reject(ActionCreate, "", row, err)
				continue
			}
			creates = append(creates, action)
			continue
		}

		if _, dup := editedIDs[rec.ID]; dup {
			plan.reject(ActionUpdate, rec.ID, row, &schema.ValidationError{
				Table: s.Table, Field: schema.FieldID, Reason: fmt.Sprintf("id %s appears more than once", rec.ID),
			})
			continue
		}
		editedIDs[rec.ID] = struct{}{}

		old, known := priorByID[rec.ID]
		if !known {
			plan.reject(ActionUpdate, rec.ID, row, &schema.ValidationError{
				Table: s.Table, Field: schema.FieldID, Reason: fmt.Sprintf("id %s is not part of the loaded page", rec.ID),
			})
			continue
		}

		action, changed, err := planUpdate(s, row, old, rec, opts)
		if err != nil {
			plan.reject(ActionUpdate, rec.ID, row, err)
			continue
		}
		if !changed {
			plan.Summary.Unchanged++
			continue
		}
		updates = append(updates, action)
	}

	deleted := make(map[string]struct{})
	for id := range priorByID {
		if _, kept := editedIDs[id]; !kept {
			deleted[id] = struct{}{}
		}
	}
	for _, id := range schema.SortedKeys(deleted) {
		plan.Actions = append(plan.Actions, Action{
			Type:   ActionDelete,
			Key:    id,
			Row:    -1,
			Reason: "removed from the edited view",
		})
	}
	plan.Actions = append(plan.Actions, creates...)
	plan.Actions = append(plan.Actions, updates...)

	plan.Summary.Deletes = len(deleted)
	plan.Summary.Creates = len(creates)
	plan.Summary.Updates = len(updates)
	plan.Summary.Rejected = len(plan.Rejected)
	return plan
}

func planCreate(s *schema.Schema, row int, rec schema.Record) (Action, error) {
	payload, err := s.Payload(rec)
	if err != nil {
		return Action{}, err
	}
	return Action{
		Type:    ActionCreate,
		Row:     row,
		Payload: payload,
		Reason:  "new row",
	}, nil
}

func planUpdate(s *schema.Schema, row int, prior, edited schema.Record, opts Options) (Action, bool, error) {
	changed, err := s.Diff(prior, edited)
	if err != nil {
		return Action{}, false, err
	}
	if len(changed) == 0 {
		return Action{}, false, nil
	}

	// Only changed fields are written or validated.
	touched := schema.Record{ID: edited.ID, Values: make(map[string]any, len(changed))}
	for _, name := range changed {
		touched.Values[name] = edited.Values[name]
	}
	payload, err := s.Payload(touched)
	if err != nil {
		return Action{}, false, err
	}

	action := Action{
		Type:    ActionUpdate,
		Key:     edited.ID,
		Row:     row,
		Payload: payload,
		Changed: changed,
		Reason:  "changed: " + strings.Join(changed, ", "),
	}
	if opts.OptimisticLocking {
		action.Guard = guardFor(s, prior)
	}
	return action, true, nil
}

// guardFor returns the snapshot's last_updated_time, normalized, when the table
// carries one.
func guardFor(s *schema.Schema, prior schema.Record) map[string]any {
	f, ok := s.Field(schema.FieldLastUpdatedTime)
	if !ok || !prior.Has(f.Name) {
		return nil
	}
	v, err := f.Normalize(prior.Get(f.Name))
	if err != nil || v == nil {
		return nil
	}
	return map[string]any{f.Name: v}
}

func (p *ReconcilePlan) reject(op ActionType, key string, row int, err error) {
	p.Rejected = append(p.Rejected, Outcome{
		Type:   op,
		Key:    key,
		Row:    row,
		Status: StatusFailed,
		Reason: err.Error(),
		Err:    err,
	})
}

// Describe renders a plan as human-readable lines, one per action and rejection.
func Describe(p *ReconcilePlan) []string {
	lines := make([]string, 0, len(p.Actions)+len(p.Rejected))
	for _, a := range p.Actions {
		switch a.Type {
		case ActionDelete:
			lines = append(lines, fmt.Sprintf("delete %s", a.Key))
		case ActionCreate:
			lines = append(lines, fmt.Sprintf("create row %d %v", a.Row, a.Payload))
		case ActionUpdate:
			lines = append(lines, fmt.Sprintf("update %s (%s)", a.Key, strings.Join(a.Changed, ", ")))
		}
	}
	for _, r := range p.Rejected {
		var verr *schema.ValidationError
		kind := "error"
		if errors.As(r.Err, &verr) {
			kind = "invalid"
		}
		lines = append(lines, fmt.Sprintf("%s row %d: %s", kind, r.Row, r.Reason))
	}
	return lines
}
