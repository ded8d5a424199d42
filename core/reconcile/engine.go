package reconcile

import (
	"context"
	"errors"

	"kb-admin/core/logger"
	"kb-admin/core/query"
	"kb-admin/core/schema"

	"go.uber.org/zap"
)

// Writer is the mutating half of the table store.
type Writer interface {
	// Insert creates a row and returns it as stored.
	Insert(ctx context.Context, table string, row map[string]any) (map[string]any, error)
	// Update writes the given columns of a row. When guard is non-empty the row
	// must still hold those values, otherwise schema.ErrStaleRow is returned.
	Update(ctx context.Context, table, id string, row, guard map[string]any) (map[string]any, error)
	// Delete removes a row by id.
	Delete(ctx context.Context, table, id string) error
}

// Refresher is the part of the query layer a pass needs after mutating.
type Refresher interface {
	Invalidate(table string) uint64
	Version(table string) uint64
	Fetch(ctx context.Context, s *schema.Schema, cur query.Cursor) (*query.Page, error)
}

// Apply executes the plan's actions in order, one request each. Failures are
// recorded per action and never stop the remaining actions.
func Apply(ctx context.Context, w Writer, plan *ReconcilePlan) []Outcome {
	outcomes := make([]Outcome, 0, len(plan.Actions))
	for _, action := range plan.Actions {
		outcome := Outcome{
			Type:   action.Type,
			Key:    action.Key,
			Row:    action.Row,
			Status: StatusApplied,
		}

		var (
			row map[string]any
			err error
		)
		switch action.Type {
		case ActionDelete:
			err = w.Delete(ctx, plan.Table, action.Key)
		case ActionCreate:
			row, err = w.Insert(ctx, plan.Table, action.Payload)
		case ActionUpdate:
			row, err = w.Update(ctx, plan.Table, action.Key, action.Payload, action.Guard)
		}

		if err != nil {
			err = classify(plan.Table, action, err)
			outcome.Status = StatusFailed
			outcome.Reason = err.Error()
			outcome.Err = err
		} else {
			outcome.Result = row
		}
		outcomes = append(outcomes, outcome)
	}
	return outcomes
}

// classify wraps a store error into the reconcile taxonomy. Validation errors pass
// through untouched.
func classify(table string, action Action, err error) error {
	var verr *schema.ValidationError
	if errors.As(err, &verr) {
		return err
	}
	if errors.Is(err, schema.ErrStaleRow) {
		return &ConflictError{Table: table, ID: action.Key, Err: err}
	}
	return &MutationError{Op: action.Type, Table: table, ID: action.Key, Err: err}
}

// Engine runs full reconciliation passes against a table store and a query layer.
type Engine struct {
	writer Writer
	pages  Refresher
	opts   Options
	logger *zap.Logger
}

// NewEngine creates a reconcile engine.
func NewEngine(w Writer, pages Refresher, opts Options, logger *zap.Logger) *Engine {
	return &Engine{writer: w, pages: pages, opts: opts, logger: logger}
}

// Options returns the options the engine runs with.
func (e *Engine) Options() Options {
	return e.opts
}

// WithOptions returns a copy of the engine that runs with opts.
func (e *Engine) WithOptions(opts Options) *Engine {
	c := *e
	c.opts = opts
	return &c
}

// Plan builds the plan for a pass without issuing anything.
func (e *Engine) Plan(s *schema.Schema, prior, edited []schema.Record) *ReconcilePlan {
	return Diff(s, prior, edited, e.opts)
}

// Reconcile runs one pass: it diffs, applies every action, invalidates the table's
// cached reads once and re-fetches the page under cur. The result is never nil.
// The returned error is the re-fetch failure, if any; per-action failures are
// reported in the outcomes.
func (e *Engine) Reconcile(ctx context.Context, s *schema.Schema, cur query.Cursor, prior, edited []schema.Record) (*ReconcileResult, error) {
	log := logger.ForTable(e.logger, s.Table)
	plan := e.Plan(s, prior, edited)
	result := &ReconcileResult{Plan: plan}

	if e.opts.DryRun {
		result.Outcomes = plan.Rejected
		result.Failed = len(plan.Rejected)
		result.Version = e.pages.Version(s.Table)
		return result, nil
	}

	outcomes := Apply(ctx, e.writer, plan)
	outcomes = append(outcomes, plan.Rejected...)
	for _, o := range outcomes {
		if o.Status == StatusApplied {
			result.Applied++
			continue
		}
		result.Failed++
		log.Warn("Reconcile action failed",
			zap.String("action", string(o.Type)),
			zap.String("id", o.Key),
			zap.Int("row", o.Row),
			zap.Error(o.Err),
		)
	}
	result.Outcomes = outcomes

	if !plan.Empty() || e.opts.BumpOnNoop {
		result.Version = e.pages.Invalidate(s.Table)
	} else {
		result.Version = e.pages.Version(s.Table)
	}

	log.Info("Reconcile pass complete",
		zap.Int("deletes", plan.Summary.Deletes),
		zap.Int("creates", plan.Summary.Creates),
		zap.Int("updates", plan.Summary.Updates),
		zap.Int("applied", result.Applied),
		zap.Int("failed", result.Failed),
		zap.Uint64("version", result.Version),
	)

	page, err := e.pages.Fetch(ctx, s, cur)
	result.Page = page
	if err != nil {
		log.Error("Refresh after reconcile failed", zap.Error(err))
		return result, err
	}
	return result, nil
}
