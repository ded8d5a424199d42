// Package reconcile turns a user's edits to a displayed page of a table into the
// minimal set of create, update and delete requests against the table store.
//
// A reconciliation pass compares two sequences of records:
//
//   - the snapshot, the page as it was last fetched
//   - the edited view, the same page after the user's changes
//
// Identifiers are compared as canonical strings. An identifier present in the
// snapshot but missing from the edited view is deleted, a record with no identifier
// is created, and a record present in both is updated only when at least one editable
// field differs. Identifiers and server-managed timestamps are never written.
//
// # Phases
//
// Diff is pure and builds a ReconcilePlan. Apply executes the plan in a fixed order,
// deletions then creations then updates, one request per action. A failing request
// is recorded as a failed Outcome and never stops the pass.
//
// # Usage Example
//
//	engine := reconcile.NewEngine(store, layer, reconcile.Options{}, logger)
//	result, err := engine.Reconcile(ctx, schema, cursor, snapshot, edited)
//	// result.Outcomes holds one entry per action, result.Page the fresh snapshot.
//
// Engine.Reconcile invalidates the table cache once when the pass issued at least one
// request and then re-fetches the current page exactly once.
package reconcile
