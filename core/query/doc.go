// Package query is the read side of the admin console: it turns a page cursor into a
// sorted, paginated select against one table and counts the table's rows.
//
// Page fetches and counts are cached independently per table. The cache carries a
// version token per table; Invalidate drops every cached page and count of the table
// and bumps the token, which forces the next read to hit the backend without changing
// the cursor.
//
// Read failures never escape as panics. Fetch always returns a usable Page (empty
// on failure) together with a *FetchError describing what went wrong.
//
// # Usage
//
//	layer := query.NewLayer(store, cfg.Query, logger)
//	page, err := layer.Fetch(ctx, models.Reports, query.Cursor{Page: 2, Size: 25})
//	if err != nil {
//	    // page.Records is empty, page.Error carries the message
//	}
package query
