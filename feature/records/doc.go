// Package records exposes the knowledge-base tables over HTTP.
//
// Reads go through the cached query layer, saves through the reconcile engine and
// document uploads through the upload service. The set of tables is fixed by the
// Registry built from the schemas in the models package.
//
// # HTTP Endpoints
//
//   - GET  /tables : List managed tables.
//   - GET  /tables/:table/schema : Typed schema of a table.
//   - GET  /tables/:table/records?page&size&sort&dir : One page of records.
//   - GET  /tables/:table/choices : "<id> - <label>" entries for the record picker.
//   - POST /tables/:table/reconcile : Save an edited page; returns outcomes and the refreshed page.
//   - POST /tables/:table/records/:id/upload : Upload a document (multipart field "file").
package records
