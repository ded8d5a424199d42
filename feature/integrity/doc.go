// Package integrity provides deployment health checks.
//
// # Checks Provided
//
//   - Schema: every column the console manages exists in the connected database
//     (sqlite PRAGMA, MySQL SHOW COLUMNS, postgres information_schema).
//   - Storage: the bucket exists and each table has its upload folder
//     ("<base_path>/<table>/"). Missing folders can be created.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/schema : Runs the schema check.
//   - GET /integrity/storage : Runs the storage check (supports ?fix=true).
package integrity
