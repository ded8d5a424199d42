// Package migrations embeds the SQL migrations for each supported dialect.
package migrations

import "embed"

//go:embed postgres/*.sql mysql/*.sql sqlite3/*.sql
var Migrations embed.FS
