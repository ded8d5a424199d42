// Package database handles database connections, migrations, schema inspection and
// the generic table store the query layer and reconciler run against.
//
// # Connect
//
// Connect opens a gorm connection for one of three drivers:
//
//   - postgres: the hosted (Supabase) backend, through pgx
//   - mysql: a self-hosted alternative
//   - sqlite: local development and tests, usually ":memory:"
//
// # Table Store
//
// TableStore reads and writes rows as column maps, so a single store serves every
// typed table. Backend constraint violations are reported as *schema.ValidationError
// and missing rows as schema.ErrRowNotFound, whatever the driver.
//
// # Migrations
//
// Migrate applies the goose migrations embedded for the connection's dialect.
//
// # Schema Inspection
//
// GetTableColumns lists the live columns of a table. The integrity check compares
// them with the typed table schemas.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//	store := database.NewTableStore(db, models.All()...)
//	rows, err := store.Select(ctx, "reports", nil, query.Sort{Field: "uploaded_time", Desc: true}, 0, 25)
package database
