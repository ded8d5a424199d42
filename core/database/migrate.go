package database

import (
	"context"
	"fmt"
	"sync"

	"kb-admin/core/database/migrations"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"
)

// goose keeps its dialect and filesystem in package state
var gooseMu sync.Mutex

// gooseDialect maps a gorm dialector name to the goose dialect and migration folder.
func gooseDialect(name string) (string, error) {
	switch name {
	case DriverPostgres:
		return "postgres", nil
	case DriverMySQL:
		return "mysql", nil
	case DriverSQLite:
		return "sqlite3", nil
	}
	return "", fmt.Errorf("no migrations for dialect %q", name)
}

// Migrate applies every pending embedded migration for the connection's dialect and
// returns the resulting schema version.
func Migrate(ctx context.Context, db *gorm.DB) (int64, error) {
	dialect, err := gooseDialect(db.Dialector.Name())
	if err != nil {
		return 0, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return 0, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrations.Migrations)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect(dialect); err != nil {
		return 0, fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, sqlDB, dialect); err != nil {
		return 0, fmt.Errorf("failed to apply migrations: %w", err)
	}

	version, err := goose.GetDBVersionContext(ctx, sqlDB)
	if err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, nil
}
