package database

import (
	"errors"
	"fmt"
	"testing"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"kb-admin/core/schema"
)

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantField string
		invalid   bool
	}{
		{
			name:      "PostgresNotNull",
			err:       &pgconn.PgError{Code: "23502", Message: "null value in column", ColumnName: "title"},
			wantField: "title",
			invalid:   true,
		},
		{
			name:    "PostgresBadDate",
			err:     fmt.Errorf("wrapped: %w", &pgconn.PgError{Code: "22007", Message: "invalid input syntax for type timestamp"}),
			invalid: true,
		},
		{
			name: "PostgresConnectionFailure",
			err:  &pgconn.PgError{Code: "08006", Message: "connection failure"},
		},
		{
			name:    "MySQLDuplicate",
			err:     &mysqldriver.MySQLError{Number: 1062, Message: "Duplicate entry"},
			invalid: true,
		},
		{
			name: "MySQLAccessDenied",
			err:  &mysqldriver.MySQLError{Number: 1045, Message: "Access denied"},
		},
		{
			name:      "SQLiteNotNull",
			err:       sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintNotNull},
			wantField: "",
			invalid:   true,
		},
		{
			name:    "GormDuplicatedKey",
			err:     gorm.ErrDuplicatedKey,
			invalid: true,
		},
		{
			name: "Other",
			err:  errors.New("boom"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyError("reports", tt.err)
			var verr *schema.ValidationError
			assert.Equal(t, tt.invalid, errors.As(got, &verr))
			if tt.invalid {
				assert.Equal(t, tt.wantField, verr.Field)
				assert.ErrorIs(t, got, tt.err)
			} else {
				assert.Equal(t, tt.err, got)
			}
		})
	}

	assert.ErrorIs(t, classifyError("reports", gorm.ErrRecordNotFound), schema.ErrRowNotFound)
	assert.NoError(t, classifyError("reports", nil))
}

func TestSQLiteColumn(t *testing.T) {
	assert.Equal(t, "title", sqliteColumn("reports", "NOT NULL constraint failed: reports.title"))
	assert.Equal(t, "a", sqliteColumn("t", "UNIQUE constraint failed: t.a, t.b"))
	assert.Equal(t, "", sqliteColumn("t", "constraint failed"))
	assert.Equal(t, "", sqliteColumn("t", "constraint failed: "))
}
