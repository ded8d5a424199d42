package database

import (
	"errors"
	"strings"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"

	"kb-admin/core/schema"
)

// mysqlConstraintCodes are server errors caused by the row itself rather than by
// the connection: null in a NOT NULL column, duplicate key, out of range, bad date
// and bad value, foreign key failures.
var mysqlConstraintCodes = map[uint16]bool{
	1048: true,
	1062: true,
	1264: true,
	1292: true,
	1366: true,
	1406: true,
	1451: true,
	1452: true,
}

// classifyError turns backend constraint violations into *schema.ValidationError and
// a missing row into schema.ErrRowNotFound. Anything else is returned unchanged.
func classifyError(table string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return schema.ErrRowNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// Class 22 is data exception, class 23 integrity constraint violation
		if strings.HasPrefix(pgErr.Code, "22") || strings.HasPrefix(pgErr.Code, "23") {
			return &schema.ValidationError{Table: table, Field: pgErr.ColumnName, Reason: pgErr.Message, Err: err}
		}
		return err
	}

	var myErr *mysqldriver.MySQLError
	if errors.As(err, &myErr) {
		if mysqlConstraintCodes[myErr.Number] {
			return &schema.ValidationError{Table: table, Reason: myErr.Message, Err: err}
		}
		return err
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		if liteErr.Code == sqlite3.ErrConstraint || liteErr.Code == sqlite3.ErrMismatch {
			return &schema.ValidationError{Table: table, Field: sqliteColumn(table, liteErr.Error()), Reason: liteErr.Error(), Err: err}
		}
		return err
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, gorm.ErrForeignKeyViolated) || errors.Is(err, gorm.ErrCheckConstraintViolated) {
		return &schema.ValidationError{Table: table, Reason: err.Error(), Err: err}
	}
	return err
}

// sqliteColumn extracts the column from messages such as
// "NOT NULL constraint failed: reports.title".
func sqliteColumn(table, msg string) string {
	_, after, ok := strings.Cut(msg, "failed: ")
	if !ok {
		return ""
	}
	fields := strings.Fields(after)
	if len(fields) == 0 {
		return ""
	}
	return strings.TrimSuffix(strings.TrimPrefix(fields[0], table+"."), ",")
}
