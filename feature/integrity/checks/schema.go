package checks

import (
	"fmt"

	"kb-admin/core/database"
	"kb-admin/core/schema"

	"gorm.io/gorm"
)

// Table report statuses.
const (
	StatusOK      = "ok"
	StatusMissing = "missing"
	StatusError   = "error"
)

// SchemaReport is the result of comparing table schemas with the live database.
type SchemaReport struct {
	Driver  string                 `json:"driver"`
	Matched bool                   `json:"matched"`
	Tables  map[string]TableReport `json:"tables"`
	Errors  []string               `json:"errors"`
}

// TableReport describes one table.
type TableReport struct {
	MissingColumns []string `json:"missing_columns"`
	// ExtraColumns are live columns the console does not manage. They do not fail the check.
	ExtraColumns []string `json:"extra_columns"`
	Status       string   `json:"status"`
}

// CheckSchema verifies that every declared column exists in the database.
func CheckSchema(db *gorm.DB, schemas []*schema.Schema) (*SchemaReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	report := &SchemaReport{
		Driver:  db.Dialector.Name(),
		Matched: true,
		Tables:  make(map[string]TableReport, len(schemas)),
		Errors:  []string{},
	}

	for _, s := range schemas {
		tbl := TableReport{MissingColumns: []string{}, ExtraColumns: []string{}, Status: StatusOK}

		cols, err := database.GetTableColumns(db, s.Table)
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("Failed to inspect table %s: %v", s.Table, err))
			report.Matched = false
			tbl.Status = StatusError
			report.Tables[s.Table] = tbl
			continue
		}
		if len(cols) == 0 {
			tbl.MissingColumns = s.Columns()
			tbl.Status = StatusMissing
			report.Matched = false
			report.Tables[s.Table] = tbl
			continue
		}

		live := make(map[string]struct{}, len(cols))
		for _, c := range cols {
			live[c.Field] = struct{}{}
			if !s.HasField(c.Field) {
				tbl.ExtraColumns = append(tbl.ExtraColumns, c.Field)
			}
		}
		for _, name := range s.Columns() {
			if _, ok := live[name]; !ok {
				tbl.MissingColumns = append(tbl.MissingColumns, name)
			}
		}
		if len(tbl.MissingColumns) > 0 {
			tbl.Status = StatusError
			report.Matched = false
		}
		report.Tables[s.Table] = tbl
	}

	return report, nil
}
