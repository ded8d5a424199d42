package database

import (
	"context"
	"fmt"
	"maps"
	"strconv"
	"time"

	"kb-admin/core/query"
	"kb-admin/core/schema"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TableStore is the gorm-backed table store. It reads and writes rows as column
// maps so one store serves every typed table.
type TableStore struct {
	db *gorm.DB
	// temporal holds the date and timestamp columns per table.
	temporal map[string]map[string]bool
}

// NewTableStore creates a table store over an open connection. Date and timestamp
// columns of the given schemas are bound as time.Time on writes, whatever textual
// form the payload carries them in.
func NewTableStore(db *gorm.DB, schemas ...*schema.Schema) *TableStore {
	s := &TableStore{db: db, temporal: make(map[string]map[string]bool)}
	for _, sc := range schemas {
		cols := make(map[string]bool)
		for _, f := range sc.Fields {
			if f.Type == schema.TypeDate || f.Type == schema.TypeTimestamp {
				cols[f.Name] = true
			}
		}
		s.temporal[sc.Table] = cols
	}
	return s
}

// bind copies a write payload, parsing temporal columns into time.Time. Drivers
// disagree on which textual offsets they accept (sqlite reads "+0000" back as a
// zero time, mysql rejects it), but all of them round-trip a bound time.Time.
func (s *TableStore) bind(table string, row map[string]any) (map[string]any, error) {
	values := maps.Clone(row)
	if values == nil {
		values = map[string]any{}
	}
	for col := range s.temporal[table] {
		str, ok := values[col].(string)
		if !ok {
			continue
		}
		if str == "" {
			values[col] = nil
			continue
		}
		t, err := schema.ParseTime(str)
		if err != nil {
			return nil, &schema.ValidationError{Table: table, Field: col, Reason: err.Error(), Err: err}
		}
		values[col] = t.UTC().Truncate(time.Microsecond)
	}
	return values, nil
}

// DB returns the underlying connection.
func (s *TableStore) DB() *gorm.DB {
	return s.db
}

// Count returns the number of rows in the table.
func (s *TableStore) Count(ctx context.Context, table string) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Table(table).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return n, nil
}

// Select returns up to limit rows starting at offset. Rows are ordered by the sort
// column, then by id, so pages never overlap when sort values tie.
func (s *TableStore) Select(ctx context.Context, table string, fields []string, sort query.Sort, offset, limit int) ([]map[string]any, error) {
	q := s.db.WithContext(ctx).Table(table)
	if len(fields) > 0 {
		q = q.Select(fields)
	}
	if sort.Field != "" {
		q = q.Order(clause.OrderByColumn{Column: clause.Column{Name: sort.Field}, Desc: sort.Desc})
	}
	if sort.Field != schema.FieldID {
		q = q.Order(clause.OrderByColumn{Column: clause.Column{Name: schema.FieldID}, Desc: sort.Desc})
	}

	rows := []map[string]any{}
	if err := q.Offset(offset).Limit(limit).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("select %s: %w", table, err)
	}
	return rows, nil
}

// Insert creates a row and returns it as stored, including the id the backend
// assigned.
func (s *TableStore) Insert(ctx context.Context, table string, row map[string]any) (map[string]any, error) {
	values, err := s.bind(table, row)
	if err != nil {
		return nil, fmt.Errorf("insert into %s: %w", table, err)
	}
	var created map[string]any
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Table(table).Clauses(clause.Returning{}).Create(values).Error; err != nil {
			return err
		}
		if id, ok := values[schema.FieldID]; ok && id != nil {
			created = values
			return nil
		}

		// Backends without RETURNING report the id through the session
		lastID := "SELECT LAST_INSERT_ID()"
		if tx.Dialector.Name() == DriverSQLite {
			lastID = "SELECT last_insert_rowid()"
		}
		var id int64
		if err := tx.Raw(lastID).Scan(&id).Error; err != nil {
			return err
		}
		created = map[string]any{}
		return tx.Table(table).Where("id = ?", id).Take(&created).Error
	})
	if err != nil {
		return nil, fmt.Errorf("insert into %s: %w", table, classifyError(table, err))
	}
	return created, nil
}

// Update writes the given columns of the row and returns it as stored. A non-empty
// guard is checked against the current row first, inside the same transaction.
func (s *TableStore) Update(ctx context.Context, table, id string, row, guard map[string]any) (map[string]any, error) {
	values, err := s.bind(table, row)
	if err != nil {
		return nil, fmt.Errorf("update %s/%s: %w", table, id, err)
	}
	var updated map[string]any
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(guard) > 0 {
			current := map[string]any{}
			q := tx.Table(table).Where("id = ?", idArg(id))
			if tx.Dialector.Name() != DriverSQLite {
				q = q.Clauses(clause.Locking{Strength: "UPDATE"})
			}
			if err := q.Take(&current).Error; err != nil {
				return err
			}
			for col, want := range guard {
				if !schema.SameValue(current[col], want) {
					return schema.ErrStaleRow
				}
			}
		}

		if err := tx.Table(table).Where("id = ?", idArg(id)).Updates(values).Error; err != nil {
			return err
		}
		// RowsAffected is zero on MySQL when values are unchanged, so read back instead
		updated = map[string]any{}
		return tx.Table(table).Where("id = ?", idArg(id)).Take(&updated).Error
	})
	if err != nil {
		return nil, fmt.Errorf("update %s/%s: %w", table, id, classifyError(table, err))
	}
	return updated, nil
}

// Delete removes a row by id. Deleting a missing row returns schema.ErrRowNotFound.
func (s *TableStore) Delete(ctx context.Context, table, id string) error {
	res := s.db.WithContext(ctx).Exec("DELETE FROM ? WHERE id = ?", clause.Table{Name: table}, idArg(id))
	if res.Error != nil {
		return fmt.Errorf("delete %s/%s: %w", table, id, classifyError(table, res.Error))
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("delete %s/%s: %w", table, id, schema.ErrRowNotFound)
	}
	return nil
}

// idArg binds numeric ids as integers so typed id columns compare without casts.
func idArg(id string) any {
	if n, err := strconv.ParseInt(id, 10, 64); err == nil {
		return n
	}
	return id
}
