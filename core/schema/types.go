package schema

import (
	"fmt"
	"slices"
)

// FieldType tags the scalar kind of a column.
type FieldType string

const (
	TypeID        FieldType = "id"
	TypeText      FieldType = "text"
	TypeEnum      FieldType = "enum"
	TypeDate      FieldType = "date"
	TypeTimestamp FieldType = "timestamp"
	TypeURL       FieldType = "url"
)

// Well-known column names.
const (
	FieldID              = "id"
	FieldCreatedTime     = "created_time"
	FieldLastUpdatedTime = "last_updated_time"
	FieldUploadedTime    = "uploaded_time"
)

// ServerManaged lists the columns clients never write during create or update.
var ServerManaged = []string{FieldCreatedTime, FieldLastUpdatedTime, FieldUploadedTime}

// Field describes a single column of a table.
type Field struct {
	Name     string    `json:"name"`
	Type     FieldType `json:"type"`
	Required bool      `json:"required"`
	ReadOnly bool      `json:"read_only"`
	Options  []string  `json:"options,omitempty"`
}

// Editable reports whether the field may appear in a create or update payload.
func (f Field) Editable() bool {
	return f.Type != TypeID && !f.ReadOnly
}

// Schema is the typed definition of one backend table.
type Schema struct {
	// Table is the backend table name.
	Table string `json:"table"`
	// Fields lists the columns in display order. The first field is the id.
	Fields []Field `json:"fields"`
	// DefaultSort is the column used, descending, when no sort is requested.
	DefaultSort string `json:"default_sort"`
	// LabelField names the column shown next to the id in record pickers.
	LabelField string `json:"label_field"`
}

// Columns returns the column names in display order.
func (s *Schema) Columns() []string {
	cols := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		cols = append(cols, f.Name)
	}
	return cols
}

// Field looks up a column by name.
func (s *Schema) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// HasField reports whether the schema declares the column.
func (s *Schema) HasField(name string) bool {
	_, ok := s.Field(name)
	return ok
}

// EditableFields returns the columns that clients may write.
func (s *Schema) EditableFields() []Field {
	var out []Field
	for _, f := range s.Fields {
		if f.Editable() {
			out = append(out, f)
		}
	}
	return out
}

// Check verifies the schema declaration itself.
func (s *Schema) Check() error {
	if s.Table == "" {
		return fmt.Errorf("schema has no table name")
	}
	if len(s.Fields) == 0 || s.Fields[0].Name != FieldID || s.Fields[0].Type != TypeID {
		return fmt.Errorf("schema %s: first field must be %q of type id", s.Table, FieldID)
	}
	seen := make(map[string]struct{}, len(s.Fields))
	for _, f := range s.Fields {
		if _, dup := seen[f.Name]; dup {
			return fmt.Errorf("schema %s: duplicate field %s", s.Table, f.Name)
		}
		seen[f.Name] = struct{}{}
		if f.Type == TypeEnum && len(f.Options) == 0 {
			return fmt.Errorf("schema %s: enum field %s has no options", s.Table, f.Name)
		}
		if slices.Contains(ServerManaged, f.Name) && !f.ReadOnly {
			return fmt.Errorf("schema %s: server-managed field %s must be read-only", s.Table, f.Name)
		}
	}
	if !s.HasField(s.DefaultSort) {
		return fmt.Errorf("schema %s: default sort field %s is not declared", s.Table, s.DefaultSort)
	}
	if s.LabelField != "" && !s.HasField(s.LabelField) {
		return fmt.Errorf("schema %s: label field %s is not declared", s.Table, s.LabelField)
	}
	return nil
}
