package schema

import (
	"encoding/json"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"

	"kb-admin/core/utils"
)

// DateLayout is the textual form date fields are transmitted in.
const DateLayout = "2006-01-02 15:04:05-0700"

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	DateLayout,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTime accepts the layouts produced by the supported backends and by JSON clients.
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised time %q", s)
}

// Normalize converts a raw value into the canonical Go value for the field type:
// string for text, enum and url, UTC time.Time for date and timestamp. Empty strings
// become nil.
func (f Field) Normalize(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	switch f.Type {
	case TypeID:
		id, ok := utils.CanonicalID(v)
		if !ok {
			return nil, nil
		}
		return id, nil
	case TypeDate, TypeTimestamp:
		switch t := v.(type) {
		case time.Time:
			if t.IsZero() {
				return nil, nil
			}
			return t.UTC(), nil
		case *time.Time:
			if t == nil || t.IsZero() {
				return nil, nil
			}
			return t.UTC(), nil
		case json.Number:
			return nil, fmt.Errorf("expected a date, got number %s", t)
		}
		s := utils.ToString(v)
		if strings.TrimSpace(s) == "" {
			return nil, nil
		}
		return ParseTime(s)
	default:
		s := utils.ToString(v)
		if s == "" {
			return nil, nil
		}
		return s, nil
	}
}

// Equal compares two normalized values of the field.
func (f Field) Equal(a, b any) bool {
	ta, okA := a.(time.Time)
	tb, okB := b.(time.Time)
	if okA && okB {
		return ta.Equal(tb)
	}
	return a == b
}

// Validate checks a normalized value against the field constraints.
func (f Field) Validate(v any) string {
	if v == nil {
		if f.Required {
			return "value is required"
		}
		return ""
	}
	switch f.Type {
	case TypeEnum:
		if !slices.Contains(f.Options, v.(string)) {
			return fmt.Sprintf("%q is not one of %v", v, f.Options)
		}
	case TypeURL:
		u, err := url.Parse(v.(string))
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Sprintf("%q is not an absolute url", v)
		}
	}
	return ""
}

// Wire renders a normalized value in its transmission form.
func (f Field) Wire(v any) any {
	t, ok := v.(time.Time)
	if !ok {
		return v
	}
	if f.Type == TypeDate {
		return t.UTC().Format(DateLayout)
	}
	return t.Format(time.RFC3339)
}

// Normalized returns a copy of the record with every declared field normalized.
// Undeclared columns are dropped.
func (s *Schema) Normalized(rec Record) (Record, error) {
	out := Record{ID: rec.ID, Values: make(map[string]any, len(rec.Values))}
	for _, f := range s.Fields {
		if f.Type == TypeID {
			continue
		}
		raw, ok := rec.Values[f.Name]
		if !ok {
			continue
		}
		v, err := f.Normalize(raw)
		if err != nil {
			return Record{}, &ValidationError{Table: s.Table, Field: f.Name, Reason: err.Error(), Err: err}
		}
		out.Values[f.Name] = v
	}
	return out, nil
}

// Payload builds the create or update payload for a record: editable fields only,
// normalized, validated and rendered in wire form. Editable fields the record does
// not carry are omitted, except that required fields must be present on a new record.
func (s *Schema) Payload(rec Record) (map[string]any, error) {
	norm, err := s.Normalized(rec)
	if err != nil {
		return nil, err
	}
	payload := make(map[string]any)
	for _, f := range s.EditableFields() {
		v, present := norm.Values[f.Name]
		if !present && !(rec.IsNew() && f.Required) {
			continue
		}
		if reason := f.Validate(v); reason != "" {
			return nil, &ValidationError{Table: s.Table, Field: f.Name, Reason: reason}
		}
		if present {
			payload[f.Name] = f.Wire(v)
		}
	}
	return payload, nil
}

// Diff returns the editable fields whose normalized values differ between two
// records. Only fields carried by the edited record are compared; a field missing
// from the prior record is compared against nil.
func (s *Schema) Diff(prior, edited Record) ([]string, error) {
	a, err := s.Normalized(prior)
	if err != nil {
		return nil, err
	}
	b, err := s.Normalized(edited)
	if err != nil {
		return nil, err
	}
	var changed []string
	for _, f := range s.EditableFields() {
		if _, ok := b.Values[f.Name]; !ok {
			continue
		}
		if !f.Equal(a.Values[f.Name], b.Values[f.Name]) {
			changed = append(changed, f.Name)
		}
	}
	return changed, nil
}

// SameValue compares a value read back from the backend with a normalized one. Times
// are compared as instants whatever textual form the backend returned them in.
func SameValue(stored, want any) bool {
	if b, ok := stored.([]byte); ok {
		stored = string(b)
	}
	wt, ok := want.(time.Time)
	if !ok {
		return utils.ToString(stored) == utils.ToString(want)
	}
	switch v := stored.(type) {
	case time.Time:
		return v.Equal(wt)
	case string:
		t, err := ParseTime(v)
		return err == nil && t.Equal(wt)
	}
	return false
}
