package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"sort"
	"strconv"

	"kb-admin/core/utils"
)

// Record is one row of a table. An empty ID marks a row not yet created.
type Record struct {
	ID     string
	Values map[string]any
}

// NewRecord builds a record from an id and a value map. The id key, if present
// in values, is dropped in favour of the explicit id.
func NewRecord(id string, values map[string]any) Record {
	v := make(map[string]any, len(values))
	for k, val := range values {
		if k == FieldID {
			continue
		}
		v[k] = val
	}
	return Record{ID: id, Values: v}
}

// FromRow converts a row returned by the table store into a record.
func FromRow(row map[string]any) Record {
	id, _ := utils.CanonicalID(row[FieldID])
	values := make(map[string]any, len(row))
	for k, v := range row {
		if k == FieldID {
			continue
		}
		if b, ok := v.([]byte); ok {
			v = string(b)
		}
		values[k] = v
	}
	return Record{ID: id, Values: values}
}

// IsNew reports whether the record has no identifier yet.
func (r Record) IsNew() bool {
	return r.ID == ""
}

// Get returns the value of a column.
func (r Record) Get(name string) any {
	if name == FieldID {
		if r.IsNew() {
			return nil
		}
		return r.ID
	}
	return r.Values[name]
}

// Has reports whether the record carries the column at all.
func (r Record) Has(name string) bool {
	_, ok := r.Values[name]
	return ok
}

// Clone returns a copy whose value map can be modified independently.
func (r Record) Clone() Record {
	return Record{ID: r.ID, Values: maps.Clone(r.Values)}
}

// MarshalJSON renders the record as a flat object with an "id" key.
func (r Record) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.Values)+1)
	for k, v := range r.Values {
		out[k] = v
	}
	out[FieldID] = r.Get(FieldID)
	return json.Marshal(out)
}

// UnmarshalJSON reads a flat object. Numeric and textual ids are canonicalised.
func (r *Record) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return fmt.Errorf("decode record: %w", err)
	}

	id, _ := utils.CanonicalID(raw[FieldID])
	*r = NewRecord(id, raw)
	for k, v := range r.Values {
		if n, ok := v.(json.Number); ok {
			r.Values[k] = n.String()
		}
	}
	return nil
}

// IDs returns the set of identifiers present in the records. New records are skipped.
func IDs(records []Record) map[string]struct{} {
	set := make(map[string]struct{}, len(records))
	for _, rec := range records {
		if !rec.IsNew() {
			set[rec.ID] = struct{}{}
		}
	}
	return set
}

// SortedKeys returns the keys of an id set in ascending order.
func SortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, errA := strconv.ParseInt(keys[i], 10, 64)
		b, errB := strconv.ParseInt(keys[j], 10, 64)
		if errA == nil && errB == nil {
			return a < b
		}
		return keys[i] < keys[j]
	})
	return keys
}
