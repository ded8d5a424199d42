package records

import (
	"errors"
	"fmt"
	"strings"

	"kb-admin/core/schema"
)

// ErrUnknownTable is returned when a table is not managed by the console.
var ErrUnknownTable = errors.New("unknown table")

// Registry maps table names to their schemas.
type Registry struct {
	order   []string
	schemas map[string]*schema.Schema
}

// NewRegistry creates a registry. Every schema is checked; the first invalid one
// fails the whole registry.
func NewRegistry(schemas ...*schema.Schema) (*Registry, error) {
	r := &Registry{schemas: make(map[string]*schema.Schema, len(schemas))}
	for _, s := range schemas {
		if err := s.Check(); err != nil {
			return nil, err
		}
		if _, dup := r.schemas[s.Table]; dup {
			return nil, fmt.Errorf("table %s registered twice", s.Table)
		}
		r.schemas[s.Table] = s
		r.order = append(r.order, s.Table)
	}
	return r, nil
}

// Lookup returns the schema of a table.
func (r *Registry) Lookup(table string) (*schema.Schema, error) {
	s, ok := r.schemas[table]
	if !ok {
		return nil, fmt.Errorf("%w: %s (managed: %s)", ErrUnknownTable, table, strings.Join(r.Names(), ", "))
	}
	return s, nil
}

// Names returns the registered table names in registration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// Schemas returns the registered schemas in registration order.
func (r *Registry) Schemas() []*schema.Schema {
	out := make([]*schema.Schema, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.schemas[name])
	}
	return out
}
