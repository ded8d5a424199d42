package query

import (
	"fmt"
	"slices"

	"kb-admin/core/schema"
)

// Direction is a sort direction.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// PageSizes lists the page sizes a cursor may request.
var PageSizes = []int{25, 50, 100}

// Cursor selects which slice of a table is materialised.
type Cursor struct {
	Page int       `json:"page" query:"page"`
	Size int       `json:"size" query:"size"`
	Sort string    `json:"sort,omitempty" query:"sort"`
	Dir  Direction `json:"dir,omitempty" query:"dir"`
}

// Sort is the resolved ordering of a select.
type Sort struct {
	Field string
	Desc  bool
}

// DefaultCursor returns the first page at the smallest page size.
func DefaultCursor() Cursor {
	return Cursor{Page: 1, Size: PageSizes[0]}
}

// WithDefaults fills zero values with the defaults.
func (c Cursor) WithDefaults() Cursor {
	if c.Page == 0 {
		c.Page = 1
	}
	if c.Size == 0 {
		c.Size = PageSizes[0]
	}
	if c.Sort != "" && c.Dir == "" {
		c.Dir = Asc
	}
	return c
}

// Validate checks the cursor against a table schema.
func (c Cursor) Validate(s *schema.Schema) error {
	if c.Page < 1 {
		return &schema.ValidationError{Table: s.Table, Field: "page", Reason: fmt.Sprintf("page must be >= 1, got %d", c.Page)}
	}
	if !slices.Contains(PageSizes, c.Size) {
		return &schema.ValidationError{Table: s.Table, Field: "size", Reason: fmt.Sprintf("size must be one of %v, got %d", PageSizes, c.Size)}
	}
	if c.Sort != "" && !s.HasField(c.Sort) {
		return &schema.ValidationError{Table: s.Table, Field: "sort", Reason: fmt.Sprintf("unknown sort field %q", c.Sort)}
	}
	switch c.Dir {
	case "", Asc, Desc:
	default:
		return &schema.ValidationError{Table: s.Table, Field: "dir", Reason: fmt.Sprintf("direction must be asc or desc, got %q", c.Dir)}
	}
	return nil
}

// Offset is the index of the first row of the page in the ordered table.
func (c Cursor) Offset() int {
	return (c.Page - 1) * c.Size
}

// Order resolves the sort: the requested field, or the table default, newest first.
func (c Cursor) Order(s *schema.Schema) Sort {
	if c.Sort == "" {
		return Sort{Field: s.DefaultSort, Desc: true}
	}
	return Sort{Field: c.Sort, Desc: c.Dir == Desc}
}

func (c Cursor) key() string {
	return fmt.Sprintf("page=%d|size=%d|sort=%s|dir=%s", c.Page, c.Size, c.Sort, c.Dir)
}

// TotalPages returns the number of pages for a row count, never less than one.
func TotalPages(total int64, size int) int {
	if size <= 0 {
		return 1
	}
	pages := int((total + int64(size) - 1) / int64(size))
	return max(1, pages)
}
