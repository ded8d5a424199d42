package query

import (
	"context"
	"errors"
	"time"

	"kb-admin/core/schema"

	"go.uber.org/zap"
)

// Reader is the read half of the table store.
type Reader interface {
	// Count returns the number of rows in the table.
	Count(ctx context.Context, table string) (int64, error)
	// Select returns up to limit rows starting at offset, in the given order.
	Select(ctx context.Context, table string, fields []string, sort Sort, offset, limit int) ([]map[string]any, error)
}

// Page is one materialised slice of a table.
type Page struct {
	Table      string          `json:"table"`
	Cursor     Cursor          `json:"cursor"`
	Records    []schema.Record `json:"records"`
	Total      int64           `json:"total"`
	TotalPages int             `json:"total_pages"`
	Version    uint64          `json:"version"`
	Error      string          `json:"error,omitempty"`
}

// Layer serves cached, paginated reads of typed tables.
type Layer struct {
	reader   Reader
	cache    *Cache
	countTTL time.Duration
	pageTTL  time.Duration
	logger   *zap.Logger
}

// NewLayer creates a query layer over a table reader.
func NewLayer(reader Reader, cfg Config, logger *zap.Logger) *Layer {
	return &Layer{
		reader:   reader,
		cache:    NewCache(),
		countTTL: time.Duration(cfg.CountTTLSeconds) * time.Second,
		pageTTL:  time.Duration(cfg.PageTTLSeconds) * time.Second,
		logger:   logger,
	}
}

// Count returns the total number of rows of the table. On failure it returns zero
// and a *FetchError.
func (l *Layer) Count(ctx context.Context, s *schema.Schema) (int64, error) {
	v, err := l.cache.GetOrLoad(ctx, s.Table, "count", l.countTTL, func(ctx context.Context) (any, error) {
		return l.reader.Count(ctx, s.Table)
	})
	if err != nil {
		l.logger.Error("Error fetching total count", zap.String("table", s.Table), zap.Error(err))
		return 0, &FetchError{Table: s.Table, Op: "total count", Err: err}
	}
	return v.(int64), nil
}

// Records returns the rows of one page. On failure it returns an empty slice and a
// *FetchError. The returned records are shared with the cache and must not be modified.
func (l *Layer) Records(ctx context.Context, s *schema.Schema, cur Cursor) ([]schema.Record, error) {
	cur = cur.WithDefaults()
	if err := cur.Validate(s); err != nil {
		return []schema.Record{}, err
	}

	v, err := l.cache.GetOrLoad(ctx, s.Table, cur.key(), l.pageTTL, func(ctx context.Context) (any, error) {
		rows, err := l.reader.Select(ctx, s.Table, s.Columns(), cur.Order(s), cur.Offset(), cur.Size)
		if err != nil {
			return nil, err
		}
		records := make([]schema.Record, 0, len(rows))
		for _, row := range rows {
			records = append(records, schema.FromRow(row))
		}
		return records, nil
	})
	if err != nil {
		l.logger.Error("Error fetching data", zap.String("table", s.Table), zap.Int("page", cur.Page), zap.Error(err))
		return []schema.Record{}, &FetchError{Table: s.Table, Op: "data", Err: err}
	}
	return v.([]schema.Record), nil
}

// Fetch materialises a page: its records, the table total and the version token.
// The returned page is never nil; when err is non-nil its Error field carries the
// message and whatever could not be read is left empty.
func (l *Layer) Fetch(ctx context.Context, s *schema.Schema, cur Cursor) (*Page, error) {
	cur = cur.WithDefaults()
	page := &Page{
		Table:   s.Table,
		Cursor:  cur,
		Records: []schema.Record{},
		Version: l.cache.Version(s.Table),
	}

	total, countErr := l.Count(ctx, s)
	page.Total = total
	page.TotalPages = TotalPages(total, cur.Size)

	records, recErr := l.Records(ctx, s, cur)
	page.Records = records

	err := errors.Join(countErr, recErr)
	if err != nil {
		page.Error = err.Error()
	}
	return page, err
}

// Invalidate drops every cached read of the table and returns the new version token.
func (l *Layer) Invalidate(table string) uint64 {
	v := l.cache.Invalidate(table)
	l.logger.Debug("Cache invalidated", zap.String("table", table), zap.Uint64("version", v))
	return v
}

// Version returns the current version token of the table.
func (l *Layer) Version(table string) uint64 {
	return l.cache.Version(table)
}
