package query

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"

	"kb-admin/core/schema"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeReader is an in-memory table that records how often it was read.
type fakeReader struct {
	rows        []map[string]any
	selectCalls int
	countCalls  int
	lastSort    Sort
	err         error
}

func newFakeReader(n int) *fakeReader {
	r := &fakeReader{}
	for i := 1; i <= n; i++ {
		r.rows = append(r.rows, map[string]any{"id": int64(i), "title": fmt.Sprintf("T%03d", i)})
	}
	return r
}

func (r *fakeReader) Count(ctx context.Context, table string) (int64, error) {
	r.countCalls++
	if r.err != nil {
		return 0, r.err
	}
	return int64(len(r.rows)), nil
}

func (r *fakeReader) Select(ctx context.Context, table string, fields []string, s Sort, offset, limit int) ([]map[string]any, error) {
	r.selectCalls++
	r.lastSort = s
	if r.err != nil {
		return nil, r.err
	}
	rows := append([]map[string]any(nil), r.rows...)
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i]["id"].(int64), rows[j]["id"].(int64)
		if s.Desc {
			return a > b
		}
		return a < b
	})
	if offset >= len(rows) {
		return []map[string]any{}, nil
	}
	end := min(offset+limit, len(rows))
	return rows[offset:end], nil
}

func testSchema() *schema.Schema {
	return &schema.Schema{
		Table: "reports",
		Fields: []schema.Field{
			{Name: "id", Type: schema.TypeID, ReadOnly: true},
			{Name: "title", Type: schema.TypeText, Required: true},
			{Name: "uploaded_time", Type: schema.TypeTimestamp, ReadOnly: true},
		},
		DefaultSort: "uploaded_time",
		LabelField:  "title",
	}
}

func cachedConfig() Config {
	return Config{CountTTLSeconds: 600, PageTTLSeconds: 600}
}

func TestFetch_Pagination(t *testing.T) {
	reader := newFakeReader(60)
	layer := NewLayer(reader, Config{}, zap.NewNop())
	s := testSchema()

	tests := []struct {
		name    string
		cursor  Cursor
		wantIDs []string
	}{
		{"FirstPage", Cursor{Page: 1, Size: 25, Sort: "id", Dir: Asc}, idRange(1, 25)},
		{"SecondPage", Cursor{Page: 2, Size: 25, Sort: "id", Dir: Asc}, idRange(26, 50)},
		{"PartialLastPage", Cursor{Page: 3, Size: 25, Sort: "id", Dir: Asc}, idRange(51, 60)},
		{"PastTheEnd", Cursor{Page: 4, Size: 25, Sort: "id", Dir: Asc}, []string{}},
		{"LargePageSize", Cursor{Page: 1, Size: 100, Sort: "id", Dir: Asc}, idRange(1, 60)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := layer.Fetch(context.Background(), s, tt.cursor)
			require.NoError(t, err)
			assert.Equal(t, int64(60), page.Total)

			ids := make([]string, 0, len(page.Records))
			for _, r := range page.Records {
				ids = append(ids, r.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func idRange(from, to int) []string {
	var ids []string
	for i := from; i <= to; i++ {
		ids = append(ids, fmt.Sprintf("%d", i))
	}
	return ids
}

func TestFetch_DefaultOrder(t *testing.T) {
	reader := newFakeReader(3)
	layer := NewLayer(reader, Config{}, zap.NewNop())

	_, err := layer.Fetch(context.Background(), testSchema(), Cursor{})
	require.NoError(t, err)
	assert.Equal(t, Sort{Field: "uploaded_time", Desc: true}, reader.lastSort)

	_, err = layer.Fetch(context.Background(), testSchema(), Cursor{Sort: "title"})
	require.NoError(t, err)
	assert.Equal(t, Sort{Field: "title", Desc: false}, reader.lastSort)
}

func TestFetch_TotalPages(t *testing.T) {
	assert.Equal(t, 1, TotalPages(0, 25))
	assert.Equal(t, 1, TotalPages(25, 25))
	assert.Equal(t, 2, TotalPages(26, 25))
	assert.Equal(t, 3, TotalPages(101, 50))
}

func TestFetch_InvalidCursor(t *testing.T) {
	reader := newFakeReader(3)
	layer := NewLayer(reader, Config{}, zap.NewNop())

	tests := []struct {
		name   string
		cursor Cursor
		field  string
	}{
		{"NegativePage", Cursor{Page: -1, Size: 25}, "page"},
		{"OddSize", Cursor{Page: 1, Size: 30}, "size"},
		{"UnknownSort", Cursor{Page: 1, Size: 25, Sort: "nope"}, "sort"},
		{"BadDirection", Cursor{Page: 1, Size: 25, Sort: "title", Dir: "up"}, "dir"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := layer.Fetch(context.Background(), testSchema(), tt.cursor)
			var verr *schema.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
			assert.Empty(t, page.Records)
			assert.NotEmpty(t, page.Error)
		})
	}
	assert.Equal(t, 0, reader.selectCalls)
}

func TestFetch_BackendFailure(t *testing.T) {
	reader := newFakeReader(3)
	reader.err = errors.New("connection refused")
	layer := NewLayer(reader, cachedConfig(), zap.NewNop())

	page, err := layer.Fetch(context.Background(), testSchema(), DefaultCursor())
	require.Error(t, err)

	var ferr *FetchError
	require.True(t, errors.As(err, &ferr))
	assert.Equal(t, "reports", ferr.Table)
	assert.NotNil(t, page)
	assert.Empty(t, page.Records)
	assert.Equal(t, int64(0), page.Total)
	assert.Equal(t, 1, page.TotalPages)
	assert.Contains(t, page.Error, "connection refused")

	// Failures are not cached.
	reader.err = nil
	page, err = layer.Fetch(context.Background(), testSchema(), DefaultCursor())
	require.NoError(t, err)
	assert.Len(t, page.Records, 3)
}

func TestFetch_CacheAndInvalidate(t *testing.T) {
	reader := newFakeReader(30)
	layer := NewLayer(reader, cachedConfig(), zap.NewNop())
	s := testSchema()
	ctx := context.Background()

	first, err := layer.Fetch(ctx, s, DefaultCursor())
	require.NoError(t, err)
	assert.Equal(t, uint64(0), first.Version)

	_, err = layer.Fetch(ctx, s, DefaultCursor())
	require.NoError(t, err)
	assert.Equal(t, 1, reader.selectCalls)
	assert.Equal(t, 1, reader.countCalls)

	// A different cursor is a different entry.
	_, err = layer.Fetch(ctx, s, Cursor{Page: 2, Size: 25})
	require.NoError(t, err)
	assert.Equal(t, 2, reader.selectCalls)
	assert.Equal(t, 1, reader.countCalls)

	assert.Equal(t, uint64(1), layer.Invalidate("reports"))

	after, err := layer.Fetch(ctx, s, DefaultCursor())
	require.NoError(t, err)
	assert.Equal(t, 3, reader.selectCalls)
	assert.Equal(t, 2, reader.countCalls)
	assert.Equal(t, uint64(1), after.Version)
}

func TestFetch_ZeroTTLDisablesCache(t *testing.T) {
	reader := newFakeReader(5)
	layer := NewLayer(reader, Config{}, zap.NewNop())

	for i := 0; i < 3; i++ {
		_, err := layer.Fetch(context.Background(), testSchema(), DefaultCursor())
		require.NoError(t, err)
	}
	assert.Equal(t, 3, reader.selectCalls)
	assert.Equal(t, 3, reader.countCalls)
}

func TestCache_LoadRacingInvalidateIsNotStored(t *testing.T) {
	c := NewCache()
	loads := 0
	load := func(context.Context) (any, error) {
		loads++
		if loads == 1 {
			c.Invalidate("reports")
		}
		return loads, nil
	}

	v, err := c.GetOrLoad(context.Background(), "reports", "k", 600e9, load)
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	v, err = c.GetOrLoad(context.Background(), "reports", "k", 600e9, load)
	require.NoError(t, err)
	assert.Equal(t, 2, v)

	v, err = c.GetOrLoad(context.Background(), "reports", "k", 600e9, load)
	require.NoError(t, err)
	assert.Equal(t, 2, v, "second load happened after invalidation and is cached")
}

func TestCache_InvalidateIsPerTable(t *testing.T) {
	c := NewCache()
	calls := map[string]int{}
	loader := func(table string) func(context.Context) (any, error) {
		return func(context.Context) (any, error) {
			calls[table]++
			return calls[table], nil
		}
	}

	_, _ = c.GetOrLoad(context.Background(), "reports", "k", 600e9, loader("reports"))
	_, _ = c.GetOrLoad(context.Background(), "standards", "k", 600e9, loader("standards"))

	c.Invalidate("reports")

	_, _ = c.GetOrLoad(context.Background(), "reports", "k", 600e9, loader("reports"))
	_, _ = c.GetOrLoad(context.Background(), "standards", "k", 600e9, loader("standards"))

	assert.Equal(t, 2, calls["reports"])
	assert.Equal(t, 1, calls["standards"])
	assert.Equal(t, uint64(0), c.Version("standards"))
}

func TestCache_CancelledCallerDoesNotFailSharedLoad(t *testing.T) {
	c := NewCache()
	started := make(chan struct{})
	release := make(chan struct{})
	loadErr := make(chan error, 2)
	var once sync.Once
	load := func(ctx context.Context) (any, error) {
		once.Do(func() { close(started) })
		<-release
		loadErr <- ctx.Err()
		return "page", nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	first := make(chan error, 1)
	go func() {
		_, err := c.GetOrLoad(ctx, "standards", "k", 600e9, load)
		first <- err
	}()
	<-started

	cancel()
	assert.ErrorIs(t, <-first, context.Canceled)

	second := make(chan any, 1)
	go func() {
		v, _ := c.GetOrLoad(context.Background(), "standards", "k", 600e9, load)
		second <- v
	}()
	close(release)

	assert.NoError(t, <-loadErr)
	assert.Equal(t, "page", <-second)
}
