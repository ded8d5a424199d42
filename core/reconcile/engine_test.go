package reconcile

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"testing"
	"time"

	"kb-admin/core/query"
	"kb-admin/core/schema"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// memStore is an in-memory table store that records every request it receives.
type memStore struct {
	rows     map[string]map[string]any
	nextID   int
	calls    []string
	selects  int
	failures map[string]error
	readErr  error
}

func newMemStore(rows ...map[string]any) *memStore {
	m := &memStore{rows: map[string]map[string]any{}, failures: map[string]error{}}
	for _, r := range rows {
		id := r["id"].(string)
		m.rows[id] = r
		if n, _ := strconv.Atoi(id); n > m.nextID {
			m.nextID = n
		}
	}
	return m
}

func (m *memStore) Count(ctx context.Context, table string) (int64, error) {
	if m.readErr != nil {
		return 0, m.readErr
	}
	return int64(len(m.rows)), nil
}

func (m *memStore) Select(ctx context.Context, table string, fields []string, s query.Sort, offset, limit int) ([]map[string]any, error) {
	m.selects++
	if m.readErr != nil {
		return nil, m.readErr
	}
	ids := make([]int, 0, len(m.rows))
	for id := range m.rows {
		n, _ := strconv.Atoi(id)
		ids = append(ids, n)
	}
	sort.Ints(ids)
	out := []map[string]any{}
	for _, n := range ids[min(offset, len(ids)):min(offset+limit, len(ids))] {
		row := map[string]any{}
		for k, v := range m.rows[strconv.Itoa(n)] {
			row[k] = v
		}
		out = append(out, row)
	}
	return out, nil
}

func (m *memStore) Insert(ctx context.Context, table string, row map[string]any) (map[string]any, error) {
	m.calls = append(m.calls, "create")
	if err := m.failures["create"]; err != nil {
		return nil, err
	}
	m.nextID++
	id := strconv.Itoa(m.nextID)
	stored := map[string]any{"id": id}
	for k, v := range row {
		stored[k] = v
	}
	m.rows[id] = stored
	return stored, nil
}

func (m *memStore) Update(ctx context.Context, table, id string, row, guard map[string]any) (map[string]any, error) {
	m.calls = append(m.calls, "update:"+id)
	if err := m.failures["update:"+id]; err != nil {
		return nil, err
	}
	stored, ok := m.rows[id]
	if !ok {
		return nil, schema.ErrRowNotFound
	}
	for k, v := range guard {
		if want, ok := v.(time.Time); ok {
			if got, ok := stored[k].(time.Time); !ok || !got.Equal(want) {
				return nil, schema.ErrStaleRow
			}
		}
	}
	for k, v := range row {
		stored[k] = v
	}
	return stored, nil
}

func (m *memStore) Delete(ctx context.Context, table, id string) error {
	m.calls = append(m.calls, "delete:"+id)
	if err := m.failures["delete:"+id]; err != nil {
		return err
	}
	if _, ok := m.rows[id]; !ok {
		return schema.ErrRowNotFound
	}
	delete(m.rows, id)
	return nil
}

func newTestEngine(store *memStore, opts Options) (*Engine, *query.Layer) {
	layer := query.NewLayer(store, query.Config{CountTTLSeconds: 600, PageTTLSeconds: 600}, zap.NewNop())
	return NewEngine(store, layer, opts, zap.NewNop()), layer
}

func snapshot(t *testing.T, layer *query.Layer) []schema.Record {
	t.Helper()
	page, err := layer.Fetch(context.Background(), testSchema(), query.DefaultCursor())
	require.NoError(t, err)
	out := make([]schema.Record, 0, len(page.Records))
	for _, r := range page.Records {
		out = append(out, r.Clone())
	}
	return out
}

func TestReconcile_AppliesInOrderAndRefreshes(t *testing.T) {
	store := newMemStore(
		map[string]any{"id": "1", "title": "A"},
		map[string]any{"id": "2", "title": "B"},
		map[string]any{"id": "3", "title": "C"},
	)
	engine, layer := newTestEngine(store, Options{})
	prior := snapshot(t, layer)
	before := layer.Version("reports")

	edited := []schema.Record{
		rec("1", map[string]any{"title": "A"}),
		rec("3", map[string]any{"title": "C2"}),
		rec("", map[string]any{"title": "D"}),
	}
	result, err := engine.Reconcile(context.Background(), testSchema(), query.DefaultCursor(), prior, edited)
	require.NoError(t, err)

	assert.Equal(t, []string{"delete:2", "create", "update:3"}, store.calls)
	assert.Equal(t, 3, result.Applied)
	assert.Equal(t, 0, result.Failed)
	assert.Equal(t, before+1, result.Version)

	require.NotNil(t, result.Page)
	titles := map[string]any{}
	for _, r := range result.Page.Records {
		titles[r.ID] = r.Get("title")
	}
	assert.Equal(t, map[string]any{"1": "A", "3": "C2", "4": "D"}, titles)
	assert.Equal(t, int64(3), result.Page.Total)
}

func TestReconcile_NoChangesIssuesNothing(t *testing.T) {
	store := newMemStore(map[string]any{"id": "1", "title": "A"})
	engine, layer := newTestEngine(store, Options{})
	prior := snapshot(t, layer)
	selects := store.selects

	result, err := engine.Reconcile(context.Background(), testSchema(), query.DefaultCursor(), prior, prior)
	require.NoError(t, err)

	assert.Empty(t, store.calls)
	assert.Empty(t, result.Outcomes)
	assert.Equal(t, uint64(0), result.Version)
	assert.Equal(t, selects, store.selects, "refresh is served from cache when nothing changed")
	assert.Len(t, result.Page.Records, 1)
}

func TestReconcile_BumpOnNoop(t *testing.T) {
	store := newMemStore(map[string]any{"id": "1", "title": "A"})
	engine, layer := newTestEngine(store, Options{BumpOnNoop: true})
	prior := snapshot(t, layer)
	selects := store.selects

	result, err := engine.Reconcile(context.Background(), testSchema(), query.DefaultCursor(), prior, prior)
	require.NoError(t, err)

	assert.Empty(t, store.calls)
	assert.Equal(t, uint64(1), result.Version)
	assert.Equal(t, selects+1, store.selects)
}

func TestReconcile_FailuresDoNotStopThePass(t *testing.T) {
	store := newMemStore(
		map[string]any{"id": "1", "title": "A"},
		map[string]any{"id": "2", "title": "B"},
		map[string]any{"id": "3", "title": "C"},
	)
	store.failures["delete:1"] = errors.New("connection reset")
	store.failures["create"] = &schema.ValidationError{Table: "reports", Field: "title", Reason: "duplicate key"}
	engine, layer := newTestEngine(store, Options{})
	prior := snapshot(t, layer)

	edited := []schema.Record{
		rec("3", map[string]any{"title": "C2"}),
		rec("", map[string]any{"title": "D"}),
		rec("", map[string]any{}),
	}
	result, err := engine.Reconcile(context.Background(), testSchema(), query.DefaultCursor(), prior, edited)
	require.NoError(t, err)

	assert.Equal(t, []string{"delete:1", "delete:2", "create", "update:3"}, store.calls)
	assert.Equal(t, 2, result.Applied)
	assert.Equal(t, 3, result.Failed)
	assert.Equal(t, uint64(1), result.Version)

	byKey := map[string]Outcome{}
	for _, o := range result.Outcomes {
		byKey[fmt.Sprintf("%s:%s:%d", o.Type, o.Key, o.Row)] = o
	}

	var merr *MutationError
	require.ErrorAs(t, byKey["delete:1:-1"].Err, &merr)
	assert.Equal(t, "1", merr.ID)
	assert.Equal(t, StatusApplied, byKey["delete:2:-1"].Status)

	var verr *schema.ValidationError
	assert.ErrorAs(t, byKey["create::1"].Err, &verr)
	assert.ErrorAs(t, byKey["create::2"].Err, &verr, "rows failing local validation are reported too")
	assert.Equal(t, StatusApplied, byKey["update:3:0"].Status)
}

func TestReconcile_OptimisticConflict(t *testing.T) {
	stamp := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	store := newMemStore(map[string]any{"id": "1", "title": "A", "last_updated_time": stamp})
	engine, layer := newTestEngine(store, Options{OptimisticLocking: true})
	prior := snapshot(t, layer)

	store.rows["1"]["last_updated_time"] = stamp.Add(time.Minute)

	edited := []schema.Record{rec("1", map[string]any{"title": "mine"})}
	result, err := engine.Reconcile(context.Background(), testSchema(), query.DefaultCursor(), prior, edited)
	require.NoError(t, err)

	require.Len(t, result.Outcomes, 1)
	var cerr *ConflictError
	require.ErrorAs(t, result.Outcomes[0].Err, &cerr)
	assert.ErrorIs(t, cerr, schema.ErrStaleRow)
	assert.Equal(t, "A", store.rows["1"]["title"])
}

func TestReconcile_DryRun(t *testing.T) {
	store := newMemStore(map[string]any{"id": "1", "title": "A"})
	engine, layer := newTestEngine(store, Options{DryRun: true})
	prior := snapshot(t, layer)

	result, err := engine.Reconcile(context.Background(), testSchema(), query.DefaultCursor(), prior, nil)
	require.NoError(t, err)

	assert.Empty(t, store.calls)
	assert.Equal(t, 1, result.Plan.Summary.Deletes)
	assert.Nil(t, result.Page)
	assert.Equal(t, uint64(0), result.Version)
}

func TestEngine_WithOptionsLeavesOriginalUntouched(t *testing.T) {
	store := newMemStore(map[string]any{"id": "1", "title": "A"})
	engine, layer := newTestEngine(store, Options{OptimisticLocking: true})
	prior := snapshot(t, layer)

	dry := engine.WithOptions(Options{DryRun: true})
	_, err := dry.Reconcile(context.Background(), testSchema(), query.DefaultCursor(), prior, nil)
	require.NoError(t, err)
	assert.Empty(t, store.calls)

	assert.Equal(t, Options{OptimisticLocking: true}, engine.Options())
	_, err = engine.Reconcile(context.Background(), testSchema(), query.DefaultCursor(), prior, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"delete:1"}, store.calls)
}

func TestReconcile_RefreshFailureIsReturned(t *testing.T) {
	store := newMemStore(map[string]any{"id": "1", "title": "A"})
	engine, layer := newTestEngine(store, Options{})
	prior := snapshot(t, layer)
	store.readErr = errors.New("backend unreachable")

	result, err := engine.Reconcile(context.Background(), testSchema(), query.DefaultCursor(), prior, nil)

	var ferr *query.FetchError
	require.ErrorAs(t, err, &ferr)
	require.NotNil(t, result.Page)
	assert.Empty(t, result.Page.Records)
	assert.NotEmpty(t, result.Page.Error)
	assert.Equal(t, 1, result.Applied)
}

func TestApply_UpdateRoundTrip(t *testing.T) {
	store := newMemStore(map[string]any{"id": "7", "title": "A", "language": "eng", "url": "https://a.example"})
	engine, layer := newTestEngine(store, Options{})
	prior := snapshot(t, layer)

	edited := []schema.Record{rec("7", map[string]any{"title": "A", "language": "chi_sim", "url": "https://a.example"})}
	result, err := engine.Reconcile(context.Background(), testSchema(), query.DefaultCursor(), prior, edited)
	require.NoError(t, err)

	require.Len(t, result.Page.Records, 1)
	got := result.Page.Records[0]
	assert.Equal(t, "chi_sim", got.Get("language"))
	assert.Equal(t, "A", got.Get("title"))
	assert.Equal(t, "https://a.example", got.Get("url"))
	assert.Equal(t, []string{"language"}, result.Plan.Actions[0].Changed)
}
