package reconcile

import (
	"testing"
	"time"

	"kb-admin/core/schema"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSchema() *schema.Schema {
	return &schema.Schema{
		Table: "reports",
		Fields: []schema.Field{
			{Name: "id", Type: schema.TypeID, ReadOnly: true},
			{Name: "title", Type: schema.TypeText, Required: true},
			{Name: "release_date", Type: schema.TypeDate},
			{Name: "language", Type: schema.TypeEnum, Options: []string{"eng", "chi_sim"}},
			{Name: "url", Type: schema.TypeURL},
			{Name: "uploaded_time", Type: schema.TypeTimestamp, ReadOnly: true},
			{Name: "last_updated_time", Type: schema.TypeTimestamp, ReadOnly: true},
		},
		DefaultSort: "last_updated_time",
		LabelField:  "title",
	}
}

func rec(id string, values map[string]any) schema.Record {
	return schema.NewRecord(id, values)
}

func TestDiff_NoChanges(t *testing.T) {
	s := testSchema()
	prior := []schema.Record{
		rec("1", map[string]any{"title": "A", "release_date": "2024-01-02 00:00:00+0000"}),
		rec("2", map[string]any{"title": "B", "language": "eng"}),
	}
	edited := []schema.Record{
		rec("1", map[string]any{"title": "A", "release_date": "2024-01-02T00:00:00Z"}),
		rec("2", map[string]any{"title": "B", "language": "eng"}),
	}

	plan := Diff(s, prior, edited, Options{})

	assert.True(t, plan.Empty())
	assert.Empty(t, plan.Rejected)
	assert.Equal(t, 2, plan.Summary.Unchanged)
}

func TestDiff_Scenarios(t *testing.T) {
	s := testSchema()

	tests := []struct {
		name    string
		prior   []schema.Record
		edited  []schema.Record
		actions []Action
	}{
		{
			name: "RowRemoved",
			prior: []schema.Record{
				rec("1", map[string]any{"title": "A"}),
				rec("2", map[string]any{"title": "B"}),
			},
			edited: []schema.Record{rec("1", map[string]any{"title": "A"})},
			actions: []Action{
				{Type: ActionDelete, Key: "2", Row: -1, Reason: "removed from the edited view"},
			},
		},
		{
			name:  "RowAdded",
			prior: []schema.Record{rec("1", map[string]any{"title": "A"})},
			edited: []schema.Record{
				rec("1", map[string]any{"title": "A"}),
				rec("", map[string]any{"title": "C"}),
			},
			actions: []Action{
				{Type: ActionCreate, Row: 1, Payload: map[string]any{"title": "C"}, Reason: "new row"},
			},
		},
		{
			name:   "RowEdited",
			prior:  []schema.Record{rec("1", map[string]any{"title": "A"})},
			edited: []schema.Record{rec("1", map[string]any{"title": "A2"})},
			actions: []Action{
				{
					Type:    ActionUpdate,
					Key:     "1",
					Row:     0,
					Payload: map[string]any{"title": "A2"},
					Changed: []string{"title"},
					Reason:  "changed: title",
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := Diff(s, tt.prior, tt.edited, Options{})
			assert.Equal(t, tt.actions, plan.Actions)
			assert.Empty(t, plan.Rejected)
		})
	}
}

func TestDiff_IDsAreCanonicalised(t *testing.T) {
	s := testSchema()
	prior := []schema.Record{
		schema.FromRow(map[string]any{"id": int64(1), "title": "A"}),
		schema.FromRow(map[string]any{"id": int64(2), "title": "B"}),
	}
	edited := []schema.Record{
		schema.FromRow(map[string]any{"id": float64(1), "title": "A"}),
		schema.FromRow(map[string]any{"id": "2", "title": "B"}),
	}

	plan := Diff(s, prior, edited, Options{})

	assert.True(t, plan.Empty(), "numeric and textual ids must match: %v", Describe(plan))
}

func TestDiff_CreatePayload(t *testing.T) {
	s := testSchema()
	edited := []schema.Record{
		rec("", map[string]any{
			"title":             "New",
			"release_date":      "2024-03-05",
			"language":          "eng",
			"url":               "",
			"uploaded_time":     "2024-03-05T10:00:00Z",
			"last_updated_time": "2024-03-05T10:00:00Z",
		}),
	}

	plan := Diff(s, nil, edited, Options{})

	require.Len(t, plan.Actions, 1)
	assert.Equal(t, map[string]any{
		"title":        "New",
		"release_date": "2024-03-05 00:00:00+0000",
		"language":     "eng",
		"url":          nil,
	}, plan.Actions[0].Payload)
}

func TestDiff_InvalidRowsAreRejected(t *testing.T) {
	s := testSchema()
	prior := []schema.Record{rec("1", map[string]any{"title": "A", "language": "eng"})}
	edited := []schema.Record{
		rec("1", map[string]any{"title": "A", "language": "klingon"}),
		rec("", map[string]any{"language": "eng"}),
		rec("", map[string]any{"title": "ok"}),
		rec("", map[string]any{"title": "bad url", "url": "not a url"}),
	}

	plan := Diff(s, prior, edited, Options{})

	require.Len(t, plan.Actions, 1)
	assert.Equal(t, ActionCreate, plan.Actions[0].Type)
	assert.Equal(t, 2, plan.Actions[0].Row)

	require.Len(t, plan.Rejected, 3)
	fields := make([]string, 0, 3)
	for _, r := range plan.Rejected {
		assert.Equal(t, StatusFailed, r.Status)
		var verr *schema.ValidationError
		require.ErrorAs(t, r.Err, &verr)
		fields = append(fields, verr.Field)
	}
	assert.Equal(t, []string{"language", "title", "url"}, fields)
	assert.Equal(t, 3, plan.Summary.Rejected)
}

func TestDiff_UnknownAndDuplicateIDs(t *testing.T) {
	s := testSchema()
	prior := []schema.Record{rec("1", map[string]any{"title": "A"})}
	edited := []schema.Record{
		rec("1", map[string]any{"title": "A"}),
		rec("1", map[string]any{"title": "A again"}),
		rec("99", map[string]any{"title": "ghost"}),
	}

	plan := Diff(s, prior, edited, Options{})

	assert.True(t, plan.Empty())
	require.Len(t, plan.Rejected, 2)
	assert.Equal(t, "1", plan.Rejected[0].Key)
	assert.Contains(t, plan.Rejected[0].Reason, "more than once")
	assert.Equal(t, "99", plan.Rejected[1].Key)
	assert.Contains(t, plan.Rejected[1].Reason, "not part of the loaded page")
}

func TestDiff_PhaseOrder(t *testing.T) {
	s := testSchema()
	prior := []schema.Record{
		rec("10", map[string]any{"title": "ten"}),
		rec("9", map[string]any{"title": "nine"}),
		rec("2", map[string]any{"title": "two"}),
		rec("3", map[string]any{"title": "three"}),
	}
	edited := []schema.Record{
		rec("3", map[string]any{"title": "three!"}),
		rec("", map[string]any{"title": "new"}),
	}

	plan := Diff(s, prior, edited, Options{})

	var got []string
	for _, a := range plan.Actions {
		got = append(got, string(a.Type)+":"+a.Key)
	}
	assert.Equal(t, []string{"delete:2", "delete:9", "delete:10", "create:", "update:3"}, got)
}

func TestDiff_OmittedFieldIsNotAnEdit(t *testing.T) {
	s := testSchema()
	prior := []schema.Record{rec("1", map[string]any{"title": "A", "language": "eng"})}
	edited := []schema.Record{rec("1", map[string]any{"title": "B"})}

	plan := Diff(s, prior, edited, Options{})

	require.Len(t, plan.Actions, 1)
	assert.Equal(t, []string{"title"}, plan.Actions[0].Changed)
	assert.Equal(t, map[string]any{"title": "B"}, plan.Actions[0].Payload)
}

func TestDiff_UpdateWritesChangedFieldsOnly(t *testing.T) {
	s := testSchema()
	prior := []schema.Record{rec("1", map[string]any{
		"title":        "A",
		"release_date": "2024-03-01 00:00:00+0000",
		"language":     "eng",
		"url":          "not a url",
	})}
	edited := []schema.Record{rec("1", map[string]any{
		"title":        "B",
		"release_date": "2024-03-01T00:00:00Z",
		"language":     "eng",
		"url":          "not a url",
	})}

	plan := Diff(s, prior, edited, Options{})

	require.Len(t, plan.Actions, 1, Describe(plan))
	assert.Equal(t, []string{"title"}, plan.Actions[0].Changed)
	assert.Equal(t, map[string]any{"title": "B"}, plan.Actions[0].Payload)
	assert.Empty(t, plan.Rejected, "untouched invalid values do not block the edit")
}

func TestDiff_ServerManagedFieldsIgnored(t *testing.T) {
	s := testSchema()
	prior := []schema.Record{rec("1", map[string]any{"title": "A", "uploaded_time": nil})}
	edited := []schema.Record{rec("1", map[string]any{"title": "A", "uploaded_time": "2024-01-01T00:00:00Z"})}

	plan := Diff(s, prior, edited, Options{})

	assert.True(t, plan.Empty())
}

func TestDiff_OptimisticGuard(t *testing.T) {
	s := testSchema()
	stamp := time.Date(2024, 5, 1, 8, 30, 0, 123000, time.UTC)
	prior := []schema.Record{rec("1", map[string]any{"title": "A", "last_updated_time": stamp})}
	edited := []schema.Record{rec("1", map[string]any{"title": "B"})}

	plan := Diff(s, prior, edited, Options{})
	require.Len(t, plan.Actions, 1)
	assert.Nil(t, plan.Actions[0].Guard)

	plan = Diff(s, prior, edited, Options{OptimisticLocking: true})
	require.Len(t, plan.Actions, 1)
	assert.Equal(t, map[string]any{"last_updated_time": stamp}, plan.Actions[0].Guard)
}

func TestDescribe(t *testing.T) {
	s := testSchema()
	prior := []schema.Record{
		rec("1", map[string]any{"title": "A"}),
		rec("2", map[string]any{"title": "B"}),
	}
	edited := []schema.Record{
		rec("1", map[string]any{"title": "A2"}),
		rec("", map[string]any{"language": "eng"}),
	}

	lines := Describe(Diff(s, prior, edited, Options{}))

	require.Len(t, lines, 3)
	assert.Equal(t, "delete 2", lines[0])
	assert.Equal(t, "update 1 (title)", lines[1])
	assert.Contains(t, lines[2], "invalid row 1")
}
