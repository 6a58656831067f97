package firestore

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/sala-hr/attendance-backend-go/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetByEmployeeDateTypeFiltersExactly(t *testing.T) {
	var captured runQueryRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Write([]byte(`[{"readTime":"2024-03-01T00:00:00Z"}]`))
	})
	repo := NewAttendanceRepository(client, testLogger())

	_, err := repo.GetByEmployeeDateType(context.Background(), "E1",
		time.Date(2024, 3, 1, 14, 30, 0, 0, time.Local), "เข้างาน")
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)

	sq := captured.StructuredQuery
	require.NotNil(t, sq.Where)
	require.NotNil(t, sq.Where.CompositeFilter)
	assert.Len(t, sq.Where.CompositeFilter.Filters, 3)
	assert.Equal(t, 1, sq.Limit)

	// The date filter is normalized to midnight regardless of the clock time
	// passed in.
	for _, f := range sq.Where.CompositeFilter.Filters {
		if f.FieldFilter.Field.FieldPath != "date" {
			continue
		}
		at, ok := f.FieldFilter.Value.Native().(time.Time)
		require.True(t, ok)
		assert.Equal(t, 0, at.Local().Hour())
		assert.Equal(t, 0, at.Local().Minute())
	}
}

func TestClearPhotoWritesExplicitNull(t *testing.T) {
	var captured Document
	var query map[string][]string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Write([]byte(`{"name":"projects/p/databases/(default)/documents/attendance_records/a1","fields":{}}`))
	})
	repo := NewAttendanceRepository(client, testLogger())

	require.NoError(t, repo.ClearPhoto(context.Background(), "a1", "2024-03-01T00:00:00Z"))

	require.True(t, captured.Has("photo"))
	raw, err := json.Marshal(captured.Fields["photo"])
	require.NoError(t, err)
	assert.JSONEq(t, `{"nullValue":null}`, string(raw))
	assert.Equal(t, []string{"photo"}, query["updateMask.fieldPaths"])
}

func TestUpdateOmitsUnsetOptionalFields(t *testing.T) {
	var captured Document
	var query map[string][]string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Write([]byte(`{"name":"projects/p/databases/(default)/documents/attendance_records/a1","fields":{},"updateTime":"2024-03-02T00:00:00Z"}`))
	})
	repo := NewAttendanceRepository(client, testLogger())

	note := "มาสาย"
	_, err := repo.Update(context.Background(), attendance.Attendance{
		ID:        "a1",
		EntryType: "เข้างาน",
		Time:      time.Date(2024, 3, 1, 8, 15, 0, 0, time.Local),
		Note:      &note,
		Version:   "2024-03-01T00:00:00Z",
	})
	require.NoError(t, err)

	// Nil pointers mean "leave the stored value alone": neither the field nor
	// its mask entry is sent.
	assert.False(t, captured.Has("photo"))
	assert.False(t, captured.Has("lateMinutes"))
	assert.Equal(t, "มาสาย", captured.GetString("note"))
	assert.ElementsMatch(t, []string{"type", "time", "note"}, query["updateMask.fieldPaths"])
	assert.Equal(t, []string{"2024-03-01T00:00:00Z"}, query["currentDocument.updateTime"])
}

func TestAttendanceListPageExcludesPhoto(t *testing.T) {
	var captured runQueryRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Write([]byte(`[]`))
	})
	repo := NewAttendanceRepository(client, testLogger())

	_, err := repo.ListRecent(context.Background(), 5)
	require.NoError(t, err)

	require.NotNil(t, captured.StructuredQuery.Select)
	for _, f := range captured.StructuredQuery.Select.Fields {
		assert.NotEqual(t, "photo", f.FieldPath)
	}
}
