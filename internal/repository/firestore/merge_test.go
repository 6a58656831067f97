package firestore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRecord struct {
	id     string
	at     time.Time
	status string
}

func recKey(r fakeRecord) string       { return r.id }
func recAnchor(r fakeRecord) time.Time { return r.at }

func TestMergeVisibleKeepsOldPendingRecord(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC)
	}

	// A pending request far older than the recency window.
	pending := []fakeRecord{{id: "old-pending", at: day(1), status: "pending"}}
	recent := []fakeRecord{
		{id: "r5", at: day(20), status: "approved"},
		{id: "r4", at: day(19), status: "rejected"},
		{id: "r3", at: day(18), status: "approved"},
		{id: "r2", at: day(17), status: "approved"},
		{id: "r1", at: day(16), status: "rejected"},
	}

	merged := MergeVisible(pending, recent, recKey, recAnchor)

	require.Len(t, merged, 6)
	assert.Equal(t, "old-pending", merged[5].id, "old pending request sorts last but stays visible")
	for i := 1; i < len(merged); i++ {
		assert.True(t, !merged[i].at.After(merged[i-1].at), "result must be sorted descending")
	}
}

func TestMergeVisibleDeduplicatesById(t *testing.T) {
	at := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	// A fresh pending request also present in the recent window.
	pending := []fakeRecord{{id: "both", at: at, status: "pending"}}
	recent := []fakeRecord{
		{id: "both", at: at, status: "pending"},
		{id: "other", at: at.Add(-time.Hour), status: "approved"},
	}

	merged := MergeVisible(pending, recent, recKey, recAnchor)
	assert.Len(t, merged, 2)
}

func TestMergeVisibleEmptyInputs(t *testing.T) {
	assert.Empty(t, MergeVisible(nil, nil, recKey, recAnchor))

	one := []fakeRecord{{id: "a", at: time.Now()}}
	assert.Len(t, MergeVisible(one, nil, recKey, recAnchor), 1)
	assert.Len(t, MergeVisible(nil, one, recKey, recAnchor), 1)
}
