package firestore

import (
	"sort"
	"time"
)

// MergeVisible unions two result sets over the same collection by id: an
// unbounded "status = pending" set and a bounded "N most recent" set. The
// union guarantees a pending record older than the recency window is still
// visible, while the bounded query keeps the decided tail cheap to fetch.
//
// The later set wins when both carry the same id; within one request cycle
// the two queries are not expected to disagree on payload. The result is
// sorted descending by the record's temporal anchor.
func MergeVisible[T any](pending, recent []T, key func(T) string, anchor func(T) time.Time) []T {
	merged := make(map[string]T, len(pending)+len(recent))
	for _, r := range pending {
		merged[key(r)] = r
	}
	for _, r := range recent {
		merged[key(r)] = r
	}

	out := make([]T, 0, len(merged))
	for _, r := range merged {
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return anchor(out[i]).After(anchor(out[j]))
	})
	return out
}
