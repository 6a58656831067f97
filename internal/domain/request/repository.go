package request

import (
	"context"
	"time"
)

// Page is one forward or backward page of request records. An empty cursor
// means there is no page in that direction.
type Page[T Record] struct {
	Records    []T
	NextCursor string
	PrevCursor string
}

// StatusUpdate carries one workflow transition. Version is the store update
// token read with the record; a stale token fails with ErrVersionConflict.
type StatusUpdate struct {
	Status Status
	// RejectionReason replaces the stored reason. nil clears it.
	RejectionReason *string
	Version         string
}

// Repository - interface shared by the four request collections. List reads
// use the lite projection (no attachments); GetByID returns the full
// document. List reads degrade to an empty result on transport failure.
type Repository[T Record] interface {
	Create(ctx context.Context, r T) (T, error)
	GetByID(ctx context.Context, id string) (T, error)
	Update(ctx context.Context, r T) (T, error)
	UpdateStatus(ctx context.Context, id string, update StatusUpdate) (T, error)
	Delete(ctx context.Context, id string) error
	ListByEmployee(ctx context.Context, employeeID string) ([]T, error)
	ListByDateRange(ctx context.Context, from, to time.Time) ([]T, error)
	ListPending(ctx context.Context) ([]T, error)
	ListRecent(ctx context.Context, n int) ([]T, error)
	// ListVisible unions ListPending with ListRecent(n) by id so an old
	// pending request is never hidden by the recency window.
	ListVisible(ctx context.Context, n int) ([]T, error)
	Page(ctx context.Context, cursor string, size int) (Page[T], error)
}
