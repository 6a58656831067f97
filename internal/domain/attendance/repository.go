package attendance

import (
	"context"
	"time"
)

// Page is one forward or backward page of attendance records. An empty
// cursor means there is no page in that direction.
type Page struct {
	Records    []Attendance
	NextCursor string
	PrevCursor string
}

// Repository - interface for the attendance collection. List reads use the
// lite projection (no photo); GetByID returns the full document.
type Repository interface {
	Create(ctx context.Context, a Attendance) (Attendance, error)
	GetByID(ctx context.Context, id string) (Attendance, error)
	// GetByEmployeeDateType finds the record for one employee, calendar day
	// and entry type; the reconciliation of approved time corrections keys
	// on this lookup.
	GetByEmployeeDateType(ctx context.Context, employeeID string, date time.Time, entryType string) (Attendance, error)
	Update(ctx context.Context, a Attendance) (Attendance, error)
	// ClearPhoto removes the stored photo with an explicit null write,
	// distinct from an update that simply does not supply one.
	ClearPhoto(ctx context.Context, id, version string) error
	Delete(ctx context.Context, id string) error
	ListByEmployee(ctx context.Context, employeeID string) ([]Attendance, error)
	ListByDateRange(ctx context.Context, from, to time.Time) ([]Attendance, error)
	ListRecent(ctx context.Context, n int) ([]Attendance, error)
	Page(ctx context.Context, cursor string, size int) (Page, error)
}
