package audit

import "context"

// Repository - interface for the append-only admin audit log.
type Repository interface {
	Append(ctx context.Context, e Entry) (Entry, error)
	ListRecent(ctx context.Context, n int) ([]Entry, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]Entry, error)
}
