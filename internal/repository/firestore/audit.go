package firestore

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/sala-hr/attendance-backend-go/internal/domain/audit"
)

const CollectionAuditLog = "admin_audit_log"

const (
	auditAdminID    = "adminId"
	auditAdminName  = "adminName"
	auditAction     = "action"
	auditCollection = "collection"
	auditTargetID   = "targetId"
	auditEmployeeID = "employeeId"
	auditDetails    = "details"
	auditCreatedAt  = "createdAt"
)

type auditRepository struct {
	client *Client
	logger *slog.Logger
}

func NewAuditRepository(client *Client, logger *slog.Logger) audit.Repository {
	return &auditRepository{client: client, logger: logger}
}

// Append writes one immutable entry. The document id is a ULID so entries
// sort chronologically by id as well as by timestamp.
func (r *auditRepository) Append(ctx context.Context, e audit.Entry) (audit.Entry, error) {
	e.ID = ulid.Make().String()
	e.CreatedAt = time.Now()

	fields := map[string]Value{
		auditAdminID:    String(e.AdminID),
		auditAdminName:  String(e.AdminName),
		auditAction:     String(e.Action),
		auditCollection: String(e.Collection),
		auditTargetID:   String(e.TargetID),
		auditEmployeeID: String(e.EmployeeID),
		auditDetails:    String(e.Details),
		auditCreatedAt:  Timestamp(e.CreatedAt),
	}

	if _, err := r.client.CreateDocumentWithID(ctx, CollectionAuditLog, e.ID, fields); err != nil {
		return audit.Entry{}, fmt.Errorf("failed to append audit entry: %w", err)
	}
	return e, nil
}

func (r *auditRepository) ListRecent(ctx context.Context, n int) ([]audit.Entry, error) {
	q := NewQuery(CollectionAuditLog).
		OrderByDesc(auditCreatedAt).
		Limit(n)
	return r.list(ctx, q), nil
}

func (r *auditRepository) ListByEmployee(ctx context.Context, employeeID string) ([]audit.Entry, error) {
	q := NewQuery(CollectionAuditLog).
		WhereEqual(auditEmployeeID, String(employeeID)).
		OrderByDesc(auditCreatedAt)
	return r.list(ctx, q), nil
}

func (r *auditRepository) list(ctx context.Context, q *Query) []audit.Entry {
	docs, err := r.client.RunQuery(ctx, q)
	if err != nil {
		r.logger.Error("audit query failed, returning empty result",
			slog.String("collection", CollectionAuditLog),
			slog.Any("error", err))
		return []audit.Entry{}
	}
	entries := make([]audit.Entry, 0, len(docs))
	for _, doc := range docs {
		entries = append(entries, decodeAuditEntry(doc))
	}
	return entries
}

func decodeAuditEntry(doc Document) audit.Entry {
	return audit.Entry{
		ID:         doc.ID(),
		AdminID:    doc.GetString(auditAdminID),
		AdminName:  doc.GetString(auditAdminName),
		Action:     doc.GetString(auditAction),
		Collection: doc.GetString(auditCollection),
		TargetID:   doc.GetString(auditTargetID),
		EmployeeID: doc.GetString(auditEmployeeID),
		Details:    doc.GetString(auditDetails),
		CreatedAt:  doc.GetTime(auditCreatedAt),
	}
}
