package audit

import "time"

// Actions recorded in the admin audit log.
const (
	ActionApprove   = "approve"
	ActionReject    = "reject"
	ActionReconcile = "reconcile_attendance"
	ActionCreate    = "create"
	ActionUpdate    = "update"
	ActionDelete    = "delete"
)

// Entry is one immutable audit-log line. Entries are append-only; nothing
// reads them back into a workflow.
type Entry struct {
	ID         string
	AdminID    string
	AdminName  string
	Action     string
	Collection string
	TargetID   string
	EmployeeID string
	Details    string
	CreatedAt  time.Time
}
