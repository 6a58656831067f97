package approval

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sala-hr/attendance-backend-go/internal/domain/attendance"
	"github.com/sala-hr/attendance-backend-go/internal/domain/audit"
	"github.com/sala-hr/attendance-backend-go/internal/domain/request"
)

// ErrReconciliationFailed means the status write succeeded but the
// attendance reconciliation did not. The status is NOT rolled back; the
// admin retries the reconciliation manually.
var ErrReconciliationFailed = errors.New("time correction approved but attendance reconciliation failed")

// defaultApprovalNote is attached to reconciled attendance records when the
// admin supplies no reason.
const defaultApprovalNote = "อนุมัติคำขอแก้ไขเวลา"

// Actor is the admin performing a transition.
type Actor struct {
	ID   string
	Name string
}

// Service drives the pending -> approved | rejected workflow for the four
// request kinds. Re-deciding an already-terminal request is deliberately
// permitted so an admin can correct a mistake; the audit entry records the
// prior status.
type Service struct {
	leave      request.Repository[request.LeaveRequest]
	overtime   request.Repository[request.OvertimeRequest]
	swap       request.Repository[request.SwapRequest]
	correction request.Repository[request.CorrectionRequest]
	attendance attendance.Repository
	audit      audit.Repository
	logger     *slog.Logger
}

func NewService(
	leave request.Repository[request.LeaveRequest],
	overtime request.Repository[request.OvertimeRequest],
	swap request.Repository[request.SwapRequest],
	correction request.Repository[request.CorrectionRequest],
	attendanceRepo attendance.Repository,
	auditRepo audit.Repository,
	logger *slog.Logger,
) *Service {
	return &Service{
		leave:      leave,
		overtime:   overtime,
		swap:       swap,
		correction: correction,
		attendance: attendanceRepo,
		audit:      auditRepo,
		logger:     logger,
	}
}

func (s *Service) DecideLeave(ctx context.Context, actor Actor, id string, d request.DecisionRequest) (request.LeaveRequest, error) {
	return decide(ctx, s, s.leave, "leave_requests", actor, id, d)
}

func (s *Service) DecideOvertime(ctx context.Context, actor Actor, id string, d request.DecisionRequest) (request.OvertimeRequest, error) {
	return decide(ctx, s, s.overtime, "overtime_requests", actor, id, d)
}

func (s *Service) DecideSwap(ctx context.Context, actor Actor, id string, d request.DecisionRequest) (request.SwapRequest, error) {
	return decide(ctx, s, s.swap, "swap_requests", actor, id, d)
}

// DecideCorrection transitions a time-correction request and, on approval,
// reconciles the employee's attendance for the affected date. Status write
// and reconciliation are not transactional: when the reconciliation fails
// the approved status stands and the caller gets ErrReconciliationFailed.
func (s *Service) DecideCorrection(ctx context.Context, actor Actor, id string, d request.DecisionRequest) (request.CorrectionRequest, error) {
	updated, err := decide(ctx, s, s.correction, "time_correction_requests", actor, id, d)
	if err != nil {
		return request.CorrectionRequest{}, err
	}

	if d.Approve() {
		if err := s.Reconcile(ctx, actor, updated, d.Reason); err != nil {
			s.logger.Error("attendance reconciliation failed after approval",
				slog.String("correction_id", updated.ID),
				slog.String("employee_id", updated.EmployeeID),
				slog.Any("error", err))
			return updated, fmt.Errorf("%w: %v", ErrReconciliationFailed, err)
		}
	}
	return updated, nil
}

// Reconcile applies an approved correction to the attendance collection:
// the matching record's time is overwritten and a note attached, or a new
// record is created when none exists. Keying on employee/date/entry-type
// makes the write idempotent, so a manual retry cannot duplicate records.
func (s *Service) Reconcile(ctx context.Context, actor Actor, cr request.CorrectionRequest, reason *string) error {
	note := defaultApprovalNote
	if reason != nil && *reason != "" {
		note = *reason
	}

	existing, err := s.attendance.GetByEmployeeDateType(ctx, cr.EmployeeID, cr.Date, cr.EntryType)
	switch {
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		created, err := s.attendance.Create(ctx, attendance.Attendance{
			EmployeeID:   cr.EmployeeID,
			EmployeeName: cr.EmployeeName,
			EntryType:    cr.EntryType,
			Date:         cr.Date,
			Time:         cr.RequestedTime,
			Note:         &note,
		})
		if err != nil {
			return err
		}
		s.appendAudit(ctx, actor, audit.Entry{
			Action:     audit.ActionReconcile,
			Collection: "attendance_records",
			TargetID:   created.ID,
			EmployeeID: cr.EmployeeID,
			Details:    fmt.Sprintf("created %s entry for %s: %s", cr.EntryType, cr.Date.Format("2006-01-02"), note),
		})
		return nil
	case err != nil:
		return err
	default:
		existing.Time = cr.RequestedTime
		existing.Note = &note
		updated, err := s.attendance.Update(ctx, existing)
		if err != nil {
			return err
		}
		s.appendAudit(ctx, actor, audit.Entry{
			Action:     audit.ActionReconcile,
			Collection: "attendance_records",
			TargetID:   updated.ID,
			EmployeeID: cr.EmployeeID,
			Details:    fmt.Sprintf("overwrote %s entry for %s: %s", cr.EntryType, cr.Date.Format("2006-01-02"), note),
		})
		return nil
	}
}

// decide runs the shared transition: read current state, write the new
// status under the caller's version precondition, append the audit entry.
func decide[T request.Record](ctx context.Context, s *Service, repo request.Repository[T], collection string, actor Actor, id string, d request.DecisionRequest) (T, error) {
	var zero T

	current, err := repo.GetByID(ctx, id)
	if err != nil {
		return zero, fmt.Errorf("failed to get request: %w", err)
	}
	prior := current.WorkflowStatus()

	update := request.StatusUpdate{
		Status:  request.StatusApproved,
		Version: d.Version,
	}
	action := audit.ActionApprove
	if !d.Approve() {
		update.Status = request.StatusRejected
		update.RejectionReason = d.Reason
		action = audit.ActionReject
	} else if d.Reason != nil {
		// A reason on approval is kept as a free-text note in the same
		// field. Overloaded, but matches how the data has always been used.
		update.RejectionReason = d.Reason
	}

	updated, err := repo.UpdateStatus(ctx, id, update)
	if err != nil {
		return zero, err
	}

	details := fmt.Sprintf("status %s -> %s", prior, update.Status)
	if d.Reason != nil && *d.Reason != "" {
		details += ": " + *d.Reason
	}
	s.appendAudit(ctx, actor, audit.Entry{
		Action:     action,
		Collection: collection,
		TargetID:   id,
		EmployeeID: current.Subject(),
		Details:    details,
	})
	return updated, nil
}

// appendAudit is a pure side effect: a failed append is logged, never
// surfaced, and never rolls anything back.
func (s *Service) appendAudit(ctx context.Context, actor Actor, e audit.Entry) {
	e.AdminID = actor.ID
	e.AdminName = actor.Name
	if _, err := s.audit.Append(ctx, e); err != nil {
		s.logger.Error("failed to append audit entry",
			slog.String("action", e.Action),
			slog.String("target_id", e.TargetID),
			slog.Any("error", err))
	}
}
