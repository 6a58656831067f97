package records

import (
	"context"
	"log/slog"

	"github.com/sala-hr/attendance-backend-go/internal/domain/attendance"
	"github.com/sala-hr/attendance-backend-go/internal/domain/request"
	"golang.org/x/sync/errgroup"
)

// Overview is everything on file for one employee, across every record
// kind, in lite form.
type Overview struct {
	Attendance  []attendance.Attendance
	Leave       []request.LeaveRequest
	Overtime    []request.OvertimeRequest
	Swaps       []request.SwapRequest
	Corrections []request.CorrectionRequest
}

// Inbox is the admin review queue: per kind, every pending request plus the
// N most recent decided ones (the visibility merge).
type Inbox struct {
	Leave       []request.LeaveRequest
	Overtime    []request.OvertimeRequest
	Swaps       []request.SwapRequest
	Corrections []request.CorrectionRequest
}

// Service aggregates reads across record kinds. Queries for unrelated kinds
// are independent, so they are fired together and joined rather than
// serialized.
type Service struct {
	attendance attendance.Repository
	leave      request.Repository[request.LeaveRequest]
	overtime   request.Repository[request.OvertimeRequest]
	swap       request.Repository[request.SwapRequest]
	correction request.Repository[request.CorrectionRequest]
	logger     *slog.Logger
}

func NewService(
	attendanceRepo attendance.Repository,
	leave request.Repository[request.LeaveRequest],
	overtime request.Repository[request.OvertimeRequest],
	swap request.Repository[request.SwapRequest],
	correction request.Repository[request.CorrectionRequest],
	logger *slog.Logger,
) *Service {
	return &Service{
		attendance: attendanceRepo,
		leave:      leave,
		overtime:   overtime,
		swap:       swap,
		correction: correction,
		logger:     logger,
	}
}

// EmployeeOverview fetches all five collections for one employee
// concurrently. Individual list failures have already degraded to empty
// inside the repositories.
func (s *Service) EmployeeOverview(ctx context.Context, employeeID string) (Overview, error) {
	var out Overview
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		out.Attendance, err = s.attendance.ListByEmployee(gctx, employeeID)
		return err
	})
	g.Go(func() (err error) {
		out.Leave, err = s.leave.ListByEmployee(gctx, employeeID)
		return err
	})
	g.Go(func() (err error) {
		out.Overtime, err = s.overtime.ListByEmployee(gctx, employeeID)
		return err
	})
	g.Go(func() (err error) {
		out.Swaps, err = s.swap.ListByEmployee(gctx, employeeID)
		return err
	})
	g.Go(func() (err error) {
		out.Corrections, err = s.correction.ListByEmployee(gctx, employeeID)
		return err
	})

	if err := g.Wait(); err != nil {
		return Overview{}, err
	}
	return out, nil
}

// PendingInbox fetches the visibility merge for all four request kinds
// concurrently.
func (s *Service) PendingInbox(ctx context.Context, recentN int) (Inbox, error) {
	var out Inbox
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		out.Leave, err = s.leave.ListVisible(gctx, recentN)
		return err
	})
	g.Go(func() (err error) {
		out.Overtime, err = s.overtime.ListVisible(gctx, recentN)
		return err
	})
	g.Go(func() (err error) {
		out.Swaps, err = s.swap.ListVisible(gctx, recentN)
		return err
	})
	g.Go(func() (err error) {
		out.Corrections, err = s.correction.ListVisible(gctx, recentN)
		return err
	})

	if err := g.Wait(); err != nil {
		return Inbox{}, err
	}
	return out, nil
}
