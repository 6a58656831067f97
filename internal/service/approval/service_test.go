package approval

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/sala-hr/attendance-backend-go/internal/domain/attendance"
	"github.com/sala-hr/attendance-backend-go/internal/domain/audit"
	"github.com/sala-hr/attendance-backend-go/internal/domain/request"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRequestRepo[T request.Record] struct {
	records    map[string]T
	apply      func(T, request.StatusUpdate) T
	updateErr  error
	lastUpdate request.StatusUpdate
}

func (f *fakeRequestRepo[T]) Create(ctx context.Context, r T) (T, error) {
	f.records[r.Key()] = r
	return r, nil
}

func (f *fakeRequestRepo[T]) GetByID(ctx context.Context, id string) (T, error) {
	r, ok := f.records[id]
	if !ok {
		var zero T
		return zero, request.ErrRequestNotFound
	}
	return r, nil
}

func (f *fakeRequestRepo[T]) Update(ctx context.Context, r T) (T, error) {
	f.records[r.Key()] = r
	return r, nil
}

func (f *fakeRequestRepo[T]) UpdateStatus(ctx context.Context, id string, update request.StatusUpdate) (T, error) {
	var zero T
	if f.updateErr != nil {
		return zero, f.updateErr
	}
	r, ok := f.records[id]
	if !ok {
		return zero, request.ErrRequestNotFound
	}
	f.lastUpdate = update
	updated := f.apply(r, update)
	f.records[id] = updated
	return updated, nil
}

func (f *fakeRequestRepo[T]) Delete(ctx context.Context, id string) error {
	delete(f.records, id)
	return nil
}

func (f *fakeRequestRepo[T]) ListByEmployee(ctx context.Context, employeeID string) ([]T, error) {
	return nil, nil
}

func (f *fakeRequestRepo[T]) ListByDateRange(ctx context.Context, from, to time.Time) ([]T, error) {
	return nil, nil
}

func (f *fakeRequestRepo[T]) ListPending(ctx context.Context) ([]T, error) { return nil, nil }

func (f *fakeRequestRepo[T]) ListRecent(ctx context.Context, n int) ([]T, error) { return nil, nil }

func (f *fakeRequestRepo[T]) ListVisible(ctx context.Context, n int) ([]T, error) { return nil, nil }

func (f *fakeRequestRepo[T]) Page(ctx context.Context, cursor string, size int) (request.Page[T], error) {
	return request.Page[T]{}, nil
}

type fakeAttendanceRepo struct {
	records   map[string]attendance.Attendance
	createErr error
	nextID    int
}

func attKey(employeeID string, date time.Time, entryType string) string {
	return fmt.Sprintf("%s|%s|%s", employeeID, date.Format("2006-01-02"), entryType)
}

func (f *fakeAttendanceRepo) Create(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	if f.createErr != nil {
		return attendance.Attendance{}, f.createErr
	}
	f.nextID++
	a.ID = fmt.Sprintf("att-%d", f.nextID)
	f.records[attKey(a.EmployeeID, a.Date, a.EntryType)] = a
	return a, nil
}

func (f *fakeAttendanceRepo) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	for _, a := range f.records {
		if a.ID == id {
			return a, nil
		}
	}
	return attendance.Attendance{}, attendance.ErrAttendanceNotFound
}

func (f *fakeAttendanceRepo) GetByEmployeeDateType(ctx context.Context, employeeID string, date time.Time, entryType string) (attendance.Attendance, error) {
	a, ok := f.records[attKey(employeeID, date, entryType)]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return a, nil
}

func (f *fakeAttendanceRepo) Update(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	f.records[attKey(a.EmployeeID, a.Date, a.EntryType)] = a
	return a, nil
}

func (f *fakeAttendanceRepo) ClearPhoto(ctx context.Context, id, version string) error { return nil }

func (f *fakeAttendanceRepo) Delete(ctx context.Context, id string) error { return nil }

func (f *fakeAttendanceRepo) ListByEmployee(ctx context.Context, employeeID string) ([]attendance.Attendance, error) {
	return nil, nil
}

func (f *fakeAttendanceRepo) ListByDateRange(ctx context.Context, from, to time.Time) ([]attendance.Attendance, error) {
	return nil, nil
}

func (f *fakeAttendanceRepo) ListRecent(ctx context.Context, n int) ([]attendance.Attendance, error) {
	return nil, nil
}

func (f *fakeAttendanceRepo) Page(ctx context.Context, cursor string, size int) (attendance.Page, error) {
	return attendance.Page{}, nil
}

type fakeAuditRepo struct {
	entries   []audit.Entry
	appendErr error
}

func (f *fakeAuditRepo) Append(ctx context.Context, e audit.Entry) (audit.Entry, error) {
	if f.appendErr != nil {
		return audit.Entry{}, f.appendErr
	}
	f.entries = append(f.entries, e)
	return e, nil
}

func (f *fakeAuditRepo) ListRecent(ctx context.Context, n int) ([]audit.Entry, error) {
	return f.entries, nil
}

func (f *fakeAuditRepo) ListByEmployee(ctx context.Context, employeeID string) ([]audit.Entry, error) {
	return nil, nil
}

func applyLeave(r request.LeaveRequest, u request.StatusUpdate) request.LeaveRequest {
	r.Status = u.Status
	r.RejectionReason = u.RejectionReason
	r.Version = "v2"
	return r
}

func applyCorrection(r request.CorrectionRequest, u request.StatusUpdate) request.CorrectionRequest {
	r.Status = u.Status
	r.RejectionReason = u.RejectionReason
	r.Version = "v2"
	return r
}

type fixture struct {
	service    *Service
	leave      *fakeRequestRepo[request.LeaveRequest]
	correction *fakeRequestRepo[request.CorrectionRequest]
	attendance *fakeAttendanceRepo
	audit      *fakeAuditRepo
}

func newFixture() *fixture {
	f := &fixture{
		leave: &fakeRequestRepo[request.LeaveRequest]{
			records: map[string]request.LeaveRequest{},
			apply:   applyLeave,
		},
		correction: &fakeRequestRepo[request.CorrectionRequest]{
			records: map[string]request.CorrectionRequest{},
			apply:   applyCorrection,
		},
		attendance: &fakeAttendanceRepo{records: map[string]attendance.Attendance{}},
		audit:      &fakeAuditRepo{},
	}
	overtime := &fakeRequestRepo[request.OvertimeRequest]{records: map[string]request.OvertimeRequest{}}
	swap := &fakeRequestRepo[request.SwapRequest]{records: map[string]request.SwapRequest{}}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	f.service = NewService(f.leave, overtime, swap, f.correction, f.attendance, f.audit, logger)
	return f
}

var testActor = Actor{ID: "admin-1", Name: "Admin"}

func pendingLeave(id string) request.LeaveRequest {
	return request.LeaveRequest{
		ID:         id,
		EmployeeID: "E1",
		StartDate:  time.Date(2024, 3, 4, 0, 0, 0, 0, time.Local),
		Status:     request.StatusPending,
		Version:    "v1",
	}
}

func pendingCorrection(id string) request.CorrectionRequest {
	return request.CorrectionRequest{
		ID:            id,
		EmployeeID:    "E1",
		EmployeeName:  "Somchai",
		Date:          time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local),
		EntryType:     "เข้างาน",
		RequestedTime: time.Date(2024, 3, 1, 8, 15, 0, 0, time.Local),
		Status:        request.StatusPending,
		Version:       "v1",
	}
}

func TestDecideLeaveApprove(t *testing.T) {
	f := newFixture()
	f.leave.records["L1"] = pendingLeave("L1")

	updated, err := f.service.DecideLeave(context.Background(), testActor, "L1",
		request.DecisionRequest{Action: "approve", Version: "v1"})
	require.NoError(t, err)
	assert.Equal(t, request.StatusApproved, updated.Status)
	assert.Equal(t, "v1", f.leave.lastUpdate.Version, "caller's version travels as the write precondition")

	require.Len(t, f.audit.entries, 1)
	entry := f.audit.entries[0]
	assert.Equal(t, audit.ActionApprove, entry.Action)
	assert.Equal(t, "leave_requests", entry.Collection)
	assert.Equal(t, "L1", entry.TargetID)
	assert.Equal(t, "E1", entry.EmployeeID)
	assert.Equal(t, "admin-1", entry.AdminID)
	assert.Contains(t, entry.Details, "status pending -> approved")
}

func TestDecideLeaveRejectStoresReason(t *testing.T) {
	f := newFixture()
	f.leave.records["L1"] = pendingLeave("L1")

	reason := "ไม่มีวันลาคงเหลือ"
	updated, err := f.service.DecideLeave(context.Background(), testActor, "L1",
		request.DecisionRequest{Action: "reject", Reason: &reason, Version: "v1"})
	require.NoError(t, err)
	assert.Equal(t, request.StatusRejected, updated.Status)
	require.NotNil(t, updated.RejectionReason)
	assert.Equal(t, reason, *updated.RejectionReason)

	require.Len(t, f.audit.entries, 1)
	assert.Equal(t, audit.ActionReject, f.audit.entries[0].Action)
	assert.Contains(t, f.audit.entries[0].Details, reason)
}

func TestDecideOverTerminalStatusIsPermitted(t *testing.T) {
	f := newFixture()
	approved := pendingLeave("L1")
	approved.Status = request.StatusApproved
	f.leave.records["L1"] = approved

	// An admin correcting a mistaken approval flips it to rejected; the
	// audit entry records where the record came from.
	updated, err := f.service.DecideLeave(context.Background(), testActor, "L1",
		request.DecisionRequest{Action: "reject", Version: "v1"})
	require.NoError(t, err)
	assert.Equal(t, request.StatusRejected, updated.Status)

	require.Len(t, f.audit.entries, 1)
	assert.Contains(t, f.audit.entries[0].Details, "status approved -> rejected")
}

func TestDecideVersionConflictSurfacesAndSkipsAudit(t *testing.T) {
	f := newFixture()
	f.leave.records["L1"] = pendingLeave("L1")
	f.leave.updateErr = request.ErrVersionConflict

	_, err := f.service.DecideLeave(context.Background(), testActor, "L1",
		request.DecisionRequest{Action: "approve", Version: "stale"})
	assert.ErrorIs(t, err, request.ErrVersionConflict)
	assert.Empty(t, f.audit.entries)
}

func TestDecideUnknownRequest(t *testing.T) {
	f := newFixture()

	_, err := f.service.DecideLeave(context.Background(), testActor, "missing",
		request.DecisionRequest{Action: "approve", Version: "v1"})
	assert.ErrorIs(t, err, request.ErrRequestNotFound)
}

func TestApproveCorrectionCreatesMissingAttendance(t *testing.T) {
	f := newFixture()
	f.correction.records["C1"] = pendingCorrection("C1")

	updated, err := f.service.DecideCorrection(context.Background(), testActor, "C1",
		request.DecisionRequest{Action: "approve", Version: "v1"})
	require.NoError(t, err)
	assert.Equal(t, request.StatusApproved, updated.Status)

	require.Len(t, f.attendance.records, 1)
	created, err := f.attendance.GetByEmployeeDateType(context.Background(), "E1",
		time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local), "เข้างาน")
	require.NoError(t, err)
	assert.Equal(t, 8, created.Time.Hour())
	assert.Equal(t, 15, created.Time.Minute())
	require.NotNil(t, created.Note)
	assert.Equal(t, "อนุมัติคำขอแก้ไขเวลา", *created.Note)

	// One entry for the decision, one for the reconciliation.
	require.Len(t, f.audit.entries, 2)
	assert.Equal(t, audit.ActionApprove, f.audit.entries[0].Action)
	assert.Equal(t, audit.ActionReconcile, f.audit.entries[1].Action)
	assert.Equal(t, "attendance_records", f.audit.entries[1].Collection)
}

func TestApproveCorrectionOverwritesExistingEntry(t *testing.T) {
	f := newFixture()
	f.correction.records["C1"] = pendingCorrection("C1")

	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local)
	f.attendance.records[attKey("E1", day, "เข้างาน")] = attendance.Attendance{
		ID:         "att-existing",
		EmployeeID: "E1",
		EntryType:  "เข้างาน",
		Date:       day,
		Time:       time.Date(2024, 3, 1, 9, 0, 0, 0, time.Local),
	}

	reason := "ลืมสแกนนิ้ว"
	_, err := f.service.DecideCorrection(context.Background(), testActor, "C1",
		request.DecisionRequest{Action: "approve", Reason: &reason, Version: "v1"})
	require.NoError(t, err)

	require.Len(t, f.attendance.records, 1, "no duplicate record for the same employee/day/type")
	got := f.attendance.records[attKey("E1", day, "เข้างาน")]
	assert.Equal(t, "att-existing", got.ID)
	assert.Equal(t, 8, got.Time.Hour())
	require.NotNil(t, got.Note)
	assert.Equal(t, reason, *got.Note, "the admin's reason replaces the default note")
}

func TestRejectCorrectionLeavesAttendanceAlone(t *testing.T) {
	f := newFixture()
	f.correction.records["C1"] = pendingCorrection("C1")

	_, err := f.service.DecideCorrection(context.Background(), testActor, "C1",
		request.DecisionRequest{Action: "reject", Version: "v1"})
	require.NoError(t, err)
	assert.Empty(t, f.attendance.records)
	require.Len(t, f.audit.entries, 1)
	assert.Equal(t, audit.ActionReject, f.audit.entries[0].Action)
}

func TestReconciliationFailureKeepsApprovedStatus(t *testing.T) {
	f := newFixture()
	f.correction.records["C1"] = pendingCorrection("C1")
	f.attendance.createErr = errors.New("store unavailable")

	updated, err := f.service.DecideCorrection(context.Background(), testActor, "C1",
		request.DecisionRequest{Action: "approve", Version: "v1"})
	assert.ErrorIs(t, err, ErrReconciliationFailed)

	// The transition is not rolled back; the caller retries the
	// reconciliation, not the approval.
	assert.Equal(t, request.StatusApproved, updated.Status)
	assert.Equal(t, request.StatusApproved, f.correction.records["C1"].Status)
}

func TestAuditFailureNeverSurfaces(t *testing.T) {
	f := newFixture()
	f.leave.records["L1"] = pendingLeave("L1")
	f.audit.appendErr = errors.New("audit store down")

	updated, err := f.service.DecideLeave(context.Background(), testActor, "L1",
		request.DecisionRequest{Action: "approve", Version: "v1"})
	require.NoError(t, err)
	assert.Equal(t, request.StatusApproved, updated.Status)
}
