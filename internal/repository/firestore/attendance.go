package firestore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sala-hr/attendance-backend-go/internal/domain/attendance"
)

const CollectionAttendance = "attendance_records"

// Wire field names for the attendance collection.
const (
	attEmployeeID   = "employeeId"
	attEmployeeName = "employeeName"
	attEntryType    = "type"
	attDate         = "date"
	attTime         = "time"
	attLateMinutes  = "lateMinutes"
	attPhoto        = "photo"
	attNote         = "note"
	attCreatedAt    = "createdAt"
)

// attendanceLiteFields is the lite-projection allow-list: every field except
// the heavy photo payload. Must stay in sync with encodeAttendance and
// decodeAttendance when fields are added.
var attendanceLiteFields = []string{
	attEmployeeID, attEmployeeName, attEntryType, attDate, attTime,
	attLateMinutes, attNote, attCreatedAt,
}

type attendanceRepository struct {
	client *Client
	logger *slog.Logger
}

func NewAttendanceRepository(client *Client, logger *slog.Logger) attendance.Repository {
	return &attendanceRepository{client: client, logger: logger}
}

func (r *attendanceRepository) Create(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	a.CreatedAt = time.Now()
	doc, err := r.client.CreateDocument(ctx, CollectionAttendance, encodeAttendance(a))
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance record: %w", err)
	}
	return decodeAttendance(doc), nil
}

func (r *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	doc, err := r.client.GetDocument(ctx, CollectionAttendance, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance record: %w", err)
	}
	return decodeAttendance(doc), nil
}

func (r *attendanceRepository) GetByEmployeeDateType(ctx context.Context, employeeID string, date time.Time, entryType string) (attendance.Attendance, error) {
	q := NewQuery(CollectionAttendance).
		WhereEqual(attEmployeeID, String(employeeID)).
		WhereEqual(attDate, Timestamp(dayOf(date))).
		WhereEqual(attEntryType, String(entryType)).
		Limit(1)

	docs, err := r.client.RunQuery(ctx, q)
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to look up attendance record: %w", err)
	}
	if len(docs) == 0 {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return decodeAttendance(docs[0]), nil
}

// Update patches the mutable entry fields. Optional fields that are nil are
// left untouched on the stored document; clearing the photo goes through
// ClearPhoto instead.
func (r *attendanceRepository) Update(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	fields := map[string]Value{
		attEntryType: String(a.EntryType),
		attTime:      Timestamp(a.Time),
	}
	mask := []string{attEntryType, attTime}
	if a.LateMinutes != nil {
		fields[attLateMinutes] = Integer(int64(*a.LateMinutes))
		mask = append(mask, attLateMinutes)
	}
	if a.Note != nil {
		fields[attNote] = String(*a.Note)
		mask = append(mask, attNote)
	}
	if a.Photo != nil {
		fields[attPhoto] = String(*a.Photo)
		mask = append(mask, attPhoto)
	}

	doc, err := r.client.PatchDocument(ctx, CollectionAttendance, a.ID, fields, mask, a.Version)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to update attendance record: %w", err)
	}
	return decodeAttendance(doc), nil
}

// ClearPhoto writes an explicit null over the photo field, as opposed to
// the "not supplied" omission Update performs for a nil photo.
func (r *attendanceRepository) ClearPhoto(ctx context.Context, id, version string) error {
	fields := map[string]Value{attPhoto: Null()}
	if _, err := r.client.PatchDocument(ctx, CollectionAttendance, id, fields, []string{attPhoto}, version); err != nil {
		return fmt.Errorf("failed to clear attendance photo: %w", err)
	}
	return nil
}

func (r *attendanceRepository) Delete(ctx context.Context, id string) error {
	if err := r.client.DeleteDocument(ctx, CollectionAttendance, id); err != nil {
		return fmt.Errorf("failed to delete attendance record: %w", err)
	}
	return nil
}

func (r *attendanceRepository) ListByEmployee(ctx context.Context, employeeID string) ([]attendance.Attendance, error) {
	q := NewQuery(CollectionAttendance).
		WhereEqual(attEmployeeID, String(employeeID)).
		OrderByDesc(attDate).
		Select(attendanceLiteFields...)
	return r.list(ctx, q), nil
}

func (r *attendanceRepository) ListByDateRange(ctx context.Context, from, to time.Time) ([]attendance.Attendance, error) {
	q := NewQuery(CollectionAttendance).
		WhereGreaterOrEqual(attDate, Timestamp(dayOf(from))).
		WhereLessOrEqual(attDate, Timestamp(endOfDay(to))).
		OrderByDesc(attDate).
		Select(attendanceLiteFields...)
	return r.list(ctx, q), nil
}

func (r *attendanceRepository) ListRecent(ctx context.Context, n int) ([]attendance.Attendance, error) {
	q := NewQuery(CollectionAttendance).
		OrderByDesc(attDate).
		Limit(n).
		Select(attendanceLiteFields...)
	return r.list(ctx, q), nil
}

func (r *attendanceRepository) Page(ctx context.Context, cursor string, size int) (attendance.Page, error) {
	q := NewQuery(CollectionAttendance).
		OrderByDesc(attDate).
		Select(attendanceLiteFields...)

	page, err := r.client.Page(ctx, q, cursor, size)
	if err != nil {
		return attendance.Page{}, fmt.Errorf("failed to page attendance records: %w", err)
	}

	records := make([]attendance.Attendance, 0, len(page.Documents))
	for _, doc := range page.Documents {
		records = append(records, decodeAttendance(doc))
	}
	return attendance.Page{
		Records:    records,
		NextCursor: page.NextCursor,
		PrevCursor: page.PrevCursor,
	}, nil
}

// list degrades a failed read to an empty result: the UI shows "no data"
// instead of crashing, at the documented cost that a failure and a truly
// empty collection look the same to the caller.
func (r *attendanceRepository) list(ctx context.Context, q *Query) []attendance.Attendance {
	docs, err := r.client.RunQuery(ctx, q)
	if err != nil {
		r.logger.Error("attendance query failed, returning empty result",
			slog.String("collection", CollectionAttendance),
			slog.Any("error", err))
		return []attendance.Attendance{}
	}
	records := make([]attendance.Attendance, 0, len(docs))
	for _, doc := range docs {
		records = append(records, decodeAttendance(doc))
	}
	return records
}

func encodeAttendance(a attendance.Attendance) map[string]Value {
	fields := map[string]Value{
		attEmployeeID:   String(a.EmployeeID),
		attEmployeeName: String(a.EmployeeName),
		attEntryType:    String(a.EntryType),
		attDate:         Timestamp(dayOf(a.Date)),
		attTime:         Timestamp(a.Time),
		attCreatedAt:    Timestamp(a.CreatedAt),
	}
	if a.LateMinutes != nil {
		fields[attLateMinutes] = Integer(int64(*a.LateMinutes))
	}
	if a.Photo != nil {
		fields[attPhoto] = String(*a.Photo)
	}
	if a.Note != nil {
		fields[attNote] = String(*a.Note)
	}
	return fields
}

func decodeAttendance(doc Document) attendance.Attendance {
	return attendance.Attendance{
		ID:           doc.ID(),
		EmployeeID:   doc.GetString(attEmployeeID),
		EmployeeName: doc.GetString(attEmployeeName),
		EntryType:    doc.GetString(attEntryType),
		Date:         doc.GetTime(attDate),
		Time:         doc.GetTime(attTime),
		LateMinutes:  doc.OptInt(attLateMinutes),
		Photo:        doc.OptString(attPhoto),
		Note:         doc.OptString(attNote),
		CreatedAt:    doc.GetTime(attCreatedAt),
		Version:      doc.UpdateTime,
	}
}

// dayOf normalizes an instant to local midnight, the canonical stored form
// of a calendar day.
func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}

func endOfDay(t time.Time) time.Time {
	return dayOf(t).Add(24*time.Hour - time.Nanosecond)
}
