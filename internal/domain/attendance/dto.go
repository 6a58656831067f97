package attendance

import (
	"time"

	"github.com/sala-hr/attendance-backend-go/internal/pkg/validator"
)

type CreateAttendanceRequest struct {
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name"`
	EntryType    string  `json:"entry_type"`
	Date         string  `json:"date"` // YYYY-MM-DD
	Time         string  `json:"time"` // HH:MM
	LateMinutes  *int    `json:"late_minutes,omitempty"`
	Photo        *string `json:"photo,omitempty"`
	Note         *string `json:"note,omitempty"`
}

func (r *CreateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if validator.IsEmpty(r.EmployeeName) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_name",
			Message: "employee_name is required",
		})
	}

	if !validator.IsInSlice(r.EntryType, EntryTypes) {
		errs = append(errs, validator.ValidationError{
			Field:   "entry_type",
			Message: "entry_type must be one of the attendance entry types",
		})
	}

	if _, valid := validator.IsValidDate(r.Date); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if _, valid := validator.IsValidTimeOfDay(r.Time); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "time",
			Message: "time must be in HH:MM format",
		})
	}

	if r.LateMinutes != nil && *r.LateMinutes < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "late_minutes",
			Message: "late_minutes must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ToEntity converts the validated request into an entity. Date and Time must
// have passed Validate first.
func (r *CreateAttendanceRequest) ToEntity() Attendance {
	date, _ := validator.IsValidDate(r.Date)
	clock, _ := validator.IsValidTimeOfDay(r.Time)
	at := time.Date(date.Year(), date.Month(), date.Day(), clock.Hour(), clock.Minute(), 0, 0, time.Local)

	return Attendance{
		EmployeeID:   r.EmployeeID,
		EmployeeName: r.EmployeeName,
		EntryType:    r.EntryType,
		Date:         date,
		Time:         at,
		LateMinutes:  r.LateMinutes,
		Photo:        r.Photo,
		Note:         r.Note,
	}
}

type UpdateAttendanceRequest struct {
	EntryType   *string `json:"entry_type,omitempty"`
	Time        *string `json:"time,omitempty"` // HH:MM
	LateMinutes *int    `json:"late_minutes,omitempty"`
	Note        *string `json:"note,omitempty"`
	// ClearPhoto writes an explicit null over the stored photo, as opposed
	// to leaving it untouched.
	ClearPhoto bool   `json:"clear_photo,omitempty"`
	Version    string `json:"version"`
}

func (r *UpdateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EntryType != nil && !validator.IsInSlice(*r.EntryType, EntryTypes) {
		errs = append(errs, validator.ValidationError{
			Field:   "entry_type",
			Message: "entry_type must be one of the attendance entry types",
		})
	}

	if r.Time != nil {
		if _, valid := validator.IsValidTimeOfDay(*r.Time); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "time",
				Message: "time must be in HH:MM format",
			})
		}
	}

	if r.LateMinutes != nil && *r.LateMinutes < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "late_minutes",
			Message: "late_minutes must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AttendanceResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name"`
	EntryType    string  `json:"entry_type"`
	Date         string  `json:"date"`
	Time         string  `json:"time"`
	LateMinutes  *int    `json:"late_minutes,omitempty"`
	Photo        *string `json:"photo,omitempty"`
	Note         *string `json:"note,omitempty"`
	CreatedAt    string  `json:"created_at"`
	Version      string  `json:"version"`
}

func ToResponse(a Attendance) AttendanceResponse {
	return AttendanceResponse{
		ID:           a.ID,
		EmployeeID:   a.EmployeeID,
		EmployeeName: a.EmployeeName,
		EntryType:    a.EntryType,
		Date:         a.Date.Format("2006-01-02"),
		Time:         a.Time.Format("15:04"),
		LateMinutes:  a.LateMinutes,
		Photo:        a.Photo,
		Note:         a.Note,
		CreatedAt:    a.CreatedAt.Format(time.RFC3339),
		Version:      a.Version,
	}
}

func ToResponses(records []Attendance) []AttendanceResponse {
	out := make([]AttendanceResponse, 0, len(records))
	for _, a := range records {
		out = append(out, ToResponse(a))
	}
	return out
}
