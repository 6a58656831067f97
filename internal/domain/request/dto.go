package request

import (
	"time"

	"github.com/sala-hr/attendance-backend-go/internal/domain/attendance"
	"github.com/sala-hr/attendance-backend-go/internal/pkg/validator"
)

type CreateLeaveRequestRequest struct {
	EmployeeID   string   `json:"employee_id"`
	EmployeeName string   `json:"employee_name"`
	LeaveType    string   `json:"leave_type"`
	StartDate    string   `json:"start_date"` // YYYY-MM-DD
	EndDate      string   `json:"end_date"`   // YYYY-MM-DD
	Reason       string   `json:"reason"`
	Attachments  []string `json:"attachments,omitempty"`
}

func (r *CreateLeaveRequestRequest) Validate() error {
	errs := validateSubject(r.EmployeeID, r.EmployeeName)

	if validator.IsEmpty(r.LeaveType) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type",
			Message: "leave_type is required",
		})
	}

	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}
	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}
	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (r *CreateLeaveRequestRequest) ToEntity() LeaveRequest {
	start, _ := validator.IsValidDate(r.StartDate)
	end, _ := validator.IsValidDate(r.EndDate)
	return LeaveRequest{
		EmployeeID:   r.EmployeeID,
		EmployeeName: r.EmployeeName,
		LeaveType:    r.LeaveType,
		StartDate:    start,
		EndDate:      end,
		Reason:       r.Reason,
		Attachments:  r.Attachments,
		Status:       StatusPending,
	}
}

type CreateOvertimeRequestRequest struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	Date         string `json:"date"`       // YYYY-MM-DD
	StartTime    string `json:"start_time"` // HH:MM
	EndTime      string `json:"end_time"`   // HH:MM
	Reason       string `json:"reason"`
}

func (r *CreateOvertimeRequestRequest) Validate() error {
	errs := validateSubject(r.EmployeeID, r.EmployeeName)

	_, dateOK := validator.IsValidDate(r.Date)
	if !dateOK {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}
	start, startOK := validator.IsValidTimeOfDay(r.StartTime)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "start_time must be in HH:MM format",
		})
	}
	end, endOK := validator.IsValidTimeOfDay(r.EndTime)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end_time must be in HH:MM format",
		})
	}
	if startOK && endOK && !end.After(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end_time must be after start_time",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (r *CreateOvertimeRequestRequest) ToEntity() OvertimeRequest {
	date, _ := validator.IsValidDate(r.Date)
	start, _ := validator.IsValidTimeOfDay(r.StartTime)
	end, _ := validator.IsValidTimeOfDay(r.EndTime)
	return OvertimeRequest{
		EmployeeID:   r.EmployeeID,
		EmployeeName: r.EmployeeName,
		Date:         date,
		StartTime:    onDay(date, start),
		EndTime:      onDay(date, end),
		Reason:       r.Reason,
		Status:       StatusPending,
	}
}

type CreateSwapRequestRequest struct {
	EmployeeID         string `json:"employee_id"`
	EmployeeName       string `json:"employee_name"`
	TargetEmployeeID   string `json:"target_employee_id"`
	TargetEmployeeName string `json:"target_employee_name"`
	ShiftDate          string `json:"shift_date"`        // YYYY-MM-DD
	TargetShiftDate    string `json:"target_shift_date"` // YYYY-MM-DD
	Reason             string `json:"reason"`
}

func (r *CreateSwapRequestRequest) Validate() error {
	errs := validateSubject(r.EmployeeID, r.EmployeeName)

	if validator.IsEmpty(r.TargetEmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "target_employee_id",
			Message: "target_employee_id is required",
		})
	}
	if r.TargetEmployeeID == r.EmployeeID {
		errs = append(errs, validator.ValidationError{
			Field:   "target_employee_id",
			Message: "cannot swap a shift with yourself",
		})
	}
	if _, ok := validator.IsValidDate(r.ShiftDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "shift_date",
			Message: "shift_date must be in YYYY-MM-DD format",
		})
	}
	if _, ok := validator.IsValidDate(r.TargetShiftDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "target_shift_date",
			Message: "target_shift_date must be in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (r *CreateSwapRequestRequest) ToEntity() SwapRequest {
	shiftDate, _ := validator.IsValidDate(r.ShiftDate)
	targetDate, _ := validator.IsValidDate(r.TargetShiftDate)
	return SwapRequest{
		EmployeeID:         r.EmployeeID,
		EmployeeName:       r.EmployeeName,
		TargetEmployeeID:   r.TargetEmployeeID,
		TargetEmployeeName: r.TargetEmployeeName,
		ShiftDate:          shiftDate,
		TargetShiftDate:    targetDate,
		Reason:             r.Reason,
		Status:             StatusPending,
	}
}

type CreateCorrectionRequestRequest struct {
	EmployeeID    string  `json:"employee_id"`
	EmployeeName  string  `json:"employee_name"`
	Date          string  `json:"date"`           // YYYY-MM-DD
	EntryType     string  `json:"entry_type"`     // attendance entry type
	RequestedTime string  `json:"requested_time"` // HH:MM
	Reason        string  `json:"reason"`
	Attachment    *string `json:"attachment,omitempty"`
}

func (r *CreateCorrectionRequestRequest) Validate() error {
	errs := validateSubject(r.EmployeeID, r.EmployeeName)

	if !validator.IsInSlice(r.EntryType, attendance.EntryTypes) {
		errs = append(errs, validator.ValidationError{
			Field:   "entry_type",
			Message: "entry_type must be one of the attendance entry types",
		})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}
	if _, ok := validator.IsValidTimeOfDay(r.RequestedTime); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "requested_time",
			Message: "requested_time must be in HH:MM format",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (r *CreateCorrectionRequestRequest) ToEntity() CorrectionRequest {
	date, _ := validator.IsValidDate(r.Date)
	clock, _ := validator.IsValidTimeOfDay(r.RequestedTime)
	return CorrectionRequest{
		EmployeeID:    r.EmployeeID,
		EmployeeName:  r.EmployeeName,
		Date:          date,
		EntryType:     r.EntryType,
		RequestedTime: onDay(date, clock),
		Reason:        r.Reason,
		Attachment:    r.Attachment,
		Status:        StatusPending,
	}
}

// DecisionRequest is an admin's approve/reject action on a pending (or,
// when correcting a mistake, already-decided) request.
type DecisionRequest struct {
	Action  string  `json:"action"` // approve | reject
	Reason  *string `json:"reason,omitempty"`
	Version string  `json:"version"`
}

func (r *DecisionRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(r.Action, []string{"approve", "reject"}) {
		errs = append(errs, validator.ValidationError{
			Field:   "action",
			Message: "action must be approve or reject",
		})
	}
	if validator.IsEmpty(r.Version) {
		errs = append(errs, validator.ValidationError{
			Field:   "version",
			Message: "version is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (r *DecisionRequest) Approve() bool { return r.Action == "approve" }

func validateSubject(employeeID, employeeName string) validator.ValidationErrors {
	var errs validator.ValidationErrors
	if validator.IsEmpty(employeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if validator.IsEmpty(employeeName) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_name",
			Message: "employee_name is required",
		})
	}
	return errs
}

func onDay(day, clock time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), clock.Hour(), clock.Minute(), 0, 0, time.Local)
}
