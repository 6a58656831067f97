package request

import "time"

type LeaveRequestResponse struct {
	ID              string   `json:"id"`
	EmployeeID      string   `json:"employee_id"`
	EmployeeName    string   `json:"employee_name"`
	LeaveType       string   `json:"leave_type"`
	StartDate       string   `json:"start_date"`
	EndDate         string   `json:"end_date"`
	Reason          string   `json:"reason"`
	Attachments     []string `json:"attachments,omitempty"`
	Status          string   `json:"status"`
	RejectionReason *string  `json:"rejection_reason,omitempty"`
	CreatedAt       string   `json:"created_at"`
	Version         string   `json:"version"`
}

func ToLeaveResponse(r LeaveRequest) LeaveRequestResponse {
	return LeaveRequestResponse{
		ID:              r.ID,
		EmployeeID:      r.EmployeeID,
		EmployeeName:    r.EmployeeName,
		LeaveType:       r.LeaveType,
		StartDate:       r.StartDate.Format("2006-01-02"),
		EndDate:         r.EndDate.Format("2006-01-02"),
		Reason:          r.Reason,
		Attachments:     r.Attachments,
		Status:          string(r.Status),
		RejectionReason: r.RejectionReason,
		CreatedAt:       r.CreatedAt.Format(time.RFC3339),
		Version:         r.Version,
	}
}

type OvertimeRequestResponse struct {
	ID              string  `json:"id"`
	EmployeeID      string  `json:"employee_id"`
	EmployeeName    string  `json:"employee_name"`
	Date            string  `json:"date"`
	StartTime       string  `json:"start_time"`
	EndTime         string  `json:"end_time"`
	Hours           float64 `json:"hours"`
	Reason          string  `json:"reason"`
	Status          string  `json:"status"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
	CreatedAt       string  `json:"created_at"`
	Version         string  `json:"version"`
}

func ToOvertimeResponse(r OvertimeRequest) OvertimeRequestResponse {
	return OvertimeRequestResponse{
		ID:              r.ID,
		EmployeeID:      r.EmployeeID,
		EmployeeName:    r.EmployeeName,
		Date:            r.Date.Format("2006-01-02"),
		StartTime:       r.StartTime.Format("15:04"),
		EndTime:         r.EndTime.Format("15:04"),
		Hours:           r.Hours(),
		Reason:          r.Reason,
		Status:          string(r.Status),
		RejectionReason: r.RejectionReason,
		CreatedAt:       r.CreatedAt.Format(time.RFC3339),
		Version:         r.Version,
	}
}

type SwapRequestResponse struct {
	ID                 string  `json:"id"`
	EmployeeID         string  `json:"employee_id"`
	EmployeeName       string  `json:"employee_name"`
	TargetEmployeeID   string  `json:"target_employee_id"`
	TargetEmployeeName string  `json:"target_employee_name"`
	ShiftDate          string  `json:"shift_date"`
	TargetShiftDate    string  `json:"target_shift_date"`
	Reason             string  `json:"reason"`
	Status             string  `json:"status"`
	RejectionReason    *string `json:"rejection_reason,omitempty"`
	CreatedAt          string  `json:"created_at"`
	Version            string  `json:"version"`
}

func ToSwapResponse(r SwapRequest) SwapRequestResponse {
	return SwapRequestResponse{
		ID:                 r.ID,
		EmployeeID:         r.EmployeeID,
		EmployeeName:       r.EmployeeName,
		TargetEmployeeID:   r.TargetEmployeeID,
		TargetEmployeeName: r.TargetEmployeeName,
		ShiftDate:          r.ShiftDate.Format("2006-01-02"),
		TargetShiftDate:    r.TargetShiftDate.Format("2006-01-02"),
		Reason:             r.Reason,
		Status:             string(r.Status),
		RejectionReason:    r.RejectionReason,
		CreatedAt:          r.CreatedAt.Format(time.RFC3339),
		Version:            r.Version,
	}
}

type CorrectionRequestResponse struct {
	ID              string  `json:"id"`
	EmployeeID      string  `json:"employee_id"`
	EmployeeName    string  `json:"employee_name"`
	Date            string  `json:"date"`
	EntryType       string  `json:"entry_type"`
	RequestedTime   string  `json:"requested_time"`
	Reason          string  `json:"reason"`
	Attachment      *string `json:"attachment,omitempty"`
	Status          string  `json:"status"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
	CreatedAt       string  `json:"created_at"`
	Version         string  `json:"version"`
}

func ToCorrectionResponse(r CorrectionRequest) CorrectionRequestResponse {
	return CorrectionRequestResponse{
		ID:              r.ID,
		EmployeeID:      r.EmployeeID,
		EmployeeName:    r.EmployeeName,
		Date:            r.Date.Format("2006-01-02"),
		EntryType:       r.EntryType,
		RequestedTime:   r.RequestedTime.Format("15:04"),
		Reason:          r.Reason,
		Attachment:      r.Attachment,
		Status:          string(r.Status),
		RejectionReason: r.RejectionReason,
		CreatedAt:       r.CreatedAt.Format(time.RFC3339),
		Version:         r.Version,
	}
}

// MapResponses converts a slice of records with the given converter.
func MapResponses[T Record, R any](records []T, convert func(T) R) []R {
	out := make([]R, 0, len(records))
	for _, r := range records {
		out = append(out, convert(r))
	}
	return out
}
