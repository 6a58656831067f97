package request

import "time"

// Status is the workflow status shared by every request kind.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Statuses lists every valid workflow status value.
var Statuses = []string{string(StatusPending), string(StatusApproved), string(StatusRejected)}

// Record is the common surface of the four request kinds. The access layer
// uses it to merge, sort and de-duplicate result sets without knowing the
// concrete kind.
type Record interface {
	Key() string
	// Anchor is the record's temporal anchor used for descending sort.
	Anchor() time.Time
	// Token is the store's opaque update token, used as a write
	// precondition.
	Token() string
	Subject() string
	WorkflowStatus() Status
}

// LeaveRequest asks for a span of days off.
type LeaveRequest struct {
	ID         string
	EmployeeID string
	// EmployeeName is denormalized at write time and is not refreshed when
	// an employee is renamed.
	EmployeeName string
	LeaveType    string
	StartDate    time.Time
	EndDate      time.Time
	Reason       string
	// Attachments are base64-encoded images, excluded from lite reads.
	Attachments []string
	Status      Status
	// RejectionReason is meaningful on rejected requests; on approved ones
	// it is tolerated as a free-text note.
	RejectionReason *string
	CreatedAt       time.Time
	Version         string
}

func (r LeaveRequest) Key() string            { return r.ID }
func (r LeaveRequest) Anchor() time.Time      { return r.StartDate }
func (r LeaveRequest) Token() string          { return r.Version }
func (r LeaveRequest) Subject() string        { return r.EmployeeID }
func (r LeaveRequest) WorkflowStatus() Status { return r.Status }

// OvertimeRequest asks for extra working hours on one day.
type OvertimeRequest struct {
	ID              string
	EmployeeID      string
	EmployeeName    string
	Date            time.Time
	StartTime       time.Time
	EndTime         time.Time
	Reason          string
	Status          Status
	RejectionReason *string
	CreatedAt       time.Time
	Version         string
}

func (r OvertimeRequest) Key() string            { return r.ID }
func (r OvertimeRequest) Anchor() time.Time      { return r.Date }
func (r OvertimeRequest) Token() string          { return r.Version }
func (r OvertimeRequest) Subject() string        { return r.EmployeeID }
func (r OvertimeRequest) WorkflowStatus() Status { return r.Status }

// Hours is the requested overtime span in hours.
func (r OvertimeRequest) Hours() float64 {
	return r.EndTime.Sub(r.StartTime).Hours()
}

// SwapRequest asks to trade shifts with another employee.
type SwapRequest struct {
	ID                 string
	EmployeeID         string
	EmployeeName       string
	TargetEmployeeID   string
	TargetEmployeeName string
	ShiftDate          time.Time
	TargetShiftDate    time.Time
	Reason             string
	Status             Status
	RejectionReason    *string
	CreatedAt          time.Time
	Version            string
}

func (r SwapRequest) Key() string            { return r.ID }
func (r SwapRequest) Anchor() time.Time      { return r.ShiftDate }
func (r SwapRequest) Token() string          { return r.Version }
func (r SwapRequest) Subject() string        { return r.EmployeeID }
func (r SwapRequest) WorkflowStatus() Status { return r.Status }

// CorrectionRequest asks to fix one attendance entry. Approving it
// reconciles the attendance collection for the affected date.
type CorrectionRequest struct {
	ID           string
	EmployeeID   string
	EmployeeName string
	Date         time.Time
	// EntryType is the attendance entry being corrected (Thai values, see
	// the attendance package).
	EntryType     string
	RequestedTime time.Time
	Reason        string
	// Attachment is a base64-encoded image, excluded from lite reads.
	Attachment      *string
	Status          Status
	RejectionReason *string
	CreatedAt       time.Time
	Version         string
}

func (r CorrectionRequest) Key() string            { return r.ID }
func (r CorrectionRequest) Anchor() time.Time      { return r.Date }
func (r CorrectionRequest) Token() string          { return r.Version }
func (r CorrectionRequest) Subject() string        { return r.EmployeeID }
func (r CorrectionRequest) WorkflowStatus() Status { return r.Status }
