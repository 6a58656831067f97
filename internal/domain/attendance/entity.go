package attendance

import "time"

// Entry type values are stored in Thai, matching the historical data in the
// attendance collection.
const (
	EntryCheckIn    = "เข้างาน"
	EntryCheckOut   = "ออกงาน"
	EntryBreakStart = "เริ่มพัก"
	EntryBreakEnd   = "สิ้นสุดพัก"
)

// EntryTypes lists every valid entry type value.
var EntryTypes = []string{EntryCheckIn, EntryCheckOut, EntryBreakStart, EntryBreakEnd}

// Attendance is a direct fact about an employee's day. It carries no
// workflow status.
type Attendance struct {
	ID         string
	EmployeeID string
	// EmployeeName is denormalized at write time and is not refreshed when
	// an employee is renamed.
	EmployeeName string
	EntryType    string
	// Date is the calendar day of the event; Time is the instant the entry
	// happened. The store keeps both as timestamps with no timezone, so all
	// arithmetic assumes the deployment's local wall clock.
	Date        time.Time
	Time        time.Time
	LateMinutes *int
	// Photo is a base64-encoded image and is excluded from lite reads.
	Photo     *string
	Note      *string
	CreatedAt time.Time
	// Version is the store's opaque update token, used as a write
	// precondition.
	Version string
}
