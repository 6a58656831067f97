package attendance

import "errors"

var (
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrInvalidEntryType   = errors.New("invalid attendance entry type")
)
