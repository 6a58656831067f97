package request

import "errors"

var (
	ErrRequestNotFound = errors.New("request not found")
	ErrInvalidStatus   = errors.New("invalid request status")
	// ErrVersionConflict means another admin acted on the record between
	// this caller's read and write.
	ErrVersionConflict = errors.New("request was modified by someone else")
)
