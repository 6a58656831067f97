package response

import (
	"errors"
	"net/http"

	"github.com/sala-hr/attendance-backend-go/internal/domain/attendance"
	"github.com/sala-hr/attendance-backend-go/internal/domain/request"
	"github.com/sala-hr/attendance-backend-go/internal/pkg/validator"
	"github.com/sala-hr/attendance-backend-go/internal/repository/firestore"
	"github.com/sala-hr/attendance-backend-go/internal/service/approval"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrInvalidEntryType):
		BadRequest(w, "Invalid attendance entry type", nil)

	// Request domain errors
	case errors.Is(err, request.ErrRequestNotFound):
		NotFound(w, "Request not found")
	case errors.Is(err, request.ErrVersionConflict):
		Conflict(w, "Someone else already acted on this request")
	case errors.Is(err, request.ErrInvalidStatus):
		BadRequest(w, "Invalid request status", nil)

	// Approval workflow errors
	case errors.Is(err, approval.ErrReconciliationFailed):
		// The status write already succeeded; the caller retries only the
		// reconciliation.
		writeJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error: &ErrorDetail{
				Code:    "RECONCILIATION_FAILED",
				Message: err.Error(),
			},
		})

	// Transport failures on the write path (reads degrade to empty inside
	// the repositories and never reach here)
	case errors.Is(err, firestore.ErrUnauthenticated):
		BadGateway(w, "Document store rejected the service credential")
	case errors.Is(err, firestore.ErrUnavailable):
		BadGateway(w, "Document store is unavailable")
	case errors.Is(err, firestore.ErrMalformed):
		BadGateway(w, "Document store returned a malformed response")
	case errors.Is(err, firestore.ErrConflict):
		Conflict(w, "Record was modified by someone else")
	case errors.Is(err, firestore.ErrNotFound):
		NotFound(w, "Record not found")

	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
