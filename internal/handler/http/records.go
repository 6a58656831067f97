package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/sala-hr/attendance-backend-go/internal/domain/attendance"
	"github.com/sala-hr/attendance-backend-go/internal/domain/request"
	"github.com/sala-hr/attendance-backend-go/internal/handler/http/response"
	"github.com/sala-hr/attendance-backend-go/internal/service/records"
)

type overviewResponse struct {
	Attendance  []attendance.AttendanceResponse     `json:"attendance"`
	Leave       []request.LeaveRequestResponse      `json:"leave_requests"`
	Overtime    []request.OvertimeRequestResponse   `json:"overtime_requests"`
	Swaps       []request.SwapRequestResponse       `json:"swap_requests"`
	Corrections []request.CorrectionRequestResponse `json:"time_correction_requests"`
}

type inboxResponse struct {
	Leave       []request.LeaveRequestResponse      `json:"leave_requests"`
	Overtime    []request.OvertimeRequestResponse   `json:"overtime_requests"`
	Swaps       []request.SwapRequestResponse       `json:"swap_requests"`
	Corrections []request.CorrectionRequestResponse `json:"time_correction_requests"`
}

type RecordsHandler struct {
	service *records.Service
}

func NewRecordsHandler(service *records.Service) *RecordsHandler {
	return &RecordsHandler{service: service}
}

// EmployeeOverview returns everything on file for one employee across all
// record kinds.
func (h *RecordsHandler) EmployeeOverview(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeId")
	if employeeID == "" {
		response.BadRequest(w, "employeeId is required", nil)
		return
	}

	overview, err := h.service.EmployeeOverview(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, overviewResponse{
		Attendance:  attendance.ToResponses(overview.Attendance),
		Leave:       request.MapResponses(overview.Leave, request.ToLeaveResponse),
		Overtime:    request.MapResponses(overview.Overtime, request.ToOvertimeResponse),
		Swaps:       request.MapResponses(overview.Swaps, request.ToSwapResponse),
		Corrections: request.MapResponses(overview.Corrections, request.ToCorrectionResponse),
	})
}

// PendingInbox returns the review queue: every pending request per kind plus
// the most recent decided ones.
func (h *RecordsHandler) PendingInbox(w http.ResponseWriter, r *http.Request) {
	n := defaultVisibleRecent
	if raw := r.URL.Query().Get("recent"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 100 {
			response.BadRequest(w, "recent must be between 1 and 100", nil)
			return
		}
		n = parsed
	}

	inbox, err := h.service.PendingInbox(r.Context(), n)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, inboxResponse{
		Leave:       request.MapResponses(inbox.Leave, request.ToLeaveResponse),
		Overtime:    request.MapResponses(inbox.Overtime, request.ToOvertimeResponse),
		Swaps:       request.MapResponses(inbox.Swaps, request.ToSwapResponse),
		Corrections: request.MapResponses(inbox.Corrections, request.ToCorrectionResponse),
	})
}
