package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sala-hr/attendance-backend-go/internal/domain/attendance"
	"github.com/sala-hr/attendance-backend-go/internal/handler/http/response"
	"github.com/sala-hr/attendance-backend-go/internal/pkg/validator"
)

type AttendanceHandler struct {
	repo attendance.Repository
}

func NewAttendanceHandler(repo attendance.Repository) AttendanceHandler {
	return AttendanceHandler{repo: repo}
}

// List serves attendance records filtered by employee or date range. The
// results use the lite projection; photos are only available via GetByID.
func (h AttendanceHandler) List(w http.ResponseWriter, r *http.Request) {
	employeeID := r.URL.Query().Get("employee_id")
	startDate := r.URL.Query().Get("start_date")
	endDate := r.URL.Query().Get("end_date")

	switch {
	case employeeID != "":
		records, err := h.repo.ListByEmployee(r.Context(), employeeID)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		response.Success(w, attendance.ToResponses(records))
	case startDate != "" && endDate != "":
		from, fromOK := validator.IsValidDate(startDate)
		to, toOK := validator.IsValidDate(endDate)
		if !fromOK || !toOK {
			response.BadRequest(w, "start_date and end_date must be in YYYY-MM-DD format", nil)
			return
		}
		records, err := h.repo.ListByDateRange(r.Context(), from, to)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		response.Success(w, attendance.ToResponses(records))
	default:
		response.BadRequest(w, "employee_id or start_date/end_date is required", nil)
	}
}

// Page serves cursor-paginated attendance records, newest first.
func (h AttendanceHandler) Page(w http.ResponseWriter, r *http.Request) {
	cursor := r.URL.Query().Get("cursor")
	size := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 100 {
			response.BadRequest(w, "limit must be between 1 and 100", nil)
			return
		}
		size = parsed
	}

	page, err := h.repo.Page(r.Context(), cursor, size)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMeta(w, attendance.ToResponses(page.Records), &response.Meta{
		NextCursor: page.NextCursor,
		PrevCursor: page.PrevCursor,
		PageSize:   size,
	})
}

func (h AttendanceHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	record, err := h.repo.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, attendance.ToResponse(record))
}

func (h AttendanceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req attendance.CreateAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.repo.Create(r.Context(), req.ToEntity())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Attendance record created", attendance.ToResponse(created))
}

func (h AttendanceHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req attendance.UpdateAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	current, err := h.repo.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if req.Version != "" {
		current.Version = req.Version
	}
	if req.EntryType != nil {
		current.EntryType = *req.EntryType
	}
	if req.Time != nil {
		clock, _ := validator.IsValidTimeOfDay(*req.Time)
		current.Time = onDay(current.Date, clock)
	}
	if req.LateMinutes != nil {
		current.LateMinutes = req.LateMinutes
	}
	if req.Note != nil {
		current.Note = req.Note
	}

	updated, err := h.repo.Update(r.Context(), current)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if req.ClearPhoto {
		if err := h.repo.ClearPhoto(r.Context(), updated.ID, updated.Version); err != nil {
			response.HandleError(w, err)
			return
		}
		updated.Photo = nil
	}
	response.SuccessWithMessage(w, "Attendance record updated", attendance.ToResponse(updated))
}

func (h AttendanceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.repo.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Attendance record deleted", nil)
}

func onDay(day, clock time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), clock.Hour(), clock.Minute(), 0, 0, time.Local)
}
