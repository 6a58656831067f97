package http

import (
	"net/http"
	"strconv"

	"github.com/sala-hr/attendance-backend-go/internal/domain/audit"
	"github.com/sala-hr/attendance-backend-go/internal/handler/http/response"
)

type AuditHandler struct {
	repo audit.Repository
}

func NewAuditHandler(repo audit.Repository) *AuditHandler {
	return &AuditHandler{repo: repo}
}

// List returns recent audit entries, or the full trail for one employee when
// employee_id is given.
func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	if employeeID := r.URL.Query().Get("employee_id"); employeeID != "" {
		entries, err := h.repo.ListByEmployee(r.Context(), employeeID)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		response.Success(w, audit.ToResponses(entries))
		return
	}

	n := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 500 {
			response.BadRequest(w, "limit must be between 1 and 500", nil)
			return
		}
		n = parsed
	}

	entries, err := h.repo.ListRecent(r.Context(), n)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, audit.ToResponses(entries))
}
