package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/sala-hr/attendance-backend-go/internal/domain/request"
	"github.com/sala-hr/attendance-backend-go/internal/handler/http/middleware"
	"github.com/sala-hr/attendance-backend-go/internal/handler/http/response"
	"github.com/sala-hr/attendance-backend-go/internal/pkg/validator"
	"github.com/sala-hr/attendance-backend-go/internal/service/approval"
)

// defaultVisibleRecent is how many recently decided requests accompany the
// pending set in the visible listing.
const defaultVisibleRecent = 20

// requestResource is the shared HTTP surface of one request kind. The four
// kinds differ only in their create DTO, response shape and decision
// dispatch, supplied as functions.
type requestResource[T request.Record, R any] struct {
	repo         request.Repository[T]
	toResponse   func(T) R
	decodeCreate func(body []byte) (T, error)
	// withIdentity stamps the URL id and the caller's version token onto a
	// decoded record before an update write.
	withIdentity func(r T, id, version string) T
	decide       func(ctx context.Context, actor approval.Actor, id string, d request.DecisionRequest) (T, error)
}

// Routes mounts the kind's endpoints on r. Reads are available to any
// authenticated caller; mutations require the admin role.
func (res requestResource[T, R]) Routes(r chi.Router) {
	r.Get("/", res.List)
	r.Get("/visible", res.ListVisible)
	r.Get("/pending", res.ListPending)
	r.Get("/page", res.Page)
	r.Get("/{id}", res.GetByID)

	r.Group(func(r chi.Router) {
		r.Use(middleware.AdminOnly)
		r.Post("/", res.Create)
		r.Put("/{id}", res.Update)
		r.Post("/{id}/decision", res.Decide)
		r.Delete("/{id}", res.Delete)
	})
}

func (res requestResource[T, R]) List(w http.ResponseWriter, r *http.Request) {
	employeeID := r.URL.Query().Get("employee_id")
	startDate := r.URL.Query().Get("start_date")
	endDate := r.URL.Query().Get("end_date")

	switch {
	case employeeID != "":
		records, err := res.repo.ListByEmployee(r.Context(), employeeID)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		response.Success(w, request.MapResponses(records, res.toResponse))
	case startDate != "" && endDate != "":
		from, fromOK := validator.IsValidDate(startDate)
		to, toOK := validator.IsValidDate(endDate)
		if !fromOK || !toOK {
			response.BadRequest(w, "start_date and end_date must be in YYYY-MM-DD format", nil)
			return
		}
		records, err := res.repo.ListByDateRange(r.Context(), from, to)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		response.Success(w, request.MapResponses(records, res.toResponse))
	default:
		response.BadRequest(w, "employee_id or start_date/end_date is required", nil)
	}
}

// ListVisible serves every pending request plus the most recent decided
// ones, merged so an old pending request is never hidden.
func (res requestResource[T, R]) ListVisible(w http.ResponseWriter, r *http.Request) {
	n := defaultVisibleRecent
	if raw := r.URL.Query().Get("recent"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 100 {
			response.BadRequest(w, "recent must be between 1 and 100", nil)
			return
		}
		n = parsed
	}

	records, err := res.repo.ListVisible(r.Context(), n)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, request.MapResponses(records, res.toResponse))
}

func (res requestResource[T, R]) ListPending(w http.ResponseWriter, r *http.Request) {
	records, err := res.repo.ListPending(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, request.MapResponses(records, res.toResponse))
}

func (res requestResource[T, R]) Page(w http.ResponseWriter, r *http.Request) {
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

	page, err := res.repo.Page(r.Context(), cursor, size)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMeta(w, request.MapResponses(page.Records, res.toResponse), &response.Meta{
		NextCursor: page.NextCursor,
		PrevCursor: page.PrevCursor,
		PageSize:   size,
	})
}

func (res requestResource[T, R]) GetByID(w http.ResponseWriter, r *http.Request) {
	record, err := res.repo.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, res.toResponse(record))
}

func (res requestResource[T, R]) Create(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	record, err := res.decodeCreate(body)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := res.repo.Create(r.Context(), record)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Request created", res.toResponse(created))
}

// Update rewrites a request's content fields before it is decided. The body
// is the same shape as create, plus the version token read with the record.
func (res requestResource[T, R]) Update(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	record, err := res.decodeCreate(body)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var rev struct {
		Version string `json:"version"`
	}
	if err := json.Unmarshal(body, &rev); err != nil || rev.Version == "" {
		response.BadRequest(w, "version is required", nil)
		return
	}

	updated, err := res.repo.Update(r.Context(), res.withIdentity(record, chi.URLParam(r, "id"), rev.Version))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Request updated", res.toResponse(updated))
}

func (res requestResource[T, R]) Decide(w http.ResponseWriter, r *http.Request) {
	var d request.DecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	if err := d.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	actor := middleware.ActorFromContext(r.Context())
	updated, err := res.decide(r.Context(), approval.Actor{ID: actor.ID, Name: actor.Name}, chi.URLParam(r, "id"), d)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Decision recorded", res.toResponse(updated))
}

func (res requestResource[T, R]) Delete(w http.ResponseWriter, r *http.Request) {
	if err := res.repo.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Request deleted", nil)
}

// decodeBody decodes and validates one create DTO.
func decodeBody[D interface{ Validate() error }](body []byte, dto D) error {
	if err := json.Unmarshal(body, dto); err != nil {
		return validator.ValidationErrors{{Field: "body", Message: "invalid JSON body"}}
	}
	return dto.Validate()
}
