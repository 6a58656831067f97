package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sala-hr/attendance-backend-go/internal/domain/request"
	"github.com/sala-hr/attendance-backend-go/internal/pkg/validator"
	"github.com/sala-hr/attendance-backend-go/internal/repository/firestore"
	"github.com/sala-hr/attendance-backend-go/internal/service/approval"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleErrorStatusCodes(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"request not found", request.ErrRequestNotFound, http.StatusNotFound},
		{"version conflict", fmt.Errorf("%w: stale token", request.ErrVersionConflict), http.StatusConflict},
		{"store conflict", firestore.ErrConflict, http.StatusConflict},
		{"store down", fmt.Errorf("wrapped: %w", firestore.ErrUnavailable), http.StatusBadGateway},
		{"bad credential", firestore.ErrUnauthenticated, http.StatusBadGateway},
		{"reconciliation failed", approval.ErrReconciliationFailed, http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			HandleError(rec, c.err)
			assert.Equal(t, c.want, rec.Code)

			var body Response
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.False(t, body.Success)
			require.NotNil(t, body.Error)
			assert.NotEmpty(t, body.Error.Code)
		})
	}
}

func TestHandleErrorValidation(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, validator.ValidationErrors{
		{Field: "employee_id", Message: "employee_id is required"},
	})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotNil(t, body.Error)
	assert.Equal(t, "employee_id is required", body.Error.Details["employee_id"])
}

func TestSuccessWithMetaCarriesCursors(t *testing.T) {
	rec := httptest.NewRecorder()
	SuccessWithMeta(rec, []string{"a"}, &Meta{NextCursor: "n1", PrevCursor: "p1", PageSize: 20})

	assert.Equal(t, http.StatusOK, rec.Code)

	var body Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotNil(t, body.Meta)
	assert.Equal(t, "n1", body.Meta.NextCursor)
	assert.Equal(t, "p1", body.Meta.PrevCursor)
	assert.Equal(t, 20, body.Meta.PageSize)
}
