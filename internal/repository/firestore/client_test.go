package firestore

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sala-hr/attendance-backend-go/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := config.FirestoreConfig{
		ProjectID: "test-project",
		Database:  "(default)",
		BaseURL:   server.URL,
	}
	tokens := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "test-token"})
	return NewClient(cfg, tokens, testLogger())
}

func TestRunQuerySendsBearerAndSkipsEmptyEnvelopes(t *testing.T) {
	var gotAuth string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.URL.Path, ":runQuery")

		w.Write([]byte(`[
			{"document": {"name": "projects/p/databases/(default)/documents/c/a", "fields": {}}},
			{"readTime": "2024-03-01T00:00:00Z"},
			{"document": {"name": "projects/p/databases/(default)/documents/c/b", "fields": {}}},
			{"done": true}
		]`))
	})

	docs, err := client.RunQuery(context.Background(), NewQuery("c"))
	require.NoError(t, err)
	assert.Equal(t, "Bearer test-token", gotAuth)
	require.Len(t, docs, 2)
	assert.Equal(t, "a", docs[0].ID())
	assert.Equal(t, "b", docs[1].ID())
}

func TestStatusErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"unauthorized", 401, `{"error":{"message":"expired token","status":"UNAUTHENTICATED"}}`, ErrUnauthenticated},
		{"forbidden", 403, `{"error":{"message":"missing scope"}}`, ErrUnauthenticated},
		{"not found", 404, `{"error":{"message":"no such document"}}`, ErrNotFound},
		{"stale precondition", 400, `{"error":{"message":"the stored version does not match","status":"FAILED_PRECONDITION"}}`, ErrConflict},
		{"conflict", 409, `{"error":{"message":"already exists"}}`, ErrConflict},
		{"precondition failed", 412, `{"error":{"message":"etag mismatch"}}`, ErrConflict},
		{"throttled", 429, `{"error":{"message":"quota exceeded"}}`, ErrUnavailable},
		{"server error", 503, `backend unavailable`, ErrUnavailable},
		{"bad request", 400, `{"error":{"message":"invalid field path"}}`, ErrMalformed},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(c.status)
				w.Write([]byte(c.body))
			})

			_, err := client.GetDocument(context.Background(), "c", "id")
			assert.ErrorIs(t, err, c.want)
		})
	}
}

func TestMissingCredentialFailsBeforeTheWire(t *testing.T) {
	cfg := config.FirestoreConfig{ProjectID: "p", Database: "(default)", BaseURL: "http://unused.invalid"}

	client := NewClient(cfg, nil, testLogger())
	_, err := client.GetDocument(context.Background(), "c", "id")
	assert.ErrorIs(t, err, ErrUnauthenticated)

	client = NewClient(cfg, oauth2.StaticTokenSource(&oauth2.Token{}), testLogger())
	_, err = client.GetDocument(context.Background(), "c", "id")
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestNetworkFailureIsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // nothing is listening anymore

	cfg := config.FirestoreConfig{ProjectID: "p", Database: "(default)", BaseURL: server.URL}
	client := NewClient(cfg, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "t"}), testLogger())

	_, err := client.GetDocument(context.Background(), "c", "id")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestPatchDocumentSendsMaskAndPrecondition(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)

		params := r.URL.Query()
		assert.ElementsMatch(t, []string{"status", "rejectionReason"}, params["updateMask.fieldPaths"])
		assert.Equal(t, "2024-03-01T00:00:00.000000Z", params.Get("currentDocument.updateTime"))

		w.Write([]byte(`{"name":"projects/p/databases/(default)/documents/c/id","fields":{}}`))
	})

	fields := map[string]Value{"status": String("approved"), "rejectionReason": Null()}
	_, err := client.PatchDocument(context.Background(), "c", "id",
		fields, []string{"status", "rejectionReason"}, "2024-03-01T00:00:00.000000Z")
	require.NoError(t, err)
}

func TestCreateDocumentWithIDSetsDocumentIDParam(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "01ARZ3NDEKTSV4RRFFQ69G5FAV", r.URL.Query().Get("documentId"))
		w.Write([]byte(`{"name":"projects/p/databases/(default)/documents/admin_audit_log/01ARZ3NDEKTSV4RRFFQ69G5FAV","fields":{}}`))
	})

	doc, err := client.CreateDocumentWithID(context.Background(), "admin_audit_log",
		"01ARZ3NDEKTSV4RRFFQ69G5FAV", map[string]Value{"action": String("approve")})
	require.NoError(t, err)
	assert.Equal(t, "01ARZ3NDEKTSV4RRFFQ69G5FAV", doc.ID())
}

func TestMalformedResponseBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`this is not json`))
	})

	_, err := client.RunQuery(context.Background(), NewQuery("c"))
	assert.ErrorIs(t, err, ErrMalformed)
}
