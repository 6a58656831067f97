package firestore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sala-hr/attendance-backend-go/internal/config"
	"golang.org/x/oauth2"
)

// Failure taxonomy of the transport boundary. Callers branch with
// errors.Is; the wrapped message carries the store's own description.
var (
	ErrUnauthenticated = errors.New("store rejected the credential")
	ErrUnavailable     = errors.New("store unavailable")
	ErrMalformed       = errors.New("malformed store response")
	ErrNotFound        = errors.New("document not found")
	// ErrConflict means a write precondition failed: the document changed
	// since the caller read it.
	ErrConflict = errors.New("document update precondition failed")
)

// Client speaks the store's structured-query HTTP protocol. Every request
// carries a bearer token from the token source; there are no retries and no
// timeout beyond the HTTP client's own.
type Client struct {
	httpClient *http.Client
	baseURL    string
	root       string
	tokens     oauth2.TokenSource
	logger     *slog.Logger
}

func NewClient(cfg config.FirestoreConfig, tokens oauth2.TokenSource, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		root:       cfg.DocumentsRoot(),
		tokens:     tokens,
		logger:     logger,
	}
}

// Root returns the resource path prefix for documents, used to qualify
// document names in cursors and patches.
func (c *Client) Root() string { return c.root }

type runQueryEnvelope struct {
	Document *Document `json:"document,omitempty"`
	ReadTime string    `json:"readTime,omitempty"`
	Done     bool      `json:"done,omitempty"`
}

// RunQuery executes a structured query and returns the matching documents.
// Envelopes without a document are end-of-stream markers and are skipped.
func (c *Client) RunQuery(ctx context.Context, q *Query) ([]Document, error) {
	endpoint := fmt.Sprintf("%s/%s:runQuery", c.baseURL, c.root)
	body, err := c.do(ctx, http.MethodPost, endpoint, q.build())
	if err != nil {
		return nil, err
	}

	var envelopes []runQueryEnvelope
	if err := json.Unmarshal(body, &envelopes); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	docs := make([]Document, 0, len(envelopes))
	for _, env := range envelopes {
		if env.Document == nil {
			continue
		}
		docs = append(docs, *env.Document)
	}
	return docs, nil
}

// CreateDocument writes a new document; the store assigns the id.
func (c *Client) CreateDocument(ctx context.Context, collection string, fields map[string]Value) (Document, error) {
	endpoint := fmt.Sprintf("%s/%s/%s", c.baseURL, c.root, collection)
	return c.writeDocument(ctx, http.MethodPost, endpoint, fields)
}

// CreateDocumentWithID writes a new document under a caller-chosen id.
func (c *Client) CreateDocumentWithID(ctx context.Context, collection, id string, fields map[string]Value) (Document, error) {
	endpoint := fmt.Sprintf("%s/%s/%s?documentId=%s", c.baseURL, c.root, collection, url.QueryEscape(id))
	return c.writeDocument(ctx, http.MethodPost, endpoint, fields)
}

// PatchDocument updates only the masked fields. A field present in the mask
// but absent from fields is deleted; a field set to Null() is stored as an
// explicit null. When updateTime is non-empty it is sent as a precondition
// and a stale value fails with ErrConflict.
func (c *Client) PatchDocument(ctx context.Context, collection, id string, fields map[string]Value, mask []string, updateTime string) (Document, error) {
	params := url.Values{}
	for _, field := range mask {
		params.Add("updateMask.fieldPaths", field)
	}
	if updateTime != "" {
		params.Set("currentDocument.updateTime", updateTime)
	}
	endpoint := fmt.Sprintf("%s/%s/%s/%s?%s", c.baseURL, c.root, collection, url.PathEscape(id), params.Encode())
	return c.writeDocument(ctx, http.MethodPatch, endpoint, fields)
}

// GetDocument fetches one full document by id.
func (c *Client) GetDocument(ctx context.Context, collection, id string) (Document, error) {
	endpoint := fmt.Sprintf("%s/%s/%s/%s", c.baseURL, c.root, collection, url.PathEscape(id))
	body, err := c.do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Document{}, err
	}
	return decodeDocumentBody(body)
}

// DeleteDocument removes one document permanently.
func (c *Client) DeleteDocument(ctx context.Context, collection, id string) error {
	endpoint := fmt.Sprintf("%s/%s/%s/%s", c.baseURL, c.root, collection, url.PathEscape(id))
	_, err := c.do(ctx, http.MethodDelete, endpoint, nil)
	return err
}

func (c *Client) writeDocument(ctx context.Context, method, endpoint string, fields map[string]Value) (Document, error) {
	body, err := c.do(ctx, method, endpoint, Document{Fields: fields})
	if err != nil {
		return Document{}, err
	}
	return decodeDocumentBody(body)
}

func decodeDocumentBody(body []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(body, &doc); err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return doc, nil
}

func (c *Client) do(ctx context.Context, method, endpoint string, payload any) ([]byte, error) {
	if c.tokens == nil {
		return nil, fmt.Errorf("%w: no token source configured", ErrUnauthenticated)
	}
	token, err := c.tokens.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}
	if token.AccessToken == "" {
		return nil, fmt.Errorf("%w: empty bearer token", ErrUnauthenticated)
	}

	var reqBody io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token.AccessToken)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, c.statusError(resp.StatusCode, body)
	}
	return body, nil
}

func (c *Client) statusError(status int, body []byte) error {
	message := storeErrorMessage(body)
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrUnauthenticated, message)
	case status == http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, message)
	// The store reports stale update-time preconditions as 400
	// FAILED_PRECONDITION rather than a conflict status code.
	case strings.Contains(message, "FAILED_PRECONDITION"):
		return fmt.Errorf("%w: %s", ErrConflict, message)
	case status == http.StatusConflict || status == http.StatusPreconditionFailed:
		return fmt.Errorf("%w: %s", ErrConflict, message)
	case status == http.StatusTooManyRequests || status >= http.StatusInternalServerError:
		return fmt.Errorf("%w: HTTP %d: %s", ErrUnavailable, status, message)
	default:
		return fmt.Errorf("%w: HTTP %d: %s", ErrMalformed, status, message)
	}
}

func storeErrorMessage(body []byte) string {
	var parsed struct {
		Error struct {
			Message string `json:"message"`
			Status  string `json:"status"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil || parsed.Error.Message == "" {
		return string(body)
	}
	if parsed.Error.Status != "" {
		return parsed.Error.Status + ": " + parsed.Error.Message
	}
	return parsed.Error.Message
}
