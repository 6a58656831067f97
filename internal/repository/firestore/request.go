package firestore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sala-hr/attendance-backend-go/internal/domain/request"
	"golang.org/x/sync/errgroup"
)

// Wire field names shared by all four request collections.
const (
	reqEmployeeID      = "employeeId"
	reqEmployeeName    = "employeeName"
	reqStatus          = "status"
	reqRejectionReason = "rejectionReason"
	reqReason          = "reason"
	reqCreatedAt       = "createdAt"
)

// requestCodec binds one request kind to its collection: the wire mapping
// in both directions, the temporal anchor used for ordering and range
// filters, and the lite-projection allow-list (everything but attachments).
type requestCodec[T request.Record] struct {
	collection  string
	anchorField string
	liteFields  []string
	// attachmentField names the heavy payload field, empty for kinds
	// without one. Content updates clear it with an explicit null when the
	// record carries no attachments, since encode omits empty payloads.
	attachmentField string
	encode          func(T) map[string]Value
	decode          func(Document) T
}

// requestRepository implements request.Repository for one collection. All
// four request kinds share this machinery; only the codec differs.
type requestRepository[T request.Record] struct {
	client *Client
	codec  requestCodec[T]
	logger *slog.Logger
}

func (r *requestRepository[T]) Create(ctx context.Context, rec T) (T, error) {
	var zero T
	fields := r.codec.encode(rec)
	fields[reqStatus] = String(string(request.StatusPending))
	fields[reqCreatedAt] = Timestamp(time.Now())

	doc, err := r.client.CreateDocument(ctx, r.codec.collection, fields)
	if err != nil {
		return zero, fmt.Errorf("failed to create %s: %w", r.codec.collection, err)
	}
	return r.codec.decode(doc), nil
}

func (r *requestRepository[T]) GetByID(ctx context.Context, id string) (T, error) {
	var zero T
	doc, err := r.client.GetDocument(ctx, r.codec.collection, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return zero, request.ErrRequestNotFound
		}
		return zero, fmt.Errorf("failed to get %s: %w", r.codec.collection, err)
	}
	return r.codec.decode(doc), nil
}

// Update rewrites the request's content fields (an admin pre-approval edit).
// Status and audit fields are untouched; transitions go through UpdateStatus.
// The edit replaces content wholesale: a record without attachments clears
// any stored ones with an explicit null, the same way attendance clears a
// photo.
func (r *requestRepository[T]) Update(ctx context.Context, rec T) (T, error) {
	var zero T
	fields := r.codec.encode(rec)
	if f := r.codec.attachmentField; f != "" {
		if _, ok := fields[f]; !ok {
			fields[f] = Null()
		}
	}
	mask := make([]string, 0, len(fields))
	for name := range fields {
		mask = append(mask, name)
	}

	doc, err := r.client.PatchDocument(ctx, r.codec.collection, rec.Key(), fields, mask, rec.Token())
	if err != nil {
		return zero, r.writeError(err)
	}
	return r.codec.decode(doc), nil
}

// UpdateStatus performs one workflow transition under an optimistic
// precondition. Approving over a previous rejection clears the stored
// rejection reason with an explicit null.
func (r *requestRepository[T]) UpdateStatus(ctx context.Context, id string, update request.StatusUpdate) (T, error) {
	var zero T
	fields := map[string]Value{
		reqStatus: String(string(update.Status)),
	}
	if update.RejectionReason != nil {
		fields[reqRejectionReason] = String(*update.RejectionReason)
	} else {
		fields[reqRejectionReason] = Null()
	}

	doc, err := r.client.PatchDocument(ctx, r.codec.collection, id, fields, []string{reqStatus, reqRejectionReason}, update.Version)
	if err != nil {
		return zero, r.writeError(err)
	}
	return r.codec.decode(doc), nil
}

func (r *requestRepository[T]) Delete(ctx context.Context, id string) error {
	if err := r.client.DeleteDocument(ctx, r.codec.collection, id); err != nil {
		return fmt.Errorf("failed to delete %s: %w", r.codec.collection, err)
	}
	return nil
}

func (r *requestRepository[T]) ListByEmployee(ctx context.Context, employeeID string) ([]T, error) {
	q := NewQuery(r.codec.collection).
		WhereEqual(reqEmployeeID, String(employeeID)).
		OrderByDesc(r.codec.anchorField).
		Select(r.codec.liteFields...)
	return r.list(ctx, q), nil
}

func (r *requestRepository[T]) ListByDateRange(ctx context.Context, from, to time.Time) ([]T, error) {
	q := NewQuery(r.codec.collection).
		WhereGreaterOrEqual(r.codec.anchorField, Timestamp(dayOf(from))).
		WhereLessOrEqual(r.codec.anchorField, Timestamp(endOfDay(to))).
		OrderByDesc(r.codec.anchorField).
		Select(r.codec.liteFields...)
	return r.list(ctx, q), nil
}

func (r *requestRepository[T]) ListPending(ctx context.Context) ([]T, error) {
	q := NewQuery(r.codec.collection).
		WhereEqual(reqStatus, String(string(request.StatusPending))).
		OrderByDesc(r.codec.anchorField).
		Select(r.codec.liteFields...)
	return r.list(ctx, q), nil
}

func (r *requestRepository[T]) ListRecent(ctx context.Context, n int) ([]T, error) {
	q := NewQuery(r.codec.collection).
		OrderByDesc(r.codec.anchorField).
		Limit(n).
		Select(r.codec.liteFields...)
	return r.list(ctx, q), nil
}

// ListVisible unions the unbounded pending set with the N most recent
// records, so a weeks-old pending request stays visible without paying for
// the full decided history. The two queries run concurrently.
func (r *requestRepository[T]) ListVisible(ctx context.Context, n int) ([]T, error) {
	var pending, recent []T

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		pending, err = r.ListPending(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		recent, err = r.ListRecent(gctx, n)
		return err
	})
	if err := g.Wait(); err != nil {
		return []T{}, err
	}

	return MergeVisible(pending, recent,
		func(t T) string { return t.Key() },
		func(t T) time.Time { return t.Anchor() },
	), nil
}

func (r *requestRepository[T]) Page(ctx context.Context, cursor string, size int) (request.Page[T], error) {
	q := NewQuery(r.codec.collection).
		OrderByDesc(r.codec.anchorField).
		Select(r.codec.liteFields...)

	page, err := r.client.Page(ctx, q, cursor, size)
	if err != nil {
		return request.Page[T]{}, fmt.Errorf("failed to page %s: %w", r.codec.collection, err)
	}

	records := make([]T, 0, len(page.Documents))
	for _, doc := range page.Documents {
		records = append(records, r.codec.decode(doc))
	}
	return request.Page[T]{
		Records:    records,
		NextCursor: page.NextCursor,
		PrevCursor: page.PrevCursor,
	}, nil
}

func (r *requestRepository[T]) list(ctx context.Context, q *Query) []T {
	docs, err := r.client.RunQuery(ctx, q)
	if err != nil {
		r.logger.Error("request query failed, returning empty result",
			slog.String("collection", r.codec.collection),
			slog.Any("error", err))
		return []T{}
	}
	records := make([]T, 0, len(docs))
	for _, doc := range docs {
		records = append(records, r.codec.decode(doc))
	}
	return records
}

func (r *requestRepository[T]) writeError(err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return request.ErrRequestNotFound
	case errors.Is(err, ErrConflict):
		return fmt.Errorf("%w: %v", request.ErrVersionConflict, err)
	default:
		return fmt.Errorf("failed to write %s: %w", r.codec.collection, err)
	}
}
