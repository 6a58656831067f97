package firestore

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// Keyset pagination over the query's descending sort key with the document
// name as tiebreaker. Cursor tokens are opaque to callers: base64 of the
// boundary document's sort-key value and name plus the direction the token
// travels.
//
// Cursors assume a stable collection. Inserting or deleting records between
// two page fetches shifts the keyset window and can skip or repeat records;
// that is inherent to keyset pagination and is not papered over here.

const (
	cursorNext = "next"
	cursorPrev = "prev"
)

type cursorToken struct {
	Values []Value `json:"v"`
	Dir    string  `json:"d"`
}

func encodeCursor(values []Value, dir string) string {
	raw, err := json.Marshal(cursorToken{Values: values, Dir: dir})
	if err != nil {
		return ""
	}
	return base64.RawURLEncoding.EncodeToString(raw)
}

func decodeCursor(token string) (cursorToken, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return cursorToken{}, fmt.Errorf("invalid cursor: %w", err)
	}
	var c cursorToken
	if err := json.Unmarshal(raw, &c); err != nil {
		return cursorToken{}, fmt.Errorf("invalid cursor: %w", err)
	}
	if c.Dir != cursorNext && c.Dir != cursorPrev {
		return cursorToken{}, fmt.Errorf("invalid cursor direction %q", c.Dir)
	}
	return c, nil
}

// DocumentPage is one page of wire documents plus the tokens to move in
// either direction. An empty token means there is no page that way.
type DocumentPage struct {
	Documents  []Document
	NextCursor string
	PrevCursor string
}

// Page fetches one page of size documents for the given base query. The
// base query must carry OrderByDesc and no limit or cursor of its own; an
// empty cursor token requests the first page.
//
// A previous page is fetched by flipping the sort direction, walking
// forward from the boundary and reversing the result in memory, so callers
// get real backward keyset pagination instead of a reset to page one.
func (c *Client) Page(ctx context.Context, base *Query, cursor string, size int) (DocumentPage, error) {
	if base.orderField == "" {
		return DocumentPage{}, fmt.Errorf("paged query requires an order field")
	}
	if size <= 0 {
		return DocumentPage{}, fmt.Errorf("page size must be positive, got %d", size)
	}

	var token cursorToken
	if cursor != "" {
		var err error
		token, err = decodeCursor(cursor)
		if err != nil {
			return DocumentPage{}, err
		}
	}

	q := *base
	q.limit = size
	backward := token.Dir == cursorPrev
	if backward {
		q = *q.reversed()
	}
	if cursor != "" {
		q.startAfter(token.Values)
	}

	docs, err := c.RunQuery(ctx, &q)
	if err != nil {
		return DocumentPage{}, err
	}

	full := len(docs) == size
	if backward {
		reverse(docs)
	}

	page := DocumentPage{Documents: docs}
	if len(docs) == 0 {
		return page, nil
	}

	first := cursorValues(docs[0], base.orderField)
	last := cursorValues(docs[len(docs)-1], base.orderField)

	switch {
	case cursor == "":
		// First page: nothing before it.
		if full {
			page.NextCursor = encodeCursor(last, cursorNext)
		}
	case backward:
		page.NextCursor = encodeCursor(last, cursorNext)
		if full {
			page.PrevCursor = encodeCursor(first, cursorPrev)
		}
	default:
		page.PrevCursor = encodeCursor(first, cursorPrev)
		if full {
			page.NextCursor = encodeCursor(last, cursorNext)
		}
	}
	return page, nil
}

// cursorValues pairs the boundary document's sort-key value with its
// resource name, matching the orderBy the builder emits. Without the name
// the cursor would resume past every other record sharing the same
// day-normalized anchor.
func cursorValues(doc Document, orderField string) []Value {
	return []Value{doc.Fields[orderField], Reference(doc.Name)}
}

func reverse(docs []Document) {
	for i, j := 0, len(docs)-1; i < j; i, j = i+1, j-1 {
		docs[i], docs[j] = docs[j], docs[i]
	}
}
