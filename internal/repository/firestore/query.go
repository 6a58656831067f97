package firestore

// Structured-query construction. The store's query protocol only supports a
// flat AND of field filters, a single caller-chosen sort key and an optional
// field mask, so the builder exposes exactly that and nothing more.

const (
	opEqual          = "EQUAL"
	opLess           = "LESS_THAN"
	opLessOrEqual    = "LESS_THAN_OR_EQUAL"
	opGreater        = "GREATER_THAN"
	opGreaterOrEqual = "GREATER_THAN_OR_EQUAL"

	dirAscending  = "ASCENDING"
	dirDescending = "DESCENDING"

	// fieldDocumentName is the store's pseudo-field holding the document
	// resource name, appended to every orderBy as a tiebreaker.
	fieldDocumentName = "__name__"
)

type runQueryRequest struct {
	StructuredQuery *structuredQuery `json:"structuredQuery"`
}

type structuredQuery struct {
	From    []collectionSelector `json:"from"`
	Select  *projection          `json:"select,omitempty"`
	Where   *whereClause         `json:"where,omitempty"`
	OrderBy []queryOrder         `json:"orderBy,omitempty"`
	StartAt *queryCursor         `json:"startAt,omitempty"`
	Limit   int                  `json:"limit,omitempty"`
}

type collectionSelector struct {
	CollectionID string `json:"collectionId"`
}

type projection struct {
	Fields []fieldReference `json:"fields"`
}

type fieldReference struct {
	FieldPath string `json:"fieldPath"`
}

type whereClause struct {
	CompositeFilter *compositeFilter `json:"compositeFilter,omitempty"`
	FieldFilter     *fieldFilter     `json:"fieldFilter,omitempty"`
}

type compositeFilter struct {
	Op      string        `json:"op"` // always AND
	Filters []whereClause `json:"filters"`
}

type fieldFilter struct {
	Field fieldReference `json:"field"`
	Op    string         `json:"op"`
	Value Value          `json:"value"`
}

type queryOrder struct {
	Field     fieldReference `json:"field"`
	Direction string         `json:"direction"`
}

type queryCursor struct {
	Values []Value `json:"values"`
	Before bool    `json:"before"`
}

// Query describes one structured query against a single collection.
type Query struct {
	collection   string
	filters      []fieldFilter
	orderField   string
	orderDir     string
	limit        int
	selectFields []string
	startAt      *queryCursor
}

func NewQuery(collection string) *Query {
	return &Query{collection: collection, orderDir: dirDescending}
}

func (q *Query) WhereEqual(field string, v Value) *Query {
	q.filters = append(q.filters, fieldFilter{Field: fieldReference{FieldPath: field}, Op: opEqual, Value: v})
	return q
}

// Range filters must target the orderBy field; the store rejects queries
// where they differ.
func (q *Query) WhereGreaterOrEqual(field string, v Value) *Query {
	q.filters = append(q.filters, fieldFilter{Field: fieldReference{FieldPath: field}, Op: opGreaterOrEqual, Value: v})
	return q
}

func (q *Query) WhereLessOrEqual(field string, v Value) *Query {
	q.filters = append(q.filters, fieldFilter{Field: fieldReference{FieldPath: field}, Op: opLessOrEqual, Value: v})
	return q
}

func (q *Query) WhereGreater(field string, v Value) *Query {
	q.filters = append(q.filters, fieldFilter{Field: fieldReference{FieldPath: field}, Op: opGreater, Value: v})
	return q
}

func (q *Query) WhereLess(field string, v Value) *Query {
	q.filters = append(q.filters, fieldFilter{Field: fieldReference{FieldPath: field}, Op: opLess, Value: v})
	return q
}

// OrderByDesc sets the sort key, always a timestamp-like field. Built
// queries also order by document name in the same direction: the anchors
// are day-normalized, so whole batches of records share one sort-key value
// and a cursor on that value alone would skip the rest of the tie.
func (q *Query) OrderByDesc(field string) *Query {
	q.orderField = field
	q.orderDir = dirDescending
	return q
}

func (q *Query) OrderByAsc(field string) *Query {
	q.orderField = field
	q.orderDir = dirAscending
	return q
}

func (q *Query) Limit(n int) *Query {
	q.limit = n
	return q
}

// Select narrows the response to the given fields (the lite projection).
// Without it the store returns the full document.
func (q *Query) Select(fields ...string) *Query {
	q.selectFields = fields
	return q
}

// startAfter positions the query immediately after the given sort-key
// values.
func (q *Query) startAfter(values []Value) *Query {
	q.startAt = &queryCursor{Values: values, Before: false}
	return q
}

// reversed returns a copy of the query with the sort direction flipped,
// used for backward pagination.
func (q *Query) reversed() *Query {
	clone := *q
	clone.startAt = nil
	if clone.orderDir == dirDescending {
		clone.orderDir = dirAscending
	} else {
		clone.orderDir = dirDescending
	}
	return &clone
}

func (q *Query) build() runQueryRequest {
	sq := &structuredQuery{
		From:    []collectionSelector{{CollectionID: q.collection}},
		Limit:   q.limit,
		StartAt: q.startAt,
	}

	switch len(q.filters) {
	case 0:
	case 1:
		sq.Where = &whereClause{FieldFilter: &q.filters[0]}
	default:
		filters := make([]whereClause, 0, len(q.filters))
		for i := range q.filters {
			filters = append(filters, whereClause{FieldFilter: &q.filters[i]})
		}
		sq.Where = &whereClause{CompositeFilter: &compositeFilter{Op: "AND", Filters: filters}}
	}

	if q.orderField != "" {
		sq.OrderBy = []queryOrder{
			{Field: fieldReference{FieldPath: q.orderField}, Direction: q.orderDir},
			{Field: fieldReference{FieldPath: fieldDocumentName}, Direction: q.orderDir},
		}
	}

	if len(q.selectFields) > 0 {
		fields := make([]fieldReference, 0, len(q.selectFields))
		for _, f := range q.selectFields {
			fields = append(fields, fieldReference{FieldPath: f})
		}
		sq.Select = &projection{Fields: fields}
	}

	return runQueryRequest{StructuredQuery: sq}
}
