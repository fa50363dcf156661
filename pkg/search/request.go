package search

import (
	"math"
	"strings"
)

const (
	DefaultPageSize = 50
	MaxPageSize     = 100

	// MaxResultWindow is the deepest hit (from+size) the store will page to.
	// Matches the index.max_result_window default of Elasticsearch.
	MaxResultWindow = 10000
)

// Sort orders hits by a single field. Documents missing the field go last.
type Sort struct {
	Field string
	Desc  bool
}

// ParseSort reads the "-field" convention: a leading '-' means descending.
func ParseSort(s string) Sort {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "-") {
		return Sort{Field: strings.TrimPrefix(s, "-"), Desc: true}
	}
	return Sort{Field: s}
}

// String renders the sort back in "-field" form.
func (s Sort) String() string {
	if s.Desc {
		return "-" + s.Field
	}
	return s.Field
}

func (s Sort) source() map[string]any {
	order := "asc"
	if s.Desc {
		order = "desc"
	}
	return map[string]any{
		s.Field: map[string]any{"order": order, "missing": "_last"},
	}
}

// Page is a 1-based page number plus page size.
type Page struct {
	Number int
	Size   int
}

// Normalize clamps the page into the valid range: number >= 1 and
// 1 <= size <= MaxPageSize.
func (p Page) Normalize() Page {
	if p.Number < 1 {
		p.Number = 1
	}
	if p.Size < 1 {
		p.Size = DefaultPageSize
	}
	if p.Size > MaxPageSize {
		p.Size = MaxPageSize
	}
	return p
}

// Offset is the zero-based index of the first hit on the page. It
// saturates at math.MaxInt instead of overflowing.
func (p Page) Offset() int {
	if p.Number <= 1 || p.Size <= 0 {
		return 0
	}
	if p.Number-1 > math.MaxInt/p.Size {
		return math.MaxInt
	}
	return (p.Number - 1) * p.Size
}

// BeyondWindow reports whether the page ends past MaxResultWindow.
func (p Page) BeyondWindow() bool {
	return p.Offset() > MaxResultWindow-p.Size
}

// Request is a complete search request: query, ordering and pagination.
// A CountOnly request asks for the total and no hits.
type Request struct {
	Query     Query
	Sort      []Sort
	From      int
	Size      int
	CountOnly bool
}

// NewRequest builds a request for the given page of q. Sorts with an
// empty field are ignored. A page past MaxResultWindow becomes a
// CountOnly request, so the caller still gets the true total.
func NewRequest(q Query, page Page, sorts ...Sort) Request {
	page = page.Normalize()
	if page.BeyondWindow() {
		return Request{Query: q, CountOnly: true}
	}
	var order []Sort
	for _, s := range sorts {
		if s.Field != "" {
			order = append(order, s)
		}
	}
	return Request{
		Query: q,
		Sort:  order,
		From:  page.Offset(),
		Size:  page.Size,
	}
}

// Body renders the request as an Elasticsearch _search body.
func (r Request) Body() map[string]any {
	q := r.Query
	if q == nil {
		q = MatchAll{}
	}
	if r.CountOnly {
		return map[string]any{
			"query":            q.Source(),
			"size":             0,
			"track_total_hits": true,
		}
	}
	body := map[string]any{
		"query":            q.Source(),
		"from":             r.From,
		"track_total_hits": true,
	}
	if r.Size > 0 {
		body["size"] = r.Size
	}
	if len(r.Sort) > 0 {
		sorts := make([]map[string]any, 0, len(r.Sort))
		for _, s := range r.Sort {
			sorts = append(sorts, s.source())
		}
		body["sort"] = sorts
	}
	return body
}
