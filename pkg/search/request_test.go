package search

import (
	"math"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSort(t *testing.T) {
	tests := []struct {
		in   string
		want Sort
	}{
		{"-imdb_rating", Sort{Field: "imdb_rating", Desc: true}},
		{"imdb_rating", Sort{Field: "imdb_rating"}},
		{"  -title ", Sort{Field: "title", Desc: true}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := ParseSort(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, ParseSort(got.String()))
		})
	}
}

func TestPage_NormalizeAndOffset(t *testing.T) {
	tests := []struct {
		name       string
		in         Page
		want       Page
		wantOffset int
	}{
		{"first page", Page{Number: 1, Size: 10}, Page{Number: 1, Size: 10}, 0},
		{"second page", Page{Number: 2, Size: 10}, Page{Number: 2, Size: 10}, 10},
		{"zero values", Page{}, Page{Number: 1, Size: DefaultPageSize}, 0},
		{"negative number", Page{Number: -3, Size: 5}, Page{Number: 1, Size: 5}, 0},
		{"oversized", Page{Number: 3, Size: 1000}, Page{Number: 3, Size: MaxPageSize}, 2 * MaxPageSize},
		{"overflowing number", Page{Number: math.MaxInt/2 + 2, Size: 2}, Page{Number: math.MaxInt/2 + 2, Size: 2}, math.MaxInt},
		{"max number", Page{Number: math.MaxInt, Size: MaxPageSize}, Page{Number: math.MaxInt, Size: MaxPageSize}, math.MaxInt},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Normalize()
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOffset, got.Offset())
		})
	}
}

func TestRequest_Body(t *testing.T) {
	req := NewRequest(
		Bool{
			Must:   []Query{MatchAll{}},
			Filter: []Query{Nested{Path: "genres", Query: Term{Field: "genres.id", Value: "g1"}}},
		},
		Page{Number: 3, Size: 20},
		Sort{Field: "imdb_rating", Desc: true},
	)

	raw, err := json.Marshal(req.Body())
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"query": {"bool": {
			"must": [{"match_all": {}}],
			"filter": [{"nested": {"path": "genres", "query": {"term": {"genres.id": "g1"}}}}]
		}},
		"from": 40,
		"size": 20,
		"track_total_hits": true,
		"sort": [{"imdb_rating": {"order": "desc", "missing": "_last"}}]
	}`, string(raw))
}

func TestRequest_BodyDefaultsToMatchAll(t *testing.T) {
	raw, err := json.Marshal(Request{}.Body())
	require.NoError(t, err)
	assert.JSONEq(t, `{"query": {"match_all": {}}, "from": 0, "track_total_hits": true}`, string(raw))
}

func TestShouldAndMultiMatchSource(t *testing.T) {
	q := Bool{
		Should: []Query{
			MultiMatch{Text: "star", Fields: []string{"title^3", "description"}},
			Match{Field: "full_name", Text: "lucas"},
		},
		MinimumShouldMatch: 1,
	}
	raw, err := json.Marshal(q.Source())
	require.NoError(t, err)
	assert.JSONEq(t, `{"bool": {
		"should": [
			{"multi_match": {"query": "star", "fields": ["title^3", "description"]}},
			{"match": {"full_name": {"query": "lucas"}}}
		],
		"minimum_should_match": 1
	}}`, string(raw))
}

func TestNewRequest_DropsEmptySort(t *testing.T) {
	req := NewRequest(MatchAll{}, Page{Number: 1, Size: 5}, Sort{})
	assert.Empty(t, req.Sort)
	_, hasSort := req.Body()["sort"]
	assert.False(t, hasSort)
}

func TestNewRequest_PageBeyondWindowIsCountOnly(t *testing.T) {
	tests := []struct {
		name      string
		page      Page
		countOnly bool
	}{
		{"last page inside window", Page{Number: 200, Size: 50}, false},
		{"first page past window", Page{Number: 201, Size: 50}, true},
		{"overflowing number", Page{Number: math.MaxInt/2 + 2, Size: 2}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := NewRequest(MatchAll{}, tt.page, Sort{Field: "imdb_rating", Desc: true})
			assert.Equal(t, tt.countOnly, req.CountOnly)
			assert.GreaterOrEqual(t, req.From, 0)
		})
	}
}

func TestRequest_CountOnlyBody(t *testing.T) {
	req := NewRequest(Term{Field: "genres", Value: "g1"}, Page{Number: 1000, Size: 20}, Sort{Field: "imdb_rating"})

	raw, err := json.Marshal(req.Body())
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"query": {"term": {"genres": "g1"}},
		"size": 0,
		"track_total_hits": true
	}`, string(raw))
}
