package search

// Query is a node of the structured query DSL. Source renders the node in
// Elasticsearch JSON form.
type Query interface {
	Source() map[string]any
}

// MatchAll matches every document.
type MatchAll struct{}

func (MatchAll) Source() map[string]any {
	return map[string]any{"match_all": map[string]any{}}
}

// Term is an exact match on a keyword field.
type Term struct {
	Field string
	Value any
}

func (q Term) Source() map[string]any {
	return map[string]any{
		"term": map[string]any{q.Field: q.Value},
	}
}

// Nested runs Query against the objects stored under Path.
type Nested struct {
	Path  string
	Query Query
}

func (q Nested) Source() map[string]any {
	return map[string]any{
		"nested": map[string]any{
			"path":  q.Path,
			"query": q.Query.Source(),
		},
	}
}

// Bool combines clauses. Must clauses contribute to the score, Filter
// clauses only narrow the result set and Should clauses are OR'ed.
type Bool struct {
	Must               []Query
	Filter             []Query
	Should             []Query
	MinimumShouldMatch int
}

func (q Bool) Source() map[string]any {
	body := map[string]any{}
	if len(q.Must) > 0 {
		body["must"] = sources(q.Must)
	}
	if len(q.Filter) > 0 {
		body["filter"] = sources(q.Filter)
	}
	if len(q.Should) > 0 {
		body["should"] = sources(q.Should)
	}
	if q.MinimumShouldMatch > 0 {
		body["minimum_should_match"] = q.MinimumShouldMatch
	}
	return map[string]any{"bool": body}
}

// MultiMatch is a relevance query over several fields. A field may carry a
// boost suffix, e.g. "title^3".
type MultiMatch struct {
	Text   string
	Fields []string
}

func (q MultiMatch) Source() map[string]any {
	return map[string]any{
		"multi_match": map[string]any{
			"query":  q.Text,
			"fields": q.Fields,
		},
	}
}

// Match is a relevance query on a single text field.
type Match struct {
	Field string
	Text  string
}

func (q Match) Source() map[string]any {
	return map[string]any{
		"match": map[string]any{
			q.Field: map[string]any{"query": q.Text},
		},
	}
}

func sources(qs []Query) []map[string]any {
	out := make([]map[string]any, 0, len(qs))
	for _, q := range qs {
		out = append(out, q.Source())
	}
	return out
}
