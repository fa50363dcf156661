package search

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/goccy/go-json"

	"movies-backend/pkg/search"
)

var _ search.DocumentStore = (*MemoryStore)(nil)

// defaultSearchSize mirrors the store default when a request sets no size.
const defaultSearchSize = 10

// MemoryStore is an in-process DocumentStore that evaluates the query DSL
// of pkg/search over JSON documents. Dotted field paths flatten through
// lists, so "actors.id" matches any element of the actors list.
type MemoryStore struct {
	mu      sync.RWMutex
	indices map[string]*memoryIndex
}

type memoryIndex struct {
	order []string
	docs  map[string]json.RawMessage
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{indices: make(map[string]*memoryIndex)}
}

// Put stores doc under index/id, replacing any previous version. doc may
// be raw JSON or any value that marshals to a JSON object.
func (m *MemoryStore) Put(index, id string, doc interface{}) error {
	var raw json.RawMessage
	switch v := doc.(type) {
	case json.RawMessage:
		raw = v
	case []byte:
		raw = v
	case string:
		raw = json.RawMessage(v)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("memory store: encode %s/%s: %w", index, id, err)
		}
		raw = b
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	idx, ok := m.indices[index]
	if !ok {
		idx = &memoryIndex{docs: make(map[string]json.RawMessage)}
		m.indices[index] = idx
	}
	if _, exists := idx.docs[id]; !exists {
		idx.order = append(idx.order, id)
	}
	idx.docs[id] = raw
	return nil
}

// Load reads fixtures shaped as {"<index>": [doc, ...]}. Each document
// must carry its id in an "id" field.
func (m *MemoryStore) Load(r io.Reader) error {
	var fixtures map[string][]json.RawMessage
	if err := json.NewDecoder(r).Decode(&fixtures); err != nil {
		return fmt.Errorf("memory store: decode fixtures: %w", err)
	}
	for index, docs := range fixtures {
		for i, doc := range docs {
			var head struct {
				ID string `json:"id"`
			}
			if err := json.Unmarshal(doc, &head); err != nil || head.ID == "" {
				return fmt.Errorf("memory store: fixture %s[%d] has no id", index, i)
			}
			if err := m.Put(index, head.ID, doc); err != nil {
				return err
			}
		}
	}
	return nil
}

// LoadFile is Load over the file at path.
func (m *MemoryStore) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("memory store: open fixtures: %w", err)
	}
	defer f.Close()
	return m.Load(f)
}

func (m *MemoryStore) Get(ctx context.Context, index, id string) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	idx, ok := m.indices[index]
	if !ok {
		return nil, search.ErrNotFound
	}
	doc, ok := idx.docs[id]
	if !ok {
		return nil, search.ErrNotFound
	}
	return doc, nil
}

func (m *MemoryStore) Search(ctx context.Context, index string, req search.Request) (*search.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	idx, ok := m.indices[index]
	if !ok {
		m.mu.RUnlock()
		return &search.Result{}, nil
	}
	type candidate struct {
		hit    search.Hit
		fields map[string]interface{}
	}
	matched := make([]candidate, 0, len(idx.order))
	query := req.Query
	if query == nil {
		query = search.MatchAll{}
	}
	for _, id := range idx.order {
		raw := idx.docs[id]
		var fields map[string]interface{}
		if err := json.Unmarshal(raw, &fields); err != nil {
			continue
		}
		ok, score := evaluate(query, fields)
		if !ok {
			continue
		}
		matched = append(matched, candidate{
			hit:    search.Hit{ID: id, Score: score, Source: raw},
			fields: fields,
		})
	}
	m.mu.RUnlock()

	sort.SliceStable(matched, func(i, j int) bool {
		if len(req.Sort) == 0 {
			return matched[i].hit.Score > matched[j].hit.Score
		}
		for _, s := range req.Sort {
			if c := compareField(matched[i].fields, matched[j].fields, s); c != 0 {
				return c < 0
			}
		}
		return false
	})

	size := req.Size
	if size <= 0 {
		size = defaultSearchSize
	}
	from := req.From
	if from < 0 {
		from = 0
	}

	result := &search.Result{Total: int64(len(matched)), Hits: []search.Hit{}}
	if req.CountOnly || from >= len(matched) {
		return result, nil
	}
	end := from + size
	if end > len(matched) || end < from {
		end = len(matched)
	}
	for _, c := range matched[from:end] {
		result.Hits = append(result.Hits, c.hit)
	}
	return result, nil
}

func (m *MemoryStore) Ping(context.Context) error {
	return nil
}

// evaluate reports whether doc matches q and its relevance score.
func evaluate(q search.Query, doc map[string]interface{}) (bool, float64) {
	switch q := q.(type) {
	case search.MatchAll:
		return true, 1
	case search.Term:
		want := scalarString(q.Value)
		for _, v := range fieldValues(doc, q.Field) {
			if scalarString(v) == want {
				return true, 1
			}
		}
		return false, 0
	case search.Nested:
		return evaluate(q.Query, doc)
	case search.Bool:
		return evaluateBool(q, doc)
	case search.MultiMatch:
		return textScore(doc, q.Text, q.Fields)
	case search.Match:
		return textScore(doc, q.Text, []string{q.Field})
	default:
		return false, 0
	}
}

func evaluateBool(q search.Bool, doc map[string]interface{}) (bool, float64) {
	var score float64
	for _, c := range q.Must {
		ok, s := evaluate(c, doc)
		if !ok {
			return false, 0
		}
		score += s
	}
	for _, c := range q.Filter {
		if ok, _ := evaluate(c, doc); !ok {
			return false, 0
		}
	}
	if len(q.Should) > 0 {
		required := q.MinimumShouldMatch
		if required == 0 && len(q.Must) == 0 && len(q.Filter) == 0 {
			required = 1
		}
		hits := 0
		for _, c := range q.Should {
			if ok, s := evaluate(c, doc); ok {
				hits++
				score += s
			}
		}
		if hits < required {
			return false, 0
		}
	}
	if score == 0 {
		score = 1
	}
	return true, score
}

// textScore sums the boosts of the fields containing each query token.
func textScore(doc map[string]interface{}, text string, fields []string) (bool, float64) {
	tokens := strings.Fields(strings.ToLower(text))
	var score float64
	for _, field := range fields {
		name, boost := parseBoost(field)
		for _, v := range fieldValues(doc, name) {
			s, ok := v.(string)
			if !ok {
				continue
			}
			s = strings.ToLower(s)
			for _, tok := range tokens {
				if strings.Contains(s, tok) {
					score += boost
				}
			}
		}
	}
	return score > 0, score
}

func parseBoost(field string) (string, float64) {
	name, boostStr, found := strings.Cut(field, "^")
	if !found {
		return field, 1
	}
	boost, err := strconv.ParseFloat(boostStr, 64)
	if err != nil {
		return name, 1
	}
	return name, boost
}

// fieldValues collects every value at a dotted path, flattening lists.
func fieldValues(doc map[string]interface{}, path string) []interface{} {
	current := []interface{}{doc}
	for _, part := range strings.Split(path, ".") {
		var next []interface{}
		for _, v := range flatten(current) {
			obj, ok := v.(map[string]interface{})
			if !ok {
				continue
			}
			if child, ok := obj[part]; ok && child != nil {
				next = append(next, child)
			}
		}
		current = next
	}
	return flatten(current)
}

func flatten(values []interface{}) []interface{} {
	out := make([]interface{}, 0, len(values))
	for _, v := range values {
		if list, ok := v.([]interface{}); ok {
			out = append(out, flatten(list)...)
			continue
		}
		out = append(out, v)
	}
	return out
}

func scalarString(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}

// compareField orders two documents by s; documents missing the field sort
// last regardless of direction.
func compareField(a, b map[string]interface{}, s search.Sort) int {
	av, aok := firstValue(a, s.Field)
	bv, bok := firstValue(b, s.Field)
	switch {
	case !aok && !bok:
		return 0
	case !aok:
		return 1
	case !bok:
		return -1
	}

	var c int
	af, aNum := av.(float64)
	bf, bNum := bv.(float64)
	if aNum && bNum {
		switch {
		case af < bf:
			c = -1
		case af > bf:
			c = 1
		}
	} else {
		c = strings.Compare(scalarString(av), scalarString(bv))
	}
	if s.Desc {
		c = -c
	}
	return c
}

func firstValue(doc map[string]interface{}, field string) (interface{}, bool) {
	values := fieldValues(doc, field)
	if len(values) == 0 {
		return nil, false
	}
	return values[0], true
}
