package query

import "github.com/10up/elasticpress-proxy/internal/domain/search/relation"

// Clause is a named, opaque boolean-query fragment.
type Clause struct {
	Name string
	Body map[string]any
}

// ClauseSet collects filter clauses in insertion order with unique names.
// Adding an existing name overwrites the body in place; the original
// position is kept.
type ClauseSet struct {
	clauses []Clause
	index   map[string]int
}

// Add inserts or overwrites a clause.
func (s *ClauseSet) Add(name string, body map[string]any) {
	if s.index == nil {
		s.index = make(map[string]int)
	}
	if i, ok := s.index[name]; ok {
		s.clauses[i].Body = body
		return
	}
	s.index[name] = len(s.clauses)
	s.clauses = append(s.clauses, Clause{Name: name, Body: body})
}

// Len returns the number of clauses.
func (s *ClauseSet) Len() int { return len(s.clauses) }

// Bodies returns all clause bodies in insertion order.
func (s *ClauseSet) Bodies() []any {
	out := make([]any, 0, len(s.clauses))
	for _, c := range s.clauses {
		out = append(out, c.Body)
	}
	return out
}

// BodiesExcept returns all clause bodies except the one named name.
func (s *ClauseSet) BodiesExcept(name string) []any {
	out := make([]any, 0, len(s.clauses))
	for _, c := range s.clauses {
		if c.Name == name {
			continue
		}
		out = append(out, c.Body)
	}
	return out
}

// valuesClause builds the per-filter-type fragment. Relation or matches any
// of the values with a single terms clause; relation and demands every
// value via a conjunction of single-term clauses.
func valuesClause(field string, values []string, rel relation.Relation) map[string]any {
	if rel == relation.And {
		must := make([]any, 0, len(values))
		for _, v := range values {
			must = append(must, map[string]any{"term": map[string]any{field: v}})
		}
		return map[string]any{"bool": map[string]any{"must": must}}
	}

	anyValues := make([]any, 0, len(values))
	for _, v := range values {
		anyValues = append(anyValues, v)
	}
	return map[string]any{"terms": map[string]any{field: anyValues}}
}

// rangeClause builds a single-bound range fragment (gte or lte).
func rangeClause(field, bound, value string) map[string]any {
	return map[string]any{"range": map[string]any{field: map[string]any{bound: value}}}
}
