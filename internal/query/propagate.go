package query

import "github.com/10up/elasticpress-proxy/internal/domain/search/relation"

// aggregationKeys are the two spellings Elasticsearch accepts for
// sub-aggregations.
var aggregationKeys = []string{"aggs", "aggregations"}

// applyFilters merges the constructed filter set into the post-query filter
// and, under the and relation, pushes it into every aggregation that has
// sub-aggregations. All touched nodes are rebuilt as new maps; the template
// structures are never mutated through aliasing.
func (c *Composer) applyFilters(doc Document, set *ClauseSet, rel relation.Relation, language string) {
	base := matchAll()
	if existing, ok := doc["post_filter"].(map[string]any); ok {
		base = rewriteLanguage(existing, c.languageField, language)
		doc["post_filter"] = base
	}

	occ := occurrence(rel)
	if set.Len() > 0 {
		doc["post_filter"] = combineFilters(base, set.Bodies(), occ)
	}

	if rel != relation.And {
		return
	}
	for _, key := range aggregationKeys {
		if aggs, ok := doc[key].(map[string]any); ok {
			doc[key] = c.propagate(aggs, set, rel, occ)
		}
	}
}

// propagate returns a new top-level aggregation map with the filter set
// applied to every aggregation that declares sub-aggregations. Other nodes
// are carried over untouched.
func (c *Composer) propagate(aggs map[string]any, set *ClauseSet, rel relation.Relation, occ string) map[string]any {
	out := make(map[string]any, len(aggs))
	for name, raw := range aggs {
		node, ok := raw.(map[string]any)
		if !ok || !hasSubAggregations(node) {
			out[name] = raw
			continue
		}

		// A facet is not meant to filter against its own selection, but
		// the exclusion below only fires under the or relation and this
		// branch only runs under and, so every aggregation currently
		// keeps the full clause set, its own facet included.
		bodies := set.Bodies()
		if rel == relation.Or {
			bodies = set.BodiesExcept(name)
		}
		if len(bodies) == 0 {
			out[name] = raw
			continue
		}

		existing, ok := node["filter"].(map[string]any)
		if !ok {
			existing = matchAll()
		}

		next := make(map[string]any, len(node)+1)
		for k, v := range node {
			next[k] = v
		}
		next["filter"] = combineFilters(existing, bodies, occ)
		out[name] = next
	}
	return out
}

// combineFilters wraps an existing filter and the constructed clauses into
// must[ existing, bool{ occurrence: clauses } ].
func combineFilters(existing map[string]any, bodies []any, occ string) map[string]any {
	return map[string]any{
		"bool": map[string]any{
			"must": []any{
				existing,
				map[string]any{"bool": map[string]any{occ: bodies}},
			},
		},
	}
}

// rewriteLanguage returns a copy of the filter where every top-level
// conjunctive term clause on the language field carries the caller's
// language. An empty language leaves the filter as is.
func rewriteLanguage(filter map[string]any, field, language string) map[string]any {
	if language == "" {
		return filter
	}
	boolPart, ok := filter["bool"].(map[string]any)
	if !ok {
		return filter
	}
	must, ok := boolPart["must"].([]any)
	if !ok {
		return filter
	}

	changed := false
	newMust := make([]any, len(must))
	for i, sub := range must {
		newMust[i] = sub
		m, ok := sub.(map[string]any)
		if !ok {
			continue
		}
		term, ok := m["term"].(map[string]any)
		if !ok {
			continue
		}
		if _, ok := term[field]; !ok {
			continue
		}
		newMust[i] = map[string]any{"term": map[string]any{field: language}}
		changed = true
	}
	if !changed {
		return filter
	}

	out := make(map[string]any, len(filter))
	for k, v := range filter {
		out[k] = v
	}
	newBool := make(map[string]any, len(boolPart))
	for k, v := range boolPart {
		newBool[k] = v
	}
	newBool["must"] = newMust
	out["bool"] = newBool
	return out
}

func hasSubAggregations(node map[string]any) bool {
	for _, key := range aggregationKeys {
		if _, ok := node[key]; ok {
			return true
		}
	}
	return false
}

// occurrence maps the global relation to the boolean occurrence used when
// combining constructed clauses.
func occurrence(rel relation.Relation) string {
	if rel == relation.And {
		return "must"
	}
	return "should"
}
