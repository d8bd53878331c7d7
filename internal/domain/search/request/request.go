// Package request turns the raw caller query string into a typed search
// request. Parsing is pure and never fails: every malformed field degrades
// to its default.
package request

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/10up/elasticpress-proxy/internal/domain/search/order"
	"github.com/10up/elasticpress-proxy/internal/domain/search/relation"
	"github.com/10up/elasticpress-proxy/internal/domain/search/sanitize"
)

// taxPrefix marks query parameters that carry taxonomy term filters.
const taxPrefix = "tax-"

// TaxonomyFilter holds the term filter for one taxonomy.
// An empty Relation inherits the request's global relation.
type TaxonomyFilter struct {
	Slug     string
	Relation relation.Relation
	TermIDs  []string
}

// Request is a normalized search request, derived once per invocation.
type Request struct {
	term           string
	perPage        int
	offset         int
	orderBy        order.Field
	direction      order.Direction
	highlightTag   string
	postTypes      []string
	taxonomies     []TaxonomyFilter
	minPrice       string
	maxPrice       string
	globalRelation relation.Relation
}

// ParseQuery builds a Request from the raw query string of the inbound call.
// Taxonomy filters keep the order their keys first appear in the query
// string; a repeated key keeps its first position but takes the last value.
func ParseQuery(rawQuery string) Request {
	values, _ := url.ParseQuery(rawQuery)

	r := Request{
		term:           sanitize.Clean(values.Get("search")),
		perPage:        parseInt(values.Get("per_page")),
		offset:         parseInt(values.Get("offset")),
		orderBy:        order.ParseField(sanitize.Clean(values.Get("orderby"))),
		direction:      order.ParseDirection(sanitize.Clean(values.Get("order"))),
		highlightTag:   sanitize.Clean(values.Get("highlight")),
		postTypes:      sanitize.List(values.Get("post_type")),
		minPrice:       sanitize.Number(values.Get("min_price")),
		maxPrice:       sanitize.Number(values.Get("max_price")),
		globalRelation: relation.Parse(values.Get("relation")),
	}

	overrides := relationOverrides(values)
	for _, p := range taxonomyParams(rawQuery) {
		r.taxonomies = append(r.taxonomies, TaxonomyFilter{
			Slug:     p.slug,
			Relation: overrides[p.slug],
			TermIDs:  sanitize.IDList(p.value),
		})
	}

	return r
}

// Term returns the sanitized search term.
func (r *Request) Term() string { return r.term }

// PerPage returns the page size override (0 when absent or malformed).
func (r *Request) PerPage() int { return r.perPage }

// Offset returns the result offset override (0 when absent or malformed).
func (r *Request) Offset() int { return r.offset }

// OrderBy returns the sort field selector.
func (r *Request) OrderBy() order.Field { return r.orderBy }

// Order returns the sort direction.
func (r *Request) Order() order.Direction { return r.direction }

// HighlightTag returns the tag name for highlight wrapping ("" for default).
func (r *Request) HighlightTag() string { return r.highlightTag }

// PostTypes returns the post types to filter on.
func (r *Request) PostTypes() []string { return r.postTypes }

// Taxonomies returns the taxonomy filters in request-key order.
func (r *Request) Taxonomies() []TaxonomyFilter { return r.taxonomies }

// MinPrice returns the lower price bound ("" when absent).
func (r *Request) MinPrice() string { return r.minPrice }

// MaxPrice returns the upper price bound ("" when absent).
func (r *Request) MaxPrice() string { return r.maxPrice }

// GlobalRelation returns the global filter relation.
func (r *Request) GlobalRelation() relation.Relation { return r.globalRelation }

type taxParam struct {
	slug  string
	value string
}

// taxonomyParams scans the raw query string directly because url.Values
// loses key order. Only tax-<slug> pairs with a non-empty value count.
func taxonomyParams(rawQuery string) []taxParam {
	var params []taxParam
	index := make(map[string]int)

	for _, pair := range strings.Split(rawQuery, "&") {
		rawKey, rawValue, _ := strings.Cut(pair, "=")
		key, err := url.QueryUnescape(rawKey)
		if err != nil {
			continue
		}
		rest, ok := strings.CutPrefix(key, taxPrefix)
		if !ok {
			continue
		}
		slug := sanitize.Clean(rest)
		if slug == "" {
			continue
		}
		value, err := url.QueryUnescape(rawValue)
		if err != nil || value == "" {
			continue
		}

		if i, seen := index[slug]; seen {
			params[i].value = value
			continue
		}
		index[slug] = len(params)
		params = append(params, taxParam{slug: slug, value: value})
	}

	return params
}

// relationOverrides extracts per-taxonomy relation overrides from
// term_relations[<slug>] parameters. Empty values are ignored.
func relationOverrides(values url.Values) map[string]relation.Relation {
	overrides := make(map[string]relation.Relation)
	for key, vs := range values {
		rest, ok := strings.CutPrefix(key, "term_relations[")
		if !ok {
			continue
		}
		slug, ok := strings.CutSuffix(rest, "]")
		if !ok {
			continue
		}
		slug = sanitize.Clean(slug)
		if slug == "" || len(vs) == 0 || vs[len(vs)-1] == "" {
			continue
		}
		overrides[slug] = relation.Parse(vs[len(vs)-1])
	}
	return overrides
}

func parseInt(raw string) int {
	n, err := strconv.Atoi(sanitize.Number(raw))
	if err != nil {
		return 0
	}
	return n
}
