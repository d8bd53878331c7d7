package epproxy

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

// TaxonomyParam filters by taxonomy terms. Relation ("and"/"or") is
// optional; when empty the global relation applies.
type TaxonomyParam struct {
	Slug     string
	Relation string
	TermIDs  []string
}

// Params is the inbound query surface of the proxy.
type Params struct {
	Term         string
	PerPage      int
	Offset       int
	OrderBy      string // date, price, rating
	Order        string // asc, desc
	HighlightTag string
	PostTypes    []string
	Taxonomies   []TaxonomyParam
	MinPrice     string
	MaxPrice     string
	Relation     string // and, or
}

// encode serializes params into the proxy's query string format.
func (p Params) encode() string {
	v := url.Values{}
	if p.Term != "" {
		v.Set("search", p.Term)
	}
	if p.PerPage > 0 {
		v.Set("per_page", fmt.Sprintf("%d", p.PerPage))
	}
	if p.Offset > 0 {
		v.Set("offset", fmt.Sprintf("%d", p.Offset))
	}
	if p.OrderBy != "" {
		v.Set("orderby", p.OrderBy)
	}
	if p.Order != "" {
		v.Set("order", p.Order)
	}
	if p.HighlightTag != "" {
		v.Set("highlight", p.HighlightTag)
	}
	if len(p.PostTypes) > 0 {
		v.Set("post_type", strings.Join(p.PostTypes, ","))
	}
	for _, tax := range p.Taxonomies {
		v.Set("tax-"+tax.Slug, strings.Join(tax.TermIDs, ","))
		if tax.Relation != "" {
			v.Set("term_relations["+tax.Slug+"]", tax.Relation)
		}
	}
	if p.MinPrice != "" {
		v.Set("min_price", p.MinPrice)
	}
	if p.MaxPrice != "" {
		v.Set("max_price", p.MaxPrice)
	}
	if p.Relation != "" {
		v.Set("relation", p.Relation)
	}
	return v.Encode()
}

// SearchResponse is the search envelope relayed from the backend.
type SearchResponse struct {
	Took         int                        `json:"took"`
	TimedOut     bool                       `json:"timed_out"`
	Hits         Hits                       `json:"hits"`
	Aggregations map[string]json.RawMessage `json:"aggregations,omitempty"`
}

// Hits holds the result set.
type Hits struct {
	Total    Total    `json:"total"`
	MaxScore *float64 `json:"max_score"`
	Hits     []Hit    `json:"hits"`
}

// Total reports how many documents matched.
type Total struct {
	Value    int    `json:"value"`
	Relation string `json:"relation"`
}

// Hit is a single matched document. Source is kept raw so callers can
// decode into their own post types.
type Hit struct {
	Index     string              `json:"_index"`
	ID        string              `json:"_id"`
	Score     *float64            `json:"_score"`
	Source    json.RawMessage     `json:"_source"`
	Highlight map[string][]string `json:"highlight,omitempty"`
}
