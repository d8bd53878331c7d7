package query

import (
	"bytes"

	"github.com/10up/elasticpress-proxy/internal/domain/search/order"
	"github.com/10up/elasticpress-proxy/internal/domain/search/request"
)

// Config holds the template conventions the composer works against.
type Config struct {
	Placeholder   string // token substituted by the search term
	LanguageField string // term field rewritten to the caller's language
}

// Composer merges a search request into the saved query template.
type Composer struct {
	placeholder   string
	languageField string
}

// NewComposer creates a composer, filling empty config fields with the
// ElasticPress defaults.
func NewComposer(cfg Config) *Composer {
	if cfg.Placeholder == "" {
		cfg.Placeholder = DefaultPlaceholder
	}
	if cfg.LanguageField == "" {
		cfg.LanguageField = DefaultLanguageField
	}
	return &Composer{placeholder: cfg.Placeholder, languageField: cfg.LanguageField}
}

// Compose builds the final query document from the raw template, the
// request, and the caller's language. Step order matters: later steps read
// fields set by earlier ones.
func (c *Composer) Compose(raw []byte, req *request.Request, language string) (Document, error) {
	doc, err := c.render(raw, req.Term())
	if err != nil {
		return nil, err
	}

	c.applyPagination(doc, req)
	c.applySort(doc, req)
	c.applyHighlight(doc, req)

	set := c.buildClauses(req)
	c.applyFilters(doc, set, req.GlobalRelation(), language)

	return doc, nil
}

// render resolves the search term against the template. A non-empty term is
// substituted for the placeholder on the serialized template before
// parsing, which lets the token sit at any depth without per-field wiring;
// the term is sanitized upstream so the rendered bytes stay valid JSON. An
// empty term replaces the whole query with match-all.
func (c *Composer) render(raw []byte, term string) (Document, error) {
	if term == "" {
		doc, err := Parse(raw)
		if err != nil {
			return nil, err
		}
		doc["query"] = matchAll()
		return doc, nil
	}

	rendered := bytes.ReplaceAll(raw, []byte(c.placeholder), []byte(term))
	return Parse(rendered)
}

// applyPagination overrides size/from. Values <= 1 mean "use the template
// default" and leave the document untouched.
func (c *Composer) applyPagination(doc Document, req *request.Request) {
	if req.PerPage() > 1 {
		doc["size"] = req.PerPage()
	}
	if req.Offset() > 1 {
		doc["from"] = req.Offset()
	}
}

// applySort maps the orderby selector to a field-specific sort clause.
// Price sort sets the multi-value mode to min when ascending and max when
// descending so variant prices pick the right bound.
func (c *Composer) applySort(doc Document, req *request.Request) {
	dir := string(req.Order())

	switch req.OrderBy() {
	case order.Date:
		doc["sort"] = []any{map[string]any{fieldDateSort: map[string]any{"order": dir}}}
	case order.Price:
		mode := "min"
		if req.Order() == order.Desc {
			mode = "max"
		}
		doc["sort"] = []any{map[string]any{fieldPriceSort: map[string]any{"order": dir, "mode": mode}}}
	case order.Rating:
		doc["sort"] = []any{map[string]any{fieldRatingSort: map[string]any{"order": dir}}}
	case order.None:
		// template default applies
	}
}

// applyHighlight always attaches the highlight configuration: whole-field
// title highlighting plus two 200-char fragments of the body, HTML-safe
// plain highlighter. A supplied tag wraps matches in <tag>...</tag>.
func (c *Composer) applyHighlight(doc Document, req *request.Request) {
	pre, post := "", ""
	if tag := req.HighlightTag(); tag != "" {
		pre = "<" + tag + ">"
		post = "</" + tag + ">"
	}

	doc["highlight"] = map[string]any{
		"type":      "plain",
		"encoder":   "html",
		"pre_tags":  []any{pre},
		"post_tags": []any{post},
		"fields": map[string]any{
			fieldTitle: map[string]any{
				"number_of_fragments": 0,
			},
			fieldContent: map[string]any{
				"number_of_fragments": 2,
				"fragment_size":       200,
			},
		},
	}
}

// buildClauses constructs the filter set: post_type first, then each
// taxonomy in request-key order, then the price bounds.
func (c *Composer) buildClauses(req *request.Request) *ClauseSet {
	rel := req.GlobalRelation()
	set := &ClauseSet{}

	if pts := req.PostTypes(); len(pts) > 0 {
		set.Add("post_type", valuesClause(fieldPostType, pts, rel))
	}

	for _, tf := range req.Taxonomies() {
		if len(tf.TermIDs) == 0 {
			continue
		}
		eff := tf.Relation
		if eff == "" {
			eff = rel
		}
		set.Add(tf.Slug, valuesClause("terms."+tf.Slug+".term_id", tf.TermIDs, eff))
	}

	if v := req.MinPrice(); v != "" {
		set.Add("min_price", rangeClause(fieldPriceLong, "gte", v))
	}
	if v := req.MaxPrice(); v != "" {
		set.Add("max_price", rangeClause(fieldPriceLong, "lte", v))
	}

	return set
}
