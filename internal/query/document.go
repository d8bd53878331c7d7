// Package query composes the outbound search query from the saved template
// and a normalized search request. This is the relation-aware merge of
// caller filters into the template's post-query filter and facet
// aggregations.
package query

import (
	"encoding/json"
	"fmt"

	"github.com/10up/elasticpress-proxy/internal/domain"
)

// Index field constants fixed by the ElasticPress document mapping.
const (
	fieldPostType   = "post_type.raw"
	fieldPriceLong  = "meta._price.long"
	fieldPriceSort  = "meta._price.double"
	fieldDateSort   = "post_date"
	fieldRatingSort = "meta._wc_average_rating.double"
	fieldTitle      = "post_title"
	fieldContent    = "post_content"
)

// DefaultPlaceholder is the token the saved template carries where the
// search term belongs.
const DefaultPlaceholder = "{{ep_placeholder}}"

// DefaultLanguageField is the term field rewritten to the caller's language.
const DefaultLanguageField = "post_lang"

// Document is the mutable query body built from the template. It is the
// only entity that crosses component boundaries.
type Document map[string]any

// Parse decodes raw template bytes into a Document. A template that is not
// a JSON object rejects composition rather than sending a corrupt query.
func Parse(raw []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: parse template: %w", domain.ErrCompose, err)
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: template is not an object", domain.ErrCompose)
	}
	return doc, nil
}

// Marshal serializes the document for the backend invoker.
func (d Document) Marshal() ([]byte, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("%w: serialize query: %w", domain.ErrCompose, err)
	}
	return data, nil
}

// matchAll is the uniform-weight "match everything" clause.
func matchAll() map[string]any {
	return map[string]any{"match_all": map[string]any{"boost": 1}}
}
