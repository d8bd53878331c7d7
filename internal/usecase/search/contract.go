package search

import (
	"context"

	"github.com/10up/elasticpress-proxy/internal/relay"
)

// TemplateSource loads the raw search template.
type TemplateSource interface {
	Load(ctx context.Context) ([]byte, error)
}

// Backend executes the composed query against the search index.
type Backend interface {
	Search(ctx context.Context, body []byte) (*relay.Response, error)
}
