// Package search orchestrates one search request: load the template,
// compose the query, invoke the backend.
package search

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/10up/elasticpress-proxy/internal/domain/search/request"
	"github.com/10up/elasticpress-proxy/internal/logger"
	"github.com/10up/elasticpress-proxy/internal/query"
	"github.com/10up/elasticpress-proxy/internal/relay"
)

// Service handles the search pipeline end to end.
type Service struct {
	templates TemplateSource
	backend   Backend
	composer  *query.Composer
}

// New creates a search service.
func New(templates TemplateSource, backend Backend, composer *query.Composer) *Service {
	return &Service{templates: templates, backend: backend, composer: composer}
}

// Search runs one request through the pipeline. The caller's language is
// passed explicitly; the core never reads ambient request state.
func (s *Service) Search(
	ctx context.Context, req *request.Request, language string,
) (*relay.Response, error) {
	raw, err := s.templates.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load template: %w", err)
	}

	doc, err := s.composer.Compose(raw, req, language)
	if err != nil {
		return nil, fmt.Errorf("compose query: %w", err)
	}

	body, err := doc.Marshal()
	if err != nil {
		return nil, fmt.Errorf("serialize query: %w", err)
	}

	logger.FromContext(ctx).Debug("composed search query",
		zap.String("term", req.Term()),
		zap.String("relation", string(req.GlobalRelation())),
		zap.Int("body_bytes", len(body)),
	)

	resp, err := s.backend.Search(ctx, body)
	if err != nil {
		return nil, fmt.Errorf("backend search: %w", err)
	}
	return resp, nil
}
