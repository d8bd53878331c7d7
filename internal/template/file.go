package template

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/10up/elasticpress-proxy/internal/domain"
	"github.com/10up/elasticpress-proxy/internal/metrics"
)

// FileSource reads the template from disk on every load.
type FileSource struct {
	path string
}

// NewFile creates a file-backed template source.
func NewFile(path string) *FileSource {
	return &FileSource{path: filepath.Clean(path)}
}

// Load reads the template file.
func (s *FileSource) Load(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		metrics.TemplateLoadsTotal.WithLabelValues("file", "error").Inc()
		return nil, fmt.Errorf("%w: read %s: %w", domain.ErrTemplate, s.path, err)
	}
	metrics.TemplateLoadsTotal.WithLabelValues("file", "success").Inc()
	return data, nil
}

// HealthCheck verifies the template file exists.
func (s *FileSource) HealthCheck(_ context.Context) error {
	if _, err := os.Stat(s.path); err != nil {
		return fmt.Errorf("%w: stat %s: %w", domain.ErrTemplate, s.path, err)
	}
	return nil
}
