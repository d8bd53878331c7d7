// Package template loads the saved search template. The template is
// fetched fresh per request; cross-request caching is deliberately out of
// scope, only concurrent duplicate loads are collapsed.
package template

import "context"

// Source provides the raw search template bytes.
type Source interface {
	Load(ctx context.Context) ([]byte, error)
	HealthCheck(ctx context.Context) error
}
