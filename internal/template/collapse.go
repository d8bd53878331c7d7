package template

import (
	"context"

	"golang.org/x/sync/singleflight"
)

var _ Source = (*CollapsedSource)(nil)

// CollapsedSource deduplicates concurrent template loads. It is not a
// cache: once a load completes, the next request loads again.
type CollapsedSource struct {
	src   Source
	group singleflight.Group
}

// Collapsed wraps a source with singleflight collapse.
func Collapsed(src Source) *CollapsedSource {
	return &CollapsedSource{src: src}
}

// Load delegates to the wrapped source, sharing the result of an in-flight
// load with every concurrent caller.
func (c *CollapsedSource) Load(ctx context.Context) ([]byte, error) {
	v, err, _ := c.group.Do("template", func() (any, error) {
		return c.src.Load(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

// HealthCheck delegates to the wrapped source.
func (c *CollapsedSource) HealthCheck(ctx context.Context) error {
	return c.src.HealthCheck(ctx)
}
