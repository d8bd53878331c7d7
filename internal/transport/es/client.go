// Package es invokes the Elasticsearch search endpoint with the composed
// query and captures the raw response for the relay.
package es

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/elastic/go-elasticsearch/v8"

	"github.com/10up/elasticpress-proxy/internal/domain"
	"github.com/10up/elasticpress-proxy/internal/metrics"
	"github.com/10up/elasticpress-proxy/internal/relay"
)

const defaultTimeout = 10 * time.Second

// Config holds the search backend settings.
type Config struct {
	Addresses []string
	Username  string
	Password  string
	Index     string
	Timeout   time.Duration
}

// Client wraps the Elasticsearch client for the proxy's single search call.
type Client struct {
	es      *elasticsearch.Client
	index   string
	timeout time.Duration
}

// New creates a search backend client.
func New(cfg Config) (*Client, error) {
	if len(cfg.Addresses) == 0 {
		return nil, fmt.Errorf("addresses is required")
	}
	if cfg.Index == "" {
		return nil, fmt.Errorf("index is required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: cfg.Addresses,
		Username:  cfg.Username,
		Password:  cfg.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return &Client{es: es, index: cfg.Index, timeout: cfg.Timeout}, nil
}

// Search posts the composed query to <index>/_search and captures the raw
// response. Non-2xx statuses are returned as responses and passed through
// to the caller verbatim; only transport failures are errors.
func (c *Client) Search(ctx context.Context, body []byte) (*relay.Response, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()

	res, err := c.es.Search(
		c.es.Search.WithContext(ctx),
		c.es.Search.WithIndex(c.index),
		c.es.Search.WithBody(bytes.NewReader(body)),
	)

	duration := time.Since(start)

	if err != nil {
		metrics.BackendErrorsTotal.WithLabelValues("transport").Inc()
		return nil, fmt.Errorf("%w: %w", domain.ErrBackendUnreachable, err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		metrics.BackendErrorsTotal.WithLabelValues("read_body").Inc()
		return nil, fmt.Errorf("%w: read response: %w", domain.ErrBackendUnreachable, err)
	}

	class := metrics.StatusClass(res.StatusCode)
	metrics.BackendRequestsTotal.WithLabelValues(class).Inc()
	metrics.BackendRequestDuration.WithLabelValues(class).Observe(duration.Seconds())

	return &relay.Response{
		StatusCode: res.StatusCode,
		Header:     res.Header,
		Body:       raw,
	}, nil
}

// Ping checks backend availability.
func (c *Client) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	res, err := c.es.Ping(c.es.Ping.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("ping: %s", res.Status())
	}
	return nil
}
