package epproxy

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const defaultLanguageCookie = "ep_language"

// Client is the search proxy SDK entry point.
type Client struct {
	baseURL    string
	httpClient *http.Client
	language   string
	cookieName string
	logger     *slog.Logger
}

// New creates a Client for the proxy at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("epproxy: base URL required")
	}

	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.httpClient == nil {
		cfg.httpClient = http.DefaultClient
	}
	if cfg.cookieName == "" {
		cfg.cookieName = defaultLanguageCookie
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: cfg.httpClient,
		language:   cfg.language,
		cookieName: cfg.cookieName,
		logger:     cfg.logger,
	}, nil
}

// Search runs a search and decodes the relayed envelope.
// Non-2xx statuses are returned as a *StatusError.
func (c *Client) Search(ctx context.Context, params Params) (*SearchResponse, error) {
	u := c.baseURL + "/search"
	if q := params.encode(); q != "" {
		u += "?" + q
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("epproxy: build request: %w", err)
	}
	if c.language != "" {
		req.AddCookie(&http.Cookie{Name: c.cookieName, Value: c.language})
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("epproxy: search: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("epproxy: read response: %w", err)
	}

	if c.logger != nil {
		c.logger.DebugContext(ctx, "search",
			slog.String("term", params.Term),
			slog.Int("status", resp.StatusCode),
			slog.Duration("latency", time.Since(start)),
		)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: body}
	}

	var out SearchResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("epproxy: decode response: %w", err)
	}
	return &out, nil
}

// Health checks the proxy's aggregated health endpoint.
// A degraded proxy returns a *StatusError with status 503.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("epproxy: build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("epproxy: health: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return &StatusError{StatusCode: resp.StatusCode, Body: body}
	}
	return nil
}
