package epproxy

import (
	"log/slog"
	"net/http"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	httpClient *http.Client
	language   string
	cookieName string
	logger     *slog.Logger
}

// WithHTTPClient sets the underlying HTTP client.
// Defaults to http.DefaultClient.
func WithHTTPClient(hc *http.Client) Option {
	return optionFunc(func(c *clientConfig) {
		c.httpClient = hc
	})
}

// WithLanguage sets the language preference sent with every search.
// The proxy reads it from a cookie and localizes language-filtered
// queries accordingly.
func WithLanguage(lang string) Option {
	return optionFunc(func(c *clientConfig) {
		c.language = lang
	})
}

// WithLanguageCookie overrides the cookie name the language preference
// is sent under. Default: ep_language.
func WithLanguageCookie(name string) Option {
	return optionFunc(func(c *clientConfig) {
		c.cookieName = name
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}
