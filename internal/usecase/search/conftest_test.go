package search

import (
	"context"
	"net/http"

	"github.com/10up/elasticpress-proxy/internal/relay"
)

// mockTemplates implements TemplateSource for tests.
type mockTemplates struct {
	template []byte
	err      error
	loads    int
}

func (m *mockTemplates) Load(_ context.Context) ([]byte, error) {
	m.loads++
	return m.template, m.err
}

// mockBackend implements Backend for tests.
type mockBackend struct {
	resp     *relay.Response
	err      error
	lastBody []byte
	called   bool
}

func (m *mockBackend) Search(_ context.Context, body []byte) (*relay.Response, error) {
	m.called = true
	m.lastBody = body
	return m.resp, m.err
}

func okResponse() *relay.Response {
	return &relay.Response{
		StatusCode: 200,
		Header:     http.Header{"Content-Type": {"application/json"}},
		Body:       []byte(`{"took": 1}`),
	}
}
