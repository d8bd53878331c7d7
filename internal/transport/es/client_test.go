package es

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/10up/elasticpress-proxy/internal/domain"
)

// newBackend fakes an Elasticsearch node. The product header keeps the
// client's product check happy.
func newBackend(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(t *testing.T, srv *httptest.Server) *Client {
	t.Helper()
	c, err := New(Config{
		Addresses: []string{srv.URL},
		Index:     "ep-site",
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestNew_Validation(t *testing.T) {
	if _, err := New(Config{Index: "ep-site"}); err == nil {
		t.Error("expected error for missing addresses")
	}
	if _, err := New(Config{Addresses: []string{"http://localhost:9200"}}); err == nil {
		t.Error("expected error for missing index")
	}
}

func TestSearch_PostsBodyToIndexEndpoint(t *testing.T) {
	var gotPath string
	var gotBody []byte
	srv := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"took": 2, "hits": {"total": {"value": 0}, "hits": []}}`))
	})

	c := newTestClient(t, srv)
	body := []byte(`{"query": {"match_all": {}}}`)
	resp, err := c.Search(context.Background(), body)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if gotPath != "/ep-site/_search" {
		t.Errorf("path = %q, want /ep-site/_search", gotPath)
	}
	if string(gotBody) != string(body) {
		t.Errorf("body = %s", gotBody)
	}
	if resp.StatusCode != 200 {
		t.Errorf("status = %d", resp.StatusCode)
	}

	var parsed map[string]any
	if err := json.Unmarshal(resp.Body, &parsed); err != nil {
		t.Fatalf("response body not captured: %v", err)
	}
	if parsed["took"] != float64(2) {
		t.Errorf("took = %v", parsed["took"])
	}
	if resp.Header.Get("Content-Type") != "application/json" {
		t.Errorf("headers not captured: %v", resp.Header)
	}
}

func TestSearch_NonOKStatusIsNotAnError(t *testing.T) {
	srv := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": {"type": "parsing_exception"}}`))
	})

	c := newTestClient(t, srv)
	resp, err := c.Search(context.Background(), []byte(`{}`))
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 passed through", resp.StatusCode)
	}
}

func TestSearch_TransportFailureIsBackendUnreachable(t *testing.T) {
	srv := newBackend(t, func(w http.ResponseWriter, r *http.Request) {})
	srv.Close()

	c := newTestClient(t, srv)
	_, err := c.Search(context.Background(), []byte(`{}`))
	if err == nil {
		t.Fatal("expected error for closed backend")
	}
	if !errors.Is(err, domain.ErrBackendUnreachable) {
		t.Errorf("error = %v, want ErrBackendUnreachable", err)
	}
}

func TestPing(t *testing.T) {
	srv := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodHead {
			t.Errorf("method = %s, want HEAD", r.Method)
		}
	})

	c := newTestClient(t, srv)
	if err := c.Ping(context.Background()); err != nil {
		t.Errorf("Ping: %v", err)
	}
}

func TestPing_Unavailable(t *testing.T) {
	srv := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	c := newTestClient(t, srv)
	if err := c.Ping(context.Background()); err == nil {
		t.Error("expected error for unavailable backend")
	}
}
