package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	chirouter "github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/10up/elasticpress-proxy/internal/domain"
	"github.com/10up/elasticpress-proxy/internal/domain/search/request"
	"github.com/10up/elasticpress-proxy/internal/relay"
	healthuc "github.com/10up/elasticpress-proxy/internal/usecase/health"
)

// DefaultLanguageCookie is the cookie the proxy reads the caller's
// language preference from.
const DefaultLanguageCookie = "ep_language"

type searcher interface {
	Search(ctx context.Context, req *request.Request, language string) (*relay.Response, error)
}

type healthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// Server exposes the proxy over HTTP.
type Server struct {
	search         searcher
	health         healthChecker
	logger         *zap.Logger
	languageCookie string
}

// NewServer creates an HTTP API server. languageCookie may be empty,
// in which case DefaultLanguageCookie is used.
func NewServer(search searcher, health healthChecker, logger *zap.Logger, languageCookie string) *Server {
	if languageCookie == "" {
		languageCookie = DefaultLanguageCookie
	}
	return &Server{
		search:         search,
		health:         health,
		logger:         logger,
		languageCookie: languageCookie,
	}
}

// Routes registers the server's handlers on the router. The search
// endpoint answers on both / and /search so existing front-end
// integrations keep working without path rewrites.
func (s *Server) Routes(r chirouter.Router) {
	r.Get("/", s.HandleSearch)
	r.Get("/search", s.HandleSearch)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// HandleSearch handles GET / and GET /search.
func (s *Server) HandleSearch(w http.ResponseWriter, r *http.Request) {
	req := request.ParseQuery(r.URL.RawQuery)

	language := ""
	if c, err := r.Cookie(s.languageCookie); err == nil {
		language = c.Value
	}

	resp, err := s.search.Search(r.Context(), &req, language)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	if err := relay.Write(w, resp, r.Host); err != nil {
		s.logger.Error("relay response", zap.Error(err))
	}
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))

	switch {
	case errors.Is(err, domain.ErrBackendUnreachable):
		// An unreachable backend surfaces as an empty 404, the same way
		// a relayed zero-status upstream response does. Callers treat
		// the proxy as absent rather than broken.
		w.WriteHeader(http.StatusNotFound)
	case errors.Is(err, domain.ErrTemplate):
		writeError(w, http.StatusInternalServerError, "template_error", domain.ErrTemplate.Error())
	case errors.Is(err, domain.ErrCompose):
		writeError(w, http.StatusInternalServerError, "composition_error", domain.ErrCompose.Error())
	default:
		s.logger.Error("internal error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]string{
		"code":    code,
		"message": message,
	})
}
