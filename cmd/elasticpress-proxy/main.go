package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/10up/elasticpress-proxy/internal/config"
	logpkg "github.com/10up/elasticpress-proxy/internal/logger"
	"github.com/10up/elasticpress-proxy/internal/metrics"
	"github.com/10up/elasticpress-proxy/internal/query"
	"github.com/10up/elasticpress-proxy/internal/template"
	chiTransport "github.com/10up/elasticpress-proxy/internal/transport/chi"
	"github.com/10up/elasticpress-proxy/internal/transport/es"
	healthuc "github.com/10up/elasticpress-proxy/internal/usecase/health"
	searchuc "github.com/10up/elasticpress-proxy/internal/usecase/search"
	"github.com/10up/elasticpress-proxy/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting search proxy",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("template_driver", cfg.Template.Driver),
		zap.Strings("backend_addresses", cfg.Backend.Addresses),
		zap.String("backend_index", cfg.Backend.Index),
	)

	// Register proxy metrics explicitly (no init())
	metrics.RegisterProxyMetrics()

	// Template source based on driver — composition root
	var source template.Source
	switch cfg.Template.Driver {
	case "file":
		source = template.NewFile(cfg.Template.Path)
	case "redis":
		redisSource, err := template.NewRedis(template.RedisConfig{
			Addrs:    cfg.Template.Addrs,
			Username: cfg.Template.Username,
			Password: cfg.Template.Password,
			DB:       cfg.Template.DB,
			Key:      cfg.Template.Key,
		})
		if err != nil {
			logger.Fatal("Failed to create template store", zap.Error(err))
		}
		defer redisSource.Close()
		source = redisSource
	default:
		logger.Fatal("Unknown template driver", zap.String("driver", cfg.Template.Driver))
	}
	// Concurrent requests share one in-flight template load.
	templates := template.Collapsed(source)

	backend, err := es.New(es.Config{
		Addresses: cfg.Backend.Addresses,
		Username:  cfg.Backend.Username,
		Password:  cfg.Backend.Password,
		Index:     cfg.Backend.Index,
		Timeout:   time.Duration(cfg.Backend.TimeoutSec) * time.Second,
	})
	if err != nil {
		logger.Fatal("Failed to create backend client", zap.Error(err))
	}

	composer := query.NewComposer(query.Config{
		Placeholder:   cfg.Search.Placeholder,
		LanguageField: cfg.Search.LanguageField,
	})

	searchSvc := searchuc.New(templates, backend, composer)
	healthSvc := healthuc.New(templates, backend)

	server := chiTransport.NewServer(searchSvc, healthSvc, logger, cfg.Search.LanguageCookie)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			// Set X-Request-ID in response header
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
