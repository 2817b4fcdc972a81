// Package http serves the dashboard page, chart specs, static renderings and
// health endpoints.
package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/shooting-dashboard/internal/adapter/render"
	"github.com/couchcryptid/shooting-dashboard/internal/observability"
	"github.com/couchcryptid/shooting-dashboard/internal/pipeline"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Builder produces a fresh dashboard.
type Builder interface {
	Build(ctx context.Context) (pipeline.Dashboard, error)
}

// Page holds the static text of the dashboard page.
type Page struct {
	Title   string
	Authors string
}

// Server exposes the dashboard, health, readiness, and metrics HTTP endpoints.
type Server struct {
	httpServer *http.Server
	builder    Builder
	renderer   *render.Renderer
	page       Page
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewServer creates an HTTP server with the dashboard routes plus /healthz,
// /readyz, and /metrics.
func NewServer(addr string, b Builder, ready sharedobs.ReadinessChecker, page Page, metrics *observability.Metrics, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		builder:  b,
		renderer: render.NewRenderer(),
		page:     page,
		metrics:  metrics,
		logger:   logger,
	}

	mux.HandleFunc("GET /{$}", s.handleDashboard)
	mux.HandleFunc("GET /api/charts", s.handleChartList)
	mux.HandleFunc("GET /api/charts/{id}", s.handleChart)
	mux.HandleFunc("GET /charts/{file}", s.handlePNG)
	mux.HandleFunc("GET /export.xlsx", s.handleExport)

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(ready))
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

// build runs one dashboard build for a request and answers 500 on failure.
func (s *Server) build(w http.ResponseWriter, r *http.Request) (pipeline.Dashboard, bool) {
	d, err := s.builder.Build(r.Context())
	if err != nil {
		s.logger.Error("dashboard build failed", "error", err, "path", r.URL.Path)
		writeError(w, http.StatusInternalServerError, err.Error())
		return pipeline.Dashboard{}, false
	}
	return d, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
