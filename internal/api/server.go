package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rafaelvsj/docextract/internal/config"
	"github.com/rafaelvsj/docextract/internal/extractor"
	"github.com/rafaelvsj/docextract/internal/observability/metrics"
	"github.com/rafaelvsj/docextract/internal/pipeline"
)

// Server is the HTTP boundary of the extraction service.
type Server struct {
	router   chi.Router
	pipeline *pipeline.Pipeline
	registry *extractor.Registry
	metrics  *metrics.ServerMetrics
	log      *slog.Logger
	cfg      config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(pipe *pipeline.Pipeline, reg *extractor.Registry, m *metrics.ServerMetrics, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		pipeline: pipe,
		registry: reg,
		metrics:  m,
		log:      log,
		cfg:      cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))
	r.Use(s.metrics.Middleware)

	r.Get("/health", s.handleHealth)
	r.Get("/formats", s.handleFormats)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	r.Post("/extract", s.handleExtract)

	s.router = r
}
