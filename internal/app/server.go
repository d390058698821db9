package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/markdave123-py/docsum/internal/api/handlers"
	appMiddleware "github.com/markdave123-py/docsum/internal/api/middlewares"
	"github.com/markdave123-py/docsum/internal/config"
)

// Handlers groups the HTTP handlers mounted by NewRouter.
type Handlers struct {
	Documents *handlers.DocumentHandler
	Ask       *handlers.AskHandler
	Health    *handlers.HealthHandler
}

// Server wraps the HTTP server instance and its handlers.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer builds and wires all routes.
func NewServer(cfg *config.Config, logger *slog.Logger, h Handlers) *Server {
	httpSrv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           NewRouter(cfg, logger, h),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return &Server{httpServer: httpSrv, logger: logger}
}

func NewRouter(cfg *config.Config, logger *slog.Logger, h Handlers) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(appMiddleware.RequestLogger(logger))
	r.Use(appMiddleware.Metrics)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))

	r.Get("/", h.Health.Home)
	r.Get("/health/ready", h.Health.Ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(api chi.Router) {
		api.Use(middleware.Timeout(cfg.RequestTimeout))

		api.Post("/ask", h.Ask.Ask)
		api.Post("/summarize", h.Documents.Summarize)
		api.Get("/files", h.Documents.ListFiles)
		api.Delete("/files", h.Documents.DeleteAllFiles)
		api.Get("/file/{id}", h.Documents.GetFile)
		api.Delete("/file/{id}", h.Documents.DeleteFile)
	})

	return r
}

func (s *Server) Addr() string { return s.httpServer.Addr }

// Start runs the HTTP server and blocks until it stops. A graceful Shutdown
// makes Start return nil.
func (s *Server) Start() error {
	s.logger.Info("HTTP server listening", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}
