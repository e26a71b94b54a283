// Package server exposes the parsing pipeline over HTTP.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/recruitflow/resume-parser/internal/common"
	"github.com/recruitflow/resume-parser/internal/export"
	"github.com/recruitflow/resume-parser/internal/store"
)

// Server wraps the HTTP server instance and its handlers.
type Server struct {
	httpServer *http.Server
	service    *Service
	results    *store.Store
	exporter   *export.Service
	logger     *slog.Logger
}

// NewServer builds and wires all routes.
func NewServer(cfg common.ServerConfig, service *Service, results *store.Store, exporter *export.Service, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		service:  service,
		results:  results,
		exporter: exporter,
		logger:   logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	// Parsing can sit behind a slow model call, so the window is generous.
	r.Use(middleware.Timeout(5 * time.Minute))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Get("/health", s.handleHealth)
	r.Route("/v1", func(v1 chi.Router) {
		v1.Post("/parse", s.handleParseURL)
		v1.Post("/parse-base64", s.handleParseBase64)
		v1.Post("/inbox/parse", s.handleParseInbox)
		v1.Get("/results", s.handleListResults)
		v1.Get("/results/{id}", s.handleGetResult)
		v1.Get("/export", s.handleExport)
	})

	s.httpServer = &http.Server{
		Addr:    cfg.Addr,
		Handler: r,
	}
	return s
}

// Handler exposes the routed mux, mainly for tests.
func (s *Server) Handler() http.Handler { return s.httpServer.Handler }

// Start runs the HTTP server until Shutdown.
func (s *Server) Start() error {
	s.logger.Info("http.listen", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("http.shutdown")
	return s.httpServer.Shutdown(ctx)
}
