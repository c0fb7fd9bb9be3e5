// Package server implements the plantpulse HTTP API server.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/plantmetrics/plantpulse/internal/engine"
	"github.com/plantmetrics/plantpulse/internal/store"
	"github.com/plantmetrics/plantpulse/pkg/types"
)

// defaultMaxRequestBody caps request bodies when no limit is configured.
const defaultMaxRequestBody = 1 << 20

// defaultAddr is the listen address when none is configured.
const defaultAddr = ":8080"

// Server is the plantpulse HTTP API server.
type Server struct {
	engine *engine.Engine
	store  store.Store
	router chi.Router
	addr   string
	logger *slog.Logger
	srv    *http.Server
}

// New creates a new HTTP server.
func New(cfg *types.ServerConfig, eng *engine.Engine, st store.Store, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg == nil {
		cfg = &types.ServerConfig{}
	}
	addr := cfg.Addr
	if addr == "" {
		addr = defaultAddr
	}
	s := &Server{
		engine: eng,
		store:  st,
		addr:   addr,
		logger: logger,
	}

	maxBody := cfg.MaxRequestBody
	if maxBody <= 0 {
		maxBody = defaultMaxRequestBody
	}

	r := chi.NewRouter()
	r.Use(RequestIDMiddleware)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(APIKeyMiddleware(cfg.APIKey))
	r.Use(MaxBodyMiddleware(maxBody))
	r.Use(middleware.SetHeader("Content-Type", "application/json"))

	s.router = r
	s.registerRoutes(r)
	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.router }

// Start begins serving HTTP requests.
func (s *Server) Start() error {
	s.srv = &http.Server{
		Addr:         s.addr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	s.logger.Info("plantpulse server listening", "addr", s.addr)
	return s.srv.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.srv != nil {
		return s.srv.Shutdown(ctx)
	}
	return nil
}
