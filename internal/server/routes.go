package server

import (
	"expvar"

	"github.com/go-chi/chi/v5"

	"github.com/plantmetrics/plantpulse/internal/server/handlers"
)

func (s *Server) registerRoutes(r chi.Router) {
	h := handlers.New(s.engine, s.store)
	h.SetLogger(s.logger)

	r.Route("/api", func(r chi.Router) {
		// Health and runtime counters
		r.Get("/health", h.Health)
		r.Method("GET", "/metrics", expvar.Handler())

		// Performance metrics
		r.Get("/oee", h.OEE)
		r.Get("/pareto", h.Pareto)

		// Maintenance features and model
		r.Get("/features", h.Features)
		r.Post("/train", h.Train)
		r.Post("/score", h.Score)
		r.Get("/risk", h.RiskScores)

		// Industry 4.0 insights
		r.Get("/insights", h.Insights)
		r.Get("/anomalies", h.Anomalies)

		// Order book
		r.Get("/orders", h.Orders)
	})
}
