package handlers

import (
	"net/http"
	"time"

	"github.com/plantmetrics/plantpulse/internal/engine"
)

// Insights returns the Industry 4.0 composite summary for the query scope.
func (h *Handlers) Insights(w http.ResponseWriter, r *http.Request) {
	scope, err := scopeFromQuery(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid scope", err)
		return
	}
	summary, err := h.engine.Insights(r.Context(), scope)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "computing insights", err)
		return
	}
	h.writeJSON(w, summary)
}

// Anomalies returns only the energy-anomaly slice of the insights summary.
func (h *Handlers) Anomalies(w http.ResponseWriter, r *http.Request) {
	scope, err := scopeFromQuery(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid scope", err)
		return
	}
	summary, err := h.engine.Insights(r.Context(), scope)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "computing insights", err)
		return
	}
	if summary.EnergyAnomalies == nil {
		summary.EnergyAnomalies = []engine.EnergyAnomaly{}
	}
	h.writeJSON(w, summary.EnergyAnomalies)
}

// Orders returns the order schedule rollup with at-risk routing flags.
func (h *Handlers) Orders(w http.ResponseWriter, r *http.Request) {
	rows, err := h.engine.OrderSchedule(r.Context(), time.Now())
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "loading order schedule", err)
		return
	}
	h.writeJSON(w, rows)
}
