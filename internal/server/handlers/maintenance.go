package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/plantmetrics/plantpulse/internal/model"
)

// Features returns the daily maintenance feature table for the query scope.
func (h *Handlers) Features(w http.ResponseWriter, r *http.Request) {
	scope, err := scopeFromQuery(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid scope", err)
		return
	}
	rows, err := h.engine.Features(r.Context(), scope)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "building features", err)
		return
	}
	h.writeJSON(w, rows)
}

// Train trains the configured maintenance model on the query scope and
// returns the training result.
func (h *Handlers) Train(w http.ResponseWriter, r *http.Request) {
	scope, err := scopeFromQuery(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid scope", err)
		return
	}
	result, err := h.engine.Train(r.Context(), scope)
	if err != nil {
		if errors.Is(err, model.ErrNotConfigured) {
			h.writeError(w, http.StatusConflict, "model training is not enabled", err)
			return
		}
		h.writeError(w, http.StatusInternalServerError, "training model", err)
		return
	}
	h.writeJSON(w, result)
}

// Score scores the latest feature row of every machine in scope and returns
// the persisted risk scores.
func (h *Handlers) Score(w http.ResponseWriter, r *http.Request) {
	scope, err := scopeFromQuery(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid scope", err)
		return
	}
	scores, err := h.engine.ScoreRisk(r.Context(), scope, time.Now())
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "scoring machines", err)
		return
	}
	h.writeJSON(w, scores)
}

// RiskScores returns stored risk scores. With ?atRisk=true only machines
// over the threshold are returned.
func (h *Handlers) RiskScores(w http.ResponseWriter, r *http.Request) {
	scope, err := scopeFromQuery(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid scope", err)
		return
	}
	if r.URL.Query().Get("atRisk") == "true" {
		scores, err := h.engine.AtRiskMachines(r.Context(), scope)
		if err != nil {
			h.writeError(w, http.StatusInternalServerError, "loading risk scores", err)
			return
		}
		h.writeJSON(w, scores)
		return
	}
	scores, err := h.store.RiskScores(r.Context(), scope)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "loading risk scores", err)
		return
	}
	h.writeJSON(w, scores)
}
