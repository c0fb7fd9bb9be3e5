package handlers

import "net/http"

// OEE returns daily per-machine OEE rows for the query scope.
func (h *Handlers) OEE(w http.ResponseWriter, r *http.Request) {
	scope, err := scopeFromQuery(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid scope", err)
		return
	}
	rows, err := h.engine.OEE(r.Context(), scope)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "computing OEE", err)
		return
	}
	h.writeJSON(w, rows)
}

// Pareto returns downtime reasons ranked by lost time for the query scope.
func (h *Handlers) Pareto(w http.ResponseWriter, r *http.Request) {
	scope, err := scopeFromQuery(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid scope", err)
		return
	}
	rows, err := h.engine.Pareto(r.Context(), scope)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "computing downtime pareto", err)
		return
	}
	h.writeJSON(w, rows)
}
