// Package handlers implements HTTP request handlers for the plantpulse API.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/plantmetrics/plantpulse/internal/engine"
	"github.com/plantmetrics/plantpulse/internal/store"
	"github.com/plantmetrics/plantpulse/pkg/types"
)

// Handlers contains all HTTP handler dependencies.
type Handlers struct {
	engine *engine.Engine
	store  store.Store
	logger *slog.Logger
}

// New creates a new Handlers instance.
func New(eng *engine.Engine, st store.Store) *Handlers {
	return &Handlers{
		engine: eng,
		store:  st,
		logger: slog.Default(),
	}
}

// SetLogger overrides the default logger.
func (h *Handlers) SetLogger(l *slog.Logger) {
	if l != nil {
		h.logger = l
	}
}

// writeError logs the internal error and returns a sanitized JSON error to the client.
func (h *Handlers) writeError(w http.ResponseWriter, status int, msg string, err error) {
	if err != nil {
		h.logger.Error(msg, "error", err, "status", status)
	}
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func (h *Handlers) writeJSON(w http.ResponseWriter, v interface{}) {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("encoding response", "error", err)
	}
}

// scopeFromQuery reads the shared filter query parameters.
func scopeFromQuery(r *http.Request) (types.Scope, error) {
	q := r.URL.Query()
	scope := types.Scope{
		Line:      q.Get("line"),
		MachineID: q.Get("machine"),
		DateFrom:  q.Get("from"),
		DateTo:    q.Get("to"),
		Shift:     q.Get("shift"),
	}
	for _, d := range []string{scope.DateFrom, scope.DateTo} {
		if d == "" {
			continue
		}
		if _, err := types.AddDays(d, 0); err != nil {
			return types.Scope{}, err
		}
	}
	switch scope.Shift {
	case "", types.ShiftMorning, types.ShiftEvening, types.ShiftNight:
	default:
		return types.Scope{}, errUnknownShift
	}
	return scope, nil
}

var errUnknownShift = errors.New("unknown shift")
