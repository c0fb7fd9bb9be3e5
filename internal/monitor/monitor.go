// Package monitor implements the background risk-monitoring loop.
package monitor

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"sync"
	"time"

	"github.com/plantmetrics/plantpulse/internal/engine"
	"github.com/plantmetrics/plantpulse/internal/metrics"
	"github.com/plantmetrics/plantpulse/pkg/types"
)

// defaultInterval is the poll interval when none is configured.
const defaultInterval = 5 * time.Minute

// Monitor periodically re-scores failure risk and checks for energy
// anomalies, dispatching alerts through the engine's alert sinks.
type Monitor struct {
	engine *engine.Engine
	scope  types.Scope
	logger *slog.Logger
	config types.MonitorConfig

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a new Monitor. The scope restricts which machines are watched.
func New(eng *engine.Engine, scope types.Scope, logger *slog.Logger, cfg types.MonitorConfig) *Monitor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Monitor{
		engine: eng,
		scope:  scope,
		logger: logger,
		config: cfg,
	}
}

// Start begins the monitor polling loop.
func (m *Monitor) Start(ctx context.Context) {
	ctx, m.cancel = context.WithCancel(ctx)

	interval, err := time.ParseDuration(m.config.Interval)
	if err != nil || interval <= 0 {
		interval = defaultInterval
	}

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		m.logger.Info("monitor started", "interval", interval)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		// Run immediately on start
		m.poll(ctx)

		for {
			select {
			case <-ctx.Done():
				m.logger.Info("monitor stopping")
				return
			case <-ticker.C:
				m.poll(ctx)
			}
		}
	}()
}

// Stop gracefully shuts down the monitor.
func (m *Monitor) Stop(ctx context.Context) {
	if m.cancel != nil {
		m.cancel()
	}

	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		m.logger.Info("monitor stopped")
	case <-ctx.Done():
		m.logger.Warn("monitor stop timed out")
	}
}

// poll runs one monitoring pass. A missing model artifact is expected before
// the first training run and skipped silently.
func (m *Monitor) poll(ctx context.Context) {
	if _, err := m.engine.ScoreRisk(ctx, m.scope, time.Now()); err != nil && !errors.Is(err, fs.ErrNotExist) {
		m.logger.Warn("risk scoring pass failed", "error", err)
	}
	if ctx.Err() != nil {
		return
	}

	sum, err := m.engine.Insights(ctx, m.scope)
	if err != nil {
		m.logger.Error("insights pass failed", "error", err)
		return
	}

	dispatcher := m.engine.Alerts()
	if dispatcher == nil {
		return
	}
	for _, a := range sum.EnergyAnomalies {
		dispatcher.Dispatch(ctx, types.Alert{
			Level:     types.AlertLevelWarning,
			MachineID: a.MachineID,
			Metric:    "energy_kwh",
			Message:   fmt.Sprintf("energy draw %.1f kWh deviates %.1f std from plant mean", a.KWh, a.ZScore),
			Timestamp: time.Now(),
		})
		metrics.AlertsDispatched.Add(1)
	}
}
