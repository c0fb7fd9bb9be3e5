package monitor

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/plantmetrics/plantpulse/internal/alert"
	"github.com/plantmetrics/plantpulse/internal/engine"
	"github.com/plantmetrics/plantpulse/internal/model"
	"github.com/plantmetrics/plantpulse/internal/store/memory"
	"github.com/plantmetrics/plantpulse/internal/testutil"
	"github.com/plantmetrics/plantpulse/pkg/types"
)

func newTestMonitor(t *testing.T, alertPath string) (*Monitor, *memory.Store) {
	t.Helper()

	opts := testutil.DefaultFixtureOpts()
	opts.Machines = 8
	snap := testutil.PlantSnapshot(opts)
	// One machine draws far more energy than its peers.
	for d := 0; d < opts.Days; d++ {
		snap.Energy = append(snap.Energy, types.EnergyRecord{
			TS:          opts.StartDate.AddDate(0, 0, d).Add(8 * time.Hour),
			MachineID:   "M4",
			KWhInterval: 5000,
			KW:          600,
		})
	}
	st := memory.NewWith(snap)

	cfg := &types.ProjectConfig{
		Provider: "memory",
		Model: &types.ModelConfig{
			Enabled: true,
			Type:    types.ModelLogReg,
			Path:    filepath.Join(t.TempDir(), "model.json"),
		},
	}
	dispatcher, err := alert.NewDispatcher([]types.AlertConfig{
		{Type: types.AlertFile, Path: alertPath},
	}, nil)
	require.NoError(t, err)

	eng := engine.New(st, model.NewTrainer(), dispatcher, cfg, nil)
	m := New(eng, types.Scope{}, nil, types.MonitorConfig{Enabled: true, Interval: "10ms"})
	return m, st
}

func readAlerts(t *testing.T, path string) []types.Alert {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var alerts []types.Alert
	for _, line := range splitLines(data) {
		var a types.Alert
		require.NoError(t, json.Unmarshal(line, &a))
		alerts = append(alerts, a)
	}
	return alerts
}

func splitLines(data []byte) [][]byte {
	var lines [][]byte
	start := 0
	for i, b := range data {
		if b == '\n' {
			if i > start {
				lines = append(lines, data[start:i])
			}
			start = i + 1
		}
	}
	return lines
}

func TestMonitor_PollDispatchesAnomalyAlerts(t *testing.T) {
	alertPath := filepath.Join(t.TempDir(), "alerts.jsonl")
	m, _ := newTestMonitor(t, alertPath)

	m.poll(context.Background())

	alerts := readAlerts(t, alertPath)
	require.NotEmpty(t, alerts)

	found := false
	for _, a := range alerts {
		if a.MachineID == "M4" && a.Metric == "energy_kwh" {
			found = true
			assert.Equal(t, types.AlertLevelWarning, a.Level)
		}
	}
	assert.True(t, found, "expected an energy anomaly alert for M4")
}

func TestMonitor_PollScoresWhenModelTrained(t *testing.T) {
	alertPath := filepath.Join(t.TempDir(), "alerts.jsonl")
	m, st := newTestMonitor(t, alertPath)

	_, err := m.engine.Train(context.Background(), types.Scope{})
	require.NoError(t, err)

	m.poll(context.Background())

	scores, err := st.RiskScores(context.Background(), types.Scope{})
	require.NoError(t, err)
	assert.Len(t, scores, 8)
}

func TestMonitor_PollToleratesMissingModel(t *testing.T) {
	alertPath := filepath.Join(t.TempDir(), "alerts.jsonl")
	m, st := newTestMonitor(t, alertPath)

	// No training run has happened; the pass should still detect anomalies.
	m.poll(context.Background())

	scores, err := st.RiskScores(context.Background(), types.Scope{})
	require.NoError(t, err)
	assert.Empty(t, scores)
	assert.NotEmpty(t, readAlerts(t, alertPath))
}

func TestMonitor_StartStop(t *testing.T) {
	defer goleak.VerifyNone(t)

	alertPath := filepath.Join(t.TempDir(), "alerts.jsonl")
	m, _ := newTestMonitor(t, alertPath)

	m.Start(context.Background())
	time.Sleep(50 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	m.Stop(ctx)

	assert.NotEmpty(t, readAlerts(t, alertPath))
}
