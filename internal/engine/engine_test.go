package engine

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plantmetrics/plantpulse/internal/model"
	"github.com/plantmetrics/plantpulse/internal/store/memory"
	"github.com/plantmetrics/plantpulse/internal/testutil"
	"github.com/plantmetrics/plantpulse/pkg/types"
)

func newTestEngine(t *testing.T) (*Engine, *memory.Store) {
	t.Helper()
	st := memory.NewWith(testutil.PlantSnapshot(testutil.DefaultFixtureOpts()))
	cfg := &types.ProjectConfig{
		Provider: "memory",
		Model: &types.ModelConfig{
			Enabled: true,
			Type:    types.ModelLogReg,
			Path:    filepath.Join(t.TempDir(), "model.json"),
		},
	}
	return New(st, model.NewTrainer(), nil, cfg, nil), st
}

func TestEngine_OEE(t *testing.T) {
	e, _ := newTestEngine(t)

	rows, err := e.OEE(context.Background(), types.Scope{})
	require.NoError(t, err)
	require.NotEmpty(t, rows)

	// 4 machines x 14 days
	assert.Len(t, rows, 56)
	for _, r := range rows {
		assert.GreaterOrEqual(t, r.OEE, 0.0)
		assert.LessOrEqual(t, r.OEE, 1.2)
	}
}

func TestEngine_OEE_ScopedByMachine(t *testing.T) {
	e, _ := newTestEngine(t)

	rows, err := e.OEE(context.Background(), types.Scope{MachineID: "M2"})
	require.NoError(t, err)
	require.NotEmpty(t, rows)
	for _, r := range rows {
		assert.Equal(t, "M2", r.MachineID)
	}
}

func TestEngine_Pareto(t *testing.T) {
	e, _ := newTestEngine(t)

	rows, err := e.Pareto(context.Background(), types.Scope{})
	require.NoError(t, err)
	require.NotEmpty(t, rows)

	// Fixture downtime is dominated by JAM with BREAKDOWN on degrading
	// machines late in the window.
	reasons := make(map[string]bool)
	for _, r := range rows {
		reasons[r.ReasonCode] = true
	}
	assert.True(t, reasons["JAM"])
	assert.True(t, reasons[types.ReasonBreakdown])
	assert.InDelta(t, 1.0, rows[len(rows)-1].CumPct, 1e-9)
}

func TestEngine_Features(t *testing.T) {
	e, _ := newTestEngine(t)

	rows, err := e.Features(context.Background(), types.Scope{})
	require.NoError(t, err)
	assert.Len(t, rows, 56)
}

func TestEngine_TrainThenScore(t *testing.T) {
	e, st := newTestEngine(t)
	ctx := context.Background()

	result, err := e.Train(ctx, types.Scope{})
	require.NoError(t, err)
	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, types.ModelLogReg, result.ModelType)
	assert.Greater(t, result.TrainRows, result.TestRows)

	now := time.Date(2026, 3, 15, 7, 0, 0, 0, time.UTC)
	scores, err := e.ScoreRisk(ctx, types.Scope{}, now)
	require.NoError(t, err)
	require.Len(t, scores, 4, "one score per machine")
	for _, sc := range scores {
		assert.Equal(t, result.RunID, sc.ModelID)
		assert.GreaterOrEqual(t, sc.Probability, 0.0)
		assert.LessOrEqual(t, sc.Probability, 1.0)
	}

	persisted, err := st.RiskScores(ctx, types.Scope{})
	require.NoError(t, err)
	assert.Len(t, persisted, 4)
}

func TestEngine_ScoreRisk_NoModel(t *testing.T) {
	e, _ := newTestEngine(t)

	_, err := e.ScoreRisk(context.Background(), types.Scope{}, time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading model")
}

func TestEngine_Train_Disabled(t *testing.T) {
	st := memory.NewWith(testutil.PlantSnapshot(testutil.DefaultFixtureOpts()))
	e := New(st, nil, nil, &types.ProjectConfig{Provider: "memory"}, nil)

	_, err := e.Train(context.Background(), types.Scope{})
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrNotConfigured)
}

func TestEngine_AtRiskMachines(t *testing.T) {
	e, st := newTestEngine(t)
	ctx := context.Background()

	require.NoError(t, st.SaveRiskScores(ctx, []types.RiskScore{
		{Date: "2026-03-14", MachineID: "M1", Probability: 0.2},
		{Date: "2026-03-14", MachineID: "M2", Probability: 0.9, AtRisk: true},
	}))

	atRisk, err := e.AtRiskMachines(ctx, types.Scope{})
	require.NoError(t, err)
	require.Len(t, atRisk, 1)
	assert.Equal(t, "M2", atRisk[0].MachineID)
}

func TestEngine_OrderSchedule_FlagsRiskyRouting(t *testing.T) {
	e, st := newTestEngine(t)
	ctx := context.Background()
	now := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)

	rows, err := e.OrderSchedule(ctx, now)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	for _, r := range rows {
		assert.Empty(t, r.AtRiskMachines, "no scores persisted yet")
	}

	// A machine on ORD-002's routing goes at risk.
	steps, err := st.OrderSteps(ctx)
	require.NoError(t, err)
	var target string
	for _, s := range steps {
		if s.OrderID == "ORD-002" {
			target = s.MachineID
			break
		}
	}
	require.NotEmpty(t, target)
	require.NoError(t, st.SaveRiskScores(ctx, []types.RiskScore{
		{Date: "2026-03-14", MachineID: target, Probability: 0.9, AtRisk: true},
	}))

	rows, err = e.OrderSchedule(ctx, now)
	require.NoError(t, err)
	var flagged bool
	for _, r := range rows {
		if r.OrderID == "ORD-002" {
			flagged = len(r.AtRiskMachines) > 0
		}
	}
	assert.True(t, flagged)
}

func TestEngine_OrderSchedule_CompletedStepsNotFlagged(t *testing.T) {
	e, st := newTestEngine(t)
	ctx := context.Background()

	// ORD-001's steps are all completed in the fixture; flag every machine.
	machines, err := st.Machines(ctx, types.Scope{})
	require.NoError(t, err)
	var scores []types.RiskScore
	for _, m := range machines {
		scores = append(scores, types.RiskScore{Date: "2026-03-14", MachineID: m.MachineID, Probability: 0.99, AtRisk: true})
	}
	require.NoError(t, st.SaveRiskScores(ctx, scores))

	rows, err := e.OrderSchedule(ctx, time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	for _, r := range rows {
		if r.OrderID == "ORD-001" {
			assert.Equal(t, types.OrderCompleted, r.Status)
			assert.Empty(t, r.AtRiskMachines)
		}
	}
}
