package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plantmetrics/plantpulse/internal/store/memory"
	"github.com/plantmetrics/plantpulse/internal/testutil"
	"github.com/plantmetrics/plantpulse/pkg/types"
)

func TestEngine_Insights(t *testing.T) {
	e, _ := newTestEngine(t)

	s, err := e.Insights(context.Background(), types.Scope{})
	require.NoError(t, err)

	assert.Greater(t, s.AvgOEE, 0.0)
	assert.GreaterOrEqual(t, s.AvgScrapRate, 0.0)
	assert.Greater(t, s.TotalEnergyKWh, 0.0)
	assert.InDelta(t, s.TotalEnergyKWh*0.5, s.CarbonKgCO2, 1e-9, "default carbon factor")

	assert.GreaterOrEqual(t, s.Sustainability, 0.0)
	assert.LessOrEqual(t, s.Sustainability, 100.0)
	assert.GreaterOrEqual(t, s.SmartFactoryIndex, 0.0)
	assert.LessOrEqual(t, s.SmartFactoryIndex, 100.0)

	assert.GreaterOrEqual(t, s.TwinHealth.Score, 0.0)
	assert.LessOrEqual(t, s.TwinHealth.Score, 100.0)
	assert.NotEmpty(t, s.TwinHealth.Level)

	assert.Greater(t, s.Lean.TaktTime, 0.0)
	assert.InDelta(t, 1.0, s.Lean.ValueAddedRatio+s.Lean.WasteRatio, 1e-9)

	// No trained artifact: predictive maintenance falls back to neutral.
	assert.Equal(t, fallbackPMScore, s.PMScore)

	require.NotEmpty(t, s.Energy)
	assert.Len(t, s.Energy, 14)
	for _, d := range s.Energy {
		assert.Greater(t, d.KWh, 0.0)
		assert.Greater(t, d.KWhPerGood, 0.0)
	}
}

func TestEngine_Insights_PMScoreFromArtifact(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()

	_, err := e.Train(ctx, types.Scope{})
	require.NoError(t, err)

	s, err := e.Insights(ctx, types.Scope{})
	require.NoError(t, err)
	assert.NotEqual(t, fallbackPMScore, s.PMScore)
	assert.Greater(t, s.PMScore, 0.5, "trained model should beat chance on fixture data")
}

func TestEngine_Insights_CustomCarbonFactor(t *testing.T) {
	st := memory.NewWith(testutil.PlantSnapshot(testutil.DefaultFixtureOpts()))
	cfg := &types.ProjectConfig{
		Provider: "memory",
		Insights: &types.InsightsConfig{CarbonFactor: 0.2},
	}
	e := New(st, nil, nil, cfg, nil)

	s, err := e.Insights(context.Background(), types.Scope{})
	require.NoError(t, err)
	assert.InDelta(t, s.TotalEnergyKWh*0.2, s.CarbonKgCO2, 1e-9)
}

func TestEngine_Insights_AnomalyOnOutlierMachine(t *testing.T) {
	opts := testutil.DefaultFixtureOpts()
	opts.Machines = 8 // enough peers for a z-score past the 2.0 cutoff
	snap := testutil.PlantSnapshot(opts)

	// One machine draws an order of magnitude more energy.
	for d := 0; d < opts.Days; d++ {
		snap.Energy = append(snap.Energy, types.EnergyRecord{
			TS:          opts.StartDate.AddDate(0, 0, d).Add(8 * time.Hour),
			MachineID:   "M4",
			KWhInterval: 5000,
			KW:          600,
		})
	}
	st := memory.NewWith(snap)
	e := New(st, nil, nil, &types.ProjectConfig{Provider: "memory"}, nil)

	s, err := e.Insights(context.Background(), types.Scope{})
	require.NoError(t, err)
	require.NotEmpty(t, s.EnergyAnomalies)
	assert.Equal(t, "M4", s.EnergyAnomalies[0].MachineID)
	assert.Greater(t, s.EnergyAnomalies[0].ZScore, 0.0)
}

func TestEngine_Insights_EmptyScope(t *testing.T) {
	st := memory.New()
	e := New(st, nil, nil, &types.ProjectConfig{Provider: "memory"}, nil)

	s, err := e.Insights(context.Background(), types.Scope{})
	require.NoError(t, err)
	assert.Equal(t, 0.0, s.AvgOEE)
	assert.Equal(t, 0.5, s.EnergyEfficiency, "neutral fallback with no energy data")
	assert.Empty(t, s.Energy)
}
