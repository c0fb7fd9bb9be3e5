package industry4

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plantmetrics/plantpulse/pkg/types"
)

func TestCarbonFootprint(t *testing.T) {
	assert.Equal(t, 500.0, CarbonFootprint(1000, 0.5))
	assert.Equal(t, 0.0, CarbonFootprint(0, 0.5))
}

func TestSustainabilityScore(t *testing.T) {
	// Perfect inputs max out the score.
	assert.Equal(t, 100.0, SustainabilityScore(1, 1, 0))
	// All-bad inputs floor at 0.
	assert.Equal(t, 0.0, SustainabilityScore(0, 0, 1))
	// Weighted blend: 0.4*0.8 + 0.3*0.5 + 0.3*0.9 = 0.74.
	assert.InDelta(t, 74.0, SustainabilityScore(0.8, 0.5, 0.1), 1e-9)
}

func TestDigitalTwinHealth_Levels(t *testing.T) {
	low := DigitalTwinHealth(0.9, 0.05, 0.02, 0.1)
	assert.Equal(t, types.RiskLow, low.Level)
	assert.GreaterOrEqual(t, low.Score, 80.0)

	medium := DigitalTwinHealth(0.5, 0.3, 0.1, 0.5)
	assert.Equal(t, types.RiskMedium, medium.Level)

	high := DigitalTwinHealth(0.2, 0.6, 0.4, 1.5)
	assert.Equal(t, types.RiskHigh, high.Level)
}

func TestDigitalTwinHealth_Contributions(t *testing.T) {
	h := DigitalTwinHealth(0.8, 0.1, 0.05, 0.2)

	assert.InDelta(t, 32.0, h.OEEContribution, 1e-9)
	assert.InDelta(t, 27.0, h.AvailabilityContribution, 1e-9)
	assert.InDelta(t, 19.0, h.QualityContribution, 1e-9)
	assert.InDelta(t, 8.0, h.StabilityContribution, 1e-9)
	assert.InDelta(t, 86.0, h.Score, 1e-9)
}

func TestDigitalTwinHealth_EnergyVarianceFloor(t *testing.T) {
	// Variance above 1 cannot push the stability term negative.
	h := DigitalTwinHealth(0.5, 0.2, 0.1, 3.0)
	assert.Equal(t, 0.0, h.StabilityContribution)
}

func TestLeanMetrics(t *testing.T) {
	production := []types.ProductionRecord{
		{TS: time.Now(), MachineID: "M1", GoodCount: 90, ScrapCount: 10, CycleTimeS: 100},
	}
	events := []types.EventRecord{
		{TS: time.Now(), MachineID: "M1", State: types.StateRun, DurationS: 7200},
		{TS: time.Now(), MachineID: "M1", State: types.StateDown, DurationS: 1800},
	}

	lean := LeanMetrics(production, events)
	assert.InDelta(t, 100.0, lean.TaktTime, 1e-9) // 9000s / 90 units
	assert.InDelta(t, 1.0, lean.CycleEfficiency, 1e-9)
	assert.InDelta(t, 0.8, lean.ValueAddedRatio, 1e-9)
	assert.InDelta(t, 0.2, lean.WasteRatio, 1e-9)
}

func TestLeanMetrics_NoUnits(t *testing.T) {
	events := []types.EventRecord{{State: types.StateRun, DurationS: 3600}}

	lean := LeanMetrics(nil, events)
	assert.Equal(t, 0.0, lean.TaktTime)
	assert.Equal(t, 0.0, lean.CycleEfficiency)
	assert.Equal(t, 1.0, lean.ValueAddedRatio)
}

func TestSmartFactoryIndex(t *testing.T) {
	assert.Equal(t, 100.0, SmartFactoryIndex(1, 1, 1, 1, 1))
	// 0.30*0.8 + 0.25*0.7 + 0.20*0.6 + 0.15*0.9 + 0.10*0.8 = 0.75
	assert.InDelta(t, 75.0, SmartFactoryIndex(0.8, 0.7, 0.6, 0.9, 0.8), 1e-9)
	assert.Equal(t, 0.0, SmartFactoryIndex(0, 0, 0, 0, 0))
}

func TestDetectAnomalies(t *testing.T) {
	// One clear outlier in an otherwise tight series.
	values := []float64{10, 10.2, 9.9, 10.1, 9.8, 10, 10.1, 9.9, 10, 25}

	out := DetectAnomalies(values, 2.0)
	require.Len(t, out, len(values))

	flagged := 0
	for i, a := range out {
		if a.IsAnomaly {
			flagged++
			assert.Equal(t, 25.0, values[i])
		}
	}
	assert.Equal(t, 1, flagged)
}

func TestDetectAnomalies_ZeroVariance(t *testing.T) {
	out := DetectAnomalies([]float64{5, 5, 5, 5}, 2.0)
	require.Len(t, out, 4)
	for _, a := range out {
		assert.Equal(t, 0.0, a.ZScore)
		assert.False(t, a.IsAnomaly)
	}
}

func TestDetectAnomalies_Empty(t *testing.T) {
	assert.Empty(t, DetectAnomalies(nil, 2.0))
}
