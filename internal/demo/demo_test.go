package demo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plantmetrics/plantpulse/pkg/types"
)

func TestGenerate_Shape(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 30, 0, 0, time.UTC)
	snap := Generate(7, 42, now)

	assert.Len(t, snap.Machines, 6)
	// one production and one energy row per machine-hour
	assert.Len(t, snap.Production, 6*7*24)
	assert.Len(t, snap.Energy, 6*7*24)
	assert.NotEmpty(t, snap.Events)
	assert.Len(t, snap.Orders, 12)
	assert.NotEmpty(t, snap.OrderSteps)
}

func TestGenerate_Deterministic(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	a := Generate(3, 42, now)
	b := Generate(3, 42, now)
	assert.Equal(t, a.Production, b.Production)
	assert.Equal(t, a.Orders, b.Orders)
}

func TestGenerate_ContainsBreakdowns(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	snap := Generate(30, 42, now)

	var breakdowns int
	for _, e := range snap.Events {
		require.NotZero(t, e.DurationS)
		if e.State == types.StateDown && e.ReasonCode == types.ReasonBreakdown {
			breakdowns++
		}
	}
	// 6 machines x 720 hours at ~1.5% per hour
	assert.Greater(t, breakdowns, 20)
}

func TestGenerate_WindowCoverage(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	snap := Generate(2, 7, now)

	end := now.Truncate(time.Hour)
	start := end.AddDate(0, 0, -2)
	for _, e := range snap.Events {
		assert.False(t, e.TS.Before(start))
		assert.True(t, e.TS.Before(end))
	}
}
