package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plantmetrics/plantpulse/internal/testutil"
	"github.com/plantmetrics/plantpulse/pkg/types"
)

func TestStore_ScopeByLine(t *testing.T) {
	s := NewWith(testutil.PlantSnapshot(testutil.DefaultFixtureOpts()))
	ctx := context.Background()

	machines, err := s.Machines(ctx, types.Scope{Line: "L1"})
	require.NoError(t, err)
	require.Len(t, machines, 2)

	prod, err := s.Production(ctx, types.Scope{Line: "L1"})
	require.NoError(t, err)
	for _, p := range prod {
		assert.Contains(t, []string{"M1", "M2"}, p.MachineID)
	}
}

func TestStore_ScopeByDateRange(t *testing.T) {
	s := NewWith(testutil.PlantSnapshot(testutil.DefaultFixtureOpts()))
	ctx := context.Background()

	scope := types.Scope{DateFrom: "2026-03-03", DateTo: "2026-03-04"}
	events, err := s.Events(ctx, scope)
	require.NoError(t, err)
	require.NotEmpty(t, events)
	for _, e := range events {
		d := types.DateOf(e.TS)
		assert.GreaterOrEqual(t, d, "2026-03-03")
		assert.LessOrEqual(t, d, "2026-03-04")
	}
}

func TestStore_ScopeByShift(t *testing.T) {
	s := NewWith(testutil.PlantSnapshot(testutil.DefaultFixtureOpts()))
	ctx := context.Background()

	energy, err := s.Energy(ctx, types.Scope{Shift: types.ShiftMorning})
	require.NoError(t, err)
	require.NotEmpty(t, energy)
	for _, e := range energy {
		assert.Equal(t, types.ShiftMorning, types.ShiftOf(e.TS))
	}
}

func TestStore_SeedReplacesTables(t *testing.T) {
	s := NewWith(testutil.PlantSnapshot(testutil.DefaultFixtureOpts()))
	ctx := context.Background()

	opts := testutil.DefaultFixtureOpts()
	opts.Machines = 2
	require.NoError(t, s.Seed(ctx, testutil.PlantSnapshot(opts)))

	machines, err := s.Machines(ctx, types.Scope{})
	require.NoError(t, err)
	assert.Len(t, machines, 2)
}

func TestStore_RiskScoreUpsert(t *testing.T) {
	s := New()
	ctx := context.Background()

	first := types.RiskScore{Date: "2026-03-10", MachineID: "M1", Probability: 0.4}
	require.NoError(t, s.SaveRiskScores(ctx, []types.RiskScore{first}))

	second := first
	second.Probability = 0.9
	second.AtRisk = true
	second.ScoredAt = time.Now()
	require.NoError(t, s.SaveRiskScores(ctx, []types.RiskScore{second}))

	scores, err := s.RiskScores(ctx, types.Scope{})
	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.Equal(t, 0.9, scores[0].Probability)
	assert.True(t, scores[0].AtRisk)
}

func TestStore_RiskScoresSorted(t *testing.T) {
	s := New()
	ctx := context.Background()
	require.NoError(t, s.SaveRiskScores(ctx, []types.RiskScore{
		{Date: "2026-03-11", MachineID: "M2"},
		{Date: "2026-03-10", MachineID: "M2"},
		{Date: "2026-03-10", MachineID: "M1"},
	}))

	scores, err := s.RiskScores(ctx, types.Scope{})
	require.NoError(t, err)
	require.Len(t, scores, 3)
	assert.Equal(t, "M1", scores[0].MachineID)
	assert.Equal(t, "2026-03-11", scores[2].Date)
}

func TestStore_OrdersRoundTrip(t *testing.T) {
	snap := testutil.PlantSnapshot(testutil.DefaultFixtureOpts())
	s := NewWith(snap)
	ctx := context.Background()

	orders, err := s.Orders(ctx)
	require.NoError(t, err)
	assert.Len(t, orders, len(snap.Orders))

	steps, err := s.OrderSteps(ctx)
	require.NoError(t, err)
	assert.Len(t, steps, len(snap.OrderSteps))
}
