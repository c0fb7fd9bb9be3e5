package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plantmetrics/plantpulse/internal/testutil"
	"github.com/plantmetrics/plantpulse/pkg/types"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "plant.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Stop(context.Background()) })
	require.NoError(t, s.Seed(context.Background(), testutil.PlantSnapshot(testutil.DefaultFixtureOpts())))
	return s
}

func TestStore_MigrateAndSeed(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Ping(ctx))

	machines, err := s.Machines(ctx, types.Scope{})
	require.NoError(t, err)
	assert.Len(t, machines, 4)
}

func TestStore_ProductionScoped(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	all, err := s.Production(ctx, types.Scope{})
	require.NoError(t, err)
	require.NotEmpty(t, all)

	scoped, err := s.Production(ctx, types.Scope{MachineID: "M1", DateFrom: "2026-03-02", DateTo: "2026-03-02"})
	require.NoError(t, err)
	require.NotEmpty(t, scoped)
	assert.Less(t, len(scoped), len(all))
	for _, p := range scoped {
		assert.Equal(t, "M1", p.MachineID)
		assert.Equal(t, "2026-03-02", types.DateOf(p.TS))
	}
}

func TestStore_SeedIsIdempotentReplace(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	before, err := s.Events(ctx, types.Scope{})
	require.NoError(t, err)

	require.NoError(t, s.Seed(ctx, testutil.PlantSnapshot(testutil.DefaultFixtureOpts())))
	after, err := s.Events(ctx, types.Scope{})
	require.NoError(t, err)
	assert.Len(t, after, len(before))
}

func TestStore_RiskScoreSurvivesReseed(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	score := types.RiskScore{Date: "2026-03-10", MachineID: "M1", Probability: 0.7, AtRisk: true, ModelID: "test"}
	require.NoError(t, s.SaveRiskScores(ctx, []types.RiskScore{score}))

	require.NoError(t, s.Seed(ctx, testutil.PlantSnapshot(testutil.DefaultFixtureOpts())))

	scores, err := s.RiskScores(ctx, types.Scope{})
	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.Equal(t, "test", scores[0].ModelID)
}

func TestStore_RiskScoreUpsert(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveRiskScores(ctx, []types.RiskScore{
		{Date: "2026-03-10", MachineID: "M1", Probability: 0.2},
	}))
	require.NoError(t, s.SaveRiskScores(ctx, []types.RiskScore{
		{Date: "2026-03-10", MachineID: "M1", Probability: 0.8, AtRisk: true},
	}))

	scores, err := s.RiskScores(ctx, types.Scope{MachineID: "M1"})
	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.Equal(t, 0.8, scores[0].Probability)
}

func TestStore_OrderStepsOrdering(t *testing.T) {
	s := newTestStore(t)

	steps, err := s.OrderSteps(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, steps)
	for i := 1; i < len(steps); i++ {
		if steps[i].OrderID == steps[i-1].OrderID {
			assert.Greater(t, steps[i].StepNo, steps[i-1].StepNo)
		}
	}
}
