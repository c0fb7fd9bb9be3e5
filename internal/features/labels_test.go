package features

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plantmetrics/plantpulse/pkg/types"
)

func TestBuildFailureLabels_Empty(t *testing.T) {
	assert.Empty(t, BuildFailureLabels(nil, 1))
}

func TestBuildFailureLabels_Horizon(t *testing.T) {
	events := []types.EventRecord{
		eventRec(2, "M1", types.StateRun, 3600, ""),
		eventRec(3, "M1", types.StateRun, 3600, ""),
		eventRec(4, "M1", types.StateDown, 1800, types.ReasonBreakdown),
		eventRec(5, "M1", types.StateRun, 3600, ""),
	}

	labels := BuildFailureLabels(events, 1)
	require.Len(t, labels, 4)

	byDate := map[string]int{}
	for _, l := range labels {
		byDate[l.Date] = l.Label
	}
	assert.Equal(t, 0, byDate["2026-03-02"]) // breakdown is 2 days out
	assert.Equal(t, 1, byDate["2026-03-03"]) // within [d, d+1]
	assert.Equal(t, 1, byDate["2026-03-04"]) // breakdown day itself
	assert.Equal(t, 0, byDate["2026-03-05"]) // after the breakdown
}

func TestBuildFailureLabels_MonotonicInHorizon(t *testing.T) {
	events := []types.EventRecord{
		eventRec(2, "M1", types.StateRun, 3600, ""),
		eventRec(3, "M1", types.StateRun, 3600, ""),
		eventRec(4, "M1", types.StateRun, 3600, ""),
		eventRec(5, "M1", types.StateDown, 1800, types.ReasonBreakdown),
	}

	prev := map[string]int{}
	for h := 0; h <= 4; h++ {
		labels := BuildFailureLabels(events, h)
		for _, l := range labels {
			// Growing the horizon can only add positive labels.
			assert.GreaterOrEqual(t, l.Label, prev[l.Date], "horizon %d date %s", h, l.Date)
			prev[l.Date] = l.Label
		}
	}
}

func TestBuildFailureLabels_PerMachine(t *testing.T) {
	events := []types.EventRecord{
		eventRec(2, "M1", types.StateDown, 1800, types.ReasonBreakdown),
		eventRec(2, "M2", types.StateRun, 3600, ""),
	}

	labels := BuildFailureLabels(events, 1)
	require.Len(t, labels, 2)
	assert.Equal(t, 1, labels[0].Label) // M1
	assert.Equal(t, 0, labels[1].Label) // M2 unaffected by M1's breakdown
}

func TestBuildFailureLabels_DownWithoutBreakdownReason(t *testing.T) {
	events := []types.EventRecord{
		eventRec(2, "M1", types.StateDown, 1800, "JAM"),
	}

	labels := BuildFailureLabels(events, 3)
	require.Len(t, labels, 1)
	assert.Equal(t, 0, labels[0].Label)
}
