package orders

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plantmetrics/plantpulse/pkg/types"
)

var now = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func order(id string, due time.Time) types.Order {
	return types.Order{OrderID: id, SKU: "SKU-" + id, PlannedQty: 100, DueTS: due}
}

func step(orderID string, n int, status types.StepStatus) types.OrderStep {
	return types.OrderStep{OrderID: orderID, StepNo: n, MachineID: "M1", Status: status}
}

func TestRollup_Empty(t *testing.T) {
	assert.Empty(t, Rollup(nil, nil, now))
}

func TestRollup_Statuses(t *testing.T) {
	future := now.Add(24 * time.Hour)
	ordersIn := []types.Order{
		order("O1", future),
		order("O2", future),
		order("O3", future),
		order("O4", future),
	}
	steps := []types.OrderStep{
		step("O1", 1, types.StepCompleted),
		step("O1", 2, types.StepCompleted),
		step("O2", 1, types.StepCompleted),
		step("O2", 2, types.StepInProgress),
		step("O3", 1, types.StepNotStarted),
	}

	rollups := Rollup(ordersIn, steps, now)
	require.Len(t, rollups, 4)

	byID := map[string]types.OrderRollup{}
	for _, r := range rollups {
		byID[r.OrderID] = r
	}

	assert.Equal(t, types.OrderCompleted, byID["O1"].Status)
	assert.Equal(t, 2, byID["O1"].StepsCompleted)
	assert.Equal(t, types.OrderInProgress, byID["O2"].Status)
	assert.Equal(t, types.OrderNotStarted, byID["O3"].Status)
	// No steps at all behaves as not started.
	assert.Equal(t, types.OrderNotStarted, byID["O4"].Status)
	assert.Equal(t, 0, byID["O4"].StepsTotal)
}

func TestRollup_Overdue(t *testing.T) {
	past := now.Add(-time.Hour)
	ordersIn := []types.Order{order("LATE", past), order("DONE", past)}
	steps := []types.OrderStep{
		step("LATE", 1, types.StepInProgress),
		step("DONE", 1, types.StepCompleted),
	}

	rollups := Rollup(ordersIn, steps, now)
	require.Len(t, rollups, 2)

	byID := map[string]types.OrderRollup{}
	for _, r := range rollups {
		byID[r.OrderID] = r
	}
	assert.True(t, byID["LATE"].Overdue)
	// Completed orders are never overdue.
	assert.False(t, byID["DONE"].Overdue)
}

func TestRollup_SortedByDueDate(t *testing.T) {
	ordersIn := []types.Order{
		order("B", now.Add(48*time.Hour)),
		order("A", now.Add(24*time.Hour)),
	}

	rollups := Rollup(ordersIn, nil, now)
	require.Len(t, rollups, 2)
	assert.Equal(t, "A", rollups[0].OrderID)
	assert.Equal(t, "B", rollups[1].OrderID)
}
