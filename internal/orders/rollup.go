// Package orders rolls order-step records up into per-order status summaries
// for schedule-risk display.
package orders

import (
	"sort"
	"time"

	"github.com/plantmetrics/plantpulse/pkg/types"
)

// Rollup summarizes each order's status across its steps: COMPLETED when all
// steps completed, IN_PROGRESS when any step is in progress, else NOT_STARTED.
// An order past its due time that is not completed is flagged overdue.
func Rollup(orderList []types.Order, steps []types.OrderStep, now time.Time) []types.OrderRollup {
	if len(orderList) == 0 {
		return nil
	}

	byOrder := make(map[string][]types.OrderStep)
	for _, s := range steps {
		byOrder[s.OrderID] = append(byOrder[s.OrderID], s)
	}

	out := make([]types.OrderRollup, 0, len(orderList))
	for _, o := range orderList {
		r := types.OrderRollup{
			OrderID:    o.OrderID,
			SKU:        o.SKU,
			PlannedQty: o.PlannedQty,
			Priority:   o.Priority,
			DueTS:      o.DueTS,
		}

		r.Status = rollupStatus(byOrder[o.OrderID], &r)
		r.Overdue = r.Status != types.OrderCompleted && now.After(o.DueTS)
		out = append(out, r)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].DueTS.Equal(out[j].DueTS) {
			return out[i].OrderID < out[j].OrderID
		}
		return out[i].DueTS.Before(out[j].DueTS)
	})
	return out
}

func rollupStatus(steps []types.OrderStep, r *types.OrderRollup) types.OrderStatus {
	r.StepsTotal = len(steps)
	if len(steps) == 0 {
		return types.OrderNotStarted
	}

	inProgress := false
	for _, s := range steps {
		switch s.Status {
		case types.StepCompleted:
			r.StepsCompleted++
		case types.StepInProgress:
			inProgress = true
		}
	}

	switch {
	case r.StepsCompleted == len(steps):
		return types.OrderCompleted
	case inProgress:
		return types.OrderInProgress
	default:
		return types.OrderNotStarted
	}
}
