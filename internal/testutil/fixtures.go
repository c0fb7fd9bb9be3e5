// Package testutil provides deterministic plant fixtures shared across
// package tests.
package testutil

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/plantmetrics/plantpulse/internal/store"
	"github.com/plantmetrics/plantpulse/pkg/types"
)

// FixtureOpts shapes the generated plant snapshot.
type FixtureOpts struct {
	Machines  int
	Days      int
	StartDate time.Time
	Seed      int64
}

// DefaultFixtureOpts is a small two-line plant over two weeks.
func DefaultFixtureOpts() FixtureOpts {
	return FixtureOpts{
		Machines:  4,
		Days:      14,
		StartDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		Seed:      7,
	}
}

// PlantSnapshot generates a deterministic raw-data snapshot. Odd-numbered
// machines run clean; even-numbered machines degrade over time and suffer a
// BREAKDOWN on the final third of the window, so feature and label tests see
// both classes.
func PlantSnapshot(opts FixtureOpts) store.Snapshot {
	rng := rand.New(rand.NewSource(opts.Seed))
	var snap store.Snapshot

	for m := 0; m < opts.Machines; m++ {
		line := "L1"
		if m >= opts.Machines/2 {
			line = "L2"
		}
		snap.Machines = append(snap.Machines, types.Machine{
			MachineID:       fmt.Sprintf("M%d", m+1),
			Line:            line,
			IdealCycleTimeS: 10,
			RatedPowerKW:    30,
		})
	}

	breakdownFrom := opts.Days * 2 / 3
	for d := 0; d < opts.Days; d++ {
		day := opts.StartDate.AddDate(0, 0, d)
		for m, machine := range snap.Machines {
			degrading := m%2 == 1
			for h := 6; h < 22; h += 2 {
				ts := day.Add(time.Duration(h) * time.Hour)
				scrap := rng.Intn(3)
				cycle := 10 + rng.Float64()
				if degrading && d >= breakdownFrom {
					scrap += 4
					cycle += 3
				}
				snap.Production = append(snap.Production, types.ProductionRecord{
					TS:              ts,
					MachineID:       machine.MachineID,
					GoodCount:       40 - scrap,
					ScrapCount:      scrap,
					CycleTimeS:      cycle,
					IdealCycleTimeS: machine.IdealCycleTimeS,
				})
				snap.Energy = append(snap.Energy, types.EnergyRecord{
					TS:          ts,
					MachineID:   machine.MachineID,
					KWhInterval: 40 + rng.Float64()*5,
					KW:          20 + rng.Float64()*5,
				})
			}

			runS := 6.5 * 3600.0
			downS := 0.5 * 3600.0
			reason := "JAM"
			if degrading && d >= breakdownFrom {
				runS = 4 * 3600.0
				downS = 3 * 3600.0
				reason = types.ReasonBreakdown
			}
			snap.Events = append(snap.Events,
				types.EventRecord{
					TS:        day.Add(6 * time.Hour),
					MachineID: machine.MachineID,
					State:     types.StateRun,
					DurationS: runS,
				},
				types.EventRecord{
					TS:         day.Add(13 * time.Hour),
					MachineID:  machine.MachineID,
					State:      types.StateDown,
					DurationS:  downS,
					ReasonCode: reason,
				},
				types.EventRecord{
					TS:        day.Add(17 * time.Hour),
					MachineID: machine.MachineID,
					State:     types.StateIdle,
					DurationS: 1800,
				},
			)
		}
	}

	end := opts.StartDate.AddDate(0, 0, opts.Days)
	for i := 0; i < 3; i++ {
		orderID := fmt.Sprintf("ORD-%03d", i+1)
		snap.Orders = append(snap.Orders, types.Order{
			OrderID:    orderID,
			SKU:        fmt.Sprintf("SKU-%d", i+1),
			PlannedQty: 500 * (i + 1),
			StartTS:    opts.StartDate,
			DueTS:      end.AddDate(0, 0, i-1),
			Priority:   i + 1,
		})
		for step := 1; step <= 2; step++ {
			st := types.OrderStep{
				OrderID:        orderID,
				StepNo:         step,
				MachineID:      fmt.Sprintf("M%d", (i+step)%opts.Machines+1),
				PlannedStartTS: opts.StartDate.AddDate(0, 0, step-1),
				PlannedEndTS:   opts.StartDate.AddDate(0, 0, step+1),
				Status:         types.StepNotStarted,
			}
			if i == 0 {
				st.Status = types.StepCompleted
				actualStart := st.PlannedStartTS
				actualEnd := st.PlannedEndTS
				st.ActualStartTS = &actualStart
				st.ActualEndTS = &actualEnd
			}
			snap.OrderSteps = append(snap.OrderSteps, st)
		}
	}

	return snap
}
