// Package demo simulates a plausible plant history for seeding new projects.
package demo

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/plantmetrics/plantpulse/internal/store"
	"github.com/plantmetrics/plantpulse/pkg/types"
)

// breakdown probability per machine-hour
const baseBreakProb = 0.015

var downReasons = []string{"SETUP", "JAM", "MATERIAL", "QUALITY_CHECK"}

var skus = []string{"SKU-IPA-12OZ", "SKU-LAGER-16OZ", "SKU-NA-12OZ", "SKU-SELTZER-12OZ"}

// Generate simulates days of hourly plant history for two three-machine
// lines, ending at now truncated to the hour.
func Generate(days int, seed int64, now time.Time) store.Snapshot {
	rng := rand.New(rand.NewSource(seed))
	end := now.Truncate(time.Hour)
	start := end.AddDate(0, 0, -days)

	var snap store.Snapshot
	for _, line := range []string{"LineA", "LineB"} {
		for i := 1; i <= 3; i++ {
			snap.Machines = append(snap.Machines, types.Machine{
				MachineID:       fmt.Sprintf("%s-M%d", line, i),
				Line:            line,
				IdealCycleTimeS: 18 + rng.Float64()*27,
				RatedPowerKW:    4 + rng.Float64()*8,
			})
		}
	}

	for ts := start; ts.Before(end); ts = ts.Add(time.Hour) {
		for _, m := range snap.Machines {
			simulateHour(rng, ts, m, &snap)
		}
	}

	generateOrders(rng, days, start, end, snap.Machines, &snap)
	return snap
}

func simulateHour(rng *rand.Rand, ts time.Time, m types.Machine, snap *store.Snapshot) {
	shiftFactor := 0.55
	if h := ts.Hour(); h >= 7 && h <= 18 {
		shiftFactor = 1.0
	}
	runRatio := clamp(rng.NormFloat64()*0.08+0.78*shiftFactor, 0.15, 0.92)
	downRatio := clamp(rng.NormFloat64()*0.05+0.10, 0, 0.40)
	idleRatio := math.Max(0, 1-runRatio-downRatio)

	total := runRatio + downRatio + idleRatio
	runS := 3600 * runRatio / total
	downS := 3600 * downRatio / total
	idleS := 3600 * idleRatio / total

	reason := "NONE"
	if rng.Float64() < baseBreakProb {
		reason = types.ReasonBreakdown
		downS = clamp(rng.NormFloat64()*600+1800, 600, 3600)
		runS = math.Max(0, 3600-downS-idleS)
	} else if downS > 60 {
		reason = downReasons[rng.Intn(len(downReasons))]
	}

	if runS > 1 {
		snap.Events = append(snap.Events, types.EventRecord{
			TS: ts, MachineID: m.MachineID, State: types.StateRun, DurationS: runS, ReasonCode: "RUNNING",
		})
	}
	if downS > 1 {
		snap.Events = append(snap.Events, types.EventRecord{
			TS: ts, MachineID: m.MachineID, State: types.StateDown, DurationS: downS, ReasonCode: reason,
		})
	}
	if idleS > 1 {
		snap.Events = append(snap.Events, types.EventRecord{
			TS: ts, MachineID: m.MachineID, State: types.StateIdle, DurationS: idleS, ReasonCode: "IDLE",
		})
	}

	cycle := clamp(
		rng.NormFloat64()*2.5+m.IdealCycleTimeS*(0.95+rng.Float64()*0.30),
		m.IdealCycleTimeS*0.85, m.IdealCycleTimeS*1.7)
	qty := int(math.Max(0, runS/cycle*(0.92+rng.Float64()*0.13)))
	scrapP := clamp(rng.NormFloat64()*0.015+0.02, 0, 0.12)
	scrap := binomial(rng, qty, scrapP)

	snap.Production = append(snap.Production, types.ProductionRecord{
		TS:              ts,
		MachineID:       m.MachineID,
		GoodCount:       qty - scrap,
		ScrapCount:      scrap,
		CycleTimeS:      cycle,
		IdealCycleTimeS: m.IdealCycleTimeS,
	})

	load := 0.35 + 0.65*runS/3600
	kw := clamp(rng.NormFloat64()*0.35+m.RatedPowerKW*load, 0.2, m.RatedPowerKW*1.25)
	snap.Energy = append(snap.Energy, types.EnergyRecord{
		TS: ts, MachineID: m.MachineID, KWhInterval: kw, KW: kw,
	})
}

func generateOrders(rng *rand.Rand, days int, start, end time.Time, machines []types.Machine, snap *store.Snapshot) {
	byLine := make(map[string][]string)
	for _, m := range machines {
		byLine[m.Line] = append(byLine[m.Line], m.MachineID)
	}

	count := days / 2
	if count < 12 {
		count = 12
	}
	for j := 0; j < count; j++ {
		orderID := fmt.Sprintf("ORD-%d", 1000+j)
		orderStart := start.Add(time.Duration(rng.Intn(days*24-24)) * time.Hour)
		order := types.Order{
			OrderID:    orderID,
			SKU:        skus[rng.Intn(len(skus))],
			PlannedQty: 500 + rng.Intn(2000),
			StartTS:    orderStart,
			DueTS:      orderStart.Add(time.Duration(12+rng.Intn(60)) * time.Hour),
			Priority:   1 + rng.Intn(3),
		}
		snap.Orders = append(snap.Orders, order)

		line := "LineA"
		if rng.Intn(2) == 1 {
			line = "LineB"
		}
		route := append([]string(nil), byLine[line]...)
		rng.Shuffle(len(route), func(a, b int) { route[a], route[b] = route[b], route[a] })
		route = route[:2+rng.Intn(2)]

		planned := orderStart
		for stepNo, machineID := range route {
			durH := 4 + rng.Intn(12)
			plannedStart := planned
			plannedEnd := plannedStart.Add(time.Duration(durH) * time.Hour)
			planned = plannedEnd

			var delayH int
			if rng.Float64() < 0.35 {
				delayH = int(math.Max(0, rng.NormFloat64()*3+1.5))
			}
			actualStart := plannedStart.Add(time.Duration(delayH) * time.Hour)
			actualEnd := plannedEnd.Add(time.Duration(delayH) * time.Hour)

			step := types.OrderStep{
				OrderID:        orderID,
				StepNo:         stepNo + 1,
				MachineID:      machineID,
				PlannedStartTS: plannedStart,
				PlannedEndTS:   plannedEnd,
				ActualStartTS:  &actualStart,
				Status:         types.StepCompleted,
			}
			if actualEnd.After(end.Add(-4*time.Hour)) && rng.Float64() < 0.35 {
				step.Status = types.StepInProgress
			} else {
				step.ActualEndTS = &actualEnd
			}
			snap.OrderSteps = append(snap.OrderSteps, step)
		}
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}

func binomial(rng *rand.Rand, n int, p float64) int {
	var k int
	for i := 0; i < n; i++ {
		if rng.Float64() < p {
			k++
		}
	}
	return k
}
