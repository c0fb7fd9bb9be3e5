// Package oee computes daily Overall Equipment Effectiveness figures and
// downtime Pareto rankings from raw production and event records.
package oee

import (
	"sort"

	"github.com/plantmetrics/plantpulse/internal/stats"
	"github.com/plantmetrics/plantpulse/pkg/types"
)

// factorCeiling absorbs noisy over-performance without letting a single
// factor distort the composite OEE. Observed output can outpace the
// ideal-cycle-time estimate, so performance legitimately exceeds 1.
const factorCeiling = 1.2

type dayKey struct {
	date      string
	machineID string
}

type prodAgg struct {
	good       int
	scrap      int
	total      int
	idealSum   float64
	idealN     int
	cycleSum   float64
	cycleN     int
}

type eventAgg struct {
	plannedS float64
	runS     float64
}

// ComputeOEE aggregates production and event records into one row per
// (date, machine). Either input being empty is a valid "no data" outcome and
// yields an empty result.
func ComputeOEE(production []types.ProductionRecord, events []types.EventRecord) []types.DailyOEE {
	if len(production) == 0 || len(events) == 0 {
		return nil
	}

	prod := make(map[dayKey]*prodAgg)
	for _, p := range production {
		k := dayKey{types.DateOf(p.TS), p.MachineID}
		a := prod[k]
		if a == nil {
			a = &prodAgg{}
			prod[k] = a
		}
		a.good += p.GoodCount
		a.scrap += p.ScrapCount
		a.total += p.TotalCount()
		a.idealSum += p.IdealCycleTimeS
		a.idealN++
		a.cycleSum += p.CycleTimeS
		a.cycleN++
	}

	ev := make(map[dayKey]*eventAgg)
	for _, e := range events {
		k := dayKey{types.DateOf(e.TS), e.MachineID}
		a := ev[k]
		if a == nil {
			a = &eventAgg{}
			ev[k] = a
		}
		a.plannedS += e.DurationS
		if e.State == types.StateRun {
			a.runS += e.DurationS
		}
	}

	out := make([]types.DailyOEE, 0, len(prod))
	for k, a := range prod {
		row := types.DailyOEE{
			Date:            k.date,
			MachineID:       k.machineID,
			TotalCount:      a.total,
			GoodCount:       a.good,
			ScrapCount:      a.scrap,
			IdealCycleTimeS: stats.Ratio(a.idealSum, float64(a.idealN)),
			AvgCycleTimeS:   stats.Ratio(a.cycleSum, float64(a.cycleN)),
		}
		if e, ok := ev[k]; ok {
			row.PlannedTimeS = e.plannedS
			row.RunTimeS = e.runS
		}

		row.Availability = stats.Clip(stats.Ratio(row.RunTimeS, row.PlannedTimeS), 0, factorCeiling)
		row.Performance = stats.Clip(stats.Ratio(row.IdealCycleTimeS*float64(row.TotalCount), row.RunTimeS), 0, factorCeiling)
		row.Quality = stats.Clip(stats.Ratio(float64(row.GoodCount), float64(row.TotalCount)), 0, factorCeiling)
		row.OEE = stats.Clip(row.Availability*row.Performance*row.Quality, 0, factorCeiling)

		out = append(out, row)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].MachineID < out[j].MachineID
	})
	return out
}

// DowntimePareto ranks downtime reasons by total DOWN duration, with each
// reason's share of total downtime and the running cumulative share.
func DowntimePareto(events []types.EventRecord) []types.ParetoRow {
	if len(events) == 0 {
		return nil
	}

	byReason := make(map[string]float64)
	for _, e := range events {
		if e.State != types.StateDown {
			continue
		}
		byReason[e.ReasonCode] += e.DurationS
	}
	if len(byReason) == 0 {
		return nil
	}

	out := make([]types.ParetoRow, 0, len(byReason))
	var total float64
	for reason, downtime := range byReason {
		out = append(out, types.ParetoRow{ReasonCode: reason, DowntimeS: downtime})
		total += downtime
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].DowntimeS != out[j].DowntimeS {
			return out[i].DowntimeS > out[j].DowntimeS
		}
		return out[i].ReasonCode < out[j].ReasonCode
	})

	var cum float64
	for i := range out {
		out[i].Pct = stats.Ratio(out[i].DowntimeS, total)
		cum += out[i].Pct
		out[i].CumPct = cum
	}
	return out
}
