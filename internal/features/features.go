// Package features builds the daily per-machine feature table and failure
// labels consumed by the maintenance model.
package features

import (
	"math"
	"sort"

	"github.com/plantmetrics/plantpulse/internal/stats"
	"github.com/plantmetrics/plantpulse/pkg/types"
)

// Rolling windows appended to the trending columns.
const (
	windowShort = 3
	windowLong  = 7
)

type dayKey struct {
	date      string
	machineID string
}

type prodDay struct {
	total  int
	good   int
	scrap  int
	cycles []float64
}

type eventDay struct {
	runS       float64
	downS      float64
	idleS      float64
	downEvents int
}

type energyDay struct {
	kwh float64
	kws []float64
}

// workRow carries the feature columns as floats so that missing joins can be
// represented as NaN until the terminal zero-fill, mirroring how the rolling
// means skip missing days.
type workRow struct {
	key dayKey

	total, good, scrap         float64
	avgCycle, stdCycle, scrapRate float64

	kwh, avgKW, maxKW, kwhPerGood float64

	downtimeRatio, downEvents float64
	runS, downS, idleS        float64

	rolled map[string]float64
}

// BuildMaintenanceFeatures joins production, event and energy records into one
// feature row per (date, machine), with trailing 3- and 7-day rolling means.
// Any empty input is a valid "no data" outcome and yields an empty result.
func BuildMaintenanceFeatures(production []types.ProductionRecord, events []types.EventRecord, energy []types.EnergyRecord) []types.FeatureRow {
	if len(production) == 0 || len(events) == 0 || len(energy) == 0 {
		return nil
	}

	prod := aggregateProduction(production)
	evt := aggregateEvents(events)
	en := aggregateEnergy(energy)

	rows := make([]*workRow, 0, len(prod))
	for k, p := range prod {
		r := &workRow{key: k, rolled: make(map[string]float64)}

		r.total = float64(p.total)
		r.good = float64(p.good)
		r.scrap = float64(p.scrap)
		r.avgCycle = stats.Mean(p.cycles)
		r.stdCycle = stats.SampleStdDev(p.cycles)
		r.scrapRate = stats.Ratio(r.scrap, r.total)

		if e, ok := evt[k]; ok {
			r.runS = e.runS
			r.downS = e.downS
			r.idleS = e.idleS
			planned := e.runS + e.downS + e.idleS
			r.downtimeRatio = stats.Ratio(e.downS, planned)
			r.downEvents = float64(e.downEvents)
		} else {
			r.runS = math.NaN()
			r.downS = math.NaN()
			r.idleS = math.NaN()
			r.downtimeRatio = math.NaN()
			r.downEvents = math.NaN()
		}

		if g, ok := en[k]; ok {
			r.kwh = g.kwh
			r.avgKW = stats.Mean(g.kws)
			r.maxKW = stats.Max(g.kws)
		} else {
			r.kwh = math.NaN()
			r.avgKW = math.NaN()
			r.maxKW = math.NaN()
		}

		if r.good > 0 && !math.IsNaN(r.kwh) {
			r.kwhPerGood = r.kwh / r.good
		} else {
			r.kwhPerGood = math.NaN()
		}

		rows = append(rows, r)
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].key.machineID != rows[j].key.machineID {
			return rows[i].key.machineID < rows[j].key.machineID
		}
		return rows[i].key.date < rows[j].key.date
	})

	imputeKWhPerGood(rows)
	appendRollingMeans(rows)

	out := make([]types.FeatureRow, len(rows))
	for i, r := range rows {
		out[i] = r.finalize()
	}
	return out
}

func aggregateProduction(production []types.ProductionRecord) map[dayKey]*prodDay {
	agg := make(map[dayKey]*prodDay)
	for _, p := range production {
		k := dayKey{types.DateOf(p.TS), p.MachineID}
		a := agg[k]
		if a == nil {
			a = &prodDay{}
			agg[k] = a
		}
		a.total += p.TotalCount()
		a.good += p.GoodCount
		a.scrap += p.ScrapCount
		a.cycles = append(a.cycles, p.CycleTimeS)
	}
	return agg
}

func aggregateEvents(events []types.EventRecord) map[dayKey]*eventDay {
	agg := make(map[dayKey]*eventDay)
	for _, e := range events {
		k := dayKey{types.DateOf(e.TS), e.MachineID}
		a := agg[k]
		if a == nil {
			a = &eventDay{}
			agg[k] = a
		}
		switch e.State {
		case types.StateRun:
			a.runS += e.DurationS
		case types.StateDown:
			a.downS += e.DurationS
			a.downEvents++
		case types.StateIdle:
			a.idleS += e.DurationS
		}
	}
	return agg
}

func aggregateEnergy(energy []types.EnergyRecord) map[dayKey]*energyDay {
	agg := make(map[dayKey]*energyDay)
	for _, e := range energy {
		k := dayKey{types.DateOf(e.TS), e.MachineID}
		a := agg[k]
		if a == nil {
			a = &energyDay{}
			agg[k] = a
		}
		a.kwh += e.KWhInterval
		a.kws = append(a.kws, e.KW)
	}
	return agg
}

// imputeKWhPerGood replaces missing kwh_per_good values with the machine's
// median across its observed days. A machine with no good output on any day
// keeps NaN here and is zeroed by the terminal fill (a policy choice: no
// usable energy-intensity signal exists for such a machine).
func imputeKWhPerGood(rows []*workRow) {
	byMachine := make(map[string][]float64)
	for _, r := range rows {
		byMachine[r.key.machineID] = append(byMachine[r.key.machineID], r.kwhPerGood)
	}
	medians := make(map[string]float64, len(byMachine))
	for m, vals := range byMachine {
		medians[m] = stats.MedianSkipNaN(vals)
	}
	for _, r := range rows {
		if math.IsNaN(r.kwhPerGood) {
			r.kwhPerGood = medians[r.key.machineID]
		}
	}
}

// rollingCols maps column names to their per-row accessor. These are the
// trending columns that get _r3/_r7 companions.
var rollingCols = []struct {
	name string
	get  func(*workRow) float64
}{
	{"avg_cycle_time_s", func(r *workRow) float64 { return r.avgCycle }},
	{"std_cycle_time_s", func(r *workRow) float64 { return r.stdCycle }},
	{"scrap_rate", func(r *workRow) float64 { return r.scrapRate }},
	{"downtime_ratio", func(r *workRow) float64 { return r.downtimeRatio }},
	{"down_events", func(r *workRow) float64 { return r.downEvents }},
	{"kwh_per_good", func(r *workRow) float64 { return r.kwhPerGood }},
	{"max_kw", func(r *workRow) float64 { return r.maxKW }},
}

// appendRollingMeans computes trailing rolling means per machine over rows
// already sorted by (machine, date). Partial windows shrink at the start of a
// machine's series instead of producing missing values; missing days inside a
// window are skipped, never looked past the current row.
func appendRollingMeans(rows []*workRow) {
	start := 0
	for i := 1; i <= len(rows); i++ {
		if i == len(rows) || rows[i].key.machineID != rows[start].key.machineID {
			series := rows[start:i]
			for _, col := range rollingCols {
				vals := make([]float64, len(series))
				for j, r := range series {
					vals[j] = col.get(r)
				}
				for j, r := range series {
					r.rolled[col.name+"_r3"] = trailingMean(vals, j, windowShort)
					r.rolled[col.name+"_r7"] = trailingMean(vals, j, windowLong)
				}
			}
			start = i
		}
	}
}

// trailingMean averages vals[i-k+1..i], clamped at the series start.
func trailingMean(vals []float64, i, k int) float64 {
	lo := i - k + 1
	if lo < 0 {
		lo = 0
	}
	return stats.MeanSkipNaN(vals[lo : i+1])
}

func (r *workRow) finalize() types.FeatureRow {
	return types.FeatureRow{
		Date:      r.key.date,
		MachineID: r.key.machineID,

		TotalCount:    int(r.total),
		GoodCount:     int(r.good),
		ScrapCount:    int(r.scrap),
		AvgCycleTimeS: stats.ZeroNaN(r.avgCycle),
		StdCycleTimeS: stats.ZeroNaN(r.stdCycle),
		ScrapRate:     stats.ZeroNaN(r.scrapRate),

		KWh:        stats.ZeroNaN(r.kwh),
		AvgKW:      stats.ZeroNaN(r.avgKW),
		MaxKW:      stats.ZeroNaN(r.maxKW),
		KWhPerGood: stats.ZeroNaN(r.kwhPerGood),

		DowntimeRatio: stats.ZeroNaN(r.downtimeRatio),
		DownEvents:    int(stats.ZeroNaN(r.downEvents)),
		RunS:          stats.ZeroNaN(r.runS),
		DownS:         stats.ZeroNaN(r.downS),
		IdleS:         stats.ZeroNaN(r.idleS),

		AvgCycleTimeSR3: stats.ZeroNaN(r.rolled["avg_cycle_time_s_r3"]),
		AvgCycleTimeSR7: stats.ZeroNaN(r.rolled["avg_cycle_time_s_r7"]),
		StdCycleTimeSR3: stats.ZeroNaN(r.rolled["std_cycle_time_s_r3"]),
		StdCycleTimeSR7: stats.ZeroNaN(r.rolled["std_cycle_time_s_r7"]),
		ScrapRateR3:     stats.ZeroNaN(r.rolled["scrap_rate_r3"]),
		ScrapRateR7:     stats.ZeroNaN(r.rolled["scrap_rate_r7"]),
		DowntimeRatioR3: stats.ZeroNaN(r.rolled["downtime_ratio_r3"]),
		DowntimeRatioR7: stats.ZeroNaN(r.rolled["downtime_ratio_r7"]),
		DownEventsR3:    stats.ZeroNaN(r.rolled["down_events_r3"]),
		DownEventsR7:    stats.ZeroNaN(r.rolled["down_events_r7"]),
		KWhPerGoodR3:    stats.ZeroNaN(r.rolled["kwh_per_good_r3"]),
		KWhPerGoodR7:    stats.ZeroNaN(r.rolled["kwh_per_good_r7"]),
		MaxKWR3:         stats.ZeroNaN(r.rolled["max_kw_r3"]),
		MaxKWR7:         stats.ZeroNaN(r.rolled["max_kw_r7"]),
	}
}
