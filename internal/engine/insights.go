package engine

import (
	"context"
	"sort"

	"github.com/plantmetrics/plantpulse/internal/industry4"
	"github.com/plantmetrics/plantpulse/internal/metrics"
	"github.com/plantmetrics/plantpulse/internal/model"
	"github.com/plantmetrics/plantpulse/internal/oee"
	"github.com/plantmetrics/plantpulse/internal/stats"
	"github.com/plantmetrics/plantpulse/pkg/types"
)

// fallbackPMScore stands in for model quality when no trained artifact is
// available.
const fallbackPMScore = 0.7

// InsightsSummary is the Industry 4.0 composite view over a scope.
type InsightsSummary struct {
	Scope types.Scope `json:"scope"`

	AvgOEE            float64 `json:"avgOee"`
	AvgScrapRate      float64 `json:"avgScrapRate"`
	EnergyEfficiency  float64 `json:"energyEfficiency"`
	TotalEnergyKWh    float64 `json:"totalEnergyKwh"`
	CarbonKgCO2       float64 `json:"carbonKgCo2"`
	Sustainability    float64 `json:"sustainabilityScore"`
	SmartFactoryIndex float64 `json:"smartFactoryIndex"`
	PMScore           float64 `json:"pmScore"`

	TwinHealth industry4.TwinHealth `json:"twinHealth"`
	Lean       industry4.LeanResult `json:"lean"`

	EnergyAnomalies []EnergyAnomaly      `json:"energyAnomalies"`
	Energy          []DailyEnergySummary `json:"energy"`
}

// EnergyAnomaly flags one machine whose total energy draw is a statistical
// outlier against its peers.
type EnergyAnomaly struct {
	MachineID string  `json:"machineId"`
	KWh       float64 `json:"kwh"`
	ZScore    float64 `json:"zScore"`
}

// DailyEnergySummary is one plant-level energy day.
type DailyEnergySummary struct {
	Date       string  `json:"date"`
	KWh        float64 `json:"kwh"`
	PeakKW     float64 `json:"peakKw"`
	AvgKW      float64 `json:"avgKw"`
	GoodCount  int     `json:"goodCount"`
	KWhPerGood float64 `json:"kwhPerGood"`
}

// Insights computes the Industry 4.0 summary for the scope. The predictive
// maintenance score comes from the persisted model's held-out ROC-AUC when
// an artifact exists.
func (e *Engine) Insights(ctx context.Context, scope types.Scope) (*InsightsSummary, error) {
	data, err := e.loadPlant(ctx, scope)
	if err != nil {
		return nil, err
	}

	s := &InsightsSummary{Scope: scope}

	oeeRows := oee.ComputeOEE(data.production, data.events)
	latest := latestOEEPerMachine(oeeRows)

	var oees []float64
	var scrapSum, totalSum float64
	for _, r := range latest {
		oees = append(oees, r.OEE)
		scrapSum += float64(r.ScrapCount)
		totalSum += float64(r.TotalCount)
	}
	s.AvgOEE = stats.Mean(oees)
	s.AvgScrapRate = stats.Ratio(scrapSum, totalSum)

	// Energy efficiency is one minus the coefficient of variation of the
	// power draw; an empty or zero-draw series falls back to neutral 0.5.
	kws := make([]float64, 0, len(data.energy))
	for _, rec := range data.energy {
		kws = append(kws, rec.KW)
		s.TotalEnergyKWh += rec.KWhInterval
	}
	kwVariation := 0.1
	s.EnergyEfficiency = 0.5
	if mean := stats.Mean(kws); mean > 0 {
		kwVariation = stats.SampleStdDev(kws) / mean
		s.EnergyEfficiency = 1 - kwVariation
	}

	carbonFactor := industry4.DefaultCarbonFactor
	digitalization := industry4.DefaultDigitalizationLevel
	anomalyStd := industry4.DefaultAnomalyStdThreshold
	if ic := e.cfg.Insights; ic != nil {
		if ic.CarbonFactor > 0 {
			carbonFactor = ic.CarbonFactor
		}
		if ic.DigitalizationLevel > 0 {
			digitalization = ic.DigitalizationLevel
		}
		if ic.AnomalyStdThreshold > 0 {
			anomalyStd = ic.AnomalyStdThreshold
		}
	}

	s.CarbonKgCO2 = industry4.CarbonFootprint(s.TotalEnergyKWh, carbonFactor)
	s.Sustainability = industry4.SustainabilityScore(s.AvgOEE, s.EnergyEfficiency, s.AvgScrapRate)
	s.TwinHealth = industry4.DigitalTwinHealth(s.AvgOEE, meanDowntimeRatio(latest), s.AvgScrapRate, kwVariation)

	s.PMScore = fallbackPMScore
	if artifact, err := model.Load(e.cfg.Model.ArtifactPath()); err == nil && artifact.Metrics.ROCAUC != nil {
		s.PMScore = *artifact.Metrics.ROCAUC
	}
	s.SmartFactoryIndex = industry4.SmartFactoryIndex(
		s.AvgOEE, s.PMScore, s.EnergyEfficiency, 1-s.AvgScrapRate, digitalization)

	s.Lean = industry4.LeanMetrics(data.production, data.events)
	s.EnergyAnomalies = energyAnomalies(data.energy, anomalyStd)
	s.Energy = dailyEnergy(data.production, data.energy)

	metrics.InsightsComputedTotal.Add(1)
	metrics.AnomaliesDetected.Add(int64(len(s.EnergyAnomalies)))
	return s, nil
}

func latestOEEPerMachine(rows []types.DailyOEE) []types.DailyOEE {
	byMachine := make(map[string]types.DailyOEE)
	for _, r := range rows {
		if cur, ok := byMachine[r.MachineID]; !ok || r.Date > cur.Date {
			byMachine[r.MachineID] = r
		}
	}
	out := make([]types.DailyOEE, 0, len(byMachine))
	for _, r := range byMachine {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MachineID < out[j].MachineID })
	return out
}

func meanDowntimeRatio(latest []types.DailyOEE) float64 {
	var ratios []float64
	for _, r := range latest {
		ratios = append(ratios, stats.Ratio(r.PlannedTimeS-r.RunTimeS, r.PlannedTimeS))
	}
	return stats.Mean(ratios)
}

// energyAnomalies z-scores each machine's total energy draw against the
// machine population.
func energyAnomalies(energy []types.EnergyRecord, thresholdStd float64) []EnergyAnomaly {
	totals := make(map[string]float64)
	for _, rec := range energy {
		totals[rec.MachineID] += rec.KWhInterval
	}
	ids := make([]string, 0, len(totals))
	for id := range totals {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	values := make([]float64, len(ids))
	for i, id := range ids {
		values[i] = totals[id]
	}

	var out []EnergyAnomaly
	for i, a := range industry4.DetectAnomalies(values, thresholdStd) {
		if a.IsAnomaly {
			out = append(out, EnergyAnomaly{MachineID: ids[i], KWh: a.Value, ZScore: a.ZScore})
		}
	}
	return out
}

// dailyEnergy aggregates plant-level energy days with good-unit intensity.
func dailyEnergy(production []types.ProductionRecord, energy []types.EnergyRecord) []DailyEnergySummary {
	type agg struct {
		kwh   float64
		peak  float64
		kwSum float64
		n     int
		good  int
	}
	days := make(map[string]*agg)
	day := func(date string) *agg {
		a, ok := days[date]
		if !ok {
			a = &agg{}
			days[date] = a
		}
		return a
	}

	for _, rec := range energy {
		a := day(types.DateOf(rec.TS))
		a.kwh += rec.KWhInterval
		a.kwSum += rec.KW
		a.n++
		if rec.KW > a.peak {
			a.peak = rec.KW
		}
	}
	for _, p := range production {
		day(types.DateOf(p.TS)).good += p.GoodCount
	}

	dates := make([]string, 0, len(days))
	for d := range days {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	out := make([]DailyEnergySummary, 0, len(dates))
	for _, d := range dates {
		a := days[d]
		out = append(out, DailyEnergySummary{
			Date:       d,
			KWh:        a.kwh,
			PeakKW:     a.peak,
			AvgKW:      stats.Ratio(a.kwSum, float64(a.n)),
			GoodCount:  a.good,
			KWhPerGood: stats.Ratio(a.kwh, float64(a.good)),
		})
	}
	return out
}
