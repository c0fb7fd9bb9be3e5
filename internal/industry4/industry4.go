// Package industry4 computes composite smart-factory scores from OEE, energy
// and quality signals. Every function is a pure bounded-score transformation.
package industry4

import (
	"github.com/plantmetrics/plantpulse/internal/stats"
	"github.com/plantmetrics/plantpulse/pkg/types"
)

// DefaultCarbonFactor is the grid-average CO2 intensity in kg per kWh.
const DefaultCarbonFactor = 0.5

// DefaultDigitalizationLevel is the assumed plant digitalization maturity.
const DefaultDigitalizationLevel = 0.8

// DefaultAnomalyStdThreshold is the z-score cutoff for anomaly flagging.
const DefaultAnomalyStdThreshold = 2.0

// CarbonFootprint converts energy consumption to kg CO2.
func CarbonFootprint(energyKWh, carbonFactor float64) float64 {
	return energyKWh * carbonFactor
}

// SustainabilityScore blends OEE, energy efficiency and quality into a 0-100
// score. scrapRate enters inverted, so lower scrap raises the score.
func SustainabilityScore(oee, energyEfficiency, scrapRate float64) float64 {
	score := (0.4*oee + 0.3*energyEfficiency + 0.3*(1-scrapRate)) * 100
	return stats.Clip(score, 0, 100)
}

// TwinHealth is a digital-twin health assessment with its weighted term
// breakdown for display.
type TwinHealth struct {
	Score                    float64         `json:"healthScore"`
	Level                    types.RiskLevel `json:"riskLevel"`
	OEEContribution          float64         `json:"oeeContribution"`
	AvailabilityContribution float64         `json:"availabilityContribution"`
	QualityContribution      float64         `json:"qualityContribution"`
	StabilityContribution    float64         `json:"stabilityContribution"`
}

// DigitalTwinHealth scores machine health 0-100 from OEE, downtime, scrap and
// energy-variance signals and assigns a categorical risk tier.
func DigitalTwinHealth(oee, downtimeRatio, scrapRate, energyVariance float64) TwinHealth {
	stability := 1 - energyVariance
	if stability < 0 {
		stability = 0
	}

	h := TwinHealth{
		OEEContribution:          oee * 40,
		AvailabilityContribution: (1 - downtimeRatio) * 30,
		QualityContribution:      (1 - scrapRate) * 20,
		StabilityContribution:    stability * 10,
	}
	h.Score = h.OEEContribution + h.AvailabilityContribution + h.QualityContribution + h.StabilityContribution

	switch {
	case h.Score >= 80:
		h.Level = types.RiskLow
	case h.Score >= 60:
		h.Level = types.RiskMedium
	default:
		h.Level = types.RiskHigh
	}
	return h
}

// LeanResult holds the lean-manufacturing ratios for a record set.
type LeanResult struct {
	TaktTime        float64 `json:"taktTime"`
	CycleEfficiency float64 `json:"cycleEfficiency"`
	ValueAddedRatio float64 `json:"valueAddedRatio"`
	WasteRatio      float64 `json:"wasteRatio"`
}

// LeanMetrics derives takt time, cycle efficiency and value-added ratios from
// raw production and event records.
func LeanMetrics(production []types.ProductionRecord, events []types.EventRecord) LeanResult {
	var totalTime, runTime float64
	for _, e := range events {
		totalTime += e.DurationS
		if e.State == types.StateRun {
			runTime += e.DurationS
		}
	}

	var goodUnits float64
	cycles := make([]float64, 0, len(production))
	for _, p := range production {
		goodUnits += float64(p.GoodCount)
		cycles = append(cycles, p.CycleTimeS)
	}

	takt := stats.Ratio(totalTime, goodUnits)
	valueAdded := stats.Ratio(runTime, totalTime)
	return LeanResult{
		TaktTime:        takt,
		CycleEfficiency: stats.Ratio(takt, stats.Mean(cycles)),
		ValueAddedRatio: valueAdded,
		WasteRatio:      1 - valueAdded,
	}
}

// SmartFactoryIndex blends Industry 4.0 indicators into a single 0-100 index.
func SmartFactoryIndex(oee, pmScore, energyEfficiency, qualityRate, digitalizationLevel float64) float64 {
	index := (0.30*oee + 0.25*pmScore + 0.20*energyEfficiency + 0.15*qualityRate + 0.10*digitalizationLevel) * 100
	return stats.Clip(index, 0, 100)
}

// Anomaly is one z-scored observation of a metric series.
type Anomaly struct {
	Value     float64 `json:"value"`
	ZScore    float64 `json:"zScore"`
	IsAnomaly bool    `json:"isAnomaly"`
}

// DetectAnomalies z-scores a metric series and flags values whose absolute
// z-score exceeds thresholdStd. A zero-variance series produces all-zero
// z-scores and no flags; that guards the division, it makes no statistical
// claim about constant series.
func DetectAnomalies(values []float64, thresholdStd float64) []Anomaly {
	if len(values) == 0 {
		return nil
	}

	mean := stats.Mean(values)
	std := stats.SampleStdDev(values)

	out := make([]Anomaly, len(values))
	for i, v := range values {
		a := Anomaly{Value: v}
		if std > 0 {
			a.ZScore = (v - mean) / std
			a.IsAnomaly = a.ZScore > thresholdStd || a.ZScore < -thresholdStd
		}
		out[i] = a
	}
	return out
}
