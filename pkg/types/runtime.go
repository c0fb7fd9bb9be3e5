package types

import "time"

// DailyOEE is one computed OEE row per (date, machine).
type DailyOEE struct {
	Date            string  `json:"date"`
	MachineID       string  `json:"machineId"`
	Availability    float64 `json:"availability"`
	Performance     float64 `json:"performance"`
	Quality         float64 `json:"quality"`
	OEE             float64 `json:"oee"`
	PlannedTimeS    float64 `json:"plannedTimeS"`
	RunTimeS        float64 `json:"runTimeS"`
	TotalCount      int     `json:"totalCount"`
	GoodCount       int     `json:"goodCount"`
	ScrapCount      int     `json:"scrapCount"`
	IdealCycleTimeS float64 `json:"idealCycleTimeS"`
	AvgCycleTimeS   float64 `json:"avgCycleTimeS"`
}

// ParetoRow is one ranked downtime reason with its share of total downtime.
type ParetoRow struct {
	ReasonCode string  `json:"reasonCode"`
	DowntimeS  float64 `json:"downtimeS"`
	Pct        float64 `json:"pct"`
	CumPct     float64 `json:"cumPct"`
}

// FeatureRow is the daily per-machine feature vector for the maintenance model.
type FeatureRow struct {
	Date      string `json:"date"`
	MachineID string `json:"machineId"`

	TotalCount    int     `json:"totalCount"`
	GoodCount     int     `json:"goodCount"`
	ScrapCount    int     `json:"scrapCount"`
	AvgCycleTimeS float64 `json:"avgCycleTimeS"`
	StdCycleTimeS float64 `json:"stdCycleTimeS"`
	ScrapRate     float64 `json:"scrapRate"`

	KWh        float64 `json:"kwh"`
	AvgKW      float64 `json:"avgKw"`
	MaxKW      float64 `json:"maxKw"`
	KWhPerGood float64 `json:"kwhPerGood"`

	DowntimeRatio float64 `json:"downtimeRatio"`
	DownEvents    int     `json:"downEvents"`
	RunS          float64 `json:"runS"`
	DownS         float64 `json:"downS"`
	IdleS         float64 `json:"idleS"`

	AvgCycleTimeSR3 float64 `json:"avgCycleTimeSR3"`
	AvgCycleTimeSR7 float64 `json:"avgCycleTimeSR7"`
	StdCycleTimeSR3 float64 `json:"stdCycleTimeSR3"`
	StdCycleTimeSR7 float64 `json:"stdCycleTimeSR7"`
	ScrapRateR3     float64 `json:"scrapRateR3"`
	ScrapRateR7     float64 `json:"scrapRateR7"`
	DowntimeRatioR3 float64 `json:"downtimeRatioR3"`
	DowntimeRatioR7 float64 `json:"downtimeRatioR7"`
	DownEventsR3    float64 `json:"downEventsR3"`
	DownEventsR7    float64 `json:"downEventsR7"`
	KWhPerGoodR3    float64 `json:"kwhPerGoodR3"`
	KWhPerGoodR7    float64 `json:"kwhPerGoodR7"`
	MaxKWR3         float64 `json:"maxKwR3"`
	MaxKWR7         float64 `json:"maxKwR7"`
}

// Features returns every named feature column for this row. Consumers select
// the model's input columns from this map; a column absent from the map is a
// contract violation on the consumer side.
func (f FeatureRow) Features() map[string]float64 {
	return map[string]float64{
		"total_count":        float64(f.TotalCount),
		"good_count":         float64(f.GoodCount),
		"scrap_count":        float64(f.ScrapCount),
		"avg_cycle_time_s":   f.AvgCycleTimeS,
		"std_cycle_time_s":   f.StdCycleTimeS,
		"scrap_rate":         f.ScrapRate,
		"kwh":                f.KWh,
		"avg_kw":             f.AvgKW,
		"max_kw":             f.MaxKW,
		"kwh_per_good":       f.KWhPerGood,
		"downtime_ratio":     f.DowntimeRatio,
		"down_events":        float64(f.DownEvents),
		"RUN":                f.RunS,
		"DOWN":               f.DownS,
		"IDLE":               f.IdleS,
		"avg_cycle_time_s_r3": f.AvgCycleTimeSR3,
		"avg_cycle_time_s_r7": f.AvgCycleTimeSR7,
		"std_cycle_time_s_r3": f.StdCycleTimeSR3,
		"std_cycle_time_s_r7": f.StdCycleTimeSR7,
		"scrap_rate_r3":       f.ScrapRateR3,
		"scrap_rate_r7":       f.ScrapRateR7,
		"downtime_ratio_r3":   f.DowntimeRatioR3,
		"downtime_ratio_r7":   f.DowntimeRatioR7,
		"down_events_r3":      f.DownEventsR3,
		"down_events_r7":      f.DownEventsR7,
		"kwh_per_good_r3":     f.KWhPerGoodR3,
		"kwh_per_good_r7":     f.KWhPerGoodR7,
		"max_kw_r3":           f.MaxKWR3,
		"max_kw_r7":           f.MaxKWR7,
	}
}

// FailureLabel marks whether a machine-day precedes a breakdown within the
// labeling horizon.
type FailureLabel struct {
	Date      string `json:"date"`
	MachineID string `json:"machineId"`
	Label     int    `json:"label"`
}

// RiskScore is a model probability for one machine-day, thresholded into an
// at-risk flag.
type RiskScore struct {
	Date        string    `json:"date"`
	MachineID   string    `json:"machineId"`
	Probability float64   `json:"probability"`
	AtRisk      bool      `json:"atRisk"`
	ModelID     string    `json:"modelId"`
	ScoredAt    time.Time `json:"scoredAt"`
}

// TrainMetrics are held-out evaluation metrics for a training run. All three
// are nil when the test split contains a single class.
type TrainMetrics struct {
	ROCAUC *float64 `json:"rocAuc"`
	PRAUC  *float64 `json:"prAuc"`
	F1     *float64 `json:"f1"`
}

// TrainingResult summarizes one completed training run.
type TrainingResult struct {
	RunID     string       `json:"runId"`
	ModelType ModelType    `json:"modelType"`
	Metrics   TrainMetrics `json:"metrics"`
	TrainRows int          `json:"trainRows"`
	TestRows  int          `json:"testRows"`
	TrainedAt time.Time    `json:"trainedAt"`
}

// OrderRollup is the status summary of one order across its steps.
type OrderRollup struct {
	OrderID        string      `json:"orderId"`
	SKU            string      `json:"sku"`
	PlannedQty     int         `json:"plannedQty"`
	Priority       int         `json:"priority"`
	DueTS          time.Time   `json:"dueTs"`
	Status         OrderStatus `json:"status"`
	StepsTotal     int         `json:"stepsTotal"`
	StepsCompleted int         `json:"stepsCompleted"`
	Overdue        bool        `json:"overdue"`
}

// Alert represents an alert event to be dispatched.
type Alert struct {
	Level     AlertLevel             `json:"level"`
	MachineID string                 `json:"machineId,omitempty"`
	Metric    string                 `json:"metric,omitempty"`
	Message   string                 `json:"message"`
	Details   map[string]interface{} `json:"details,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}
