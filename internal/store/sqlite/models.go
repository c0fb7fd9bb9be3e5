package sqlite

import (
	"time"

	"github.com/plantmetrics/plantpulse/pkg/types"
)

// Row models mirror the domain types with gorm column metadata. Conversion
// stays explicit so the storage schema can drift without touching pkg/types.

type machineRow struct {
	MachineID       string  `gorm:"column:machine_id;primaryKey"`
	Line            string  `gorm:"column:line;index"`
	IdealCycleTimeS float64 `gorm:"column:ideal_cycle_time_s"`
	RatedPowerKW    float64 `gorm:"column:rated_power_kw"`
}

func (machineRow) TableName() string { return "machines" }

type productionRow struct {
	ID              uint      `gorm:"primaryKey;autoIncrement"`
	TS              time.Time `gorm:"column:ts;index"`
	MachineID       string    `gorm:"column:machine_id;index"`
	GoodCount       int       `gorm:"column:good_count"`
	ScrapCount      int       `gorm:"column:scrap_count"`
	CycleTimeS      float64   `gorm:"column:cycle_time_s"`
	IdealCycleTimeS float64   `gorm:"column:ideal_cycle_time_s"`
}

func (productionRow) TableName() string { return "production" }

type eventRow struct {
	ID         uint      `gorm:"primaryKey;autoIncrement"`
	TS         time.Time `gorm:"column:ts;index"`
	MachineID  string    `gorm:"column:machine_id;index"`
	State      string    `gorm:"column:state"`
	DurationS  float64   `gorm:"column:duration_s"`
	ReasonCode string    `gorm:"column:reason_code;index"`
}

func (eventRow) TableName() string { return "events" }

type energyRow struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"`
	TS          time.Time `gorm:"column:ts;index"`
	MachineID   string    `gorm:"column:machine_id;index"`
	KWhInterval float64   `gorm:"column:kwh_interval"`
	KW          float64   `gorm:"column:kw"`
}

func (energyRow) TableName() string { return "energy" }

type orderRow struct {
	OrderID    string    `gorm:"column:order_id;primaryKey"`
	SKU        string    `gorm:"column:sku"`
	PlannedQty int       `gorm:"column:planned_qty"`
	StartTS    time.Time `gorm:"column:start_ts"`
	DueTS      time.Time `gorm:"column:due_ts;index"`
	Priority   int       `gorm:"column:priority"`
}

func (orderRow) TableName() string { return "orders" }

type orderStepRow struct {
	OrderID        string     `gorm:"column:order_id;primaryKey"`
	StepNo         int        `gorm:"column:step_no;primaryKey"`
	MachineID      string     `gorm:"column:machine_id;index"`
	PlannedStartTS time.Time  `gorm:"column:planned_start_ts"`
	PlannedEndTS   time.Time  `gorm:"column:planned_end_ts"`
	ActualStartTS  *time.Time `gorm:"column:actual_start_ts"`
	ActualEndTS    *time.Time `gorm:"column:actual_end_ts"`
	Status         string     `gorm:"column:status"`
}

func (orderStepRow) TableName() string { return "order_steps" }

type riskScoreRow struct {
	Date        string    `gorm:"column:date;primaryKey"`
	MachineID   string    `gorm:"column:machine_id;primaryKey"`
	Probability float64   `gorm:"column:probability"`
	AtRisk      bool      `gorm:"column:at_risk"`
	ModelID     string    `gorm:"column:model_id"`
	ScoredAt    time.Time `gorm:"column:scored_at"`
}

func (riskScoreRow) TableName() string { return "risk_scores" }

func toMachine(r machineRow) types.Machine {
	return types.Machine{
		MachineID:       r.MachineID,
		Line:            r.Line,
		IdealCycleTimeS: r.IdealCycleTimeS,
		RatedPowerKW:    r.RatedPowerKW,
	}
}

func fromMachine(m types.Machine) machineRow {
	return machineRow{
		MachineID:       m.MachineID,
		Line:            m.Line,
		IdealCycleTimeS: m.IdealCycleTimeS,
		RatedPowerKW:    m.RatedPowerKW,
	}
}

func toProduction(r productionRow) types.ProductionRecord {
	return types.ProductionRecord{
		TS:              r.TS,
		MachineID:       r.MachineID,
		GoodCount:       r.GoodCount,
		ScrapCount:      r.ScrapCount,
		CycleTimeS:      r.CycleTimeS,
		IdealCycleTimeS: r.IdealCycleTimeS,
	}
}

func fromProduction(p types.ProductionRecord) productionRow {
	return productionRow{
		TS:              p.TS,
		MachineID:       p.MachineID,
		GoodCount:       p.GoodCount,
		ScrapCount:      p.ScrapCount,
		CycleTimeS:      p.CycleTimeS,
		IdealCycleTimeS: p.IdealCycleTimeS,
	}
}

func toEvent(r eventRow) types.EventRecord {
	return types.EventRecord{
		TS:         r.TS,
		MachineID:  r.MachineID,
		State:      types.MachineState(r.State),
		DurationS:  r.DurationS,
		ReasonCode: r.ReasonCode,
	}
}

func fromEvent(e types.EventRecord) eventRow {
	return eventRow{
		TS:         e.TS,
		MachineID:  e.MachineID,
		State:      string(e.State),
		DurationS:  e.DurationS,
		ReasonCode: e.ReasonCode,
	}
}

func toEnergy(r energyRow) types.EnergyRecord {
	return types.EnergyRecord{TS: r.TS, MachineID: r.MachineID, KWhInterval: r.KWhInterval, KW: r.KW}
}

func fromEnergy(e types.EnergyRecord) energyRow {
	return energyRow{TS: e.TS, MachineID: e.MachineID, KWhInterval: e.KWhInterval, KW: e.KW}
}

func toOrder(r orderRow) types.Order {
	return types.Order{
		OrderID:    r.OrderID,
		SKU:        r.SKU,
		PlannedQty: r.PlannedQty,
		StartTS:    r.StartTS,
		DueTS:      r.DueTS,
		Priority:   r.Priority,
	}
}

func fromOrder(o types.Order) orderRow {
	return orderRow{
		OrderID:    o.OrderID,
		SKU:        o.SKU,
		PlannedQty: o.PlannedQty,
		StartTS:    o.StartTS,
		DueTS:      o.DueTS,
		Priority:   o.Priority,
	}
}

func toOrderStep(r orderStepRow) types.OrderStep {
	return types.OrderStep{
		OrderID:        r.OrderID,
		StepNo:         r.StepNo,
		MachineID:      r.MachineID,
		PlannedStartTS: r.PlannedStartTS,
		PlannedEndTS:   r.PlannedEndTS,
		ActualStartTS:  r.ActualStartTS,
		ActualEndTS:    r.ActualEndTS,
		Status:         types.StepStatus(r.Status),
	}
}

func fromOrderStep(s types.OrderStep) orderStepRow {
	return orderStepRow{
		OrderID:        s.OrderID,
		StepNo:         s.StepNo,
		MachineID:      s.MachineID,
		PlannedStartTS: s.PlannedStartTS,
		PlannedEndTS:   s.PlannedEndTS,
		ActualStartTS:  s.ActualStartTS,
		ActualEndTS:    s.ActualEndTS,
		Status:         string(s.Status),
	}
}

func toRiskScore(r riskScoreRow) types.RiskScore {
	return types.RiskScore{
		Date:        r.Date,
		MachineID:   r.MachineID,
		Probability: r.Probability,
		AtRisk:      r.AtRisk,
		ModelID:     r.ModelID,
		ScoredAt:    r.ScoredAt,
	}
}

func fromRiskScore(s types.RiskScore) riskScoreRow {
	return riskScoreRow{
		Date:        s.Date,
		MachineID:   s.MachineID,
		Probability: s.Probability,
		AtRisk:      s.AtRisk,
		ModelID:     s.ModelID,
		ScoredAt:    s.ScoredAt,
	}
}
