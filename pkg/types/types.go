// Package types defines the public domain types for the plantpulse
// manufacturing performance toolkit.
package types

import "time"

// DateLayout is the calendar-date format used for all daily aggregation keys.
const DateLayout = "2006-01-02"

// DateOf truncates a timestamp to its calendar date key.
func DateOf(ts time.Time) string {
	return ts.Format(DateLayout)
}

// AddDays shifts a calendar-date key by n days.
func AddDays(date string, n int) (string, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, n).Format(DateLayout), nil
}

// Machine is static reference data describing one production machine.
type Machine struct {
	MachineID       string  `yaml:"machineId" json:"machineId"`
	Line            string  `yaml:"line" json:"line"`
	IdealCycleTimeS float64 `yaml:"idealCycleTimeS" json:"idealCycleTimeS"`
	RatedPowerKW    float64 `yaml:"ratedPowerKw" json:"ratedPowerKw"`
}

// ProductionRecord is one production observation interval for a machine.
type ProductionRecord struct {
	TS              time.Time `json:"ts"`
	MachineID       string    `json:"machineId"`
	GoodCount       int       `json:"goodCount"`
	ScrapCount      int       `json:"scrapCount"`
	CycleTimeS      float64   `json:"cycleTimeS"`
	IdealCycleTimeS float64   `json:"idealCycleTimeS"`
}

// TotalCount is the total unit count for the interval.
func (p ProductionRecord) TotalCount() int {
	return p.GoodCount + p.ScrapCount
}

// EventRecord is a contiguous machine-state interval.
type EventRecord struct {
	TS         time.Time    `json:"ts"`
	MachineID  string       `json:"machineId"`
	State      MachineState `json:"state"`
	DurationS  float64      `json:"durationS"`
	ReasonCode string       `json:"reasonCode"`
}

// EnergyRecord is one energy-draw observation interval for a machine.
type EnergyRecord struct {
	TS          time.Time `json:"ts"`
	MachineID   string    `json:"machineId"`
	KWhInterval float64   `json:"kwhInterval"`
	KW          float64   `json:"kw"`
}

// Order is a production order scheduled across one or more machines.
type Order struct {
	OrderID    string    `json:"orderId"`
	SKU        string    `json:"sku"`
	PlannedQty int       `json:"plannedQty"`
	StartTS    time.Time `json:"startTs"`
	DueTS      time.Time `json:"dueTs"`
	Priority   int       `json:"priority"`
}

// OrderStep routes an order through one machine with a planned window.
type OrderStep struct {
	OrderID        string     `json:"orderId"`
	StepNo         int        `json:"stepNo"`
	MachineID      string     `json:"machineId"`
	PlannedStartTS time.Time  `json:"plannedStartTs"`
	PlannedEndTS   time.Time  `json:"plannedEndTs"`
	ActualStartTS  *time.Time `json:"actualStartTs,omitempty"`
	ActualEndTS    *time.Time `json:"actualEndTs,omitempty"`
	Status         StepStatus `json:"status"`
}

// Scope is an immutable filter applied when loading raw tables. Zero-value
// fields mean "no restriction".
type Scope struct {
	Line      string `json:"line,omitempty"`
	MachineID string `json:"machineId,omitempty"`
	DateFrom  string `json:"dateFrom,omitempty"` // inclusive, DateLayout
	DateTo    string `json:"dateTo,omitempty"`   // inclusive, DateLayout
	Shift     string `json:"shift,omitempty"`
}

// MatchesTS reports whether a record timestamp falls inside the scope's
// date range and shift.
func (s Scope) MatchesTS(ts time.Time) bool {
	d := DateOf(ts)
	if s.DateFrom != "" && d < s.DateFrom {
		return false
	}
	if s.DateTo != "" && d > s.DateTo {
		return false
	}
	if s.Shift != "" && ShiftOf(ts) != s.Shift {
		return false
	}
	return true
}

// Shift names, aligned with the three 8-hour plant shifts.
const (
	ShiftMorning = "morning" // 06:00-14:00
	ShiftEvening = "evening" // 14:00-22:00
	ShiftNight   = "night"   // 22:00-06:00
)

// ShiftOf returns the plant shift a timestamp falls into.
func ShiftOf(ts time.Time) string {
	switch h := ts.Hour(); {
	case h >= 6 && h < 14:
		return ShiftMorning
	case h >= 14 && h < 22:
		return ShiftEvening
	default:
		return ShiftNight
	}
}
