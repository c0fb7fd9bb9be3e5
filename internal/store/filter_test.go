package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/plantmetrics/plantpulse/pkg/types"
)

var filterMachines = []types.Machine{
	{MachineID: "M1", Line: "L1"},
	{MachineID: "M2", Line: "L1"},
	{MachineID: "M3", Line: "L2"},
}

func TestFilterMachines_ByLine(t *testing.T) {
	got := FilterMachines(filterMachines, types.Scope{Line: "L1"})
	assert.Len(t, got, 2)
	for _, m := range got {
		assert.Equal(t, "L1", m.Line)
	}
}

func TestMachineSet_NoRestriction(t *testing.T) {
	assert.Nil(t, MachineSet(filterMachines, types.Scope{}))
}

func TestMachineSet_UnknownMachine(t *testing.T) {
	set := MachineSet(filterMachines, types.Scope{MachineID: "M9"})
	assert.NotNil(t, set)
	assert.Empty(t, set)
}

func TestFilterProduction_DateRangeAndShift(t *testing.T) {
	rows := []types.ProductionRecord{
		{TS: time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC), MachineID: "M1"},  // in range, morning
		{TS: time.Date(2026, 3, 1, 15, 0, 0, 0, time.UTC), MachineID: "M1"}, // in range, evening
		{TS: time.Date(2026, 3, 5, 8, 0, 0, 0, time.UTC), MachineID: "M1"},  // out of range
	}

	scope := types.Scope{DateFrom: "2026-03-01", DateTo: "2026-03-02", Shift: types.ShiftMorning}
	got := FilterProduction(rows, nil, scope)
	assert.Len(t, got, 1)
	assert.Equal(t, 8, got[0].TS.Hour())
}

func TestFilterEvents_MachineSet(t *testing.T) {
	rows := []types.EventRecord{
		{TS: time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC), MachineID: "M1"},
		{TS: time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC), MachineID: "M3"},
	}
	set := MachineSet(filterMachines, types.Scope{Line: "L1"})
	got := FilterEvents(rows, set, types.Scope{Line: "L1"})
	assert.Len(t, got, 1)
	assert.Equal(t, "M1", got[0].MachineID)
}

func TestFilterRiskScores_DateBounds(t *testing.T) {
	scores := []types.RiskScore{
		{Date: "2026-03-01", MachineID: "M1"},
		{Date: "2026-03-03", MachineID: "M1"},
		{Date: "2026-03-05", MachineID: "M1"},
	}
	got := FilterRiskScores(scores, nil, types.Scope{DateFrom: "2026-03-02", DateTo: "2026-03-04"})
	assert.Len(t, got, 1)
	assert.Equal(t, "2026-03-03", got[0].Date)
}
