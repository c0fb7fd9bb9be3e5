package features

import (
	"sort"

	"github.com/plantmetrics/plantpulse/pkg/types"
)

// BuildFailureLabels derives a binary label per observed (date, machine):
// 1 when a BREAKDOWN-reason DOWN event occurs for that machine on any day in
// [date, date+horizonDays], else 0. Empty input yields an empty label set.
func BuildFailureLabels(events []types.EventRecord, horizonDays int) []types.FailureLabel {
	if len(events) == 0 {
		return nil
	}
	if horizonDays < 0 {
		horizonDays = 0
	}

	breakdowns := make(map[dayKey]bool)
	observed := make(map[dayKey]bool)
	for _, e := range events {
		k := dayKey{types.DateOf(e.TS), e.MachineID}
		observed[k] = true
		if e.State == types.StateDown && e.ReasonCode == types.ReasonBreakdown {
			breakdowns[k] = true
		}
	}

	out := make([]types.FailureLabel, 0, len(observed))
	for k := range observed {
		label := 0
		for offset := 0; offset <= horizonDays; offset++ {
			d, err := types.AddDays(k.date, offset)
			if err != nil {
				break
			}
			if breakdowns[dayKey{d, k.machineID}] {
				label = 1
				break
			}
		}
		out = append(out, types.FailureLabel{Date: k.date, MachineID: k.machineID, Label: label})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].MachineID != out[j].MachineID {
			return out[i].MachineID < out[j].MachineID
		}
		return out[i].Date < out[j].Date
	})
	return out
}
