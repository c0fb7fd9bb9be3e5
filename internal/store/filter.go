package store

import "github.com/plantmetrics/plantpulse/pkg/types"

// FilterMachines applies the scope's line and machine restrictions.
func FilterMachines(machines []types.Machine, scope types.Scope) []types.Machine {
	out := make([]types.Machine, 0, len(machines))
	for _, m := range machines {
		if scope.Line != "" && m.Line != scope.Line {
			continue
		}
		if scope.MachineID != "" && m.MachineID != scope.MachineID {
			continue
		}
		out = append(out, m)
	}
	return out
}

// MachineSet returns the machine IDs admitted by the scope. A nil set means
// the scope does not restrict machine identity, so every row passes.
func MachineSet(machines []types.Machine, scope types.Scope) map[string]bool {
	if scope.Line == "" && scope.MachineID == "" {
		return nil
	}
	set := make(map[string]bool)
	for _, m := range FilterMachines(machines, scope) {
		set[m.MachineID] = true
	}
	return set
}

func admits(set map[string]bool, machineID string) bool {
	return set == nil || set[machineID]
}

// FilterProduction keeps rows whose machine and timestamp the scope admits.
func FilterProduction(rows []types.ProductionRecord, set map[string]bool, scope types.Scope) []types.ProductionRecord {
	out := make([]types.ProductionRecord, 0, len(rows))
	for _, r := range rows {
		if admits(set, r.MachineID) && scope.MatchesTS(r.TS) {
			out = append(out, r)
		}
	}
	return out
}

// FilterEvents keeps rows whose machine and timestamp the scope admits.
func FilterEvents(rows []types.EventRecord, set map[string]bool, scope types.Scope) []types.EventRecord {
	out := make([]types.EventRecord, 0, len(rows))
	for _, r := range rows {
		if admits(set, r.MachineID) && scope.MatchesTS(r.TS) {
			out = append(out, r)
		}
	}
	return out
}

// FilterEnergy keeps rows whose machine and timestamp the scope admits.
func FilterEnergy(rows []types.EnergyRecord, set map[string]bool, scope types.Scope) []types.EnergyRecord {
	out := make([]types.EnergyRecord, 0, len(rows))
	for _, r := range rows {
		if admits(set, r.MachineID) && scope.MatchesTS(r.TS) {
			out = append(out, r)
		}
	}
	return out
}

// FilterRiskScores keeps scores whose machine and date the scope admits.
// Shift restrictions do not apply to daily risk scores.
func FilterRiskScores(scores []types.RiskScore, set map[string]bool, scope types.Scope) []types.RiskScore {
	out := make([]types.RiskScore, 0, len(scores))
	for _, s := range scores {
		if !admits(set, s.MachineID) {
			continue
		}
		if scope.DateFrom != "" && s.Date < scope.DateFrom {
			continue
		}
		if scope.DateTo != "" && s.Date > scope.DateTo {
			continue
		}
		out = append(out, s)
	}
	return out
}
