package postgres

import (
	"context"
	"fmt"

	"github.com/plantmetrics/plantpulse/internal/store"
	"github.com/plantmetrics/plantpulse/pkg/types"
)

func (s *Store) Machines(ctx context.Context, scope types.Scope) ([]types.Machine, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT machine_id, line, ideal_cycle_time_s, rated_power_kw
		FROM machines
		ORDER BY machine_id
	`)
	if err != nil {
		return nil, fmt.Errorf("query machines: %w", err)
	}
	defer rows.Close()

	var machines []types.Machine
	for rows.Next() {
		var m types.Machine
		if err := rows.Scan(&m.MachineID, &m.Line, &m.IdealCycleTimeS, &m.RatedPowerKW); err != nil {
			return nil, err
		}
		machines = append(machines, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return store.FilterMachines(machines, scope), nil
}

// machineIDs resolves the scope's machine restriction to an ID list for SQL
// pushdown. A nil slice means no restriction.
func (s *Store) machineIDs(ctx context.Context, scope types.Scope) ([]string, error) {
	if scope.Line == "" && scope.MachineID == "" {
		return nil, nil
	}
	machines, err := s.Machines(ctx, scope)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(machines))
	for _, m := range machines {
		ids = append(ids, m.MachineID)
	}
	if len(ids) == 0 {
		ids = []string{""} // scope admits nothing
	}
	return ids, nil
}

func (s *Store) Production(ctx context.Context, scope types.Scope) ([]types.ProductionRecord, error) {
	ids, err := s.machineIDs(ctx, scope)
	if err != nil {
		return nil, err
	}
	rows, err := s.pool.Query(ctx, `
		SELECT ts, machine_id, good_count, scrap_count, cycle_time_s, ideal_cycle_time_s
		FROM production
		WHERE $1::text[] IS NULL OR machine_id = ANY($1)
		ORDER BY ts
	`, ids)
	if err != nil {
		return nil, fmt.Errorf("query production: %w", err)
	}
	defer rows.Close()

	var records []types.ProductionRecord
	for rows.Next() {
		var r types.ProductionRecord
		if err := rows.Scan(&r.TS, &r.MachineID, &r.GoodCount, &r.ScrapCount, &r.CycleTimeS, &r.IdealCycleTimeS); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return store.FilterProduction(records, nil, scope), nil
}

func (s *Store) Events(ctx context.Context, scope types.Scope) ([]types.EventRecord, error) {
	ids, err := s.machineIDs(ctx, scope)
	if err != nil {
		return nil, err
	}
	rows, err := s.pool.Query(ctx, `
		SELECT ts, machine_id, state, duration_s, COALESCE(reason_code, '')
		FROM events
		WHERE $1::text[] IS NULL OR machine_id = ANY($1)
		ORDER BY ts
	`, ids)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var records []types.EventRecord
	for rows.Next() {
		var r types.EventRecord
		var state string
		if err := rows.Scan(&r.TS, &r.MachineID, &state, &r.DurationS, &r.ReasonCode); err != nil {
			return nil, err
		}
		r.State = types.MachineState(state)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return store.FilterEvents(records, nil, scope), nil
}

func (s *Store) Energy(ctx context.Context, scope types.Scope) ([]types.EnergyRecord, error) {
	ids, err := s.machineIDs(ctx, scope)
	if err != nil {
		return nil, err
	}
	rows, err := s.pool.Query(ctx, `
		SELECT ts, machine_id, kwh_interval, kw
		FROM energy
		WHERE $1::text[] IS NULL OR machine_id = ANY($1)
		ORDER BY ts
	`, ids)
	if err != nil {
		return nil, fmt.Errorf("query energy: %w", err)
	}
	defer rows.Close()

	var records []types.EnergyRecord
	for rows.Next() {
		var r types.EnergyRecord
		if err := rows.Scan(&r.TS, &r.MachineID, &r.KWhInterval, &r.KW); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return store.FilterEnergy(records, nil, scope), nil
}

func (s *Store) Orders(ctx context.Context) ([]types.Order, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT order_id, sku, planned_qty, start_ts, due_ts, priority
		FROM orders
		ORDER BY due_ts
	`)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	var orders []types.Order
	for rows.Next() {
		var o types.Order
		if err := rows.Scan(&o.OrderID, &o.SKU, &o.PlannedQty, &o.StartTS, &o.DueTS, &o.Priority); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (s *Store) OrderSteps(ctx context.Context) ([]types.OrderStep, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT order_id, step_no, machine_id, planned_start_ts, planned_end_ts,
			actual_start_ts, actual_end_ts, status
		FROM order_steps
		ORDER BY order_id, step_no
	`)
	if err != nil {
		return nil, fmt.Errorf("query order steps: %w", err)
	}
	defer rows.Close()

	var steps []types.OrderStep
	for rows.Next() {
		var st types.OrderStep
		var status string
		if err := rows.Scan(&st.OrderID, &st.StepNo, &st.MachineID, &st.PlannedStartTS,
			&st.PlannedEndTS, &st.ActualStartTS, &st.ActualEndTS, &status); err != nil {
			return nil, err
		}
		st.Status = types.StepStatus(status)
		steps = append(steps, st)
	}
	return steps, rows.Err()
}

func (s *Store) RiskScores(ctx context.Context, scope types.Scope) ([]types.RiskScore, error) {
	ids, err := s.machineIDs(ctx, scope)
	if err != nil {
		return nil, err
	}
	rows, err := s.pool.Query(ctx, `
		SELECT date, machine_id, probability, at_risk, model_id, scored_at
		FROM risk_scores
		WHERE ($1::text[] IS NULL OR machine_id = ANY($1))
			AND ($2::text IS NULL OR date >= $2)
			AND ($3::text IS NULL OR date <= $3)
		ORDER BY date, machine_id
	`, ids, nullable(scope.DateFrom), nullable(scope.DateTo))
	if err != nil {
		return nil, fmt.Errorf("query risk scores: %w", err)
	}
	defer rows.Close()

	var scores []types.RiskScore
	for rows.Next() {
		var sc types.RiskScore
		if err := rows.Scan(&sc.Date, &sc.MachineID, &sc.Probability, &sc.AtRisk, &sc.ModelID, &sc.ScoredAt); err != nil {
			return nil, err
		}
		scores = append(scores, sc)
	}
	return scores, rows.Err()
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
