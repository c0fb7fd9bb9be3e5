package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/plantmetrics/plantpulse/internal/store"
	"github.com/plantmetrics/plantpulse/pkg/types"
)

// Seed replaces every raw table with the snapshot contents in one
// transaction. Persisted risk scores survive a reseed.
func (s *Store) Seed(ctx context.Context, snap store.Snapshot) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("seed begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
		TRUNCATE machines, production, events, energy, orders, order_steps
	`); err != nil {
		return fmt.Errorf("seed truncate: %w", err)
	}

	batch := &pgx.Batch{}
	for _, m := range snap.Machines {
		batch.Queue(`
			INSERT INTO machines (machine_id, line, ideal_cycle_time_s, rated_power_kw)
			VALUES ($1, $2, $3, $4)
		`, m.MachineID, m.Line, m.IdealCycleTimeS, m.RatedPowerKW)
	}
	for _, p := range snap.Production {
		batch.Queue(`
			INSERT INTO production (ts, machine_id, good_count, scrap_count, cycle_time_s, ideal_cycle_time_s)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, p.TS, p.MachineID, p.GoodCount, p.ScrapCount, p.CycleTimeS, p.IdealCycleTimeS)
	}
	for _, e := range snap.Events {
		batch.Queue(`
			INSERT INTO events (ts, machine_id, state, duration_s, reason_code)
			VALUES ($1, $2, $3, $4, $5)
		`, e.TS, e.MachineID, string(e.State), e.DurationS, e.ReasonCode)
	}
	for _, e := range snap.Energy {
		batch.Queue(`
			INSERT INTO energy (ts, machine_id, kwh_interval, kw)
			VALUES ($1, $2, $3, $4)
		`, e.TS, e.MachineID, e.KWhInterval, e.KW)
	}
	for _, o := range snap.Orders {
		batch.Queue(`
			INSERT INTO orders (order_id, sku, planned_qty, start_ts, due_ts, priority)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, o.OrderID, o.SKU, o.PlannedQty, o.StartTS, o.DueTS, o.Priority)
	}
	for _, st := range snap.OrderSteps {
		batch.Queue(`
			INSERT INTO order_steps (order_id, step_no, machine_id, planned_start_ts, planned_end_ts,
				actual_start_ts, actual_end_ts, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, st.OrderID, st.StepNo, st.MachineID, st.PlannedStartTS, st.PlannedEndTS,
			st.ActualStartTS, st.ActualEndTS, string(st.Status))
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("seed insert: %w", err)
	}
	return tx.Commit(ctx)
}

// SaveRiskScores upserts scores keyed by (date, machine). Re-scoring a
// machine-day replaces the previous score.
func (s *Store) SaveRiskScores(ctx context.Context, scores []types.RiskScore) error {
	batch := &pgx.Batch{}
	for _, sc := range scores {
		batch.Queue(`
			INSERT INTO risk_scores (date, machine_id, probability, at_risk, model_id, scored_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (date, machine_id) DO UPDATE SET
				probability = EXCLUDED.probability,
				at_risk     = EXCLUDED.at_risk,
				model_id    = EXCLUDED.model_id,
				scored_at   = EXCLUDED.scored_at
		`, sc.Date, sc.MachineID, sc.Probability, sc.AtRisk, sc.ModelID, sc.ScoredAt)
	}
	if err := s.pool.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("save risk scores: %w", err)
	}
	return nil
}
