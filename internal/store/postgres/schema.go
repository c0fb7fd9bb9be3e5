// Package postgres implements the plantpulse store on PostgreSQL for
// multi-line deployments.
package postgres

const schemaDDL = `
CREATE TABLE IF NOT EXISTS machines (
    machine_id         TEXT PRIMARY KEY,
    line               TEXT NOT NULL,
    ideal_cycle_time_s DOUBLE PRECISION NOT NULL,
    rated_power_kw     DOUBLE PRECISION NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_machines_line ON machines (line);

CREATE TABLE IF NOT EXISTS production (
    id                 BIGSERIAL PRIMARY KEY,
    ts                 TIMESTAMPTZ NOT NULL,
    machine_id         TEXT NOT NULL,
    good_count         INTEGER NOT NULL,
    scrap_count        INTEGER NOT NULL,
    cycle_time_s       DOUBLE PRECISION NOT NULL,
    ideal_cycle_time_s DOUBLE PRECISION NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_production_machine_ts ON production (machine_id, ts);

CREATE TABLE IF NOT EXISTS events (
    id          BIGSERIAL PRIMARY KEY,
    ts          TIMESTAMPTZ NOT NULL,
    machine_id  TEXT NOT NULL,
    state       TEXT NOT NULL,
    duration_s  DOUBLE PRECISION NOT NULL,
    reason_code TEXT
);
CREATE INDEX IF NOT EXISTS idx_events_machine_ts ON events (machine_id, ts);
CREATE INDEX IF NOT EXISTS idx_events_state ON events (state);

CREATE TABLE IF NOT EXISTS energy (
    id           BIGSERIAL PRIMARY KEY,
    ts           TIMESTAMPTZ NOT NULL,
    machine_id   TEXT NOT NULL,
    kwh_interval DOUBLE PRECISION NOT NULL,
    kw           DOUBLE PRECISION NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_energy_machine_ts ON energy (machine_id, ts);

CREATE TABLE IF NOT EXISTS orders (
    order_id    TEXT PRIMARY KEY,
    sku         TEXT NOT NULL,
    planned_qty INTEGER NOT NULL,
    start_ts    TIMESTAMPTZ NOT NULL,
    due_ts      TIMESTAMPTZ NOT NULL,
    priority    INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_orders_due_ts ON orders (due_ts);

CREATE TABLE IF NOT EXISTS order_steps (
    order_id         TEXT NOT NULL,
    step_no          INTEGER NOT NULL,
    machine_id       TEXT NOT NULL,
    planned_start_ts TIMESTAMPTZ NOT NULL,
    planned_end_ts   TIMESTAMPTZ NOT NULL,
    actual_start_ts  TIMESTAMPTZ,
    actual_end_ts    TIMESTAMPTZ,
    status           TEXT NOT NULL,
    PRIMARY KEY (order_id, step_no)
);
CREATE INDEX IF NOT EXISTS idx_order_steps_machine ON order_steps (machine_id);

CREATE TABLE IF NOT EXISTS risk_scores (
    date        TEXT NOT NULL,
    machine_id  TEXT NOT NULL,
    probability DOUBLE PRECISION NOT NULL,
    at_risk     BOOLEAN NOT NULL,
    model_id    TEXT NOT NULL,
    scored_at   TIMESTAMPTZ NOT NULL,
    PRIMARY KEY (date, machine_id)
);
CREATE INDEX IF NOT EXISTS idx_risk_scores_at_risk ON risk_scores (at_risk);
`
