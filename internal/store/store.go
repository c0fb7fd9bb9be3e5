// Package store defines the storage backend interface for plantpulse raw
// plant data and persisted risk scores.
package store

import (
	"context"

	"github.com/plantmetrics/plantpulse/pkg/types"
)

// Provider names accepted by the config `provider` field.
const (
	ProviderMemory   = "memory"
	ProviderSQLite   = "sqlite"
	ProviderPostgres = "postgres"
)

// Store is the storage backend interface. The memory backend serves tests
// and demos; sqlite is the single-site embedded default; postgres serves
// multi-line deployments.
type Store interface {
	// Raw plant tables, filtered by scope where the table carries a
	// timestamp or machine identity.
	Machines(ctx context.Context, scope types.Scope) ([]types.Machine, error)
	Production(ctx context.Context, scope types.Scope) ([]types.ProductionRecord, error)
	Events(ctx context.Context, scope types.Scope) ([]types.EventRecord, error)
	Energy(ctx context.Context, scope types.Scope) ([]types.EnergyRecord, error)

	// Order book. Orders are plant-wide and not scoped.
	Orders(ctx context.Context) ([]types.Order, error)
	OrderSteps(ctx context.Context) ([]types.OrderStep, error)

	// Risk score persistence for the scoring pipeline.
	SaveRiskScores(ctx context.Context, scores []types.RiskScore) error
	RiskScores(ctx context.Context, scope types.Scope) ([]types.RiskScore, error)

	// Seed replaces the raw plant tables with the snapshot contents.
	Seed(ctx context.Context, snap Snapshot) error

	// Lifecycle
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	Ping(ctx context.Context) error
}

// Snapshot bundles a full set of raw plant tables for seeding.
type Snapshot struct {
	Machines   []types.Machine          `json:"machines"`
	Production []types.ProductionRecord `json:"production"`
	Events     []types.EventRecord      `json:"events"`
	Energy     []types.EnergyRecord     `json:"energy"`
	Orders     []types.Order            `json:"orders"`
	OrderSteps []types.OrderStep        `json:"orderSteps"`
}
