// Package sqlite implements the plantpulse store on an embedded SQLite
// database via GORM. It is the default backend for single-site deployments.
package sqlite

import (
	"context"
	"fmt"
	"sort"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/plantmetrics/plantpulse/internal/store"
	"github.com/plantmetrics/plantpulse/pkg/types"
)

// Store is a SQLite-backed plantpulse store.
type Store struct {
	db *gorm.DB
}

// New opens (or creates) the database file and migrates the schema.
func New(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("sqlite open %s: %w", path, err)
	}
	if err := db.AutoMigrate(
		&machineRow{}, &productionRow{}, &eventRow{}, &energyRow{},
		&orderRow{}, &orderStepRow{}, &riskScoreRow{},
	); err != nil {
		return nil, fmt.Errorf("sqlite migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// Seed replaces every raw table with the snapshot contents in one
// transaction. Persisted risk scores survive a reseed.
func (s *Store) Seed(ctx context.Context, snap store.Snapshot) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{
			&machineRow{}, &productionRow{}, &eventRow{}, &energyRow{},
			&orderRow{}, &orderStepRow{},
		} {
			if err := tx.Where("1 = 1").Delete(model).Error; err != nil {
				return err
			}
		}
		return insertSnapshot(tx, snap)
	})
}

func insertSnapshot(tx *gorm.DB, snap store.Snapshot) error {
	for _, m := range snap.Machines {
		if err := tx.Create(ptr(fromMachine(m))).Error; err != nil {
			return fmt.Errorf("seed machines: %w", err)
		}
	}
	for _, p := range snap.Production {
		if err := tx.Create(ptr(fromProduction(p))).Error; err != nil {
			return fmt.Errorf("seed production: %w", err)
		}
	}
	for _, e := range snap.Events {
		if err := tx.Create(ptr(fromEvent(e))).Error; err != nil {
			return fmt.Errorf("seed events: %w", err)
		}
	}
	for _, e := range snap.Energy {
		if err := tx.Create(ptr(fromEnergy(e))).Error; err != nil {
			return fmt.Errorf("seed energy: %w", err)
		}
	}
	for _, o := range snap.Orders {
		if err := tx.Create(ptr(fromOrder(o))).Error; err != nil {
			return fmt.Errorf("seed orders: %w", err)
		}
	}
	for _, st := range snap.OrderSteps {
		if err := tx.Create(ptr(fromOrderStep(st))).Error; err != nil {
			return fmt.Errorf("seed order steps: %w", err)
		}
	}
	return nil
}

func ptr[T any](v T) *T { return &v }

func (s *Store) Machines(ctx context.Context, scope types.Scope) ([]types.Machine, error) {
	var rows []machineRow
	if err := s.db.WithContext(ctx).Order("machine_id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("query machines: %w", err)
	}
	machines := make([]types.Machine, 0, len(rows))
	for _, r := range rows {
		machines = append(machines, toMachine(r))
	}
	return store.FilterMachines(machines, scope), nil
}

// machineSet resolves the scope's admitted machine IDs against the machines
// table. Shift and exact date filtering happen in Go, on top of a coarse
// machine restriction pushed into SQL.
func (s *Store) machineSet(ctx context.Context, scope types.Scope) (map[string]bool, error) {
	if scope.Line == "" && scope.MachineID == "" {
		return nil, nil
	}
	var rows []machineRow
	if err := s.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("query machines: %w", err)
	}
	machines := make([]types.Machine, 0, len(rows))
	for _, r := range rows {
		machines = append(machines, toMachine(r))
	}
	return store.MachineSet(machines, scope), nil
}

func scopedQuery(db *gorm.DB, set map[string]bool) *gorm.DB {
	if set == nil {
		return db
	}
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return db.Where("machine_id IN ?", ids)
}

func (s *Store) Production(ctx context.Context, scope types.Scope) ([]types.ProductionRecord, error) {
	set, err := s.machineSet(ctx, scope)
	if err != nil {
		return nil, err
	}
	var rows []productionRow
	if err := scopedQuery(s.db.WithContext(ctx).Order("ts"), set).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("query production: %w", err)
	}
	records := make([]types.ProductionRecord, 0, len(rows))
	for _, r := range rows {
		records = append(records, toProduction(r))
	}
	return store.FilterProduction(records, nil, scope), nil
}

func (s *Store) Events(ctx context.Context, scope types.Scope) ([]types.EventRecord, error) {
	set, err := s.machineSet(ctx, scope)
	if err != nil {
		return nil, err
	}
	var rows []eventRow
	if err := scopedQuery(s.db.WithContext(ctx).Order("ts"), set).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	records := make([]types.EventRecord, 0, len(rows))
	for _, r := range rows {
		records = append(records, toEvent(r))
	}
	return store.FilterEvents(records, nil, scope), nil
}

func (s *Store) Energy(ctx context.Context, scope types.Scope) ([]types.EnergyRecord, error) {
	set, err := s.machineSet(ctx, scope)
	if err != nil {
		return nil, err
	}
	var rows []energyRow
	if err := scopedQuery(s.db.WithContext(ctx).Order("ts"), set).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("query energy: %w", err)
	}
	records := make([]types.EnergyRecord, 0, len(rows))
	for _, r := range rows {
		records = append(records, toEnergy(r))
	}
	return store.FilterEnergy(records, nil, scope), nil
}

func (s *Store) Orders(ctx context.Context) ([]types.Order, error) {
	var rows []orderRow
	if err := s.db.WithContext(ctx).Order("due_ts").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	orders := make([]types.Order, 0, len(rows))
	for _, r := range rows {
		orders = append(orders, toOrder(r))
	}
	return orders, nil
}

func (s *Store) OrderSteps(ctx context.Context) ([]types.OrderStep, error) {
	var rows []orderStepRow
	if err := s.db.WithContext(ctx).Order("order_id, step_no").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("query order steps: %w", err)
	}
	steps := make([]types.OrderStep, 0, len(rows))
	for _, r := range rows {
		steps = append(steps, toOrderStep(r))
	}
	return steps, nil
}

func (s *Store) SaveRiskScores(ctx context.Context, scores []types.RiskScore) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, sc := range scores {
			row := fromRiskScore(sc)
			if err := tx.Save(&row).Error; err != nil {
				return fmt.Errorf("save risk score %s/%s: %w", sc.Date, sc.MachineID, err)
			}
		}
		return nil
	})
}

func (s *Store) RiskScores(ctx context.Context, scope types.Scope) ([]types.RiskScore, error) {
	set, err := s.machineSet(ctx, scope)
	if err != nil {
		return nil, err
	}
	q := s.db.WithContext(ctx).Order("date, machine_id")
	if scope.DateFrom != "" {
		q = q.Where("date >= ?", scope.DateFrom)
	}
	if scope.DateTo != "" {
		q = q.Where("date <= ?", scope.DateTo)
	}
	var rows []riskScoreRow
	if err := scopedQuery(q, set).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("query risk scores: %w", err)
	}
	scores := make([]types.RiskScore, 0, len(rows))
	for _, r := range rows {
		scores = append(scores, toRiskScore(r))
	}
	return scores, nil
}

func (s *Store) Start(context.Context) error { return nil }

func (s *Store) Stop(context.Context) error {
	db, err := s.db.DB()
	if err != nil {
		return err
	}
	return db.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	db, err := s.db.DB()
	if err != nil {
		return err
	}
	return db.PingContext(ctx)
}
