// Package memory implements an in-memory plantpulse store for tests and the
// bundled demo dataset.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/plantmetrics/plantpulse/internal/store"
	"github.com/plantmetrics/plantpulse/pkg/types"
)

// Store holds all tables in process memory. Safe for concurrent use.
type Store struct {
	mu   sync.RWMutex
	snap store.Snapshot
	risk map[string]types.RiskScore // keyed by date|machine
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{risk: make(map[string]types.RiskScore)}
}

// NewWith creates an in-memory store pre-loaded with a snapshot.
func NewWith(snap store.Snapshot) *Store {
	s := New()
	s.snap = snap
	return s
}

func (s *Store) Seed(_ context.Context, snap store.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = snap
	return nil
}

func (s *Store) Machines(_ context.Context, scope types.Scope) ([]types.Machine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return store.FilterMachines(s.snap.Machines, scope), nil
}

func (s *Store) Production(_ context.Context, scope types.Scope) ([]types.ProductionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	set := store.MachineSet(s.snap.Machines, scope)
	return store.FilterProduction(s.snap.Production, set, scope), nil
}

func (s *Store) Events(_ context.Context, scope types.Scope) ([]types.EventRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	set := store.MachineSet(s.snap.Machines, scope)
	return store.FilterEvents(s.snap.Events, set, scope), nil
}

func (s *Store) Energy(_ context.Context, scope types.Scope) ([]types.EnergyRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	set := store.MachineSet(s.snap.Machines, scope)
	return store.FilterEnergy(s.snap.Energy, set, scope), nil
}

func (s *Store) Orders(_ context.Context) ([]types.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.Order, len(s.snap.Orders))
	copy(out, s.snap.Orders)
	return out, nil
}

func (s *Store) OrderSteps(_ context.Context) ([]types.OrderStep, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.OrderStep, len(s.snap.OrderSteps))
	copy(out, s.snap.OrderSteps)
	return out, nil
}

// SaveRiskScores upserts scores keyed by (date, machine). Re-scoring a
// machine-day replaces the previous score.
func (s *Store) SaveRiskScores(_ context.Context, scores []types.RiskScore) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sc := range scores {
		s.risk[sc.Date+"|"+sc.MachineID] = sc
	}
	return nil
}

func (s *Store) RiskScores(_ context.Context, scope types.Scope) ([]types.RiskScore, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	all := make([]types.RiskScore, 0, len(s.risk))
	for _, sc := range s.risk {
		all = append(all, sc)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Date != all[j].Date {
			return all[i].Date < all[j].Date
		}
		return all[i].MachineID < all[j].MachineID
	})
	set := store.MachineSet(s.snap.Machines, scope)
	return store.FilterRiskScores(all, set, scope), nil
}

func (s *Store) Start(context.Context) error { return nil }
func (s *Store) Stop(context.Context) error  { return nil }
func (s *Store) Ping(context.Context) error  { return nil }
