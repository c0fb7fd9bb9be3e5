// Package engine composes the store, metric computations and the maintenance
// model into the operations exposed by the CLI and the HTTP API.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/plantmetrics/plantpulse/internal/alert"
	"github.com/plantmetrics/plantpulse/internal/features"
	"github.com/plantmetrics/plantpulse/internal/metrics"
	"github.com/plantmetrics/plantpulse/internal/model"
	"github.com/plantmetrics/plantpulse/internal/oee"
	"github.com/plantmetrics/plantpulse/internal/orders"
	"github.com/plantmetrics/plantpulse/internal/store"
	"github.com/plantmetrics/plantpulse/pkg/types"
)

// Engine is the core computation engine. It loads raw plant data under a
// scope, runs the metric pipelines and persists model artifacts and risk
// scores.
type Engine struct {
	store      store.Store
	trainer    model.Trainer
	dispatcher *alert.Dispatcher
	cfg        *types.ProjectConfig
	logger     *slog.Logger
}

// New creates a new Engine. A nil trainer disables training and scoring; a
// nil dispatcher disables alerting.
func New(st store.Store, trainer model.Trainer, dispatcher *alert.Dispatcher, cfg *types.ProjectConfig, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	if trainer == nil {
		trainer = model.Unavailable{}
	}
	if cfg == nil {
		cfg = &types.ProjectConfig{}
	}
	return &Engine{
		store:      st,
		trainer:    trainer,
		dispatcher: dispatcher,
		cfg:        cfg,
		logger:     logger,
	}
}

// Alerts exposes the engine's alert dispatcher. May be nil.
func (e *Engine) Alerts() *alert.Dispatcher { return e.dispatcher }

// plantData is one scope-filtered load of the raw tables.
type plantData struct {
	machines   []types.Machine
	production []types.ProductionRecord
	events     []types.EventRecord
	energy     []types.EnergyRecord
}

// loadPlant loads the four machine-keyed tables concurrently.
func (e *Engine) loadPlant(ctx context.Context, scope types.Scope) (*plantData, error) {
	var data plantData
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		data.machines, err = e.store.Machines(gctx, scope)
		return err
	})
	g.Go(func() error {
		var err error
		data.production, err = e.store.Production(gctx, scope)
		return err
	})
	g.Go(func() error {
		var err error
		data.events, err = e.store.Events(gctx, scope)
		return err
	})
	g.Go(func() error {
		var err error
		data.energy, err = e.store.Energy(gctx, scope)
		return err
	})

	if err := g.Wait(); err != nil {
		metrics.StoreQueryErrors.Add(1)
		return nil, fmt.Errorf("loading plant data: %w", err)
	}
	return &data, nil
}

// OEE computes daily per-machine OEE rows for the scope.
func (e *Engine) OEE(ctx context.Context, scope types.Scope) ([]types.DailyOEE, error) {
	data, err := e.loadPlant(ctx, scope)
	if err != nil {
		return nil, err
	}
	metrics.OEEComputationsTotal.Add(1)
	return oee.ComputeOEE(data.production, data.events), nil
}

// Pareto ranks downtime reasons by lost time for the scope.
func (e *Engine) Pareto(ctx context.Context, scope types.Scope) ([]types.ParetoRow, error) {
	events, err := e.store.Events(ctx, scope)
	if err != nil {
		metrics.StoreQueryErrors.Add(1)
		return nil, fmt.Errorf("loading events: %w", err)
	}
	return oee.DowntimePareto(events), nil
}

// Features builds the daily maintenance feature table for the scope.
func (e *Engine) Features(ctx context.Context, scope types.Scope) ([]types.FeatureRow, error) {
	data, err := e.loadPlant(ctx, scope)
	if err != nil {
		return nil, err
	}
	metrics.FeatureBuildsTotal.Add(1)
	return features.BuildMaintenanceFeatures(data.production, data.events, data.energy), nil
}

// Train builds features and labels for the scope, trains the configured
// model and persists the artifact. The returned result carries the held-out
// metrics.
func (e *Engine) Train(ctx context.Context, scope types.Scope) (*types.TrainingResult, error) {
	data, err := e.loadPlant(ctx, scope)
	if err != nil {
		return nil, err
	}

	rows := features.BuildMaintenanceFeatures(data.production, data.events, data.energy)
	labels := features.BuildFailureLabels(data.events, e.cfg.Model.Horizon())

	ds, err := model.BuildDataset(rows, labels)
	if err != nil {
		metrics.TrainingErrors.Add(1)
		return nil, fmt.Errorf("building dataset: %w", err)
	}

	pipe, trainMetrics, err := e.trainer.Train(ds, e.cfg.Model.Variant())
	if err != nil {
		metrics.TrainingErrors.Add(1)
		return nil, fmt.Errorf("training %s model: %w", e.cfg.Model.Variant(), err)
	}

	artifact := model.NewArtifact(pipe, trainMetrics, time.Now())
	path := e.cfg.Model.ArtifactPath()
	if err := model.Save(artifact, path); err != nil {
		metrics.TrainingErrors.Add(1)
		return nil, fmt.Errorf("saving model: %w", err)
	}
	metrics.TrainingsTotal.Add(1)

	nTrain, nTest := model.SplitCounts(ds.Y)
	result := &types.TrainingResult{
		RunID:     artifact.ModelID,
		ModelType: e.cfg.Model.Variant(),
		Metrics:   trainMetrics,
		TrainRows: nTrain,
		TestRows:  nTest,
		TrainedAt: artifact.TrainedAt,
	}
	e.logger.Info("model trained",
		"modelId", artifact.ModelID,
		"type", e.cfg.Model.Variant(),
		"rows", len(ds.Y),
		"path", path)
	return result, nil
}

// ScoreRisk scores the latest feature row of every machine in scope with the
// persisted model, stores the scores and dispatches alerts for machines over
// the risk threshold.
func (e *Engine) ScoreRisk(ctx context.Context, scope types.Scope, now time.Time) ([]types.RiskScore, error) {
	artifact, err := model.Load(e.cfg.Model.ArtifactPath())
	if err != nil {
		metrics.ScoringErrors.Add(1)
		return nil, fmt.Errorf("loading model: %w", err)
	}

	data, err := e.loadPlant(ctx, scope)
	if err != nil {
		return nil, err
	}
	rows := features.BuildMaintenanceFeatures(data.production, data.events, data.energy)
	latest := latestPerMachine(rows)

	threshold := e.cfg.Model.Threshold()
	scores, err := model.Score(artifact, latest, threshold, now)
	if err != nil {
		metrics.ScoringErrors.Add(1)
		return nil, fmt.Errorf("scoring: %w", err)
	}

	if err := e.store.SaveRiskScores(ctx, scores); err != nil {
		metrics.ScoringErrors.Add(1)
		return nil, fmt.Errorf("saving risk scores: %w", err)
	}
	metrics.ScoringsTotal.Add(1)

	var atRisk int64
	for _, sc := range scores {
		if !sc.AtRisk {
			continue
		}
		atRisk++
		if e.dispatcher != nil {
			e.dispatcher.Dispatch(ctx, types.Alert{
				Level:     types.AlertLevelWarning,
				MachineID: sc.MachineID,
				Metric:    "failure_risk",
				Message:   fmt.Sprintf("failure risk %.2f above threshold %.2f", sc.Probability, threshold),
				Details: map[string]interface{}{
					"date":    sc.Date,
					"modelId": sc.ModelID,
				},
				Timestamp: now,
			})
			metrics.AlertsDispatched.Add(1)
		}
	}
	metrics.MachinesAtRisk.Set(atRisk)
	return scores, nil
}

// AtRiskMachines returns the stored risk scores currently over the threshold.
func (e *Engine) AtRiskMachines(ctx context.Context, scope types.Scope) ([]types.RiskScore, error) {
	scores, err := e.store.RiskScores(ctx, scope)
	if err != nil {
		metrics.StoreQueryErrors.Add(1)
		return nil, fmt.Errorf("loading risk scores: %w", err)
	}
	out := make([]types.RiskScore, 0, len(scores))
	for _, sc := range scores {
		if sc.AtRisk {
			out = append(out, sc)
		}
	}
	return out, nil
}

// OrderSchedule rolls up the order book and flags orders whose remaining
// steps route through machines currently scored at risk.
func (e *Engine) OrderSchedule(ctx context.Context, now time.Time) ([]OrderScheduleRow, error) {
	var (
		orderList []types.Order
		steps     []types.OrderStep
		scores    []types.RiskScore
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		orderList, err = e.store.Orders(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		steps, err = e.store.OrderSteps(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		scores, err = e.store.RiskScores(gctx, types.Scope{})
		return err
	})
	if err := g.Wait(); err != nil {
		metrics.StoreQueryErrors.Add(1)
		return nil, fmt.Errorf("loading order book: %w", err)
	}

	riskyMachines := make(map[string]bool)
	for _, sc := range scores {
		if sc.AtRisk {
			riskyMachines[sc.MachineID] = true
		}
	}

	rollups := orders.Rollup(orderList, steps, now)
	stepsByOrder := make(map[string][]types.OrderStep)
	for _, st := range steps {
		stepsByOrder[st.OrderID] = append(stepsByOrder[st.OrderID], st)
	}

	out := make([]OrderScheduleRow, 0, len(rollups))
	for _, r := range rollups {
		row := OrderScheduleRow{OrderRollup: r}
		for _, st := range stepsByOrder[r.OrderID] {
			if st.Status != types.StepCompleted && riskyMachines[st.MachineID] {
				row.AtRiskMachines = append(row.AtRiskMachines, st.MachineID)
			}
		}
		out = append(out, row)
	}
	return out, nil
}

// OrderScheduleRow is an order rollup annotated with the at-risk machines on
// its remaining routing.
type OrderScheduleRow struct {
	types.OrderRollup
	AtRiskMachines []string `json:"atRiskMachines,omitempty"`
}

// latestPerMachine keeps the last dated feature row of each machine. Rows
// arrive date-sorted from the feature builder.
func latestPerMachine(rows []types.FeatureRow) []types.FeatureRow {
	byMachine := make(map[string]types.FeatureRow)
	for _, r := range rows {
		if cur, ok := byMachine[r.MachineID]; !ok || r.Date > cur.Date {
			byMachine[r.MachineID] = r
		}
	}
	out := make([]types.FeatureRow, 0, len(byMachine))
	for _, r := range byMachine {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MachineID < out[j].MachineID })
	return out
}
