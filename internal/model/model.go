// Package model trains and scores the binary maintenance-risk classifier on
// engineered daily features.
package model

import (
	"errors"
	"fmt"
	"math"

	"github.com/plantmetrics/plantpulse/pkg/types"
)

// FeatureCols is the fixed feature-column contract the model consumes. Any
// scoring or training input must supply exactly these columns.
var FeatureCols = []string{
	"total_count", "good_count", "scrap_count", "avg_cycle_time_s", "std_cycle_time_s", "scrap_rate",
	"kwh", "avg_kw", "max_kw", "kwh_per_good",
	"downtime_ratio", "down_events", "RUN", "DOWN", "IDLE",
	"avg_cycle_time_s_r3", "avg_cycle_time_s_r7",
	"downtime_ratio_r3", "downtime_ratio_r7",
	"down_events_r3", "down_events_r7",
	"kwh_per_good_r3", "kwh_per_good_r7",
	"max_kw_r3", "max_kw_r7",
}

// ErrNotConfigured is returned by the unavailable trainer stub when model
// support has not been enabled.
var ErrNotConfigured = errors.New("model support not configured")

// Trainer is the capability boundary for model training. The composition
// layer selects either the production trainer or the Unavailable stub; call
// sites never branch on availability flags.
type Trainer interface {
	Train(ds *Dataset, modelType types.ModelType) (*Pipeline, types.TrainMetrics, error)
}

// NewTrainer returns the production trainer.
func NewTrainer() Trainer { return trainer{} }

// Unavailable is a Trainer stub that reports model support as not configured.
type Unavailable struct{}

// Train always fails with ErrNotConfigured.
func (Unavailable) Train(*Dataset, types.ModelType) (*Pipeline, types.TrainMetrics, error) {
	return nil, types.TrainMetrics{}, ErrNotConfigured
}

// Dataset is a feature matrix with labels, rows aligned with Keys.
type Dataset struct {
	X    [][]float64
	Y    []int
	Keys []types.FailureLabel // date/machine per row, label mirrored in Y
}

// BuildDataset joins feature rows with failure labels into a training set.
// Feature rows with no matching label default to label 0.
func BuildDataset(rows []types.FeatureRow, labels []types.FailureLabel) (*Dataset, error) {
	type key struct{ date, machine string }
	labelFor := make(map[key]int, len(labels))
	for _, l := range labels {
		labelFor[key{l.Date, l.MachineID}] = l.Label
	}

	ds := &Dataset{
		X:    make([][]float64, 0, len(rows)),
		Y:    make([]int, 0, len(rows)),
		Keys: make([]types.FailureLabel, 0, len(rows)),
	}
	for _, row := range rows {
		vec, err := Vector(row)
		if err != nil {
			return nil, err
		}
		y := labelFor[key{row.Date, row.MachineID}]
		ds.X = append(ds.X, vec)
		ds.Y = append(ds.Y, y)
		ds.Keys = append(ds.Keys, types.FailureLabel{Date: row.Date, MachineID: row.MachineID, Label: y})
	}
	return ds, nil
}

// Vector projects a feature row onto the FeatureCols contract. A column
// missing from the row is a configuration error, not something to impute:
// only statistically missing values within a present column are imputed.
func Vector(row types.FeatureRow) ([]float64, error) {
	feats := row.Features()
	vec := make([]float64, len(FeatureCols))
	for i, col := range FeatureCols {
		v, ok := feats[col]
		if !ok {
			return nil, fmt.Errorf("feature column %q missing from input row", col)
		}
		vec[i] = v
	}
	return vec, nil
}

type trainer struct{}

// Train fits the requested variant on a 75/25 split and evaluates it on the
// held-out rows at a 0.5 probability threshold. When the test split contains
// a single class, the metrics are nil rather than computed, and the fitted
// pipeline is still returned.
func (trainer) Train(ds *Dataset, modelType types.ModelType) (*Pipeline, types.TrainMetrics, error) {
	if ds == nil || len(ds.X) == 0 {
		return nil, types.TrainMetrics{}, fmt.Errorf("empty training set")
	}

	trainIdx, testIdx := split(ds.Y, testFraction, seed)
	xTrain, yTrain := subset(ds, trainIdx)
	xTest, yTest := subset(ds, testIdx)

	pipe, err := fit(xTrain, yTrain, modelType)
	if err != nil {
		return nil, types.TrainMetrics{}, err
	}

	metrics := types.TrainMetrics{}
	if bothClasses(yTest) {
		proba := make([]float64, len(xTest))
		for i, x := range xTest {
			proba[i] = pipe.PredictProba(x)
		}
		roc := rocAUC(yTest, proba)
		pr := prAUC(yTest, proba)
		f := f1Score(yTest, proba, 0.5)
		metrics.ROCAUC = &roc
		metrics.PRAUC = &pr
		metrics.F1 = &f
	}
	return pipe, metrics, nil
}

func subset(ds *Dataset, idx []int) ([][]float64, []int) {
	x := make([][]float64, len(idx))
	y := make([]int, len(idx))
	for i, j := range idx {
		x[i] = ds.X[j]
		y[i] = ds.Y[j]
	}
	return x, y
}

func bothClasses(y []int) bool {
	if len(y) == 0 {
		return false
	}
	first := y[0]
	for _, v := range y[1:] {
		if v != first {
			return true
		}
	}
	return false
}

func fit(x [][]float64, y []int, modelType types.ModelType) (*Pipeline, error) {
	imputer := fitImputer(x)
	x = imputer.transform(x)

	switch modelType {
	case types.ModelForest:
		forest := fitForest(x, y, forestParams{
			Trees:          300,
			MaxDepth:       8,
			MinSamplesLeaf: 3,
		})
		return &Pipeline{Type: types.ModelForest, Imputer: imputer, Forest: forest}, nil
	case types.ModelLogReg, "":
		scaler := fitScaler(x)
		logreg := fitLogReg(scaler.transform(x), y, logregParams{
			LearningRate: 0.1,
			Epochs:       2000,
		})
		return &Pipeline{Type: types.ModelLogReg, Imputer: imputer, Scaler: scaler, LogReg: logreg}, nil
	default:
		return nil, fmt.Errorf("unknown model type %q", modelType)
	}
}

// sigmoid is shared by the logistic model and kept overflow-safe.
func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}
