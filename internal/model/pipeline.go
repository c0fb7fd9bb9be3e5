package model

import (
	"math"

	"github.com/plantmetrics/plantpulse/internal/stats"
	"github.com/plantmetrics/plantpulse/pkg/types"
)

// Pipeline is a fitted preprocessing + classifier chain. Exactly one of
// LogReg/Forest is set, according to Type. The struct is JSON-serializable;
// its layout is an implementation detail of persistence, not a contract.
type Pipeline struct {
	Type    types.ModelType `json:"type"`
	Columns []string        `json:"columns,omitempty"`
	Imputer *medianImputer  `json:"imputer"`
	Scaler  *standardScaler `json:"scaler,omitempty"`
	LogReg  *logregModel    `json:"logreg,omitempty"`
	Forest  *forestModel    `json:"forest,omitempty"`
}

// PredictProba returns the probability of the positive (failure) class for
// one feature vector in FeatureCols order.
func (p *Pipeline) PredictProba(x []float64) float64 {
	row := p.Imputer.transformRow(x)
	switch p.Type {
	case types.ModelForest:
		return p.Forest.predictProba(row)
	default:
		return p.LogReg.predictProba(p.Scaler.transformRow(row))
	}
}

// medianImputer replaces NaN values with the per-column training median.
type medianImputer struct {
	Medians []float64 `json:"medians"`
}

func fitImputer(x [][]float64) *medianImputer {
	if len(x) == 0 {
		return &medianImputer{}
	}
	nCols := len(x[0])
	medians := make([]float64, nCols)
	col := make([]float64, 0, len(x))
	for j := 0; j < nCols; j++ {
		col = col[:0]
		for _, row := range x {
			col = append(col, row[j])
		}
		m := stats.MedianSkipNaN(col)
		if math.IsNaN(m) {
			m = 0
		}
		medians[j] = m
	}
	return &medianImputer{Medians: medians}
}

func (m *medianImputer) transformRow(x []float64) []float64 {
	out := make([]float64, len(x))
	for j, v := range x {
		if math.IsNaN(v) && j < len(m.Medians) {
			v = m.Medians[j]
		}
		out[j] = v
	}
	return out
}

func (m *medianImputer) transform(x [][]float64) [][]float64 {
	out := make([][]float64, len(x))
	for i, row := range x {
		out[i] = m.transformRow(row)
	}
	return out
}

// standardScaler centers and scales each column by its training mean and
// standard deviation. Zero-variance columns pass through unscaled.
type standardScaler struct {
	Means []float64 `json:"means"`
	Stds  []float64 `json:"stds"`
}

func fitScaler(x [][]float64) *standardScaler {
	if len(x) == 0 {
		return &standardScaler{}
	}
	nCols := len(x[0])
	s := &standardScaler{
		Means: make([]float64, nCols),
		Stds:  make([]float64, nCols),
	}
	col := make([]float64, 0, len(x))
	for j := 0; j < nCols; j++ {
		col = col[:0]
		for _, row := range x {
			col = append(col, row[j])
		}
		s.Means[j] = stats.Mean(col)
		std := stats.SampleStdDev(col)
		if std == 0 {
			std = 1
		}
		s.Stds[j] = std
	}
	return s
}

func (s *standardScaler) transformRow(x []float64) []float64 {
	out := make([]float64, len(x))
	for j, v := range x {
		if j < len(s.Means) {
			v = (v - s.Means[j]) / s.Stds[j]
		}
		out[j] = v
	}
	return out
}

func (s *standardScaler) transform(x [][]float64) [][]float64 {
	out := make([][]float64, len(x))
	for i, row := range x {
		out[i] = s.transformRow(row)
	}
	return out
}
