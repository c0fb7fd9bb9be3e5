package model

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/plantmetrics/plantpulse/pkg/types"
)

// Artifact wraps a fitted pipeline with identifying metadata for persistence.
type Artifact struct {
	ModelID   string             `json:"modelId"`
	TrainedAt time.Time          `json:"trainedAt"`
	Metrics   types.TrainMetrics `json:"metrics"`
	Pipeline  *Pipeline          `json:"pipeline"`
}

// NewArtifact assigns a fresh ULID to a fitted pipeline.
func NewArtifact(pipe *Pipeline, metrics types.TrainMetrics, now time.Time) *Artifact {
	entropy := ulid.Monotonic(rand.New(rand.NewSource(now.UnixNano())), 0)
	return &Artifact{
		ModelID:   ulid.MustNew(ulid.Timestamp(now), entropy).String(),
		TrainedAt: now,
		Metrics:   metrics,
		Pipeline:  pipe,
	}
}

// Save writes the artifact to path, creating parent directories as needed.
// The on-disk format is opaque to callers; only the Load round-trip matters.
func Save(a *Artifact, path string) error {
	if a == nil || a.Pipeline == nil {
		return fmt.Errorf("nothing to save: artifact has no fitted pipeline")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating model directory: %w", err)
	}
	data, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("encoding model: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing model: %w", err)
	}
	return nil
}

// Load reads a persisted artifact from path.
func Load(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading model: %w", err)
	}
	var a Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("decoding model: %w", err)
	}
	if a.Pipeline == nil {
		return nil, fmt.Errorf("model file %s has no pipeline", path)
	}
	return &a, nil
}

// Score applies a fitted pipeline to feature rows, thresholding each
// probability into an at-risk flag.
func Score(a *Artifact, rows []types.FeatureRow, threshold float64, now time.Time) ([]types.RiskScore, error) {
	out := make([]types.RiskScore, 0, len(rows))
	for _, row := range rows {
		vec, err := Vector(row)
		if err != nil {
			return nil, err
		}
		p := a.Pipeline.PredictProba(vec)
		out = append(out, types.RiskScore{
			Date:        row.Date,
			MachineID:   row.MachineID,
			Probability: p,
			AtRisk:      p >= threshold,
			ModelID:     a.ModelID,
			ScoredAt:    now,
		})
	}
	return out, nil
}
