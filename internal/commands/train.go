package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/plantmetrics/plantpulse/internal/config"
	"github.com/plantmetrics/plantpulse/internal/model"
)

// NewTrainCmd creates the train command.
func NewTrainCmd() *cobra.Command {
	var flags scopeFlags

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train the failure-risk model and persist the artifact",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrain(&flags)
		},
	}

	flags.register(cmd)
	return cmd
}

func runTrain(flags *scopeFlags) error {
	ctx := context.Background()

	eng, st, cfg, err := buildEngine(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = st.Stop(ctx) }()

	scope, err := flags.merge(cfg.Scope)
	if err != nil {
		return err
	}

	result, err := eng.Train(ctx, scope)
	if err != nil {
		if errors.Is(err, model.ErrNotConfigured) {
			return fmt.Errorf("model training is not enabled; set model.enabled in %s", config.FileName)
		}
		return fmt.Errorf("training model: %w", err)
	}

	bold := color.New(color.Bold)
	_, _ = bold.Printf("Trained %s model %s\n", result.ModelType, result.RunID)
	fmt.Printf("  Rows:      %d train / %d test\n", result.TrainRows, result.TestRows)
	printMetric("ROC-AUC", result.Metrics.ROCAUC)
	printMetric("PR-AUC", result.Metrics.PRAUC)
	printMetric("F1@0.5", result.Metrics.F1)
	fmt.Printf("  Artifact:  %s\n", cfg.Model.ArtifactPath())
	return nil
}

func printMetric(name string, v *float64) {
	if v == nil {
		color.Yellow("  %-9s n/a (single-class test split)", name+":")
		return
	}
	fmt.Printf("  %-9s %.3f\n", name+":", *v)
}
