package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// NewScoreCmd creates the score command.
func NewScoreCmd() *cobra.Command {
	var flags scopeFlags
	var atRiskOnly bool

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score current failure risk per machine",
		Long:  "Scores the latest feature row of every machine in scope with the persisted model and saves the results.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScore(&flags, atRiskOnly)
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&atRiskOnly, "at-risk", false, "Only show machines above the risk threshold")
	return cmd
}

func runScore(flags *scopeFlags, atRiskOnly bool) error {
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

	scores, err := eng.ScoreRisk(ctx, scope, time.Now())
	if err != nil {
		return fmt.Errorf("scoring risk: %w", err)
	}
	if len(scores) == 0 {
		color.Yellow("No machines in scope")
		return nil
	}

	threshold := cfg.Model.Threshold()
	bold := color.New(color.Bold)
	_, _ = bold.Printf("%-12s %-10s %11s %8s\n", "DATE", "MACHINE", "PROBABILITY", "AT RISK")
	shown := 0
	for _, s := range scores {
		if atRiskOnly && !s.AtRisk {
			continue
		}
		shown++
		riskStr := color.GreenString("no")
		if s.AtRisk {
			riskStr = color.RedString("YES")
		}
		fmt.Printf("%-12s %-10s %11.3f %8s\n", s.Date, s.MachineID, s.Probability, riskStr)
	}
	if atRiskOnly && shown == 0 {
		color.Green("No machines above the %.2f risk threshold", threshold)
	}
	return nil
}
