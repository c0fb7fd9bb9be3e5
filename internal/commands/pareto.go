package commands

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/plantmetrics/plantpulse/pkg/types"
)

// NewParetoCmd creates the pareto command.
func NewParetoCmd() *cobra.Command {
	var flags scopeFlags

	cmd := &cobra.Command{
		Use:   "pareto",
		Short: "Rank downtime reasons by lost time",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPareto(&flags)
		},
	}

	flags.register(cmd)
	return cmd
}

func runPareto(flags *scopeFlags) error {
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

	rows, err := eng.Pareto(ctx, scope)
	if err != nil {
		return fmt.Errorf("computing pareto: %w", err)
	}
	if len(rows) == 0 {
		color.Yellow("No downtime events in scope")
		return nil
	}

	bold := color.New(color.Bold)
	_, _ = bold.Printf("%-20s %12s %7s %7s\n", "REASON", "DOWNTIME(h)", "PCT", "CUM")
	for _, r := range rows {
		reason := r.ReasonCode
		if reason == types.ReasonBreakdown {
			reason = color.RedString(reason)
		}
		fmt.Printf("%-20s %12.1f %6.1f%% %6.1f%%\n", reason, r.DowntimeS/3600, r.Pct*100, r.CumPct*100)
	}
	return nil
}
