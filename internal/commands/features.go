package commands

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// NewFeaturesCmd creates the features command.
func NewFeaturesCmd() *cobra.Command {
	var flags scopeFlags

	cmd := &cobra.Command{
		Use:   "features",
		Short: "Show the daily maintenance feature table",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFeatures(&flags)
		},
	}

	flags.register(cmd)
	return cmd
}

func runFeatures(flags *scopeFlags) error {
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

	rows, err := eng.Features(ctx, scope)
	if err != nil {
		return fmt.Errorf("building features: %w", err)
	}
	if len(rows) == 0 {
		color.Yellow("No data in scope")
		return nil
	}

	bold := color.New(color.Bold)
	_, _ = bold.Printf("%-12s %-10s %6s %6s %6s %6s %8s %7s\n",
		"DATE", "MACHINE", "TOTAL", "SCRAP%", "DOWN%", "EVENTS", "KWH", "DOWN-R7")
	for _, r := range rows {
		downPct := fmt.Sprintf("%5.1f%%", r.DowntimeRatio*100)
		if r.DowntimeRatio > 0.25 {
			downPct = color.RedString(downPct)
		}
		fmt.Printf("%-12s %-10s %6d %5.1f%% %s %6d %8.1f %7.3f\n",
			r.Date, r.MachineID, r.TotalCount, r.ScrapRate*100, downPct,
			r.DownEvents, r.KWh, r.DowntimeRatioR7)
	}
	return nil
}
