package commands

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// NewOEECmd creates the oee command.
func NewOEECmd() *cobra.Command {
	var flags scopeFlags

	cmd := &cobra.Command{
		Use:   "oee",
		Short: "Report daily per-machine OEE",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOEE(&flags)
		},
	}

	flags.register(cmd)
	return cmd
}

func runOEE(flags *scopeFlags) error {
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

	rows, err := eng.OEE(ctx, scope)
	if err != nil {
		return fmt.Errorf("computing OEE: %w", err)
	}
	if len(rows) == 0 {
		color.Yellow("No production data in scope")
		return nil
	}

	bold := color.New(color.Bold)
	_, _ = bold.Printf("%-12s %-10s %6s %6s %6s %6s\n", "DATE", "MACHINE", "AVAIL", "PERF", "QUAL", "OEE")
	for _, r := range rows {
		oeeStr := fmt.Sprintf("%6.3f", r.OEE)
		switch {
		case r.OEE >= 0.85:
			oeeStr = color.GreenString(oeeStr)
		case r.OEE < 0.60:
			oeeStr = color.RedString(oeeStr)
		}
		fmt.Printf("%-12s %-10s %6.3f %6.3f %6.3f %s\n",
			r.Date, r.MachineID, r.Availability, r.Performance, r.Quality, oeeStr)
	}
	return nil
}
