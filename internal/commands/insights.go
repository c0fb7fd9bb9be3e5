package commands

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/plantmetrics/plantpulse/pkg/types"
)

// NewInsightsCmd creates the insights command.
func NewInsightsCmd() *cobra.Command {
	var flags scopeFlags

	cmd := &cobra.Command{
		Use:   "insights",
		Short: "Show Industry 4.0 composite scores for the plant",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInsights(&flags)
		},
	}

	flags.register(cmd)
	return cmd
}

func runInsights(flags *scopeFlags) error {
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

	sum, err := eng.Insights(ctx, scope)
	if err != nil {
		return fmt.Errorf("computing insights: %w", err)
	}

	bold := color.New(color.Bold)
	_, _ = bold.Println("Plant insights")
	fmt.Printf("  Avg OEE:             %.3f\n", sum.AvgOEE)
	fmt.Printf("  Avg scrap rate:      %.3f\n", sum.AvgScrapRate)
	fmt.Printf("  Energy efficiency:   %.3f\n", sum.EnergyEfficiency)
	fmt.Printf("  Total energy:        %.1f kWh\n", sum.TotalEnergyKWh)
	fmt.Printf("  Carbon footprint:    %.1f kg CO2\n", sum.CarbonKgCO2)
	fmt.Printf("  Sustainability:      %.1f\n", sum.Sustainability)
	fmt.Printf("  Smart factory index: %.1f\n", sum.SmartFactoryIndex)
	fmt.Printf("  PM model score:      %.3f\n", sum.PMScore)

	fmt.Println()
	_, _ = bold.Println("Digital twin health")
	healthStr := fmt.Sprintf("%.1f (%s)", sum.TwinHealth.Score, sum.TwinHealth.Level)
	switch sum.TwinHealth.Level {
	case types.RiskLow:
		healthStr = color.GreenString(healthStr)
	case types.RiskHigh:
		healthStr = color.RedString(healthStr)
	default:
		healthStr = color.YellowString(healthStr)
	}
	fmt.Printf("  Health: %s\n", healthStr)

	fmt.Println()
	_, _ = bold.Println("Lean metrics")
	fmt.Printf("  Takt time:        %.1f s\n", sum.Lean.TaktTime)
	fmt.Printf("  Cycle efficiency: %.3f\n", sum.Lean.CycleEfficiency)
	fmt.Printf("  Waste ratio:      %.3f\n", sum.Lean.WasteRatio)

	if len(sum.EnergyAnomalies) > 0 {
		fmt.Println()
		_, _ = bold.Println("Energy anomalies")
		for _, a := range sum.EnergyAnomalies {
			color.Red("  ✗ %-10s %.1f kWh (z=%.2f)", a.MachineID, a.KWh, a.ZScore)
		}
	}
	return nil
}
