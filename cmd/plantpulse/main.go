package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/plantmetrics/plantpulse/internal/commands"
)

var version = "dev"

func main() {
	root := &cobra.Command{
		Use:   "plantpulse",
		Short: "Manufacturing performance metrics and predictive maintenance",
		Long: `Plantpulse turns raw shop-floor records into operational insight.
It computes daily OEE from production and machine-state events, ranks downtime
reasons, engineers rolling maintenance features, trains and scores a failure
risk model, and rolls the results up into Industry 4.0 composite scores.`,
		Version: version,
	}

	root.AddCommand(
		commands.NewInitCmd(),
		commands.NewSeedCmd(),
		commands.NewOEECmd(),
		commands.NewParetoCmd(),
		commands.NewFeaturesCmd(),
		commands.NewTrainCmd(),
		commands.NewScoreCmd(),
		commands.NewInsightsCmd(),
		commands.NewOrdersCmd(),
		commands.NewServeCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
