package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/plantmetrics/plantpulse/internal/config"
	"github.com/plantmetrics/plantpulse/internal/demo"
	"github.com/plantmetrics/plantpulse/internal/store/sqlite"
)

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	var days int
	var seed int64
	var skipSeed bool

	cmd := &cobra.Command{
		Use:   "init [project-name]",
		Short: "Initialize a new plantpulse project",
		Long:  "Creates project scaffolding with a starter config and a seeded demo plant database.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(args[0], days, seed, skipSeed)
		},
	}

	cmd.Flags().IntVar(&days, "days", 30, "Days of demo history to generate")
	cmd.Flags().Int64Var(&seed, "seed", 42, "Random seed for the demo generator")
	cmd.Flags().BoolVar(&skipSeed, "skip-seed", false, "Skip generating demo plant data")
	return cmd
}

func runInit(projectName string, days int, seed int64, skipSeed bool) error {
	bold := color.New(color.Bold)

	_, _ = bold.Printf("Initializing plantpulse project: %s\n", projectName)

	if err := os.MkdirAll(filepath.Join(projectName, "data"), 0o755); err != nil {
		return fmt.Errorf("creating project directory: %w", err)
	}

	configPath, err := config.WriteDefault(projectName)
	if err != nil {
		return err
	}
	color.Green("  ✓ Wrote %s", configPath)

	if skipSeed {
		color.Yellow("  → Demo data skipped (--skip-seed)")
	} else {
		if err := seedDemo(filepath.Join(projectName, "data", "plant.db"), days, seed); err != nil {
			return fmt.Errorf("seeding demo data: %w", err)
		}
		color.Green("  ✓ Seeded %d days of demo plant data", days)
	}

	fmt.Println()
	_, _ = bold.Println("Next steps:")
	fmt.Printf("  cd %s\n", projectName)
	fmt.Println("  plantpulse oee")
	fmt.Println("  plantpulse train && plantpulse score")
	fmt.Println("  plantpulse serve")
	return nil
}

// seedDemo generates the synthetic plant and loads it into a fresh SQLite
// database at path. The starter config points at the same path.
func seedDemo(path string, days int, seed int64) error {
	st, err := sqlite.New(path)
	if err != nil {
		return err
	}
	ctx := context.Background()
	defer func() { _ = st.Stop(ctx) }()

	return st.Seed(ctx, demo.Generate(days, seed, time.Now()))
}
