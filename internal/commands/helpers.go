// Package commands implements the CLI subcommands for the plantpulse binary.
package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/plantmetrics/plantpulse/internal/alert"
	"github.com/plantmetrics/plantpulse/internal/config"
	"github.com/plantmetrics/plantpulse/internal/engine"
	"github.com/plantmetrics/plantpulse/internal/model"
	"github.com/plantmetrics/plantpulse/internal/store"
	"github.com/plantmetrics/plantpulse/internal/store/memory"
	"github.com/plantmetrics/plantpulse/internal/store/postgres"
	"github.com/plantmetrics/plantpulse/internal/store/sqlite"
	"github.com/plantmetrics/plantpulse/pkg/types"
)

// newStore creates the configured storage backend.
func newStore(ctx context.Context, cfg *types.ProjectConfig) (store.Store, error) {
	switch cfg.Provider {
	case store.ProviderMemory:
		return memory.New(), nil
	case store.ProviderSQLite:
		if cfg.SQLite == nil || cfg.SQLite.Path == "" {
			return nil, fmt.Errorf("sqlite config is required when provider is sqlite")
		}
		return sqlite.New(cfg.SQLite.Path)
	case store.ProviderPostgres:
		if cfg.Postgres == nil || cfg.Postgres.DSN == "" {
			return nil, fmt.Errorf("postgres config is required when provider is postgres")
		}
		pg, err := postgres.New(ctx, cfg.Postgres.DSN)
		if err != nil {
			return nil, err
		}
		if cfg.Postgres.Migrate {
			if err := pg.Migrate(ctx); err != nil {
				_ = pg.Stop(ctx)
				return nil, fmt.Errorf("migrating postgres: %w", err)
			}
		}
		return pg, nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", cfg.Provider)
	}
}

// buildEngine loads the project config from the working directory and wires
// the store, alert dispatcher and trainer into an analysis engine. The caller
// must Stop the returned store.
func buildEngine(ctx context.Context) (*engine.Engine, store.Store, *types.ProjectConfig, error) {
	cfg, err := config.Load(".")
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading config: %w", err)
	}

	st, err := newStore(ctx, cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := st.Start(ctx); err != nil {
		return nil, nil, nil, fmt.Errorf("starting store: %w", err)
	}

	logger := slog.Default()

	dispatcher, err := alert.NewDispatcher(cfg.Alerts, logger)
	if err != nil {
		_ = st.Stop(ctx)
		return nil, nil, nil, fmt.Errorf("creating alert dispatcher: %w", err)
	}

	var trainer model.Trainer = model.Unavailable{}
	if cfg.Model != nil && cfg.Model.Enabled {
		trainer = model.NewTrainer()
	}

	eng := engine.New(st, trainer, dispatcher, cfg, logger)
	return eng, st, cfg, nil
}

// scopeFlags holds the analysis scope filters shared by the reporting
// commands. Flag values override the config-file scope field by field.
type scopeFlags struct {
	line    string
	machine string
	from    string
	to      string
	shift   string
}

func (f *scopeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.line, "line", "", "Restrict to one production line")
	cmd.Flags().StringVar(&f.machine, "machine", "", "Restrict to one machine")
	cmd.Flags().StringVar(&f.from, "from", "", "Start date (YYYY-MM-DD, inclusive)")
	cmd.Flags().StringVar(&f.to, "to", "", "End date (YYYY-MM-DD, inclusive)")
	cmd.Flags().StringVar(&f.shift, "shift", "", "Restrict to one shift (morning, evening, night)")
}

// merge layers the flag values over the configured default scope.
func (f *scopeFlags) merge(base *types.Scope) (types.Scope, error) {
	scope := types.Scope{}
	if base != nil {
		scope = *base
	}
	if f.line != "" {
		scope.Line = f.line
	}
	if f.machine != "" {
		scope.MachineID = f.machine
	}
	if f.from != "" {
		scope.DateFrom = f.from
	}
	if f.to != "" {
		scope.DateTo = f.to
	}
	if f.shift != "" {
		scope.Shift = f.shift
	}
	for _, d := range []string{scope.DateFrom, scope.DateTo} {
		if d == "" {
			continue
		}
		if _, err := types.AddDays(d, 0); err != nil {
			return types.Scope{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", d)
		}
	}
	switch scope.Shift {
	case "", types.ShiftMorning, types.ShiftEvening, types.ShiftNight:
	default:
		return types.Scope{}, fmt.Errorf("unknown shift %q", scope.Shift)
	}
	return scope, nil
}
