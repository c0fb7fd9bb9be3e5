// Package config handles loading and validation of plantpulse.yaml project
// configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/plantmetrics/plantpulse/internal/store"
	"github.com/plantmetrics/plantpulse/pkg/types"
)

// FileName is the project configuration file looked up in the working
// directory.
const FileName = "plantpulse.yaml"

// Load reads and parses plantpulse.yaml from the given directory.
func Load(dir string) (*types.ProjectConfig, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg types.ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

func validate(cfg *types.ProjectConfig) error {
	switch cfg.Provider {
	case "":
		return fmt.Errorf("provider is required")
	case store.ProviderMemory:
	case store.ProviderSQLite:
		if cfg.SQLite == nil || cfg.SQLite.Path == "" {
			return fmt.Errorf("sqlite.path is required when provider is sqlite")
		}
	case store.ProviderPostgres:
		if cfg.Postgres == nil || cfg.Postgres.DSN == "" {
			return fmt.Errorf("postgres.dsn is required when provider is postgres")
		}
	default:
		return fmt.Errorf("unknown provider %q", cfg.Provider)
	}

	if cfg.Model != nil {
		switch cfg.Model.Type {
		case "", types.ModelLogReg, types.ModelForest:
		default:
			return fmt.Errorf("unknown model type %q", cfg.Model.Type)
		}
		if cfg.Model.RiskThreshold < 0 || cfg.Model.RiskThreshold > 1 {
			return fmt.Errorf("model.riskThreshold must be in [0, 1]")
		}
	}

	if cfg.Monitor != nil && cfg.Monitor.Interval != "" {
		if d, err := time.ParseDuration(cfg.Monitor.Interval); err != nil || d <= 0 {
			return fmt.Errorf("monitor.interval: invalid duration %q", cfg.Monitor.Interval)
		}
	}

	if cfg.Insights != nil {
		if cfg.Insights.CarbonFactor < 0 {
			return fmt.Errorf("insights.carbonFactor must not be negative")
		}
		if dl := cfg.Insights.DigitalizationLevel; dl < 0 || dl > 1 {
			return fmt.Errorf("insights.digitalizationLevel must be in [0, 1]")
		}
	}

	if cfg.Scope != nil {
		if err := validDate(cfg.Scope.DateFrom, "scope.dateFrom"); err != nil {
			return err
		}
		if err := validDate(cfg.Scope.DateTo, "scope.dateTo"); err != nil {
			return err
		}
		switch cfg.Scope.Shift {
		case "", types.ShiftMorning, types.ShiftEvening, types.ShiftNight:
		default:
			return fmt.Errorf("unknown shift %q", cfg.Scope.Shift)
		}
	}

	for _, a := range cfg.Alerts {
		switch a.Type {
		case types.AlertConsole:
		case types.AlertWebhook:
			if a.URL == "" {
				return fmt.Errorf("alerts: webhook URL is required")
			}
		case types.AlertFile:
			if a.Path == "" {
				return fmt.Errorf("alerts: file path is required")
			}
		default:
			return fmt.Errorf("unknown alert type %q", a.Type)
		}
	}

	return nil
}

func validDate(s, field string) error {
	if s == "" {
		return nil
	}
	if _, err := types.AddDays(s, 0); err != nil {
		return fmt.Errorf("%s: invalid date %q (want YYYY-MM-DD)", field, s)
	}
	return nil
}

// WriteDefault writes a starter plantpulse.yaml into dir. It refuses to
// overwrite an existing file.
func WriteDefault(dir string) (string, error) {
	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("%s already exists", path)
	}
	if err := os.WriteFile(path, []byte(defaultYAML), 0o644); err != nil {
		return "", fmt.Errorf("writing config: %w", err)
	}
	return path, nil
}

const defaultYAML = `# plantpulse project configuration
provider: sqlite
sqlite:
  path: data/plant.db

server:
  addr: :8080

model:
  enabled: true
  type: logreg
  horizonDays: 1
  riskThreshold: 0.6

monitor:
  enabled: false
  interval: 5m

insights:
  carbonFactor: 0.5
  digitalizationLevel: 0.8
  anomalyStdThreshold: 2.0

alerts:
  - type: console
`
