package types

// ProjectConfig represents the top-level plantpulse.yaml configuration.
type ProjectConfig struct {
	Provider string           `yaml:"provider"`
	SQLite   *SQLiteConfig    `yaml:"sqlite,omitempty"`
	Postgres *PostgresConfig  `yaml:"postgres,omitempty"`
	Server   *ServerConfig    `yaml:"server,omitempty"`
	Model    *ModelConfig     `yaml:"model,omitempty"`
	Monitor  *MonitorConfig   `yaml:"monitor,omitempty"`
	Insights *InsightsConfig  `yaml:"insights,omitempty"`
	Scope    *Scope           `yaml:"scope,omitempty"`
	Alerts   []AlertConfig    `yaml:"alerts,omitempty"`
}

// SQLiteConfig holds embedded SQLite database settings.
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// PostgresConfig holds Postgres connection settings.
type PostgresConfig struct {
	DSN     string `yaml:"dsn"`
	Migrate bool   `yaml:"migrate,omitempty"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr           string `yaml:"addr"`
	APIKey         string `yaml:"apiKey,omitempty" json:"apiKey,omitempty"`
	MaxRequestBody int64  `yaml:"maxRequestBody,omitempty" json:"maxRequestBody,omitempty"`
}

// ModelConfig holds maintenance-model training and scoring settings.
type ModelConfig struct {
	Enabled       bool      `yaml:"enabled"`
	Type          ModelType `yaml:"type,omitempty"`          // logreg (default) or rf
	Path          string    `yaml:"path,omitempty"`          // persisted artifact path
	HorizonDays   int       `yaml:"horizonDays,omitempty"`   // failure-label horizon, default 1
	RiskThreshold float64   `yaml:"riskThreshold,omitempty"` // at-risk probability cutoff, default 0.6
}

// MonitorConfig holds the background risk-monitor settings.
type MonitorConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Interval string `yaml:"interval,omitempty"` // poll interval, default 5m
}

// InsightsConfig holds Industry 4.0 scoring parameters.
type InsightsConfig struct {
	CarbonFactor        float64 `yaml:"carbonFactor,omitempty"`        // kg CO2 per kWh, default 0.5
	DigitalizationLevel float64 `yaml:"digitalizationLevel,omitempty"` // 0-1, default 0.8
	AnomalyStdThreshold float64 `yaml:"anomalyStdThreshold,omitempty"` // z-score cutoff, default 2.0
}

// AlertConfig defines an alert sink configuration.
type AlertConfig struct {
	Type AlertType `yaml:"type" json:"type"`
	URL  string    `yaml:"url,omitempty" json:"url,omitempty"`
	Path string    `yaml:"path,omitempty" json:"path,omitempty"`
}

// DefaultHorizonDays is the failure-label horizon when none is configured.
const DefaultHorizonDays = 1

// DefaultRiskThreshold is the operational at-risk probability cutoff.
const DefaultRiskThreshold = 0.6

// DefaultModelPath is the persisted model artifact location.
const DefaultModelPath = "data/maintenance_model.json"

// Horizon returns the configured label horizon or the default.
func (m *ModelConfig) Horizon() int {
	if m == nil || m.HorizonDays <= 0 {
		return DefaultHorizonDays
	}
	return m.HorizonDays
}

// Threshold returns the configured risk threshold or the default.
func (m *ModelConfig) Threshold() float64 {
	if m == nil || m.RiskThreshold <= 0 {
		return DefaultRiskThreshold
	}
	return m.RiskThreshold
}

// ArtifactPath returns the configured model path or the default.
func (m *ModelConfig) ArtifactPath() string {
	if m == nil || m.Path == "" {
		return DefaultModelPath
	}
	return m.Path
}

// Variant returns the configured model type or the default logistic model.
func (m *ModelConfig) Variant() ModelType {
	if m == nil || m.Type == "" {
		return ModelLogReg
	}
	return m.Type
}
