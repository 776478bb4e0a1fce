package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/rsundaram/Networth-Tracker-Backend/internal/apperrors"
)

// Config holds all configuration for the application: server settings from
// the environment plus the tracker file describing what to track.
type Config struct {
	Server   ServerConfig
	CORS     CORSConfig
	Snapshot SnapshotConfig
	Google   GoogleConfig
	Tracker  TrackerConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// SnapshotConfig locates the snapshot directory. Only a single latest.json
// is kept there.
type SnapshotConfig struct {
	Dir string
}

// GoogleConfig carries the Gmail OAuth material, read from the environment
// and never persisted.
type GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RefreshToken string
}

// TrackerConfig is the YAML tracker file: securities master location, probe
// symbol, report schedule, real estate holdings, growth assumptions, and
// email settings.
type TrackerConfig struct {
	SecuritiesMaster string                      `yaml:"securities_master"`
	ProbeSymbol      string                      `yaml:"probe_symbol"`
	ReportCron       string                      `yaml:"report_cron"`
	RealEstate       map[string]RealEstateConfig `yaml:"real_estate"`
	Assumptions      Assumptions                 `yaml:"assumptions"`
	Email            EmailConfig                 `yaml:"email"`
	Chart            ChartConfig                 `yaml:"chart"`
}

// RealEstateConfig describes one property and how its quarterly value is
// derived: fallback_only, inflation_ish, or cad_times_hpi.
type RealEstateConfig struct {
	County        string  `yaml:"county"`
	Mode          string  `yaml:"mode"`
	OwnershipPct  float64 `yaml:"ownership_pct"`
	FallbackValue float64 `yaml:"fallback_value"`
}

// Assumptions are the deterministic, config-driven growth rates used when
// no market feed backs a valuation.
type Assumptions struct {
	InflationQoQPct float64 `yaml:"inflation_qoq_pct"`
	HpiQoQPct       float64 `yaml:"hpi_qoq_pct"`
}

// EmailConfig holds the report email settings. The recipient address is
// indirected through an environment variable so it never lands in the repo.
type EmailConfig struct {
	Subject string `yaml:"subject"`
	From    string `yaml:"from"`
	ToEnv   string `yaml:"to_env"`
}

// ChartConfig lists the series rendered in the report chart.
type ChartConfig struct {
	Series []ChartSeries `yaml:"series"`
}

// ChartSeries names one chart line and its target year label.
type ChartSeries struct {
	Name       string `yaml:"name"`
	TargetYear int    `yaml:"target_year"`
}

// Load reads configuration from environment variables, a .env file, and the
// tracker YAML file named by TRACKER_CONFIG (default config.yaml).
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost",
			},
		},
		Snapshot: SnapshotConfig{
			Dir: getEnv("SNAPSHOT_DIR", "./snapshots"),
		},
		Google: GoogleConfig{
			ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
			ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
			RefreshToken: os.Getenv("GOOGLE_REFRESH_TOKEN"),
		},
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	tracker, err := LoadTracker(getEnv("TRACKER_CONFIG", "config.yaml"))
	if err != nil {
		return nil, err
	}
	config.Tracker = tracker

	return config, nil
}

// LoadTracker reads and parses the tracker YAML file.
func LoadTracker(path string) (TrackerConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return TrackerConfig{}, fmt.Errorf("reading tracker config: %w", err)
	}

	var tracker TrackerConfig
	if err := yaml.Unmarshal(data, &tracker); err != nil {
		return TrackerConfig{}, fmt.Errorf("parsing tracker config %s: %w", path, err)
	}

	if tracker.ProbeSymbol == "" {
		tracker.ProbeSymbol = "SPY"
	}
	return tracker, nil
}

// Recipient resolves the report email recipient from the environment
// variable named by to_env.
func (e EmailConfig) Recipient() (string, error) {
	if e.ToEnv == "" {
		return "", fmt.Errorf("%w: email to_env not configured", apperrors.ErrMissingEnvVar)
	}
	value := os.Getenv(e.ToEnv)
	if value == "" {
		return "", fmt.Errorf("%w: %s", apperrors.ErrMissingEnvVar, e.ToEnv)
	}
	return value, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
