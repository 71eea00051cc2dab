package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	API     APIConfig     `yaml:"api"`
	Scanner ScannerConfig `yaml:"scanner"`
	Gap     GapConfig     `yaml:"gap"`
	Store   StoreConfig   `yaml:"store"`
	Web     WebConfig     `yaml:"web"`
	Tickers []string      `yaml:"tickers"`
}

// APIConfig holds market-data provider configurations
type APIConfig struct {
	Polygon ProviderConfig `yaml:"polygon"`
}

// ProviderConfig holds individual provider settings
type ProviderConfig struct {
	Key       string `yaml:"key"`
	RateLimit int    `yaml:"rate_limit"` // requests per minute
}

// ScannerConfig holds batch scanner settings
type ScannerConfig struct {
	Workers int           `yaml:"workers"`
	Timeout time.Duration `yaml:"timeout"` // per-ticker pipeline timeout
}

// GapConfig holds gap-day detection settings
type GapConfig struct {
	ThresholdPercent float64 `yaml:"threshold_percent"` // minimum open-vs-prev-close gap
	LookbackDays     int     `yaml:"lookback_days"`     // calendar days of daily bars to scan
}

// StoreConfig selects the result store backend
type StoreConfig struct {
	Driver string `yaml:"driver"` // memory, sqlite
	Path   string `yaml:"path"`   // sqlite database file
}

// WebConfig holds web UI settings
type WebConfig struct {
	Port int `yaml:"port"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			Polygon: ProviderConfig{
				Key:       os.Getenv("POLYGON_API_KEY"),
				RateLimit: 100,
			},
		},
		Scanner: ScannerConfig{
			Workers: 4,
			Timeout: 10 * time.Minute,
		},
		Gap: GapConfig{
			ThresholdPercent: 25,
			LookbackDays:     1095, // three years
		},
		Store: StoreConfig{
			Driver: "memory",
			Path:   "gapscan.db",
		},
		Web: WebConfig{
			Port: 8080,
		},
	}
}

// Load loads configuration from a YAML file, with .env and environment
// variables taking precedence over file values.
func Load(path string) (*Config, error) {
	// Pick up POLYGON_API_KEY etc. from a local .env if present
	_ = godotenv.Load()

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Use defaults if file doesn't exist
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if key := os.Getenv("POLYGON_API_KEY"); key != "" {
		cfg.API.Polygon.Key = key
	}
	if list := os.Getenv("GAPSCAN_TICKERS"); list != "" {
		cfg.Tickers = splitTickers(list)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.API.Polygon.Key == "" {
		return fmt.Errorf("POLYGON_API_KEY is required")
	}
	if c.Scanner.Workers < 1 {
		return fmt.Errorf("workers must be at least 1")
	}
	if c.Gap.ThresholdPercent <= 0 {
		return fmt.Errorf("threshold_percent must be positive")
	}
	if c.Gap.LookbackDays < 1 {
		return fmt.Errorf("lookback_days must be at least 1")
	}
	switch c.Store.Driver {
	case "memory", "sqlite":
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}
	return nil
}

func splitTickers(list string) []string {
	parts := strings.Split(list, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToUpper(strings.TrimSpace(p))
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
