package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
	} `yaml:"server"`
	DataSource struct {
		Provider        string            `yaml:"provider"` // "yahoo" or "rest"
		BaseURL         string            `yaml:"base_url"`
		APIKey          string            `yaml:"api_key"`
		DefaultTicker   string            `yaml:"default_ticker"`
		DefaultInterval string            `yaml:"default_interval"`
		Intervals       map[string]string `yaml:"intervals"` // bar interval -> upstream lookback range
	} `yaml:"data_source"`
	Stream struct {
		PushInterval time.Duration `yaml:"push_interval"`
	} `yaml:"stream"`
	Schedule struct {
		ProbeCron   string `yaml:"probe_cron"`
		PruneCron   string `yaml:"prune_cron"`
		ProbeTicker string `yaml:"probe_ticker"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string        `yaml:"sqlite_path"`
		Retention  time.Duration `yaml:"retention"` // fetch journal rows older than this are pruned
	} `yaml:"database"`
	Log struct {
		Level string `yaml:"level"`
		Env   string `yaml:"env"`
	} `yaml:"log"`
	CatalogPath string `yaml:"catalog_path"`
	Proxy       string `yaml:"proxy"`
}

// Provider names.
const (
	ProviderYahoo = "yahoo"
	ProviderREST  = "rest"
)

// DefaultIntervals maps each supported bar interval to its lookback range.
func DefaultIntervals() map[string]string {
	return map[string]string{
		"1m": "1d",
		"1h": "1mo",
		"1d": "1y",
	}
}

// DefaultPath is the config file used when CONFIG_PATH is unset.
const DefaultPath = "configs/config.yaml"

// Path loads .env from the working directory, when present, and returns
// CONFIG_PATH or DefaultPath. Variables already set in the environment win.
func Path() string {
	_ = godotenv.Load()
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		return v
	}
	return DefaultPath
}

// Load reads config from a YAML file, then applies environment variable overrides.
// A .env file in the working directory is loaded first when present.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("HTTP_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("HTTP_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("parse HTTP_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if v := os.Getenv("DATA_PROVIDER"); v != "" {
		cfg.DataSource.Provider = v
	}
	if v := os.Getenv("DATA_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("DATA_API_KEY"); v != "" {
		cfg.DataSource.APIKey = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("PROBE_CRON"); v != "" {
		cfg.Schedule.ProbeCron = v
	}
	if v := os.Getenv("PRUNE_CRON"); v != "" {
		cfg.Schedule.PruneCron = v
	}
	if v := os.Getenv("JOURNAL_RETENTION"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("parse JOURNAL_RETENTION: %w", err)
		}
		cfg.Database.Retention = d
	}
	if v := os.Getenv("PROBE_TICKER"); v != "" {
		cfg.Schedule.ProbeTicker = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("APP_ENV"); v != "" {
		cfg.Log.Env = v
	}
	if v := os.Getenv("CATALOG_PATH"); v != "" {
		cfg.CatalogPath = v
	}

	// Defaults
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 5000
	}
	if cfg.DataSource.Provider == "" {
		cfg.DataSource.Provider = ProviderYahoo
	}
	if cfg.DataSource.DefaultTicker == "" {
		cfg.DataSource.DefaultTicker = "BTC-USD"
	}
	if cfg.DataSource.DefaultInterval == "" {
		cfg.DataSource.DefaultInterval = "1h"
	}
	if len(cfg.DataSource.Intervals) == 0 {
		cfg.DataSource.Intervals = DefaultIntervals()
	}
	if cfg.Stream.PushInterval == 0 {
		cfg.Stream.PushInterval = 5 * time.Second
	}
	if cfg.Schedule.ProbeCron == "" {
		cfg.Schedule.ProbeCron = "0 */5 * * * *"
	}
	if cfg.Schedule.PruneCron == "" {
		cfg.Schedule.PruneCron = "0 0 * * * *"
	}
	if cfg.Database.Retention == 0 {
		cfg.Database.Retention = 7 * 24 * time.Hour
	}
	if cfg.Schedule.ProbeTicker == "" {
		cfg.Schedule.ProbeTicker = cfg.DataSource.DefaultTicker
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Env == "" {
		cfg.Log.Env = "development"
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	switch c.DataSource.Provider {
	case ProviderYahoo:
	case ProviderREST:
		if c.DataSource.BaseURL == "" {
			return fmt.Errorf("data_source.base_url is required for provider %q", ProviderREST)
		}
	default:
		return fmt.Errorf("data_source.provider %q is not supported", c.DataSource.Provider)
	}
	if _, ok := c.DataSource.Intervals[c.DataSource.DefaultInterval]; !ok {
		return fmt.Errorf("data_source.default_interval %q is not listed in data_source.intervals", c.DataSource.DefaultInterval)
	}
	if c.Stream.PushInterval < time.Second {
		return fmt.Errorf("stream.push_interval must be at least 1s")
	}
	if c.Database.Retention < time.Minute {
		return fmt.Errorf("database.retention must be at least 1m")
	}
	return nil
}

// Addr returns the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
