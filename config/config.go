// Package config loads tradejournal settings from a YAML or JSON file,
// then lets TRADEJOURNAL_* environment variables (and a .env file)
// override individual values.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g.
// TRADEJOURNAL_JOURNAL_DRIVER or TRADEJOURNAL_STATS_RISK_PERCENT.
const EnvPrefix = "TRADEJOURNAL"

// Config is the complete application configuration.
type Config struct {
	Journal JournalConfig `json:"journal" yaml:"journal" envconfig:"JOURNAL"`
	Stats   StatsConfig   `json:"stats" yaml:"stats" envconfig:"STATS"`
	Server  ServerConfig  `json:"server" yaml:"server" envconfig:"SERVER"`
	Log     LogConfig     `json:"log" yaml:"log" envconfig:"LOG"`
	Tracing TracingConfig `json:"tracing" yaml:"tracing" envconfig:"TRACING"`
}

// JournalConfig selects where trades are stored.
type JournalConfig struct {
	Driver string `json:"driver" yaml:"driver" envconfig:"DRIVER"` // "sqlite" or "postgres"
	DBPath string `json:"db_path,omitempty" yaml:"db_path,omitempty" envconfig:"DB_PATH"`
	DSN    string `json:"dsn,omitempty" yaml:"dsn,omitempty" envconfig:"DSN"`
}

// StatsConfig tunes the statistics engine.
type StatsConfig struct {
	RiskPercent float64 `json:"risk_percent" yaml:"risk_percent" envconfig:"RISK_PERCENT"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr       string `json:"addr" yaml:"addr" envconfig:"ADDR"`
	APIKey     string `json:"api_key,omitempty" yaml:"api_key,omitempty" envconfig:"API_KEY"`
	CORSOrigin string `json:"cors_origin,omitempty" yaml:"cors_origin,omitempty" envconfig:"CORS_ORIGIN"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level  string `json:"level" yaml:"level" envconfig:"LEVEL"`
	Format string `json:"format" yaml:"format" envconfig:"FORMAT"` // "console" or "json"
}

// TracingConfig toggles the stdout span exporter.
type TracingConfig struct {
	Enabled bool `json:"enabled" yaml:"enabled" envconfig:"ENABLED"`
}

// Default returns a configuration for a local single-user journal.
func Default() *Config {
	return &Config{
		Journal: JournalConfig{
			Driver: "sqlite",
			DBPath: "./tradejournal.db",
		},
		Stats: StatsConfig{
			RiskPercent: 0.01,
		},
		Server: ServerConfig{
			Addr:       ":5000",
			CORSOrigin: "http://localhost:3000",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load builds the effective configuration: defaults, then the file at path
// (if path is not empty), then envFile and the process environment.
func Load(path, envFile string) (*Config, error) {
	cfg := Default()
	if path != "" {
		var err error
		if cfg, err = readFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.ApplyEnv(envFile); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadFromFile loads and validates a YAML or JSON configuration file.
// Settings missing from the file keep their defaults.
func LoadFromFile(path string) (*Config, error) {
	cfg, err := readFile(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func readFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON
	if err := yaml.Unmarshal(data, cfg); err != nil {
		cfg = Default()
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}
	return cfg, nil
}

// ApplyEnv overrides settings from the environment. Variables in envFile
// are loaded first without replacing ones already set; a missing envFile is
// not an error.
func (c *Config) ApplyEnv(envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", envFile, err)
		}
	}
	if err := envconfig.Process(EnvPrefix, c); err != nil {
		return fmt.Errorf("process environment: %w", err)
	}
	return nil
}

// SaveToFile saves configuration as YAML for .yaml/.yml paths and JSON
// otherwise.
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	switch c.Journal.Driver {
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal.db_path required for sqlite driver")
		}
	case "postgres":
		if c.Journal.DSN == "" {
			return fmt.Errorf("journal.dsn required for postgres driver")
		}
	default:
		return fmt.Errorf("journal.driver must be 'sqlite' or 'postgres'")
	}
	if c.Stats.RiskPercent <= 0 || c.Stats.RiskPercent > 1 {
		return fmt.Errorf("stats.risk_percent must be between 0 and 1")
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "console", "json":
	default:
		return fmt.Errorf("log.format must be 'console' or 'json'")
	}
	return nil
}

// StoreDSN returns the path or URL handed to the selected store driver.
func (c *Config) StoreDSN() string {
	if c.Journal.Driver == "postgres" {
		return c.Journal.DSN
	}
	return c.Journal.DBPath
}
