package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.NotNil(t, cfg)
	assert.Equal(t, "sqlite", cfg.Journal.Driver)
	assert.Equal(t, 0.01, cfg.Stats.RiskPercent)
	assert.Equal(t, ":5000", cfg.Server.Addr)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
		errMsg  string
	}{
		{
			name:   "valid config",
			mutate: func(c *Config) {},
		},
		{
			name:    "unknown driver",
			mutate:  func(c *Config) { c.Journal.Driver = "mysql" },
			wantErr: true,
			errMsg:  "journal.driver must be",
		},
		{
			name:    "sqlite without path",
			mutate:  func(c *Config) { c.Journal.DBPath = "" },
			wantErr: true,
			errMsg:  "journal.db_path required",
		},
		{
			name:    "postgres without dsn",
			mutate:  func(c *Config) { c.Journal.Driver = "postgres" },
			wantErr: true,
			errMsg:  "journal.dsn required",
		},
		{
			name: "postgres with dsn",
			mutate: func(c *Config) {
				c.Journal.Driver = "postgres"
				c.Journal.DSN = "postgres://localhost/journal"
			},
		},
		{
			name:    "zero risk percent",
			mutate:  func(c *Config) { c.Stats.RiskPercent = 0 },
			wantErr: true,
			errMsg:  "stats.risk_percent must be between 0 and 1",
		},
		{
			name:    "risk percent over one",
			mutate:  func(c *Config) { c.Stats.RiskPercent = 1.5 },
			wantErr: true,
			errMsg:  "stats.risk_percent must be between 0 and 1",
		},
		{
			name:    "missing addr",
			mutate:  func(c *Config) { c.Server.Addr = "" },
			wantErr: true,
			errMsg:  "server.addr is required",
		},
		{
			name:    "bad log format",
			mutate:  func(c *Config) { c.Log.Format = "xml" },
			wantErr: true,
			errMsg:  "log.format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name string
		ext  string
	}{
		{"json format", ".json"},
		{"yaml format", ".yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Stats.RiskPercent = 0.005
			cfg.Server.APIKey = "secret"
			path := filepath.Join(tmpDir, "test"+tt.ext)

			require.NoError(t, cfg.SaveToFile(path))

			_, err := os.Stat(path)
			require.NoError(t, err)

			loaded, err := LoadFromFile(path)
			require.NoError(t, err)
			assert.Equal(t, cfg, loaded)
		})
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	require.NoError(t, os.WriteFile(path, []byte("stats:\n  risk_percent: 0.02\n"), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 0.02, cfg.Stats.RiskPercent)
	assert.Equal(t, "sqlite", cfg.Journal.Driver)
	assert.Equal(t, ":5000", cfg.Server.Addr)
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := LoadFromFile("/nonexistent/path.yaml")
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{not yaml: [}"), 0644))
	_, err = LoadFromFile(bad)
	assert.ErrorContains(t, err, "parse config")
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("TRADEJOURNAL_JOURNAL_DRIVER", "postgres")
	t.Setenv("TRADEJOURNAL_JOURNAL_DSN", "postgres://db/journal")
	t.Setenv("TRADEJOURNAL_STATS_RISK_PERCENT", "0.02")
	t.Setenv("TRADEJOURNAL_TRACING_ENABLED", "true")

	cfg, err := Load("", "")
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Journal.Driver)
	assert.Equal(t, "postgres://db/journal", cfg.StoreDSN())
	assert.Equal(t, 0.02, cfg.Stats.RiskPercent)
	assert.True(t, cfg.Tracing.Enabled)
	assert.Equal(t, ":5000", cfg.Server.Addr, "unset variables keep their value")
}

func TestApplyEnvFile(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("TRADEJOURNAL_SERVER_ADDR=:9090\n"), 0644))
	t.Cleanup(func() { _ = os.Unsetenv("TRADEJOURNAL_SERVER_ADDR") })

	cfg := Default()
	require.NoError(t, cfg.ApplyEnv(envFile))
	assert.Equal(t, ":9090", cfg.Server.Addr)
}

func TestApplyEnvMissingFile(t *testing.T) {
	cfg := Default()
	assert.NoError(t, cfg.ApplyEnv(filepath.Join(t.TempDir(), "missing.env")))
	assert.Equal(t, Default(), cfg)
}

func TestLoadRejectsBadEnv(t *testing.T) {
	t.Setenv("TRADEJOURNAL_STATS_RISK_PERCENT", "lots")

	_, err := Load("", "")
	assert.ErrorContains(t, err, "process environment")
}
