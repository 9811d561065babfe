package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rustyeddy/tradejournal/config"
	"github.com/rustyeddy/tradejournal/internal/analytics"
	"github.com/rustyeddy/tradejournal/internal/logging"
	"github.com/rustyeddy/tradejournal/store"
)

var rootCmd = &cobra.Command{
	Use:   "tradejournal",
	Short: "A trading journal with risk-normalized performance statistics",
	Long: `Tradejournal records discretionary trades and turns them into statistics.

It provides tools for:
  - Logging, closing and reviewing trades
  - Win rate, expectancy and profit factor in R-multiples
  - Equity curves and drawdown
  - Breakdowns by setup, session, timeframe and grade
  - Weekly and monthly reviews compared with the previous period
  - A JSON HTTP API for dashboards

Settings come from --config, a .env file and TRADEJOURNAL_* variables.`,
	SilenceUsage: true,
}

var (
	cfgFile  string
	envFile  string
	dbPath   string
	driver   string
	logLevel string
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (YAML or JSON)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env", ".env", "dotenv file with TRADEJOURNAL_* overrides")
	rootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "SQLite path or Postgres URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&driver, "driver", "", "journal driver: sqlite or postgres (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error (overrides config)")
}

// loadConfig resolves the effective configuration: file, environment, then
// command line flags.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile, envFile)
	if err != nil {
		return nil, err
	}

	if driver != "" {
		cfg.Journal.Driver = strings.ToLower(driver)
	}
	if dbPath != "" {
		if cfg.Journal.Driver == store.DriverPostgres {
			cfg.Journal.DSN = dbPath
		} else {
			cfg.Journal.DBPath = dbPath
		}
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// app bundles what most commands need: config, logger and an open journal.
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	store  store.Store
	svc    *analytics.Service
}

func openApp(ctx context.Context) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}

	st, err := store.Open(ctx, cfg.Journal.Driver, cfg.StoreDSN())
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	logger.Debug("journal opened", zap.String("driver", cfg.Journal.Driver))

	return &app{
		cfg:    cfg,
		logger: logger,
		store:  st,
		svc:    analytics.NewService(st, cfg.Stats.RiskPercent, logger),
	}, nil
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		a.logger.Warn("close journal", zap.Error(err))
	}
	_ = a.logger.Sync()
}
