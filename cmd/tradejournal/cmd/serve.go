package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rustyeddy/tradejournal/internal/api"
	"github.com/rustyeddy/tradejournal/internal/tracing"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the journal and its statistics over HTTP",
	Long: `Start the JSON API used by journal dashboards.

Routes live under /api/stats, /api/trades and /api/reviews; /health needs
no API key.

Example:
  tradejournal serve --addr :5000`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

var (
	serveAddr    string
	serveTracing bool
)

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", "", "listen address (overrides config)")
	serveCmd.Flags().BoolVar(&serveTracing, "trace", false, "print request spans to stdout")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if serveAddr != "" {
		a.cfg.Server.Addr = serveAddr
	}
	if err := tracing.Init(ctx, tracing.Options{
		Enabled:     a.cfg.Tracing.Enabled || serveTracing,
		ServiceName: "tradejournal",
		Version:     version,
		Writer:      cmd.OutOrStdout(),
	}); err != nil {
		return fmt.Errorf("tracing: %w", err)
	}

	srv := api.NewServer(a.svc, a.cfg.Server, a.logger)
	a.logger.Info("listening",
		zap.String("addr", srv.Addr()),
		zap.String("driver", a.cfg.Journal.Driver),
		zap.Bool("tracing", tracing.Enabled()))
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
	case <-ctx.Done():
		a.logger.Info("shutting down", zap.String("addr", srv.Addr()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.logger.Warn("http shutdown", zap.Error(err))
	}
	return tracing.Shutdown(shutdownCtx)
}
