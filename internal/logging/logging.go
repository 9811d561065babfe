// Package logging builds the zap logger shared by the CLI and the API.
package logging

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/rustyeddy/tradejournal/config"
	"github.com/rustyeddy/tradejournal/internal/tracing"
)

// New returns a logger for cfg. Format "json" produces production style
// output; anything else is the human readable console encoder.
func New(cfg config.LogConfig) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if cfg.Level != "" {
		l, err := zapcore.ParseLevel(strings.ToLower(cfg.Level))
		if err != nil {
			return nil, fmt.Errorf("log level: %w", err)
		}
		level = l
	}

	var zc zap.Config
	if strings.EqualFold(cfg.Format, "json") {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger.Named("tradejournal"), nil
}

// WithTrace adds the trace and span ids of ctx, if any, to logger.
func WithTrace(ctx context.Context, logger *zap.Logger) *zap.Logger {
	traceID, spanID, ok := tracing.IDs(ctx)
	if !ok {
		return logger
	}
	return logger.With(zap.String("trace_id", traceID), zap.String("span_id", spanID))
}
