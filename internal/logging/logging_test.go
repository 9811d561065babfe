package logging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/rustyeddy/tradejournal/config"
)

func TestNewLevels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		cfg    config.LogConfig
		debug  bool
		hasErr bool
	}{
		{"default", config.LogConfig{}, false, false},
		{"debug console", config.LogConfig{Level: "debug", Format: "console"}, true, false},
		{"warn json", config.LogConfig{Level: "WARN", Format: "json"}, false, false},
		{"bad level", config.LogConfig{Level: "loud"}, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			l, err := New(tt.cfg)
			if tt.hasErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.debug, l.Core().Enabled(zapcore.DebugLevel))
		})
	}
}

func TestWithTraceWithoutSpan(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.InfoLevel)
	WithTrace(context.Background(), zap.New(core)).Info("hello")

	require.Equal(t, 1, logs.Len())
	assert.Empty(t, logs.All()[0].Context)
}
