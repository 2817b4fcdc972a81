package observability

import (
	"context"
	"log/slog"
	"testing"

	"github.com/couchcryptid/shooting-dashboard/internal/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"verbose": slog.LevelInfo,
		"":        slog.LevelInfo,
	}
	for in, want := range cases {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, want, parseLevel(in))
		})
	}
}

func TestNewLogger_RespectsLevel(t *testing.T) {
	logger := NewLogger(&config.Config{LogLevel: "warn", LogFormat: "text"})
	require.NotNil(t, logger)

	assert.False(t, logger.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, logger.Enabled(context.Background(), slog.LevelWarn))
}

func TestNewMetricsForTesting_IsolatedRegistries(t *testing.T) {
	a := NewMetricsForTesting()
	b := NewMetricsForTesting()

	reg := prometheus.NewRegistry()
	require.NoError(t, reg.Register(a.BuildsTotal))
	require.NoError(t, prometheus.NewRegistry().Register(b.BuildsTotal))

	a.BuildsTotal.WithLabelValues("success").Inc()
	assert.InDelta(t, 1.0, testutil.ToFloat64(a.BuildsTotal.WithLabelValues("success")), 1e-9)
	assert.InDelta(t, 0.0, testutil.ToFloat64(b.BuildsTotal.WithLabelValues("success")), 1e-9)
}
