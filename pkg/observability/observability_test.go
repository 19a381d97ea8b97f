package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerLevels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		level      string
		debugShown bool
		infoShown  bool
	}{
		{name: "debug", level: "debug", debugShown: true, infoShown: true},
		{name: "info", level: "info", debugShown: false, infoShown: true},
		{name: "warn", level: "warn", debugShown: false, infoShown: false},
		{name: "unknown_defaults_to_info", level: "chatty", debugShown: false, infoShown: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer

			logger := NewLogger(&buf, tt.level, LogFormatText)
			logger.Debug("dbg")
			logger.Info("inf")

			out := buf.String()
			assert.Equal(t, tt.debugShown, bytes.Contains(buf.Bytes(), []byte("dbg")), out)
			assert.Equal(t, tt.infoShown, bytes.Contains(buf.Bytes(), []byte("inf")), out)
		})
	}
}

func TestNewLoggerJSONFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := NewLogger(&buf, "info", LogFormatJSON)
	logger.Info("hello", slog.String("key", "value"))

	var record map[string]any

	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "hello", record["msg"])
	assert.Equal(t, "value", record["key"])
}

func TestInit(t *testing.T) {
	t.Parallel()

	providers, err := Init(Config{
		ServiceName:    "hierpart-test",
		ServiceVersion: "0.0.1",
		LogLevel:       "info",
		LogFormat:      LogFormatText,
	})
	require.NoError(t, err)

	assert.NotNil(t, providers.Meter)
	assert.NotNil(t, providers.Logger)
	assert.NotNil(t, providers.Registry)

	require.NoError(t, providers.Shutdown(context.Background()))
}

func TestCompareMetricsRecord(t *testing.T) {
	t.Parallel()

	providers, err := Init(Config{ServiceName: "hierpart-test", LogFormat: LogFormatText})
	require.NoError(t, err)

	defer func() {
		require.NoError(t, providers.Shutdown(context.Background()))
	}()

	metrics, err := NewCompareMetrics(providers.Meter)
	require.NoError(t, err)

	metrics.Record(context.Background(), "compare", 5*time.Millisecond, 14, nil)
	metrics.Record(context.Background(), "compare", time.Millisecond, 0, assert.AnError)

	families, err := providers.Registry.Gather()
	require.NoError(t, err)

	names := make([]string, 0, len(families))
	for _, fam := range families {
		names = append(names, fam.GetName())
	}

	assert.Contains(t, names, "hierpart_comparisons_total")
	assert.Contains(t, names, "hierpart_comparison_duration_seconds")
	assert.Contains(t, names, "hierpart_comparison_nodes_total")
}

func TestCompareMetricsNilReceiver(t *testing.T) {
	t.Parallel()

	var metrics *CompareMetrics

	assert.NotPanics(t, func() {
		metrics.Record(context.Background(), "compare", time.Second, 1, nil)
	})
}

func TestInitRegistryIsIsolated(t *testing.T) {
	t.Parallel()

	providers, err := Init(Config{ServiceName: "hierpart-test", LogFormat: LogFormatText})
	require.NoError(t, err)

	defer func() {
		require.NoError(t, providers.Shutdown(context.Background()))
	}()

	// The registry is private to this pipeline, not the global default.
	assert.NotEqual(t, prometheus.DefaultRegisterer, providers.Registry)
}
