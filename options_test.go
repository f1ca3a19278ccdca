package quantities

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/quantities/internal/storage"
	"github.com/hupe1980/quantities/unit"
)

func TestConfigure(t *testing.T) {
	t.Cleanup(ResetConfiguration)

	assert.Equal(t, DefaultDisplayPrecision, DisplayPrecision())
	assert.Equal(t, Dense, DefaultStorage())

	Configure(
		WithDisplayPrecision(5),
		WithDefaultStorage(Sparse),
		WithSparseGrowth(GrowthExact),
		nil,
	)
	assert.Equal(t, 5, DisplayPrecision())
	assert.Equal(t, Sparse, DefaultStorage())
	assert.Equal(t, storage.GrowthExact, storage.DefaultGrowth())

	v, err := NewRelVector([]float64{0, 1}, unit.Meter, Sparse)
	require.NoError(t, err)
	m := v.Mutable()
	require.NoError(t, m.SetSI(0, 2))
	assert.Equal(t, []float64{2, 1}, m.ValuesSI())

	ResetConfiguration()
	assert.Equal(t, storage.GrowthAmortized, storage.DefaultGrowth())
	assert.Equal(t, DefaultDisplayPrecision, DisplayPrecision())
}

func TestNilOptionsFallBackToNoop(t *testing.T) {
	t.Cleanup(ResetConfiguration)

	Configure(WithLogger(nil), WithMetricsCollector(nil))
	assert.IsType(t, NoopMetricsCollector{}, current().metricsCollector)
	assert.NotNil(t, current().logger)

	v, err := NewRelVector([]float64{1}, unit.Meter, Dense)
	require.NoError(t, err)
	_, err = v.Plus(v)
	require.NoError(t, err)
}

func TestLoggerEvents(t *testing.T) {
	t.Cleanup(ResetConfiguration)

	var buf bytes.Buffer
	logger := NewLogger(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	Configure(WithLogger(logger.WithQuantity("Length")))

	a, err := NewRelVector([]float64{1, 2}, unit.Meter, Dense)
	require.NoError(t, err)
	b, err := NewRelVector([]float64{1}, unit.Meter, Dense)
	require.NoError(t, err)

	m := a.Mutable()
	require.NoError(t, m.SetSI(0, 3))
	_ = a.ToSparse()
	_, err = a.Plus(b)
	require.Error(t, err)

	out := buf.String()
	assert.Contains(t, out, "copy-on-write duplication")
	assert.Contains(t, out, "storage converted")
	assert.Contains(t, out, "from=Dense to=Sparse")
	assert.Contains(t, out, "level=ERROR msg=\"operation failed\"")
	assert.Contains(t, out, "quantity=Length")
}

func TestBasicMetricsCollector(t *testing.T) {
	mc := &BasicMetricsCollector{}
	mc.RecordOperation("plus", 10*time.Nanosecond, nil)
	mc.RecordOperation("minus", 30*time.Nanosecond, errors.New("boom"))
	mc.RecordCopyOnWrite(8)
	mc.RecordConversion(Dense, Sparse, 8)
	mc.RecordConversion(Sparse, Dense, 8)
	mc.RecordConversion(Sparse, Dense, 8)

	stats := mc.GetStats()
	assert.Equal(t, int64(2), stats.OperationCount)
	assert.Equal(t, int64(1), stats.OperationErrors)
	assert.Equal(t, int64(20), stats.OperationAvgNanos)
	assert.Equal(t, int64(1), stats.CopyOnWriteCount)
	assert.Equal(t, int64(8), stats.CopyOnWriteCells)
	assert.Equal(t, int64(1), stats.SparsifyCount)
	assert.Equal(t, int64(2), stats.DensifyCount)

	assert.Equal(t, int64(0), (&BasicMetricsCollector{}).GetStats().OperationAvgNanos)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("QUANTITIES_LOG_LEVEL", "debug")
	t.Setenv("QUANTITIES_LOG_FORMAT", "json")
	t.Setenv("QUANTITIES_SPARSE_GROWTH", "exact")
	t.Setenv("QUANTITIES_DISPLAY_PRECISION", "2")
	t.Setenv("QUANTITIES_DEFAULT_STORAGE", "sparse")
	t.Cleanup(ResetConfiguration)

	cfg := LoadConfigFromEnv()
	assert.Equal(t, Config{
		LogLevel:         "debug",
		LogFormat:        "json",
		SparseGrowth:     "exact",
		DisplayPrecision: 2,
		DefaultStorage:   "sparse",
	}, cfg)

	opts, err := cfg.Options()
	require.NoError(t, err)
	Configure(opts...)
	assert.Equal(t, 2, DisplayPrecision())
	assert.Equal(t, Sparse, DefaultStorage())
	assert.Equal(t, storage.GrowthExact, storage.DefaultGrowth())
}

func TestConfigLogLevel(t *testing.T) {
	t.Cleanup(ResetConfiguration)

	opts, err := Config{LogLevel: "WARN", LogFormat: "text", SparseGrowth: "amortized", DefaultStorage: "dense"}.Options()
	require.NoError(t, err)
	Configure(opts...)

	ctx := context.Background()
	assert.True(t, current().logger.Enabled(ctx, slog.LevelWarn))
	assert.False(t, current().logger.Enabled(ctx, slog.LevelInfo))

	Configure(WithLogLevel(slog.LevelDebug))
	assert.True(t, current().logger.Enabled(ctx, slog.LevelDebug))
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfigFromEnv()
	assert.Equal(t, "off", cfg.LogLevel)
	assert.Equal(t, DefaultDisplayPrecision, cfg.DisplayPrecision)

	opts, err := cfg.Options()
	require.NoError(t, err)
	assert.Len(t, opts, 4)
}

func TestConfigOptionsErrors(t *testing.T) {
	tests := []Config{
		{LogLevel: "loud"},
		{LogLevel: "info", LogFormat: "xml"},
		{SparseGrowth: "doubling"},
		{DefaultStorage: "packed"},
	}
	for _, cfg := range tests {
		_, err := cfg.Options()
		assert.Error(t, err, "%+v", cfg)
	}
}
