package quantities

import (
	"log/slog"
	"sync/atomic"

	"github.com/hupe1980/quantities/internal/storage"
)

// DefaultDisplayPrecision is the number of decimals used by String.
const DefaultDisplayPrecision = 3

type options struct {
	metricsCollector MetricsCollector
	logger           *Logger
	sparseGrowth     SparseGrowth
	precision        int
	defaultStorage   StorageType
}

// Option configures process-wide engine behavior via Configure.
type Option func(*options)

// WithMetricsCollector configures a metrics collector for engine events.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &quantities.BasicMetricsCollector{}
//	quantities.Configure(quantities.WithMetricsCollector(metrics))
//	// ... use containers ...
//	stats := metrics.GetStats()
//	fmt.Printf("COW copies: %d\n", stats.CopyOnWriteCount)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging of engine events.
// Pass nil to disable logging.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithSparseGrowth selects how sparse buffers grow when a new nonzero
// position is inserted.
func WithSparseGrowth(g SparseGrowth) Option {
	return func(o *options) {
		o.sparseGrowth = g
	}
}

// WithDisplayPrecision sets the number of decimals used by String.
// Negative values select the shortest exact representation.
func WithDisplayPrecision(p int) Option {
	return func(o *options) {
		o.precision = p
	}
}

// WithDefaultStorage sets the representation returned by DefaultStorage.
// Constructors never consult it; it exists for callers (such as the
// quantcalc CLI) that let users omit the storage choice.
func WithDefaultStorage(t StorageType) Option {
	return func(o *options) {
		o.defaultStorage = t
	}
}

func defaultOptions() options {
	return options{
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
		sparseGrowth:     GrowthAmortized,
		precision:        DefaultDisplayPrecision,
		defaultStorage:   Dense,
	}
}

func applyOptions(base options, optFns []Option) options {
	o := base
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}

var settings atomic.Pointer[options]

func init() {
	o := defaultOptions()
	settings.Store(&o)
}

// Configure applies opts on top of the current engine settings. It is safe
// to call concurrently with readers; containers pick up the new settings on
// their next operation.
func Configure(opts ...Option) {
	for {
		cur := settings.Load()
		next := applyOptions(*cur, opts)
		if settings.CompareAndSwap(cur, &next) {
			storage.SetDefaultGrowth(next.sparseGrowth)
			return
		}
	}
}

// ResetConfiguration restores the default settings.
func ResetConfiguration() {
	o := defaultOptions()
	settings.Store(&o)
	storage.SetDefaultGrowth(o.sparseGrowth)
}

// DefaultStorage returns the configured default representation.
func DefaultStorage() StorageType { return settings.Load().defaultStorage }

// DisplayPrecision returns the configured number of decimals for String.
func DisplayPrecision() int { return settings.Load().precision }

func current() *options { return settings.Load() }
