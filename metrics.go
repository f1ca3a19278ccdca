package quantities

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting engine metrics.
// Implement this interface to integrate with monitoring systems like
// Prometheus; see the metric package for a ready-made adapter.
//
// Collectors are called synchronously on the calling goroutine.
type MetricsCollector interface {
	// RecordOperation is called after each arithmetic operation.
	// op names the operation ("plus", "incrementBy", ...), err is nil if
	// successful.
	RecordOperation(op string, duration time.Duration, err error)

	// RecordCopyOnWrite is called when shared storage is duplicated before
	// a write. length is the logical length of the copied storage.
	RecordCopyOnWrite(length int)

	// RecordConversion is called when storage changes representation.
	RecordConversion(from, to StorageType, length int)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordOperation(string, time.Duration, error) {}
func (NoopMetricsCollector) RecordCopyOnWrite(int)                        {}
func (NoopMetricsCollector) RecordConversion(StorageType, StorageType, int) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	OperationCount      atomic.Int64
	OperationErrors     atomic.Int64
	OperationTotalNanos atomic.Int64
	CopyOnWriteCount    atomic.Int64
	CopyOnWriteCells    atomic.Int64
	DensifyCount        atomic.Int64
	SparsifyCount       atomic.Int64
}

// RecordOperation implements MetricsCollector.
func (b *BasicMetricsCollector) RecordOperation(_ string, duration time.Duration, err error) {
	b.OperationCount.Add(1)
	b.OperationTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.OperationErrors.Add(1)
	}
}

// RecordCopyOnWrite implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCopyOnWrite(length int) {
	b.CopyOnWriteCount.Add(1)
	b.CopyOnWriteCells.Add(int64(length))
}

// RecordConversion implements MetricsCollector.
func (b *BasicMetricsCollector) RecordConversion(_, to StorageType, _ int) {
	if to == Dense {
		b.DensifyCount.Add(1)
	} else {
		b.SparsifyCount.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		OperationCount:    b.OperationCount.Load(),
		OperationErrors:   b.OperationErrors.Load(),
		OperationAvgNanos: b.getAvgOperationNanos(),
		CopyOnWriteCount:  b.CopyOnWriteCount.Load(),
		CopyOnWriteCells:  b.CopyOnWriteCells.Load(),
		DensifyCount:      b.DensifyCount.Load(),
		SparsifyCount:     b.SparsifyCount.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgOperationNanos() int64 {
	count := b.OperationCount.Load()
	if count == 0 {
		return 0
	}
	return b.OperationTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	OperationCount    int64
	OperationErrors   int64
	OperationAvgNanos int64
	CopyOnWriteCount  int64
	CopyOnWriteCells  int64
	DensifyCount      int64
	SparsifyCount     int64
}
