package kanjigo

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems; see
// metric/prometheus for a Prometheus implementation.
type MetricsCollector interface {
	// RecordQuery is called after each query. results is the number of
	// records returned, cached reports a result cache hit.
	RecordQuery(results int, cached bool, duration time.Duration, err error)

	// RecordLoad is called after each attempt to load the catalog cache.
	RecordLoad(records int, duration time.Duration, err error)

	// RecordSave is called after each cache write.
	RecordSave(duration time.Duration, err error)

	// RecordBuild is called after each build from source, including reloads.
	RecordBuild(records int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordQuery(int, bool, time.Duration, error) {}
func (NoopMetricsCollector) RecordLoad(int, time.Duration, error)        {}
func (NoopMetricsCollector) RecordSave(time.Duration, error)             {}
func (NoopMetricsCollector) RecordBuild(int, time.Duration, error)       {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	QueryCount      atomic.Int64
	QueryCacheHits  atomic.Int64
	QueryErrors     atomic.Int64
	QueryTotalNanos atomic.Int64
	QueryResults    atomic.Int64
	LoadCount       atomic.Int64
	LoadMisses      atomic.Int64
	SaveCount       atomic.Int64
	SaveErrors      atomic.Int64
	BuildCount      atomic.Int64
	BuildErrors     atomic.Int64
	BuildTotalNanos atomic.Int64
	Records         atomic.Int64
}

// RecordQuery implements MetricsCollector.
func (b *BasicMetricsCollector) RecordQuery(results int, cached bool, duration time.Duration, err error) {
	b.QueryCount.Add(1)
	b.QueryTotalNanos.Add(duration.Nanoseconds())
	b.QueryResults.Add(int64(results))
	if cached {
		b.QueryCacheHits.Add(1)
	}
	if err != nil {
		b.QueryErrors.Add(1)
	}
}

// RecordLoad implements MetricsCollector.
func (b *BasicMetricsCollector) RecordLoad(records int, _ time.Duration, err error) {
	b.LoadCount.Add(1)
	if err != nil {
		b.LoadMisses.Add(1)
		return
	}
	b.Records.Store(int64(records))
}

// RecordSave implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSave(_ time.Duration, err error) {
	b.SaveCount.Add(1)
	if err != nil {
		b.SaveErrors.Add(1)
	}
}

// RecordBuild implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBuild(records int, duration time.Duration, err error) {
	b.BuildCount.Add(1)
	b.BuildTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.BuildErrors.Add(1)
		return
	}
	b.Records.Store(int64(records))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		QueryCount:     b.QueryCount.Load(),
		QueryCacheHits: b.QueryCacheHits.Load(),
		QueryErrors:    b.QueryErrors.Load(),
		QueryAvgNanos:  avg(b.QueryTotalNanos.Load(), b.QueryCount.Load()),
		QueryResults:   b.QueryResults.Load(),
		LoadCount:      b.LoadCount.Load(),
		LoadMisses:     b.LoadMisses.Load(),
		SaveCount:      b.SaveCount.Load(),
		SaveErrors:     b.SaveErrors.Load(),
		BuildCount:     b.BuildCount.Load(),
		BuildErrors:    b.BuildErrors.Load(),
		BuildAvgNanos:  avg(b.BuildTotalNanos.Load(), b.BuildCount.Load()),
		Records:        b.Records.Load(),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	QueryCount     int64
	QueryCacheHits int64
	QueryErrors    int64
	QueryAvgNanos  int64
	QueryResults   int64
	LoadCount      int64
	LoadMisses     int64
	SaveCount      int64
	SaveErrors     int64
	BuildCount     int64
	BuildErrors    int64
	BuildAvgNanos  int64
	Records        int64
}
