// Package prometheus exports catalog metrics to Prometheus.
//
//	reg := prometheus.NewRegistry()
//	cat, err := kanjigo.Open(ctx,
//	    kanjigo.WithSource(src),
//	    kanjigo.WithMetricsCollector(kanjiprom.NewCollector(reg, "kanjigo")),
//	)
package prometheus

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/hupe1980/kanjigo"
)

var _ kanjigo.MetricsCollector = (*Collector)(nil)

// Collector implements kanjigo.MetricsCollector on top of Prometheus vectors.
type Collector struct {
	opLatency *prom.HistogramVec
	queries   *prom.CounterVec
	results   prom.Histogram
	records   prom.Gauge
}

// NewCollector creates a collector and registers its metrics with reg.
// A nil reg registers with the default registerer.
func NewCollector(reg prom.Registerer, namespace string) *Collector {
	if reg == nil {
		reg = prom.DefaultRegisterer
	}
	c := &Collector{
		opLatency: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_latency_seconds",
			Help:      "Latency of catalog operations",
			Buckets:   prom.DefBuckets,
		}, []string{"op", "status"}),
		queries: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "queries_total",
			Help:      "Total queries by result cache outcome",
		}, []string{"cache"}),
		results: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "query_results",
			Help:      "Records returned per query",
			Buckets:   prom.ExponentialBuckets(1, 4, 8),
		}),
		records: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "records",
			Help:      "Records in the current catalog",
		}),
	}
	reg.MustRegister(c.opLatency, c.queries, c.results, c.records)
	return c
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// RecordQuery implements kanjigo.MetricsCollector.
func (c *Collector) RecordQuery(results int, cached bool, d time.Duration, err error) {
	c.opLatency.WithLabelValues("query", status(err)).Observe(d.Seconds())
	if err != nil {
		return
	}
	outcome := "miss"
	if cached {
		outcome = "hit"
	}
	c.queries.WithLabelValues(outcome).Inc()
	c.results.Observe(float64(results))
}

// RecordLoad implements kanjigo.MetricsCollector. A cache miss counts as an
// error.
func (c *Collector) RecordLoad(records int, d time.Duration, err error) {
	c.opLatency.WithLabelValues("load", status(err)).Observe(d.Seconds())
	if err == nil {
		c.records.Set(float64(records))
	}
}

// RecordSave implements kanjigo.MetricsCollector.
func (c *Collector) RecordSave(d time.Duration, err error) {
	c.opLatency.WithLabelValues("save", status(err)).Observe(d.Seconds())
}

// RecordBuild implements kanjigo.MetricsCollector.
func (c *Collector) RecordBuild(records int, d time.Duration, err error) {
	c.opLatency.WithLabelValues("build", status(err)).Observe(d.Seconds())
	if err == nil {
		c.records.Set(float64(records))
	}
}
