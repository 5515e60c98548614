package kanjigo

import (
	"time"

	"github.com/hupe1980/kanjigo/cache"
	"github.com/hupe1980/kanjigo/ingest"
	"github.com/hupe1980/kanjigo/store"
)

const (
	// DefaultQueryCacheSize is the default number of cached query results.
	DefaultQueryCacheSize = 1024
	// DefaultReloadInterval is the default minimum time between reloads
	// triggered by Watch.
	DefaultReloadInterval = 5 * time.Second
)

type options struct {
	logger           *Logger
	metricsCollector MetricsCollector
	cache            *cache.Cache
	source           *ingest.Source
	store            *store.Store
	storeOptions     []store.Option
	queryCacheSize   int
	reloadInterval   time.Duration
	saveOnBuild      bool
}

func defaultOptions() options {
	return options{
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
		queryCacheSize:   DefaultQueryCacheSize,
		reloadInterval:   DefaultReloadInterval,
		saveOnBuild:      true,
	}
}

// Option configures Open.
type Option func(*options)

// WithLogger sets the logger. A nil logger disables logging.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &kanjigo.BasicMetricsCollector{}
//	cat, _ := kanjigo.Open(ctx, kanjigo.WithSource(src), kanjigo.WithMetricsCollector(metrics))
//	// ... use catalog ...
//	stats := metrics.GetStats()
//	fmt.Printf("Queries: %d, cache hits: %d\n", stats.QueryCount, stats.QueryCacheHits)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithCache sets the cache the catalog is loaded from and saved to.
func WithCache(c *cache.Cache) Option {
	return func(o *options) {
		o.cache = c
	}
}

// WithSource sets the dictionary files the catalog is built from.
func WithSource(src ingest.Source) Option {
	return func(o *options) {
		o.source = &src
	}
}

// WithStore opens the catalog over an already built store. The store must
// not be mutated afterwards.
func WithStore(s *store.Store) Option {
	return func(o *options) {
		o.store = s
	}
}

// WithStoreOptions passes options to every store the catalog builds or
// decodes.
func WithStoreOptions(opts ...store.Option) Option {
	return func(o *options) {
		o.storeOptions = append(o.storeOptions, opts...)
	}
}

// WithQueryCacheSize sets the number of cached query results.
// Zero or a negative size disables the result cache.
func WithQueryCacheSize(n int) Option {
	return func(o *options) {
		o.queryCacheSize = n
	}
}

// WithReloadInterval sets the minimum time between reloads triggered by
// Watch.
func WithReloadInterval(d time.Duration) Option {
	return func(o *options) {
		o.reloadInterval = d
	}
}

// WithoutCacheWrite stops builds from writing the cache. Save still works.
func WithoutCacheWrite() Option {
	return func(o *options) {
		o.saveOnBuild = false
	}
}
