package kanjigo

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/hupe1980/kanjigo/cache"
	"github.com/hupe1980/kanjigo/ingest"
	internalcache "github.com/hupe1980/kanjigo/internal/cache"
	"github.com/hupe1980/kanjigo/model"
	"github.com/hupe1980/kanjigo/query"
	"github.com/hupe1980/kanjigo/store"
)

// Origin tells where the current store of a catalog came from.
type Origin uint8

const (
	// OriginStore is a store handed to WithStore.
	OriginStore Origin = iota
	// OriginCache is a store decoded from the cache.
	OriginCache
	// OriginSource is a store built from dictionary files.
	OriginSource
)

func (o Origin) String() string {
	switch o {
	case OriginStore:
		return "store"
	case OriginCache:
		return "cache"
	case OriginSource:
		return "source"
	default:
		return fmt.Sprintf("Origin(%d)", uint8(o))
	}
}

// snapshot is one published store. It is never mutated.
type snapshot struct {
	store      *store.Store
	engine     *query.Engine
	generation uint64
	origin     Origin
	stats      ingest.Stats
}

type resultKey struct {
	generation uint64
	input      string
}

// Catalog serves queries over a store that can be swapped atomically.
//
// All methods are safe for concurrent use.
type Catalog struct {
	opts    options
	logger  *Logger
	metrics MetricsCollector

	current    atomic.Pointer[snapshot]
	generation atomic.Uint64
	results    *internalcache.LRU[resultKey, query.Result]
	reloads    singleflight.Group

	mu       sync.Mutex
	closed   bool
	watchers []context.CancelFunc
	wg       sync.WaitGroup
}

// Open creates a catalog. The store is taken from WithStore, else decoded
// from the cache, else built from the source. A build writes the cache; a
// failed write is logged and does not fail Open.
func Open(ctx context.Context, optFns ...Option) (*Catalog, error) {
	o := defaultOptions()
	for _, fn := range optFns {
		fn(&o)
	}

	c := &Catalog{
		opts:    o,
		logger:  o.logger,
		metrics: o.metricsCollector,
	}
	if o.queryCacheSize > 0 {
		c.results = internalcache.NewLRU[resultKey, query.Result](int64(o.queryCacheSize), nil)
	}

	if o.store != nil {
		c.publish(&snapshot{store: o.store, origin: OriginStore})
		return c, nil
	}

	var loadErr error
	if o.cache != nil {
		start := time.Now()
		s, err := o.cache.Load(ctx, o.storeOptions...)
		records := 0
		if s != nil {
			records = s.Len()
		}
		c.metrics.RecordLoad(records, time.Since(start), err)
		c.logger.LogLoad(ctx, records, time.Since(start), err)
		if err == nil {
			c.publish(&snapshot{store: s, origin: OriginCache})
			return c, nil
		}
		if !cache.IsMiss(err) {
			c.logger.WarnContext(ctx, "cache read failed", "error", err)
		}
		loadErr = err
	}

	if o.source == nil {
		if loadErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrNoSource, loadErr)
		}
		return nil, ErrNoSource
	}

	snap, err := c.build(ctx)
	if err != nil {
		return nil, err
	}
	c.publish(snap)
	if o.cache != nil && o.saveOnBuild {
		_, _ = c.save(ctx, snap.store)
	}
	return c, nil
}

// build creates a snapshot from the configured source.
func (c *Catalog) build(ctx context.Context) (*snapshot, error) {
	src := *c.opts.source
	name := strings.Join(src.Paths(), ",")

	start := time.Now()
	s, stats, err := ingest.Load(ctx, src, c.opts.storeOptions...)
	if err != nil {
		err = &BuildError{Source: name, cause: err}
	}
	records := 0
	if s != nil {
		records = s.Len()
	}
	c.metrics.RecordBuild(records, time.Since(start), err)
	c.logger.LogBuild(ctx, name, records, stats.Duplicates, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return &snapshot{store: s, origin: OriginSource, stats: stats}, nil
}

func (c *Catalog) save(ctx context.Context, s *store.Store) (string, error) {
	start := time.Now()
	name, err := c.opts.cache.Save(ctx, s)
	c.metrics.RecordSave(time.Since(start), err)
	c.logger.LogSave(ctx, name, err)
	return name, err
}

// publish installs snap as the current store and drops cached results of
// older generations.
func (c *Catalog) publish(snap *snapshot) {
	snap.generation = c.generation.Add(1)
	snap.engine = query.New(snap.store)
	c.current.Store(snap)
	if c.results != nil {
		gen := snap.generation
		c.results.Invalidate(func(k resultKey) bool { return k.generation != gen })
	}
}

func (c *Catalog) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// Query evaluates input against the current store. Results of repeated
// inputs are served from an LRU until the store is swapped. Every call
// returns its own Records slice; the records themselves are shared.
func (c *Catalog) Query(ctx context.Context, input string) (query.Result, error) {
	start := time.Now()
	if c.isClosed() {
		c.metrics.RecordQuery(0, false, time.Since(start), ErrClosed)
		return query.Result{}, ErrClosed
	}
	if err := ctx.Err(); err != nil {
		c.metrics.RecordQuery(0, false, time.Since(start), err)
		c.logger.LogQuery(ctx, input, 0, false, err)
		return query.Result{}, err
	}

	snap := c.current.Load()
	key := resultKey{generation: snap.generation, input: input}
	if c.results != nil {
		if res, ok := c.results.Get(key); ok {
			res.Records = slices.Clone(res.Records)
			c.metrics.RecordQuery(len(res.Records), true, time.Since(start), nil)
			c.logger.LogQuery(ctx, input, len(res.Records), true, nil)
			return res, nil
		}
	}

	res := snap.engine.Query(input)
	if c.results != nil {
		c.results.Set(key, query.Result{Records: slices.Clone(res.Records), Keyed: res.Keyed})
	}
	c.metrics.RecordQuery(len(res.Records), false, time.Since(start), nil)
	c.logger.LogQuery(ctx, input, len(res.Records), false, nil)
	return res, nil
}

// Lookup returns the record with the given codepoint.
func (c *Catalog) Lookup(cp rune) (*model.Kanji, error) {
	if c.isClosed() {
		return nil, ErrClosed
	}
	k, ok := c.current.Load().store.Lookup(cp)
	if !ok {
		return nil, fmt.Errorf("%w: U+%04X", ErrNotFound, cp)
	}
	return k, nil
}

// Variants resolves the variants of the record with the given codepoint.
func (c *Catalog) Variants(cp rune) ([]*model.Kanji, error) {
	if c.isClosed() {
		return nil, ErrClosed
	}
	s := c.current.Load().store
	k, ok := s.Lookup(cp)
	if !ok {
		return nil, fmt.Errorf("%w: U+%04X", ErrNotFound, cp)
	}
	return s.Variants(k), nil
}

// Reload rebuilds the store from the source and swaps it in. Queries that
// already hold the previous store finish against it. Concurrent calls share
// one rebuild, which runs detached from the cancellation of any single
// caller.
//
// A Reload whose ctx is done returns ctx.Err() without waiting, but the
// shared rebuild keeps running and may still swap the store and write the
// cache afterwards.
func (c *Catalog) Reload(ctx context.Context) error {
	if c.isClosed() {
		return ErrClosed
	}
	if c.opts.source == nil {
		return ErrNoSource
	}

	buildCtx := context.WithoutCancel(ctx)
	ch := c.reloads.DoChan("reload", func() (any, error) {
		snap, err := c.build(buildCtx)
		if err != nil {
			return nil, err
		}
		if c.isClosed() {
			return nil, ErrClosed
		}
		c.publish(snap)
		if c.opts.cache != nil && c.opts.saveOnBuild {
			_, _ = c.save(buildCtx, snap.store)
		}
		return snap.generation, nil
	})

	select {
	case <-ctx.Done():
		return ctx.Err()
	case res := <-ch:
		var gen uint64
		if res.Err == nil {
			gen = res.Val.(uint64)
		}
		c.logger.LogReload(ctx, gen, res.Err)
		return res.Err
	}
}

// Save writes the current store to the cache and returns the blob name.
func (c *Catalog) Save(ctx context.Context) (string, error) {
	if c.isClosed() {
		return "", ErrClosed
	}
	if c.opts.cache == nil {
		return "", ErrNoCache
	}
	return c.save(ctx, c.current.Load().store)
}

// Store returns the current store. It must be treated as read-only.
func (c *Catalog) Store() *store.Store {
	return c.current.Load().store
}

// Stats describes the current store.
type Stats struct {
	Records    int
	Generation uint64
	Origin     Origin
	// Build holds the ingestion statistics when Origin is OriginSource.
	Build ingest.Stats
}

// Stats returns information about the current store.
func (c *Catalog) Stats() Stats {
	snap := c.current.Load()
	return Stats{
		Records:    snap.store.Len(),
		Generation: snap.generation,
		Origin:     snap.origin,
		Build:      snap.stats,
	}
}

// Close stops every watcher and rejects further calls. It is idempotent.
func (c *Catalog) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	cancels := c.watchers
	c.watchers = nil
	c.mu.Unlock()

	for _, cancel := range cancels {
		cancel()
	}
	c.wg.Wait()

	if c.results != nil {
		c.results.Purge()
	}
	return nil
}

// IsMiss reports whether err is a cache miss rather than a storage failure.
func IsMiss(err error) bool {
	return cache.IsMiss(err)
}
