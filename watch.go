package kanjigo

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"
)

// watchDebounce is how long a source file must stay quiet before a change
// triggers a reload.
const watchDebounce = 100 * time.Millisecond

// Watch reloads the catalog whenever a source file changes. Reloads are
// spaced at least WithReloadInterval apart. Watching stops when ctx is done
// or the catalog is closed. Watch returns once the watcher is set up.
func (c *Catalog) Watch(ctx context.Context) error {
	if c.opts.source == nil {
		return ErrNoSource
	}

	files := make(map[string]struct{})
	dirs := make(map[string]struct{})
	for _, p := range c.opts.source.Paths() {
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		files[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	// Directories survive the rename-over that editors and downloads use.
	for dir := range dirs {
		if err := fw.Add(dir); err != nil {
			_ = fw.Close()
			return err
		}
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		_ = fw.Close()
		return ErrClosed
	}
	ctx, cancel := context.WithCancel(ctx)
	c.watchers = append(c.watchers, cancel)
	c.wg.Add(1)
	c.mu.Unlock()

	limit := rate.Inf
	if c.opts.reloadInterval > 0 {
		limit = rate.Every(c.opts.reloadInterval)
	}
	w := &watcher{
		catalog: c,
		fw:      fw,
		files:   files,
		limiter: rate.NewLimiter(limit, 1),
	}
	go w.loop(ctx)
	return nil
}

type watcher struct {
	catalog *Catalog
	fw      *fsnotify.Watcher
	files   map[string]struct{}
	limiter *rate.Limiter
}

func (w *watcher) relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
		return false
	}
	abs, err := filepath.Abs(ev.Name)
	if err != nil {
		return false
	}
	_, ok := w.files[abs]
	return ok
}

func (w *watcher) loop(ctx context.Context) {
	c := w.catalog
	defer c.wg.Done()
	defer w.fw.Close()

	ticker := time.NewTicker(watchDebounce)
	defer ticker.Stop()

	var lastEvent time.Time
	pending := false

	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if w.relevant(ev) {
				pending = true
				lastEvent = time.Now()
			}

		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			c.logger.WarnContext(ctx, "watch error", "error", err)

		case <-ticker.C:
			if !pending || time.Since(lastEvent) < watchDebounce {
				continue
			}
			if err := w.limiter.Wait(ctx); err != nil {
				return
			}
			pending = false
			// Reload logs its own failures.
			_ = c.Reload(ctx)
		}
	}
}
