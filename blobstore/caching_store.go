package blobstore

import (
	"context"

	"github.com/hupe1980/kanjigo/internal/cache"
)

// CachingStore keeps the content of recently opened blobs in memory.
// It is meant for remote stores, where every Open is a round trip.
type CachingStore struct {
	inner    BlobStore
	lru      *cache.LRU[string, []byte]
	uncached map[string]struct{}
}

var _ BlobStore = (*CachingStore)(nil)

// CachingOption configures a CachingStore.
type CachingOption func(*CachingStore)

// WithUncached names blobs that are always read from the inner store.
// Use it for blobs that other writers may replace, such as a pointer to
// the current version.
func WithUncached(names ...string) CachingOption {
	return func(s *CachingStore) {
		for _, n := range names {
			s.uncached[n] = struct{}{}
		}
	}
}

// NewCachingStore wraps inner with an LRU holding up to capacity bytes.
func NewCachingStore(inner BlobStore, capacity int64, optFns ...CachingOption) *CachingStore {
	s := &CachingStore{
		inner: inner,
		lru: cache.NewLRU[string, []byte](capacity, func(b []byte) int64 {
			return int64(len(b))
		}),
		uncached: make(map[string]struct{}),
	}
	for _, fn := range optFns {
		fn(s)
	}
	return s
}

// Open serves the blob from memory or reads it whole from the inner store.
func (s *CachingStore) Open(ctx context.Context, name string) (Blob, error) {
	if _, ok := s.uncached[name]; ok {
		return s.inner.Open(ctx, name)
	}
	if data, ok := s.lru.Get(name); ok {
		return NewBytesBlob(data), nil
	}

	data, err := ReadAll(ctx, s.inner, name)
	if err != nil {
		return nil, err
	}
	s.lru.Set(name, data)
	return NewBytesBlob(data), nil
}

// Put writes through and drops the cached copy.
func (s *CachingStore) Put(ctx context.Context, name string, data []byte) error {
	s.lru.Remove(name)
	return s.inner.Put(ctx, name, data)
}

// Delete removes the blob and its cached copy.
func (s *CachingStore) Delete(ctx context.Context, name string) error {
	s.lru.Remove(name)
	return s.inner.Delete(ctx, name)
}

// List is not cached.
func (s *CachingStore) List(ctx context.Context, prefix string) ([]string, error) {
	return s.inner.List(ctx, prefix)
}

// Stats returns the hit and miss counters of the cache.
func (s *CachingStore) Stats() (hits, misses int64) {
	return s.lru.Stats()
}
