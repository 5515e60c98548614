package cache

import (
	"container/list"
	"sync"
	"sync/atomic"
)

// CostFunc returns the cost of a value against the cache capacity.
type CostFunc[V any] func(V) int64

// LRU implements a mutex-guarded least recently used cache.
type LRU[K comparable, V any] struct {
	mu        sync.Mutex
	capacity  int64
	size      int64
	cost      CostFunc[V]
	items     map[K]*list.Element
	evictList *list.List

	hits   atomic.Int64
	misses atomic.Int64
}

type entry[K comparable, V any] struct {
	key   K
	value V
	cost  int64
}

// NewLRU creates a new LRU cache with the given capacity.
// A nil cost function counts every entry as 1.
func NewLRU[K comparable, V any](capacity int64, cost CostFunc[V]) *LRU[K, V] {
	if cost == nil {
		cost = func(V) int64 { return 1 }
	}
	return &LRU[K, V]{
		capacity:  capacity,
		cost:      cost,
		items:     make(map[K]*list.Element),
		evictList: list.New(),
	}
}

// Get returns a cached value.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ent, ok := c.items[key]; ok {
		c.hits.Add(1)
		c.evictList.MoveToFront(ent)
		return ent.Value.(*entry[K, V]).value, true
	}
	c.misses.Add(1)
	var zero V
	return zero, false
}

// Set caches a value. Values costing more than the capacity are not cached.
func (c *LRU[K, V]) Set(key K, value V) {
	itemCost := c.cost(value)

	c.mu.Lock()
	defer c.mu.Unlock()

	if itemCost > c.capacity {
		if ent, ok := c.items[key]; ok {
			c.removeElement(ent)
		}
		return
	}

	if ent, ok := c.items[key]; ok {
		c.evictList.MoveToFront(ent)
		e := ent.Value.(*entry[K, V])
		c.size += itemCost - e.cost
		e.value = value
		e.cost = itemCost
		c.evict()
		return
	}

	for c.size+itemCost > c.capacity {
		ent := c.evictList.Back()
		if ent == nil {
			break
		}
		c.removeElement(ent)
	}

	element := c.evictList.PushFront(&entry[K, V]{key: key, value: value, cost: itemCost})
	c.items[key] = element
	c.size += itemCost
}

// Remove drops a single entry.
func (c *LRU[K, V]) Remove(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ent, ok := c.items[key]; ok {
		c.removeElement(ent)
	}
}

// Invalidate removes entries matching the predicate.
func (c *LRU[K, V]) Invalidate(predicate func(key K) bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// The list is modified by removeElement, so collect first.
	var toRemove []*list.Element
	for key, element := range c.items {
		if predicate(key) {
			toRemove = append(toRemove, element)
		}
	}

	for _, e := range toRemove {
		c.removeElement(e)
	}
}

// Purge removes every entry. Statistics are kept.
func (c *LRU[K, V]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[K]*list.Element)
	c.evictList.Init()
	c.size = 0
}

func (c *LRU[K, V]) evict() {
	for c.size > c.capacity {
		element := c.evictList.Back()
		if element == nil {
			break
		}
		c.removeElement(element)
	}
}

func (c *LRU[K, V]) removeElement(e *list.Element) {
	c.evictList.Remove(e)
	kv := e.Value.(*entry[K, V])
	delete(c.items, kv.key)
	c.size -= kv.cost
}

// Stats returns the hit and miss counters.
func (c *LRU[K, V]) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

// Size returns the current total cost of the cache.
func (c *LRU[K, V]) Size() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.size
}

// Len returns the number of entries.
func (c *LRU[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}
