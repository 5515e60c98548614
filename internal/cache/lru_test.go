package cache

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func byteCost(b []byte) int64 { return int64(len(b)) }

func TestLRU_GetSet(t *testing.T) {
	c := NewLRU[string, int](2, nil)

	c.Set("a", 1)
	c.Set("b", 2)

	v, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	// "b" is now least recently used.
	c.Set("c", 3)

	_, ok = c.Get("b")
	assert.False(t, ok)
	_, ok = c.Get("a")
	assert.True(t, ok)
	_, ok = c.Get("c")
	assert.True(t, ok)
	assert.Equal(t, 2, c.Len())
}

func TestLRU_EdgeCases(t *testing.T) {
	c := NewLRU[string, []byte](50, byteCost)

	// Item larger than capacity
	c.Set("k", make([]byte, 60))
	_, ok := c.Get("k")
	assert.False(t, ok, "Item > capacity should not be cached")

	// Update existing item
	c.Set("k", make([]byte, 10))
	assert.Equal(t, int64(10), c.Size())

	c.Set("k", make([]byte, 20))
	assert.Equal(t, int64(20), c.Size())

	c.Set("k", make([]byte, 5))
	assert.Equal(t, int64(5), c.Size())

	// Oversized update drops the stale value.
	c.Set("k", make([]byte, 51))
	_, ok = c.Get("k")
	assert.False(t, ok)
	assert.Equal(t, int64(0), c.Size())
}

func TestLRU_UpdateEvicts(t *testing.T) {
	c := NewLRU[string, []byte](30, byteCost)
	c.Set("a", make([]byte, 10))
	c.Set("b", make([]byte, 10))

	// Growing "b" pushes the total over capacity and evicts "a".
	c.Set("b", make([]byte, 25))

	_, ok := c.Get("a")
	assert.False(t, ok)
	assert.Equal(t, int64(25), c.Size())
}

func TestLRU_Stats(t *testing.T) {
	c := NewLRU[int, string](10, nil)
	c.Set(1, "one")

	c.Get(1)
	c.Get(1)
	c.Get(2)

	hits, misses := c.Stats()
	assert.Equal(t, int64(2), hits)
	assert.Equal(t, int64(1), misses)
}

func TestLRU_Invalidate(t *testing.T) {
	type key struct {
		gen   uint64
		input string
	}
	c := NewLRU[key, int](10, nil)
	c.Set(key{1, "a"}, 1)
	c.Set(key{1, "b"}, 2)
	c.Set(key{2, "a"}, 3)

	c.Invalidate(func(k key) bool { return k.gen == 1 })

	assert.Equal(t, 1, c.Len())
	v, ok := c.Get(key{2, "a"})
	assert.True(t, ok)
	assert.Equal(t, 3, v)
}

func TestLRU_RemovePurge(t *testing.T) {
	c := NewLRU[string, int](10, nil)
	c.Set("a", 1)
	c.Set("b", 2)

	c.Remove("a")
	c.Remove("missing")
	assert.Equal(t, 1, c.Len())

	c.Purge()
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, int64(0), c.Size())

	c.Set("c", 3)
	v, ok := c.Get("c")
	assert.True(t, ok)
	assert.Equal(t, 3, v)
}

func TestLRU_Concurrent(t *testing.T) {
	c := NewLRU[string, int](64, nil)

	var wg sync.WaitGroup
	for g := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 500 {
				k := fmt.Sprintf("%d-%d", g, i%100)
				c.Set(k, i)
				c.Get(k)
			}
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, c.Len(), 64)
	assert.LessOrEqual(t, c.Size(), int64(64))
}
