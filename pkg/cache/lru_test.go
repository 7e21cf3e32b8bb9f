package cache_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vervevero/portalkit/pkg/cache"
)

func TestLRU_PutGet(t *testing.T) {
	t.Parallel()

	c := cache.NewLRU[string, int](3, nil)
	c.Put("a", 1)
	c.Put("b", 2)

	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	_, ok = c.Get("missing")
	assert.False(t, ok)
	assert.Equal(t, 2, c.Len())
}

func TestLRU_EvictsLeastRecentlyUsed(t *testing.T) {
	t.Parallel()

	var evicted []string
	c := cache.NewLRU[string, int](2, func(key string, _ int) {
		evicted = append(evicted, key)
	})

	c.Put("a", 1)
	c.Put("b", 2)

	// Touch "a" so "b" becomes the eviction candidate.
	_, ok := c.Get("a")
	require.True(t, ok)

	c.Put("c", 3)

	assert.Equal(t, []string{"b"}, evicted)
	_, ok = c.Get("b")
	assert.False(t, ok)
	_, ok = c.Get("a")
	assert.True(t, ok)
	_, ok = c.Get("c")
	assert.True(t, ok)
}

func TestLRU_UpdateDoesNotEvict(t *testing.T) {
	t.Parallel()

	var evictions int
	c := cache.NewLRU[string, int](2, func(string, int) { evictions++ })

	c.Put("a", 1)
	c.Put("b", 2)
	c.Put("a", 10)

	assert.Zero(t, evictions)
	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 10, v)
}

func TestLRU_DeleteSkipsCallback(t *testing.T) {
	t.Parallel()

	var evictions int
	c := cache.NewLRU[string, int](2, func(string, int) { evictions++ })

	c.Put("a", 1)
	v, ok := c.Delete("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)
	assert.Zero(t, evictions)

	_, ok = c.Delete("a")
	assert.False(t, ok)
}

func TestLRU_PurgeInvokesCallbackForAll(t *testing.T) {
	t.Parallel()

	var evicted []string
	c := cache.NewLRU[string, int](5, func(key string, _ int) {
		evicted = append(evicted, key)
	})

	c.Put("a", 1)
	c.Put("b", 2)
	c.Put("c", 3)
	c.Purge()

	assert.ElementsMatch(t, []string{"a", "b", "c"}, evicted)
	assert.Zero(t, c.Len())
}

func TestLRU_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	c := cache.NewLRU[int, int](50, nil)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(base int) {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				key := base*200 + j
				c.Put(key, key)
				c.Get(key)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 50, c.Len())
}

func TestNewLRU_PanicsOnInvalidCapacity(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { cache.NewLRU[string, int](0, nil) })
}
