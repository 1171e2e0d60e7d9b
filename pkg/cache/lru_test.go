package cache_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/borrmann/bautagebuch/pkg/cache"
)

func TestLRU_Basic(t *testing.T) {
	t.Run("put and get", func(t *testing.T) {
		c := cache.NewLRU[string, int](3)

		c.Put("a", 1)
		c.Put("b", 2)

		val, ok := c.Get("a")
		assert.True(t, ok)
		assert.Equal(t, 1, val)
		assert.Equal(t, 2, c.Len())
	})

	t.Run("get non-existent", func(t *testing.T) {
		c := cache.NewLRU[string, int](3)

		val, ok := c.Get("missing")
		assert.False(t, ok)
		assert.Equal(t, 0, val)
	})

	t.Run("update existing keeps length", func(t *testing.T) {
		c := cache.NewLRU[string, int](3)

		c.Put("a", 1)
		c.Put("a", 2)

		val, _ := c.Get("a")
		assert.Equal(t, 2, val)
		assert.Equal(t, 1, c.Len())
	})

	t.Run("non-positive capacity uses default", func(t *testing.T) {
		c := cache.NewLRU[int, int](0)
		for i := range cache.DefaultCapacity + 5 {
			c.Put(i, i)
		}
		assert.Equal(t, cache.DefaultCapacity, c.Len())
	})
}

func TestLRU_Eviction(t *testing.T) {
	c := cache.NewLRU[string, int](2)

	c.Put("a", 1)
	c.Put("b", 2)
	_, _ = c.Get("a") // a becomes most recent
	c.Put("c", 3)

	_, ok := c.Get("b")
	assert.False(t, ok, "b should have been evicted")

	_, ok = c.Get("a")
	assert.True(t, ok)
	_, ok = c.Get("c")
	assert.True(t, ok)

	c.Remove("a")
	_, ok = c.Get("a")
	assert.False(t, ok)
}

func TestLRU_GetOrLoad(t *testing.T) {
	t.Run("loads once", func(t *testing.T) {
		c := cache.NewLRU[string, string](4)
		calls := 0
		load := func() (string, error) {
			calls++
			return "value", nil
		}

		v, err := c.GetOrLoad("k", load)
		require.NoError(t, err)
		assert.Equal(t, "value", v)

		v, err = c.GetOrLoad("k", load)
		require.NoError(t, err)
		assert.Equal(t, "value", v)
		assert.Equal(t, 1, calls)
	})

	t.Run("does not cache errors", func(t *testing.T) {
		c := cache.NewLRU[string, string](4)
		boom := errors.New("boom")

		_, err := c.GetOrLoad("k", func() (string, error) { return "", boom })
		require.ErrorIs(t, err, boom)
		assert.Equal(t, 0, c.Len())
	})
}
