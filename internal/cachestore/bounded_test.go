package cachestore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoundedCacheGetSetRoundTrip(t *testing.T) {
	c := NewBoundedCache[string, int](2)
	c.Set("a", 1)
	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)
}

func TestBoundedCacheEvictsOldestOnCapacity(t *testing.T) {
	c := NewBoundedCache[string, int](2)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("c", 3)

	_, ok := c.Get("a")
	assert.False(t, ok, "oldest entry should have been evicted")

	_, ok = c.Get("b")
	assert.True(t, ok)
	_, ok = c.Get("c")
	assert.True(t, ok)
	assert.Equal(t, 2, c.Len())
}

func TestBoundedCacheMissReturnsFalse(t *testing.T) {
	c := NewBoundedCache[string, int](2)
	_, ok := c.Get("missing")
	assert.False(t, ok)
}
