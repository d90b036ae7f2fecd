package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTTL_SetGet(t *testing.T) {
	c := NewTTL[string](5 * time.Minute)

	_, ok := c.Get("missing")
	assert.False(t, ok)

	c.Set("k", "v")
	got, ok := c.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "v", got)
}

func TestTTL_ExpiresAfterWindow(t *testing.T) {
	c := NewTTL[int](5 * time.Minute)

	base := time.Date(2024, 3, 6, 12, 0, 0, 0, time.UTC)
	current := base
	c.now = func() time.Time { return current }

	c.Set("k", 42)

	current = base.Add(4 * time.Minute)
	_, ok := c.Get("k")
	assert.True(t, ok)

	current = base.Add(5*time.Minute + time.Second)
	_, ok = c.Get("k")
	assert.False(t, ok)
}

func TestTTL_InvalidateIsEager(t *testing.T) {
	c := NewTTL[int](5 * time.Minute)
	c.Set("k", 1)

	c.Invalidate("k")

	_, ok := c.Get("k")
	assert.False(t, ok)
}
