package cache

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct {
	current time.Time
}

func (f *fakeClock) now() time.Time { return f.current }

func (f *fakeClock) advance(d time.Duration) { f.current = f.current.Add(d) }

func newFakeClock() *fakeClock {
	return &fakeClock{current: time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)}
}

func TestGetExpiresStaleEntries(t *testing.T) {
	clock := newFakeClock()
	c := NewWithClock(DefaultTTL, DefaultMaxSize, clock.now)

	c.SetTTL("a", "value", time.Second)

	got, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, "value", got)

	clock.advance(2 * time.Second)

	_, ok = c.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestEntryFreshAtExactTTL(t *testing.T) {
	clock := newFakeClock()
	c := NewWithClock(DefaultTTL, DefaultMaxSize, clock.now)

	c.SetTTL("a", 1, time.Minute)
	clock.advance(time.Minute)

	// Expiry is strictly past the TTL
	_, ok := c.Get("a")
	assert.True(t, ok)
}

func TestCapacityEvictsOldestStored(t *testing.T) {
	clock := newFakeClock()
	c := NewWithClock(DefaultTTL, 100, clock.now)

	for i := 0; i < 150; i++ {
		c.Set(fmt.Sprintf("key-%d", i), i)
		clock.advance(time.Millisecond)
	}

	assert.Equal(t, 100, c.Len())

	// The 50 oldest are gone, the 100 newest survive
	_, ok := c.Get("key-0")
	assert.False(t, ok)
	_, ok = c.Get("key-49")
	assert.False(t, ok)
	_, ok = c.Get("key-50")
	assert.True(t, ok)
	_, ok = c.Get("key-149")
	assert.True(t, ok)
}

func TestSetReplacesExisting(t *testing.T) {
	clock := newFakeClock()
	c := NewWithClock(DefaultTTL, DefaultMaxSize, clock.now)

	c.Set("a", "old")
	c.Set("a", "new")

	got, _ := c.Get("a")
	assert.Equal(t, "new", got)
	assert.Equal(t, 1, c.Len())
}

func TestDeleteAndClear(t *testing.T) {
	c := New()
	c.Set("a", 1)
	c.Set("b", 2)

	c.Delete("a")
	assert.False(t, c.Has("a"))
	assert.True(t, c.Has("b"))

	c.Clear()
	assert.Equal(t, 0, c.Len())
}

func TestKeyVersioned(t *testing.T) {
	assert.Equal(t, "v3:procedures:2026", Key("procedures", 2026))
	assert.Equal(t, "v3:procedure:2024-0123", Key("procedure", "2024-0123"))
	assert.NotEqual(t, Key("a", "b"), Key("a", "c"))
}
