package ratelimit

import (
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

func TestAllowWithinLimit(t *testing.T) {
	clock := newFakeClock()
	l := NewWithClock(10, time.Minute, clock.now)

	for i := 0; i < 10; i++ {
		result := l.Allow("1.2.3.4")
		assert.True(t, result.Allowed, "request %d", i+1)
		assert.Equal(t, 9-i, result.Remaining)
	}

	result := l.Allow("1.2.3.4")
	assert.False(t, result.Allowed)
	assert.Equal(t, 0, result.Remaining)
	assert.Greater(t, result.RetryAfter, time.Duration(0))
	assert.LessOrEqual(t, result.RetryAfter, time.Minute)
}

func TestWindowResetsAfterDuration(t *testing.T) {
	clock := newFakeClock()
	l := NewWithClock(2, time.Minute, clock.now)

	l.Allow("k")
	l.Allow("k")
	assert.False(t, l.Allow("k").Allowed)

	clock.advance(time.Minute)

	result := l.Allow("k")
	assert.True(t, result.Allowed)
	assert.Equal(t, 1, result.Remaining)
}

func TestKeysAreIndependent(t *testing.T) {
	clock := newFakeClock()
	l := NewWithClock(1, time.Minute, clock.now)

	assert.True(t, l.Allow("a").Allowed)
	assert.False(t, l.Allow("a").Allowed)
	assert.True(t, l.Allow("b").Allowed)
}

func TestLapsedWindowsPruned(t *testing.T) {
	clock := newFakeClock()
	l := NewWithClock(5, time.Minute, clock.now)

	l.Allow("a")
	l.Allow("b")
	assert.Len(t, l.windows, 2)

	clock.advance(2 * time.Minute)
	l.Allow("c")

	// a and b lapsed and were dropped on the next Allow
	assert.Len(t, l.windows, 1)
}

func TestRetryAfterShrinksAsWindowAges(t *testing.T) {
	clock := newFakeClock()
	l := NewWithClock(1, time.Minute, clock.now)

	l.Allow("k")
	first := l.Allow("k")
	clock.advance(30 * time.Second)
	second := l.Allow("k")

	assert.False(t, first.Allowed)
	assert.False(t, second.Allowed)
	assert.Less(t, second.RetryAfter, first.RetryAfter)
}
