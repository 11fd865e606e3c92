package gamification

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNextStreak(t *testing.T) {
	now := time.Date(2026, 9, 1, 14, 0, 0, 0, time.UTC)

	// Same day keeps the streak
	assert.Equal(t, 4, NextStreak("2026-09-01", 4, now))

	// Yesterday increments
	assert.Equal(t, 5, NextStreak("2026-08-31", 4, now))

	// Older dates and empty history reset to 1
	assert.Equal(t, 1, NextStreak("2026-08-30", 4, now))
	assert.Equal(t, 1, NextStreak("", 4, now))
}

func TestNextStreakAcrossMonthBoundary(t *testing.T) {
	now := time.Date(2026, 9, 1, 0, 30, 0, 0, time.UTC)
	assert.Equal(t, 3, NextStreak("2026-08-31", 2, now))
}

func TestDateOnlyUTC(t *testing.T) {
	// A local time past midnight UTC maps to the UTC date
	loc := time.FixedZone("CEST", 2*3600)
	late := time.Date(2026, 9, 1, 1, 0, 0, 0, loc) // 23:00 UTC on Aug 31
	assert.Equal(t, "2026-08-31", DateOnly(late))
}
