package gamification

import "time"

// DateOnly formats a time as the calendar-date string stored on profiles
func DateOnly(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// NextStreak computes the streak value for a profile seen on `now`, given its
// last-active date string. Same day keeps the streak, the day after increments
// it, anything else resets to 1.
func NextStreak(lastActiveDate string, streak int, now time.Time) int {
	today := DateOnly(now)
	if lastActiveDate == today {
		return streak
	}

	yesterday := DateOnly(now.AddDate(0, 0, -1))
	if lastActiveDate == yesterday {
		return streak + 1
	}

	return 1
}
