package gamification

import (
	"testing"

	"eurolens/backend/models"

	"github.com/stretchr/testify/assert"
)

func TestMergeProfilesPerFieldMax(t *testing.T) {
	server := models.Profile{
		XP:             100,
		Level:          GetLevel(100),
		Streak:         3,
		LastActiveDate: "2026-08-30",
		Achievements:   []string{"first-steps"},
		Stats:          models.UserStats{MEPsContacted: 2, ProceduresViewed: 10},
	}
	guest := models.Profile{
		XP:             50,
		Level:          GetLevel(50),
		Streak:         5,
		LastActiveDate: "2026-09-01",
		Achievements:   []string{"first-steps", "first-voice"},
		Stats:          models.UserStats{MEPsContacted: 5, TotalPositions: 1},
	}

	merged := MergeProfiles(server, guest)

	assert.Equal(t, 100, merged.XP)
	assert.Equal(t, GetLevel(100), merged.Level)
	assert.Equal(t, 5, merged.Streak)
	assert.Equal(t, "2026-09-01", merged.LastActiveDate)
	assert.Equal(t, 5, merged.Stats.MEPsContacted)
	assert.Equal(t, 10, merged.Stats.ProceduresViewed)
	assert.Equal(t, 1, merged.Stats.TotalPositions)
	assert.Equal(t, []string{"first-steps", "first-voice"}, merged.Achievements)
}

func TestMergeProfilesIdempotent(t *testing.T) {
	server := models.Profile{
		XP:             300,
		Level:          GetLevel(300),
		Streak:         2,
		LastActiveDate: "2026-08-31",
		Achievements:   []string{"first-voice"},
		Stats:          models.UserStats{TotalPositions: 3},
	}
	guest := models.Profile{
		XP:             120,
		Streak:         4,
		LastActiveDate: "2026-08-29",
		Achievements:   []string{"first-steps"},
		Stats:          models.UserStats{ProceduresViewed: 7},
	}

	once := MergeProfiles(server, guest)
	twice := MergeProfiles(once, guest)
	assert.Equal(t, once, twice)
}

func TestMergeLastActiveEmptySides(t *testing.T) {
	assert.Equal(t, "2026-09-01", MergeLastActive("", "2026-09-01"))
	assert.Equal(t, "2026-09-01", MergeLastActive("2026-09-01", ""))
	assert.Equal(t, "", MergeLastActive("", ""))
}

func TestMergeAchievementsUnion(t *testing.T) {
	merged := MergeAchievements([]string{"a", "b"}, []string{"b", "c", "a"})
	assert.Equal(t, []string{"a", "b", "c"}, merged)
}
