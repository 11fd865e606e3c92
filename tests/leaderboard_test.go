package tests

import (
	"fmt"
	"testing"

	"eurolens/backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func seedLeaderboard(t *testing.T) {
	t.Helper()
	for i := 0; i < 3; i++ {
		username := fmt.Sprintf("ranked-%d", i)
		var existing models.UserProfile
		if err := db.Where("username = ?", username).First(&existing).Error; err == nil {
			continue
		}
		user := models.User{
			Username:     username,
			Email:        username + "@example.com",
			PasswordHash: "x",
		}
		assert.NoError(t, db.Create(&user).Error)
		profile := models.UserProfile{
			PublicID:     uuid.NewString(),
			UserID:       user.ID,
			Username:     username,
			XP:           1000 * (i + 1),
			Level:        5,
			Achievements: []string{},
			Stats:        models.UserStats{MEPsContacted: i},
		}
		assert.NoError(t, db.Create(&profile).Error)
	}
}

func TestLeaderboardOrderAndRanks(t *testing.T) {
	seedLeaderboard(t)

	resp := doJSON(t, "GET", "/api/leaderboard", nil, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	result := decodeBody(t, resp)
	entries := result["leaderboard"].([]interface{})
	assert.NotEmpty(t, entries)

	prevXP := -1.0
	for i, raw := range entries {
		entry := raw.(map[string]interface{})
		assert.Equal(t, float64(i+1), entry["rank"])
		xp := entry["xp"].(float64)
		if prevXP >= 0 {
			assert.LessOrEqual(t, xp, prevXP)
		}
		prevXP = xp
	}
}

func TestLeaderboardPagination(t *testing.T) {
	seedLeaderboard(t)

	resp := doJSON(t, "GET", "/api/leaderboard?limit=2&offset=1", nil, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	result := decodeBody(t, resp)
	entries := result["leaderboard"].([]interface{})
	assert.Len(t, entries, 2)

	// Ranks continue from the offset
	first := entries[0].(map[string]interface{})
	assert.Equal(t, float64(2), first["rank"])
}

func TestLeaderboardLimitClamped(t *testing.T) {
	resp := doJSON(t, "GET", "/api/leaderboard?limit=5000", nil, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	result := decodeBody(t, resp)
	entries := result["leaderboard"].([]interface{})
	assert.LessOrEqual(t, len(entries), 100)

	// Nonsense values fall back to sane defaults instead of erroring
	resp = doJSON(t, "GET", "/api/leaderboard?limit=-3&offset=-9", nil, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
