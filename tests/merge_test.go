package tests

import (
	"testing"

	"eurolens/backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestMergeGuestProgress(t *testing.T) {
	resp := doJSON(t, "POST", "/api/auth/register", map[string]string{
		"username": "merger",
		"email":    "merger@example.com",
		"password": "password123",
	}, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	token := decodeBody(t, resp)["token"].(string)

	// The account already has a stance on one procedure
	resp = doJSON(t, "POST", "/api/me/positions", map[string]string{
		"procedureId":    "2026/0042(COD)",
		"procedureTitle": "Digital Fairness Act",
		"position":       "support",
	}, token)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := map[string]interface{}{
		"profile": map[string]interface{}{
			"id":             "guest-abc",
			"username":       "EU Citizen",
			"xp":             500,
			"level":          4,
			"streak":         6,
			"lastActiveDate": "2026-09-01",
			"achievements":   []string{"first-steps", "first-voice"},
			"stats": map[string]int{
				"proceduresViewed": 12,
				"totalPositions":   2,
			},
		},
		"positions": []map[string]interface{}{
			{
				// Conflicts with the account stance; the account's wins
				"id":             "guest-pos-1",
				"procedureId":    "2026/0042(COD)",
				"procedureTitle": "Digital Fairness Act",
				"position":       "oppose",
			},
			{
				"id":             "guest-pos-2",
				"procedureId":    "2026/0077(INI)",
				"procedureTitle": "Guest-only procedure",
				"position":       "neutral",
			},
		},
	}

	resp = doJSON(t, "POST", "/api/me/merge-guest", body, token)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	result := decodeBody(t, resp)
	assert.Equal(t, true, result["ok"])

	profile := result["profile"].(map[string]interface{})
	// Guest XP was higher and wins; streak too
	assert.Equal(t, float64(500), profile["xp"])
	assert.Equal(t, float64(6), profile["streak"])
	achievements := profile["achievements"].([]interface{})
	assert.Contains(t, achievements, "first-steps")
	stats := profile["stats"].(map[string]interface{})
	assert.Equal(t, float64(12), stats["proceduresViewed"])

	// Positions: the conflicting stance kept the account's value, the
	// guest-only one was imported
	var merger models.User
	assert.NoError(t, db.Where("username = ?", "merger").First(&merger).Error)

	var conflicting models.UserPosition
	assert.NoError(t, db.Where("user_id = ? AND procedure_id = ?", merger.ID, "2026/0042(COD)").First(&conflicting).Error)
	assert.Equal(t, "support", conflicting.Position)

	var imported models.UserPosition
	assert.NoError(t, db.Where("user_id = ? AND procedure_id = ?", merger.ID, "2026/0077(INI)").First(&imported).Error)
	assert.Equal(t, "neutral", imported.Position)
}

func TestMergeGuestIdempotent(t *testing.T) {
	resp := doJSON(t, "POST", "/api/auth/login", map[string]string{
		"email":    "merger@example.com",
		"password": "password123",
	}, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	token := decodeBody(t, resp)["token"].(string)

	body := map[string]interface{}{
		"profile": map[string]interface{}{
			"xp":             500,
			"streak":         6,
			"lastActiveDate": "2026-09-01",
			"achievements":   []string{"first-steps", "first-voice"},
			"stats":          map[string]int{"proceduresViewed": 12},
		},
		"positions": []map[string]interface{}{},
	}

	resp = doJSON(t, "POST", "/api/me/merge-guest", body, token)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	first := decodeBody(t, resp)["profile"].(map[string]interface{})

	resp = doJSON(t, "POST", "/api/me/merge-guest", body, token)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	second := decodeBody(t, resp)["profile"].(map[string]interface{})

	assert.Equal(t, first["xp"], second["xp"])
	assert.Equal(t, first["streak"], second["streak"])
	assert.Equal(t, first["achievements"], second["achievements"])
}

func TestMergeGuestValidation(t *testing.T) {
	resp := doJSON(t, "POST", "/api/me/merge-guest", map[string]interface{}{
		"positions": []interface{}{},
	}, jwtToken)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, "POST", "/api/me/merge-guest", map[string]interface{}{
		"profile": map[string]interface{}{"xp": 1},
	}, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
