package tests

import (
	"testing"

	"eurolens/backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestSavePositionGrantsXPOnce(t *testing.T) {
	// Fresh user so the first-stance achievement is observable
	resp := doJSON(t, "POST", "/api/auth/register", map[string]string{
		"username": "stancer",
		"email":    "stancer@example.com",
		"password": "password123",
	}, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	token := decodeBody(t, resp)["token"].(string)

	resp = doJSON(t, "POST", "/api/me/positions", map[string]string{
		"procedureId":    "2026/0042(COD)",
		"procedureTitle": "Digital Fairness Act",
		"position":       "support",
		"reason":         "Protects consumers",
	}, token)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	result := decodeBody(t, resp)
	assert.Equal(t, float64(10), result["xpGained"])
	position := result["position"].(map[string]interface{})
	assert.Equal(t, "support", position["position"])

	// The first stance also unlocks the first-voice achievement
	unlocked := result["newAchievements"].([]interface{})
	assert.NotEmpty(t, unlocked)

	// Re-stating on the same procedure updates in place with no reward
	resp = doJSON(t, "POST", "/api/me/positions", map[string]string{
		"procedureId":    "2026/0042(COD)",
		"procedureTitle": "Digital Fairness Act",
		"position":       "oppose",
	}, token)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	result = decodeBody(t, resp)
	assert.Equal(t, float64(0), result["xpGained"])
	position = result["position"].(map[string]interface{})
	assert.Equal(t, "oppose", position["position"])

	// Exactly one row for the (user, procedure) pair
	var stancer models.User
	assert.NoError(t, db.Where("username = ?", "stancer").First(&stancer).Error)
	var count int64
	db.Model(&models.UserPosition{}).
		Where("user_id = ? AND procedure_id = ?", stancer.ID, "2026/0042(COD)").
		Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestSavePositionValidation(t *testing.T) {
	resp := doJSON(t, "POST", "/api/me/positions", map[string]string{
		"procedureId": "2026/0050(COD)",
		"position":    "support",
	}, jwtToken)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, "POST", "/api/me/positions", map[string]string{
		"procedureId":    "2026/0050(COD)",
		"procedureTitle": "Some Act",
		"position":       "maybe",
	}, jwtToken)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestSavePositionRequiresAuth(t *testing.T) {
	resp := doJSON(t, "POST", "/api/me/positions", map[string]string{
		"procedureId":    "2026/0042(COD)",
		"procedureTitle": "Digital Fairness Act",
		"position":       "support",
	}, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestGetPositionsAnonymousIsEmpty(t *testing.T) {
	resp := doJSON(t, "GET", "/api/me/positions", nil, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	result := decodeBody(t, resp)
	positions := result["positions"].([]interface{})
	assert.Empty(t, positions)
}

func TestGetPositionsAuthenticated(t *testing.T) {
	resp := doJSON(t, "GET", "/api/me/positions", nil, jwtToken)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	result := decodeBody(t, resp)
	positions := result["positions"].([]interface{})
	assert.NotEmpty(t, positions)
}
