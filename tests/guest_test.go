package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func doGuestJSON(t *testing.T, method, path string, body interface{}, guestID string) *http.Response {
	t.Helper()

	var reader *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewBuffer(data)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if guestID != "" {
		req.Header.Set("X-Guest-ID", guestID)
	}

	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func TestGuestProfileDefault(t *testing.T) {
	resp := doGuestJSON(t, "GET", "/api/guest/profile", nil, "guest-int-1")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	result := decodeBody(t, resp)
	profile := result["profile"].(map[string]interface{})
	assert.Equal(t, "guest-int-1", profile["id"])
	assert.Equal(t, "EU Citizen", profile["username"])
	assert.Equal(t, float64(1), profile["level"])
}

func TestGuestProfileWithoutHeaderIsTransient(t *testing.T) {
	resp := doGuestJSON(t, "GET", "/api/guest/profile", nil, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	result := decodeBody(t, resp)
	profile := result["profile"].(map[string]interface{})
	assert.Equal(t, "EU Citizen", profile["username"])
}

func TestGuestStanceAndActionFlow(t *testing.T) {
	guestID := "guest-int-2"

	resp := doGuestJSON(t, "POST", "/api/guest/positions", map[string]string{
		"procedureId":    "2026/0042(COD)",
		"procedureTitle": "Digital Fairness Act",
		"position":       "support",
	}, guestID)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	result := decodeBody(t, resp)
	assert.Equal(t, float64(10), result["xpGained"])

	// Re-stating updates with no reward
	resp = doGuestJSON(t, "POST", "/api/guest/positions", map[string]string{
		"procedureId":    "2026/0042(COD)",
		"procedureTitle": "Digital Fairness Act",
		"position":       "oppose",
	}, guestID)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	result = decodeBody(t, resp)
	assert.Equal(t, float64(0), result["xpGained"])

	resp = doGuestJSON(t, "GET", "/api/guest/positions", nil, guestID)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	result = decodeBody(t, resp)
	positions := result["positions"].([]interface{})
	assert.Len(t, positions, 1)
	stance := positions[0].(map[string]interface{})
	assert.Equal(t, "oppose", stance["position"])

	// Civic action on the stance
	resp = doGuestJSON(t, "POST", "/api/guest/actions", map[string]string{
		"procedureId": "2026/0042(COD)",
		"actionType":  "petition",
	}, guestID)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	result = decodeBody(t, resp)
	assert.Equal(t, float64(30), result["xpGained"])

	// XP accumulated on the guest profile
	resp = doGuestJSON(t, "GET", "/api/guest/profile", nil, guestID)
	result = decodeBody(t, resp)
	profile := result["profile"].(map[string]interface{})
	assert.GreaterOrEqual(t, profile["xp"].(float64), float64(40))
}

func TestGuestViewReward(t *testing.T) {
	resp := doGuestJSON(t, "POST", "/api/guest/views", nil, "guest-int-3")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	result := decodeBody(t, resp)
	assert.Equal(t, float64(5), result["xpGained"])

	// First view unlocks first-steps
	unlocked := result["newAchievements"].([]interface{})
	assert.NotEmpty(t, unlocked)
}
