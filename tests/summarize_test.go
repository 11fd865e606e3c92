package tests

import (
	"io"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestSummarizeStreamsText(t *testing.T) {
	resp := doJSON(t, "POST", "/api/summarize", map[string]interface{}{
		"title":    "Digital Fairness Act",
		"summary":  "Protects consumers online.",
		"subjects": []string{"Consumer Protection"},
		"persona":  "student",
		"country":  "DE",
	}, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)
	assert.Equal(t, "## What is it?\nA test summary.", string(body))
}

func TestSummarizeRequiresTitle(t *testing.T) {
	resp := doJSON(t, "POST", "/api/summarize", map[string]interface{}{
		"summary": "No title given.",
	}, "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestSummarizeRateLimited(t *testing.T) {
	// The window allows 10 requests per minute per address; earlier tests in
	// this file share the window, so push until the limiter trips
	limited := false
	for i := 0; i < 12; i++ {
		resp := doJSON(t, "POST", "/api/summarize", map[string]interface{}{
			"title": "Throttle probe",
		}, "")
		if resp.StatusCode == fiber.StatusTooManyRequests {
			assert.NotEmpty(t, resp.Header.Get("Retry-After"))
			result := decodeBody(t, resp)
			assert.Equal(t, "Rate limit exceeded", result["error"])
			assert.Greater(t, result["retryAfter"], float64(0))
			limited = true
			break
		}
	}
	assert.True(t, limited, "limiter never tripped within the window")
}
