package summarize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildSystemPromptGeneral(t *testing.T) {
	prompt := BuildSystemPrompt("general", "general")
	assert.Contains(t, prompt, "non-partisan political analyst")
	assert.NotContains(t, prompt, "Context about the reader")
}

func TestBuildSystemPromptPersonaAndCountry(t *testing.T) {
	prompt := BuildSystemPrompt("farmer", "PL")
	assert.Contains(t, prompt, "They are a farmer")
	assert.Contains(t, prompt, "food production")
	assert.Contains(t, prompt, "They live in Poland")
}

func TestBuildSystemPromptUnknownValuesFallBack(t *testing.T) {
	assert.Equal(t, BuildSystemPrompt("general", "general"), BuildSystemPrompt("astronaut", "XX"))
}

func TestBuildUserPrompt(t *testing.T) {
	prompt := BuildUserPrompt("Digital Fairness Act", "Protects consumers online.", []string{"Consumer Protection", "Digital Single Market"})
	assert.Contains(t, prompt, "**Title:** Digital Fairness Act")
	assert.Contains(t, prompt, "Protects consumers online.")
	assert.Contains(t, prompt, "**Policy Areas:** Consumer Protection, Digital Single Market")
	assert.Contains(t, prompt, "## What is it?")
	assert.Contains(t, prompt, "## Why does it matter?")
	assert.Contains(t, prompt, "## Who is involved?")
}

func TestBuildUserPromptEmptySummary(t *testing.T) {
	prompt := BuildUserPrompt("Some Act", "", nil)
	assert.Contains(t, prompt, "No summary available.")
	assert.False(t, strings.Contains(prompt, "**Policy Areas:**"))
}
