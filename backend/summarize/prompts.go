package summarize

import "strings"

const baseSystemPrompt = `You are a non-partisan political analyst for EuroLens, an EU legislation tracker.
Your role is to make complex EU legislative documents accessible to ordinary citizens.

Guidelines:
- Be factual and balanced - never show political bias
- Use simple language that a high school student would understand
- Avoid jargon - if you must use a technical term, explain it
- Focus on concrete impacts, not abstract policy language
- Be concise - citizens are busy`

// PersonaLabels names the audience personas a summary can be tuned for
var PersonaLabels = map[string]string{
	"general":              "General Citizen",
	"student":              "Student",
	"small-business-owner": "Small Business Owner",
	"farmer":               "Farmer",
	"worker":               "Worker",
	"parent":               "Parent",
}

// CountryLabels names the member states a summary can be localized to
var CountryLabels = map[string]string{
	"general": "All EU Countries",
	"DE":      "Germany",
	"FR":      "France",
	"ES":      "Spain",
	"IT":      "Italy",
	"PL":      "Poland",
	"NL":      "Netherlands",
}

var personaGuidance = map[string]string{
	"student":              ". Focus on impacts related to education, employment prospects, cost of living, and youth opportunities.",
	"small-business-owner": ". Focus on impacts related to regulations, compliance costs, market access, and business opportunities.",
	"farmer":               ". Focus on impacts related to agriculture, subsidies, environmental regulations, and food production.",
	"worker":               ". Focus on impacts related to labor rights, working conditions, job security, and wages.",
	"parent":               ". Focus on impacts related to family life, childcare, education, health, and consumer safety.",
}

// BuildSystemPrompt composes the system instruction, adding reader context
// for non-general personas and countries. Unknown values fall back to general.
func BuildSystemPrompt(persona, country string) string {
	if _, ok := PersonaLabels[persona]; !ok {
		persona = "general"
	}
	if _, ok := CountryLabels[country]; !ok {
		country = "general"
	}

	prompt := baseSystemPrompt
	if persona == "general" && country == "general" {
		return prompt
	}

	prompt += "\n\nContext about the reader:"

	if persona != "general" {
		prompt += "\n- They are a " + strings.ToLower(PersonaLabels[persona])
		prompt += personaGuidance[persona]
	}

	if country != "general" {
		prompt += "\n- They live in " + CountryLabels[country] + ". Mention any country-specific implications if relevant."
	}

	return prompt
}

// BuildUserPrompt embeds the legislation's title, description and policy
// areas, and pins the fixed three-section response format.
func BuildUserPrompt(title, summary string, subjects []string) string {
	if summary == "" {
		summary = "No summary available."
	}

	prompt := `Summarize this EU legislation for a general audience.

**Title:** ` + title + `

**Summary/Description:** ` + summary

	if len(subjects) > 0 {
		prompt += "\n\n**Policy Areas:** " + strings.Join(subjects, ", ")
	}

	prompt += `

Provide your response in this exact format:

## What is it?
[One clear sentence explaining what this legislation does]

## Why does it matter?
[One clear sentence on the real-world impact for ordinary people]

## Who is involved?
[One sentence about which political groups or stakeholders support or oppose this, if known]`

	return prompt
}
