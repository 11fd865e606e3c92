package summarize

import (
	"context"

	"google.golang.org/genai"
)

const defaultModel = "gemini-2.0-flash"

// Generator streams generated text for a prompt pair, invoking emit for each
// chunk as it arrives. Implementations relay provider output verbatim.
type Generator interface {
	Stream(ctx context.Context, systemPrompt, userPrompt string, emit func(chunk string) error) error
}

// GeminiGenerator generates summaries through the Gemini API
type GeminiGenerator struct {
	apiKey string
	model  string
}

func NewGeminiGenerator(apiKey string) *GeminiGenerator {
	return &GeminiGenerator{apiKey: apiKey, model: defaultModel}
}

func (g *GeminiGenerator) Stream(ctx context.Context, systemPrompt, userPrompt string, emit func(chunk string) error) error {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  g.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return err
	}

	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: systemPrompt}},
		},
	}

	for resp, err := range client.Models.GenerateContentStream(ctx, g.model, genai.Text(userPrompt), config) {
		if err != nil {
			return err
		}
		if text := resp.Text(); text != "" {
			if err := emit(text); err != nil {
				return err
			}
		}
	}

	return nil
}
