// Package gemini generates text with the Google Gemini API.
package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"coffee_backend/internal/feature/explanation/usecase"
)

const DefaultModel = "gemini-2.5-flash"

// Generator asks Gemini for a JSON answer.
type Generator struct {
	client *genai.Client
	model  string
}

var _ usecase.TextGenerator = (*Generator)(nil)

// NewGenerator creates a Gemini client from the environment: GEMINI_API_KEY or
// GOOGLE_API_KEY, or GOOGLE_GENAI_USE_VERTEXAI with GOOGLE_CLOUD_PROJECT and
// GOOGLE_CLOUD_LOCATION.
func NewGenerator(ctx context.Context, model string) (*Generator, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	if model == "" {
		model = DefaultModel
	}
	return &Generator{client: client, model: model}, nil
}

// Generate returns the model's text answer.
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	cfg := &genai.GenerateContentConfig{ResponseMIMEType: "application/json"}
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("gemini API request failed: %w", err)
	}
	return resp.Text(), nil
}
