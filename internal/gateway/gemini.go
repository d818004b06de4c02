package gateway

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/pdiddy/research-genie/pkg/types"
)

// GeminiModels is the subset of *genai.Models the Gemini backend uses.
type GeminiModels interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// newGeminiModels builds the Gemini API client. Package-level var for test
// substitution.
var newGeminiModels = func(ctx context.Context, apiKey string) (GeminiModels, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return client.Models, nil
}

type geminiBackend struct {
	models GeminiModels
	model  string
}

func newGemini(ctx context.Context, cfg types.AIConfig) (Generator, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("gemini: %w", errMissingKey)
	}
	models, err := newGeminiModels(ctx, cfg.APIKey)
	if err != nil {
		return nil, fmt.Errorf("gemini: creating client: %w", err)
	}
	return &geminiBackend{models: models, model: cfg.Model}, nil
}

func (b *geminiBackend) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := b.models.GenerateContent(ctx, b.model, genai.Text(prompt), nil)
	if err != nil {
		return "", err
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return "", errEmptyResponse
	}
	return resp.Text(), nil
}
