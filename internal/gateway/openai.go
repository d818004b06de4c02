package gateway

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/pdiddy/research-genie/pkg/types"
)

// OpenAICompletions is the subset of the chat completions service the OpenAI
// backend uses.
type OpenAICompletions interface {
	New(ctx context.Context, body openai.ChatCompletionNewParams, opts ...option.RequestOption) (*openai.ChatCompletion, error)
}

// newOpenAICompletions builds the OpenAI client. Package-level var for test
// substitution.
var newOpenAICompletions = func(apiKey string) OpenAICompletions {
	c := openai.NewClient(option.WithAPIKey(apiKey))
	return &c.Chat.Completions
}

type openAIBackend struct {
	completions OpenAICompletions
	model       string
}

func newOpenAI(_ context.Context, cfg types.AIConfig) (Generator, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("openai: %w", errMissingKey)
	}
	return &openAIBackend{completions: newOpenAICompletions(cfg.APIKey), model: cfg.Model}, nil
}

func (b *openAIBackend) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := b.completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(b.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", err
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", errEmptyResponse
	}
	return resp.Choices[0].Message.Content, nil
}
