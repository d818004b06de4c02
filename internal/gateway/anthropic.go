package gateway

import (
	"context"
	"fmt"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/pdiddy/research-genie/pkg/types"
)

// anthropicMaxTokens caps the response length; prompts ask for at most a few
// hundred words.
const anthropicMaxTokens = 4096

// AnthropicMessager is the subset of the Messages service the Anthropic
// backend uses.
type AnthropicMessager interface {
	New(ctx context.Context, params anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error)
}

// newAnthropicMessager builds the Anthropic client. Package-level var for
// test substitution.
var newAnthropicMessager = func(apiKey string) AnthropicMessager {
	c := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &c.Messages
}

type anthropicBackend struct {
	messages AnthropicMessager
	model    string
}

func newAnthropic(_ context.Context, cfg types.AIConfig) (Generator, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("anthropic: %w", errMissingKey)
	}
	return &anthropicBackend{messages: newAnthropicMessager(cfg.APIKey), model: cfg.Model}, nil
}

func (b *anthropicBackend) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := b.messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(b.model),
		MaxTokens: anthropicMaxTokens,
		System:    []anthropic.TextBlockParam{{Text: systemPrompt}},
		Messages:  []anthropic.MessageParam{anthropic.NewUserMessage(anthropic.NewTextBlock(prompt))},
	})
	if err != nil {
		return "", err
	}
	if resp == nil {
		return "", errEmptyResponse
	}
	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	if sb.Len() == 0 {
		return "", errEmptyResponse
	}
	return sb.String(), nil
}
