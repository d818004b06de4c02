package gateway

import (
	"strings"

	"github.com/pdiddy/research-genie/pkg/types"
)

// defaultModels is used when no model is configured.
var defaultModels = map[Provider]string{
	ProviderGemini:    "gemini-2.5-flash",
	ProviderOpenAI:    "gpt-4",
	ProviderAnthropic: "claude-sonnet-4-20250514",
}

// secretNames are the .secrets/ file names holding each provider's key.
var secretNames = map[Provider]string{
	ProviderGemini:    "gemini-api-key",
	ProviderOpenAI:    "openai-api-key",
	ProviderAnthropic: "anthropic-api-key",
}

// envNames are the conventional environment variables for each provider's key.
var envNames = map[Provider]string{
	ProviderGemini:    "GEMINI_API_KEY",
	ProviderOpenAI:    "OPENAI_API_KEY",
	ProviderAnthropic: "ANTHROPIC_API_KEY",
}

// DefaultModel returns the model used for p when none is configured.
func DefaultModel(p Provider) string {
	return defaultModels[p]
}

// ResolveConfig fills the gaps in cfg. The provider tag is normalized and
// defaults to gemini. An empty API key is taken from the provider's secret,
// then from its environment variable (read through getenv). An empty model
// becomes the provider default. Unknown providers pass through unchanged so
// that the gateway can report them.
func ResolveConfig(cfg types.AIConfig, secrets map[string]string, getenv func(string) string) types.AIConfig {
	p := ParseProvider(cfg.Provider)
	if p == "" {
		p = ProviderGemini
	}
	cfg.Provider = string(p)

	if strings.TrimSpace(cfg.APIKey) == "" {
		if v := secrets[secretNames[p]]; v != "" {
			cfg.APIKey = v
		} else if name, ok := envNames[p]; ok && getenv != nil {
			cfg.APIKey = strings.TrimSpace(getenv(name))
		}
	}
	if strings.TrimSpace(cfg.Model) == "" {
		cfg.Model = DefaultModel(p)
	}
	return cfg
}
