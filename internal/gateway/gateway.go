// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package gateway hides heterogeneous LLM backends behind one Invoke call.
// The backend is chosen once, at construction, from the configured provider
// tag. Construction never fails: a backend that cannot be initialized leaves
// the gateway in a degraded state where every Invoke reports
// ErrBackendUnavailable.
//
// The gateway performs exactly one outbound call per Invoke. It does not
// retry, back off, cache, batch, or stream.
package gateway

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pdiddy/research-genie/internal/logging"
	"github.com/pdiddy/research-genie/pkg/types"
)

// Provider is a backend tag.
type Provider string

const (
	// ProviderGemini is the primary backend.
	ProviderGemini Provider = "gemini"

	// ProviderOpenAI is the secondary backend.
	ProviderOpenAI Provider = "openai"

	ProviderAnthropic Provider = "anthropic"
)

// ParseProvider normalizes a configured tag. It does not validate it.
func ParseProvider(s string) Provider {
	return Provider(strings.ToLower(strings.TrimSpace(s)))
}

// systemPrompt is sent by backends that accept a separate system instruction.
const systemPrompt = "You are a helpful research assistant."

// Generator is the capability every backend implements: send one prompt,
// receive the raw generated text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Constructor builds a Generator from configuration. It may perform
// credential or network setup.
type Constructor func(ctx context.Context, cfg types.AIConfig) (Generator, error)

// constructors maps each supported provider tag to its backend. Package-level
// var for test substitution.
var constructors = map[Provider]Constructor{
	ProviderGemini:    newGemini,
	ProviderOpenAI:    newOpenAI,
	ProviderAnthropic: newAnthropic,
}

// Supported reports whether p has a registered backend.
func Supported(p Provider) bool {
	_, ok := constructors[p]
	return ok
}

// Gateway invokes the configured backend. After construction it is
// read-only and safe for concurrent use.
type Gateway struct {
	provider Provider
	model    string
	gen      Generator
	initErr  error
	log      *logging.Logger
}

// New selects and initializes the backend for cfg.Provider. Failures are
// logged and recorded; the returned Gateway is never nil.
func New(ctx context.Context, cfg types.AIConfig, log *logging.Logger) *Gateway {
	g := &Gateway{
		provider: ParseProvider(cfg.Provider),
		model:    cfg.Model,
		log:      logging.OrNop(log).With("provider", string(ParseProvider(cfg.Provider)), "model", cfg.Model),
	}

	ctor, ok := constructors[g.provider]
	if !ok {
		g.initErr = fmt.Errorf("%w: %q", ErrUnsupportedProvider, cfg.Provider)
		g.log.Warn("unknown llm provider")
		return g
	}

	gen, err := ctor(ctx, cfg)
	if err != nil {
		g.initErr = err
		g.log.Error("llm backend initialization failed", "error", err)
		return g
	}
	g.gen = gen
	g.log.Info("llm backend initialized")
	return g
}

// NewWithGenerator wraps an already-built Generator. A nil gen yields a
// degraded gateway.
func NewWithGenerator(provider Provider, model string, gen Generator, log *logging.Logger) *Gateway {
	g := &Gateway{
		provider: provider,
		model:    model,
		gen:      gen,
		log:      logging.OrNop(log).With("provider", string(provider), "model", model),
	}
	if gen == nil {
		g.initErr = errMissingClient
	}
	return g
}

// Provider returns the configured provider tag.
func (g *Gateway) Provider() Provider { return g.provider }

// Model returns the configured model identifier.
func (g *Gateway) Model() string { return g.model }

// Ready reports whether Invoke can reach a backend.
func (g *Gateway) Ready() bool { return g.gen != nil }

// InitError returns why the gateway is degraded, or nil when ready.
func (g *Gateway) InitError() error { return g.initErr }

// Invoke sends prompt to the backend and returns its raw text unchanged.
// Errors: ErrUnsupportedProvider for an unknown tag, ErrBackendUnavailable
// when no client was initialized, and a *CallError (matching
// ErrBackendCallFailed) when the backend call itself fails.
func (g *Gateway) Invoke(ctx context.Context, prompt string) (string, error) {
	if !Supported(g.provider) {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedProvider, g.provider)
	}
	if g.gen == nil {
		return "", fmt.Errorf("%w: %s: %w", ErrBackendUnavailable, g.provider, g.initErr)
	}

	start := time.Now()
	text, err := g.gen.Generate(ctx, prompt)
	elapsed := time.Since(start)
	if err != nil {
		g.log.Error("llm call failed", "prompt_chars", len(prompt), "duration", elapsed, "error", err)
		return "", &CallError{Provider: g.provider, Err: err}
	}
	g.log.Debug("llm call complete", "prompt_chars", len(prompt), "response_chars", len(text), "duration", elapsed)
	return text, nil
}
