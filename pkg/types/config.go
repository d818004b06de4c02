package types

import "time"

// HTTPConfig holds shared HTTP settings used by clients of external services.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "research-genie/1.0").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// AIConfig selects and authenticates the LLM backend.
type AIConfig struct {
	// Provider is the backend tag: "gemini", "openai", or "anthropic".
	Provider string `json:"provider" yaml:"provider"`

	// Model is the backend model identifier (e.g. "gemini-2.5-flash").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the backend.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
}

// AnalysisConfig holds settings for the analysis orchestrator.
type AnalysisConfig struct {
	// MaxPapers bounds the PaperSet size (default 10).
	MaxPapers int `json:"max_papers" yaml:"max_papers"`

	// Timeout bounds a whole analysis. Zero means no deadline beyond the
	// caller's context.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// Concurrent issues the summary and gaps invocations in parallel.
	Concurrent bool `json:"concurrent" yaml:"concurrent"`
}

// ScraperConfig locates the external paper scraping service.
type ScraperConfig struct {
	HTTPConfig `yaml:",inline"`

	// URL is the scraper base URL (default "http://localhost:8002").
	URL string `json:"url" yaml:"url"`

	// MaxRetries is the number of retries on HTTP 429 or 503 (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// LogConfig selects the log encoder and threshold.
type LogConfig struct {
	// Mode is "dev" (console) or "prod" (JSON).
	Mode string `json:"mode" yaml:"mode"`

	// Level is the minimum level: debug, info, warn, or error.
	Level string `json:"level" yaml:"level"`

	// File, when set, receives log output in addition to stderr.
	File string `json:"file" yaml:"file"`
}

// ServiceConfig groups all component configurations.
type ServiceConfig struct {
	LLM      AIConfig       `json:"llm" yaml:"llm"`
	Analysis AnalysisConfig `json:"analysis" yaml:"analysis"`
	Scraper  ScraperConfig  `json:"scraper" yaml:"scraper"`
	Log      LogConfig      `json:"log" yaml:"log"`
}
