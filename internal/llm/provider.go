// Package llm is the boundary to the external text-generation capability.
// Providers are black boxes asked for either a structured JSON draft or free
// prose; the grounding validator downstream defends against partial
// non-compliance, so a provider only needs to obey the requested shape
// tolerably often.
package llm

import (
	"context"

	"github.com/ymiyake/bukkengen/internal/model"
)

// Provider defines the interface for text-generation backends.
type Provider interface {
	// Name returns the provider name.
	Name() string

	// Generate produces a draft from the instruction payload. When
	// req.Structured is set the provider requests JSON output.
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)

	// IsAvailable checks if the provider is configured and reachable.
	IsAvailable(ctx context.Context) bool
}

// GenerateRequest is the instruction payload for one generation call.
type GenerateRequest struct {
	// System frames the task; Prompt carries the fact set, constraints,
	// and output-shape contract built by BuildPrompt.
	System string
	Prompt string

	// Structured requests the evidence-tagged JSON shape. False selects
	// the legacy free-text shape with no per-sentence verification.
	Structured bool

	// Model overrides the configured model for this call.
	Model string

	// MaxTokens limits the response length.
	MaxTokens int
}

// GenerateResponse is the raw provider output, before any validation.
type GenerateResponse struct {
	Content    string
	Model      string
	TokensUsed int
}

// Config holds provider configuration.
type Config struct {
	// Provider name: "openai", "ollama", or "" (generation disabled).
	Provider string

	// Model name (provider-specific).
	Model string

	// APIKey for hosted providers.
	APIKey string

	// BaseURL for custom endpoints (e.g. Ollama, OpenAI-compatible proxies).
	BaseURL string

	// Timeout for API requests, in seconds.
	Timeout int

	// MaxTokens for response generation.
	MaxTokens int

	// Proxy settings.
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider:  "",
		Model:     "",
		Timeout:   30,
		MaxTokens: 1200,
	}
}

// ConfigFromModel converts model.LLMConfig plus HTTP proxy settings.
func ConfigFromModel(cfg model.LLMConfig, httpCfg model.HTTPConfig) Config {
	return Config{
		Provider:   cfg.Provider,
		Model:      cfg.Model,
		APIKey:     cfg.APIKey,
		BaseURL:    cfg.BaseURL,
		Timeout:    cfg.Timeout,
		MaxTokens:  cfg.MaxTokens,
		HTTPProxy:  httpCfg.HTTPProxy,
		HTTPSProxy: httpCfg.HTTPSProxy,
		NoProxy:    httpCfg.NoProxy,
	}
}
