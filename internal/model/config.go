package model

import "time"

// Config is the full application configuration. Values come from defaults,
// the config file, BUKKENGEN_* environment variables, and CLI flags, in
// ascending priority.
type Config struct {
	HTTP        HTTPConfig        `yaml:"http" mapstructure:"http"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	LLM         LLMConfig         `yaml:"llm" mapstructure:"llm"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	RateLimit   RateLimitConfig   `yaml:"rate_limit" mapstructure:"rate_limit"`
	Generation  GenerationConfig  `yaml:"generation" mapstructure:"generation"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
}

// HTTPConfig controls source page retrieval.
type HTTPConfig struct {
	// Timeout bounds each source fetch. A timed-out source contributes no
	// facts instead of failing the request.
	Timeout      time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent    string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	RespectRobots bool         `yaml:"respect_robots" mapstructure:"respect_robots"`
	HTTPProxy    string        `yaml:"http_proxy" mapstructure:"http_proxy"`
	HTTPSProxy   string        `yaml:"https_proxy" mapstructure:"https_proxy"`
	NoProxy      string        `yaml:"no_proxy" mapstructure:"no_proxy"`
}

// CacheConfig controls the layered fetched-page cache.
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskDir   string        `yaml:"disk_dir" mapstructure:"disk_dir"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// LLMConfig selects and configures the text-generation provider.
type LLMConfig struct {
	// Provider: "openai" or "ollama". Empty disables generation entirely
	// (every request returns the disclosure output).
	Provider  string `yaml:"provider" mapstructure:"provider"`
	Model     string `yaml:"model" mapstructure:"model"`
	APIKey    string `yaml:"-" mapstructure:"-"`
	BaseURL   string `yaml:"base_url" mapstructure:"base_url"`
	Timeout   int    `yaml:"timeout" mapstructure:"timeout"` // seconds
	MaxTokens int    `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// ConcurrencyConfig bounds parallel work.
type ConcurrencyConfig struct {
	// FetchWorkers bounds concurrent source fetches within one request.
	FetchWorkers int `yaml:"fetch_workers" mapstructure:"fetch_workers"`
	// BatchWorkers bounds concurrent requests in batch mode.
	BatchWorkers int `yaml:"batch_workers" mapstructure:"batch_workers"`
}

// RateLimitConfig is the per-domain fetch rate limit.
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	BurstSize         int     `yaml:"burst_size" mapstructure:"burst_size"`
}

// GenerationConfig holds pipeline tunables.
type GenerationConfig struct {
	// MinFacts is the evidence threshold: fewer known facts than this and
	// the request short-circuits to the disclosure output.
	MinFacts      int  `yaml:"min_facts" mapstructure:"min_facts"`
	DefaultLength int  `yaml:"default_length" mapstructure:"default_length"`
	DefaultTone   Tone `yaml:"default_tone" mapstructure:"default_tone"`
}

// OutputConfig controls rendering.
type OutputConfig struct {
	Verbose bool `yaml:"verbose" mapstructure:"verbose"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:       10 * time.Second,
			UserAgent:     "bukkengen/0.1 (+https://github.com/ymiyake/bukkengen)",
			MaxBodyBytes:  2_000_000,
			RespectRobots: true,
		},
		Cache: CacheConfig{
			Enabled:   true,
			MemoryTTL: 15 * time.Minute,
			DiskDir:   "",
			DiskTTL:   24 * time.Hour,
		},
		LLM: LLMConfig{
			Provider:  "",
			Model:     "",
			Timeout:   30,
			MaxTokens: 1200,
		},
		Concurrency: ConcurrencyConfig{
			FetchWorkers: MaxSources,
			BatchWorkers: 4,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 2.0,
			BurstSize:         5,
		},
		Generation: GenerationConfig{
			MinFacts:      3,
			DefaultLength: 400,
			DefaultTone:   ToneNeutral,
		},
		Output: OutputConfig{},
	}
}
