package llm

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds provider configuration. A session engine built without any
// configured provider runs entirely on deterministic fallbacks, so every
// field here is optional at the process level.
type Config struct {
	// Provider selects the backend: "anthropic", "openai", "gemini", "mock".
	Provider string

	// APIKey authenticates against the selected backend.
	APIKey string

	// BaseURL overrides the endpoint for OpenAI-compatible backends.
	BaseURL string

	// Models is the ordered list of candidate model names. The first model
	// the backend actually serves wins; later entries are tried only when a
	// candidate turns out to be unsupported.
	Models []string

	Retry RetryConfig

	// Timeout bounds one evaluation call including retries. Default 30s.
	Timeout time.Duration
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// defaultModels lists the candidate chain per provider, tried in order.
var defaultModels = map[string][]string{
	"anthropic": {"claude-haiku", "claude-sonnet"},
	"openai":    {"gpt-4o-mini", "gpt-4o"},
	"gemini":    {"gemini-flash", "gemini-pro"},
}

// DefaultConfig returns a Config with sensible defaults and no provider
// selected.
func DefaultConfig() Config {
	return Config{
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 30 * time.Second,
	}
}

// DiscoverConfig probes standard API key env vars in priority order
// (Gemini, OpenAI, Anthropic) and returns a Config for the first provider
// whose key is found. Returns (Config{}, false) when none is configured,
// which callers treat as "run on fallbacks".
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()

	probes := []struct {
		env      string
		provider string
	}{
		{"GEMINI_API_KEY", "gemini"},
		{"OPENAI_API_KEY", "openai"},
		{"ANTHROPIC_API_KEY", "anthropic"},
	}
	for _, p := range probes {
		if k := os.Getenv(p.env); k != "" {
			cfg.Provider = p.provider
			cfg.APIKey = k
			cfg.Models = defaultModels[p.provider]
			return cfg, true
		}
	}

	return Config{}, false
}

// ModelCandidates returns the configured model chain, falling back to the
// provider's default chain when none is set.
func (c Config) ModelCandidates() []string {
	if len(c.Models) > 0 {
		return c.Models
	}
	return defaultModels[c.Provider]
}

// Validate checks that a selected provider is usable.
func (c Config) Validate() error {
	switch c.Provider {
	case "anthropic", "openai", "gemini":
		if c.APIKey == "" {
			return fmt.Errorf("api key is required for the %s provider", c.Provider)
		}
	case "mock", "":
		// No key needed.
	default:
		return fmt.Errorf("unknown model provider: %q", c.Provider)
	}
	return nil
}

// ParseModelList splits a comma-separated model list from configuration.
func ParseModelList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	models := make([]string, 0, len(parts))
	for _, p := range parts {
		if m := strings.TrimSpace(p); m != "" {
			models = append(models, m)
		}
	}
	return models
}
