package llm

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// NewProvider builds a Provider from configuration. One base provider is
// constructed per candidate model and chained so that an unsupported model
// falls through to the next candidate; the chain is then wrapped with
// logging and retry middleware (caller -> retry -> logging -> chain -> base).
func NewProvider(ctx context.Context, cfg Config, calls CallLogger, log *zap.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.Provider == "mock" {
		return NewMockProvider(), nil
	}

	models := cfg.ModelCandidates()
	if len(models) == 0 {
		return nil, fmt.Errorf("no model candidates for provider %q", cfg.Provider)
	}

	candidates := make([]Provider, 0, len(models))
	for _, model := range models {
		var (
			base Provider
			err  error
		)
		switch cfg.Provider {
		case "anthropic":
			base, err = NewAnthropicProvider(cfg.APIKey, model)
		case "openai":
			base, err = NewOpenAIProvider(cfg.APIKey, cfg.BaseURL, model)
		case "gemini":
			base, err = NewGeminiProvider(ctx, cfg.APIKey, model)
		default:
			return nil, fmt.Errorf("unknown model provider: %q", cfg.Provider)
		}
		if err != nil {
			return nil, fmt.Errorf("initializing %s provider for %s: %w", cfg.Provider, model, err)
		}
		candidates = append(candidates, base)
	}

	chained := WithModelFallback(candidates, log)
	logged := WithLogging(chained, calls, log)
	return WithRetry(logged, cfg.Retry), nil
}
