package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/abhisek/mathcoach/internal/store"
)

// NewProvider creates a Provider from configuration, authenticated with
// apiKey. It returns the provider wrapped with retry and logging
// middleware. eventRepo may be nil.
func NewProvider(ctx context.Context, cfg Config, apiKey string, eventRepo store.EventRepo, logger zerolog.Logger) (Provider, error) {
	if cfg.NeedsKey() && apiKey == "" {
		return nil, &ErrUnauthorized{Err: fmt.Errorf("%s API key is required", cfg.Provider)}
	}

	var base Provider
	var err error

	switch cfg.Provider {
	case "anthropic":
		c := cfg.Anthropic
		c.APIKey = apiKey
		base, err = NewAnthropicProvider(c)
	case "openai":
		c := cfg.OpenAI
		c.APIKey = apiKey
		base, err = NewOpenAIProvider(c)
	case "gemini":
		c := cfg.Gemini
		c.APIKey = apiKey
		base, err = NewGeminiProvider(ctx, c)
	case "openrouter":
		c := cfg.OpenRouter
		c.APIKey = apiKey
		base, err = NewOpenRouterProvider(c)
	case "ollama":
		base, err = NewOllamaProvider(cfg.Ollama)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// Wrap with middleware: caller → retry → logging → base
	logged := WithLogging(base, cfg.Provider, eventRepo, logger)
	retried := WithRetry(logged, cfg.Retry)

	return retried, nil
}

// Factory returns a constructor that builds a provider per API key, for
// callers that resolve the key lazily.
func Factory(cfg Config, eventRepo store.EventRepo, logger zerolog.Logger) func(ctx context.Context, apiKey string) (Provider, error) {
	return func(ctx context.Context, apiKey string) (Provider, error) {
		return NewProvider(ctx, cfg, apiKey, eventRepo, logger)
	}
}

// IsUnauthorized reports whether err means the provider rejected the key.
func IsUnauthorized(err error) bool {
	var u *ErrUnauthorized
	return errors.As(err, &u)
}
