package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhisek/lumi/internal/logger"
	"github.com/abhisek/lumi/internal/store"
)

// ErrDisabled is returned by NewProvider when no provider is selected.
var ErrDisabled = errors.New("LLM provider disabled")

// NewProvider builds the configured Provider wrapped as
// caller → retry → logging → base. eventRepo and log may be nil.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo, log *logger.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Provider
	var err error
	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, ErrDisabled
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	logged := WithLogging(base, cfg.Provider, eventRepo, log)
	return WithRetry(logged, cfg.Retry), nil
}
