package completion

import (
	"fmt"

	"github.com/zatekoja/Drugfoodinteractiondesign/internal/domain/providers"
	"github.com/zatekoja/Drugfoodinteractiondesign/internal/infrastructure/clients/gemini"
	"github.com/zatekoja/Drugfoodinteractiondesign/internal/infrastructure/clients/openai"
	"github.com/zatekoja/Drugfoodinteractiondesign/pkg/config"
)

// NewCompletionProvider selects the AI backend from AI_PROVIDER. A nil
// provider with a nil error means no backend is configured and the AI stage
// of the lookup chain is disabled.
func NewCompletionProvider(cfg *config.Config) (providers.CompletionProvider, error) {
	if cfg == nil {
		return nil, nil
	}

	switch cfg.Gemini.Provider {
	case "mock":
		return NewMockProvider(), nil
	case "openai":
		if cfg.OpenAI.APIKey == "" {
			return nil, nil
		}
		return openai.NewClient(&cfg.OpenAI)
	case "", "gemini":
		if cfg.Gemini.APIKey == "" {
			return nil, nil
		}
		return gemini.NewClient(&cfg.Gemini)
	default:
		return nil, fmt.Errorf("unknown AI provider %q", cfg.Gemini.Provider)
	}
}
