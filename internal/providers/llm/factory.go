package llm

import (
	"context"
	"fmt"

	"github.com/sandevgo/lyla/internal/config"
	"github.com/sandevgo/lyla/internal/core"
	"github.com/sandevgo/lyla/pkg/log"
)

// NewProvider creates the AIProvider selected by configuration for model.
func NewProvider(ctx context.Context, cfg core.ProviderConfig, model string) (core.AIProvider, error) {
	log.FromCtx(ctx).Info().
		Str("provider", cfg.GetProvider()).
		Str("model", model).
		Msg("starting llm provider")

	switch cfg.GetProvider() {
	case config.ProviderOllama:
		return NewOllama(cfg.GetOllamaBaseURL(), model, cfg.GetRequestTimeout())
	case config.ProviderOpenAI:
		return NewOpenAICompatible(OpenAICompatibleConfig{
			BaseURL:    cfg.GetOpenAIBaseURL(),
			APIKey:     cfg.GetOpenAIAPIKey(),
			Model:      model,
			Timeout:    cfg.GetRequestTimeout(),
			AuthHeader: "Authorization",
			AuthPrefix: "Bearer ",
			ExtraHeaders: map[string]string{
				"X-Title": core.AppName,
			},
		}), nil
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.GetProvider())
	}
}
