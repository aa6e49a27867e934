package conversation

import (
	"context"

	"github.com/sandevgo/lyla/internal/core"
	"github.com/sandevgo/lyla/internal/prompt"
)

// Chain renders the prompt template and hands the result to a provider.
type Chain struct {
	template *prompt.Template
	provider core.AIProvider
}

func NewChain(template *prompt.Template, provider core.AIProvider) *Chain {
	return &Chain{
		template: template,
		provider: provider,
	}
}

func (c *Chain) Invoke(ctx context.Context, req core.PromptRequest) (string, error) {
	return c.provider.Generate(ctx, c.template.Render(req))
}
