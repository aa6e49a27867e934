package llm

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ollama/ollama/api"
	"github.com/sandevgo/lyla/internal/core"
)

// Ollama uses the runtime's native generate endpoint, the same call the
// original LangChain OllamaLLM wrapper makes.
type Ollama struct {
	client *api.Client
	model  string
}

func NewOllama(baseURL, model string, timeout time.Duration) (*Ollama, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse ollama url %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("parse ollama url %q: scheme and host are required", baseURL)
	}

	return &Ollama{
		client: api.NewClient(u, &http.Client{Timeout: timeout}),
		model:  model,
	}, nil
}

func (o *Ollama) Generate(ctx context.Context, prompt string) (string, error) {
	stream := false
	req := &api.GenerateRequest{
		Model:  o.model,
		Prompt: prompt,
		Stream: &stream,
	}

	var sb strings.Builder
	err := o.client.Generate(ctx, req, func(resp api.GenerateResponse) error {
		sb.WriteString(resp.Response)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("ollama generate: %w", err)
	}
	return sb.String(), nil
}

func (o *Ollama) Models(ctx context.Context) ([]core.Model, error) {
	resp, err := o.client.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("ollama not available: %w", err)
	}

	models := make([]core.Model, 0, len(resp.Models))
	for _, m := range resp.Models {
		models = append(models, core.Model{
			ID:   m.Name,
			Name: m.Name,
		})
	}
	return models, nil
}

func (o *Ollama) Ping(ctx context.Context) error {
	if err := o.client.Heartbeat(ctx); err != nil {
		return fmt.Errorf("ollama not available: %w", err)
	}
	return nil
}
