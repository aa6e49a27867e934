package core

import "context"

// AIProvider is a text-in/text-out model runtime. Generate blocks until the
// whole reply is available.
type AIProvider interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Models(ctx context.Context) ([]Model, error)
	Ping(ctx context.Context) error
}

// Invoker answers a PromptRequest with one complete reply.
type Invoker interface {
	Invoke(ctx context.Context, req PromptRequest) (string, error)
}
