package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/lyla/pkg/log"
)

const (
	ProviderOllama = "ollama"
	ProviderOpenAI = "openai"
)

type AppConfig struct {
	RuntimePath string `env:"LYLA_RUNTIME_PATH" envDefault:".lyla"`
	Provider    string `env:"LYLA_PROVIDER" envDefault:"ollama"`

	OllamaBaseURL string `env:"OLLAMA_HOST" envDefault:"http://127.0.0.1:11434"`
	OpenAIBaseURL string `env:"LYLA_OPENAI_BASE_URL" envDefault:"http://127.0.0.1:8080"`
	OpenAIAPIKey  string `env:"LYLA_OPENAI_API_KEY"`

	// Models: the terminal loop always uses ChatModel, the UI may override
	// UIModel from its command line.
	ChatModel string `env:"LYLA_CHAT_MODEL" envDefault:"nous-hermes"`
	UIModel   string `env:"LYLA_UI_MODEL" envDefault:"prakasharyan/qwen-arabic"`

	ChatProfile string `env:"LYLA_CHAT_PROFILE" envDefault:"terminal"`
	UIProfile   string `env:"LYLA_UI_PROFILE" envDefault:"lyla"`

	RevealInterval time.Duration `env:"LYLA_REVEAL_INTERVAL" envDefault:"30ms"`
	// Flatten markdown replies in the UI instead of revealing them verbatim.
	UIMarkdown bool `env:"LYLA_UI_MARKDOWN" envDefault:"false"`
	// Zero disables the per-request deadline.
	RequestTimeout time.Duration `env:"LYLA_REQUEST_TIMEOUT" envDefault:"0s"`
}

// LoadAppConfig parses the configuration from the environment.
func LoadAppConfig() (*AppConfig, error) {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		return nil, fmt.Errorf("parse app config: %w", err)
	}
	if !filepath.IsAbs(c.RuntimePath) {
		c.RuntimePath = GetRuntimePath()
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c, err := LoadAppConfig()
	if err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse App config")
	}
	return c
}

func (c AppConfig) Validate() error {
	switch c.Provider {
	case ProviderOllama, ProviderOpenAI:
	default:
		return fmt.Errorf("unknown llm provider: %q", c.Provider)
	}
	if c.RevealInterval <= 0 {
		return fmt.Errorf("reveal interval must be positive, got %s", c.RevealInterval)
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("request timeout must not be negative, got %s", c.RequestTimeout)
	}
	return nil
}

func (c AppConfig) GetRuntimePath() string {
	return c.RuntimePath
}

func (c AppConfig) GetEnvPath() string {
	return filepath.Join(c.RuntimePath, ".env")
}

func (c AppConfig) GetProfilesPath() string {
	return filepath.Join(c.RuntimePath, "profiles.yaml")
}

func (c AppConfig) GetProvider() string {
	return c.Provider
}

func (c AppConfig) GetOllamaBaseURL() string {
	return c.OllamaBaseURL
}

func (c AppConfig) GetOpenAIBaseURL() string {
	return c.OpenAIBaseURL
}

func (c AppConfig) GetOpenAIAPIKey() string {
	return c.OpenAIAPIKey
}

func (c AppConfig) GetRequestTimeout() time.Duration {
	return c.RequestTimeout
}
