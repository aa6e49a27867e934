package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAppConfig_Defaults(t *testing.T) {
	runtime := t.TempDir()
	t.Setenv("LYLA_RUNTIME_PATH", runtime)

	cfg, err := LoadAppConfig()
	require.NoError(t, err)

	assert.Equal(t, runtime, cfg.GetRuntimePath())
	assert.Equal(t, ProviderOllama, cfg.GetProvider())
	assert.Equal(t, "http://127.0.0.1:11434", cfg.GetOllamaBaseURL())
	assert.Equal(t, "nous-hermes", cfg.ChatModel)
	assert.Equal(t, "prakasharyan/qwen-arabic", cfg.UIModel)
	assert.Equal(t, 30*time.Millisecond, cfg.RevealInterval)
	assert.Zero(t, cfg.GetRequestTimeout())
	assert.False(t, cfg.UIMarkdown, "replies are revealed verbatim unless asked otherwise")
	assert.Equal(t, filepath.Join(runtime, ".env"), cfg.GetEnvPath())
	assert.Equal(t, filepath.Join(runtime, "profiles.yaml"), cfg.GetProfilesPath())
}

func TestLoadAppConfig_Overrides(t *testing.T) {
	t.Setenv("LYLA_RUNTIME_PATH", t.TempDir())
	t.Setenv("LYLA_PROVIDER", "openai")
	t.Setenv("LYLA_OPENAI_BASE_URL", "http://localhost:1234")
	t.Setenv("LYLA_REVEAL_INTERVAL", "10ms")
	t.Setenv("LYLA_REQUEST_TIMEOUT", "2m")
	t.Setenv("LYLA_UI_MARKDOWN", "true")

	cfg, err := LoadAppConfig()
	require.NoError(t, err)

	assert.Equal(t, ProviderOpenAI, cfg.Provider)
	assert.Equal(t, "http://localhost:1234", cfg.GetOpenAIBaseURL())
	assert.Equal(t, 10*time.Millisecond, cfg.RevealInterval)
	assert.Equal(t, 2*time.Minute, cfg.RequestTimeout)
	assert.True(t, cfg.UIMarkdown)
}

func TestLoadAppConfig_RelativeRuntimeUnderHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("LYLA_RUNTIME_PATH", ".lyla-test")

	cfg, err := LoadAppConfig()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".lyla-test"), cfg.RuntimePath)
}

func TestAppConfig_Validate(t *testing.T) {
	valid := AppConfig{Provider: ProviderOllama, RevealInterval: time.Millisecond}

	tests := []struct {
		name    string
		mutate  func(c *AppConfig)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *AppConfig) {}},
		{name: "unknown provider", mutate: func(c *AppConfig) { c.Provider = "telegram" }, wantErr: true},
		{name: "zero reveal interval", mutate: func(c *AppConfig) { c.RevealInterval = 0 }, wantErr: true},
		{name: "negative timeout", mutate: func(c *AppConfig) { c.RequestTimeout = -time.Second }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
