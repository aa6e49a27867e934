package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAICompatible_Generate(t *testing.T) {
	var payload struct {
		Model    string        `json:"model"`
		Messages []chatMessage `json:"messages"`
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, "Lyla", r.Header.Get("X-Title"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))

		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"hi"}}]}`))
	}))
	defer srv.Close()

	p := NewOpenAICompatible(OpenAICompatibleConfig{
		BaseURL:      srv.URL + "/",
		APIKey:       "secret",
		Model:        "local",
		AuthHeader:   "Authorization",
		AuthPrefix:   "Bearer ",
		ExtraHeaders: map[string]string{"X-Title": "Lyla"},
	})

	reply, err := p.Generate(context.Background(), "prompt text")
	require.NoError(t, err)
	assert.Equal(t, "hi", reply)
	assert.Equal(t, "local", payload.Model)
	assert.Equal(t, []chatMessage{{Role: "user", Content: "prompt text"}}, payload.Messages)
}

func TestOpenAICompatible_GenerateErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "http error", status: http.StatusInternalServerError, body: `{"error":"boom"}`},
		{name: "empty choices", status: http.StatusOK, body: `{"choices":[]}`},
		{name: "malformed json", status: http.StatusOK, body: `{"choices":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			p := NewOpenAICompatible(OpenAICompatibleConfig{BaseURL: srv.URL, Model: "local"})
			_, err := p.Generate(context.Background(), "x")
			assert.Error(t, err)
		})
	}
}

func TestOpenAICompatible_ModelsAndPing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/models", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"), "no key configured, no auth header")
		_, _ = w.Write([]byte(`{"data":[{"id":"qwen2.5"},{"id":"llama3"}]}`))
	}))
	defer srv.Close()

	p := NewOpenAICompatible(OpenAICompatibleConfig{BaseURL: srv.URL, AuthHeader: "Authorization", AuthPrefix: "Bearer "})

	models, err := p.Models(context.Background())
	require.NoError(t, err)
	require.Len(t, models, 2)
	assert.Equal(t, "qwen2.5", models[0].ID)

	assert.NoError(t, p.Ping(context.Background()))
}
