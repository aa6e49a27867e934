package conversation

import (
	"context"
	"errors"
	"testing"

	"github.com/sandevgo/lyla/internal/core"
	"github.com/sandevgo/lyla/internal/prompt"
)

type fakeProvider struct {
	prompt string
	reply  string
	err    error
}

func (f *fakeProvider) Generate(ctx context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.reply, f.err
}

func (f *fakeProvider) Models(ctx context.Context) ([]core.Model, error) { return nil, nil }
func (f *fakeProvider) Ping(ctx context.Context) error                 { return nil }

func TestChain_Invoke(t *testing.T) {
	p := &fakeProvider{reply: "hi"}
	c := NewChain(prompt.NewTemplate("History: {context}\nQuestion: {question}"), p)

	got, err := c.Invoke(context.Background(), core.PromptRequest{Context: "User: a\nAI: b\n", Question: "hello"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "hi" {
		t.Errorf("Invoke() = %q, want %q", got, "hi")
	}
	if want := "History: User: a\nAI: b\n\nQuestion: hello"; p.prompt != want {
		t.Errorf("provider got prompt %q, want %q", p.prompt, want)
	}
}

func TestChain_InvokeError(t *testing.T) {
	wantErr := errors.New("down")
	c := NewChain(prompt.NewTemplate("{question}"), &fakeProvider{err: wantErr})

	if _, err := c.Invoke(context.Background(), core.PromptRequest{Question: "x"}); !errors.Is(err, wantErr) {
		t.Errorf("Invoke() error = %v, want %v", err, wantErr)
	}
}
