package prompt

import (
	"strings"

	"github.com/sandevgo/lyla/internal/core"
)

const (
	contextPlaceholder  = "{context}"
	questionPlaceholder = "{question}"
)

// Template is a prompt with {context} and {question} placeholders.
type Template struct {
	text string
}

func NewTemplate(text string) *Template {
	return &Template{text: text}
}

// Render fills the placeholders in a single pass, so braces inside the
// context or the question are never expanded again.
func (t *Template) Render(req core.PromptRequest) string {
	r := strings.NewReplacer(
		contextPlaceholder, req.Context,
		questionPlaceholder, req.Question,
	)
	return r.Replace(t.text)
}
