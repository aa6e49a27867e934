package conv

import (
	"strings"
	"testing"
)

func TestMarkdownToText(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		contains    []string
		notContains []string
	}{
		{
			name:  "empty input",
			input: "",
		},
		{
			name:     "plain text",
			input:    "Hello world",
			contains: []string{"Hello world"},
		},
		{
			name:     "arabic text kept intact",
			input:    "مرحبا بك",
			contains: []string{"مرحبا بك"},
		},
		{
			name:     "inline html shown as text",
			input:    "before <script>alert('xss')</script> after",
			contains: []string{"before <script>alert('xss')</script> after"},
		},
		{
			name:     "angle brackets kept",
			input:    "Include the <vector> header and declare std::vector<int> v;",
			contains: []string{"<vector>", "std::vector<int> v;"},
		},
		{
			name:        "punctuation not rewritten",
			input:       `say "quotes" -- x and 1/2`,
			contains:    []string{`"quotes" -- x`, "1/2"},
			notContains: []string{"“", "”", "–", "—", "½"},
		},
		{
			name:        "inline code loses backticks",
			input:       "use `go test`",
			contains:    []string{"go test"},
			notContains: []string{"`"},
		},
		{
			name:        "header markers removed",
			input:       "# Info",
			notContains: []string{"#"},
		},
		{
			name:     "list items kept",
			input:    "- one\n- two",
			contains: []string{"one", "two"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MarkdownToText(tt.input)
			if tt.input == "" && got != "" {
				t.Fatalf("MarkdownToText(%q) = %q, want empty", tt.input, got)
			}
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("MarkdownToText(%q) = %q, want it to contain %q", tt.input, got, want)
				}
			}
			for _, unwanted := range tt.notContains {
				if strings.Contains(got, unwanted) {
					t.Errorf("MarkdownToText(%q) = %q, must not contain %q", tt.input, got, unwanted)
				}
			}
		})
	}
}
