package installer

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandevgo/lyla/internal/config"
)

type providerChoice struct {
	id    string
	label string
}

// ProviderStep allows selection of the model runtime
type ProviderStep struct {
	choices []providerChoice
	cursor  int
}

func NewProviderStep() Step {
	return &ProviderStep{
		choices: []providerChoice{
			{id: config.ProviderOllama, label: "Ollama (native API)"},
			{id: config.ProviderOpenAI, label: "OpenAI-compatible server (llama.cpp, LM Studio, vLLM)"},
		},
	}
}

func (s *ProviderStep) Init() tea.Cmd {
	return nil
}

func (s *ProviderStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.cursor > 0 {
				s.cursor--
			}
		case "down", "j":
			if s.cursor < len(s.choices)-1 {
				s.cursor++
			}
		case "enter":
			state.Config.Provider = s.choices[s.cursor].id
			return nil, nil
		}
	}
	return s, nil
}

func (s *ProviderStep) View(state *InstallState) string {
	var b strings.Builder
	b.WriteString("Select your model runtime:\n\n")
	for i, choice := range s.choices {
		if s.cursor == i {
			b.WriteString(selStyle.Render(fmt.Sprintf("❯ %s", choice.label)) + "\n")
		} else {
			b.WriteString(itemStyle.Render(fmt.Sprintf("  %s", choice.label)) + "\n")
		}
	}
	b.WriteString("\n(press ctrl+c to quit)\n")
	return b.String()
}
