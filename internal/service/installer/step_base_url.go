package installer

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandevgo/lyla/internal/config"
)

// BaseURLStep asks where the selected runtime listens.
type BaseURLStep struct {
	input  textinput.Model
	seeded bool
}

func NewBaseURLStep() Step {
	ti := textinput.New()
	ti.Focus()
	return &BaseURLStep{input: ti}
}

func (s *BaseURLStep) Init() tea.Cmd { return textinput.Blink }

func (s *BaseURLStep) current(state *InstallState) string {
	if state.Config.Provider == config.ProviderOpenAI {
		return state.Config.OpenAIBaseURL
	}
	return state.Config.OllamaBaseURL
}

func (s *BaseURLStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if !s.seeded {
		s.input.Placeholder = s.current(state)
		s.seeded = true
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		val := strings.TrimSpace(s.input.Value())
		if val == "" {
			val = s.input.Placeholder
		}
		if state.Config.Provider == config.ProviderOpenAI {
			state.Config.OpenAIBaseURL = val
		} else {
			state.Config.OllamaBaseURL = val
		}
		return nil, nil
	}

	return s, cmd
}

func (s *BaseURLStep) View(state *InstallState) string {
	return "Enter the runtime base URL:\n\n" + s.input.View() + "\n\n(press enter to confirm)\n"
}
