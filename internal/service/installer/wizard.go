package installer

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sandevgo/lyla/internal/config"
)

var ErrInterrupted = errors.New("lyla setup interrupted")

var (
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	progressStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	itemStyle     = lipgloss.NewStyle().PaddingLeft(2)
	selStyle      = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("5"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
)

// Step is one screen of `lyla init`. Update returns nil once the step has
// written its answer into the state; any other value replaces the step.
type Step interface {
	Init() tea.Cmd
	Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd)
	View(state *InstallState) string
}

func defaultSteps() []Step {
	return []Step{
		NewProviderStep(),
		NewBaseURLStep(),
		NewModelStep(modelTargetChat),
		NewModelStep(modelTargetUI),
		NewSaveStep(),
	}
}

// item is a model entry in the bubbles list.
type item struct {
	id    string
	title string
	desc  string
}

func (i item) Title() string       { return i.title }
func (i item) Description() string { return i.desc }
func (i item) FilterValue() string { return i.id }

type modelsMsg []list.Item
type errMsg error

// nextMsg kicks steps that act without waiting for a key.
type nextMsg struct{}

type wizard struct {
	steps    []Step
	cur      int
	state    *InstallState
	quitting bool
	width    int
	height   int
}

func newWizard(cfg *config.AppConfig, steps []Step) wizard {
	return wizard{steps: steps, state: NewInstallState(cfg)}
}

func (w wizard) done() bool {
	return w.cur >= len(w.steps)
}

func (w wizard) Init() tea.Cmd {
	if w.done() {
		return tea.Quit
	}
	return w.steps[0].Init()
}

func (w wizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w.width, w.height = msg.Width, msg.Height
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			w.quitting = true
			return w, tea.Quit
		}
	}

	if w.quitting || w.done() {
		return w, tea.Quit
	}

	next, cmd := w.steps[w.cur].Update(msg, w.state, w.width, w.height)
	if next != nil {
		w.steps[w.cur] = next
		return w, cmd
	}

	w.cur++
	if w.done() {
		return w, tea.Quit
	}
	return w, w.steps[w.cur].Init()
}

func (w wizard) View() string {
	switch {
	case w.quitting:
		return "Setup cancelled.\n"
	case w.done():
		return "Configuration complete!\n"
	}

	header := titleStyle.Render("Setting up Lyla") + " " +
		progressStyle.Render(fmt.Sprintf("(%d/%d)", w.cur+1, len(w.steps)))
	return header + "\n\n" + w.steps[w.cur].View(w.state)
}

// RunWizard asks for provider, base URL and models, starting from cfg, and
// saves the answers into the runtime directory. The returned state holds
// the configuration that was written.
func RunWizard(cfg *config.AppConfig) (*InstallState, error) {
	m, err := tea.NewProgram(newWizard(cfg, defaultSteps()), tea.WithAltScreen()).Run()
	if err != nil {
		return nil, err
	}

	w := m.(wizard)
	if w.quitting || !w.done() {
		return nil, ErrInterrupted
	}
	return w.state, nil
}
