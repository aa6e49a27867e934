package installer

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandevgo/lyla/internal/config"
	"github.com/sandevgo/lyla/internal/core"
	"github.com/sandevgo/lyla/internal/providers/llm"
)

type modelTarget int

const (
	modelTargetChat modelTarget = iota
	modelTargetUI
)

func (t modelTarget) String() string {
	if t == modelTargetUI {
		return "UI"
	}
	return "chat"
}

// listModels is swapped in tests.
var listModels = func(ctx context.Context, cfg *config.AppConfig) ([]core.Model, error) {
	p, err := llm.NewProvider(ctx, cfg, "")
	if err != nil {
		return nil, err
	}
	return p.Models(ctx)
}

// ModelStep picks the model for one front end from what the runtime serves.
type ModelStep struct {
	target   modelTarget
	list     list.Model
	loading  bool
	fetching bool
	err      error
}

func NewModelStep(target modelTarget) Step {
	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	l.Title = fmt.Sprintf("Select %s model", target)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle

	return &ModelStep{
		target:  target,
		list:    l,
		loading: true,
	}
}

func (s *ModelStep) Init() tea.Cmd {
	return func() tea.Msg { return nextMsg{} }
}

func (s *ModelStep) current(state *InstallState) string {
	if s.target == modelTargetUI {
		return state.Config.UIModel
	}
	return state.Config.ChatModel
}

func (s *ModelStep) set(state *InstallState, id string) {
	if s.target == modelTargetUI {
		state.Config.UIModel = id
	} else {
		state.Config.ChatModel = id
	}
}

func (s *ModelStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if s.loading && !s.fetching {
		s.fetching = true
		cfg := *state.Config

		return s, func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			models, err := listModels(ctx, &cfg)
			if err != nil {
				return errMsg(err)
			}

			items := make([]list.Item, 0, len(models))
			for _, mod := range models {
				desc := "ID: " + mod.ID
				if mod.ContextLength > 0 {
					desc = fmt.Sprintf("ID: %s | Context: %d", mod.ID, mod.ContextLength)
				}
				items = append(items, item{id: mod.ID, title: mod.Name, desc: desc})
			}
			return modelsMsg(items)
		}
	}

	s.list.SetSize(width, height-4)

	var cmd tea.Cmd
	switch msg := msg.(type) {
	case modelsMsg:
		s.loading = false
		s.fetching = false
		if len(msg) == 0 {
			// Nothing pulled yet, keep the configured default.
			return nil, nil
		}
		s.list.SetItems(msg)
		for i, it := range msg {
			if it.(item).id == s.current(state) {
				s.list.Select(i)
				break
			}
		}
		return s, nil

	case errMsg:
		s.loading = false
		s.fetching = false
		s.err = msg
		return s, nil

	case tea.KeyMsg:
		if s.err != nil {
			switch msg.String() {
			case "enter":
				s.err = nil
				s.loading = true
				s.fetching = false
			case "s":
				return nil, nil
			}
			return s, nil
		}

		if s.loading {
			return s, nil
		}

		if msg.String() == "enter" {
			wasFiltering := s.list.FilterState() == list.Filtering
			s.list, cmd = s.list.Update(msg)

			if wasFiltering || s.list.FilterState() == list.Filtering {
				return s, cmd
			}

			if i, ok := s.list.SelectedItem().(item); ok {
				s.set(state, i.id)
				return nil, nil
			}
			return s, cmd
		}
	}

	s.list, cmd = s.list.Update(msg)
	return s, cmd
}

func (s *ModelStep) View(state *InstallState) string {
	if s.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error fetching models: %v", s.err)) +
			fmt.Sprintf("\n\nIs the runtime running?\n\n(enter to retry, s to keep %q, ctrl+c to quit)\n", s.current(state))
	}
	if s.loading {
		return fmt.Sprintf("Fetching models for the %s front end...\n", s.target)
	}
	return s.list.View()
}
