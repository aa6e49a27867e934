package installer

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandevgo/lyla/internal/config"
	"github.com/sandevgo/lyla/pkg/env"
)

// SaveStep writes the collected configuration and the default profiles
type SaveStep struct {
	err   error
	saved bool
}

func NewSaveStep() Step {
	return &SaveStep{}
}

func (s *SaveStep) Init() tea.Cmd {
	return func() tea.Msg { return nextMsg{} }
}

func (s *SaveStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if s.saved {
		return nil, nil
	}
	if s.err != nil {
		return s, nil
	}

	if err := Save(state.Config); err != nil {
		s.err = err
		return s, nil
	}

	s.saved = true
	return nil, nil
}

func (s *SaveStep) View(state *InstallState) string {
	if s.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v", s.err)) + "\n\n(press ctrl+c to quit)\n"
	}
	if s.saved {
		return "Configuration saved successfully!\n"
	}
	return "Saving configuration...\n"
}

// Save writes <runtime>/.env and, when missing, <runtime>/profiles.yaml.
// An existing .env is never overwritten.
func Save(cfg *config.AppConfig) error {
	if err := os.MkdirAll(cfg.GetRuntimePath(), 0755); err != nil {
		return fmt.Errorf("failed to create runtime directory: %w", err)
	}

	envPath := cfg.GetEnvPath()
	if _, err := os.Stat(envPath); err == nil {
		return fmt.Errorf(".env file already exists at %s", envPath)
	}

	// The runtime path locates the .env file, so it cannot live inside it.
	out := *cfg
	out.RuntimePath = ""

	content, err := env.MarshalEnv(&out)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(envPath, []byte(content), 0600); err != nil {
		return fmt.Errorf("failed to write .env: %w", err)
	}

	profilesPath := cfg.GetProfilesPath()
	if _, err := os.Stat(profilesPath); errors.Is(err, fs.ErrNotExist) {
		if err := os.WriteFile(profilesPath, config.DefaultProfiles(), 0644); err != nil {
			return fmt.Errorf("failed to write profiles: %w", err)
		}
	}

	return nil
}
