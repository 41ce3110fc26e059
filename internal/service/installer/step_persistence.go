package installer

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandevgo/bowen/internal/config"
	"github.com/sandevgo/bowen/pkg/env"
)

// SaveEnvStep writes the collected configuration to .env file
type SaveEnvStep struct {
	err   error
	saved bool
	path  string
}

func NewSaveEnvStep() Step {
	return &SaveEnvStep{}
}

func (s *SaveEnvStep) Init() tea.Cmd {
	return func() tea.Msg { return nextMsg{} }
}

func (s *SaveEnvStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if s.saved {
		return nil, nil
	}

	path, err := SaveEnv(state)
	if err != nil {
		s.err = err
		return s, nil
	}

	s.path = path
	s.saved = true
	return nil, nil
}

// SaveEnv writes state to <runtime>/.env and refuses to overwrite one.
func SaveEnv(state *InstallState) (string, error) {
	path := config.GetRuntimePath()

	if err := os.MkdirAll(path, 0755); err != nil {
		return "", fmt.Errorf("failed to create runtime directory: %w", err)
	}

	envPath := filepath.Join(path, ".env")
	if _, err := os.Stat(envPath); err == nil {
		return "", fmt.Errorf(".env file already exists at %s", envPath)
	}

	configs := []any{&state.App, &state.API}
	if state.App.EnableTelegram {
		configs = append(configs, &state.Telegram)
	}

	content, err := env.MarshalEnv(configs...)
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(envPath, []byte(content), 0600); err != nil {
		return "", err
	}
	return envPath, nil
}

func (s *SaveEnvStep) View(state *InstallState) string {
	if s.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v", s.err)) + "\n\n(press ctrl+c to quit)\n"
	}
	if s.saved {
		return fmt.Sprintf("Configuration saved to %s\n", s.path)
	}
	return "Saving configuration...\n"
}
