package installer

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandevgo/bowen/internal/config"
)

// FinalizationStep reconciles answers that depend on each other
type FinalizationStep struct{}

func NewFinalizationStep() Step {
	return &FinalizationStep{}
}

func (s *FinalizationStep) Init() tea.Cmd {
	return func() tea.Msg { return nextMsg{} }
}

func (s *FinalizationStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	finalize(state)
	return nil, nil
}

func finalize(state *InstallState) {
	if state.Telegram.Token == "" {
		state.App.EnableTelegram = false
		state.Telegram.OwnerID = 0
	}
	if !state.App.EnableTelegram && !state.App.EnableCLI {
		state.App.EnableCLI = true
	}
	if state.App.Storage != config.StorageRedis {
		state.App.RedisURL = NewInstallState().App.RedisURL
	}
}

func (s *FinalizationStep) View(state *InstallState) string {
	return "Finalizing configuration...\n"
}
