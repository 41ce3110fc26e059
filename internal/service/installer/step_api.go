package installer

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandevgo/bowen/internal/core"
	"github.com/sandevgo/bowen/internal/providers/bowen"
)

const healthCheckTimeout = 5 * time.Second

func NewAPIHostStep() Step {
	return &InputStep{
		title: "Enter the Bowen service URL",
		hint:  "The /api/v1 prefix is added automatically; the bare host is the fallback.",
		input: newInput("http://localhost:8000", false),
		apply: func(state *InstallState, value string) error {
			u, err := url.Parse(value)
			if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
				return fmt.Errorf("%q is not an http(s) URL", value)
			}
			state.API.Host = value
			return nil
		},
	}
}

type healthMsg struct {
	health *core.HealthStatus
	err    error
}

// ConnectionStep checks the service is reachable. Failure is reported but
// does not stop the install; the backend may simply not be running yet.
type ConnectionStep struct {
	spinner spinner.Model
	started bool
	done    bool
	err     error
}

func NewConnectionStep() Step {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return &ConnectionStep{spinner: sp}
}

func (s *ConnectionStep) Init() tea.Cmd {
	return s.spinner.Tick
}

func (s *ConnectionStep) check(cfg core.APIConfig) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), healthCheckTimeout)
		defer cancel()

		h, err := bowen.NewClient(cfg).Health(ctx)
		return healthMsg{health: h, err: err}
	}
}

func (s *ConnectionStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if !s.started {
		s.started = true
		return s, tea.Batch(s.check(state.API), s.spinner.Tick)
	}

	switch msg := msg.(type) {
	case healthMsg:
		s.done = true
		s.err = msg.err
		state.Health = msg.health
		return s, nil

	case spinner.TickMsg:
		if s.done {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyMsg:
		if s.done && msg.String() == "enter" {
			return nil, nil
		}
	}
	return s, nil
}

func (s *ConnectionStep) View(state *InstallState) string {
	if !s.done {
		return fmt.Sprintf("%s Contacting %s ...\n", s.spinner.View(), state.API.GetHost())
	}

	var status string
	switch {
	case s.err != nil:
		status = errorStyle.Render(fmt.Sprintf("Could not reach the service: %v", s.err)) +
			"\n" + descStyle.Render("You can continue and start the backend later.")
	case state.Health != nil && !state.Health.Ready():
		status = descStyle.Render("Service reachable, still initializing.")
	default:
		status = titleStyle.Render("Service reachable and ready.")
	}
	return status + "\n\n(press enter to continue)\n"
}
