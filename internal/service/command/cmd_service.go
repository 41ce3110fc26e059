package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/sandevgo/bowen/internal/core"
	"github.com/sandevgo/bowen/pkg/log"
)

const searchLimit = 5

type ActsCommand struct {
	api       core.LegislationAPI
	formatter *ResponseFormatter
}

func NewActsCommand(api core.LegislationAPI) *ActsCommand {
	return &ActsCommand{
		api:       api,
		formatter: NewResponseFormatter(),
	}
}

func (c *ActsCommand) Name() string {
	return "acts"
}

func (c *ActsCommand) Description() string {
	return "List covered legislation, optionally filtered"
}

func (c *ActsCommand) Execute(ctx context.Context, conv core.Conversation, args []string) (string, error) {
	acts, err := c.api.GetActs(ctx)
	offline := false
	if err != nil || len(acts) == 0 {
		if err != nil {
			log.FromCtx(ctx).Warn().Err(err).Msg("failed to fetch acts, using built-in list")
		}
		acts = core.FallbackActs
		offline = true
	}

	filter := strings.ToLower(strings.Join(args, " "))
	items := make([]string, 0, len(acts))
	for _, act := range acts {
		if filter != "" && !matchAct(act, filter) {
			continue
		}
		items = append(items, formatAct(act))
	}

	if len(items) == 0 {
		return c.formatter.Combine(
			c.formatter.Info("Legislation"),
			fmt.Sprintf("No acts match %q.", filter),
		), nil
	}

	sections := []string{
		c.formatter.Info("Legislation"),
		c.formatter.Label("Acts", fmt.Sprintf("%d", len(items))),
		c.formatter.List(items),
	}
	if offline {
		sections = append(sections, c.formatter.Tip("The service could not be reached, showing the built-in list."))
	}
	return c.formatter.Combine(sections...), nil
}

func matchAct(act core.Act, filter string) bool {
	if strings.Contains(strings.ToLower(act.Title), filter) ||
		strings.Contains(strings.ToLower(act.ShortName), filter) {
		return true
	}
	for _, topic := range act.Topics {
		if strings.Contains(strings.ToLower(topic), filter) {
			return true
		}
	}
	return false
}

func formatAct(act core.Act) string {
	title := act.Title
	if act.URL != "" {
		title = fmt.Sprintf("[%s](%s)", act.Title, act.URL)
	}
	if len(act.Topics) > 0 {
		return fmt.Sprintf("%s (%s)", title, strings.Join(act.Topics, ", "))
	}
	return title
}

type SearchCommand struct {
	api       core.LegislationAPI
	formatter *ResponseFormatter
}

func NewSearchCommand(api core.LegislationAPI) *SearchCommand {
	return &SearchCommand{
		api:       api,
		formatter: NewResponseFormatter(),
	}
}

func (c *SearchCommand) Name() string {
	return "search"
}

func (c *SearchCommand) Description() string {
	return "Search sections of legislation without asking the AI"
}

func (c *SearchCommand) Execute(ctx context.Context, conv core.Conversation, args []string) (string, error) {
	if len(args) == 0 {
		return c.formatter.Combine(
			c.formatter.Usage("/search <query>"),
			c.formatter.Examples([]string{
				"/search bond lodgement",
				"/search unjustified dismissal",
			}),
		), nil
	}

	query := strings.Join(args, " ")
	resp, err := c.api.Search(ctx, query, searchLimit)
	if err != nil {
		return "", fmt.Errorf("search failed: %w", err)
	}

	if len(resp.Results) == 0 {
		return c.formatter.Combine(
			c.formatter.Info("Search"),
			fmt.Sprintf("Nothing found for %q.", query),
		), nil
	}

	return c.formatter.Combine(
		c.formatter.Info(fmt.Sprintf("Search: %s", query)),
		c.formatter.SearchResults(resp.Results),
	), nil
}

type HealthCommand struct {
	api       core.LegislationAPI
	formatter *ResponseFormatter
}

func NewHealthCommand(api core.LegislationAPI) *HealthCommand {
	return &HealthCommand{
		api:       api,
		formatter: NewResponseFormatter(),
	}
}

func (c *HealthCommand) Name() string {
	return "health"
}

func (c *HealthCommand) Description() string {
	return "Show service status"
}

func (c *HealthCommand) Execute(ctx context.Context, conv core.Conversation, args []string) (string, error) {
	h, err := c.api.Health(ctx)
	if err != nil {
		return c.formatter.Combine(
			c.formatter.Failure("Service unreachable"),
			c.formatter.Tip("Check BOWEN_API_HOST and that the backend is running."),
		), nil
	}

	status := "ready"
	if !h.Ready() {
		status = "initializing"
	}

	return c.formatter.Combine(
		c.formatter.Info("Service Health"),
		c.formatter.Label("Status", status),
		c.formatter.Label("Embeddings", yesNo(h.EmbeddingsLoaded)),
		c.formatter.Label("Model", yesNo(h.ModelLoaded)),
		c.formatter.Label("AI provider", yesNo(h.AnthropicReady)),
		c.formatter.Label("Analytics", yesNo(h.SupabaseReady)),
		c.formatter.Label("Chunks", fmt.Sprintf("%d", h.Chunks)),
	), nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
