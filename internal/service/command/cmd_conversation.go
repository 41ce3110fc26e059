package command

import (
	"context"
	"fmt"

	"github.com/sandevgo/bowen/internal/core"
)

type HelpCommand struct {
	list      func() []core.Command
	formatter *ResponseFormatter
}

func NewHelpCommand(list func() []core.Command) *HelpCommand {
	return &HelpCommand{
		list:      list,
		formatter: NewResponseFormatter(),
	}
}

func (c *HelpCommand) Name() string {
	return "help"
}

func (c *HelpCommand) Description() string {
	return "List available commands"
}

func (c *HelpCommand) Execute(ctx context.Context, conv core.Conversation, args []string) (string, error) {
	cmds := c.list()
	items := make([]string, 0, len(cmds))
	for _, cmd := range cmds {
		items = append(items, fmt.Sprintf("`/%s` %s", cmd.Name(), cmd.Description()))
	}

	return c.formatter.Combine(
		c.formatter.Info("Commands"),
		c.formatter.List(items),
		c.formatter.Tip("Anything that does not start with / is sent as a question."),
	), nil
}

type NewCommand struct {
	formatter *ResponseFormatter
}

func NewNewCommand() *NewCommand {
	return &NewCommand{formatter: NewResponseFormatter()}
}

func (c *NewCommand) Name() string {
	return "new"
}

func (c *NewCommand) Description() string {
	return "Clear the conversation, keep the session"
}

func (c *NewCommand) Execute(ctx context.Context, conv core.Conversation, args []string) (string, error) {
	pending := conv.IsLoading()
	conv.ClearMessages(ctx)
	if pending {
		return c.formatter.Combine(
			c.formatter.Success("Conversation cleared"),
			c.formatter.Warning("The answer still on its way will be discarded."),
		), nil
	}
	return c.formatter.Success("Conversation cleared"), nil
}

type ResetCommand struct {
	formatter *ResponseFormatter
}

func NewResetCommand() *ResetCommand {
	return &ResetCommand{formatter: NewResponseFormatter()}
}

func (c *ResetCommand) Name() string {
	return "reset"
}

func (c *ResetCommand) Description() string {
	return "Clear the conversation and start a new session"
}

func (c *ResetCommand) Execute(ctx context.Context, conv core.Conversation, args []string) (string, error) {
	conv.ClearSession(ctx)
	return c.formatter.Combine(
		c.formatter.Success("Session reset"),
		c.formatter.Label("Session", conv.SessionID(ctx)),
	), nil
}

type SessionCommand struct {
	formatter *ResponseFormatter
}

func NewSessionCommand() *SessionCommand {
	return &SessionCommand{formatter: NewResponseFormatter()}
}

func (c *SessionCommand) Name() string {
	return "session"
}

func (c *SessionCommand) Description() string {
	return "Show the current session"
}

func (c *SessionCommand) Execute(ctx context.Context, conv core.Conversation, args []string) (string, error) {
	return c.formatter.Combine(
		c.formatter.Info("Session"),
		c.formatter.Label("ID", conv.SessionID(ctx)),
		c.formatter.Label("Messages", fmt.Sprintf("%d", len(conv.Messages()))),
	), nil
}

type SourcesCommand struct {
	formatter *ResponseFormatter
}

func NewSourcesCommand() *SourcesCommand {
	return &SourcesCommand{formatter: NewResponseFormatter()}
}

func (c *SourcesCommand) Name() string {
	return "sources"
}

func (c *SourcesCommand) Description() string {
	return "Show citations for the last answer"
}

func (c *SourcesCommand) Execute(ctx context.Context, conv core.Conversation, args []string) (string, error) {
	sources := conv.LastSources()
	if len(sources) == 0 {
		return c.formatter.Combine(
			c.formatter.Info("Sources"),
			"No sources for the last answer.",
		), nil
	}

	return c.formatter.Combine(
		c.formatter.Info("Sources"),
		c.formatter.Sources(sources),
	), nil
}

type RetryCommand struct {
	formatter *ResponseFormatter
}

func NewRetryCommand() *RetryCommand {
	return &RetryCommand{formatter: NewResponseFormatter()}
}

func (c *RetryCommand) Name() string {
	return "retry"
}

func (c *RetryCommand) Description() string {
	return "Resend the last question that failed"
}

func (c *RetryCommand) Execute(ctx context.Context, conv core.Conversation, args []string) (string, error) {
	if conv.IsLoading() {
		return c.formatter.Warning("Still waiting for the previous answer."), nil
	}
	out := conv.Retry(ctx)
	switch {
	case !out.Accepted:
		return "Nothing to retry.", nil
	case out.Failed():
		return c.formatter.Failure(out.Error), nil
	case out.Answer == nil:
		return "", nil
	}
	return out.Answer.Content, nil
}

type ExamplesCommand struct {
	formatter *ResponseFormatter
}

func NewExamplesCommand() *ExamplesCommand {
	return &ExamplesCommand{formatter: NewResponseFormatter()}
}

func (c *ExamplesCommand) Name() string {
	return "examples"
}

func (c *ExamplesCommand) Description() string {
	return "Show example questions"
}

func (c *ExamplesCommand) Execute(ctx context.Context, conv core.Conversation, args []string) (string, error) {
	return c.formatter.Combine(
		c.formatter.Info("Try asking"),
		c.formatter.List(core.ExampleQuestions),
	), nil
}
