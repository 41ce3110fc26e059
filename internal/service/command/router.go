package command

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/sandevgo/bowen/internal/core"
)

type Router struct {
	commands map[string]core.Command
}

// New builds a router over commands and adds /help listing them.
func New(commands []core.Command) *Router {
	c := &Router{
		commands: make(map[string]core.Command),
	}

	for _, cmd := range commands {
		c.commands[cmd.Name()] = cmd
	}
	help := NewHelpCommand(c.ListCommands)
	c.commands[help.Name()] = help
	return c
}

// Execute runs input when it is a slash command. The bool is false when input
// should be sent to the service as a question instead.
func (c *Router) Execute(ctx context.Context, conv core.Conversation, input string) (string, bool) {
	input = strings.TrimSpace(input)
	if !strings.HasPrefix(input, "/") {
		return "", false
	}

	parts := strings.Fields(input)
	name := strings.ToLower(strings.TrimPrefix(parts[0], "/"))
	// telegram appends the bot name in groups: /help@bowen_bot
	if i := strings.Index(name, "@"); i >= 0 {
		name = name[:i]
	}
	args := parts[1:]

	cmd, ok := c.commands[name]
	if !ok {
		return fmt.Sprintf("Unknown command: /%s. Type /help for the list.", name), true
	}

	result, err := cmd.Execute(ctx, conv, args)
	if err != nil {
		return fmt.Sprintf("Error: %v", err), true
	}
	return result, true
}

// ListCommands returns the commands sorted by name.
func (c *Router) ListCommands() []core.Command {
	res := make([]core.Command, 0, len(c.commands))
	for _, cmd := range c.commands {
		res = append(res, cmd)
	}
	sort.Slice(res, func(i, j int) bool {
		return res[i].Name() < res[j].Name()
	})
	return res
}
