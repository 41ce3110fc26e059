package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/sandevgo/bowen/internal/service/ui"
	"github.com/spf13/cobra"
)

// routed runs a slash command against the terminal conversation and prints
// the rendered reply, so the CLI and the REPL say the same thing.
func routed(name string) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			input := strings.TrimSpace("/" + name + " " + strings.Join(args, " "))
			reply, _ := a.router.Execute(ctx, a.terminal(ctx), input)
			fmt.Fprintln(cmd.OutOrStdout(), ui.Markdown(reply))
			return nil
		})
	}
}

var actsCmd = &cobra.Command{
	Use:   "acts [filter]",
	Short: "List the legislation Bowen covers",
	RunE:  routed("acts"),
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Find matching sections without generating an answer",
	Args:  cobra.MinimumNArgs(1),
	RunE:  routed("search"),
}

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Show the session id sent with questions",
	Args:  cobra.NoArgs,
	RunE:  routed("session"),
}

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "Show the citations of the last answer",
	Args:  cobra.NoArgs,
	RunE:  routed("sources"),
}

func init() {
	rootCmd.AddCommand(actsCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(sessionCmd)
	rootCmd.AddCommand(sourcesCmd)
}
