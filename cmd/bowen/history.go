package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sandevgo/bowen/internal/core"
	"github.com/sandevgo/bowen/internal/service/ui"
	"github.com/spf13/cobra"
)

var (
	historyJSON bool
	clearAll    bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Print the saved terminal conversation",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			msgs := a.terminal(ctx).Messages()
			out := cmd.OutOrStdout()

			if historyJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(msgs)
			}

			if len(msgs) == 0 {
				fmt.Fprintln(out, ui.DescStyle.Render("No conversation yet."))
				return nil
			}
			for _, m := range msgs {
				if m.Role == core.RoleUser {
					fmt.Fprintln(out, ui.UsageStyle.Render("› "+m.Content))
					continue
				}
				fmt.Fprintln(out, ui.Answer(m))
			}
			return nil
		})
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget the terminal conversation",
	Long:  `Deletes the saved conversation. With --all the session id is dropped too and a new one is issued on the next question.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			conv := a.terminal(ctx)
			if clearAll {
				conv.ClearSession(ctx)
				fmt.Fprintln(cmd.OutOrStdout(), "Conversation and session cleared.")
				return nil
			}
			conv.ClearMessages(ctx)
			fmt.Fprintln(cmd.OutOrStdout(), "Conversation cleared.")
			return nil
		})
	},
}

func init() {
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "print stored messages as JSON")
	clearCmd.Flags().BoolVarP(&clearAll, "all", "a", false, "also drop the session id")
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(clearCmd)
}
