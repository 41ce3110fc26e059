package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sandevgo/bowen/internal/core"
	"github.com/sandevgo/bowen/internal/service/ui"
	"github.com/sandevgo/bowen/pkg/retry"
	"github.com/spf13/cobra"
)

var (
	askWait bool
	askNew  bool
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask one question and print the answer",
	Long: `Asks a single question in the terminal conversation, so follow-ups made
with ask or chat share context.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			if askWait {
				if err := waitReady(ctx, a); err != nil {
					return err
				}
			}

			conv := a.terminal(ctx)
			if askNew {
				conv.ClearMessages(ctx)
			}

			out := cmd.OutOrStdout()
			res := conv.Send(ctx, strings.Join(args, " "))
			if !res.Accepted {
				return errors.New("question is empty")
			}
			if res.Failed() {
				fmt.Fprintln(cmd.ErrOrStderr(), ui.Error(res.Error, res.RetryAfter))
				return errors.New("no answer received")
			}
			if res.Answer == nil {
				return errors.New("no answer received")
			}
			fmt.Fprintln(out, ui.Answer(*res.Answer))
			if d := conv.Disclaimer(); d != "" {
				fmt.Fprintln(out, ui.DescStyle.Render(d))
			}
			return nil
		})
	},
}

// waitReady polls health until the service can answer.
func waitReady(ctx context.Context, a *app) error {
	fmt.Println(ui.DescStyle.Render("Waiting for " + core.BowenName + " to finish loading..."))
	if _, err := a.client.WaitReady(ctx, retry.NewDefaultRetrier()); err != nil {
		return fmt.Errorf("service not ready: %w", err)
	}
	return nil
}

func init() {
	askCmd.Flags().BoolVarP(&askWait, "wait", "w", false, "wait until the service has finished loading")
	askCmd.Flags().BoolVarP(&askNew, "new", "n", false, "start a new conversation first")
	rootCmd.AddCommand(askCmd)
}
