package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/sandevgo/bowen/pkg/log"
	"github.com/sandevgo/bowen/pkg/srv"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve Bowen as MCP tools over stdio",
	Long: `Runs a Model Context Protocol server on stdin/stdout exposing
ask_legislation, list_acts and search_legislation. Logs go to stderr.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}

		services := NewMCPServices(ctx, a)
		srv.StartServices(ctx, stop, services)
		srv.ShutdownServices(ctx, services)

		log.FromCtx(ctx).Debug().Msg("mcp server stopped")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
