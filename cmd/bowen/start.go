package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/sandevgo/bowen/pkg/log"
	"github.com/sandevgo/bowen/pkg/srv"
	"github.com/spf13/cobra"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the configured transports",
	Long:  `Starts the terminal chat and/or the Telegram bot, as selected by BOWEN_ENABLE_CLI and BOWEN_ENABLE_TELEGRAM.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServices(cmd, false)
	},
}

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat in the terminal",
	Long:  `Opens the interactive terminal chat. The conversation and session are restored from the last run.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServices(cmd, true)
	},
}

func runServices(cmd *cobra.Command, forceCLI bool) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// logger setup
	var flushLog func()
	ctx, flushLog = setupLogger(ctx)
	defer flushLog()

	logger := log.FromCtx(ctx)
	logger.Info().Msg("starting bowen")

	a, err := newApp(ctx)
	if err != nil {
		return err
	}

	services, err := NewServices(ctx, a, stop, forceCLI)
	if err != nil {
		_ = a.close()
		return err
	}

	// Start services
	srv.StartServices(ctx, stop, services)

	// Wait for shutdown signal
	srv.ShutdownServices(ctx, services)
	logger.Info().Msg("bowen has been shut down gracefully")

	return nil
}

func init() {
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(chatCmd)
}
