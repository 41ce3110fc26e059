package main

import (
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/sandevgo/bowen/internal/config"
	"github.com/sandevgo/bowen/internal/service/installer"
	"github.com/sandevgo/bowen/pkg/log"
	"github.com/spf13/cobra"
)

var installCmd = &cobra.Command{
	Use:           "install",
	Short:         "Configure Bowen interactively",
	SilenceUsage:  true,
	SilenceErrors: false,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		// Setup logger
		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)
		logger.Info().Msg("starting installation process")

		// run wizard (includes save step)
		state, err := installer.RunWizard()
		if err != nil {
			return err
		}

		// Load the newly created .env file so the next steps see the values
		runtimePath := config.GetRuntimePath()
		envPath := filepath.Join(runtimePath, ".env")
		if err := godotenv.Load(envPath); err != nil {
			logger.Warn().Err(err).Str("path", envPath).Msg("failed to load .env file")
		}

		next := "bowen chat"
		if state.App.IsTelegramSelected() {
			next = "bowen start"
		}
		cmd.Printf("Configuration written to %s\nRun '%s' to begin.\n", envPath, next)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(installCmd)
}
