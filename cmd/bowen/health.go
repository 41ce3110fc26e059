package main

import (
	"context"
	"fmt"

	"github.com/sandevgo/bowen/internal/core"
	"github.com/sandevgo/bowen/internal/service/ui"
	"github.com/spf13/cobra"
)

var healthWait bool

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check whether the service is up and ready",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !healthWait {
			return routed("health")(cmd, args)
		}
		return withApp(cmd, func(ctx context.Context, a *app) error {
			if err := waitReady(ctx, a); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.TitleStyle.UnsetMarginBottom().Render(core.BowenName+" is ready."))
			return nil
		})
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print client and service versions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "client  %s\n", core.BowenVersion)

		return withApp(cmd, func(ctx context.Context, a *app) error {
			v, err := a.client.Version(ctx)
			if err != nil {
				fmt.Fprintln(out, ui.DescStyle.Render(fmt.Sprintf("service unavailable: %v", err)))
				return nil
			}
			fmt.Fprintf(out, "service %s (api %s)\n", v.AppVersion, v.APIVersion)
			return nil
		})
	},
}

func init() {
	healthCmd.Flags().BoolVarP(&healthWait, "wait", "w", false, "poll until the service reports ready")
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(versionCmd)
}
