// Package cmd provides Cobra CLI commands for ctxtree.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/ctxtree/internal/cli"
	"github.com/bnema/ctxtree/internal/domain/build"
)

var (
	app       *cli.App
	buildInfo build.Info
	configDir string
	rootCmd   = &cobra.Command{
		Use:   "ctxtree",
		Short: "Build browsing context trees from navigation events",
		Long: `ctxtree - turn a stream of page navigations into a forest of browsing context.

Pages reached from a page on the same site become its children. Everything
else starts a new tree. The resulting forest can be printed, browsed in an
interactive picker, and handed to an AI chat as context.

Navigation events are read from JSON-lines, JSON or YAML files, as recorded
by the browser's tab coordinator.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip initialization for commands that don't need app context
			switch cmd.Name() {
			case "help", "completion", "schema":
				return nil
			}

			var err error
			if configDir != "" {
				app, err = cli.NewAppForConfigDir(configDir)
			} else {
				app, err = cli.NewApp()
			}
			if err != nil {
				return fmt.Errorf("initialize app: %w", err)
			}
			app.BuildInfo = buildInfo
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if app != nil {
				_ = app.Close()
			}
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "read config.toml from this directory instead of the XDG config dir")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// GetApp returns the initialized app (for use by subcommands).
func GetApp() *cli.App {
	return app
}

// SetBuildInfo sets the build information (called from main.go before Execute).
func SetBuildInfo(info build.Info) {
	buildInfo = info
}
