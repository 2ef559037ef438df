// Package cmd provides Cobra CLI commands for tilewm.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/tilewm/internal/cli"
	"github.com/bnema/tilewm/internal/domain/build"
)

var (
	app        *cli.App
	buildInfo  build.Info
	configFile string
	logLevel   string

	rootCmd = &cobra.Command{
		Use:   "tilewm",
		Short: "A sway-style tiling window tree engine",
		Long: `tilewm - the window tree of a tiling compositor, without the compositor.

It keeps outputs, workspaces, split containers and views in one tree and
implements the i3/sway operations on it: split, move, swap, directional
focus, fullscreen and moving workspaces between outputs.

Scenarios describe a tree and a script of commands in YAML. Use
'tilewm replay' to run one and watch the tree change step by step.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip initialization for commands that don't need a loaded config
			switch cmd.Name() {
			case "help", "completion", "init", "path", "sort":
				return nil
			}

			var err error
			app, err = cli.NewApp(cli.Options{ConfigFile: configFile, LogLevel: logLevel})
			if err != nil {
				return fmt.Errorf("initialize app: %w", err)
			}
			app.BuildInfo = buildInfo
			return nil
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "configuration file (default $XDG_CONFIG_HOME/tilewm/config.toml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override the configured log level (trace, debug, info, warn, error)")
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
