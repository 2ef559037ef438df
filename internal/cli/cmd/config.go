package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bnema/tilewm/internal/cli/styles"
	"github.com/bnema/tilewm/internal/infrastructure/config"
	"github.com/bnema/tilewm/internal/logging"
)

var configInitForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and create the configuration file",
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the configuration file location",
	RunE: func(cmd *cobra.Command, _ []string) error {
		path, err := configPath()
		if err != nil {
			return err
		}
		_, statErr := os.Stat(path)
		exists := statErr == nil
		if statErr != nil && !errors.Is(statErr, fs.ErrNotExist) {
			return fmt.Errorf("stat %s: %w", path, statErr)
		}
		fmt.Fprintln(cmd.OutOrStdout(), styles.NewConfigRenderer(theme()).RenderConfigInfo(path, exists))
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective settings",
	Long:  `Show the settings after applying the configuration file and TILEWM_* environment variables.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app := GetApp()
		if app == nil {
			return fmt.Errorf("app not initialized")
		}
		fmt.Fprintln(cmd.OutOrStdout(), styles.NewConfigRenderer(app.Theme).RenderSettings(app.Config.Get()))
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a configuration file with the default settings",
	RunE: func(cmd *cobra.Command, _ []string) error {
		path, err := configPath()
		if err != nil {
			return err
		}
		if err := config.WriteConfig(config.DefaultConfig(), path, configInitForce); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), styles.NewConfigRenderer(theme()).RenderWritten(path))
		return nil
	},
}

var configWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print the settings every time the configuration file changes",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app := GetApp()
		if app == nil {
			return fmt.Errorf("app not initialized")
		}
		ctx, stop := signal.NotifyContext(app.Ctx(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return watchConfig(ctx, cmd, app.Config, styles.NewConfigRenderer(app.Theme))
	},
}

func init() {
	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false, "overwrite an existing file")
	configCmd.AddCommand(configPathCmd, configShowCmd, configInitCmd, configWatchCmd)
	rootCmd.AddCommand(configCmd)
}

func watchConfig(ctx context.Context, cmd *cobra.Command, mgr *config.Manager, r *styles.ConfigRenderer) error {
	out := cmd.OutOrStdout()
	mgr.OnConfigChange(func(cfg *config.Config) {
		fmt.Fprintln(out)
		fmt.Fprintln(out, r.RenderSettings(cfg))
	})
	if err := mgr.Watch(); err != nil {
		return err
	}

	fmt.Fprintln(out, r.RenderSettings(mgr.Get()))
	logging.FromContext(ctx).Info().Str("file", mgr.GetConfigFile()).Msg("watching configuration")
	<-ctx.Done()
	return nil
}

func configPath() (string, error) {
	if configFile != "" {
		return configFile, nil
	}
	return config.GetConfigFile()
}

func theme() *styles.Theme {
	if app := GetApp(); app != nil {
		return app.Theme
	}
	return styles.NewTheme()
}
