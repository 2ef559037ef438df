// Package cli holds the dependencies shared by the tilewm commands.
package cli

import (
	"context"
	"fmt"

	"github.com/bnema/tilewm/internal/bootstrap"
	"github.com/bnema/tilewm/internal/cli/styles"
	"github.com/bnema/tilewm/internal/domain/build"
	"github.com/bnema/tilewm/internal/infrastructure/config"
	"github.com/bnema/tilewm/internal/logging"
)

// Options configures NewApp.
type Options struct {
	// ConfigFile overrides the XDG configuration file.
	ConfigFile string
	// LogLevel overrides the configured log level when set.
	LogLevel string
}

// App holds CLI dependencies.
type App struct {
	Config    *config.Manager
	Theme     *styles.Theme
	BuildInfo build.Info

	ctx context.Context
}

// NewApp loads the configuration and sets up logging.
func NewApp(opts Options) (*App, error) {
	// Until the config is read, TILEWM_LOG_* decide what config loading logs.
	bootCtx := logging.WithContext(context.Background(), logging.NewFromEnv())
	mgr, err := bootstrap.LoadConfig(bootCtx, opts.ConfigFile)
	if err != nil {
		return nil, err
	}
	cfg := mgr.Get()

	level := cfg.Logging.Level
	if opts.LogLevel != "" {
		if _, ok := logging.ParseLevel(opts.LogLevel); !ok {
			return nil, fmt.Errorf("invalid log level %q", opts.LogLevel)
		}
		level = opts.LogLevel
	}
	logger := logging.NewFromConfigValues(level, cfg.Logging.Format)
	ctx := logging.WithContext(context.Background(), logger)

	logger.Debug().
		Str("config_file", mgr.GetConfigFile()).
		Str("level", level).
		Msg("cli initialized")

	return &App{
		Config: mgr,
		Theme:  styles.NewTheme(),
		ctx:    ctx,
	}, nil
}

// Ctx returns the application context with logger.
func (a *App) Ctx() context.Context {
	return a.ctx
}

// NewEngine builds an engine reading preferences from the loaded config.
func (a *App) NewEngine(opts bootstrap.Options) *bootstrap.Engine {
	if opts.Config == nil {
		opts.Config = a.Config
	}
	return bootstrap.NewEngine(a.ctx, opts)
}
