// Package bootstrap wires the window tree engine together.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/bnema/tilewm/internal/application/port"
	"github.com/bnema/tilewm/internal/application/usecase"
	"github.com/bnema/tilewm/internal/domain/seat"
	"github.com/bnema/tilewm/internal/domain/tree"
	"github.com/bnema/tilewm/internal/infrastructure/commit"
	"github.com/bnema/tilewm/internal/infrastructure/config"
	"github.com/bnema/tilewm/internal/infrastructure/events"
	"github.com/bnema/tilewm/internal/infrastructure/outputlayout"
	"github.com/bnema/tilewm/internal/logging"
)

const defaultSeatName = "seat0"

// Options configures NewEngine.
type Options struct {
	// Config is the loaded configuration manager. When nil, built-in defaults apply.
	Config *config.Manager
	// Preferences replaces Config as the layout preference source when set.
	Preferences port.LayoutPreferences
	// Arrange receives the dirty node batches. When nil batches are only logged.
	Arrange  commit.Handler
	SeatName string
}

// Engine owns one window tree and everything operating on it.
type Engine struct {
	Tree    *tree.Tree
	Seat    *seat.Seat
	Outputs *outputlayout.Layout
	Bus     *events.Bus
	Trees   *usecase.ManageTreeUseCase
	Commits *commit.Service
	Config  *config.Manager
}

// NewEngine builds an engine with an empty tree.
func NewEngine(ctx context.Context, opts Options) *Engine {
	log := logging.FromContext(ctx)

	name := opts.SeatName
	if name == "" {
		name = defaultSeatName
	}

	var prefs port.LayoutPreferences
	switch {
	case opts.Preferences != nil:
		prefs = opts.Preferences
	case opts.Config != nil:
		prefs = opts.Config
	default:
		prefs = defaultPreferences{}
	}

	arrange := opts.Arrange
	if arrange == nil {
		arrange = logBatch
	}

	t := tree.New()
	s := seat.New(name, t)
	outputs := outputlayout.New(t)
	e := &Engine{
		Tree:    t,
		Seat:    s,
		Outputs: outputs,
		Bus:     events.New(ctx, t),
		Trees:   usecase.NewManageTreeUseCase(t, s, outputs, prefs),
		Commits: commit.NewService(t, arrange),
		Config:  opts.Config,
	}
	e.Commits.Start(ctx)

	if opts.Config != nil {
		opts.Config.OnConfigChange(func(cfg *config.Config) {
			log.Info().
				Str("default_layout", cfg.Layout.DefaultLayout).
				Str("default_orientation", cfg.Layout.DefaultOrientation).
				Str("focus_wrapping", cfg.Layout.FocusWrapping).
				Msg("layout preferences changed")
		})
	}

	log.Debug().
		Str("seat", name).
		Str("default_layout", prefs.DefaultLayout().String()).
		Str("focus_wrapping", prefs.FocusWrapping().String()).
		Msg("engine ready")
	return e
}

// Close commits outstanding changes and detaches everything from the tree.
func (e *Engine) Close(ctx context.Context) error {
	err := e.Commits.Stop(ctx)
	e.Bus.Close()
	e.Seat.Close()
	return err
}

func logBatch(ctx context.Context, b commit.Batch) error {
	logging.FromContext(ctx).Debug().
		Uint64("seq", b.Seq).
		Int("nodes", len(b.Nodes)).
		Msg("arrangement batch")
	return nil
}

// LoadConfig creates and loads a configuration manager. An empty path reads
// config.toml from the XDG config directory.
func LoadConfig(ctx context.Context, path string) (*config.Manager, error) {
	var (
		mgr *config.Manager
		err error
	)
	if path == "" {
		mgr, err = config.NewManager(ctx)
	} else {
		mgr, err = config.NewManagerForFile(ctx, path)
	}
	if err != nil {
		return nil, fmt.Errorf("create config manager: %w", err)
	}
	if err := mgr.Load(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return mgr, nil
}
