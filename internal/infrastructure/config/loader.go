package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/spf13/viper"

	"github.com/bnema/tilewm/internal/application/port"
	"github.com/bnema/tilewm/internal/domain/entity"
	"github.com/bnema/tilewm/internal/logging"
)

var _ port.LayoutPreferences = (*Manager)(nil)

// Manager handles configuration loading, watching, and reloading.
type Manager struct {
	config    *Config
	viper     *viper.Viper
	mu        sync.RWMutex
	callbacks []func(*Config)
	watching  bool
	ctx       context.Context
}

// NewManager creates a manager reading config.toml from the XDG config
// directory, falling back to the working directory.
func NewManager(ctx context.Context) (*Manager, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to determine config directory: %w\nCheck XDG_CONFIG_HOME environment variable or HOME directory", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)
	v.AddConfigPath(".")

	return newManager(ctx, v)
}

// NewManagerForFile creates a manager reading an explicit configuration file.
func NewManagerForFile(ctx context.Context, path string) (*Manager, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")

	return newManager(ctx, v)
}

func newManager(ctx context.Context, v *viper.Viper) (*Manager, error) {
	// TILEWM_LAYOUT_FOCUS_WRAPPING and friends are picked up by AutomaticEnv.
	v.SetEnvPrefix("TILEWM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.BindEnv("logging.level", "TILEWM_LOG_LEVEL"); err != nil {
		return nil, fmt.Errorf("failed to bind TILEWM_LOG_LEVEL: %w", err)
	}
	if err := v.BindEnv("logging.format", "TILEWM_LOG_FORMAT"); err != nil {
		return nil, fmt.Errorf("failed to bind TILEWM_LOG_FORMAT: %w", err)
	}

	return &Manager{
		viper:     v,
		config:    DefaultConfig(),
		callbacks: make([]func(*Config), 0),
		ctx:       ctx,
	}, nil
}

// Load loads the configuration from file and environment variables.
// A missing file is not an error: defaults and environment apply.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.setDefaults()

	if err := m.readConfigFile(); err != nil {
		return err
	}

	config, err := m.unmarshalConfig()
	if err != nil {
		return err
	}
	normalizeConfig(config)

	if err := validateConfig(config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	m.config = config
	return nil
}

func (m *Manager) readConfigFile() error {
	log := logging.FromContext(m.ctx)

	err := m.viper.ReadInConfig()
	if err == nil {
		log.Debug().Str("file", m.viper.ConfigFileUsed()).Msg("configuration file loaded")
		return nil
	}

	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
		log.Debug().Msg("no configuration file, using defaults")
		return nil
	}
	return fmt.Errorf("failed to read config file: %w", err)
}

func (m *Manager) unmarshalConfig() (*Config, error) {
	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return config, nil
}

// setDefaults sets default configuration values in Viper.
func (m *Manager) setDefaults() {
	defaults := DefaultConfig()

	m.viper.SetDefault("layout.default_layout", defaults.Layout.DefaultLayout)
	m.viper.SetDefault("layout.default_orientation", defaults.Layout.DefaultOrientation)
	m.viper.SetDefault("layout.focus_wrapping", defaults.Layout.FocusWrapping)
	m.viper.SetDefault("logging.level", defaults.Logging.Level)
	m.viper.SetDefault("logging.format", defaults.Logging.Format)
}

// Get returns a copy of the current configuration.
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	config := *m.config
	return &config
}

// GetConfigFile returns the path of the file in use, empty when none was found.
func (m *Manager) GetConfigFile() string {
	return m.viper.ConfigFileUsed()
}

// DefaultLayout implements port.LayoutPreferences.
func (m *Manager) DefaultLayout() entity.Layout {
	l, err := entity.ParseLayout(m.Get().Layout.DefaultLayout)
	if err != nil || l == entity.LayoutFloating {
		return entity.LayoutNone
	}
	return l
}

// DefaultOrientation implements port.LayoutPreferences.
func (m *Manager) DefaultOrientation() entity.Layout {
	switch m.Get().Layout.DefaultOrientation {
	case OrientationHorizontal:
		return entity.LayoutHorizontal
	case OrientationVertical:
		return entity.LayoutVertical
	default:
		return entity.LayoutNone
	}
}

// FocusWrapping implements port.LayoutPreferences.
func (m *Manager) FocusWrapping() entity.WrapPolicy {
	w, err := entity.ParseWrapPolicy(m.Get().Layout.FocusWrapping)
	if err != nil {
		return entity.WrapEnabled
	}
	return w
}
