// Package config loads the tilewm configuration file and keeps it current.
package config

// Config is the complete tilewm configuration.
type Config struct {
	Layout  LayoutConfig  `mapstructure:"layout" toml:"layout"`
	Logging LoggingConfig `mapstructure:"logging" toml:"logging"`
}

// LayoutConfig holds the tree defaults consulted by the engine.
type LayoutConfig struct {
	// DefaultLayout is one of none, splith, splitv, tabbed, stacking.
	DefaultLayout string `mapstructure:"default_layout" toml:"default_layout"`
	// DefaultOrientation is one of none, horizontal, vertical.
	// It is only consulted when DefaultLayout is none.
	DefaultOrientation string `mapstructure:"default_orientation" toml:"default_orientation"`
	// FocusWrapping is one of no, yes, force.
	FocusWrapping string `mapstructure:"focus_wrapping" toml:"focus_wrapping"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level" toml:"level"`
	Format string `mapstructure:"format" toml:"format"`
}

const (
	OrientationNone       = "none"
	OrientationHorizontal = "horizontal"
	OrientationVertical   = "vertical"
)
