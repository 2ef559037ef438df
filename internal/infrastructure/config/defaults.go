package config

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Layout: LayoutConfig{
			DefaultLayout:      "none",
			DefaultOrientation: OrientationNone,
			FocusWrapping:      "yes",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
