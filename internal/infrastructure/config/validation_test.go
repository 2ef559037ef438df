package config

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeConfig(t *testing.T) {
	tests := []struct {
		name string
		in   Config
		want Config
	}{
		{
			name: "canonical spellings",
			in: Config{
				Layout:  LayoutConfig{DefaultLayout: "Tabbed", DefaultOrientation: "SPLITV", FocusWrapping: "FORCE"},
				Logging: LoggingConfig{Level: "DEBUG", Format: "JSON"},
			},
			want: Config{
				Layout:  LayoutConfig{DefaultLayout: "tabbed", DefaultOrientation: "vertical", FocusWrapping: "force"},
				Logging: LoggingConfig{Level: "debug", Format: "json"},
			},
		},
		{
			name: "aliases",
			in: Config{
				Layout:  LayoutConfig{DefaultLayout: "stacked", DefaultOrientation: "horizontal", FocusWrapping: "false"},
				Logging: LoggingConfig{Level: "warn", Format: "console"},
			},
			want: Config{
				Layout:  LayoutConfig{DefaultLayout: "stacking", DefaultOrientation: "horizontal", FocusWrapping: "no"},
				Logging: LoggingConfig{Level: "warn", Format: "console"},
			},
		},
		{
			name: "unknown values fall back to defaults",
			in: Config{
				Layout:  LayoutConfig{DefaultLayout: "spiral", DefaultOrientation: "diagonal", FocusWrapping: "sometimes"},
				Logging: LoggingConfig{Level: "loud", Format: "xml"},
			},
			want: *DefaultConfig(),
		},
		{
			name: "floating survives normalization",
			in:   Config{Layout: LayoutConfig{DefaultLayout: "floating"}},
			want: Config{
				Layout:  LayoutConfig{DefaultLayout: "floating", DefaultOrientation: "none", FocusWrapping: "no"},
				Logging: LoggingConfig{Level: "info", Format: "console"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.in
			normalizeConfig(&cfg)
			assert.Equal(t, tt.want, cfg)
		})
	}
}

func TestValidateConfig(t *testing.T) {
	require.NoError(t, validateConfig(DefaultConfig()))

	cfg := DefaultConfig()
	cfg.Layout.DefaultLayout = "floating"
	require.ErrorContains(t, validateConfig(cfg), "layout.default_layout cannot be floating")

	cfg.Layout.DefaultLayout = "spiral"
	require.ErrorContains(t, validateConfig(cfg), `unknown value "spiral"`)
}

func TestWriteConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := DefaultConfig()
	cfg.Layout.DefaultLayout = "splitv"

	require.NoError(t, WriteConfig(cfg, path, false))
	require.ErrorContains(t, WriteConfig(cfg, path, false), "already exists")
	require.NoError(t, WriteConfig(cfg, path, true))

	m, err := NewManagerForFile(context.Background(), path)
	require.NoError(t, err)
	require.NoError(t, m.Load())
	assert.Equal(t, cfg, m.Get())

	cfg.Layout.DefaultLayout = "floating"
	require.Error(t, WriteConfig(cfg, path, true))
}
