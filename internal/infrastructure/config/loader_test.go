package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/tilewm/internal/domain/entity"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), filePerm))
	return path
}

func loadFile(t *testing.T, path string) *Manager {
	t.Helper()
	m, err := NewManagerForFile(context.Background(), path)
	require.NoError(t, err)
	require.NoError(t, m.Load())
	return m
}

func TestSetDefaults(t *testing.T) {
	mgr := &Manager{viper: viper.New()}
	mgr.setDefaults()

	assert.Equal(t, "none", mgr.viper.GetString("layout.default_layout"))
	assert.Equal(t, "yes", mgr.viper.GetString("layout.focus_wrapping"))
	assert.Equal(t, "info", mgr.viper.GetString("logging.level"))
}

func TestManager_LoadMissingFileUsesDefaults(t *testing.T) {
	m := loadFile(t, filepath.Join(t.TempDir(), "absent.toml"))

	assert.Equal(t, DefaultConfig(), m.Get())
	assert.Equal(t, entity.LayoutNone, m.DefaultLayout())
	assert.Equal(t, entity.LayoutNone, m.DefaultOrientation())
	assert.Equal(t, entity.WrapEnabled, m.FocusWrapping())
}

func TestManager_LoadFile(t *testing.T) {
	path := writeFile(t, `
[layout]
default_layout = "tabbed"
default_orientation = "vertical"
focus_wrapping = "force"

[logging]
level = "debug"
format = "json"
`)
	m := loadFile(t, path)

	assert.Equal(t, entity.LayoutTabbed, m.DefaultLayout())
	assert.Equal(t, entity.LayoutVertical, m.DefaultOrientation())
	assert.Equal(t, entity.WrapForced, m.FocusWrapping())
	assert.Equal(t, LoggingConfig{Level: "debug", Format: "json"}, m.Get().Logging)
	assert.Equal(t, path, m.GetConfigFile())
}

func TestManager_EnvironmentOverrides(t *testing.T) {
	t.Setenv("TILEWM_LAYOUT_FOCUS_WRAPPING", "no")
	t.Setenv("TILEWM_LOG_LEVEL", "warn")
	path := writeFile(t, `
[layout]
focus_wrapping = "force"
`)
	m := loadFile(t, path)

	assert.Equal(t, entity.WrapDisabled, m.FocusWrapping())
	assert.Equal(t, "warn", m.Get().Logging.Level)
}

func TestManager_LoadRejectsFloatingDefault(t *testing.T) {
	path := writeFile(t, `
[layout]
default_layout = "floating"
`)
	m, err := NewManagerForFile(context.Background(), path)
	require.NoError(t, err)

	err = m.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot be floating")
	assert.Equal(t, DefaultConfig(), m.Get(), "failed load keeps the previous configuration")
}

func TestManager_GetReturnsCopy(t *testing.T) {
	m := loadFile(t, filepath.Join(t.TempDir(), "absent.toml"))

	cfg := m.Get()
	cfg.Layout.FocusWrapping = "force"

	assert.Equal(t, entity.WrapEnabled, m.FocusWrapping())
}

func TestManager_ReloadNotifiesCallbacks(t *testing.T) {
	path := writeFile(t, `
[layout]
focus_wrapping = "no"
`)
	m := loadFile(t, path)

	var got []*Config
	m.OnConfigChange(func(c *Config) { got = append(got, c) })

	require.NoError(t, os.WriteFile(path, []byte("[layout]\nfocus_wrapping = \"force\"\n"), filePerm))
	require.NoError(t, m.Reload())

	require.Len(t, got, 1)
	assert.Equal(t, "force", got[0].Layout.FocusWrapping)
	assert.Equal(t, entity.WrapForced, m.FocusWrapping())

	require.NoError(t, os.WriteFile(path, []byte("[layout]\ndefault_layout = \"floating\"\n"), filePerm))
	require.Error(t, m.Reload())
	assert.Len(t, got, 1)
	assert.Equal(t, entity.WrapForced, m.FocusWrapping(), "invalid file keeps the last good configuration")
}

func TestManager_WatchIsIdempotent(t *testing.T) {
	m := loadFile(t, writeFile(t, "[layout]\n"))

	require.NoError(t, m.Watch())
	require.NoError(t, m.Watch())
	assert.True(t, m.watching)
}

func TestNewManager_UsesXDGConfigHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("ENV", "")
	t.Setenv("XDG_CONFIG_HOME", home)
	dir := filepath.Join(home, appName)
	require.NoError(t, os.MkdirAll(dir, dirPerm))
	require.NoError(t, os.WriteFile(filepath.Join(dir, configFileName),
		[]byte("[layout]\ndefault_orientation = \"horizontal\"\n"), filePerm))

	m, err := NewManager(context.Background())
	require.NoError(t, err)
	require.NoError(t, m.Load())

	assert.Equal(t, entity.LayoutHorizontal, m.DefaultOrientation())
	assert.Equal(t, filepath.Join(dir, configFileName), m.GetConfigFile())
}
