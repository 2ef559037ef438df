package styles

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/tilewm/internal/infrastructure/config"
)

// ConfigRenderer renders configuration status messages.
type ConfigRenderer struct {
	theme *Theme
}

// NewConfigRenderer creates a new config renderer with the given theme.
func NewConfigRenderer(theme *Theme) *ConfigRenderer {
	return &ConfigRenderer{theme: theme}
}

// RenderConfigInfo renders the config file path and whether it exists.
func (r *ConfigRenderer) RenderConfigInfo(path string, exists bool) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Accent)
	status := r.theme.SuccessStyle.Render("found")
	if !exists {
		status = r.theme.WarningStyle.Render("not found, using defaults")
	}
	return fmt.Sprintf("%s Config %s %s",
		iconStyle.Render(IconConfig),
		r.theme.Subtle.Render(path),
		status,
	)
}

// RenderSettings renders the effective settings as key/value lines.
func (r *ConfigRenderer) RenderSettings(cfg *config.Config) string {
	rows := [][2]string{
		{"layout.default_layout", cfg.Layout.DefaultLayout},
		{"layout.default_orientation", cfg.Layout.DefaultOrientation},
		{"layout.focus_wrapping", cfg.Layout.FocusWrapping},
		{"logging.level", cfg.Logging.Level},
		{"logging.format", cfg.Logging.Format},
	}

	width := 0
	for _, row := range rows {
		width = max(width, len(row[0]))
	}
	keyStyle := r.theme.Subtle.Width(width + 2)

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, keyStyle.Render(row[0])+r.theme.Highlight.Render(row[1]))
	}
	return strings.Join(lines, "\n")
}

// RenderWritten renders the message shown after writing a config file.
func (r *ConfigRenderer) RenderWritten(path string) string {
	return fmt.Sprintf("%s Wrote %s",
		r.theme.SuccessStyle.Render(IconCheck),
		r.theme.Highlight.Render(path),
	)
}
