package config

import (
	"fmt"
	"strings"

	"github.com/bnema/tilewm/internal/domain/entity"
	"github.com/bnema/tilewm/internal/logging"
)

// normalizeConfig lowercases enum values and replaces unknown ones with defaults.
func normalizeConfig(config *Config) {
	defaults := DefaultConfig()

	if l, err := entity.ParseLayout(config.Layout.DefaultLayout); err != nil {
		config.Layout.DefaultLayout = defaults.Layout.DefaultLayout
	} else {
		config.Layout.DefaultLayout = l.String()
	}

	switch strings.ToLower(strings.TrimSpace(config.Layout.DefaultOrientation)) {
	case "horizontal", "splith":
		config.Layout.DefaultOrientation = OrientationHorizontal
	case "vertical", "splitv":
		config.Layout.DefaultOrientation = OrientationVertical
	default:
		config.Layout.DefaultOrientation = OrientationNone
	}

	if w, err := entity.ParseWrapPolicy(config.Layout.FocusWrapping); err != nil {
		config.Layout.FocusWrapping = defaults.Layout.FocusWrapping
	} else {
		config.Layout.FocusWrapping = w.String()
	}

	if _, ok := logging.ParseLevel(config.Logging.Level); !ok {
		config.Logging.Level = defaults.Logging.Level
	}
	config.Logging.Level = strings.ToLower(strings.TrimSpace(config.Logging.Level))

	switch strings.ToLower(config.Logging.Format) {
	case "json":
		config.Logging.Format = "json"
	default:
		config.Logging.Format = "console"
	}
}

// validateConfig rejects values that normalization cannot repair.
func validateConfig(config *Config) error {
	var validationErrors []string

	switch config.Layout.DefaultLayout {
	case entity.LayoutFloating.String():
		validationErrors = append(validationErrors, "layout.default_layout cannot be floating")
	case entity.LayoutNone.String(), entity.LayoutHorizontal.String(), entity.LayoutVertical.String(),
		entity.LayoutTabbed.String(), entity.LayoutStacked.String():
	default:
		validationErrors = append(validationErrors,
			fmt.Sprintf("layout.default_layout has unknown value %q", config.Layout.DefaultLayout))
	}

	if len(validationErrors) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(validationErrors, "\n  - "))
	}
	return nil
}
