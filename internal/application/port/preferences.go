package port

import "github.com/bnema/tilewm/internal/domain/entity"

// LayoutPreferences exposes the configuration values the tree engine reads.
type LayoutPreferences interface {
	// DefaultLayout is the layout for new workspaces, LayoutNone when unset.
	DefaultLayout() entity.Layout
	// DefaultOrientation is LayoutHorizontal, LayoutVertical or LayoutNone (automatic).
	DefaultOrientation() entity.Layout
	FocusWrapping() entity.WrapPolicy
}
