package scenario

import (
	"github.com/bnema/tilewm/internal/application/port"
	"github.com/bnema/tilewm/internal/domain/entity"
)

var _ port.LayoutPreferences = (*Preferences)(nil)

// Preferences layers the layout section of a scenario over the configured
// preferences.
type Preferences struct {
	base        port.LayoutPreferences
	layout      *entity.Layout
	orientation *entity.Layout
	wrap        *entity.WrapPolicy
}

// NewPreferences returns preferences reading spec first and base second.
// base may be nil.
func NewPreferences(base port.LayoutPreferences, spec LayoutSpec) *Preferences {
	p := &Preferences{base: base}
	if spec.DefaultLayout != "" {
		if l, err := entity.ParseLayout(spec.DefaultLayout); err == nil {
			p.layout = &l
		}
	}
	if spec.DefaultOrientation != "" {
		if o, err := parseOrientation(spec.DefaultOrientation); err == nil {
			p.orientation = &o
		}
	}
	if spec.FocusWrapping != "" {
		if w, err := entity.ParseWrapPolicy(spec.FocusWrapping); err == nil {
			p.wrap = &w
		}
	}
	return p
}

// SetFocusWrapping overrides the wrap policy, taking precedence over both layers.
func (p *Preferences) SetFocusWrapping(w entity.WrapPolicy) {
	p.wrap = &w
}

func (p *Preferences) DefaultLayout() entity.Layout {
	switch {
	case p.layout != nil:
		return *p.layout
	case p.base != nil:
		return p.base.DefaultLayout()
	default:
		return entity.LayoutNone
	}
}

func (p *Preferences) DefaultOrientation() entity.Layout {
	switch {
	case p.orientation != nil:
		return *p.orientation
	case p.base != nil:
		return p.base.DefaultOrientation()
	default:
		return entity.LayoutNone
	}
}

func (p *Preferences) FocusWrapping() entity.WrapPolicy {
	switch {
	case p.wrap != nil:
		return *p.wrap
	case p.base != nil:
		return p.base.FocusWrapping()
	default:
		return entity.WrapEnabled
	}
}
