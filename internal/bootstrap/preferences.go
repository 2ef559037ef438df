package bootstrap

import "github.com/bnema/tilewm/internal/domain/entity"

// defaultPreferences mirrors config.DefaultConfig for engines built without a
// configuration manager.
type defaultPreferences struct{}

func (defaultPreferences) DefaultLayout() entity.Layout      { return entity.LayoutNone }
func (defaultPreferences) DefaultOrientation() entity.Layout { return entity.LayoutNone }
func (defaultPreferences) FocusWrapping() entity.WrapPolicy  { return entity.WrapEnabled }
