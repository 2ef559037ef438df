package tree

import (
	"github.com/bnema/tilewm/internal/domain/entity"
)

// SetFullscreen enables or disables fullscreen on n. Enabling demotes the
// workspace's current fullscreen node, saves n's geometry and resizes it to its
// output. Disabling restores the saved geometry; tiled nodes only get their
// size back since their position comes from arrangement.
func (t *Tree) SetFullscreen(n *entity.Node, enable bool) {
	if n == nil || n.Fullscreen == enable {
		return
	}
	ws := n.Workspace()
	if enable {
		if ws != nil {
			info := ws.WorkspaceInfo()
			if occupant := info.Fullscreen; occupant != nil && occupant != n && !occupant.IsDestroyed() {
				t.SetFullscreen(occupant, false)
			}
			// Nested fullscreen inside or around n is not allowed either.
			if other := ws.Find(func(c *entity.Node) bool { return c.Fullscreen && c != n }); other != nil {
				t.SetFullscreen(other, false)
			}
			info.Fullscreen = n
		}
		n.Saved = n.Rect
		n.Fullscreen = true
		if out := n.Output(); out != nil {
			n.Rect = out.Rect
		}
	} else {
		n.Fullscreen = false
		if ws != nil && ws.WorkspaceInfo().Fullscreen == n {
			ws.WorkspaceInfo().Fullscreen = nil
		}
		if n.IsFloating() {
			n.Rect = n.Saved
		} else {
			n.Rect.Width = n.Saved.Width
			n.Rect.Height = n.Saved.Height
		}
	}
	t.SetDirty(n)
	if ws != nil {
		t.SetDirty(ws)
	}
	t.Emit(entity.EventFullscreen, n, nil)
}
