package tree

import (
	"slices"

	"github.com/bnema/tilewm/internal/domain/entity"
)

// Insert detaches child from its current parent and splices it into parent at
// idx. The index is clamped to the valid range. Events are delivered once child
// is attached again.
func (t *Tree) Insert(parent, child *entity.Node, idx int) {
	release := t.Hold()
	defer release()

	oldParent := child.Parent
	if oldParent != nil {
		t.Remove(child)
	}
	t.insertAt(parent, child, idx, oldParent)
}

// AddSibling places moving immediately after fixed and returns their shared parent.
func (t *Tree) AddSibling(fixed, moving *entity.Node) *entity.Node {
	release := t.Hold()
	defer release()

	oldParent := moving.Parent
	if oldParent != nil {
		t.Remove(moving)
	}
	parent := fixed.Parent
	t.insertAt(parent, moving, fixed.Index()+1, oldParent)
	return parent
}

// AddChild appends child to parent's children.
func (t *Tree) AddChild(parent, child *entity.Node) {
	release := t.Hold()
	defer release()

	oldParent := child.Parent
	if oldParent != nil {
		t.Remove(child)
	}
	t.insertAt(parent, child, len(parent.Children), oldParent)
}

func (t *Tree) insertAt(parent, child *entity.Node, idx int, oldParent *entity.Node) {
	idx = max(0, min(idx, len(parent.Children)))
	parent.Children = slices.Insert(parent.Children, idx, child)
	child.Parent = parent
	t.handleFullscreenReparent(child)
	t.SetDirty(parent)
	t.SetDirty(child)
	t.Emit(entity.EventReparent, child, oldParent)
}

// Remove detaches child from its parent and returns the former parent, or nil
// when child was already detached. A workspace fullscreen slot pointing into
// the removed subtree is cleared.
func (t *Tree) Remove(child *entity.Node) *entity.Node {
	parent := child.Parent
	if parent == nil {
		return nil
	}
	if child.Type != entity.NodeWorkspace {
		if ws := child.Workspace(); ws != nil {
			info := ws.WorkspaceInfo()
			if fs := info.Fullscreen; fs == child || (fs != nil && fs.HasAncestor(child)) {
				info.Fullscreen = nil
			}
		}
	}
	if idx := child.Index(); idx >= 0 {
		parent.Children = slices.Delete(parent.Children, idx, idx+1)
	}
	child.Parent = nil
	t.SetDirty(parent)
	t.SetDirty(child)
	t.Emit(entity.EventSubtreeChanged, parent, nil)
	return parent
}

// ReplaceChild puts replacement into old's slot, copying its geometry, and
// detaches old with a zero size. It returns the shared parent, or nil when old
// has no parent.
func (t *Tree) ReplaceChild(old, replacement *entity.Node) *entity.Node {
	if old.Parent == nil {
		return nil
	}
	release := t.Hold()
	defer release()

	prevParent := replacement.Parent
	if prevParent != nil {
		t.Remove(replacement)
	}
	parent := old.Parent
	i := old.Index()
	if i < 0 {
		return nil
	}
	if ws := parent.Workspace(); ws != nil {
		info := ws.WorkspaceInfo()
		if fs := info.Fullscreen; fs == old || (fs != nil && fs.HasAncestor(old)) {
			info.Fullscreen = nil
		}
	}
	parent.Children[i] = replacement
	replacement.Parent = parent
	old.Parent = nil

	replacement.Rect = old.Rect
	old.Rect.Width = 0
	old.Rect.Height = 0

	t.handleFullscreenReparent(replacement)
	t.SetDirty(parent)
	t.SetDirty(replacement)
	t.Emit(entity.EventReparent, replacement, prevParent)
	return parent
}

// handleFullscreenReparent restores workspace fullscreen bookkeeping after n
// has been attached somewhere new. A fullscreen node found in the subtree takes
// the destination workspace's slot, demoting any previous occupant, and is
// resized to the destination output.
func (t *Tree) handleFullscreenReparent(n *entity.Node) {
	fs := n.Find(func(c *entity.Node) bool { return c.Fullscreen })
	if fs == nil {
		return
	}
	if n.Type == entity.NodeWorkspace {
		if out := n.Output(); out != nil {
			fs.Rect = out.Rect
			t.SetDirty(fs)
		}
		return
	}
	ws := n.Workspace()
	if ws == nil {
		return
	}
	info := ws.WorkspaceInfo()
	if info.Fullscreen != fs {
		if occupant := info.Fullscreen; occupant != nil && !occupant.IsDestroyed() {
			t.SetFullscreen(occupant, false)
		}
		info.Fullscreen = fs
	}
	if out := ws.Output(); out != nil {
		fs.Rect = out.Rect
	}
	t.SetDirty(fs)
}

// NotifySubtreeChanged marks n and its ancestors up to the workspace dirty and
// emits a subtree-changed event for n.
func (t *Tree) NotifySubtreeChanged(n *entity.Node) {
	if n == nil || n.IsDestroyed() {
		return
	}
	for c := n; c != nil && c.Type != entity.NodeOutput && c.Type != entity.NodeRoot; c = c.Parent {
		t.SetDirty(c)
	}
	t.Emit(entity.EventSubtreeChanged, n, nil)
}
