package tree

import (
	"github.com/bnema/tilewm/internal/domain/entity"
)

// Flatten collapses single-child containers starting at n and walking
// upward. The lone child takes the container's slot and the container is
// destroyed. It returns the node where flattening stopped.
func (t *Tree) Flatten(n *entity.Node) *entity.Node {
	for n != nil &&
		n.Type == entity.NodeContainer &&
		n.Layout != entity.LayoutFloating &&
		!n.Fullscreen &&
		len(n.Children) == 1 &&
		n.Parent != nil {
		child := n.Children[0]
		parent := n.Parent
		if t.ReplaceChild(n, child) == nil {
			break
		}
		t.Destroy(n)
		n = parent
	}
	return n
}

// ReapEmptyRecursive destroys n and its ancestors while they are empty.
// A workspace is kept when keep returns true for it or when it is the last
// workspace of its output.
func (t *Tree) ReapEmptyRecursive(n *entity.Node, keep func(*entity.Node) bool) {
	for n != nil && !n.IsDestroyed() {
		switch n.Type {
		case entity.NodeWorkspace:
			if !t.workspaceIsEmpty(n) || (keep != nil && keep(n)) {
				return
			}
			if out := n.Parent; out == nil || len(out.Children) <= 1 {
				return
			}
			t.Destroy(n)
			return
		case entity.NodeContainer:
			if n.Layout == entity.LayoutFloating || len(n.Children) > 0 {
				return
			}
			parent := n.Parent
			t.Destroy(n)
			n = parent
		default:
			return
		}
	}
}

func (t *Tree) workspaceIsEmpty(ws *entity.Node) bool {
	if len(ws.Children) > 0 {
		return false
	}
	floating := ws.WorkspaceInfo().Floating
	return floating == nil || len(floating.Children) == 0
}
