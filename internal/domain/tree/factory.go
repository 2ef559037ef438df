package tree

import (
	"github.com/bnema/tilewm/internal/domain/entity"
)

// NewOutput creates an output and attaches it to the root.
func (t *Tree) NewOutput(name string, rect entity.Rect) *entity.Node {
	out := entity.NewOutput(t.allocID(), name, rect)
	t.root.Children = append(t.root.Children, out)
	out.Parent = t.root
	t.SetDirty(out)
	t.Emit(entity.EventCreate, out, nil)
	return out
}

// NewWorkspace creates a workspace together with its floating container. When
// output is non-nil the workspace is attached to it and the output's
// workspaces are re-sorted.
func (t *Tree) NewWorkspace(output *entity.Node, name string, layout entity.Layout) *entity.Node {
	ws := entity.NewWorkspace(t.allocID(), name, layout)
	floating := entity.NewContainer(t.allocID(), entity.LayoutFloating)
	floating.Parent = ws
	ws.WorkspaceInfo().Floating = floating

	if output != nil {
		ws.Rect = output.Rect
		output.Children = append(output.Children, ws)
		ws.Parent = output
		t.SortWorkspaces(output)
	}
	t.SetDirty(ws)
	t.Emit(entity.EventCreate, ws, nil)
	return ws
}

// NewContainer creates a detached container.
func (t *Tree) NewContainer(layout entity.Layout) *entity.Node {
	c := entity.NewContainer(t.allocID(), layout)
	t.Emit(entity.EventCreate, c, nil)
	return c
}

// NewView creates a detached view.
func (t *Tree) NewView(name, appID string) *entity.Node {
	v := entity.NewView(t.allocID(), name, appID)
	t.Emit(entity.EventCreate, v, nil)
	return v
}

// Destroy detaches n, destroys its whole subtree and emits a destroy event per
// node, children first.
func (t *Tree) Destroy(n *entity.Node) {
	if n == nil || n.IsDestroyed() || n.Type == entity.NodeRoot {
		return
	}
	for len(n.Children) > 0 {
		t.Destroy(n.Children[len(n.Children)-1])
	}
	if n.Type == entity.NodeWorkspace {
		if floating := n.WorkspaceInfo().Floating; floating != nil {
			for len(floating.Children) > 0 {
				t.Destroy(floating.Children[len(floating.Children)-1])
			}
			floating.Parent = nil
			floating.MarkDestroyed()
		}
		n.WorkspaceInfo().Fullscreen = nil
	}
	if n.Parent != nil {
		t.Remove(n)
	}
	n.MarkDestroyed()
	t.Emit(entity.EventDestroy, n, nil)
}
