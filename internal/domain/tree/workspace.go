package tree

import (
	"strconv"

	"github.com/bnema/tilewm/internal/domain/entity"
)

// SortWorkspaces stable-sorts the workspaces of output by name.
func (t *Tree) SortWorkspaces(output *entity.Node) {
	if output == nil {
		return
	}
	entity.SortWorkspaces(output.Children)
	t.SetDirty(output)
}

// NextWorkspaceName returns the lowest positive integer not yet used as a
// workspace name.
func (t *Tree) NextWorkspaceName() string {
	used := make(map[string]bool)
	for _, ws := range t.Workspaces() {
		used[ws.Name] = true
	}
	for i := 1; ; i++ {
		name := strconv.Itoa(i)
		if !used[name] {
			return name
		}
	}
}

// SetUrgent changes the urgency hint of a view and re-evaluates its workspace.
func (t *Tree) SetUrgent(view *entity.Node, urgent bool) {
	info := view.ViewInfo()
	if info.Urgent == urgent {
		return
	}
	info.Urgent = urgent
	t.SetDirty(view)
	t.Emit(entity.EventWindowUrgent, view, nil)
	if ws := view.Workspace(); ws != nil {
		t.DetectUrgent(ws)
	}
}

// DetectUrgent recomputes the urgency of ws from its views and emits
// EventWorkspaceUrgent when it changes.
func (t *Tree) DetectUrgent(ws *entity.Node) {
	if ws == nil || ws.IsDestroyed() || ws.Type != entity.NodeWorkspace {
		return
	}
	urgent := ws.Find(func(n *entity.Node) bool {
		return n.Type == entity.NodeView && n.ViewInfo().Urgent
	}) != nil

	info := ws.WorkspaceInfo()
	if info.Urgent == urgent {
		return
	}
	info.Urgent = urgent
	t.SetDirty(ws)
	t.Emit(entity.EventWorkspaceUrgent, ws, nil)
}

// RecursiveResize grows n by amount along the axis of edge and spreads the
// change over its descendants. Children of a container split along that axis
// share the amount evenly; the others each receive all of it.
func (t *Tree) RecursiveResize(n *entity.Node, amount float64, edge entity.ResizeEdge) {
	layoutMatch := true
	switch edge {
	case entity.EdgeLeft, entity.EdgeRight:
		n.Rect.Width += amount
		layoutMatch = n.Layout == entity.LayoutHorizontal
	case entity.EdgeTop, entity.EdgeBottom:
		n.Rect.Height += amount
		layoutMatch = n.Layout == entity.LayoutVertical
	}
	t.SetDirty(n)
	for _, child := range n.Children {
		amt := amount
		if layoutMatch {
			amt = amount / float64(len(n.Children))
		}
		t.RecursiveResize(child, amt, edge)
	}
}
