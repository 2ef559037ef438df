// Package seat keeps per-seat focus history and pointer gesture state.
package seat

import (
	"slices"

	"github.com/bnema/tilewm/internal/domain/entity"
	"github.com/bnema/tilewm/internal/domain/tree"
)

// OperationKind identifies a pointer-driven gesture.
type OperationKind int

const (
	OpNone OperationKind = iota
	OpMove
	OpResize
)

// Operation is the gesture currently in progress on a seat.
type Operation struct {
	Kind OperationKind
	Node *entity.Node
	Edge entity.ResizeEdge
}

// Seat tracks focus history for one input seat.
//
// The focus stack holds non-owning references. Destroyed and detached nodes
// are skipped on every query and pruned when the tree reports their destruction.
type Seat struct {
	name string
	tree *tree.Tree

	stack   []*entity.Node // focused nodes, most recent first
	created []*entity.Node // never focused, newest first

	prevWorkspaceName string
	warp              bool
	op                Operation

	unsubscribe func()
}

// New creates a seat observing t.
func New(name string, t *tree.Tree) *Seat {
	s := &Seat{name: name, tree: t}
	s.unsubscribe = t.Subscribe(s.handleEvent)
	return s
}

// Name returns the seat name.
func (s *Seat) Name() string {
	return s.name
}

// Close stops observing the tree.
func (s *Seat) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
}

func (s *Seat) handleEvent(ev entity.TreeEvent) {
	switch ev.Kind {
	case entity.EventCreate:
		if ev.Node.Type != entity.NodeRoot && !slices.Contains(s.stack, ev.Node) && !slices.Contains(s.created, ev.Node) {
			s.created = slices.Insert(s.created, 0, ev.Node)
		}
	case entity.EventDestroy:
		s.forget(ev.Node)
		if s.op.Node == ev.Node {
			s.op = Operation{}
		}
	}
}

func (s *Seat) forget(n *entity.Node) {
	s.stack = slices.DeleteFunc(s.stack, func(c *entity.Node) bool { return c == n })
	s.created = slices.DeleteFunc(s.created, func(c *entity.Node) bool { return c == n })
}

func live(n *entity.Node) bool {
	return !n.IsDestroyed() && (n.Parent != nil || n.Type == entity.NodeRoot)
}

// Focus returns the focused node, or nil.
func (s *Seat) Focus() *entity.Node {
	for _, n := range s.stack {
		if live(n) {
			return n
		}
	}
	return nil
}

func (s *Seat) focusInactiveBy(n *entity.Node, match func(*entity.Node) bool) *entity.Node {
	for _, list := range [][]*entity.Node{s.stack, s.created} {
		for _, c := range list {
			if live(c) && c.HasAncestor(n) && match(c) {
				return c
			}
		}
	}
	return nil
}

// FocusInactive returns the descendant of n that would be focused if n were
// activated: n itself for views, otherwise the most recently focused live
// descendant, falling back to the most recently created one.
func (s *Seat) FocusInactive(n *entity.Node) *entity.Node {
	if n == nil {
		return nil
	}
	if n.Type == entity.NodeView {
		return n
	}
	return s.focusInactiveBy(n, func(*entity.Node) bool { return true })
}

// FocusInactiveTiling is FocusInactive restricted to nodes outside floating containers.
func (s *Seat) FocusInactiveTiling(n *entity.Node) *entity.Node {
	if n == nil {
		return nil
	}
	if n.Type == entity.NodeView && !n.IsFloatingOrChild() {
		return n
	}
	return s.focusInactiveBy(n, func(c *entity.Node) bool {
		return !c.IsFloatingOrChild() && c.Layout != entity.LayoutFloating
	})
}

// FocusInactiveView is FocusInactive restricted to views.
func (s *Seat) FocusInactiveView(n *entity.Node) *entity.Node {
	if n == nil {
		return nil
	}
	if n.Type == entity.NodeView {
		return n
	}
	return s.focusInactiveBy(n, func(c *entity.Node) bool { return c.Type == entity.NodeView })
}

// ActiveChild returns the most recently focused direct child of n.
func (s *Seat) ActiveChild(n *entity.Node) *entity.Node {
	if n == nil {
		return nil
	}
	for _, c := range s.stack {
		if live(c) && c.Parent == n {
			return c
		}
	}
	return nil
}

// SetFocus focuses n with pointer warping and notifications enabled.
func (s *Seat) SetFocus(n *entity.Node) {
	s.SetFocusWarp(n, true, true)
}

// SetFocusWarp moves n and its ancestors to the top of the focus stack. When
// the focused workspace changes the previous one is remembered by name. A
// focus event is emitted for views when notify is set.
func (s *Seat) SetFocusWarp(n *entity.Node, warp, notify bool) {
	if n == nil || n.IsDestroyed() {
		return
	}
	prev := s.Focus()
	lastWS := prev.Workspace()

	var ancestors []*entity.Node
	for p := n.Parent; p != nil; p = p.Parent {
		ancestors = append(ancestors, p)
	}
	// Root ends up deepest so the stack reads n, parent, ..., root.
	for i := len(ancestors) - 1; i >= 0; i-- {
		s.promote(ancestors[i])
	}
	s.promote(n)
	s.warp = warp

	if newWS := n.Workspace(); lastWS != nil && newWS != nil && lastWS != newWS {
		s.prevWorkspaceName = lastWS.Name
	}
	if notify && n.Type == entity.NodeView && n != prev {
		s.tree.Emit(entity.EventWindowFocus, n, prev)
	}
}

func (s *Seat) promote(n *entity.Node) {
	s.forget(n)
	s.stack = slices.Insert(s.stack, 0, n)
}

// Warp reports whether the last focus change asked for the pointer to follow.
func (s *Seat) Warp() bool {
	return s.warp
}

// IsWorkspaceVisible reports whether ws is the shown workspace of its output.
func (s *Seat) IsWorkspaceVisible(ws *entity.Node) bool {
	if ws == nil || ws.IsDestroyed() {
		return false
	}
	out := ws.Output()
	if out == nil {
		return false
	}
	if fi := s.FocusInactive(out); fi != nil {
		return fi.Workspace() == ws
	}
	return len(out.Children) > 0 && out.Children[0] == ws
}

// PreviousWorkspaceName returns the name of the workspace focused before the current one.
func (s *Seat) PreviousWorkspaceName() string {
	return s.prevWorkspaceName
}

// SetPreviousWorkspaceName overrides the previous workspace name.
func (s *Seat) SetPreviousWorkspaceName(name string) {
	s.prevWorkspaceName = name
}

// BeginMove starts a pointer move gesture on n.
func (s *Seat) BeginMove(n *entity.Node) {
	s.op = Operation{Kind: OpMove, Node: n}
}

// BeginResize starts a pointer resize gesture on n.
func (s *Seat) BeginResize(n *entity.Node, edge entity.ResizeEdge) {
	s.op = Operation{Kind: OpResize, Node: n, Edge: edge}
}

// EndMouseOperation ends the current gesture if it targets n.
func (s *Seat) EndMouseOperation(n *entity.Node) {
	if s.op.Kind != OpNone && s.op.Node == n {
		s.op = Operation{}
	}
}

// Operation returns the gesture in progress.
func (s *Seat) Operation() Operation {
	return s.op
}
