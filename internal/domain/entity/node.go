// Package entity contains the window-tree domain types.
// These entities are pure Go types with no infrastructure dependencies.
package entity

import "fmt"

// NodeID uniquely identifies a node within a tree.
type NodeID int64

// NodeType is the variant tag of a node.
type NodeType int

const (
	NodeRoot NodeType = iota
	NodeOutput
	NodeWorkspace
	NodeContainer
	NodeView
)

func (t NodeType) String() string {
	switch t {
	case NodeRoot:
		return "root"
	case NodeOutput:
		return "output"
	case NodeWorkspace:
		return "workspace"
	case NodeContainer:
		return "container"
	case NodeView:
		return "view"
	default:
		return fmt.Sprintf("NodeType(%d)", int(t))
	}
}

// OutputInfo is the payload carried by output nodes.
type OutputInfo struct {
	// Enabled is false once the output has been disabled by the layout collaborator.
	Enabled bool
}

// WorkspaceInfo is the payload carried by workspace nodes.
type WorkspaceInfo struct {
	// Fullscreen is a non-owning reference to the fullscreen node of the workspace, if any.
	Fullscreen *Node
	// Floating holds floating children. Its parent is the workspace but it is not
	// part of the workspace's ordinary child list.
	Floating *Node
	Urgent   bool
}

// ViewInfo is the payload carried by view nodes.
type ViewInfo struct {
	AppID  string
	Urgent bool
}

// Node is an entry in the window tree.
//
// Only the parent to children edges own nodes. Parent pointers, the
// workspace fullscreen slot and focus-stack entries are back-references.
type Node struct {
	ID       NodeID
	Type     NodeType
	Name     string
	Parent   *Node   // nil for root and for detached nodes
	Children []*Node // always empty for views

	Layout     Layout
	PrevLayout Layout

	Rect  Rect // global layout coordinates
	Saved Rect // geometry before entering fullscreen

	Fullscreen bool
	Dirty      bool

	destroyed bool
	output    *OutputInfo
	workspace *WorkspaceInfo
	view      *ViewInfo
}

// NewRoot creates the root node.
func NewRoot(id NodeID) *Node {
	return &Node{ID: id, Type: NodeRoot, Name: "root"}
}

// NewOutput creates a detached output node.
func NewOutput(id NodeID, name string, rect Rect) *Node {
	return &Node{
		ID:     id,
		Type:   NodeOutput,
		Name:   name,
		Rect:   rect,
		output: &OutputInfo{Enabled: true},
	}
}

// NewWorkspace creates a detached workspace node. The floating container must be
// attached separately by the tree.
func NewWorkspace(id NodeID, name string, layout Layout) *Node {
	return &Node{
		ID:        id,
		Type:      NodeWorkspace,
		Name:      name,
		Layout:    layout,
		workspace: &WorkspaceInfo{},
	}
}

// NewContainer creates a detached split container.
func NewContainer(id NodeID, layout Layout) *Node {
	return &Node{ID: id, Type: NodeContainer, Layout: layout}
}

// NewView creates a detached view.
func NewView(id NodeID, name, appID string) *Node {
	return &Node{
		ID:   id,
		Type: NodeView,
		Name: name,
		view: &ViewInfo{AppID: appID},
	}
}

func (n *Node) mustBe(t NodeType) {
	if n.Type != t {
		panic(fmt.Sprintf("entity: node %d is a %s, not a %s", n.ID, n.Type, t))
	}
}

// OutputInfo returns the output payload. It panics if n is not an output.
func (n *Node) OutputInfo() *OutputInfo {
	n.mustBe(NodeOutput)
	return n.output
}

// WorkspaceInfo returns the workspace payload. It panics if n is not a workspace.
func (n *Node) WorkspaceInfo() *WorkspaceInfo {
	n.mustBe(NodeWorkspace)
	return n.workspace
}

// ViewInfo returns the view payload. It panics if n is not a view.
func (n *Node) ViewInfo() *ViewInfo {
	n.mustBe(NodeView)
	return n.view
}

// MarkDestroyed flags the node as no longer part of any tree.
func (n *Node) MarkDestroyed() {
	n.destroyed = true
}

// IsDestroyed reports whether the node has been destroyed.
// Holders of back-references use it as their liveness check.
func (n *Node) IsDestroyed() bool {
	return n == nil || n.destroyed
}

// IsLeaf returns true for views.
func (n *Node) IsLeaf() bool {
	return n.Type == NodeView
}

// IsContainerOrView reports whether n is a movable tiling node.
func (n *Node) IsContainerOrView() bool {
	return n.Type == NodeContainer || n.Type == NodeView
}

// Index returns the position of n in its parent's child list, or -1 when n is
// detached or tracked outside the ordinary child list (floating container).
func (n *Node) Index() int {
	if n.Parent == nil {
		return -1
	}
	for i, child := range n.Parent.Children {
		if child == n {
			return i
		}
	}
	return -1
}

// ParentOfType returns the closest strict ancestor of the given type.
func (n *Node) ParentOfType(t NodeType) *Node {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == t {
			return p
		}
	}
	return nil
}

// Workspace returns n if it is a workspace, otherwise its enclosing workspace.
func (n *Node) Workspace() *Node {
	if n == nil {
		return nil
	}
	if n.Type == NodeWorkspace {
		return n
	}
	return n.ParentOfType(NodeWorkspace)
}

// Output returns n if it is an output, otherwise its enclosing output.
func (n *Node) Output() *Node {
	if n == nil {
		return nil
	}
	if n.Type == NodeOutput {
		return n
	}
	return n.ParentOfType(NodeOutput)
}

// HasAncestor reports whether ancestor is a strict ancestor of n.
func (n *Node) HasAncestor(ancestor *Node) bool {
	if ancestor == nil {
		return false
	}
	for p := n.Parent; p != nil; p = p.Parent {
		if p == ancestor {
			return true
		}
	}
	return false
}

// IsFloating reports whether n is a direct child of a workspace's floating container.
func (n *Node) IsFloating() bool {
	return n.Parent != nil && n.Parent.Layout == LayoutFloating
}

// FloatingAncestor returns the top-level floating node containing n (possibly n itself).
func (n *Node) FloatingAncestor() *Node {
	for c := n; c != nil && c.Parent != nil; c = c.Parent {
		if c.Parent.Layout == LayoutFloating {
			return c
		}
	}
	return nil
}

// IsFloatingOrChild reports whether n is floating or inside a floating node.
func (n *Node) IsFloatingOrChild() bool {
	return n.FloatingAncestor() != nil
}

// FullscreenAncestor returns the fullscreen node among n's ancestors (including n).
func (n *Node) FullscreenAncestor() *Node {
	for c := n; c != nil; c = c.Parent {
		if c.Fullscreen {
			return c
		}
	}
	return nil
}

// IsFullscreenOrChild reports whether n or one of its ancestors is fullscreen.
func (n *Node) IsFullscreenOrChild() bool {
	return n.FullscreenAncestor() != nil
}

// Walk traverses the subtree rooted at n, including floating containers.
// Children of a node are skipped when fn returns false for it.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, child := range n.Children {
		child.Walk(fn)
	}
	if n.Type == NodeWorkspace && n.workspace != nil && n.workspace.Floating != nil {
		n.workspace.Floating.Walk(fn)
	}
}

// Find returns the first node in the subtree satisfying match.
func (n *Node) Find(match func(*Node) bool) *Node {
	var found *Node
	n.Walk(func(node *Node) bool {
		if found != nil {
			return false
		}
		if match(node) {
			found = node
			return false
		}
		return true
	})
	return found
}

func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	if n.Name != "" {
		return fmt.Sprintf("%s:%d(%s)", n.Type, n.ID, n.Name)
	}
	return fmt.Sprintf("%s:%d", n.Type, n.ID)
}
