package port

import "github.com/bnema/tilewm/internal/domain/entity"

// Seat is the focus collaborator consulted by every relocation.
type Seat interface {
	Focus() *entity.Node
	FocusInactive(n *entity.Node) *entity.Node
	FocusInactiveTiling(n *entity.Node) *entity.Node
	FocusInactiveView(n *entity.Node) *entity.Node
	ActiveChild(n *entity.Node) *entity.Node

	SetFocus(n *entity.Node)
	SetFocusWarp(n *entity.Node, warp, notify bool)

	// IsWorkspaceVisible reports whether ws is the shown workspace of its output.
	IsWorkspaceVisible(ws *entity.Node) bool

	// PreviousWorkspaceName backs quick "back and forth" switching.
	PreviousWorkspaceName() string
	SetPreviousWorkspaceName(name string)

	// EndMouseOperation cancels a pointer gesture acting on n.
	EndMouseOperation(n *entity.Node)
}
