package entity

// EventKind identifies a tree change notification.
type EventKind int

const (
	EventCreate EventKind = iota
	EventReparent
	EventSubtreeChanged
	EventDestroy
	EventFullscreen
	EventWindowMove
	EventWindowFocus
	EventWorkspaceFocus
	EventWorkspaceMove
	EventWorkspaceUrgent
	EventWindowUrgent
)

func (k EventKind) String() string {
	switch k {
	case EventCreate:
		return "create"
	case EventReparent:
		return "reparent"
	case EventSubtreeChanged:
		return "subtree_changed"
	case EventDestroy:
		return "destroy"
	case EventFullscreen:
		return "fullscreen"
	case EventWindowMove:
		return "window_move"
	case EventWindowFocus:
		return "window_focus"
	case EventWorkspaceFocus:
		return "workspace_focus"
	case EventWorkspaceMove:
		return "workspace_move"
	case EventWorkspaceUrgent:
		return "workspace_urgent"
	case EventWindowUrgent:
		return "window_urgent"
	default:
		return "unknown"
	}
}

// TreeEvent is delivered to tree observers once the mutation that produced it
// has completed.
type TreeEvent struct {
	Kind EventKind
	Node *Node
	// Old is the previous parent for EventReparent and the previously focused
	// workspace for EventWorkspaceFocus.
	Old *Node
}
