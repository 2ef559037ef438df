// Package tree owns the window tree: node allocation, topology mutators,
// fullscreen bookkeeping and change notifications.
package tree

import (
	"github.com/bnema/tilewm/internal/domain/entity"
)

// Listener receives tree events after the mutation that produced them is complete.
type Listener func(entity.TreeEvent)

type subscription struct {
	id int
	fn Listener
}

// Tree is one window-tree session. It replaces a process-wide root: every
// collaborator receives the tree it operates on.
//
// A Tree is not safe for concurrent use. Mutations are expected to run to
// completion on a single goroutine.
type Tree struct {
	root   *entity.Node
	nextID entity.NodeID

	listeners []subscription
	nextSubID int

	queue    []entity.TreeEvent
	holds    int
	flushing bool

	dirty []*entity.Node
}

// New creates an empty tree with only a root node.
func New() *Tree {
	t := &Tree{nextID: 1}
	t.root = entity.NewRoot(0)
	return t
}

// Root returns the root node.
func (t *Tree) Root() *entity.Node {
	return t.root
}

func (t *Tree) allocID() entity.NodeID {
	id := t.nextID
	t.nextID++
	return id
}

// Subscribe registers a listener and returns a function removing it.
func (t *Tree) Subscribe(fn Listener) (unsubscribe func()) {
	t.nextSubID++
	id := t.nextSubID
	t.listeners = append(t.listeners, subscription{id: id, fn: fn})
	return func() {
		for i, sub := range t.listeners {
			if sub.id == id {
				t.listeners = append(t.listeners[:i], t.listeners[i+1:]...)
				return
			}
		}
	}
}

// Hold defers event delivery until the returned release function has been
// called. Holds nest; events are flushed when the outermost hold is released.
func (t *Tree) Hold() (release func()) {
	t.holds++
	released := false
	return func() {
		if released {
			return
		}
		released = true
		t.holds--
		if t.holds == 0 {
			t.flush()
		}
	}
}

// Emit queues an event. It is delivered immediately unless a hold is active.
func (t *Tree) Emit(kind entity.EventKind, node, old *entity.Node) {
	t.queue = append(t.queue, entity.TreeEvent{Kind: kind, Node: node, Old: old})
	if t.holds == 0 {
		t.flush()
	}
}

func (t *Tree) flush() {
	// Listeners may emit; those events are appended and drained by this loop.
	if t.flushing {
		return
	}
	t.flushing = true
	defer func() { t.flushing = false }()

	for len(t.queue) > 0 {
		ev := t.queue[0]
		t.queue = t.queue[1:]
		for _, sub := range append([]subscription(nil), t.listeners...) {
			sub.fn(ev)
		}
	}
	t.queue = nil
}

// SetDirty marks n as needing re-arrangement.
func (t *Tree) SetDirty(n *entity.Node) {
	if n == nil || n.Dirty {
		return
	}
	n.Dirty = true
	t.dirty = append(t.dirty, n)
}

// TakeDirty returns the nodes marked dirty since the last call and clears
// their flags. Destroyed nodes are dropped.
func (t *Tree) TakeDirty() []*entity.Node {
	out := make([]*entity.Node, 0, len(t.dirty))
	for _, n := range t.dirty {
		n.Dirty = false
		if !n.IsDestroyed() {
			out = append(out, n)
		}
	}
	t.dirty = nil
	return out
}

// Outputs returns the outputs attached to the root.
func (t *Tree) Outputs() []*entity.Node {
	return t.root.Children
}

// Workspaces returns every workspace in output order.
func (t *Tree) Workspaces() []*entity.Node {
	var out []*entity.Node
	for _, o := range t.root.Children {
		out = append(out, o.Children...)
	}
	return out
}

// FindByName returns the first node named name, in depth-first order.
func (t *Tree) FindByName(name string) *entity.Node {
	return t.root.Find(func(n *entity.Node) bool {
		return n.Type != entity.NodeRoot && n.Name == name
	})
}

// FindByID returns the node with the given id.
func (t *Tree) FindByID(id entity.NodeID) *entity.Node {
	return t.root.Find(func(n *entity.Node) bool { return n.ID == id })
}

// Workspace returns the workspace named name.
func (t *Tree) Workspace(name string) *entity.Node {
	for _, ws := range t.Workspaces() {
		if ws.Name == name {
			return ws
		}
	}
	return nil
}

// IsAttached reports whether n is reachable from the root.
func (t *Tree) IsAttached(n *entity.Node) bool {
	if n == nil || n.IsDestroyed() {
		return false
	}
	for c := n; c != nil; c = c.Parent {
		if c == t.root {
			return true
		}
	}
	return false
}
