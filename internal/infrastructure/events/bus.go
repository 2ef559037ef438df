// Package events republishes tree notifications as IPC-style window and
// workspace events.
package events

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/bnema/tilewm/internal/domain/entity"
	"github.com/bnema/tilewm/internal/domain/tree"
	"github.com/bnema/tilewm/internal/logging"
)

// Type is the IPC event family.
type Type string

const (
	TypeWindow    Type = "window"
	TypeWorkspace Type = "workspace"
)

// Change names what happened to the subject of an event.
type Change string

const (
	ChangeNew        Change = "new"
	ChangeClose      Change = "close"
	ChangeMove       Change = "move"
	ChangeFocus      Change = "focus"
	ChangeFullscreen Change = "fullscreen_mode"
	ChangeUrgent     Change = "urgent"
	ChangeInit       Change = "init"
	ChangeEmpty      Change = "empty"
)

// Event is one published notification. Current and Old are snapshots taken
// when the event is delivered, after the producing operation completed.
type Event struct {
	ID      uuid.UUID     `json:"id"`
	Seq     uint64        `json:"seq"`
	Type    Type          `json:"type"`
	Change  Change        `json:"change"`
	Current *NodeSnapshot `json:"current"`
	Old     *NodeSnapshot `json:"old,omitempty"`
}

// NodeSnapshot is the serialisable view of a node carried by events.
type NodeSnapshot struct {
	ID         entity.NodeID `json:"id"`
	Type       string        `json:"type"`
	Name       string        `json:"name"`
	Layout     string        `json:"layout"`
	Rect       entity.Rect   `json:"rect"`
	Fullscreen bool          `json:"fullscreen"`
	Urgent     bool          `json:"urgent"`
	AppID      string        `json:"app_id,omitempty"`
	Workspace  string        `json:"workspace,omitempty"`
	Output     string        `json:"output,omitempty"`
}

// Handler receives published events.
type Handler func(Event)

type subscription struct {
	id int
	fn Handler
}

// Bus listens to one tree and fans translated events out to its handlers.
type Bus struct {
	mu        sync.Mutex
	subs      []subscription
	nextSubID int
	seq       uint64

	logger *zerolog.Logger
	detach func()
}

// New subscribes a bus to t. Call Close to detach it.
func New(ctx context.Context, t *tree.Tree) *Bus {
	b := &Bus{
		logger: logging.FromContext(ctx),
	}
	b.detach = t.Subscribe(b.handleTreeEvent)
	return b
}

// Subscribe registers fn and returns a function removing it.
func (b *Bus) Subscribe(fn Handler) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextSubID++
	id := b.nextSubID
	b.subs = append(b.subs, subscription{id: id, fn: fn})
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, sub := range b.subs {
			if sub.id == id {
				b.subs = append(b.subs[:i], b.subs[i+1:]...)
				return
			}
		}
	}
}

// Close stops listening to the tree.
func (b *Bus) Close() {
	b.mu.Lock()
	detach := b.detach
	b.detach = nil
	b.mu.Unlock()

	if detach != nil {
		detach()
	}
}

func (b *Bus) handleTreeEvent(ev entity.TreeEvent) {
	typ, change, ok := Translate(ev)
	if !ok {
		return
	}

	b.mu.Lock()
	b.seq++
	out := Event{
		ID:      uuid.New(),
		Seq:     b.seq,
		Type:    typ,
		Change:  change,
		Current: Snapshot(ev.Node),
		Old:     Snapshot(ev.Old),
	}
	subs := append([]subscription(nil), b.subs...)
	b.mu.Unlock()

	b.logger.Debug().
		Str("event_id", out.ID.String()).
		Str("type", string(typ)).
		Str("change", string(change)).
		Int64("node_id", int64(ev.Node.ID)).
		Msg("publishing event")

	for _, sub := range subs {
		sub.fn(out)
	}
}

// Translate maps a tree event onto an IPC event family and change. Structural
// notifications with no IPC counterpart return ok=false.
func Translate(ev entity.TreeEvent) (Type, Change, bool) {
	if ev.Node == nil {
		return "", "", false
	}
	isView := ev.Node.Type == entity.NodeView
	isWorkspace := ev.Node.Type == entity.NodeWorkspace

	switch ev.Kind {
	case entity.EventCreate:
		if isView {
			return TypeWindow, ChangeNew, true
		}
		if isWorkspace {
			return TypeWorkspace, ChangeInit, true
		}
	case entity.EventDestroy:
		if isView {
			return TypeWindow, ChangeClose, true
		}
		if isWorkspace {
			return TypeWorkspace, ChangeEmpty, true
		}
	case entity.EventWindowMove:
		return TypeWindow, ChangeMove, true
	case entity.EventWindowFocus:
		return TypeWindow, ChangeFocus, true
	case entity.EventWindowUrgent:
		return TypeWindow, ChangeUrgent, true
	case entity.EventFullscreen:
		if ev.Node.IsContainerOrView() {
			return TypeWindow, ChangeFullscreen, true
		}
	case entity.EventWorkspaceFocus:
		return TypeWorkspace, ChangeFocus, true
	case entity.EventWorkspaceMove:
		return TypeWorkspace, ChangeMove, true
	case entity.EventWorkspaceUrgent:
		return TypeWorkspace, ChangeUrgent, true
	}
	return "", "", false
}

// Snapshot captures the public state of n, or nil when n is nil.
func Snapshot(n *entity.Node) *NodeSnapshot {
	if n == nil {
		return nil
	}
	s := &NodeSnapshot{
		ID:         n.ID,
		Type:       n.Type.String(),
		Name:       n.Name,
		Layout:     n.Layout.String(),
		Rect:       n.Rect,
		Fullscreen: n.Fullscreen,
	}
	switch n.Type {
	case entity.NodeView:
		s.AppID = n.ViewInfo().AppID
		s.Urgent = n.ViewInfo().Urgent
	case entity.NodeWorkspace:
		s.Urgent = n.WorkspaceInfo().Urgent
	}
	if n.Type != entity.NodeWorkspace {
		if ws := n.Workspace(); ws != nil {
			s.Workspace = ws.Name
		}
	}
	if n.Type != entity.NodeOutput {
		if out := n.Output(); out != nil {
			s.Output = out.Name
		}
	}
	return s
}
