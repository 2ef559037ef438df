package events_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/tilewm/internal/domain/entity"
	"github.com/bnema/tilewm/internal/domain/seat"
	"github.com/bnema/tilewm/internal/domain/tree"
	"github.com/bnema/tilewm/internal/infrastructure/events"
)

type published struct {
	typ    events.Type
	change events.Change
	name   string
}

func collect(b *events.Bus) *[]events.Event {
	var got []events.Event
	b.Subscribe(func(ev events.Event) { got = append(got, ev) })
	return &got
}

func summary(evs []events.Event) []published {
	out := make([]published, 0, len(evs))
	for _, ev := range evs {
		out = append(out, published{ev.Type, ev.Change, ev.Current.Name})
	}
	return out
}

func TestBus_PublishesLifecycle(t *testing.T) {
	tr := tree.New()
	s := seat.New("seat0", tr)
	defer s.Close()
	bus := events.New(context.Background(), tr)
	defer bus.Close()
	got := collect(bus)

	out := tr.NewOutput("DP-1", entity.Rect{Width: 1920, Height: 1080})
	ws := tr.NewWorkspace(out, "1", entity.LayoutHorizontal)
	a := tr.NewView("A", "foot")
	tr.AddChild(ws, a)
	s.SetFocus(a)
	tr.SetFullscreen(a, true)
	tr.SetUrgent(a, true)
	tr.Destroy(a)
	tr.Destroy(ws)

	assert.Equal(t, []published{
		{events.TypeWorkspace, events.ChangeInit, "1"},
		{events.TypeWindow, events.ChangeNew, "A"},
		{events.TypeWindow, events.ChangeFocus, "A"},
		{events.TypeWindow, events.ChangeFullscreen, "A"},
		{events.TypeWindow, events.ChangeUrgent, "A"},
		{events.TypeWorkspace, events.ChangeUrgent, "1"},
		{events.TypeWindow, events.ChangeClose, "A"},
		{events.TypeWorkspace, events.ChangeEmpty, "1"},
	}, summary(*got))

	ids := map[uuid.UUID]bool{}
	for i, ev := range *got {
		assert.Equal(t, uint64(i+1), ev.Seq)
		assert.NotEqual(t, uuid.Nil, ev.ID)
		ids[ev.ID] = true
	}
	assert.Len(t, ids, len(*got), "event ids are unique")
}

func TestBus_DeliversAfterHoldRelease(t *testing.T) {
	tr := tree.New()
	out := tr.NewOutput("DP-1", entity.Rect{Width: 1920, Height: 1080})
	ws := tr.NewWorkspace(out, "1", entity.LayoutHorizontal)
	bus := events.New(context.Background(), tr)
	got := collect(bus)

	release := tr.Hold()
	a := tr.NewView("A", "foot")
	tr.AddChild(ws, a)
	require.Empty(t, *got)
	release()

	require.Len(t, *got, 1)
	snap := (*got)[0].Current
	assert.Equal(t, "1", snap.Workspace, "snapshot reflects the completed operation")
	assert.Equal(t, "DP-1", snap.Output)
	assert.Equal(t, "foot", snap.AppID)
}

func TestBus_UnsubscribeAndClose(t *testing.T) {
	tr := tree.New()
	bus := events.New(context.Background(), tr)
	var first, second int
	unsubscribe := bus.Subscribe(func(events.Event) { first++ })
	bus.Subscribe(func(events.Event) { second++ })

	tr.NewView("A", "")
	unsubscribe()
	tr.NewView("B", "")
	bus.Close()
	bus.Close()
	tr.NewView("C", "")

	assert.Equal(t, 1, first)
	assert.Equal(t, 2, second)
}

func TestTranslate(t *testing.T) {
	tr := tree.New()
	out := tr.NewOutput("DP-1", entity.Rect{Width: 100, Height: 100})
	ws := tr.NewWorkspace(out, "1", entity.LayoutHorizontal)
	con := tr.NewContainer(entity.LayoutVertical)
	view := tr.NewView("A", "")

	tests := []struct {
		name   string
		ev     entity.TreeEvent
		typ    events.Type
		change events.Change
		ok     bool
	}{
		{"container creation is internal", entity.TreeEvent{Kind: entity.EventCreate, Node: con}, "", "", false},
		{"reparent is internal", entity.TreeEvent{Kind: entity.EventReparent, Node: view, Old: ws}, "", "", false},
		{"subtree change is internal", entity.TreeEvent{Kind: entity.EventSubtreeChanged, Node: ws}, "", "", false},
		{"window move", entity.TreeEvent{Kind: entity.EventWindowMove, Node: view}, events.TypeWindow, events.ChangeMove, true},
		{"container fullscreen", entity.TreeEvent{Kind: entity.EventFullscreen, Node: con}, events.TypeWindow, events.ChangeFullscreen, true},
		{"workspace focus", entity.TreeEvent{Kind: entity.EventWorkspaceFocus, Node: ws}, events.TypeWorkspace, events.ChangeFocus, true},
		{"workspace move", entity.TreeEvent{Kind: entity.EventWorkspaceMove, Node: ws, Old: out}, events.TypeWorkspace, events.ChangeMove, true},
		{"output creation is internal", entity.TreeEvent{Kind: entity.EventCreate, Node: out}, "", "", false},
		{"missing node", entity.TreeEvent{Kind: entity.EventWindowMove}, "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			typ, change, ok := events.Translate(tt.ev)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.typ, typ)
			assert.Equal(t, tt.change, change)
		})
	}
}

func TestNewJSONWriter(t *testing.T) {
	tr := tree.New()
	out := tr.NewOutput("DP-1", entity.Rect{Width: 100, Height: 100})
	bus := events.New(context.Background(), tr)
	var buf bytes.Buffer
	logger := zerolog.Nop()
	bus.Subscribe(events.NewJSONWriter(&buf, &logger))

	ws := tr.NewWorkspace(out, "1", entity.LayoutHorizontal)
	tr.Emit(entity.EventWorkspaceMove, ws, out)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &decoded))
	assert.Equal(t, "workspace", decoded["type"])
	assert.Equal(t, "move", decoded["change"])
	assert.Equal(t, "1", decoded["current"].(map[string]any)["name"])
	assert.Equal(t, "DP-1", decoded["old"].(map[string]any)["name"])
}
