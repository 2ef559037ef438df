package usecase_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	portmocks "github.com/bnema/tilewm/internal/application/port/mocks"
	"github.com/bnema/tilewm/internal/application/usecase"
	"github.com/bnema/tilewm/internal/domain/entity"
	"github.com/bnema/tilewm/internal/domain/seat"
	"github.com/bnema/tilewm/internal/domain/tree"
	"github.com/bnema/tilewm/internal/logging"
)

func testContext() context.Context {
	logger := logging.NewFromConfigValues("debug", "console")
	return logging.WithContext(context.Background(), logger)
}

type stubPrefs struct {
	layout      entity.Layout
	orientation entity.Layout
	wrap        entity.WrapPolicy
}

func (p *stubPrefs) DefaultLayout() entity.Layout      { return p.layout }
func (p *stubPrefs) DefaultOrientation() entity.Layout { return p.orientation }
func (p *stubPrefs) FocusWrapping() entity.WrapPolicy  { return p.wrap }

// group describes a container in a fixture tree. Strings are views.
type group struct {
	layout entity.Layout
	kids   []any
}

func hsplit(kids ...any) group { return group{entity.LayoutHorizontal, kids} }
func vsplit(kids ...any) group { return group{entity.LayoutVertical, kids} }
func tabs(kids ...any) group   { return group{entity.LayoutTabbed, kids} }

type harness struct {
	t       *testing.T
	ctx     context.Context
	tree    *tree.Tree
	seat    *seat.Seat
	outputs *portmocks.MockOutputLayout
	prefs   *stubPrefs
	uc      *usecase.ManageTreeUseCase
	events  []entity.TreeEvent
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	tr := tree.New()
	s := seat.New("seat0", tr)
	t.Cleanup(s.Close)
	h := &harness{
		t:       t,
		ctx:     testContext(),
		tree:    tr,
		seat:    s,
		outputs: portmocks.NewMockOutputLayout(t),
		prefs:   &stubPrefs{},
	}
	h.uc = usecase.NewManageTreeUseCase(tr, s, h.outputs, h.prefs)
	return h
}

// single builds one 1920x1080 output holding workspace "1" with the given
// layout and children. The output has no neighbours.
func single(t *testing.T, layout entity.Layout, kids ...any) (*harness, *entity.Node) {
	t.Helper()
	h := newHarness(t)
	out := h.output("DP-1", entity.Rect{Width: 1920, Height: 1080})
	ws := h.workspace(out, "1", layout, kids...)
	h.noNeighbours()
	return h, ws
}

// captureLog routes the harness logger into a JSON buffer.
func (h *harness) captureLog() *bytes.Buffer {
	var buf bytes.Buffer
	logger := logging.New(logging.Config{Level: zerolog.DebugLevel, Format: "json", Output: &buf})
	h.ctx = logging.WithContext(context.Background(), logger)
	return &buf
}

func (h *harness) output(name string, rect entity.Rect) *entity.Node {
	return h.tree.NewOutput(name, rect)
}

func (h *harness) workspace(out *entity.Node, name string, layout entity.Layout, kids ...any) *entity.Node {
	ws := h.tree.NewWorkspace(out, name, layout)
	h.fill(ws, kids)
	require.NoError(h.t, h.tree.Validate())
	return ws
}

func (h *harness) fill(parent *entity.Node, kids []any) {
	for _, kid := range kids {
		switch k := kid.(type) {
		case string:
			h.tree.AddChild(parent, h.tree.NewView(k, "app."+strings.ToLower(k)))
		case group:
			c := h.tree.NewContainer(k.layout)
			h.tree.AddChild(parent, c)
			h.fill(c, k.kids)
		default:
			h.t.Fatalf("unsupported fixture child %T", kid)
		}
	}
}

// noNeighbours makes every output an edge of the arrangement. Register
// specific adjacencies before calling it.
func (h *harness) noNeighbours() {
	h.outputs.EXPECT().
		AdjacentOutput(mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil).
		Maybe()
}

func (h *harness) neighbour(from *entity.Node, dir entity.Direction, to *entity.Node) {
	h.outputs.EXPECT().
		AdjacentOutput(from, dir, mock.Anything, mock.Anything).
		Return(to).
		Maybe()
}

func (h *harness) node(name string) *entity.Node {
	n := h.tree.FindByName(name)
	require.NotNil(h.t, n, "node %q", name)
	return n
}

func (h *harness) focus(names ...string) {
	for _, name := range names {
		h.seat.SetFocus(h.node(name))
	}
}

func (h *harness) record() {
	h.events = nil
	h.tree.Subscribe(func(ev entity.TreeEvent) {
		h.events = append(h.events, ev)
	})
}

func (h *harness) eventsOf(kind entity.EventKind) []entity.TreeEvent {
	var out []entity.TreeEvent
	for _, ev := range h.events {
		if ev.Kind == kind {
			out = append(out, ev)
		}
	}
	return out
}

func (h *harness) valid() {
	h.t.Helper()
	require.NoError(h.t, h.tree.Validate())
}
