package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/tilewm/internal/application/usecase"
	"github.com/bnema/tilewm/internal/domain/entity"
)

func TestManageTreeUseCase_Swap(t *testing.T) {
	tests := []struct {
		name string
		kids []any
		a, b string
		want string
	}{
		{"siblings in order", []any{"A", "B", "C"}, "A", "C", "H[C B A]"},
		{"siblings reversed", []any{"A", "B", "C"}, "C", "A", "H[C B A]"},
		{"adjacent siblings", []any{"A", "B", "C"}, "B", "A", "H[B A C]"},
		{"across containers", []any{"A", vsplit("B", "C")}, "A", "C", "H[C V[B A]]"},
		{"container with view", []any{"A", vsplit("B", "C")}, "A", "B", "H[B V[A C]]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, ws := single(t, entity.LayoutHorizontal, tt.kids...)
			before := entity.Describe(ws)
			a, b := h.node(tt.a), h.node(tt.b)

			require.NoError(t, h.uc.Swap(h.ctx, a, b))
			assert.Equal(t, tt.want, entity.Describe(ws))
			h.valid()

			require.NoError(t, h.uc.Swap(h.ctx, a, b))
			assert.Equal(t, before, entity.Describe(ws), "swapping twice restores the tree")
			h.valid()
		})
	}
}

func TestManageTreeUseCase_Swap_ExchangesGeometry(t *testing.T) {
	h, _ := single(t, entity.LayoutHorizontal, "A", "B")
	a, b := h.node("A"), h.node("B")
	a.Rect = entity.Rect{Width: 600, Height: 1080}
	b.Rect = entity.Rect{X: 600, Width: 1320, Height: 1080}

	require.NoError(t, h.uc.Swap(h.ctx, a, b))
	assert.Equal(t, entity.Rect{X: 600, Width: 1320, Height: 1080}, a.Rect)
	assert.Equal(t, entity.Rect{Width: 600, Height: 1080}, b.Rect)
}

func TestManageTreeUseCase_Swap_FullscreenStaysWithSlot(t *testing.T) {
	h, ws := single(t, entity.LayoutHorizontal, "A", "B")
	a, b := h.node("A"), h.node("B")
	require.NoError(t, h.uc.SetFullscreen(h.ctx, a, true))

	require.NoError(t, h.uc.Swap(h.ctx, a, b))

	assert.False(t, a.Fullscreen)
	assert.True(t, b.Fullscreen)
	assert.Equal(t, b, ws.WorkspaceInfo().Fullscreen)
	h.valid()
}

func TestManageTreeUseCase_Swap_KeepsFocusOnSameWorkspace(t *testing.T) {
	h, _ := single(t, entity.LayoutHorizontal, "A", "B", "C")
	h.focus("A")

	require.NoError(t, h.uc.Swap(h.ctx, h.node("A"), h.node("C")))
	assert.Equal(t, h.node("A"), h.seat.Focus())
}

func TestManageTreeUseCase_Swap_FocusWithTabbedGroup(t *testing.T) {
	tests := []struct {
		name         string
		focus        []string
		a, b         string
		wantFocus    string
		wantInactive string
	}{
		{
			name:  "focused view enters the group",
			focus: []string{"X", "A"}, a: "A", b: "B",
			wantFocus: "A", wantInactive: "A",
		},
		{
			name:  "focused view leaves the group",
			focus: []string{"X", "B"}, a: "B", b: "A",
			wantFocus: "B", wantInactive: "A",
		},
		{
			name:  "unfocused views keep the active tab",
			focus: []string{"X"}, a: "A", b: "B",
			wantFocus: "X", wantInactive: "X",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, ws := single(t, entity.LayoutHorizontal, "A", tabs("X", "B"))
			group := h.node("X").Parent
			h.focus(tt.focus...)

			require.NoError(t, h.uc.Swap(h.ctx, h.node(tt.a), h.node(tt.b)))

			assert.Equal(t, "H[B T[X A]]", entity.Describe(ws))
			assert.Equal(t, h.node(tt.wantFocus), h.seat.Focus())
			assert.Equal(t, h.node(tt.wantInactive), h.seat.FocusInactive(group))
			assert.Equal(t, h.node(tt.wantInactive), h.seat.ActiveChild(group))
			h.valid()
		})
	}
}

func TestManageTreeUseCase_Swap_FocusFollowsSlotAcrossWorkspaces(t *testing.T) {
	h := newHarness(t)
	left := h.output("DP-1", entity.Rect{Width: 1920, Height: 1080})
	right := h.output("DP-2", entity.Rect{X: 1920, Width: 1920, Height: 1080})
	ws1 := h.workspace(left, "1", entity.LayoutHorizontal, "A", "B")
	ws2 := h.workspace(right, "2", entity.LayoutHorizontal, "C")
	h.noNeighbours()
	h.focus("C", "A")
	h.seat.SetPreviousWorkspaceName("9")

	a, c := h.node("A"), h.node("C")
	require.NoError(t, h.uc.Swap(h.ctx, a, c))

	assert.Equal(t, "H[C B]", entity.Describe(ws1))
	assert.Equal(t, "H[A]", entity.Describe(ws2))
	assert.Equal(t, c, h.seat.Focus())
	assert.Equal(t, "9", h.seat.PreviousWorkspaceName(), "swap does not touch back-and-forth state")
	h.valid()
}

func TestManageTreeUseCase_Swap_Errors(t *testing.T) {
	h, ws := single(t, entity.LayoutHorizontal, "A", vsplit("B", "C"))
	floating := h.tree.NewView("F", "")
	h.tree.AddChild(ws.WorkspaceInfo().Floating, floating)
	container := h.node("B").Parent

	tests := []struct {
		name string
		a, b *entity.Node
		err  error
	}{
		{"nil", h.node("A"), nil, usecase.ErrNilNode},
		{"same node", h.node("A"), h.node("A"), usecase.ErrNotSwappable},
		{"workspace", ws, h.node("A"), usecase.ErrNotSwappable},
		{"ancestor", container, h.node("B"), usecase.ErrAncestorSwap},
		{"descendant", h.node("C"), container, usecase.ErrAncestorSwap},
		{"floating", h.node("A"), floating, usecase.ErrFloatingSwap},
		{"detached", h.node("A"), h.tree.NewView("X", ""), usecase.ErrDetached},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := h.uc.Swap(h.ctx, tt.a, tt.b)
			require.ErrorIs(t, err, tt.err)
			assert.Equal(t, "H[A V[B C]]", entity.Describe(ws))
		})
	}
}
