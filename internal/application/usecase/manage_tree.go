// Package usecase implements the tree operations invoked by command dispatch:
// split, move, swap and their supporting workspace and focus operations.
package usecase

import (
	"context"
	"fmt"

	"github.com/bnema/tilewm/internal/application/port"
	"github.com/bnema/tilewm/internal/domain/entity"
	"github.com/bnema/tilewm/internal/domain/tree"
	"github.com/bnema/tilewm/internal/logging"
)

// ManageTreeUseCase runs structural operations against one window tree.
//
// Every exported operation holds the tree's event queue for its whole
// duration, so observers only see the tree once the operation is complete.
type ManageTreeUseCase struct {
	tree    *tree.Tree
	seat    port.Seat
	outputs port.OutputLayout
	prefs   port.LayoutPreferences
}

// NewManageTreeUseCase creates a tree management use case.
func NewManageTreeUseCase(
	t *tree.Tree,
	seat port.Seat,
	outputs port.OutputLayout,
	prefs port.LayoutPreferences,
) *ManageTreeUseCase {
	return &ManageTreeUseCase{
		tree:    t,
		seat:    seat,
		outputs: outputs,
		prefs:   prefs,
	}
}

// Tree returns the tree the use case operates on.
func (uc *ManageTreeUseCase) Tree() *tree.Tree {
	return uc.tree
}

func (uc *ManageTreeUseCase) wrapPolicy() entity.WrapPolicy {
	if uc.prefs == nil {
		return entity.WrapDisabled
	}
	return uc.prefs.FocusWrapping()
}

// DefaultLayout resolves the layout for new workspaces on n's output: the
// configured layout, else the configured orientation, else horizontal when the
// output is at least as wide as it is tall.
func (uc *ManageTreeUseCase) DefaultLayout(n *entity.Node) (entity.Layout, error) {
	if n == nil {
		return entity.LayoutNone, ErrNilNode
	}
	out := n.Output()
	if out == nil {
		return entity.LayoutNone, fmt.Errorf("default layout of %s: %w", n, ErrDetached)
	}
	if uc.prefs != nil {
		if l := uc.prefs.DefaultLayout(); l != entity.LayoutNone {
			return l, nil
		}
		if o := uc.prefs.DefaultOrientation(); o != entity.LayoutNone {
			return o, nil
		}
	}
	if out.Rect.Width >= out.Rect.Height {
		return entity.LayoutHorizontal, nil
	}
	return entity.LayoutVertical, nil
}

// keepVisible protects workspaces currently shown on an output from reaping.
func (uc *ManageTreeUseCase) keepVisible(n *entity.Node) bool {
	return n.Type == entity.NodeWorkspace && uc.seat.IsWorkspaceVisible(n)
}

// workspaceOf returns the workspace an output currently shows.
func (uc *ManageTreeUseCase) workspaceOf(output *entity.Node) *entity.Node {
	if ws := uc.seat.FocusInactive(output).Workspace(); ws != nil && ws.Output() == output {
		return ws
	}
	if len(output.Children) > 0 {
		return output.Children[0]
	}
	return nil
}

func (uc *ManageTreeUseCase) adjacentOutput(output *entity.Node, dir entity.Direction, refX, refY float64) *entity.Node {
	if uc.outputs == nil || output == nil {
		return nil
	}
	return uc.outputs.AdjacentOutput(output, dir, refX, refY)
}

func (uc *ManageTreeUseCase) validateMovable(node *entity.Node) error {
	if node == nil {
		return ErrNilNode
	}
	if !node.IsContainerOrView() {
		return fmt.Errorf("move %s: %w", node, ErrNotMovable)
	}
	if node.Parent == nil || node.IsDestroyed() {
		return fmt.Errorf("move %s: %w", node, ErrDetached)
	}
	if node.Parent.Type == entity.NodeWorkspace && node.Parent.WorkspaceInfo().Floating == node {
		return fmt.Errorf("move floating container of %s: %w", node.Parent, ErrNotMovable)
	}
	return nil
}

// finishRelocation is the bookkeeping shared by every operation that moved
// node away from oldParent: change notifications, focus on the vacated parent
// and then on node, workspace focus and urgency when the workspace changed,
// gesture cancellation and reaping of what was left empty.
func (uc *ManageTreeUseCase) finishRelocation(ctx context.Context, node, oldParent *entity.Node) {
	log := logging.FromContext(ctx)

	uc.tree.NotifySubtreeChanged(oldParent)
	uc.tree.NotifySubtreeChanged(node.Parent)

	if node.Type == entity.NodeView {
		uc.tree.Emit(entity.EventWindowMove, node, oldParent)
	}

	lastWS := oldParent.Workspace()
	if oldParent != nil && !oldParent.IsDestroyed() {
		uc.seat.SetFocus(oldParent)
	}
	uc.seat.SetFocus(node)

	nextWS := node.Workspace()
	if lastWS != nil && nextWS != nil && lastWS != nextWS {
		log.Debug().
			Str("from", lastWS.Name).
			Str("to", nextWS.Name).
			Msg("node changed workspace")
		uc.tree.Emit(entity.EventWorkspaceFocus, nextWS, lastWS)
		uc.tree.DetectUrgent(lastWS)
		uc.tree.DetectUrgent(nextWS)
	}
	uc.seat.EndMouseOperation(node)

	if oldParent != nil && !oldParent.IsDestroyed() && oldParent != node.Parent {
		uc.tree.ReapEmptyRecursive(oldParent, uc.keepVisible)
	}
}

// zeroSize leaves the geometry of a relocated node to the next arrangement.
// Fullscreen nodes keep the output geometry.
func zeroSize(n *entity.Node) {
	if n.Fullscreen {
		return
	}
	n.Rect.Width = 0
	n.Rect.Height = 0
}
