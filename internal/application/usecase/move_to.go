package usecase

import (
	"context"
	"fmt"

	"github.com/bnema/tilewm/internal/domain/entity"
	"github.com/bnema/tilewm/internal/logging"
)

// MoveTo relocates node into dest: appended when dest is a workspace or a
// container, placed right after it when dest is a view. It reports whether the
// tree changed.
func (uc *ManageTreeUseCase) MoveTo(ctx context.Context, node, dest *entity.Node) (bool, error) {
	log := logging.FromContext(ctx)

	if err := uc.validateMovable(node); err != nil {
		log.Error().Err(err).Msg("move to rejected")
		return false, err
	}
	if err := validateDestination(node, dest); err != nil {
		log.Error().Err(err).Msg("move to rejected")
		return false, err
	}
	if dest == node || node.HasAncestor(dest) {
		return false, nil
	}
	if node.IsFloating() {
		log.Debug().Msg("floating nodes keep their position")
		return false, nil
	}

	release := uc.tree.Hold()
	defer release()

	oldParent := node.Parent
	oldWS := node.Workspace()

	uc.tree.Remove(node)
	zeroSize(node)
	node.Saved.Width = 0
	node.Saved.Height = 0

	if dest.Type == entity.NodeView {
		uc.tree.AddSibling(dest, node)
	} else {
		uc.tree.AddChild(dest, node)
	}

	if node.Type == entity.NodeView {
		uc.tree.Emit(entity.EventWindowMove, node, oldParent)
	}
	uc.tree.NotifySubtreeChanged(oldParent)
	uc.tree.NotifySubtreeChanged(node.Parent)

	newWS := node.Workspace()
	if newWS != nil {
		fs := newWS.WorkspaceInfo().Fullscreen
		if focus := uc.seat.Focus(); fs != nil && fs != node && focus.Workspace() == newWS {
			uc.seat.SetFocus(uc.seat.FocusInactive(fs))
		}
	}
	if oldWS != nil && newWS != nil && oldWS != newWS {
		uc.tree.DetectUrgent(oldWS)
		uc.tree.DetectUrgent(newWS)
	}

	uc.seat.EndMouseOperation(node)
	if !oldParent.IsDestroyed() {
		uc.tree.ReapEmptyRecursive(oldParent, uc.keepVisible)
	}

	log.Info().
		Int64("node_id", int64(node.ID)).
		Int64("dest_id", int64(dest.ID)).
		Msg("moved node to destination")
	return true, nil
}

func validateDestination(node, dest *entity.Node) error {
	switch {
	case dest == nil:
		return ErrNilNode
	case dest.Type != entity.NodeWorkspace && !dest.IsContainerOrView():
		return fmt.Errorf("move %s to %s: %w", node, dest, ErrInvalidDestination)
	case dest.Type == entity.NodeWorkspace && dest.Output() == nil:
		return fmt.Errorf("move %s to workspace %s without output: %w", node, dest, ErrInvalidDestination)
	case dest.IsDestroyed() || (dest.Type != entity.NodeWorkspace && dest.Parent == nil):
		return fmt.Errorf("move to %s: %w", dest, ErrDetached)
	case dest.HasAncestor(node):
		return fmt.Errorf("move %s into its own subtree: %w", node, ErrInvalidDestination)
	}
	return nil
}
