package usecase

import (
	"context"
	"fmt"

	"github.com/bnema/tilewm/internal/domain/entity"
	"github.com/bnema/tilewm/internal/logging"
)

// GetInDirection returns the node that focus would move to from node in dir,
// or nil when there is none. Crossing into another output picks the child on
// the entry side of its visible workspace.
func (uc *ManageTreeUseCase) GetInDirection(ctx context.Context, node *entity.Node, dir entity.Direction) (*entity.Node, error) {
	log := logging.FromContext(ctx)

	if node == nil {
		log.Error().Err(ErrNilNode).Msg("focus rejected")
		return nil, ErrNilNode
	}
	switch dir {
	case entity.DirChild:
		return uc.childInFocus(node), nil
	case entity.DirParent:
		if node.Fullscreen || node.Parent == nil || node.Parent.Type == entity.NodeOutput ||
			node.Type == entity.NodeOutput || node.IsFloating() {
			return nil, nil
		}
		return node.Parent, nil
	}
	if !dir.IsCardinal() {
		err := fmt.Errorf("focus %s: %w", dir, ErrInvalidDirection)
		log.Error().Err(err).Msg("focus rejected")
		return nil, err
	}

	current := node
	if node.Fullscreen {
		current = node.Output()
	}
	if current == nil || current.Parent == nil {
		return nil, nil
	}

	wrap := uc.wrapPolicy()
	offs := dir.Offset()
	var wrapCandidate *entity.Node

	for {
		parent := current.Parent
		idx := current.Index()
		if idx < 0 {
			return nil, nil
		}

		if parent.Type == entity.NodeRoot {
			cx, cy := current.Rect.Center()
			adjacent := uc.adjacentOutput(current, dir, cx, cy)
			if adjacent == nil || adjacent == current {
				log.Debug().Msg("no output in that direction")
				return uc.inactiveViewOr(wrapCandidate), nil
			}
			next := uc.inOutputDirection(adjacent, dir)
			if next == nil {
				log.Warn().Str("output", adjacent.Name).Msg("output without a workspace")
				return nil, nil
			}
			nextWS := next.Workspace()
			if nextWS == nil {
				err := fmt.Errorf("entry node %s has no workspace: %w", next, ErrUnexpectedNode)
				log.Error().Err(err).Msg("focus aborted")
				return nil, err
			}
			if fs := nextWS.WorkspaceInfo().Fullscreen; fs != nil {
				return uc.inactiveOr(fs), nil
			}
			if len(next.Children) > 0 {
				return uc.inactiveViewOr(next), nil
			}
			return next, nil
		}

		if entity.IsParallel(parent.Layout, dir) {
			desired := idx + offs
			if desired >= 0 && desired < len(parent.Children) {
				sibling := parent.Children[desired]
				log.Debug().Int("index", desired).Int64("sibling_id", int64(sibling.ID)).Msg("focus sibling")
				return uc.inactiveViewOr(sibling), nil
			}
			if n := len(parent.Children); wrap != entity.WrapDisabled && wrapCandidate == nil && n > 1 {
				if desired < 0 {
					wrapCandidate = parent.Children[n-1]
				} else {
					wrapCandidate = parent.Children[0]
				}
				if wrap == entity.WrapForced {
					return uc.inactiveViewOr(wrapCandidate), nil
				}
			}
		}

		current = parent
		if current.Parent == nil {
			return uc.inactiveViewOr(wrapCandidate), nil
		}
	}
}

// FocusInDirection moves focus from node (the focused node when nil) in dir.
// It returns the newly focused node, or nil when focus did not change.
func (uc *ManageTreeUseCase) FocusInDirection(ctx context.Context, node *entity.Node, dir entity.Direction) (*entity.Node, error) {
	if node == nil {
		node = uc.seat.Focus()
	}
	target, err := uc.GetInDirection(ctx, node, dir)
	if err != nil || target == nil || target == node {
		return nil, err
	}

	release := uc.tree.Hold()
	defer release()

	last := uc.seat.Focus().Workspace()
	uc.seat.SetFocus(target)
	if next := target.Workspace(); last != nil && next != nil && last != next {
		uc.tree.Emit(entity.EventWorkspaceFocus, next, last)
	}

	logging.FromContext(ctx).Debug().
		Str("direction", dir.String()).
		Str("target", target.String()).
		Msg("focus moved")
	return target, nil
}

// inOutputDirection picks the node entered when focus arrives on output from
// the opposite side of dir.
func (uc *ManageTreeUseCase) inOutputDirection(output *entity.Node, dir entity.Direction) *entity.Node {
	ws := uc.workspaceOf(output)
	if ws == nil {
		return nil
	}
	if len(ws.Children) == 0 {
		return ws
	}

	switch dir {
	case entity.DirLeft, entity.DirRight:
		if ws.Layout == entity.LayoutHorizontal || ws.Layout == entity.LayoutTabbed {
			if dir == entity.DirLeft {
				return ws.Children[len(ws.Children)-1]
			}
			return ws.Children[0]
		}
		return uc.inactiveOr(ws)
	default:
		focused := uc.seat.FocusInactive(ws)
		if focused == nil || focused.Parent == nil {
			return ws
		}
		if p := focused.Parent; p.Layout == entity.LayoutVertical {
			if dir == entity.DirUp {
				return p.Children[len(p.Children)-1]
			}
			return p.Children[0]
		}
		return focused
	}
}

// childInFocus returns the direct child of n that was focused last, falling
// back to the child holding n's focus-inactive descendant.
func (uc *ManageTreeUseCase) childInFocus(n *entity.Node) *entity.Node {
	if c := uc.seat.ActiveChild(n); c != nil {
		return c
	}
	fi := uc.seat.FocusInactive(n)
	for fi != nil && fi != n && fi.Parent != n {
		fi = fi.Parent
	}
	if fi == n {
		return nil
	}
	return fi
}

func (uc *ManageTreeUseCase) inactiveViewOr(n *entity.Node) *entity.Node {
	if n == nil {
		return nil
	}
	if v := uc.seat.FocusInactiveView(n); v != nil {
		return v
	}
	return n
}

func (uc *ManageTreeUseCase) inactiveOr(n *entity.Node) *entity.Node {
	if fi := uc.seat.FocusInactive(n); fi != nil {
		return fi
	}
	return n
}
