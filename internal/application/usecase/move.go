package usecase

import (
	"context"
	"fmt"

	"github.com/bnema/tilewm/internal/domain/entity"
	"github.com/bnema/tilewm/internal/logging"
)

// MoveResult describes what a directional move did.
type MoveResult string

const (
	MoveNone       MoveResult = "none"
	MoveSwapped    MoveResult = "swapped"      // exchanged with a sibling view
	MoveReparented MoveResult = "reparented"   // entered a container, workspace or cousin slot
	MovePromoted   MoveResult = "promoted"     // left its container as a sibling of an ancestor
	MoveRejiggered MoveResult = "rejiggered"   // workspace restructured to the movement axis
	MoveOutOfGroup MoveResult = "out_of_group" // left a tabbed or stacked group
	MoveRelayout   MoveResult = "relayout"     // lone child: the group changed layout instead
	MoveWrapped    MoveResult = "wrapped"      // rotated to the opposite end of its parent
	MoveFlattened  MoveResult = "flattened"    // its single-child container was dissolved
)

// MoveInput contains parameters for a directional move.
type MoveInput struct {
	Node      *entity.Node
	Direction entity.Direction
}

// MoveOutput contains the result of a move.
type MoveOutput struct {
	Result MoveResult
}

// Moved reports whether the tree changed.
func (o *MoveOutput) Moved() bool {
	return o != nil && o.Result != MoveNone
}

var noMove = &MoveOutput{Result: MoveNone}

// Move relocates a container or view one step in a cardinal direction,
// crossing siblings, containers, workspaces and outputs.
//
// Reaching the edge of the display arrangement, or the boundary of a
// fullscreen or floating ancestor, is not an error: the tree is left untouched
// and the result is MoveNone.
func (uc *ManageTreeUseCase) Move(ctx context.Context, input MoveInput) (*MoveOutput, error) {
	log := logging.FromContext(ctx)
	node, dir := input.Node, input.Direction

	if err := uc.validateMovable(node); err != nil {
		log.Error().Err(err).Msg("move rejected")
		return nil, err
	}
	if !dir.IsCardinal() {
		err := fmt.Errorf("move %s: %w", dir, ErrInvalidDirection)
		log.Error().Err(err).Msg("move rejected")
		return nil, err
	}

	release := uc.tree.Hold()
	defer release()

	ctx = logging.WithNodeID(ctx, int64(node.ID))
	log = logging.FromContext(ctx)
	log.Debug().
		Str("direction", dir.String()).
		Msg("moving node")

	out, err := uc.move(ctx, node, dir)
	if err != nil {
		log.Error().Err(err).Msg("move aborted")
		return nil, err
	}
	if out.Moved() {
		log.Info().
			Str("direction", dir.String()).
			Str("result", string(out.Result)).
			Msg("moved node")
	}
	return out, nil
}

func (uc *ManageTreeUseCase) move(ctx context.Context, node *entity.Node, dir entity.Direction) (*MoveOutput, error) {
	log := logging.FromContext(ctx)
	offs := dir.Offset()

	current := node
	// The walk stops when it reaches top without finding a destination.
	var top *entity.Node
	switch {
	case node.Fullscreen:
		// A fullscreen node can only change output.
		current = node.Output()
		if current == nil {
			return noMove, nil
		}
	case node.IsFullscreenOrChild():
		top = node.FullscreenAncestor()
	case node.IsFloatingOrChild():
		top = node.FloatingAncestor()
	}

	parent := node.Parent
	if flat := uc.tree.Flatten(parent); flat != parent {
		log.Debug().Msg("node was the last child of its container")
		uc.tree.NotifySubtreeChanged(node.Parent)
		return &MoveOutput{Result: MoveFlattened}, nil
	}

	wrap := uc.wrapPolicy()
	var sibling, wrapParent *entity.Node

walk:
	for sibling == nil {
		if current == nil || current == top {
			break
		}

		parent := current.Parent
		index := current.Index()
		log.Debug().Str("visiting", current.String()).Msg("move walk")

		switch current.Type {
		case entity.NodeOutput:
			cx, cy := current.Rect.Center()
			next := uc.adjacentOutput(current, dir, cx, cy)
			if next == nil {
				log.Debug().Msg("hit edge of output, nowhere else to go")
				break walk
			}
			ws := uc.workspaceOf(next)
			if ws == nil {
				log.Warn().Str("output", next.Name).Msg("adjacent output has no workspace")
				break walk
			}
			log.Debug().Str("output", next.Name).Str("workspace", ws.Name).Msg("selected next output")
			sibling = ws

		case entity.NodeWorkspace:
			switch {
			case !entity.IsParallel(current.Layout, dir) && len(current.Children) >= 2:
				log.Debug().Int("children", len(current.Children)).Msg("rejiggering the workspace")
				uc.rejigger(ctx, current, node, dir)
				return &MoveOutput{Result: MoveRejiggered}, nil
			case entity.IsParallel(current.Layout, dir) && current.Layout.IsTabbedOrStacked():
				log.Debug().Msg("rejiggering out of tabs/stacks")
				uc.rejigger(ctx, current, node, dir)
				return &MoveOutput{Result: MoveRejiggered}, nil
			default:
				log.Debug().Msg("selecting output")
				current = parent
			}

		case entity.NodeContainer, entity.NodeView:
			if parent == nil || index < 0 {
				return nil, fmt.Errorf("move walk reached detached %s: %w", current, ErrUnexpectedNode)
			}
			if !entity.IsParallel(parent.Layout, dir) {
				switch {
				case !parent.Fullscreen && !inFloatingContainer(parent) && parent.Layout.IsTabbedOrStacked():
					return uc.moveOutOfTabsStacks(ctx, node, current, dir), nil
				case inFloatingContainer(parent):
					return noMove, nil
				default:
					log.Debug().Msg("moving up to find a parallel container")
					current = parent
				}
				continue
			}

			atEdge := (offs > 0 && index == len(parent.Children)-1) || (offs < 0 && index == 0)
			if !atEdge {
				sibling = parent.Children[index+offs]
				log.Debug().Int64("sibling_id", int64(sibling.ID)).Msg("selecting sibling")
				continue
			}

			if current.Parent != node.Parent {
				log.Debug().Msg("hit limit, promoting descendant to sibling")
				oldParent := node.Parent
				uc.tree.Insert(parent, node, index+afterOffset(offs))
				zeroSize(node)
				uc.finishRelocation(ctx, node, oldParent)
				return &MoveOutput{Result: MovePromoted}, nil
			}
			if inFloatingContainer(parent) {
				return noMove, nil
			}
			if !parent.Fullscreen && parent.Layout.IsTabbedOrStacked() {
				if wrap == entity.WrapForced && len(parent.Children) > 1 {
					return uc.wrapWithin(ctx, node, offs), nil
				}
				return uc.moveOutOfTabsStacks(ctx, node, current, dir), nil
			}
			if len(parent.Children) > 1 {
				switch wrap {
				case entity.WrapForced:
					return uc.wrapWithin(ctx, node, offs), nil
				case entity.WrapEnabled:
					wrapParent = parent
				}
			}
			log.Debug().Msg("hit limit, selecting parent")
			current = parent

		default:
			return nil, fmt.Errorf("move walk reached %s: %w", current, ErrUnexpectedNode)
		}
	}

	if sibling == nil {
		if wrapParent != nil && node.Parent == wrapParent {
			log.Debug().Msg("nothing beyond the edge, wrapping")
			return uc.wrapWithin(ctx, node, offs), nil
		}
		return noMove, nil
	}

	return uc.relocate(ctx, node, sibling, dir)
}

// relocate moves node into or next to the destination found by the walk.
func (uc *ManageTreeUseCase) relocate(ctx context.Context, node, sibling *entity.Node, dir entity.Direction) (*MoveOutput, error) {
	log := logging.FromContext(ctx)
	offs := dir.Offset()
	index := node.Index()
	oldParent := node.Parent
	result := MoveReparented

	for sibling != nil {
		switch sibling.Type {
		case entity.NodeView:
			if sibling.Parent == node.Parent {
				log.Debug().Msg("swapping siblings")
				p := sibling.Parent
				p.Children[index+offs] = node
				p.Children[index] = sibling
				uc.tree.SetDirty(p)
				result = MoveSwapped
			} else {
				log.Debug().Msg("promoting to sibling of cousin")
				uc.tree.Insert(sibling.Parent, node, sibling.Index()+beforeOffset(offs))
				zeroSize(node)
			}
			sibling = nil

		case entity.NodeWorkspace, entity.NodeContainer:
			if entity.IsParallel(sibling.Layout, dir) {
				limit := 0
				if offs < 0 {
					limit = len(sibling.Children)
				}
				log.Debug().Int("index", limit).Msg("reparenting into parallel container")
				uc.tree.Insert(sibling, node, limit)
				zeroSize(node)
				sibling = nil
				continue
			}

			log.Debug().Msg("reparenting into perpendicular container")
			if fi := uc.seat.FocusInactiveTiling(sibling); fi != nil && fi != sibling {
				for fi.Parent != nil && fi.Parent != sibling {
					fi = fi.Parent
				}
				if fi.Parent == sibling {
					log.Debug().Int64("focus_inactive_id", int64(fi.ID)).Msg("descending to focus-inactive child")
					sibling = fi
					continue
				}
			}
			if len(sibling.Children) > 0 {
				log.Debug().Msg("no focus-inactive child, adding next to the first one")
				uc.tree.AddSibling(sibling.Children[0], node)
			} else {
				log.Debug().Msg("empty destination, adding node alone")
				uc.tree.AddChild(sibling, node)
			}
			zeroSize(node)
			sibling = nil

		default:
			return nil, fmt.Errorf("move destination %s: %w", sibling, ErrUnexpectedNode)
		}
	}

	uc.finishRelocation(ctx, node, oldParent)
	return &MoveOutput{Result: result}, nil
}

// rejigger sets child aside, wraps the remaining workspace children in a new
// container keeping the workspace's layout, switches the workspace to the
// movement axis and drops child back on the entry side.
func (uc *ManageTreeUseCase) rejigger(ctx context.Context, ws, child *entity.Node, dir entity.Direction) {
	uc.split(ctx, ws, ws.Layout)
	from := child.Parent

	uc.tree.Insert(ws, child, afterOffset(dir.Offset()))
	ws.Layout = entity.LayoutForDirection(dir)
	uc.tree.SetDirty(ws)

	uc.finishRelocation(ctx, child, from)
}

// moveOutOfTabsStacks takes node out of the tabbed or stacked group holding
// current and places it beside the group along the movement axis.
func (uc *ManageTreeUseCase) moveOutOfTabsStacks(ctx context.Context, node, current *entity.Node, dir entity.Direction) *MoveOutput {
	log := logging.FromContext(ctx)
	group := current.Parent
	axis := entity.LayoutForDirection(dir)

	if node.Parent == group && len(group.Children) == 1 {
		log.Debug().Int64("group_id", int64(group.ID)).Msg("changing layout of lone group")
		group.Layout = axis
		uc.tree.NotifySubtreeChanged(group)
		return &MoveOutput{Result: MoveRelayout}
	}

	log.Debug().Msg("moving out of tab/stack into a split")
	oldParent := node.Parent
	isWorkspace := group.Type == entity.NodeWorkspace
	newParent := uc.split(ctx, group, axis)
	idx := afterOffset(dir.Offset())
	if isWorkspace {
		uc.tree.Insert(newParent.Parent, node, idx)
	} else {
		uc.tree.Insert(newParent, node, idx)
		uc.tree.ReapEmptyRecursive(newParent.Parent, uc.keepVisible)
		uc.tree.Flatten(newParent.Parent)
	}
	uc.tree.NotifySubtreeChanged(newParent)
	uc.finishRelocation(ctx, node, oldParent)
	return &MoveOutput{Result: MoveOutOfGroup}
}

// wrapWithin rotates node to the opposite end of its own parent.
func (uc *ManageTreeUseCase) wrapWithin(ctx context.Context, node *entity.Node, offs int) *MoveOutput {
	parent := node.Parent
	idx := 0
	if offs < 0 {
		idx = len(parent.Children)
	}
	uc.tree.Insert(parent, node, idx)
	uc.finishRelocation(ctx, node, parent)
	return &MoveOutput{Result: MoveWrapped}
}

func inFloatingContainer(n *entity.Node) bool {
	return n.Parent != nil && n.Parent.Layout == entity.LayoutFloating
}

// afterOffset is 1 when moving right/down so the node lands after the reference slot.
func afterOffset(offs int) int {
	if offs < 0 {
		return 0
	}
	return 1
}

// beforeOffset is 1 when moving left/up so the node lands after a cousin it
// approached from the right.
func beforeOffset(offs int) int {
	if offs > 0 {
		return 0
	}
	return 1
}
