package usecase

import (
	"context"
	"fmt"

	"github.com/bnema/tilewm/internal/domain/entity"
	"github.com/bnema/tilewm/internal/logging"
)

// MapViewInput describes a window appearing.
type MapViewInput struct {
	Name  string
	AppID string
	// Workspace receives the view. When nil the focused workspace is used.
	Workspace *entity.Node
}

// MapView creates a view next to the focus-inactive tiling node of the target
// workspace and focuses it.
func (uc *ManageTreeUseCase) MapView(ctx context.Context, input MapViewInput) (*entity.Node, error) {
	log := logging.FromContext(ctx)

	ws := input.Workspace
	if ws == nil {
		ws = uc.seat.Focus().Workspace()
	}
	var err error
	switch {
	case ws == nil:
		err = fmt.Errorf("map %q: no target workspace: %w", input.Name, ErrNilNode)
	case ws.Type != entity.NodeWorkspace:
		err = fmt.Errorf("map %q on %s: %w", input.Name, ws, ErrNotWorkspace)
	}
	if err != nil {
		log.Error().Err(err).Msg("map rejected")
		return nil, err
	}

	release := uc.tree.Hold()
	defer release()

	view := uc.tree.NewView(input.Name, input.AppID)
	target := uc.seat.FocusInactiveTiling(ws)
	switch {
	case target != nil && target.Type == entity.NodeView:
		uc.tree.AddSibling(target, view)
	case target != nil && target.Type == entity.NodeContainer:
		uc.tree.AddChild(target, view)
	default:
		uc.tree.AddChild(ws, view)
	}

	uc.seat.SetFocus(view)
	uc.tree.NotifySubtreeChanged(view.Parent)

	log.Info().
		Int64("node_id", int64(view.ID)).
		Str("name", view.Name).
		Str("workspace", ws.Name).
		Msg("mapped view")
	return view, nil
}

// CloseView destroys a view, reaps the containers it leaves empty and moves
// focus to the next view on its workspace.
func (uc *ManageTreeUseCase) CloseView(ctx context.Context, view *entity.Node) error {
	log := logging.FromContext(ctx)

	if err := validateView("close", view); err != nil {
		log.Error().Err(err).Msg("close rejected")
		return err
	}

	release := uc.tree.Hold()
	defer release()

	wasFocused := uc.seat.Focus() == view
	parent := view.Parent
	ws := view.Workspace()

	uc.tree.Destroy(view)
	if parent != nil && !parent.IsDestroyed() {
		uc.tree.ReapEmptyRecursive(parent, uc.keepVisible)
		uc.tree.NotifySubtreeChanged(parent)
	}

	if ws != nil && !ws.IsDestroyed() {
		if wasFocused {
			if next := uc.seat.FocusInactiveView(ws); next != nil {
				uc.seat.SetFocus(next)
			} else {
				uc.seat.SetFocus(ws)
			}
		}
		uc.tree.DetectUrgent(ws)
	}

	log.Info().Int64("node_id", int64(view.ID)).Str("name", view.Name).Msg("closed view")
	return nil
}

// SetFullscreen toggles fullscreen on a container or view.
func (uc *ManageTreeUseCase) SetFullscreen(ctx context.Context, node *entity.Node, enable bool) error {
	log := logging.FromContext(ctx)

	var err error
	switch {
	case node == nil:
		err = ErrNilNode
	case !node.IsContainerOrView():
		err = fmt.Errorf("fullscreen %s: %w", node, ErrNotMovable)
	case node.Workspace() == nil:
		err = fmt.Errorf("fullscreen %s: %w", node, ErrDetached)
	}
	if err != nil {
		log.Error().Err(err).Msg("fullscreen rejected")
		return err
	}
	if node.Fullscreen == enable {
		return nil
	}

	release := uc.tree.Hold()
	defer release()

	uc.tree.SetFullscreen(node, enable)
	uc.seat.EndMouseOperation(node)

	log.Info().
		Int64("node_id", int64(node.ID)).
		Bool("enable", enable).
		Msg("fullscreen toggled")
	return nil
}

// Resize applies a size delta to node on edge and spreads it over its children.
func (uc *ManageTreeUseCase) Resize(ctx context.Context, node *entity.Node, amount float64, edge entity.ResizeEdge) error {
	log := logging.FromContext(ctx)

	var err error
	switch {
	case node == nil:
		err = ErrNilNode
	case !node.IsContainerOrView() && node.Type != entity.NodeWorkspace:
		err = fmt.Errorf("resize %s: %w", node, ErrNotMovable)
	}
	if err != nil {
		log.Error().Err(err).Msg("resize rejected")
		return err
	}

	release := uc.tree.Hold()
	defer release()

	uc.tree.RecursiveResize(node, amount, edge)
	uc.seat.EndMouseOperation(node)
	uc.tree.NotifySubtreeChanged(node)

	log.Debug().
		Int64("node_id", int64(node.ID)).
		Float64("amount", amount).
		Msg("resized node")
	return nil
}

// SetUrgent flags a view as urgent and updates its workspace.
func (uc *ManageTreeUseCase) SetUrgent(ctx context.Context, view *entity.Node, urgent bool) error {
	log := logging.FromContext(ctx)

	if err := validateView("urgent", view); err != nil {
		log.Error().Err(err).Msg("urgency rejected")
		return err
	}

	release := uc.tree.Hold()
	defer release()

	uc.tree.SetUrgent(view, urgent)
	log.Debug().
		Int64("node_id", int64(view.ID)).
		Bool("urgent", urgent).
		Msg("urgency changed")
	return nil
}

func validateView(op string, view *entity.Node) error {
	switch {
	case view == nil:
		return ErrNilNode
	case view.Type != entity.NodeView:
		return fmt.Errorf("%s %s: %w", op, view, ErrNotView)
	case view.IsDestroyed():
		return fmt.Errorf("%s %s: %w", op, view, ErrDetached)
	}
	return nil
}
