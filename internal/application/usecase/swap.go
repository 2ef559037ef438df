package usecase

import (
	"context"
	"fmt"

	"github.com/bnema/tilewm/internal/domain/entity"
	"github.com/bnema/tilewm/internal/logging"
)

// Swap exchanges the tree positions and geometry of a and b. Fullscreen state
// stays with the slot: if a was fullscreen, b is fullscreen afterwards.
func (uc *ManageTreeUseCase) Swap(ctx context.Context, a, b *entity.Node) error {
	log := logging.FromContext(ctx)

	if err := validateSwap(a, b); err != nil {
		log.Error().Err(err).Msg("swap rejected")
		return err
	}

	release := uc.tree.Hold()
	defer release()

	log.Debug().
		Int64("a_id", int64(a.ID)).
		Int64("b_id", int64(b.ID)).
		Msg("swapping containers")

	fsA, fsB := a.Fullscreen, b.Fullscreen
	if fsA {
		uc.tree.SetFullscreen(a, false)
	}
	if fsB {
		uc.tree.SetFullscreen(b, false)
	}

	focus := uc.seat.Focus()
	visA := uc.seat.FocusInactive(a.Output()).Workspace()
	visB := uc.seat.FocusInactive(b.Output()).Workspace()
	prevName := uc.seat.PreviousWorkspaceName()

	uc.swapPlaces(a, b)

	for _, vis := range []*entity.Node{visA, visB} {
		if vis == nil || uc.seat.IsWorkspaceVisible(vis) {
			continue
		}
		if fi := uc.seat.FocusInactive(vis); fi != nil {
			uc.seat.SetFocus(fi)
		} else {
			uc.seat.SetFocus(vis)
		}
	}

	uc.swapFocus(a, b, focus)
	uc.seat.SetPreviousWorkspaceName(prevName)

	if fsA {
		uc.tree.SetFullscreen(b, true)
	}
	if fsB {
		uc.tree.SetFullscreen(a, true)
	}

	uc.tree.NotifySubtreeChanged(a.Parent)
	uc.tree.NotifySubtreeChanged(b.Parent)
	for _, n := range []*entity.Node{a, b} {
		if n.Type == entity.NodeView {
			uc.tree.Emit(entity.EventWindowMove, n, nil)
		}
		uc.seat.EndMouseOperation(n)
	}

	log.Info().
		Int64("a_id", int64(a.ID)).
		Int64("b_id", int64(b.ID)).
		Msg("swapped containers")
	return nil
}

func validateSwap(a, b *entity.Node) error {
	if a == nil || b == nil {
		return ErrNilNode
	}
	if a == b {
		return fmt.Errorf("swap %s with itself: %w", a, ErrNotSwappable)
	}
	for _, n := range []*entity.Node{a, b} {
		if !n.IsContainerOrView() {
			return fmt.Errorf("swap %s: %w", n, ErrNotSwappable)
		}
		if n.Parent == nil || n.IsDestroyed() {
			return fmt.Errorf("swap %s: %w", n, ErrDetached)
		}
	}
	if a.HasAncestor(b) || b.HasAncestor(a) {
		return fmt.Errorf("swap %s and %s: %w", a, b, ErrAncestorSwap)
	}
	for _, n := range []*entity.Node{a, b} {
		if n.Layout == entity.LayoutFloating || n.IsFloatingOrChild() {
			return fmt.Errorf("swap %s: %w", n, ErrFloatingSwap)
		}
	}
	return nil
}

// swapPlaces exchanges geometry, then moves a into b's slot and b into the
// slot a occupied.
func (uc *ManageTreeUseCase) swapPlaces(a, b *entity.Node) {
	a.Rect, b.Rect = b.Rect, a.Rect

	parentA, indexA := a.Parent, a.Index()
	uc.tree.Insert(b.Parent, a, b.Index())
	uc.tree.Insert(parentA, b, indexA)
}

// swapFocus keeps the focused node focused unless it now sits in a hidden tab
// or on another workspace, in which case focus follows the slot.
func (uc *ManageTreeUseCase) swapFocus(a, b, focus *entity.Node) {
	if focus != a && focus != b {
		uc.seat.SetFocus(focus)
		return
	}

	wsA, wsB := a.Workspace(), b.Workspace()
	switch {
	case focus == a && b.Parent.Layout.IsTabbedOrStacked():
		if uc.seat.IsWorkspaceVisible(wsB) {
			uc.seat.SetFocusWarp(b, false, true)
		}
		if wsA != wsB {
			uc.seat.SetFocus(b)
		} else {
			uc.seat.SetFocus(a)
		}
	case focus == b && a.Parent.Layout.IsTabbedOrStacked():
		if uc.seat.IsWorkspaceVisible(wsA) {
			uc.seat.SetFocusWarp(a, false, true)
		}
		if wsA != wsB {
			uc.seat.SetFocus(a)
		} else {
			uc.seat.SetFocus(b)
		}
	case wsA != wsB:
		if focus == a {
			uc.seat.SetFocus(b)
		} else {
			uc.seat.SetFocus(a)
		}
	default:
		uc.seat.SetFocus(focus)
	}
}
