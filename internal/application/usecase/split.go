package usecase

import (
	"context"
	"fmt"

	"github.com/bnema/tilewm/internal/domain/entity"
	"github.com/bnema/tilewm/internal/logging"
)

// Split wraps node in a new container with the given layout and returns it.
// An empty workspace changes its own layout instead and is returned as is.
func (uc *ManageTreeUseCase) Split(ctx context.Context, node *entity.Node, layout entity.Layout) (*entity.Node, error) {
	log := logging.FromContext(ctx)

	if err := validateSplit(node, layout); err != nil {
		log.Error().Err(err).Msg("split rejected")
		return nil, err
	}

	release := uc.tree.Hold()
	defer release()

	cont := uc.split(ctx, node, layout)
	log.Info().
		Int64("node_id", int64(node.ID)).
		Str("layout", layout.String()).
		Msg("split node")
	return cont, nil
}

func validateSplit(node *entity.Node, layout entity.Layout) error {
	switch {
	case node == nil:
		return ErrNilNode
	case node.Type != entity.NodeWorkspace && !node.IsContainerOrView():
		return fmt.Errorf("split %s: %w", node, ErrNotSplittable)
	case node.Type != entity.NodeWorkspace && node.Parent == nil:
		return fmt.Errorf("split %s: %w", node, ErrDetached)
	case layout == entity.LayoutFloating || layout == entity.LayoutNone:
		return fmt.Errorf("split with %s: %w", layout, ErrInvalidLayout)
	}
	return nil
}

func (uc *ManageTreeUseCase) split(ctx context.Context, node *entity.Node, layout entity.Layout) *entity.Node {
	log := logging.FromContext(ctx)

	if node.Type == entity.NodeWorkspace && len(node.Children) == 0 {
		node.PrevLayout = node.Layout
		node.Layout = layout
		uc.tree.SetDirty(node)
		return node
	}

	cont := uc.tree.NewContainer(entity.LayoutNone)
	cont.PrevLayout = entity.LayoutNone
	cont.Rect = node.Rect
	log.Debug().
		Int64("container_id", int64(cont.ID)).
		Int64("node_id", int64(node.ID)).
		Msg("creating container around node")

	setFocus := uc.seat.Focus() == node

	if node.Type == entity.NodeWorkspace {
		for len(node.Children) > 0 {
			uc.tree.AddChild(cont, node.Children[0])
		}
		uc.tree.AddChild(node, cont)
		cont.Layout = node.Layout
		node.Layout = layout
	} else {
		cont.Layout = layout
		uc.tree.ReplaceChild(node, cont)
		uc.tree.AddChild(cont, node)
	}

	if setFocus {
		uc.seat.SetFocus(cont)
		uc.seat.SetFocus(node)
	}

	uc.tree.NotifySubtreeChanged(cont)
	return cont
}
