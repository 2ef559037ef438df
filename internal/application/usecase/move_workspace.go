package usecase

import (
	"context"
	"fmt"

	"github.com/bnema/tilewm/internal/domain/entity"
	"github.com/bnema/tilewm/internal/logging"
)

// CreateWorkspace adds a workspace to output. An empty name picks the lowest
// unused positive number.
func (uc *ManageTreeUseCase) CreateWorkspace(ctx context.Context, output *entity.Node, name string) (*entity.Node, error) {
	log := logging.FromContext(ctx)

	if output == nil {
		log.Error().Err(ErrNilNode).Msg("create workspace rejected")
		return nil, ErrNilNode
	}
	if output.Type != entity.NodeOutput {
		err := fmt.Errorf("create workspace on %s: %w", output, ErrNotOutput)
		log.Error().Err(err).Msg("create workspace rejected")
		return nil, err
	}
	if name == "" {
		name = uc.tree.NextWorkspaceName()
	}
	if uc.tree.Workspace(name) != nil {
		err := fmt.Errorf("workspace %q: %w", name, ErrWorkspaceExists)
		log.Error().Err(err).Msg("create workspace rejected")
		return nil, err
	}
	layout, err := uc.DefaultLayout(output)
	if err != nil {
		log.Error().Err(err).Msg("create workspace rejected")
		return nil, err
	}

	release := uc.tree.Hold()
	defer release()

	ws := uc.tree.NewWorkspace(output, name, layout)
	log.Info().
		Str("workspace", name).
		Str("output", output.Name).
		Str("layout", layout.String()).
		Msg("created workspace")
	return ws, nil
}

// FocusWorkspace shows ws on its output and focuses its focus-inactive descendant.
func (uc *ManageTreeUseCase) FocusWorkspace(ctx context.Context, ws *entity.Node) error {
	log := logging.FromContext(ctx)

	if ws == nil {
		log.Error().Err(ErrNilNode).Msg("focus workspace rejected")
		return ErrNilNode
	}
	if ws.Type != entity.NodeWorkspace {
		err := fmt.Errorf("focus %s: %w", ws, ErrNotWorkspace)
		log.Error().Err(err).Msg("focus workspace rejected")
		return err
	}

	release := uc.tree.Hold()
	defer release()

	last := uc.seat.Focus().Workspace()
	uc.focusInside(ws)
	if last != nil && last != ws {
		uc.tree.Emit(entity.EventWorkspaceFocus, ws, last)
		if !last.IsDestroyed() {
			uc.tree.ReapEmptyRecursive(last, uc.keepVisible)
		}
	}
	log.Debug().Str("workspace", ws.Name).Msg("focused workspace")
	return nil
}

// MoveWorkspaceToOutput moves ws and everything in it to output. An output
// left without workspaces gets a fresh one.
func (uc *ManageTreeUseCase) MoveWorkspaceToOutput(ctx context.Context, ws, output *entity.Node) (bool, error) {
	log := logging.FromContext(ctx)

	if ws == nil || output == nil {
		log.Error().Err(ErrNilNode).Msg("move workspace rejected")
		return false, ErrNilNode
	}
	if ws.Type != entity.NodeWorkspace {
		err := fmt.Errorf("move %s to output: %w", ws, ErrNotWorkspace)
		log.Error().Err(err).Msg("move workspace rejected")
		return false, err
	}
	if output.Type != entity.NodeOutput {
		err := fmt.Errorf("move workspace to %s: %w", output, ErrNotOutput)
		log.Error().Err(err).Msg("move workspace rejected")
		return false, err
	}
	oldOutput := ws.Parent
	if oldOutput == nil {
		err := fmt.Errorf("move %s: %w", ws, ErrDetached)
		log.Error().Err(err).Msg("move workspace rejected")
		return false, err
	}
	if oldOutput == output {
		return false, nil
	}

	release := uc.tree.Hold()
	defer release()

	prevVisible := uc.workspaceOf(output)

	uc.tree.AddChild(output, ws)
	ws.Rect = output.Rect
	uc.tree.SetDirty(ws)

	if len(oldOutput.Children) == 0 {
		name := uc.tree.NextWorkspaceName()
		layout, err := uc.DefaultLayout(oldOutput)
		if err != nil {
			layout = entity.LayoutHorizontal
		}
		replacement := uc.tree.NewWorkspace(oldOutput, name, layout)
		log.Debug().
			Str("output", oldOutput.Name).
			Str("workspace", name).
			Msg("created replacement workspace on vacated output")
		uc.seat.SetFocus(replacement)
	}

	if prevVisible != nil && prevVisible != ws && !prevVisible.IsDestroyed() {
		uc.tree.ReapEmptyRecursive(prevVisible, nil)
	}
	uc.tree.SortWorkspaces(output)

	uc.focusInside(ws)
	uc.tree.Emit(entity.EventWorkspaceMove, ws, oldOutput)
	uc.tree.NotifySubtreeChanged(ws)

	log.Info().
		Str("workspace", ws.Name).
		Str("from", oldOutput.Name).
		Str("to", output.Name).
		Msg("moved workspace to output")
	return true, nil
}

// focusInside focuses the focus-inactive descendant of n, or n itself.
func (uc *ManageTreeUseCase) focusInside(n *entity.Node) {
	if fi := uc.seat.FocusInactive(n); fi != nil {
		uc.seat.SetFocus(fi)
		return
	}
	uc.seat.SetFocus(n)
}
