package scenario

import (
	"context"
	"fmt"

	"github.com/bnema/tilewm/internal/application/port"
	"github.com/bnema/tilewm/internal/domain/entity"
	"github.com/bnema/tilewm/internal/domain/tree"
	"github.com/bnema/tilewm/internal/logging"
)

// Build creates the outputs, workspaces and windows of f in t and applies the
// initial focus. The first workspace of every output starts visible. Events
// are held until the whole arrangement exists.
func Build(ctx context.Context, f *File, t *tree.Tree, s port.Seat) error {
	log := logging.FromContext(ctx)

	release := t.Hold()
	defer release()

	var fullscreen, urgent []*entity.Node
	var outputs []*entity.Node
	for _, spec := range f.Outputs {
		out := t.NewOutput(spec.Name, spec.Rect)
		outputs = append(outputs, out)
		for _, wsSpec := range spec.Workspaces {
			layout, err := entity.ParseLayout(wsSpec.Layout)
			if err != nil {
				return fmt.Errorf("workspace %q: %w", wsSpec.Name, err)
			}
			if layout == entity.LayoutNone {
				layout = entity.LayoutHorizontal
				if out.Rect.Width < out.Rect.Height {
					layout = entity.LayoutVertical
				}
			}
			ws := t.NewWorkspace(out, wsSpec.Name, layout)
			if err := buildChildren(t, ws, wsSpec.Children, &fullscreen, &urgent); err != nil {
				return err
			}
		}
	}

	for _, n := range fullscreen {
		t.SetFullscreen(n, true)
	}
	for _, n := range urgent {
		t.SetUrgent(n, true)
	}

	for i := len(outputs) - 1; i >= 0; i-- {
		if len(outputs[i].Children) == 0 {
			continue
		}
		ws := outputs[i].Children[0]
		if fi := s.FocusInactive(ws); fi != nil {
			s.SetFocusWarp(fi, false, false)
		} else {
			s.SetFocusWarp(ws, false, false)
		}
	}
	for _, name := range f.Focus {
		n := t.FindByName(name)
		if n == nil {
			return fmt.Errorf("focus: unknown node %q", name)
		}
		s.SetFocusWarp(n, false, false)
	}

	if err := t.Validate(); err != nil {
		return fmt.Errorf("scenario builds an invalid tree: %w", err)
	}
	log.Debug().
		Int("outputs", len(outputs)).
		Int("workspaces", len(t.Workspaces())).
		Msg("scenario built")
	return nil
}

func buildChildren(t *tree.Tree, parent *entity.Node, specs []NodeSpec, fullscreen, urgent *[]*entity.Node) error {
	for _, spec := range specs {
		var n *entity.Node
		if spec.IsContainer() {
			layout, err := entity.ParseLayout(spec.Layout)
			if err != nil {
				return fmt.Errorf("container %q: %w", spec.Name, err)
			}
			n = t.NewContainer(layout)
			n.Name = spec.Name
			t.AddChild(parent, n)
			if err := buildChildren(t, n, spec.Children, fullscreen, urgent); err != nil {
				return err
			}
		} else {
			n = t.NewView(spec.Name, spec.AppID)
			t.AddChild(parent, n)
			if spec.Urgent {
				*urgent = append(*urgent, n)
			}
		}
		if spec.Fullscreen {
			*fullscreen = append(*fullscreen, n)
		}
	}
	return nil
}
