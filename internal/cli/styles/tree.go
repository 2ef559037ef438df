package styles

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"

	"github.com/bnema/tilewm/internal/domain/entity"
)

// FocusState is the part of a seat the renderer marks up.
type FocusState interface {
	Focus() *entity.Node
	IsWorkspaceVisible(ws *entity.Node) bool
}

// TreeRenderer draws a window tree as an indented outline.
type TreeRenderer struct {
	theme *Theme
	seat  FocusState
}

// NewTreeRenderer creates a renderer. seat may be nil, in which case focus
// and visibility are not shown.
func NewTreeRenderer(theme *Theme, seat FocusState) *TreeRenderer {
	return &TreeRenderer{theme: theme, seat: seat}
}

// Render draws every output under root.
func (r *TreeRenderer) Render(root *entity.Node) string {
	if root == nil {
		return r.theme.Subtle.Render("(empty tree)")
	}
	parts := make([]string, 0, len(root.Children))
	for _, out := range root.Children {
		parts = append(parts, r.build(out).String())
	}
	if len(parts) == 0 {
		return r.theme.Subtle.Render("(no outputs)")
	}
	return strings.Join(parts, "\n")
}

// RenderWorkspace draws a single workspace subtree.
func (r *TreeRenderer) RenderWorkspace(ws *entity.Node) string {
	return r.build(ws).String()
}

func (r *TreeRenderer) build(n *entity.Node) *tree.Tree {
	t := tree.Root(r.label(n)).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(lipgloss.NewStyle().Foreground(r.theme.Border).MarginRight(1))
	for _, c := range n.Children {
		if c.Type == entity.NodeView {
			t.Child(r.label(c))
			continue
		}
		t.Child(r.build(c))
	}
	if n.Type == entity.NodeWorkspace {
		if fl := n.WorkspaceInfo().Floating; fl != nil && len(fl.Children) > 0 {
			floating := tree.Root(r.theme.Subtle.Render("floating"))
			for _, c := range fl.Children {
				floating.Child(r.build(c))
			}
			t.Child(floating)
		}
	}
	return t
}

func (r *TreeRenderer) label(n *entity.Node) string {
	var b strings.Builder
	switch n.Type {
	case entity.NodeOutput:
		b.WriteString(r.theme.Highlight.Render(IconOutput + " " + n.Name))
		b.WriteString(" ")
		b.WriteString(r.theme.Subtle.Render(formatRect(n.Rect)))
	case entity.NodeWorkspace:
		b.WriteString(r.theme.Title.Render(IconWorkspace + " " + n.Name))
		b.WriteString(" ")
		b.WriteString(r.theme.Subtle.Render(n.Layout.String()))
		if r.seat != nil && r.seat.IsWorkspaceVisible(n) {
			b.WriteString(" " + r.theme.BadgeMuted.Render("visible"))
		}
		if n.WorkspaceInfo().Urgent {
			b.WriteString(" " + r.badge(r.theme.Warning, "urgent"))
		}
	case entity.NodeContainer:
		b.WriteString(r.theme.Subtle.Render(IconContainer + " " + n.Layout.String()))
		if n.Name != "" {
			b.WriteString(" " + r.theme.Normal.Render(n.Name))
		}
	case entity.NodeView:
		b.WriteString(r.theme.Normal.Render(n.Name))
		if app := n.ViewInfo().AppID; app != "" {
			b.WriteString(" " + r.theme.Subtle.Render("("+app+")"))
		}
		if n.ViewInfo().Urgent {
			b.WriteString(" " + r.badge(r.theme.Warning, "urgent"))
		}
	default:
		b.WriteString(n.String())
	}
	if n.Fullscreen {
		b.WriteString(" " + r.theme.BadgeMuted.Render("fullscreen"))
	}
	if r.seat != nil && r.seat.Focus() == n {
		b.WriteString(" " + r.theme.Badge.Render("focused"))
	}
	return b.String()
}

func (r *TreeRenderer) badge(bg lipgloss.Color, text string) string {
	return r.theme.Badge.Background(bg).Render(text)
}

func formatRect(rect entity.Rect) string {
	return fmt.Sprintf("%gx%g+%g+%g", rect.Width, rect.Height, rect.X, rect.Y)
}
