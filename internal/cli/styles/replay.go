package styles

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/tilewm/internal/infrastructure/scenario"
)

// ReplayRenderer renders scenario replay progress.
type ReplayRenderer struct {
	theme *Theme
}

// NewReplayRenderer creates a replay renderer with the given theme.
func NewReplayRenderer(theme *Theme) *ReplayRenderer {
	return &ReplayRenderer{theme: theme}
}

// RenderHeader renders the scenario title line.
func (r *ReplayRenderer) RenderHeader(name, path string, steps int) string {
	if name == "" {
		name = path
	}
	return fmt.Sprintf("%s %s",
		r.theme.Title.Render(name),
		r.theme.Subtle.Render(fmt.Sprintf("(%d steps)", steps)),
	)
}

// RenderStep renders one replayed step and its unmet expectations.
func (r *ReplayRenderer) RenderStep(res scenario.Result) string {
	icon := r.theme.SuccessStyle.Render(IconCheck)
	if !res.Passed() {
		icon = r.theme.ErrorStyle.Render(IconX)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s %s",
		icon,
		r.theme.Subtle.Render(fmt.Sprintf("%3d", res.Index)),
		r.theme.Normal.Render(res.Step.Run),
	)
	switch {
	case res.Err != nil:
		fmt.Fprintf(&sb, " %s %s", r.theme.Subtle.Render(IconCursor), r.theme.WarningStyle.Render(res.Err.Error()))
	case res.Outcome != "":
		fmt.Fprintf(&sb, " %s %s", r.theme.Subtle.Render(IconCursor), r.theme.Highlight.Render(res.Outcome))
	}

	for _, f := range res.Failures {
		sb.WriteString("\n      ")
		sb.WriteString(r.theme.ErrorStyle.Render(f))
	}
	return sb.String()
}

// RenderDirty renders the nodes a step marked for re-arrangement.
func (r *ReplayRenderer) RenderDirty(nodes []string) string {
	if len(nodes) == 0 {
		return "      " + r.theme.Subtle.Render("dirty: none")
	}
	return "      " + r.theme.Subtle.Render("dirty: "+strings.Join(nodes, " "))
}

// RenderSummary renders the pass/fail totals of a replay.
func (r *ReplayRenderer) RenderSummary(results []scenario.Result) string {
	failed := 0
	for _, res := range results {
		if !res.Passed() {
			failed++
		}
	}

	style := r.theme.SuccessStyle
	icon := IconCheck
	if failed > 0 {
		style = r.theme.ErrorStyle
		icon = IconX
	}
	line := fmt.Sprintf("%s %d steps, %d passed, %d failed", icon, len(results), len(results)-failed, failed)
	return lipgloss.NewStyle().MarginTop(1).Render(style.Render(line))
}
