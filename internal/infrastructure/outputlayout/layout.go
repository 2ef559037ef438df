// Package outputlayout answers adjacency questions from the rectangles of the
// outputs attached to a tree.
package outputlayout

import (
	"math"

	"github.com/bnema/tilewm/internal/application/port"
	"github.com/bnema/tilewm/internal/domain/entity"
	"github.com/bnema/tilewm/internal/domain/tree"
)

var _ port.OutputLayout = (*Layout)(nil)

// Layout derives adjacency from output geometry on every query, so outputs
// added or resized in the tree are picked up without re-registration.
type Layout struct {
	tree *tree.Tree
}

// New creates an output layout over the outputs of t.
func New(t *tree.Tree) *Layout {
	return &Layout{tree: t}
}

// AdjacentOutput returns the output lying entirely beyond output's edge in
// dir whose closest point is nearest to (refX, refY). Ties keep the first
// output in tree order.
func (l *Layout) AdjacentOutput(output *entity.Node, dir entity.Direction, refX, refY float64) *entity.Node {
	if output == nil || output.Type != entity.NodeOutput {
		return nil
	}

	var best *entity.Node
	bestDist := math.Inf(1)

	for _, candidate := range l.tree.Outputs() {
		if candidate == output || !beyond(output.Rect, candidate.Rect, dir) {
			continue
		}
		x, y := candidate.Rect.ClosestPoint(refX, refY)
		dist := (x-refX)*(x-refX) + (y-refY)*(y-refY)
		if dist < bestDist {
			bestDist = dist
			best = candidate
		}
	}
	return best
}

// beyond reports whether box lies past ref's edge in dir.
func beyond(ref, box entity.Rect, dir entity.Direction) bool {
	switch dir {
	case entity.DirLeft:
		return box.X+box.Width <= ref.X
	case entity.DirRight:
		return box.X >= ref.X+ref.Width
	case entity.DirUp:
		return box.Y+box.Height <= ref.Y
	case entity.DirDown:
		return box.Y >= ref.Y+ref.Height
	default:
		return false
	}
}
