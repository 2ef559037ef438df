package port

import "github.com/bnema/tilewm/internal/domain/entity"

// OutputLayout answers spatial questions about the arrangement of outputs.
// Discovery and hotplug stay outside the engine.
type OutputLayout interface {
	// AdjacentOutput returns the output reached when leaving output in dir,
	// using (refX, refY) as the reference point, or nil at the edge of the
	// arrangement. dir is always a cardinal direction.
	AdjacentOutput(output *entity.Node, dir entity.Direction, refX, refY float64) *entity.Node
}
