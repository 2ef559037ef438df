package outputlayout_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bnema/tilewm/internal/domain/entity"
	"github.com/bnema/tilewm/internal/domain/tree"
	"github.com/bnema/tilewm/internal/infrastructure/outputlayout"
)

//	+------+----------+
//	| DP-1 |          |
//	+------+   DP-2   |
//	| DP-3 +-----+----+
//	|      | DP-4|
//	+------+-----+
func arrangement() (*tree.Tree, map[string]*entity.Node) {
	t := tree.New()
	outputs := map[string]*entity.Node{
		"DP-1": t.NewOutput("DP-1", entity.Rect{Width: 1920, Height: 1080}),
		"DP-2": t.NewOutput("DP-2", entity.Rect{X: 1920, Width: 2560, Height: 1440}),
		"DP-3": t.NewOutput("DP-3", entity.Rect{Y: 1080, Width: 1920, Height: 1080}),
		"DP-4": t.NewOutput("DP-4", entity.Rect{X: 1920, Y: 1440, Width: 1000, Height: 500}),
	}
	return t, outputs
}

func TestLayout_AdjacentOutput(t *testing.T) {
	tests := []struct {
		name       string
		from       string
		dir        entity.Direction
		refX, refY float64
		want       string // empty means edge of the arrangement
	}{
		{name: "right of top left", from: "DP-1", dir: entity.DirRight, refX: 960, refY: 540, want: "DP-2"},
		{name: "below top left", from: "DP-1", dir: entity.DirDown, refX: 960, refY: 540, want: "DP-3"},
		{name: "left edge", from: "DP-1", dir: entity.DirLeft, refX: 960, refY: 540},
		{name: "top edge", from: "DP-1", dir: entity.DirUp, refX: 960, refY: 540},
		{name: "nearest to reference point", from: "DP-3", dir: entity.DirRight, refX: 960, refY: 1620, want: "DP-4"},
		{name: "reference point near the top", from: "DP-3", dir: entity.DirRight, refX: 960, refY: 1100, want: "DP-2"},
		{name: "left of wide output", from: "DP-2", dir: entity.DirLeft, refX: 3200, refY: 200, want: "DP-1"},
		{name: "below wide output", from: "DP-2", dir: entity.DirDown, refX: 3200, refY: 720, want: "DP-4"},
		{name: "only outputs entirely above", from: "DP-3", dir: entity.DirUp, refX: 960, refY: 1620, want: "DP-1"},
		{name: "non cardinal direction", from: "DP-1", dir: entity.DirParent, refX: 960, refY: 540},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, outputs := arrangement()
			layout := outputlayout.New(tr)

			got := layout.AdjacentOutput(outputs[tt.from], tt.dir, tt.refX, tt.refY)
			if tt.want == "" {
				assert.Nil(t, got)
				return
			}
			assert.Equal(t, outputs[tt.want], got)
		})
	}
}

func TestLayout_TracksTreeChanges(t *testing.T) {
	tr := tree.New()
	left := tr.NewOutput("DP-1", entity.Rect{Width: 1920, Height: 1080})
	layout := outputlayout.New(tr)

	assert.Nil(t, layout.AdjacentOutput(left, entity.DirRight, 960, 540))

	right := tr.NewOutput("DP-2", entity.Rect{X: 1920, Width: 1920, Height: 1080})
	assert.Equal(t, right, layout.AdjacentOutput(left, entity.DirRight, 960, 540))

	right.Rect.X = -1920
	assert.Nil(t, layout.AdjacentOutput(left, entity.DirRight, 960, 540))
	assert.Equal(t, right, layout.AdjacentOutput(left, entity.DirLeft, 960, 540))
}

func TestLayout_RejectsNonOutputs(t *testing.T) {
	tr, outputs := arrangement()
	ws := tr.NewWorkspace(outputs["DP-1"], "1", entity.LayoutHorizontal)

	assert.Nil(t, outputlayout.New(tr).AdjacentOutput(ws, entity.DirRight, 960, 540))
	assert.Nil(t, outputlayout.New(tr).AdjacentOutput(nil, entity.DirRight, 960, 540))
}
