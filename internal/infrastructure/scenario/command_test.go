package scenario

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/tilewm/internal/domain/entity"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		line string
		want Command
	}{
		{"focus left", Command{Verb: VerbFocus, Direction: entity.DirLeft, HasDirection: true}},
		{"focus parent", Command{Verb: VerbFocus, Direction: entity.DirParent, HasDirection: true}},
		{"[B] focus", Command{Target: "B", Verb: VerbFocus}},
		{"[ B ]  move down", Command{Target: "B", Verb: VerbMove, Direction: entity.DirDown, HasDirection: true}},
		{"move to C", Command{Verb: VerbMoveTo, Name: "C"}},
		{"move container to workspace 3", Command{Verb: VerbMoveToWS, Name: "3"}},
		{"move workspace to output DP-2", Command{Verb: VerbMoveWS, Name: "DP-2"}},
		{"swap container with D", Command{Verb: VerbSwap, Name: "D"}},
		{"split vertical", Command{Verb: VerbSplit, Layout: entity.LayoutVertical}},
		{"splith", Command{Verb: VerbSplit, Layout: entity.LayoutHorizontal}},
		{"splitt", Command{Verb: VerbSplit, Layout: entity.LayoutTabbed}},
		{"split s", Command{Verb: VerbSplit, Layout: entity.LayoutStacked}},
		{"fullscreen", Command{Verb: VerbFullscreen, Toggle: ToggleFlip}},
		{"fullscreen disable", Command{Verb: VerbFullscreen, Toggle: ToggleDisable}},
		{"kill", Command{Verb: VerbClose}},
		{"map term foot", Command{Verb: VerbMap, Name: "term", AppID: "foot"}},
		{"resize right 100px", Command{Verb: VerbResize, Edge: entity.EdgeRight, Amount: 100}},
		{"resize top -20", Command{Verb: VerbResize, Edge: entity.EdgeTop, Amount: -20}},
		{"urgent enable", Command{Verb: VerbUrgent, Toggle: ToggleEnable}},
		{"workspace back_and_forth", Command{Verb: VerbWorkspace, Name: "back_and_forth"}},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := ParseCommand(tt.line)
			require.NoError(t, err)
			tt.want.Raw = tt.line
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCommand_Errors(t *testing.T) {
	tests := []struct {
		line string
		msg  string
	}{
		{"", "empty command"},
		{"[B]", "empty command"},
		{"[B focus", "unterminated criteria"},
		{"[] focus", "empty criteria"},
		{"focus", "needs a direction"},
		{"focus sideways", "unknown direction"},
		{"move parent", "cannot move parent"},
		{"move", "usage: move"},
		{"swap with D", "usage: swap"},
		{"split floating", "cannot split floating"},
		{"split none", "cannot split none"},
		{"splitv now", "takes no arguments"},
		{"fullscreen maybe", "unexpected argument"},
		{"urgent", "expected enable or disable"},
		{"urgent toggle", "unexpected argument"},
		{"kill -9", "takes no arguments"},
		{"resize diagonal 10", "unknown edge"},
		{"resize left wide", "invalid amount"},
		{"layout tabbed", "unknown command"},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			_, err := ParseCommand(tt.line)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}
