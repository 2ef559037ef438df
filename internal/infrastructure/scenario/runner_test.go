package scenario_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/tilewm/internal/application/usecase"
	"github.com/bnema/tilewm/internal/domain/entity"
	"github.com/bnema/tilewm/internal/domain/seat"
	"github.com/bnema/tilewm/internal/domain/tree"
	"github.com/bnema/tilewm/internal/infrastructure/outputlayout"
	"github.com/bnema/tilewm/internal/infrastructure/scenario"
	"github.com/bnema/tilewm/internal/logging"
)

type fixture struct {
	ctx    context.Context
	tree   *tree.Tree
	seat   *seat.Seat
	prefs  *scenario.Preferences
	runner *scenario.Runner
}

func build(t *testing.T, f *scenario.File) *fixture {
	t.Helper()
	logger := logging.NewFromConfigValues("debug", "console")
	ctx := logging.WithContext(context.Background(), logger)

	tr := tree.New()
	s := seat.New("seat0", tr)
	t.Cleanup(s.Close)
	prefs := scenario.NewPreferences(nil, f.Layout)
	uc := usecase.NewManageTreeUseCase(tr, s, outputlayout.New(tr), prefs)

	require.NoError(t, scenario.Build(ctx, f, tr, s))
	return &fixture{ctx: ctx, tree: tr, seat: s, prefs: prefs, runner: scenario.NewRunner(uc, s)}
}

func parse(t *testing.T, src string) *scenario.File {
	t.Helper()
	f, err := scenario.Parse([]byte(src))
	require.NoError(t, err)
	return f
}

const twoOutputs = `
outputs:
  - name: DP-1
    rect: {width: 1920, height: 1080}
    workspaces:
      - name: "1"
        children: [A, {layout: splitv, children: [B, C]}]
      - name: "3"
        children: [E]
  - name: DP-2
    rect: {x: 1920, width: 1080, height: 1920}
    workspaces:
      - name: "2"
        children: [{name: D, fullscreen: true}]
`

func TestBuild(t *testing.T) {
	fx := build(t, parse(t, twoOutputs))

	require.NoError(t, fx.tree.Validate())
	assert.Equal(t, "H[A V[B C]]", entity.Describe(fx.tree.Workspace("1")))
	ws2 := fx.tree.Workspace("2")
	assert.Equal(t, "V[D]", entity.Describe(ws2), "portrait output defaults to vertical")
	assert.Equal(t, fx.tree.FindByName("D"), ws2.WorkspaceInfo().Fullscreen)
	assert.Equal(t, ws2.Parent.Rect, fx.tree.FindByName("D").Rect)

	assert.True(t, fx.seat.IsWorkspaceVisible(fx.tree.Workspace("1")))
	assert.True(t, fx.seat.IsWorkspaceVisible(ws2))
	assert.False(t, fx.seat.IsWorkspaceVisible(fx.tree.Workspace("3")))
	assert.Equal(t, "1", fx.seat.Focus().Workspace().Name)
}

func TestBuild_FocusAndUrgency(t *testing.T) {
	f := parse(t, `
outputs:
  - name: DP-1
    rect: {width: 1920, height: 1080}
    workspaces:
      - {name: "1", children: [A, {name: B, urgent: true}]}
      - {name: "2", children: [C]}
focus: [C, A]
`)
	fx := build(t, f)

	assert.Equal(t, "A", fx.seat.Focus().Name)
	assert.True(t, fx.tree.Workspace("1").WorkspaceInfo().Urgent)
	assert.False(t, fx.tree.Workspace("2").WorkspaceInfo().Urgent)
}

func TestRunner_ReplayTestdata(t *testing.T) {
	f, err := scenario.Load("testdata/basic.yaml")
	require.NoError(t, err)
	fx := build(t, f)

	var observed int
	results := fx.runner.Replay(fx.ctx, f.Steps, scenario.ReplayOptions{ValidateTree: true}, func(scenario.Result) {
		observed++
	})

	require.Len(t, results, len(f.Steps))
	assert.Equal(t, len(f.Steps), observed)
	for _, res := range results {
		assert.True(t, res.Passed(), "step %d %q: %v", res.Index, res.Step.Run, res.Failures)
	}
	assert.Equal(t, string(usecase.MoveSwapped), results[0].Outcome)
	assert.ErrorIs(t, results[7].Err, scenario.ErrUnknownNode)
	assert.ErrorIs(t, results[8].Err, usecase.ErrNotMovable)
}

func TestRunner_ReportsFailures(t *testing.T) {
	f := parse(t, `
outputs:
  - name: DP-1
    rect: {width: 1920, height: 1080}
    workspaces:
      - {name: "1", children: [A, B]}
focus: [A]
steps:
  - run: move right
    expect: {"1": "H[A B]", "9": "H[]"}
    focused: B
  - run: focus child
    error: invalid direction
  - run: "[Q] kill"
    focused: A
  - run: move left
`)
	fx := build(t, f)

	results := fx.runner.Replay(fx.ctx, f.Steps, scenario.ReplayOptions{}, nil)
	require.Len(t, results, 4)

	assert.Equal(t, []string{
		`workspace "1": got H[B A], want H[A B]`,
		`workspace "9": missing, want H[]`,
		"focused: got A, want B",
	}, results[0].Failures)
	assert.Equal(t, []string{`expected error containing "invalid direction"`}, results[1].Failures)
	require.Len(t, results[2].Failures, 1)
	assert.Contains(t, results[2].Failures[0], "unexpected error")
	assert.True(t, results[3].Passed())

	stopped := fx.runner.Replay(fx.ctx, f.Steps, scenario.ReplayOptions{StopOnFailure: true}, nil)
	assert.Len(t, stopped, 1)
}

func TestRunner_Exec(t *testing.T) {
	tests := []struct {
		name    string
		cmds    []string
		outcome string
		ws      map[string]string
		focused string
	}{
		{
			name:    "focus into container",
			cmds:    []string{"[A] focus", "focus right"},
			outcome: "focus C",
			focused: "C",
		},
		{
			name:    "focus crosses outputs",
			cmds:    []string{"[C] focus", "focus right"},
			outcome: "focus D",
			focused: "D",
		},
		{
			name:    "focus parent",
			cmds:    []string{"[B] focus", "focus parent"},
			outcome: "focus ",
		},
		{
			name:    "move to node",
			cmds:    []string{"[A] move to C"},
			outcome: "moved",
			ws:      map[string]string{"1": "H[V[B C A]]"},
		},
		{
			name:    "move to new workspace",
			cmds:    []string{"[A] move container to workspace 7"},
			outcome: "moved",
			ws:      map[string]string{"1": "H[V[B C]]", "7": "H[A]"},
		},
		{
			name:    "map into workspace by criteria",
			cmds:    []string{"[3] map F"},
			outcome: "mapped F",
			ws:      map[string]string{"3": "H[E F]"},
			focused: "F",
		},
		{
			name:    "fullscreen toggles",
			cmds:    []string{"[A] fullscreen", "[A] fullscreen"},
			outcome: "fullscreen disabled",
		},
		{
			name:    "urgent",
			cmds:    []string{"[E] urgent enable"},
			outcome: "urgent enabled",
		},
		{
			name:    "workspace switch and back",
			cmds:    []string{"[A] focus", "workspace 3", "workspace back_and_forth"},
			outcome: "workspace 1",
			focused: "A",
		},
		{
			name:    "new workspace on focused output",
			cmds:    []string{"[A] focus", "workspace 5"},
			outcome: "workspace 5",
			ws:      map[string]string{"1": "H[A V[B C]]", "5": "H[]"},
		},
		{
			name:    "move workspace to output",
			cmds:    []string{"[E] focus", "move workspace to output DP-2"},
			outcome: "moved",
		},
		{
			name:    "split and close",
			cmds:    []string{"[B] splith", "[B] kill"},
			outcome: "closed",
			ws:      map[string]string{"1": "H[A V[C]]"},
		},
		{
			name:    "resize",
			cmds:    []string{"[1] resize right 100"},
			outcome: "resized",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := build(t, parse(t, twoOutputs))

			var outcome string
			for _, line := range tt.cmds {
				cmd, err := scenario.ParseCommand(line)
				require.NoError(t, err)
				outcome, err = fx.runner.Exec(fx.ctx, cmd)
				require.NoError(t, err, line)
			}
			assert.Equal(t, tt.outcome, outcome)
			for name, want := range tt.ws {
				ws := fx.tree.Workspace(name)
				require.NotNil(t, ws, name)
				assert.Equal(t, want, entity.Describe(ws), name)
			}
			if tt.focused != "" {
				assert.Equal(t, tt.focused, fx.seat.Focus().Name)
			}
			require.NoError(t, fx.tree.Validate())
		})
	}
}

func TestPreferences_Layers(t *testing.T) {
	base := scenario.NewPreferences(nil, scenario.LayoutSpec{
		DefaultLayout: "tabbed", DefaultOrientation: "vertical", FocusWrapping: "force",
	})
	p := scenario.NewPreferences(base, scenario.LayoutSpec{FocusWrapping: "no"})

	assert.Equal(t, entity.LayoutTabbed, p.DefaultLayout())
	assert.Equal(t, entity.LayoutVertical, p.DefaultOrientation())
	assert.Equal(t, entity.WrapDisabled, p.FocusWrapping())

	p.SetFocusWrapping(entity.WrapEnabled)
	assert.Equal(t, entity.WrapEnabled, p.FocusWrapping())

	empty := scenario.NewPreferences(nil, scenario.LayoutSpec{})
	assert.Equal(t, entity.LayoutNone, empty.DefaultLayout())
	assert.Equal(t, entity.WrapEnabled, empty.FocusWrapping())
}
