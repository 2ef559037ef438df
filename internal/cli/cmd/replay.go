package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/bnema/tilewm/internal/bootstrap"
	"github.com/bnema/tilewm/internal/cli/styles"
	"github.com/bnema/tilewm/internal/domain/entity"
	"github.com/bnema/tilewm/internal/infrastructure/commit"
	"github.com/bnema/tilewm/internal/infrastructure/events"
	"github.com/bnema/tilewm/internal/infrastructure/scenario"
	"github.com/bnema/tilewm/internal/logging"
)

var replayFlags struct {
	events   bool
	check    bool
	quiet    bool
	validate bool
	failFast bool
	dirty    bool
	wrap     string
}

var replayCmd = &cobra.Command{
	Use:   "replay <scenario.yaml>",
	Short: "Build a scenario tree and replay its commands",
	Long: `Build the outputs, workspaces and windows described by a scenario file,
then run its steps in order, printing the tree after each one.

Steps may carry expectations (the compact form of a workspace, the focused
window, an expected error). Unmet expectations are reported per step; with
--check they also make the command fail.

Examples:
  tilewm replay testdata/basic.yaml
  tilewm replay --check --quiet scenario.yaml
  tilewm replay --events scenario.yaml | jq .change`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	f := replayCmd.Flags()
	f.BoolVar(&replayFlags.events, "events", false, "print window and workspace events as JSON lines")
	f.BoolVar(&replayFlags.check, "check", false, "exit with an error when a step fails")
	f.BoolVarP(&replayFlags.quiet, "quiet", "q", false, "do not print the tree after each step")
	f.BoolVar(&replayFlags.validate, "validate", true, "check tree integrity after every step")
	f.BoolVar(&replayFlags.failFast, "fail-fast", false, "stop at the first failing step")
	f.BoolVar(&replayFlags.dirty, "dirty", false, "list the nodes each step marked for re-arrangement")
	f.StringVar(&replayFlags.wrap, "wrap", "", "override focus wrapping (no, yes, force)")
	rootCmd.AddCommand(replayCmd)
}

func runReplay(cmd *cobra.Command, args []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}
	ctx := logging.WithComponent(app.Ctx(), "replay")
	log := logging.FromContext(ctx)
	out := cmd.OutOrStdout()
	timer := bootstrap.NewPhaseTimer()

	file, err := scenario.Load(args[0])
	if err != nil {
		return err
	}
	timer.Mark("load")

	prefs := scenario.NewPreferences(app.Config, file.Layout)
	if replayFlags.wrap != "" {
		w, err := entity.ParseWrapPolicy(replayFlags.wrap)
		if err != nil {
			return err
		}
		prefs.SetFocusWrapping(w)
	}

	var dirty []string
	engine := app.NewEngine(bootstrap.Options{
		Preferences: prefs,
		Arrange: func(_ context.Context, b commit.Batch) error {
			dirty = dirty[:0]
			for _, n := range b.Nodes {
				dirty = append(dirty, n.String())
			}
			return nil
		},
	})
	defer func() {
		if err := engine.Close(ctx); err != nil {
			log.Warn().Err(err).Msg("final commit failed")
		}
	}()
	if replayFlags.events {
		engine.Bus.Subscribe(events.NewJSONWriter(out, log))
	}

	if err := scenario.Build(ctx, file, engine.Tree, engine.Seat); err != nil {
		return err
	}
	engine.Commits.SetReady()
	if err := engine.Commits.Commit(ctx); err != nil {
		return err
	}
	timer.Mark("build")

	treeR := styles.NewTreeRenderer(app.Theme, engine.Seat)
	replayR := styles.NewReplayRenderer(app.Theme)

	fmt.Fprintln(out, replayR.RenderHeader(file.Name, args[0], len(file.Steps)))
	if !replayFlags.quiet {
		fmt.Fprintln(out, indent(treeR.Render(engine.Tree.Root())))
	}

	runner := scenario.NewRunner(engine.Trees, engine.Seat)
	opts := scenario.ReplayOptions{ValidateTree: replayFlags.validate, StopOnFailure: replayFlags.failFast}
	results := runner.Replay(ctx, file.Steps, opts, func(res scenario.Result) {
		dirty = dirty[:0]
		if err := engine.Commits.Commit(ctx); err != nil {
			log.Warn().Err(err).Int("step", res.Index).Msg("commit failed")
		}
		fmt.Fprintln(out, replayR.RenderStep(res))
		if replayFlags.dirty {
			fmt.Fprintln(out, replayR.RenderDirty(dirty))
		}
		if !replayFlags.quiet {
			fmt.Fprintln(out, indent(treeR.Render(engine.Tree.Root())))
		}
	})
	timer.Mark("replay")
	timer.Log(ctx, zerolog.DebugLevel)

	fmt.Fprintln(out, replayR.RenderSummary(results))

	if replayFlags.check {
		if failed := countFailed(results); failed > 0 {
			return fmt.Errorf("%d of %d steps failed", failed, len(results))
		}
	}
	return nil
}

func countFailed(results []scenario.Result) int {
	n := 0
	for _, res := range results {
		if !res.Passed() {
			n++
		}
	}
	return n
}

func indent(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = "    " + l
	}
	return strings.Join(lines, "\n")
}
