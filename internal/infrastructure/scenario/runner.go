package scenario

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/bnema/tilewm/internal/application/port"
	"github.com/bnema/tilewm/internal/application/usecase"
	"github.com/bnema/tilewm/internal/domain/entity"
	"github.com/bnema/tilewm/internal/logging"
)

var (
	ErrUnknownNode = errors.New("unknown node")
	ErrNoTarget    = errors.New("no focused node")
)

const backAndForth = "back_and_forth"

// Result is the outcome of one replayed step.
type Result struct {
	Index   int
	Step    Step
	Command Command
	// Outcome is a short description of what the command did, such as a move
	// result or the newly focused node.
	Outcome string
	Err     error
	// Failures lists unmet expectations and integrity breaches.
	Failures []string
}

// Passed reports whether the step met all of its expectations.
func (r Result) Passed() bool {
	return len(r.Failures) == 0
}

// ReplayOptions tunes Replay.
type ReplayOptions struct {
	// ValidateTree checks tree integrity after every step.
	ValidateTree bool
	// StopOnFailure ends the replay at the first failing step.
	StopOnFailure bool
}

// Runner executes scenario commands through the tree use case.
type Runner struct {
	uc   *usecase.ManageTreeUseCase
	seat port.Seat
}

// NewRunner creates a runner.
func NewRunner(uc *usecase.ManageTreeUseCase, seat port.Seat) *Runner {
	return &Runner{uc: uc, seat: seat}
}

// Replay runs steps in order. observe, when non-nil, sees each result as soon
// as it is available. Command errors do not stop the replay; they are only
// failures when the step did not expect them.
func (r *Runner) Replay(ctx context.Context, steps []Step, opts ReplayOptions, observe func(Result)) []Result {
	results := make([]Result, 0, len(steps))

	for i, step := range steps {
		stepCtx := logging.WithCommand(ctx, step.Run)
		res := Result{Index: i + 1, Step: step}
		cmd, err := ParseCommand(step.Run)
		res.Command = cmd
		if err != nil {
			res.Err = err
		} else {
			res.Outcome, res.Err = r.Exec(stepCtx, cmd)
		}
		res.Failures = r.check(step, res.Err, opts)

		logging.FromContext(stepCtx).Debug().
			Int("step", res.Index).
			Str("outcome", res.Outcome).
			Err(res.Err).
			Msg("replayed step")

		results = append(results, res)
		if observe != nil {
			observe(res)
		}
		if opts.StopOnFailure && !res.Passed() {
			break
		}
	}
	return results
}

func (r *Runner) check(step Step, err error, opts ReplayOptions) []string {
	var failures []string
	t := r.uc.Tree()

	switch {
	case step.Error != "" && err == nil:
		failures = append(failures, fmt.Sprintf("expected error containing %q", step.Error))
	case step.Error != "" && !strings.Contains(err.Error(), step.Error):
		failures = append(failures, fmt.Sprintf("expected error containing %q, got %q", step.Error, err))
	case step.Error == "" && err != nil && (len(step.Expect) > 0 || step.Focused != ""):
		failures = append(failures, fmt.Sprintf("unexpected error: %v", err))
	}

	names := make([]string, 0, len(step.Expect))
	for name := range step.Expect {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		want := step.Expect[name]
		ws := t.Workspace(name)
		if ws == nil {
			failures = append(failures, fmt.Sprintf("workspace %q: missing, want %s", name, want))
			continue
		}
		if got := entity.Describe(ws); got != want {
			failures = append(failures, fmt.Sprintf("workspace %q: got %s, want %s", name, got, want))
		}
	}

	if step.Focused != "" {
		got := "<none>"
		if f := r.seat.Focus(); f != nil {
			got = f.Name
		}
		if got != step.Focused {
			failures = append(failures, fmt.Sprintf("focused: got %s, want %s", got, step.Focused))
		}
	}

	if opts.ValidateTree {
		if err := t.Validate(); err != nil {
			failures = append(failures, fmt.Sprintf("invalid tree: %v", err))
		}
	}
	return failures
}

// Exec runs one command and returns a short outcome description.
func (r *Runner) Exec(ctx context.Context, cmd Command) (string, error) {
	target, err := r.target(cmd)
	if err != nil {
		return "", err
	}
	if target == nil && cmd.Verb != VerbMap && cmd.Verb != VerbWorkspace {
		return "", fmt.Errorf("%s: %w", cmd.Raw, ErrNoTarget)
	}

	switch cmd.Verb {
	case VerbFocus:
		return r.focus(ctx, cmd, target)
	case VerbMove:
		out, err := r.uc.Move(ctx, usecase.MoveInput{Node: target, Direction: cmd.Direction})
		if err != nil {
			return "", err
		}
		return string(out.Result), nil
	case VerbMoveTo:
		dest, err := r.lookup(cmd.Name)
		if err != nil {
			return "", err
		}
		return movedOutcome(r.uc.MoveTo(ctx, target, dest))
	case VerbMoveToWS:
		ws := r.uc.Tree().Workspace(cmd.Name)
		if ws == nil {
			ws, err = r.uc.CreateWorkspace(ctx, target.Output(), cmd.Name)
			if err != nil {
				return "", err
			}
		}
		return movedOutcome(r.uc.MoveTo(ctx, target, ws))
	case VerbMoveWS:
		out := r.output(cmd.Name)
		if out == nil {
			return "", fmt.Errorf("output %q: %w", cmd.Name, ErrUnknownNode)
		}
		return movedOutcome(r.uc.MoveWorkspaceToOutput(ctx, target.Workspace(), out))
	case VerbSwap:
		other, err := r.lookup(cmd.Name)
		if err != nil {
			return "", err
		}
		if err := r.uc.Swap(ctx, target, other); err != nil {
			return "", err
		}
		return "swapped", nil
	case VerbSplit:
		if _, err := r.uc.Split(ctx, target, cmd.Layout); err != nil {
			return "", err
		}
		return "split " + cmd.Layout.String(), nil
	case VerbFullscreen:
		enable := resolveToggle(cmd.Toggle, target.Fullscreen)
		if err := r.uc.SetFullscreen(ctx, target, enable); err != nil {
			return "", err
		}
		return onOff("fullscreen", enable), nil
	case VerbClose:
		if err := r.uc.CloseView(ctx, target); err != nil {
			return "", err
		}
		return "closed", nil
	case VerbMap:
		var ws *entity.Node
		if cmd.Target != "" {
			ws = target.Workspace()
		}
		view, err := r.uc.MapView(ctx, usecase.MapViewInput{Name: cmd.Name, AppID: cmd.AppID, Workspace: ws})
		if err != nil {
			return "", err
		}
		return "mapped " + view.Name, nil
	case VerbResize:
		if err := r.uc.Resize(ctx, target, cmd.Amount, cmd.Edge); err != nil {
			return "", err
		}
		return "resized", nil
	case VerbUrgent:
		enable := resolveToggle(cmd.Toggle, false)
		if err := r.uc.SetUrgent(ctx, target, enable); err != nil {
			return "", err
		}
		return onOff("urgent", enable), nil
	case VerbWorkspace:
		return r.workspace(ctx, cmd.Name, target)
	default:
		return "", fmt.Errorf("%s: unsupported command", cmd.Raw)
	}
}

func (r *Runner) focus(ctx context.Context, cmd Command, target *entity.Node) (string, error) {
	if !cmd.HasDirection {
		if target.Type == entity.NodeWorkspace {
			if err := r.uc.FocusWorkspace(ctx, target); err != nil {
				return "", err
			}
		} else {
			r.seat.SetFocus(target)
		}
		return "focus " + r.seat.Focus().Name, nil
	}

	next, err := r.uc.FocusInDirection(ctx, target, cmd.Direction)
	if err != nil {
		return "", err
	}
	if next == nil {
		return string(usecase.MoveNone), nil
	}
	return "focus " + next.Name, nil
}

func (r *Runner) workspace(ctx context.Context, name string, focused *entity.Node) (string, error) {
	if name == backAndForth {
		name = r.seat.PreviousWorkspaceName()
		if name == "" {
			return string(usecase.MoveNone), nil
		}
	}

	ws := r.uc.Tree().Workspace(name)
	if ws == nil {
		out := focused.Output()
		if out == nil {
			outputs := r.uc.Tree().Outputs()
			if len(outputs) == 0 {
				return "", fmt.Errorf("workspace %q: no output: %w", name, ErrNoTarget)
			}
			out = outputs[0]
		}
		var err error
		if ws, err = r.uc.CreateWorkspace(ctx, out, name); err != nil {
			return "", err
		}
	}
	if err := r.uc.FocusWorkspace(ctx, ws); err != nil {
		return "", err
	}
	return "workspace " + ws.Name, nil
}

// target resolves the [name] criteria, or the focused node.
func (r *Runner) target(cmd Command) (*entity.Node, error) {
	if cmd.Target == "" {
		return r.seat.Focus(), nil
	}
	return r.lookup(cmd.Target)
}

func (r *Runner) lookup(name string) (*entity.Node, error) {
	t := r.uc.Tree()
	if ws := t.Workspace(name); ws != nil {
		return ws, nil
	}
	if n := t.FindByName(name); n != nil {
		return n, nil
	}
	return nil, fmt.Errorf("%q: %w", name, ErrUnknownNode)
}

func (r *Runner) output(name string) *entity.Node {
	for _, out := range r.uc.Tree().Outputs() {
		if out.Name == name {
			return out
		}
	}
	return nil
}

func movedOutcome(moved bool, err error) (string, error) {
	if err != nil {
		return "", err
	}
	if !moved {
		return string(usecase.MoveNone), nil
	}
	return "moved", nil
}

func resolveToggle(t Toggle, current bool) bool {
	switch t {
	case ToggleEnable:
		return true
	case ToggleDisable:
		return false
	default:
		return !current
	}
}

func onOff(what string, enabled bool) string {
	if enabled {
		return what + " enabled"
	}
	return what + " disabled"
}
