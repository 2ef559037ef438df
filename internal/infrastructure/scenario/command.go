package scenario

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bnema/tilewm/internal/domain/entity"
)

// Verb names a scenario command.
type Verb string

const (
	VerbFocus      Verb = "focus"
	VerbMove       Verb = "move"
	VerbMoveTo     Verb = "move-to"
	VerbMoveToWS   Verb = "move-to-workspace"
	VerbMoveWS     Verb = "move-workspace"
	VerbSwap       Verb = "swap"
	VerbSplit      Verb = "split"
	VerbFullscreen Verb = "fullscreen"
	VerbClose      Verb = "kill"
	VerbMap        Verb = "map"
	VerbResize     Verb = "resize"
	VerbUrgent     Verb = "urgent"
	VerbWorkspace  Verb = "workspace"
)

// Toggle is the argument of on/off commands.
type Toggle int

const (
	ToggleFlip Toggle = iota
	ToggleEnable
	ToggleDisable
)

// Command is a parsed script line. Target is the node named in a leading
// [name] criteria block; empty means the focused node.
type Command struct {
	Raw    string
	Target string
	Verb   Verb

	Direction    entity.Direction
	HasDirection bool
	Layout       entity.Layout
	Edge         entity.ResizeEdge
	Amount       float64
	Toggle       Toggle
	// Name is the destination node, workspace, output or new view name.
	Name  string
	AppID string
}

var errEmptyCommand = errors.New("empty command")

// ParseCommand parses sway-flavoured command syntax:
//
//	[B] focus | focus left|right|up|down|parent|child
//	move left|right|up|down
//	move container to workspace <name> | move to <node>
//	move workspace to output <name>
//	swap container with <name>
//	split horizontal|vertical|tabbed|stacking (also splith, splitv, splitt, splits)
//	fullscreen [enable|disable|toggle]
//	kill
//	map <name> [app_id]
//	resize top|bottom|left|right <amount>
//	urgent enable|disable
//	workspace <name>
func ParseCommand(line string) (Command, error) {
	cmd := Command{Raw: line}
	rest := strings.TrimSpace(line)
	if rest == "" {
		return cmd, errEmptyCommand
	}

	if strings.HasPrefix(rest, "[") {
		end := strings.Index(rest, "]")
		if end < 0 {
			return cmd, fmt.Errorf("%q: unterminated criteria", line)
		}
		cmd.Target = strings.TrimSpace(rest[1:end])
		if cmd.Target == "" {
			return cmd, fmt.Errorf("%q: empty criteria", line)
		}
		rest = strings.TrimSpace(rest[end+1:])
	}

	words := strings.Fields(rest)
	if len(words) == 0 {
		return cmd, fmt.Errorf("%q: %w", line, errEmptyCommand)
	}
	verb, args := words[0], words[1:]

	var err error
	switch verb {
	case "focus":
		err = cmd.parseFocus(args)
	case "move":
		err = cmd.parseMove(args)
	case "swap":
		if len(args) != 3 || args[0] != "container" || args[1] != "with" {
			return cmd, fmt.Errorf("%q: usage: swap container with <name>", line)
		}
		cmd.Verb, cmd.Name = VerbSwap, args[2]
	case "split", "splith", "splitv", "splitt", "splits":
		err = cmd.parseSplit(verb, args)
	case "fullscreen":
		cmd.Verb = VerbFullscreen
		cmd.Toggle, err = parseToggle(args, true)
	case "kill":
		cmd.Verb = VerbClose
		if len(args) != 0 {
			err = errors.New("kill takes no arguments")
		}
	case "map":
		if len(args) < 1 || len(args) > 2 {
			return cmd, fmt.Errorf("%q: usage: map <name> [app_id]", line)
		}
		cmd.Verb, cmd.Name = VerbMap, args[0]
		if len(args) == 2 {
			cmd.AppID = args[1]
		}
	case "resize":
		err = cmd.parseResize(args)
	case "urgent":
		cmd.Verb = VerbUrgent
		cmd.Toggle, err = parseToggle(args, false)
	case "workspace":
		if len(args) != 1 {
			return cmd, fmt.Errorf("%q: usage: workspace <name>", line)
		}
		cmd.Verb, cmd.Name = VerbWorkspace, args[0]
	default:
		return cmd, fmt.Errorf("%q: unknown command %q", line, verb)
	}
	if err != nil {
		return cmd, fmt.Errorf("%q: %w", line, err)
	}
	return cmd, nil
}

func (c *Command) parseFocus(args []string) error {
	c.Verb = VerbFocus
	switch len(args) {
	case 0:
		if c.Target == "" {
			return errors.New("focus needs a direction or a [name] criteria")
		}
		return nil
	case 1:
		dir, err := entity.ParseDirection(args[0])
		if err != nil {
			return err
		}
		c.Direction, c.HasDirection = dir, true
		return nil
	default:
		return errors.New("usage: focus [direction]")
	}
}

func (c *Command) parseMove(args []string) error {
	switch {
	case len(args) == 1:
		dir, err := entity.ParseDirection(args[0])
		if err != nil {
			return err
		}
		if !dir.IsCardinal() {
			return fmt.Errorf("cannot move %s", dir)
		}
		c.Verb, c.Direction, c.HasDirection = VerbMove, dir, true
	case len(args) == 2 && args[0] == "to":
		c.Verb, c.Name = VerbMoveTo, args[1]
	case len(args) == 4 && args[0] == "container" && args[1] == "to" && args[2] == "workspace":
		c.Verb, c.Name = VerbMoveToWS, args[3]
	case len(args) == 4 && args[0] == "workspace" && args[1] == "to" && args[2] == "output":
		c.Verb, c.Name = VerbMoveWS, args[3]
	default:
		return errors.New("usage: move <direction> | move to <node> | move container to workspace <name> | move workspace to output <name>")
	}
	return nil
}

func (c *Command) parseSplit(verb string, args []string) error {
	c.Verb = VerbSplit
	arg := strings.TrimPrefix(verb, "split")
	if arg == "" {
		if len(args) != 1 {
			return errors.New("usage: split horizontal|vertical|tabbed|stacking")
		}
		arg = args[0]
	} else if len(args) != 0 {
		return fmt.Errorf("%s takes no arguments", verb)
	}

	switch arg {
	case "t":
		arg = "tabbed"
	case "s":
		arg = "stacking"
	}
	l, err := entity.ParseLayout(arg)
	if err != nil {
		return err
	}
	if l == entity.LayoutNone || l == entity.LayoutFloating {
		return fmt.Errorf("cannot split %s", arg)
	}
	c.Layout = l
	return nil
}

func (c *Command) parseResize(args []string) error {
	c.Verb = VerbResize
	if len(args) != 2 {
		return errors.New("usage: resize <edge> <amount>")
	}
	edge, err := entity.ParseResizeEdge(args[0])
	if err != nil {
		return err
	}
	amount, err := strconv.ParseFloat(strings.TrimSuffix(args[1], "px"), 64)
	if err != nil {
		return fmt.Errorf("invalid amount %q", args[1])
	}
	c.Edge, c.Amount = edge, amount
	return nil
}

func parseToggle(args []string, allowFlip bool) (Toggle, error) {
	if len(args) == 0 {
		if allowFlip {
			return ToggleFlip, nil
		}
		return ToggleFlip, errors.New("expected enable or disable")
	}
	if len(args) > 1 {
		return ToggleFlip, errors.New("too many arguments")
	}
	switch args[0] {
	case "enable", "on", "true", "yes":
		return ToggleEnable, nil
	case "disable", "off", "false", "no":
		return ToggleDisable, nil
	case "toggle":
		if allowFlip {
			return ToggleFlip, nil
		}
	}
	return ToggleFlip, fmt.Errorf("unexpected argument %q", args[0])
}
