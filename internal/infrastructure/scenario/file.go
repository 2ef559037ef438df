// Package scenario reads YAML scenario files describing outputs, workspaces
// and window trees, and replays command scripts against them.
package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/bnema/tilewm/internal/domain/entity"
)

// File is a parsed scenario.
type File struct {
	Name    string       `yaml:"name"`
	Layout  LayoutSpec   `yaml:"layout"`
	Outputs []OutputSpec `yaml:"outputs"`
	// Focus lists node names focused in order; the last one ends up focused.
	Focus []string `yaml:"focus"`
	Steps []Step   `yaml:"steps"`
}

// LayoutSpec overrides the configured layout preferences. Empty fields keep
// the configured value.
type LayoutSpec struct {
	DefaultLayout      string `yaml:"default_layout"`
	DefaultOrientation string `yaml:"default_orientation"`
	FocusWrapping      string `yaml:"focus_wrapping"`
}

// OutputSpec describes one output and its workspaces.
type OutputSpec struct {
	Name       string          `yaml:"name"`
	Rect       entity.Rect     `yaml:"rect"`
	Workspaces []WorkspaceSpec `yaml:"workspaces"`
}

// WorkspaceSpec describes a workspace and its tiling children.
type WorkspaceSpec struct {
	Name     string     `yaml:"name"`
	Layout   string     `yaml:"layout"`
	Children []NodeSpec `yaml:"children"`
}

// NodeSpec is a view or a container. A bare string is a view name.
type NodeSpec struct {
	Name       string     `yaml:"name"`
	AppID      string     `yaml:"app_id"`
	Layout     string     `yaml:"layout"`
	Urgent     bool       `yaml:"urgent"`
	Fullscreen bool       `yaml:"fullscreen"`
	Children   []NodeSpec `yaml:"children"`
}

// UnmarshalYAML accepts either a scalar view name or a mapping.
func (n *NodeSpec) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		n.Name = value.Value
		return nil
	}
	type plain NodeSpec
	return value.Decode((*plain)(n))
}

// IsContainer reports whether the spec describes a container.
func (n NodeSpec) IsContainer() bool {
	return n.Layout != "" || len(n.Children) > 0
}

// Step is one command of the script with optional expectations.
type Step struct {
	Run string `yaml:"run"`
	// Expect maps workspace names to their compact tree description.
	Expect map[string]string `yaml:"expect"`
	// Focused is the expected name of the focused node after the step.
	Focused string `yaml:"focused"`
	// Error is a substring the step's error must contain.
	Error string `yaml:"error"`
}

// UnmarshalYAML accepts either a bare command or a mapping.
func (s *Step) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		s.Run = value.Value
		return nil
	}
	type plain Step
	return value.Decode((*plain)(s))
}

// Load reads and validates a scenario file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse decodes and validates scenario YAML. Unknown top-level fields are rejected.
func Parse(data []byte) (*File, error) {
	f := &File{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("invalid scenario yaml: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// Validate checks names and enum values before anything is built.
func (f *File) Validate() error {
	var errs []error
	if len(f.Outputs) == 0 {
		errs = append(errs, errors.New("at least one output is required"))
	}

	names := map[string]bool{}
	claim := func(kind, name string) {
		if name == "" {
			return
		}
		if names[name] {
			errs = append(errs, fmt.Errorf("duplicate name %q (%s)", name, kind))
		}
		names[name] = true
	}

	for _, out := range f.Outputs {
		if out.Name == "" {
			errs = append(errs, errors.New("output without a name"))
		}
		if out.Rect.Width <= 0 || out.Rect.Height <= 0 {
			errs = append(errs, fmt.Errorf("output %q needs a positive size", out.Name))
		}
		claim("output", out.Name)
		for _, ws := range out.Workspaces {
			if ws.Name == "" {
				errs = append(errs, fmt.Errorf("workspace without a name on output %q", out.Name))
			}
			claim("workspace", ws.Name)
			if l, err := entity.ParseLayout(ws.Layout); err != nil {
				errs = append(errs, fmt.Errorf("workspace %q: %w", ws.Name, err))
			} else if l == entity.LayoutFloating {
				errs = append(errs, fmt.Errorf("workspace %q cannot be floating", ws.Name))
			}
			errs = append(errs, validateNodes(ws.Children, claim)...)
		}
	}

	if f.Layout.DefaultLayout != "" {
		if l, err := entity.ParseLayout(f.Layout.DefaultLayout); err != nil {
			errs = append(errs, fmt.Errorf("layout.default_layout: %w", err))
		} else if l == entity.LayoutFloating {
			errs = append(errs, errors.New("layout.default_layout cannot be floating"))
		}
	}
	if _, err := parseOrientation(f.Layout.DefaultOrientation); err != nil {
		errs = append(errs, fmt.Errorf("layout.default_orientation: %w", err))
	}
	if _, err := entity.ParseWrapPolicy(f.Layout.FocusWrapping); err != nil {
		errs = append(errs, fmt.Errorf("layout.focus_wrapping: %w", err))
	}

	for _, name := range f.Focus {
		if !names[name] {
			errs = append(errs, fmt.Errorf("focus names unknown node %q", name))
		}
	}
	for i, step := range f.Steps {
		if _, err := ParseCommand(step.Run); err != nil {
			errs = append(errs, fmt.Errorf("step %d: %w", i+1, err))
		}
	}
	return errors.Join(errs...)
}

func validateNodes(nodes []NodeSpec, claim func(kind, name string)) []error {
	var errs []error
	for _, n := range nodes {
		if n.IsContainer() {
			l, err := entity.ParseLayout(n.Layout)
			switch {
			case err != nil:
				errs = append(errs, fmt.Errorf("container %q: %w", n.Name, err))
			case l == entity.LayoutNone || l == entity.LayoutFloating:
				errs = append(errs, fmt.Errorf("container %q needs a tiling layout", n.Name))
			}
			if len(n.Children) == 0 {
				errs = append(errs, fmt.Errorf("container %q has no children", n.Name))
			}
			if n.Urgent {
				errs = append(errs, fmt.Errorf("container %q: only views can be urgent", n.Name))
			}
			claim("container", n.Name)
			errs = append(errs, validateNodes(n.Children, claim)...)
			continue
		}
		if n.Name == "" {
			errs = append(errs, errors.New("view without a name"))
		}
		claim("view", n.Name)
	}
	return errs
}

func parseOrientation(s string) (entity.Layout, error) {
	switch s {
	case "", "none":
		return entity.LayoutNone, nil
	case "horizontal":
		return entity.LayoutHorizontal, nil
	case "vertical":
		return entity.LayoutVertical, nil
	default:
		return entity.LayoutNone, fmt.Errorf("unknown orientation: %q", s)
	}
}
