package entity

import (
	"fmt"
	"strings"
)

// Layout describes how a node arranges its children.
type Layout int

const (
	LayoutNone Layout = iota
	LayoutHorizontal
	LayoutVertical
	LayoutTabbed
	LayoutStacked
	LayoutFloating
)

func (l Layout) String() string {
	switch l {
	case LayoutNone:
		return "none"
	case LayoutHorizontal:
		return "splith"
	case LayoutVertical:
		return "splitv"
	case LayoutTabbed:
		return "tabbed"
	case LayoutStacked:
		return "stacking"
	case LayoutFloating:
		return "floating"
	default:
		return fmt.Sprintf("Layout(%d)", int(l))
	}
}

// IsTabbedOrStacked reports whether l shows one child at a time.
func (l Layout) IsTabbedOrStacked() bool {
	return l == LayoutTabbed || l == LayoutStacked
}

// ParseLayout parses the textual layout names used by configuration and scenarios.
func ParseLayout(s string) (Layout, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return LayoutNone, nil
	case "splith", "horizontal", "h":
		return LayoutHorizontal, nil
	case "splitv", "vertical", "v":
		return LayoutVertical, nil
	case "tabbed", "t":
		return LayoutTabbed, nil
	case "stacking", "stacked", "s":
		return LayoutStacked, nil
	case "floating":
		return LayoutFloating, nil
	default:
		return LayoutNone, fmt.Errorf("unknown layout: %q", s)
	}
}

// LayoutForDirection returns the split layout whose axis matches dir.
func LayoutForDirection(dir Direction) Layout {
	if dir.IsHorizontal() {
		return LayoutHorizontal
	}
	return LayoutVertical
}

// IsParallel reports whether moving in dir travels along the axis of layout.
// Tabbed groups count as horizontal and stacked groups as vertical.
func IsParallel(layout Layout, dir Direction) bool {
	switch layout {
	case LayoutHorizontal, LayoutTabbed:
		return dir == DirLeft || dir == DirRight
	case LayoutVertical, LayoutStacked:
		return dir == DirUp || dir == DirDown
	default:
		return false
	}
}

// Direction is a movement or focus direction.
type Direction int

const (
	DirLeft Direction = iota
	DirRight
	DirUp
	DirDown
	DirParent
	DirChild
)

func (d Direction) String() string {
	switch d {
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirParent:
		return "parent"
	case DirChild:
		return "child"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// ParseDirection parses a direction name.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left":
		return DirLeft, nil
	case "right":
		return DirRight, nil
	case "up":
		return DirUp, nil
	case "down":
		return DirDown, nil
	case "parent":
		return DirParent, nil
	case "child":
		return DirChild, nil
	default:
		return DirLeft, fmt.Errorf("unknown direction: %q", s)
	}
}

// IsCardinal reports whether d is left, right, up or down.
func (d Direction) IsCardinal() bool {
	return d >= DirLeft && d <= DirDown
}

// IsHorizontal reports whether d is left or right.
func (d Direction) IsHorizontal() bool {
	return d == DirLeft || d == DirRight
}

// Offset is the index delta when stepping in d: -1 for left/up, +1 for right/down.
func (d Direction) Offset() int {
	if d == DirLeft || d == DirUp {
		return -1
	}
	return 1
}

// Invert returns the opposite cardinal direction.
func (d Direction) Invert() Direction {
	switch d {
	case DirLeft:
		return DirRight
	case DirRight:
		return DirLeft
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	default:
		return d
	}
}

// WrapPolicy controls what happens when a move or focus change hits the edge
// of its container.
type WrapPolicy int

const (
	WrapDisabled WrapPolicy = iota
	WrapEnabled
	WrapForced
)

func (w WrapPolicy) String() string {
	switch w {
	case WrapEnabled:
		return "yes"
	case WrapForced:
		return "force"
	default:
		return "no"
	}
}

// ParseWrapPolicy accepts the sway-style spellings (no/yes/force).
func ParseWrapPolicy(s string) (WrapPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "no", "false", "disabled":
		return WrapDisabled, nil
	case "yes", "true", "enabled":
		return WrapEnabled, nil
	case "force", "forced":
		return WrapForced, nil
	default:
		return WrapDisabled, fmt.Errorf("unknown focus wrapping policy: %q", s)
	}
}

// ResizeEdge names the edge a resize delta is applied to.
type ResizeEdge int

const (
	EdgeTop ResizeEdge = iota
	EdgeBottom
	EdgeLeft
	EdgeRight
)

// ParseResizeEdge parses an edge name.
func ParseResizeEdge(s string) (ResizeEdge, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "top", "up":
		return EdgeTop, nil
	case "bottom", "down":
		return EdgeBottom, nil
	case "left":
		return EdgeLeft, nil
	case "right":
		return EdgeRight, nil
	default:
		return EdgeTop, fmt.Errorf("unknown edge: %q", s)
	}
}

// Rect is a rectangle in global layout coordinates.
type Rect struct {
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// Center returns the center point of the rectangle.
func (r Rect) Center() (cx, cy float64) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// ClosestPoint returns the point inside r closest to (x, y).
func (r Rect) ClosestPoint(x, y float64) (float64, float64) {
	return clamp(x, r.X, r.X+r.Width), clamp(y, r.Y, r.Y+r.Height)
}

func clamp(v, minVal, maxVal float64) float64 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}
