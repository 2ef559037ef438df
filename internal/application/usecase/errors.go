package usecase

import "errors"

// Invariant violations. Operations returning one of these have not touched the tree.
var (
	ErrNilNode            = errors.New("node is required")
	ErrNotMovable         = errors.New("only containers and views can be moved")
	ErrNotSplittable      = errors.New("only workspaces, containers and views can be split")
	ErrNotSwappable       = errors.New("only containers and views can be swapped")
	ErrAncestorSwap       = errors.New("cannot swap ancestor and descendant")
	ErrFloatingSwap       = errors.New("swapping floating containers is not supported")
	ErrInvalidDestination = errors.New("invalid destination")
	ErrInvalidDirection   = errors.New("invalid direction")
	ErrInvalidLayout      = errors.New("invalid layout")
	ErrNotWorkspace       = errors.New("node is not a workspace")
	ErrNotOutput          = errors.New("node is not an output")
	ErrNotView            = errors.New("node is not a view")
	ErrDetached           = errors.New("node is not attached to the tree")
	ErrWorkspaceExists    = errors.New("workspace already exists")
)

// ErrUnexpectedNode reports a tree shape a walk should never meet. It points at
// an earlier invariant breach rather than at the current call.
var ErrUnexpectedNode = errors.New("unexpected node in tree walk")
