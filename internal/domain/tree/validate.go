package tree

import (
	"errors"
	"fmt"

	"github.com/bnema/tilewm/internal/domain/entity"
)

// Validate checks structural invariants of the whole tree and returns every
// breach found, joined.
func (t *Tree) Validate() error {
	var errs []error
	seen := make(map[*entity.Node]*entity.Node)

	var visit func(n, parent *entity.Node)
	visit = func(n, parent *entity.Node) {
		if prev, ok := seen[n]; ok {
			errs = append(errs, fmt.Errorf("%s reachable from %s and %s", n, prev, parent))
			return
		}
		seen[n] = parent
		if n.IsDestroyed() {
			errs = append(errs, fmt.Errorf("%s is destroyed but still attached", n))
		}
		if n.Parent != parent {
			errs = append(errs, fmt.Errorf("%s has parent %s, expected %s", n, n.Parent, parent))
		}
		errs = append(errs, checkChildKinds(n)...)

		count := make(map[*entity.Node]int, len(n.Children))
		for _, c := range n.Children {
			count[c]++
			if count[c] == 2 {
				errs = append(errs, fmt.Errorf("%s lists %s more than once", n, c))
			}
		}
		for _, c := range n.Children {
			visit(c, n)
		}
		if n.Type == entity.NodeWorkspace {
			errs = append(errs, checkWorkspace(n)...)
			if floating := n.WorkspaceInfo().Floating; floating != nil {
				visit(floating, n)
			}
		}
	}
	visit(t.root, nil)

	return errors.Join(errs...)
}

func checkChildKinds(n *entity.Node) []error {
	var errs []error
	for _, c := range n.Children {
		var ok bool
		switch n.Type {
		case entity.NodeRoot:
			ok = c.Type == entity.NodeOutput
		case entity.NodeOutput:
			ok = c.Type == entity.NodeWorkspace
		case entity.NodeWorkspace, entity.NodeContainer:
			ok = c.IsContainerOrView()
		case entity.NodeView:
			ok = false
		}
		if !ok {
			errs = append(errs, fmt.Errorf("%s cannot hold %s", n, c))
		}
	}
	return errs
}

func checkWorkspace(ws *entity.Node) []error {
	var errs []error
	info := ws.WorkspaceInfo()
	if info.Floating == nil {
		errs = append(errs, fmt.Errorf("%s has no floating container", ws))
	} else if info.Floating.Layout != entity.LayoutFloating {
		errs = append(errs, fmt.Errorf("%s floating container has layout %s", ws, info.Floating.Layout))
	}

	var fullscreen []*entity.Node
	ws.Walk(func(n *entity.Node) bool {
		if n != ws && n.Fullscreen {
			fullscreen = append(fullscreen, n)
		}
		return true
	})
	if len(fullscreen) > 1 {
		errs = append(errs, fmt.Errorf("%s has %d fullscreen nodes", ws, len(fullscreen)))
	}
	switch {
	case len(fullscreen) == 1 && info.Fullscreen != fullscreen[0]:
		errs = append(errs, fmt.Errorf("%s fullscreen slot is %s, expected %s", ws, info.Fullscreen, fullscreen[0]))
	case len(fullscreen) == 0 && info.Fullscreen != nil:
		errs = append(errs, fmt.Errorf("%s fullscreen slot points at %s outside the workspace", ws, info.Fullscreen))
	}
	return errs
}
