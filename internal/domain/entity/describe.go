package entity

import "strings"

// Describe renders a compact one-line form of a subtree, e.g. "H[A V[B C]]".
// Views print their name; other nodes print a layout letter and their children.
// Floating children are not included.
func Describe(n *Node) string {
	var b strings.Builder
	describe(&b, n)
	return b.String()
}

func describe(b *strings.Builder, n *Node) {
	if n == nil {
		b.WriteString("-")
		return
	}
	if n.Type == NodeView {
		b.WriteString(n.Name)
		return
	}
	b.WriteString(layoutLetter(n.Layout))
	b.WriteByte('[')
	for i, child := range n.Children {
		if i > 0 {
			b.WriteByte(' ')
		}
		describe(b, child)
	}
	b.WriteByte(']')
}

func layoutLetter(l Layout) string {
	switch l {
	case LayoutHorizontal:
		return "H"
	case LayoutVertical:
		return "V"
	case LayoutTabbed:
		return "T"
	case LayoutStacked:
		return "S"
	case LayoutFloating:
		return "F"
	default:
		return "N"
	}
}
