package entity

import (
	"cmp"
	"math"
	"slices"
	"strconv"
)

// CompareWorkspaceNames orders workspace names: names starting with a digit
// sort by their leading integer and before every other name. Two non-numeric
// names compare equal so a stable sort keeps their relative order.
func CompareWorkspaceNames(a, b string) int {
	an, aNumeric := leadingNumber(a)
	bn, bNumeric := leadingNumber(b)
	switch {
	case aNumeric && bNumeric:
		return cmp.Compare(an, bn)
	case aNumeric:
		return -1
	case bNumeric:
		return 1
	default:
		return 0
	}
}

// SortWorkspaces stable-sorts workspace nodes by name.
func SortWorkspaces(workspaces []*Node) {
	slices.SortStableFunc(workspaces, func(a, b *Node) int {
		return CompareWorkspaceNames(a.Name, b.Name)
	})
}

func leadingNumber(name string) (int64, bool) {
	end := 0
	for end < len(name) && name[end] >= '0' && name[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.ParseInt(name[:end], 10, 64)
	if err != nil {
		// only a range error is possible here
		return math.MaxInt64, true
	}
	return n, true
}
