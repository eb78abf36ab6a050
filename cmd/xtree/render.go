package main

import (
	"fmt"
	"io"

	"github.com/benz9527/xtree/lib/tree"
)

// to control the print routine
type branch int

const (
	rootBranch branch = iota
	leftBranch
	rightBranch
)

// treeView reads a tree by its read-only handles.
type treeView[N any] struct {
	isNil func(N) bool
	left  func(N) N
	right func(N) N
	label func(N) string
}

var avlView = treeView[tree.AVLNode[int64]]{
	isNil: func(n tree.AVLNode[int64]) bool { return n == nil },
	left:  func(n tree.AVLNode[int64]) tree.AVLNode[int64] { return n.Left() },
	right: func(n tree.AVLNode[int64]) tree.AVLNode[int64] { return n.Right() },
	label: func(n tree.AVLNode[int64]) string {
		return fmt.Sprintf("%d h%d %+d", n.Key(), n.Height(), n.BalanceFactor())
	},
}

var rbView = treeView[tree.RBNode[int64]]{
	isNil: func(n tree.RBNode[int64]) bool { return n == nil },
	left:  func(n tree.RBNode[int64]) tree.RBNode[int64] { return n.Left() },
	right: func(n tree.RBNode[int64]) tree.RBNode[int64] { return n.Right() },
	label: func(n tree.RBNode[int64]) string {
		return fmt.Sprintf("%d %s", n.Key(), n.Color())
	},
}

// print renders the tree rotated to the left, the right subtree on top.
// Returns the maximum depth of the tree.
func (v treeView[N]) print(w io.Writer, n N, prefix string, br branch) int {
	if v.isNil(n) {
		return 0
	}
	rd, ld := 0, 0
	if r := v.right(n); !v.isNil(r) {
		t := "       "
		if br == leftBranch {
			t = "|      "
		}
		rd = v.print(w, r, prefix+t, rightBranch)
	}
	switch br {
	case rootBranch:
		_, _ = fmt.Fprintf(w, "%s|------+ ", prefix)
	case leftBranch:
		_, _ = fmt.Fprintf(w, "%s\\------+ ", prefix)
	case rightBranch:
		_, _ = fmt.Fprintf(w, "%s/------+ ", prefix)
	}
	_, _ = fmt.Fprintln(w, v.label(n))
	if l := v.left(n); !v.isNil(l) {
		t := "       "
		if br == rightBranch {
			t = "|      "
		}
		ld = v.print(w, l, prefix+t, leftBranch)
	}
	return 1 + max(ld, rd)
}
