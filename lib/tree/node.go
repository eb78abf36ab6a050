package tree

import (
	"github.com/benz9527/xtree/lib/infra"
)

// node is the shape shared by both variants. Only one of the
// payloads is meaningful, the height for the AVL tree and the
// color for the rbtree.
// There is no parent link, the ancestors are tracked by the
// path recorded while descending.
type node[K infra.OrderedKey] struct {
	left   *node[K]
	right  *node[K]
	key    K
	height int32
	color  RBColor
}

func (n *node[K]) child(dir Direction) *node[K] {
	if dir == Left {
		return n.left
	}
	return n.right
}

func (n *node[K]) setChild(dir Direction, c *node[K]) {
	if dir == Left {
		n.left = c
		return
	}
	n.right = c
}

// The nil leaf is black.
func (n *node[K]) isBlack() bool {
	return n == nil || n.color == Black
}

func (n *node[K]) isRed() bool {
	return n != nil && n.color == Red
}

func (n *node[K]) heightOf() int32 {
	if n == nil {
		return 0
	}
	return n.height
}

func (n *node[K]) updateHeight() {
	n.height = 1 + max(n.left.heightOf(), n.right.heightOf())
}

func (n *node[K]) balanceFactor() int32 {
	if n == nil {
		return 0
	}
	return n.left.heightOf() - n.right.heightOf()
}

// dirOf returns the slot of child c under parent p.
func dirOf[K infra.OrderedKey](p, c *node[K]) Direction {
	if p.left == c {
		return Left
	}
	return Right
}

type avlNode[K infra.OrderedKey] node[K]

func (n *avlNode[K]) Key() K {
	return n.key
}

func (n *avlNode[K]) Height() int {
	return int(n.height)
}

func (n *avlNode[K]) BalanceFactor() int {
	return int((*node[K])(n).balanceFactor())
}

func (n *avlNode[K]) Left() AVLNode[K] {
	if n == nil || n.left == nil {
		return nil
	}
	return (*avlNode[K])(n.left)
}

func (n *avlNode[K]) Right() AVLNode[K] {
	if n == nil || n.right == nil {
		return nil
	}
	return (*avlNode[K])(n.right)
}

type rbNode[K infra.OrderedKey] node[K]

func (n *rbNode[K]) Key() K {
	return n.key
}

func (n *rbNode[K]) Color() RBColor {
	return n.color
}

func (n *rbNode[K]) Left() RBNode[K] {
	if n == nil || n.left == nil {
		return nil
	}
	return (*rbNode[K])(n.left)
}

func (n *rbNode[K]) Right() RBNode[K] {
	if n == nil || n.right == nil {
		return nil
	}
	return (*rbNode[K])(n.right)
}
