package tree

import (
	"github.com/benz9527/xtree/lib/infra"
)

// AVL properties:
// p1. Every node caches its height, a nil child is 0 and a leaf is 1.
// p2. For every node, |height(left) - height(right)| <= 1.
// So the height is at most about 1.44 * log2(n+2).

type avlBalancer[K infra.OrderedKey] struct{}

func (avlBalancer[K]) newLeaf(key K) *node[K] {
	return &node[K]{
		key:    key,
		height: 1,
	}
}

// rotate keeps the cached heights, the node moved down first.
func (avlBalancer[K]) rotate(t *bst[K], x *node[K], dir Direction) *node[K] {
	y := t.rotate(x, dir)
	x.updateHeight()
	y.updateHeight()
	return y
}

/*
Recompute the height of X then restore |bf(X)| <= 1.

b1: bf(X) == +2, L is left-heavy or even (LL), right rotate X.

	      X                L
	     / \              / \
	    L   R   ====>   Ll   X
	   / \                  / \
	 Ll   Lr              Lr   R

b2: bf(X) == +2, L is right-heavy (LR), left rotate L then right rotate X.

	      X              X               Lr
	     / \            / \             /  \
	    L   R  ====>   Lr  R  ====>    L    X
	     \            /                      \
	     Lr          L                        R

b3: bf(X) == -2, mirror of b1 (RR), left rotate X.

b4: bf(X) == -2, mirror of b2 (RL), right rotate R then left rotate X.
*/
func (b avlBalancer[K]) rebalance(t *bst[K], x *node[K]) *node[K] {
	x.updateHeight()
	switch bf := x.balanceFactor(); {
	case bf > 1:
		if /* b2 */ x.left.balanceFactor() < 0 {
			x.left = b.rotate(t, x.left, Left)
		}
		/* b1 */
		return b.rotate(t, x, Right)
	case bf < -1:
		if /* b4 */ x.right.balanceFactor() > 0 {
			x.right = b.rotate(t, x.right, Right)
		}
		/* b3 */
		return b.rotate(t, x, Left)
	default:
	}
	return x
}

// One rotation at most. After the rotation the subtree height is
// the same as before the insertion, nothing above can be unbalanced.
// Unchanged height stops the walk as well.
func (b avlBalancer[K]) afterInsert(t *bst[K], path []*node[K]) {
	for i := len(path) - 2; i >= 0; i-- {
		x := path[i]
		h := x.height
		if top := b.rebalance(t, x); top != x {
			t.replace(parentAt(path, i), x, top)
			return
		}
		if x.height == h {
			return
		}
	}
}

// Removal may shrink the height repeatedly, so every ancestor
// up to the root is visited.
func (b avlBalancer[K]) afterDelete(t *bst[K], path []*node[K], _ Direction, _, _ *node[K]) {
	for i := len(path) - 1; i >= 0; i-- {
		x := path[i]
		if top := b.rebalance(t, x); top != x {
			t.replace(parentAt(path, i), x, top)
		}
	}
}

type avlTree[K infra.OrderedKey] struct {
	bst[K]
}

func (t *avlTree[K]) Root() AVLNode[K] {
	if t.root == nil {
		return nil
	}
	return (*avlNode[K])(t.root)
}

func NewAVLTree[K infra.OrderedKey](opts ...TreeOption[K]) AVLTree[K] {
	t := &avlTree[K]{}
	t.init(avlBalancer[K]{}, opts...)
	return t
}
