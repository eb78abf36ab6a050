package tree

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/benz9527/xtree/lib/infra"
)

// Tree rule validation utilities. They only read the public node
// handles, all violations found are combined into one error.

// OrderViolationValidate checks the in-order keys are strictly
// ascending (descending for a WithDesc tree) and the count matches Len.
func OrderViolationValidate[K infra.OrderedKey](tree Tree[K]) error {
	cmp := infra.AscOrderedKeyCompare[K]
	if d, ok := tree.(interface{ isDescending() bool }); ok && d.isDescending() {
		cmp = infra.DescOrderedKeyCompare[K]
	}

	var (
		merr  error
		prev  K
		count int64
	)
	for key := range tree.All() {
		if count > 0 && cmp(prev, key) >= 0 {
			merr = multierr.Append(merr, infra.NewErrorStack(
				fmt.Sprintf("bst order violation, key %v after %v", key, prev),
			))
		}
		prev = key
		count++
	}
	if count != tree.Len() {
		merr = multierr.Append(merr, infra.NewErrorStack(
			fmt.Sprintf("bst count violation, traversed %d but len %d", count, tree.Len()),
		))
	}
	return merr
}

// HeightViolationValidate checks the cached height of every node and
// the AVL balance |height(left) - height(right)| <= 1.
func HeightViolationValidate[K infra.OrderedKey](tree AVLTree[K]) error {
	var merr error
	var height func(n AVLNode[K]) int
	height = func(n AVLNode[K]) int {
		if n == nil {
			return 0
		}
		lh, rh := height(n.Left()), height(n.Right())
		if h := 1 + max(lh, rh); h != n.Height() {
			merr = multierr.Append(merr, infra.NewErrorStack(
				fmt.Sprintf("avl height violation, key %v cached %d but actual %d", n.Key(), n.Height(), h),
			))
		}
		if bf := lh - rh; bf > 1 || bf < -1 {
			merr = multierr.Append(merr, infra.NewErrorStack(
				fmt.Sprintf("avl balance violation, key %v balance factor %d", n.Key(), bf),
			))
		}
		return 1 + max(lh, rh)
	}
	height(tree.Root())
	return merr
}

// RedViolationValidate checks that a red node does not have a red child.
// Inorder traversal by an explicit stack.
func RedViolationValidate[K infra.OrderedKey](tree RBTree[K]) error {
	var merr error
	stack := make([]RBNode[K], 0, 32)
	defer func() {
		clear(stack)
	}()

	for aux := tree.Root(); aux != nil; aux = aux.Left() {
		stack = append(stack, aux)
	}
	for size := len(stack); size > 0; size = len(stack) {
		aux := stack[size-1]
		stack = stack[:size-1]
		if aux.Color() == Red {
			if l := aux.Left(); l != nil && l.Color() == Red {
				merr = multierr.Append(merr, infra.NewErrorStack(
					fmt.Sprintf("rbtree red violation, red key %v has red left child %v", aux.Key(), l.Key()),
				))
			}
			if r := aux.Right(); r != nil && r.Color() == Red {
				merr = multierr.Append(merr, infra.NewErrorStack(
					fmt.Sprintf("rbtree red violation, red key %v has red right child %v", aux.Key(), r.Key()),
				))
			}
		}
		for aux = aux.Right(); aux != nil; aux = aux.Left() {
			stack = append(stack, aux)
		}
	}
	return merr
}

/*
<X> is a RED node.
[X] is a BLACK node (or NIL).

	        [13]
			/  \
		 <8>    [15]
		 / \    /  \
	  [6] [11] [14] [17]
	  /              /
	<1>            <16>

Each nil leaf to root node black depth are equal.
The root is black.
*/
func BlackViolationValidate[K infra.OrderedKey](tree RBTree[K]) error {
	root := tree.Root()
	if root == nil {
		return nil
	}

	var merr error
	if root.Color() != Black {
		merr = multierr.Append(merr, infra.NewErrorStack(
			fmt.Sprintf("rbtree root violation, root key %v is red", root.Key()),
		))
	}
	var blackHeight func(n RBNode[K]) int
	blackHeight = func(n RBNode[K]) int {
		if n == nil {
			return 1
		}
		lh, rh := blackHeight(n.Left()), blackHeight(n.Right())
		if lh != rh {
			merr = multierr.Append(merr, infra.NewErrorStack(
				fmt.Sprintf("rbtree black violation, key %v left black height %d but right %d", n.Key(), lh, rh),
			))
		}
		if n.Color() == Black {
			return 1 + max(lh, rh)
		}
		return max(lh, rh)
	}
	blackHeight(root)
	return merr
}

func ValidateAVL[K infra.OrderedKey](tree AVLTree[K]) error {
	return multierr.Combine(
		OrderViolationValidate[K](tree),
		HeightViolationValidate[K](tree),
	)
}

func ValidateRB[K infra.OrderedKey](tree RBTree[K]) error {
	return multierr.Combine(
		OrderViolationValidate[K](tree),
		RedViolationValidate[K](tree),
		BlackViolationValidate[K](tree),
	)
}
