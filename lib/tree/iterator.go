package tree

import (
	"iter"

	"github.com/benz9527/xtree/lib/infra"
)

// inorder walks the subtree by an explicit stack. Backward walks
// the mirror order. The stack is allocated per range, so a sequence
// is able to be ranged over again.
func inorder[K infra.OrderedKey](root *node[K], backward bool) iter.Seq[K] {
	first, second := Left, Right
	if backward {
		first, second = Right, Left
	}
	return func(yield func(K) bool) {
		stack := make([]*node[K], 0, 32)
		defer func() {
			clear(stack)
		}()

		for aux := root; aux != nil; aux = aux.child(first) {
			stack = append(stack, aux)
		}
		for size := len(stack); size > 0; size = len(stack) {
			aux := stack[size-1]
			stack = stack[:size-1]
			if !yield(aux.key) {
				return
			}
			for aux = aux.child(second); aux != nil; aux = aux.child(first) {
				stack = append(stack, aux)
			}
		}
	}
}

// All binds the root at every range, not at the call.
func (t *bst[K]) All() iter.Seq[K] {
	return func(yield func(K) bool) {
		inorder[K](t.root, false)(yield)
	}
}

func (t *bst[K]) Backward() iter.Seq[K] {
	return func(yield func(K) bool) {
		inorder[K](t.root, true)(yield)
	}
}

// Inorder traversal to implement the DFS.
func (t *bst[K]) Foreach(action func(idx int64, key K) bool) {
	idx := int64(0)
	for key := range t.All() {
		if !action(idx, key) {
			return
		}
		idx++
	}
}
