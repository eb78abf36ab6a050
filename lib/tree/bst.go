package tree

import (
	"sync/atomic"

	"github.com/benz9527/xtree/lib/infra"
)

// balancer is the variant specific invariant repair.
// The core does the ordered descent and the structural rewiring,
// then hands over the ancestor path to repair bottom-up.
type balancer[K infra.OrderedKey] interface {
	newLeaf(key K) *node[K]
	// path runs from the root to the new leaf (inclusive).
	afterInsert(t *bst[K], path []*node[K])
	// path runs from the root to the parent of the spliced node y
	// (empty if y was the root). dir is the slot y was attached to and
	// x is the node which took over that slot (may be nil).
	afterDelete(t *bst[K], path []*node[K], dir Direction, y, x *node[K])
}

type bst[K infra.OrderedKey] struct {
	root         *node[K]
	count        int64
	keyCompare   infra.OrderedKeyComparator[K]
	balancer     balancer[K]
	listener     Listener[K]
	path         []*node[K] // Reused ancestor path.
	isDesc       bool
	isBorrowPred bool
}

func (t *bst[K]) Len() int64 {
	return atomic.LoadInt64(&t.count)
}

func (t *bst[K]) isDescending() bool {
	return t.isDesc
}

func (t *bst[K]) emit(ev Event[K]) {
	if t.listener != nil {
		t.listener.OnEvent(ev)
	}
}

// paint records the recolor only when the color changes.
func (t *bst[K]) paint(n *node[K], c RBColor) {
	if n == nil || n.color == c {
		return
	}
	n.color = c
	t.emit(Event[K]{Kind: EventRecolor, Key: n.key, Color: c})
}

// replace rebinds the slot of parent p which owned old to n.
// A nil parent means the root slot.
func (t *bst[K]) replace(p, old, n *node[K]) {
	if p == nil {
		t.root = n
		return
	}
	if p.left == old {
		p.left = n
	} else if p.right == old {
		p.right = n
	} else {
		// impossible run to here
		panic( /* debug assertion */ "[bst] replace a node which is not a child of parent")
	}
}

func parentAt[K infra.OrderedKey](path []*node[K], i int) *node[K] {
	if i <= 0 {
		return nil
	}
	return path[i-1]
}

func (t *bst[K]) releasePath(path []*node[K]) {
	clear(path)
	t.path = path[:0]
}

/*
		 |                         |
		 X                         Y
		/ \     leftRotate(X)     / \
	   L   Y    ============>    X   Yr
		  / \                   / \
		Yl   Yr                L   Yl
*/
func (t *bst[K]) leftRotate(x *node[K]) *node[K] {
	if x == nil || x.right == nil {
		// impossible run to here
		panic( /* debug assertion */ "[bst] left rotate node x is nil or x.right is nil")
	}
	y := x.right
	x.right, y.left = y.left, x
	t.emit(Event[K]{Kind: EventRotate, Key: x.key, Dir: Left})
	return y
}

/*
			 |                         |
			 Y                         X
			/ \     rightRotate(X)    / \
	       Yl  X    <============    Y   R
			  / \                   / \
			Yr   R                Yl   Yr
*/
func (t *bst[K]) rightRotate(x *node[K]) *node[K] {
	if x == nil || x.left == nil {
		// impossible run to here
		panic( /* debug assertion */ "[bst] right rotate node x is nil or x.left is nil")
	}
	y := x.left
	x.left, y.right = y.right, x
	t.emit(Event[K]{Kind: EventRotate, Key: x.key, Dir: Right})
	return y
}

// rotate moves x down to the dir side and returns the promoted
// subtree root. The caller reattaches the result.
func (t *bst[K]) rotate(x *node[K], dir Direction) *node[K] {
	switch dir {
	case Left:
		return t.leftRotate(x)
	case Right:
		return t.rightRotate(x)
	default:
	}
	// impossible run to here
	panic( /* debug assertion */ "[bst] unknown rotate direction")
}

func (t *bst[K]) search(key K) *node[K] {
	for aux := t.root; aux != nil; {
		res := t.keyCompare(key, aux.key)
		if /* equal */ res == 0 {
			return aux
		} else /* less */ if res < 0 {
			aux = aux.left
		} else /* greater */ {
			aux = aux.right
		}
	}
	return nil
}

func (t *bst[K]) Search(key K) (K, bool) {
	if x := t.search(key); x != nil {
		return x.key, true
	}
	var zero K
	return zero, false
}

func (t *bst[K]) Contains(key K) bool {
	return t.search(key) != nil
}

func (t *bst[K]) Min() (K, bool) {
	aux := t.root
	for ; aux != nil && aux.left != nil; aux = aux.left {
	}
	if aux == nil {
		var zero K
		return zero, false
	}
	return aux.key, true
}

func (t *bst[K]) Max() (K, bool) {
	aux := t.root
	for ; aux != nil && aux.right != nil; aux = aux.right {
	}
	if aux == nil {
		var zero K
		return zero, false
	}
	return aux.key, true
}

func (t *bst[K]) Insert(key K) (K, bool) {
	path := t.path[:0]
	for aux := t.root; aux != nil; {
		path = append(path, aux)
		res := t.keyCompare(key, aux.key)
		if /* duplicate */ res == 0 {
			t.releasePath(path)
			return aux.key, false
		} else /* less */ if res < 0 {
			aux = aux.left
		} else /* greater */ {
			aux = aux.right
		}
	}

	z := t.balancer.newLeaf(key)
	if n := len(path); n == 0 {
		t.root = z
	} else if p := path[n-1]; t.keyCompare(key, p.key) < 0 {
		p.left = z
	} else {
		p.right = z
	}
	path = append(path, z)
	atomic.AddInt64(&t.count, 1)
	t.emit(Event[K]{Kind: EventInsert, Key: key})

	t.balancer.afterInsert(t, path)
	t.releasePath(path)
	return key, true
}

func (t *bst[K]) Delete(key K) (K, bool) {
	path := t.path[:0]
	z := t.root
	for z != nil {
		res := t.keyCompare(key, z.key)
		if res == 0 {
			break
		}
		path = append(path, z)
		if res < 0 {
			z = z.left
		} else {
			z = z.right
		}
	}
	if z == nil {
		t.releasePath(path)
		var zero K
		return zero, false
	}
	return t.removeNode(z, path), true
}

func (t *bst[K]) DeleteMin() (K, bool) {
	if t.root == nil {
		var zero K
		return zero, false
	}
	path := t.path[:0]
	z := t.root
	for ; z.left != nil; z = z.left {
		path = append(path, z)
	}
	return t.removeNode(z, path), true
}

/*
d1: Z has no child, detach it from its parent.

d2: Z has only one child, the child takes over the slot of Z.

d3: Z has two children. Borrow the key of the succ S (the leftmost
of the right subtree) or the pred, then remove S instead.
S has no left child, so it enters d1 or d2.

	  |                    |
	  Z                    S
	 / \                  / \
	L  ..   copy(S, Z)   L  ..
		|   =========>       |
		P                    P
	   / \                  / \
	  S  ..                Sr  ..
	   \
	   Sr
*/
func (t *bst[K]) removeNode(z *node[K], path []*node[K]) K {
	removed := z.key
	y := z
	if /* d3 */ z.left != nil && z.right != nil {
		path = append(path, z)
		if t.isBorrowPred {
			for y = z.left; y.right != nil; y = y.right {
				path = append(path, y)
			}
		} else {
			for y = z.right; y.left != nil; y = y.left {
				path = append(path, y)
			}
		}
		z.key = y.key
	}

	// d1, d2
	x := y.left
	if x == nil {
		x = y.right
	}
	dir := Root
	if n := len(path); n > 0 {
		p := path[n-1]
		dir = dirOf(p, y)
		p.setChild(dir, x)
	} else {
		t.root = x
	}
	y.left, y.right = nil, nil
	atomic.AddInt64(&t.count, -1)
	t.emit(Event[K]{Kind: EventDelete, Key: removed})

	t.balancer.afterDelete(t, path, dir, y, x)
	t.releasePath(path)
	return removed
}

// Release drops every node iteratively. The tree is empty and
// reusable afterward.
func (t *bst[K]) Release() {
	aux := t.root
	t.root = nil
	if aux == nil {
		return
	}

	stack := make([]*node[K], 0, 64)
	defer func() {
		clear(stack)
	}()
	stack = append(stack, aux)
	for size := len(stack); size > 0; size = len(stack) {
		aux = stack[size-1]
		stack = stack[:size-1]
		if aux.left != nil {
			stack = append(stack, aux.left)
		}
		if aux.right != nil {
			stack = append(stack, aux.right)
		}
		aux.left, aux.right = nil, nil
	}
	atomic.StoreInt64(&t.count, 0)
	t.releasePath(t.path)
}

type TreeOption[K infra.OrderedKey] func(*bst[K])

// WithDesc sorts the keys in descending order.
func WithDesc[K infra.OrderedKey]() TreeOption[K] {
	return func(t *bst[K]) {
		t.isDesc = true
	}
}

// WithRemoveBorrowPred borrows the in-order pred instead of the
// succ when removing a node with two children.
func WithRemoveBorrowPred[K infra.OrderedKey]() TreeOption[K] {
	return func(t *bst[K]) {
		t.isBorrowPred = true
	}
}

func WithListener[K infra.OrderedKey](l Listener[K]) TreeOption[K] {
	return func(t *bst[K]) {
		if l == nil {
			return
		}
		switch prev := t.listener.(type) {
		case nil:
			t.listener = l
		case multiListener[K]:
			t.listener = append(prev, l)
		default:
			t.listener = multiListener[K]{prev, l}
		}
	}
}

func (t *bst[K]) init(b balancer[K], opts ...TreeOption[K]) {
	t.balancer = b
	for _, o := range opts {
		if o != nil {
			o(t)
		}
	}
	if t.isDesc {
		t.keyCompare = infra.DescOrderedKeyCompare[K]
	} else {
		t.keyCompare = infra.AscOrderedKeyCompare[K]
	}
	t.path = make([]*node[K], 0, 32)
}
