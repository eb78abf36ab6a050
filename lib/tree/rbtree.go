package tree

import (
	"github.com/benz9527/xtree/lib/infra"
)

// References:
// https://elixir.bootlin.com/linux/latest/source/lib/rbtree.c
// rbtree properties:
// https://en.wikipedia.org/wiki/Red%E2%80%93black_tree#Properties
// p1. Every node is either red or black.
// p2. All NIL nodes are considered black.
// p3. A red node does not have a red child. (red-violation)
// p4. Every path from a given node to any of its descendant
//   NIL nodes goes through the same number of black nodes. (black-violation)
// p5. The root is black.
// (Conclusion) If a node X has exactly one child, it must be a red child,
//   because if it were black, its NIL descendants would sit at a different
//   black depth than X's NIL child, violating p4.

type rbBalancer[K infra.OrderedKey] struct{}

func (rbBalancer[K]) newLeaf(key K) *node[K] {
	return &node[K]{
		key:   key,
		color: Red,
	}
}

/*
New node X is red by default.

<X> is a RED node.
[X] is a BLACK node (or NIL).

im1: X is root, repaint into black.

im2: X's parent P is black, nothing violated.

im3: Both the parent P and the uncle U are red, grandpa G is black.
(red-violation)
After repainted G into red may be still red-violation.
Continue to fix grandpa.

	    [G]             <G>
	    / \             / \
	  <P> <U>  ====>  [P] [U]
	  /               /
	<X>             <X>

im4: The parent P is red but the uncle U is black. (red-violation)
X is opposite direction to P. Rotate P to the direction of P.
Here must enter im5 to fix.

	  [G]                 [G]
	  / \    rotate(P)    / \
	<P> [U]  ========>  <X> [U]
	  \                 /
	  <X>             <P>

im5: Current node is the same direction as parent.

	    [G]                 <P>               [P]
	    / \    rotate(G)    / \    repaint    / \
	  <P> [U]  ========>  <X> [G]  ======>  <X> <G>
	  /                         \                 \
	<X>                         [U]               [U]
*/
func (rbBalancer[K]) afterInsert(t *bst[K], path []*node[K]) {
	for i := len(path) - 1; /* im1 */ i > 0; {
		x, p := path[i], path[i-1]
		if /* im2 */ p.isBlack() || i < 2 {
			break
		}

		g := path[i-2]
		pDir := dirOf(g, p)
		if u := g.child(pDir.opposite()); /* im3 */ u.isRed() {
			t.paint(p, Black)
			t.paint(u, Black)
			t.paint(g, Red)
			i -= 2
			continue
		}

		if /* im4 */ dirOf(p, x) != pDir {
			g.setChild(pDir, t.rotate(p, pDir))
		}

		/* im5 */
		top := t.rotate(g, pDir.opposite())
		t.replace(parentAt(path, i-2), g, top)
		t.paint(top, Black)
		t.paint(g, Red)
		break
	}
	t.paint(t.root, Black)
}

/*
r1: The removed node Y is red, nothing violated.

r2: Y is black and its replacement X is red, repaint X into black.

Otherwise X (maybe NIL) carries an extra black.

<X> is a RED node.
[X] is a BLACK node (or NIL).
{X} is either a RED node or a BLACK node.

Sc is the sibling's child at the same direction as X (near nephew).
Sd is the sibling's child at the opposite direction (far nephew).

rm1: X's sibling S is red, so the parent P, nephew node Sc and Sd
must be black. Rotate P to the direction of X, repaint S into black,
P into red. The new sibling is black, go on to rm2-rm5.

	  [P]                   <S>               [S]
	  / \    l-rotate(P)    / \    repaint    / \
	[X] <S>  ==========>  [P] [Sd]  ======>  <P> [Sd]
	    / \               / \               / \
	 [Sc] [Sd]          [X] [Sc]          [X] [Sc]

rm2: P is red, S, Sc and Sd are black. Repaint S into red and P into
black, done.

	  <P>             [P]
	  / \             / \
	[X] [S]  ====>  [X] <S>
	    / \             / \
	 [Sc] [Sd]       [Sc] [Sd]

rm3: P, S, Sc and Sd are all black. Repaint S into red, P carries
the extra black now. Continue to fix P.

rm4: S is black, Sc is red and Sd is black. Rotate S to the opposite
direction of X, repaint S into red, Sc into black. Enter rm5.

	                        {P}                {P}
	  {P}                   / \                / \
	  / \    r-rotate(S)  [X] <Sc>   repaint  [X] [Sc]
	[X] [S]  ==========>        \    ======>       \
	    / \                     [S]                <S>
	  <Sc> [Sd]                   \                  \
	                              [Sd]               [Sd]

rm5: S is black, Sd is red. Rotate P to the direction of X, S takes
the color of P, repaint P and Sd into black, done.

	  {P}                   [S]                {S}
	  / \    l-rotate(P)    / \     repaint    / \
	[X] [S]  ==========>  {P} <Sd>  ======>  [P] [Sd]
	    / \               / \                / \
	 {Sc} <Sd>          [X] {Sc}           [X] {Sc}
*/
func (rbBalancer[K]) afterDelete(t *bst[K], path []*node[K], dir Direction, y, x *node[K]) {
	defer t.paint(t.root, Black)

	if /* r1 */ y.isRed() {
		return
	}
	if /* r2 */ x.isRed() {
		t.paint(x, Black)
		return
	}

	for i := len(path) - 1; i >= 0; {
		p, gp := path[i], parentAt(path, i)
		s := p.child(dir.opposite())
		if s == nil {
			// impossible run to here
			panic( /* debug assertion */ "[rbtree] black-violation, the sibling of a double black node is nil")
		}

		if /* rm1 */ s.isRed() {
			t.paint(s, Black)
			t.paint(p, Red)
			t.replace(gp, p, t.rotate(p, dir))
			gp, s = s, p.child(dir.opposite())
		}

		sc, sd := s.child(dir), s.child(dir.opposite())
		if sc.isBlack() && sd.isBlack() {
			t.paint(s, Red)
			if /* rm2 */ p.isRed() {
				t.paint(p, Black)
				return
			}
			/* rm3 */
			if i == 0 {
				return
			}
			dir = dirOf(gp, p)
			i--
			continue
		}

		if /* rm4 */ sd.isBlack() {
			t.paint(sc, Black)
			t.paint(s, Red)
			p.setChild(dir.opposite(), t.rotate(s, dir.opposite()))
			s = p.child(dir.opposite())
			sd = s.child(dir.opposite())
		}

		/* rm5 */
		t.paint(s, p.color)
		t.paint(p, Black)
		t.paint(sd, Black)
		t.replace(gp, p, t.rotate(p, dir))
		return
	}
}

type rbTree[K infra.OrderedKey] struct {
	bst[K]
}

func (t *rbTree[K]) Root() RBNode[K] {
	if t.root == nil {
		return nil
	}
	return (*rbNode[K])(t.root)
}

func NewRBTree[K infra.OrderedKey](opts ...TreeOption[K]) RBTree[K] {
	t := &rbTree[K]{}
	t.init(rbBalancer[K]{}, opts...)
	return t
}
