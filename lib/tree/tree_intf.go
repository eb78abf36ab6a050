package tree

import (
	"iter"

	"github.com/benz9527/xtree/lib/infra"
)

type RBColor uint8

const (
	Black RBColor = iota
	Red
)

func (c RBColor) String() string {
	switch c {
	case Black:
		return "Black"
	case Red:
		return "Red"
	default:
	}
	return "Unknown"
}

type Direction int8

const (
	Left Direction = -1 + iota
	Root
	Right
)

func (dir Direction) String() string {
	switch dir {
	case Left:
		return "Left"
	case Root:
		return "Root"
	case Right:
		return "Right"
	default:
	}
	return "Unknown"
}

func (dir Direction) opposite() Direction {
	return -dir
}

// AVLNode is the read-only handle of an AVL tree node.
type AVLNode[K infra.OrderedKey] interface {
	Key() K
	Height() int
	// BalanceFactor is height(left) - height(right).
	BalanceFactor() int
	Left() AVLNode[K]
	Right() AVLNode[K]
}

// RBNode is the read-only handle of a red-black tree node.
type RBNode[K infra.OrderedKey] interface {
	Key() K
	Color() RBColor
	Left() RBNode[K]
	Right() RBNode[K]
}

// Tree is the operation surface shared by all self-balancing variants.
// A tree is not safe for concurrent use, callers have to serialize
// the access to a single instance.
//
// Not found and duplicate key are not errors. The bool result reports
// whether the key is present (Search, Delete) or newly added (Insert).
type Tree[K infra.OrderedKey] interface {
	Len() int64
	// Insert returns the stored key and true if the key is new.
	// A duplicate insert is a no-op, returns the existing key and false.
	Insert(key K) (K, bool)
	// Delete returns the key stored before removal.
	Delete(key K) (K, bool)
	// Min, Max and DeleteMin follow the tree order: Min is the first
	// key of All. With WithDesc it is the greatest key.
	DeleteMin() (K, bool)
	Search(key K) (K, bool)
	Contains(key K) bool
	Min() (K, bool)
	Max() (K, bool)
	// All is the in-order traversal. Every range over it restarts
	// from the first key.
	All() iter.Seq[K]
	Backward() iter.Seq[K]
	Foreach(action func(idx int64, key K) bool)
	Release()
}

type AVLTree[K infra.OrderedKey] interface {
	Tree[K]
	Root() AVLNode[K]
}

type RBTree[K infra.OrderedKey] interface {
	Tree[K]
	Root() RBNode[K]
}
