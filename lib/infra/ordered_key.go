package infra

import (
	"cmp"
)

type Signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

// Unsigned is a constraint that permits any unsigned integer type.
type Unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

type Integer interface {
	Signed | Unsigned
}

type Float interface {
	~float32 | ~float64
}

// OrderedKey is the key constraint of all search trees.
// It is a subset of cmp.Ordered, so an unordered key is rejected
// by the compiler. Floats are totally ordered by cmp.Compare.
// byte => ~uint8
type OrderedKey interface {
	Integer | Float | ~string
}

// OrderedKeyComparator
// Assume i is the new key.
//  1. i == j (return 0)
//  2. i > j (return 1), turn to right part.
//  3. i < j (return -1), turn to left part.
type OrderedKeyComparator[K OrderedKey] func(i, j K) int64

// AscOrderedKeyCompare orders NaN before any other float and
// equal to itself, so a NaN key is still unique and reachable.
func AscOrderedKeyCompare[K OrderedKey](i, j K) int64 {
	return int64(cmp.Compare(i, j))
}

// DescOrderedKeyCompare reverses the order, the greatest key
// is placed at the leftmost.
func DescOrderedKeyCompare[K OrderedKey](i, j K) int64 {
	return AscOrderedKeyCompare[K](j, i)
}
