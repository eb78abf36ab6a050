package tree

import (
	"math"
	randv2 "math/rand/v2"
	"slices"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

type treeVariant struct {
	name     string
	new      func(opts ...TreeOption[int]) Tree[int]
	validate func(tree Tree[int]) error
}

var treeVariants = []treeVariant{
	{
		name: "avl",
		new: func(opts ...TreeOption[int]) Tree[int] {
			return NewAVLTree[int](opts...)
		},
		validate: func(tree Tree[int]) error {
			return ValidateAVL[int](tree.(AVLTree[int]))
		},
	},
	{
		name: "rbtree",
		new: func(opts ...TreeOption[int]) Tree[int] {
			return NewRBTree[int](opts...)
		},
		validate: func(tree Tree[int]) error {
			return ValidateRB[int](tree.(RBTree[int]))
		},
	},
}

func randomDistinctValues(seed uint64, n int) []int {
	rng := randv2.New(randv2.NewPCG(seed, seed>>1))
	values := make([]int, 0, n)
	for i := 0; i < n; i++ {
		values = append(values, rng.IntN(1<<20)-1<<19)
	}
	return lo.Uniq(values)
}

func TestBSTNewTreeIsEmpty(t *testing.T) {
	for _, v := range treeVariants {
		t.Run(v.name, func(tt *testing.T) {
			tree := v.new()
			require.Equal(tt, int64(0), tree.Len())
			_, ok := tree.Search(1)
			require.False(tt, ok)
			_, ok = tree.Delete(1)
			require.False(tt, ok)
			_, ok = tree.DeleteMin()
			require.False(tt, ok)
			_, ok = tree.Min()
			require.False(tt, ok)
			_, ok = tree.Max()
			require.False(tt, ok)
			require.Empty(tt, slices.Collect(tree.All()))
			require.NoError(tt, v.validate(tree))
		})
	}
	require.Nil(t, NewAVLTree[int]().Root())
	require.Nil(t, NewRBTree[int]().Root())
}

func TestBSTInvariantAfterInsertion(t *testing.T) {
	values := randomDistinctValues(72, 1000)
	for _, v := range treeVariants {
		t.Run(v.name, func(tt *testing.T) {
			tree := v.new()
			for i, val := range values {
				key, ok := tree.Insert(val)
				require.True(tt, ok)
				require.Equal(tt, val, key)
				require.Equal(tt, int64(i+1), tree.Len())
				require.NoError(tt, v.validate(tree))
			}
			expected := slices.Clone(values)
			slices.Sort(expected)
			require.Equal(tt, expected, slices.Collect(tree.All()))
		})
	}
}

func TestBSTDuplicateInsertIsNoop(t *testing.T) {
	values := randomDistinctValues(73, 600)
	for _, v := range treeVariants {
		t.Run(v.name, func(tt *testing.T) {
			tree := v.new()
			for _, val := range values {
				tree.Insert(val)
			}
			before := slices.Collect(tree.All())
			for _, val := range values[len(values)/3 : 2*len(values)/3] {
				key, ok := tree.Insert(val)
				require.False(tt, ok)
				require.Equal(tt, val, key)
				require.NoError(tt, v.validate(tree))
			}
			require.Equal(tt, int64(len(values)), tree.Len())
			require.Equal(tt, before, slices.Collect(tree.All()))
		})
	}
}

func TestBSTDuplicateInsertKeepsShape(t *testing.T) {
	avl := NewAVLTree[int]()
	rb := NewRBTree[int]()
	for _, val := range []int{50, 20, 80, 10, 30, 70, 90, 60} {
		avl.Insert(val)
		rb.Insert(val)
	}
	avlShape, rbShape := dumpAVL(avl.Root()), dumpRB(rb.Root())
	for _, val := range []int{50, 60, 10} {
		_, ok := avl.Insert(val)
		require.False(t, ok)
		_, ok = rb.Insert(val)
		require.False(t, ok)
	}
	require.Equal(t, avlShape, dumpAVL(avl.Root()))
	require.Equal(t, rbShape, dumpRB(rb.Root()))
}

func TestBSTInvariantAfterDeletion(t *testing.T) {
	values := randomDistinctValues(74, 1000)
	for _, v := range treeVariants {
		for _, borrowPred := range []bool{false, true} {
			name := v.name + "/succ"
			var opts []TreeOption[int]
			if borrowPred {
				name = v.name + "/pred"
				opts = append(opts, WithRemoveBorrowPred[int]())
			}
			t.Run(name, func(tt *testing.T) {
				tree := v.new(opts...)
				for _, val := range values {
					tree.Insert(val)
				}
				toDelete := values[len(values)/4 : 3*len(values)/4]
				for _, val := range toDelete {
					key, ok := tree.Delete(val)
					require.True(tt, ok)
					require.Equal(tt, val, key)
					require.NoError(tt, v.validate(tree))
				}

				expected, _ := lo.Difference(values, toDelete)
				slices.Sort(expected)
				require.Equal(tt, expected, slices.Collect(tree.All()))
				for _, val := range toDelete {
					_, ok := tree.Search(val)
					require.False(tt, ok)
				}
				for _, val := range expected {
					key, ok := tree.Search(val)
					require.True(tt, ok)
					require.Equal(tt, val, key)
				}
			})
		}
	}
}

func TestBSTEmptyAfterFullDeletion(t *testing.T) {
	values := randomDistinctValues(75, 500)
	for _, v := range treeVariants {
		t.Run(v.name, func(tt *testing.T) {
			tree := v.new()
			for _, val := range values {
				tree.Insert(val)
			}
			for _, val := range lo.Shuffle(slices.Clone(values)) {
				key, ok := tree.Delete(val)
				require.True(tt, ok)
				require.Equal(tt, val, key)
				require.NoError(tt, v.validate(tree))
			}
			require.Equal(tt, int64(0), tree.Len())
			switch x := tree.(type) {
			case AVLTree[int]:
				require.Nil(tt, x.Root())
			case RBTree[int]:
				require.Nil(tt, x.Root())
			}
		})
	}
}

func TestBSTDeleteAndSearchNotFound(t *testing.T) {
	values := randomDistinctValues(76, 900)
	present, absent := values[:len(values)/3], values[2*len(values)/3:]
	for _, v := range treeVariants {
		t.Run(v.name, func(tt *testing.T) {
			tree := v.new()
			for _, val := range present {
				tree.Insert(val)
			}
			for _, val := range absent {
				_, ok := tree.Search(val)
				require.False(tt, ok)
				require.False(tt, tree.Contains(val))
				_, ok = tree.Delete(val)
				require.False(tt, ok)
			}
			require.Equal(tt, int64(len(present)), tree.Len())
			require.NoError(tt, v.validate(tree))
		})
	}
}

func TestBSTInsertDeleteSearchRandomly(t *testing.T) {
	rng := randv2.New(randv2.NewPCG(72, 27))
	data := make([]int, 30000)
	for i := range data {
		data[i] = rng.IntN(5000)
	}
	for _, v := range treeVariants {
		t.Run(v.name, func(tt *testing.T) {
			tree := v.new()
			expected := make(map[int]struct{}, 1024)
			pick := func(base int) int {
				return data[base+rng.IntN(3)]
			}
			for base := 0; base+2 < len(data); base += 3 {
				for _, op := range []byte{'+', '+', '?', '-', '?', '+', '-'} {
					key := pick(base)
					switch op {
					case '+':
						_, ok := tree.Insert(key)
						_, exists := expected[key]
						require.Equal(tt, !exists, ok)
						expected[key] = struct{}{}
					case '-':
						_, ok := tree.Delete(key)
						_, exists := expected[key]
						require.Equal(tt, exists, ok)
						delete(expected, key)
					case '?':
						_, ok := tree.Search(key)
						_, exists := expected[key]
						require.Equal(tt, exists, ok)
					}
				}
				if base%300 == 0 {
					require.NoError(tt, v.validate(tree))
				}
			}
			require.Equal(tt, int64(len(expected)), tree.Len())
			require.NoError(tt, v.validate(tree))
		})
	}
}

func TestBSTMinMaxDeleteMin(t *testing.T) {
	values := randomDistinctValues(77, 300)
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	for _, v := range treeVariants {
		t.Run(v.name, func(tt *testing.T) {
			tree := v.new()
			for _, val := range values {
				tree.Insert(val)
			}
			_min, ok := tree.Min()
			require.True(tt, ok)
			require.Equal(tt, sorted[0], _min)
			_max, ok := tree.Max()
			require.True(tt, ok)
			require.Equal(tt, sorted[len(sorted)-1], _max)

			for _, val := range sorted {
				key, ok := tree.DeleteMin()
				require.True(tt, ok)
				require.Equal(tt, val, key)
				require.NoError(tt, v.validate(tree))
			}
			require.Equal(tt, int64(0), tree.Len())
		})
	}
}

func TestBSTDescOrder(t *testing.T) {
	values := randomDistinctValues(78, 400)
	expected := slices.Clone(values)
	slices.Sort(expected)
	slices.Reverse(expected)
	for _, v := range treeVariants {
		t.Run(v.name, func(tt *testing.T) {
			tree := v.new(WithDesc[int]())
			for _, val := range values {
				tree.Insert(val)
			}
			require.NoError(tt, v.validate(tree))
			require.Equal(tt, expected, slices.Collect(tree.All()))
			_first, _ := tree.Min()
			require.Equal(tt, expected[0], _first)
			_last, _ := tree.Max()
			require.Equal(tt, expected[len(expected)-1], _last)

			// DeleteMin pops the greatest key in a descending tree.
			key, ok := tree.DeleteMin()
			require.True(tt, ok)
			require.Equal(tt, expected[0], key)
			tree.Insert(key)

			for _, val := range values[:200] {
				_, ok := tree.Delete(val)
				require.True(tt, ok)
			}
			require.NoError(tt, v.validate(tree))
		})
	}
}

func TestBSTRelease(t *testing.T) {
	for _, v := range treeVariants {
		t.Run(v.name, func(tt *testing.T) {
			tree := v.new()
			for i := 0; i < 100; i++ {
				tree.Insert(i)
			}
			tree.Release()
			require.Equal(tt, int64(0), tree.Len())
			require.Empty(tt, slices.Collect(tree.All()))

			// Reusable after release.
			tree.Insert(3)
			tree.Insert(1)
			require.Equal(tt, []int{1, 3}, slices.Collect(tree.All()))
			require.NoError(tt, v.validate(tree))
		})
	}
}

func TestBSTDeleteRootOfThreeNodes(t *testing.T) {
	for _, v := range treeVariants {
		for _, borrowPred := range []bool{false, true} {
			var opts []TreeOption[int]
			expectedRoot := 8
			if borrowPred {
				opts = append(opts, WithRemoveBorrowPred[int]())
				expectedRoot = 3
			}
			tree := v.new(opts...)
			for _, val := range []int{5, 3, 8} {
				tree.Insert(val)
			}
			key, ok := tree.Delete(5)
			require.True(t, ok)
			require.Equal(t, 5, key)
			require.Equal(t, []int{3, 8}, slices.Collect(tree.All()))
			switch x := tree.(type) {
			case AVLTree[int]:
				require.Equal(t, expectedRoot, x.Root().Key())
			case RBTree[int]:
				require.Equal(t, expectedRoot, x.Root().Key())
				require.Equal(t, Black, x.Root().Color())
			}
			require.NoError(t, v.validate(tree))
		}
	}
}

func TestBSTStringKeys(t *testing.T) {
	words := []string{"pear", "apple", "fig", "kiwi", "banana", "cherry", "date"}
	avl := NewAVLTree[string]()
	rb := NewRBTree[string]()
	for _, w := range words {
		avl.Insert(w)
		rb.Insert(w)
	}
	expected := slices.Clone(words)
	slices.Sort(expected)
	require.Equal(t, expected, slices.Collect(avl.All()))
	require.Equal(t, expected, slices.Collect(rb.All()))
	require.NoError(t, ValidateAVL[string](avl))
	require.NoError(t, ValidateRB[string](rb))
}

func TestBSTNaNKey(t *testing.T) {
	variants := []struct {
		name     string
		new      func(opts ...TreeOption[float64]) Tree[float64]
		validate func(tree Tree[float64]) error
	}{
		{
			name: "avl",
			new: func(opts ...TreeOption[float64]) Tree[float64] {
				return NewAVLTree[float64](opts...)
			},
			validate: func(tree Tree[float64]) error {
				return ValidateAVL[float64](tree.(AVLTree[float64]))
			},
		},
		{
			name: "rbtree",
			new: func(opts ...TreeOption[float64]) Tree[float64] {
				return NewRBTree[float64](opts...)
			},
			validate: func(tree Tree[float64]) error {
				return ValidateRB[float64](tree.(RBTree[float64]))
			},
		},
	}
	nan := math.NaN()
	for _, v := range variants {
		t.Run(v.name, func(tt *testing.T) {
			tree := v.new()
			_, ok := tree.Insert(nan)
			require.True(tt, ok)
			key, ok := tree.Insert(nan)
			require.False(tt, ok)
			require.True(tt, math.IsNaN(key))
			tree.Insert(1)
			tree.Insert(math.Inf(-1))
			require.Equal(tt, int64(3), tree.Len())
			require.NoError(tt, v.validate(tree))

			// NaN is ordered before any other key.
			key, ok = tree.Min()
			require.True(tt, ok)
			require.True(tt, math.IsNaN(key))
			key, ok = tree.Search(nan)
			require.True(tt, ok)
			require.True(tt, math.IsNaN(key))

			key, ok = tree.Delete(nan)
			require.True(tt, ok)
			require.True(tt, math.IsNaN(key))
			require.False(tt, tree.Contains(nan))
			require.Equal(tt, []float64{math.Inf(-1), 1}, slices.Collect(tree.All()))

			tree.Delete(1)
			tree.Delete(math.Inf(-1))
			require.Equal(tt, int64(0), tree.Len())
			_, ok = tree.Min()
			require.False(tt, ok)
		})
	}
}

func BenchmarkAVLTreeInsert(b *testing.B) {
	tree := NewAVLTree[uint64]()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tree.Insert(randv2.Uint64())
	}
}

func BenchmarkRBTreeInsert(b *testing.B) {
	tree := NewRBTree[uint64]()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tree.Insert(randv2.Uint64())
	}
}

func BenchmarkAVLTreeSearch(b *testing.B) {
	tree := NewAVLTree[int]()
	for i := 0; i < 1<<16; i++ {
		tree.Insert(i)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tree.Search(i & (1<<16 - 1))
	}
}

func BenchmarkRBTreeSearch(b *testing.B) {
	tree := NewRBTree[int]()
	for i := 0; i < 1<<16; i++ {
		tree.Insert(i)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tree.Search(i & (1<<16 - 1))
	}
}
