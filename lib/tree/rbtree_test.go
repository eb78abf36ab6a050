package tree

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

type checkData struct {
	color RBColor
	key   uint64
}

// dumpRB renders the inorder (color, key) of the subtree.
func dumpRB[K uint64 | int](n RBNode[K]) []checkData {
	if n == nil {
		return nil
	}
	res := dumpRB[K](n.Left())
	res = append(res, checkData{n.Color(), uint64(n.Key())})
	return append(res, dumpRB[K](n.Right())...)
}

func TestRBColorAndDirectionString(t *testing.T) {
	require.Equal(t, "Black", Black.String())
	require.Equal(t, "Red", Red.String())
	require.Equal(t, "Unknown", RBColor(7).String())
	require.Equal(t, "Left", Left.String())
	require.Equal(t, "Root", Root.String())
	require.Equal(t, "Right", Right.String())
	require.Equal(t, Right, Left.opposite())
}

func TestRbtreeInsertAndRemove_Pred(t *testing.T) {
	tree := NewRBTree[uint64](WithRemoveBorrowPred[uint64]())

	steps := []struct {
		key      uint64
		expected []checkData
	}{
		{52, []checkData{{Black, 52}}},
		{47, []checkData{{Red, 47}, {Black, 52}}},
		{3, []checkData{{Red, 3}, {Black, 47}, {Red, 52}}},
		{35, []checkData{{Black, 3}, {Red, 35}, {Black, 47}, {Black, 52}}},
		{24, []checkData{{Red, 3}, {Black, 24}, {Red, 35}, {Black, 47}, {Black, 52}}},
	}
	for _, step := range steps {
		key, ok := tree.Insert(step.key)
		require.True(t, ok)
		require.Equal(t, step.key, key)
		require.Equal(t, step.expected, dumpRB[uint64](tree.Root()))
		require.NoError(t, ValidateRB[uint64](tree))
	}

	// remove

	steps = []struct {
		key      uint64
		expected []checkData
	}{
		{24, []checkData{{Black, 3}, {Red, 35}, {Black, 47}, {Black, 52}}},
		{47, []checkData{{Black, 3}, {Black, 35}, {Black, 52}}},
		{52, []checkData{{Red, 3}, {Black, 35}}},
		{3, []checkData{{Black, 35}}},
		{35, nil},
	}
	for _, step := range steps {
		x, ok := tree.Delete(step.key)
		require.True(t, ok)
		require.Equal(t, step.key, x)
		require.Equal(t, step.expected, dumpRB[uint64](tree.Root()))
		require.NoError(t, ValidateRB[uint64](tree))
	}
	require.Equal(t, int64(0), tree.Len())
	require.Nil(t, tree.Root())
}

func TestRbtreeRemove_Succ(t *testing.T) {
	tree := NewRBTree[uint64]()
	for _, key := range []uint64{52, 47, 3, 35, 24} {
		tree.Insert(key)
	}

	x, ok := tree.Delete(24)
	require.True(t, ok)
	require.Equal(t, uint64(24), x)
	require.Equal(t, []checkData{{Red, 3}, {Black, 35}, {Black, 47}, {Black, 52}}, dumpRB[uint64](tree.Root()))
	require.NoError(t, ValidateRB[uint64](tree))

	x, ok = tree.Delete(47)
	require.True(t, ok)
	require.Equal(t, uint64(47), x)
	// The succ 52 is a black leaf, the red far nephew 3 absorbs the extra black.
	require.Equal(t, []checkData{{Black, 3}, {Black, 35}, {Black, 52}}, dumpRB[uint64](tree.Root()))
	require.Equal(t, uint64(35), tree.Root().Key())
	require.NoError(t, ValidateRB[uint64](tree))
}

func TestRbtree_DeleteMin(t *testing.T) {
	tree := NewRBTree[uint64]()
	for _, key := range []uint64{52, 47, 3, 35, 24} {
		tree.Insert(key)
	}
	require.Equal(t, []checkData{{Red, 3}, {Black, 24}, {Red, 35}, {Black, 47}, {Black, 52}}, dumpRB[uint64](tree.Root()))

	steps := []struct {
		key      uint64
		expected []checkData
	}{
		{3, []checkData{{Black, 24}, {Red, 35}, {Black, 47}, {Black, 52}}},
		{24, []checkData{{Black, 35}, {Black, 47}, {Black, 52}}},
		{35, []checkData{{Black, 47}, {Red, 52}}},
		{47, []checkData{{Black, 52}}},
		{52, nil},
	}
	for _, step := range steps {
		x, ok := tree.DeleteMin()
		require.True(t, ok)
		require.Equal(t, step.key, x)
		require.Equal(t, step.expected, dumpRB[uint64](tree.Root()))
		require.NoError(t, ValidateRB[uint64](tree))
	}
	require.Equal(t, int64(0), tree.Len())
}

func TestRbtreeAscendingInsert(t *testing.T) {
	tree := NewRBTree[int]()
	for i := 1; i <= 7; i++ {
		tree.Insert(i)
		require.NoError(t, RedViolationValidate[int](tree))
		require.NoError(t, BlackViolationValidate[int](tree))
		require.Equal(t, Black, tree.Root().Color())
	}
	require.Equal(t, []int{1, 2, 3, 4, 5, 6, 7}, slices.Collect(tree.All()))
	require.Equal(t, 2, tree.Root().Key())
}

func rbtreeRandomInsertAndRemoveSequentialNumberRunCore(t *testing.T, borrowPred bool) {
	total := uint64(1000)
	insertTotal := uint64(float64(total) * 0.8)
	removeTotal := uint64(float64(total) * 0.2)

	var opts []TreeOption[uint64]
	if borrowPred {
		opts = append(opts, WithRemoveBorrowPred[uint64]())
	}
	tree := NewRBTree[uint64](opts...)

	for i := uint64(0); i < insertTotal+removeTotal; i++ {
		tree.Insert(i)
		require.NoError(t, RedViolationValidate[uint64](tree))
		require.NoError(t, BlackViolationValidate[uint64](tree))
	}
	tree.Foreach(func(idx int64, key uint64) bool {
		require.Equal(t, uint64(idx), key)
		return true
	})

	for i := insertTotal; i < removeTotal+insertTotal; i++ {
		x, ok := tree.Delete(i)
		require.True(t, ok)
		require.Equal(t, i, x)
		require.NoError(t, RedViolationValidate[uint64](tree))
		require.NoError(t, BlackViolationValidate[uint64](tree))
	}
	require.Equal(t, int64(insertTotal), tree.Len())
	tree.Foreach(func(idx int64, key uint64) bool {
		require.Equal(t, uint64(idx), key)
		return true
	})
}

func TestRbtreeRandomInsertAndRemove_SequentialNumber(t *testing.T) {
	t.Run("succ", func(tt *testing.T) {
		rbtreeRandomInsertAndRemoveSequentialNumberRunCore(tt, false)
	})
	t.Run("pred", func(tt *testing.T) {
		rbtreeRandomInsertAndRemoveSequentialNumberRunCore(tt, true)
	})
}

func TestRbtreeValidateDetectsViolations(t *testing.T) {
	tree := NewRBTree[int]()
	for i := 1; i <= 7; i++ {
		tree.Insert(i)
	}
	require.NoError(t, ValidateRB[int](tree))

	inner := tree.(*rbTree[int])
	// Break the black height on purpose.
	inner.root.left.color = Red
	inner.root.color = Red
	err := ValidateRB[int](tree)
	require.Error(t, err)
	require.Contains(t, err.Error(), "rbtree root violation")
	require.Contains(t, err.Error(), "rbtree red violation")
	require.Contains(t, err.Error(), "rbtree black violation")
}
