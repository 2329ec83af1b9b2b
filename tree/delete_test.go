package bptree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoveAllLeavesEmptyTree(t *testing.T) {
	tr, err := New[int, int](4)
	require.NoError(t, err)
	for i := 1; i <= 50; i++ {
		tr.Insert(i, i)
	}

	for i := 1; i <= 50; i++ {
		v, ok := tr.Remove(i)
		require.True(t, ok)
		assert.Equal(t, i, v)
		require.NoError(t, tr.CheckInvariants())
	}

	assert.True(t, tr.IsEmpty())
	assert.Equal(t, 1, tr.Height())
}

func TestRemoveInDescendingOrderMaintainsInvariants(t *testing.T) {
	tr, err := New[int, int](4)
	require.NoError(t, err)
	for i := 1; i <= 30; i++ {
		tr.Insert(i, i)
	}

	for i := 30; i >= 1; i-- {
		_, ok := tr.Remove(i)
		require.True(t, ok)
		require.NoError(t, tr.CheckInvariants(), "invariants broken after removing %d", i)
	}
	assert.True(t, tr.IsEmpty())
}

func TestRemoveFromMiddleTriggersRepairs(t *testing.T) {
	tr, err := New[int, int](4)
	require.NoError(t, err)
	for i := 1; i <= 40; i++ {
		tr.Insert(i, i)
	}

	for _, k := range []int{20, 21, 19, 22, 18, 23, 17, 24} {
		_, ok := tr.Remove(k)
		require.True(t, ok)
		require.NoError(t, tr.CheckInvariants(), "invariants broken after removing %d", k)
	}
	assert.Equal(t, 32, tr.Len())

	for _, k := range []int{20, 21, 19, 22, 18, 23, 17, 24} {
		_, ok := tr.Get(k)
		assert.False(t, ok)
	}
	for _, k := range []int{1, 16, 25, 40} {
		_, ok := tr.Get(k)
		assert.True(t, ok)
	}
}

func TestRemoveThenReinsertSameKey(t *testing.T) {
	tr, err := New[int, int](4)
	require.NoError(t, err)
	tr.Insert(1, 100)

	v, ok := tr.Remove(1)
	require.True(t, ok)
	assert.Equal(t, 100, v)

	_, existed := tr.Insert(1, 200)
	assert.False(t, existed)
	v, ok = tr.Get(1)
	require.True(t, ok)
	assert.Equal(t, 200, v)
}
