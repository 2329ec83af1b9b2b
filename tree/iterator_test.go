package bptree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildSequential(t *testing.T, capacity, n int) *Tree[int, int] {
	t.Helper()
	tr, err := New[int, int](capacity)
	require.NoError(t, err)
	for i := 1; i <= n; i++ {
		tr.Insert(i, i*10)
	}
	return tr
}

// TestRangeAcrossLeaves covers the spec's range scenario: a query whose
// bounds span several leaves must yield a contiguous, ascending run that
// follows the leaf chain, not just a single leaf's contents.
func TestRangeAcrossLeaves(t *testing.T) {
	tr := buildSequential(t, 4, 100)
	require.Greater(t, tr.Height(), 2, "100 entries at capacity 4 must span many leaves")

	var got []int
	for it := tr.Range(Included(10), Included(25)); it.Valid(); it.Next() {
		got = append(got, it.Key())
	}

	want := make([]int, 0, 16)
	for k := 10; k <= 25; k++ {
		want = append(want, k)
	}
	assert.Equal(t, want, got)
}

func TestRangeExcludedBounds(t *testing.T) {
	tr := buildSequential(t, 4, 20)

	var got []int
	for it := tr.Range(Excluded(5), Excluded(10)); it.Valid(); it.Next() {
		got = append(got, it.Key())
	}
	assert.Equal(t, []int{6, 7, 8, 9}, got)
}

func TestRangeUnboundedSides(t *testing.T) {
	tr := buildSequential(t, 4, 10)

	var lowOnly []int
	for it := tr.Range(Included(8), UnboundedBound[int]()); it.Valid(); it.Next() {
		lowOnly = append(lowOnly, it.Key())
	}
	assert.Equal(t, []int{8, 9, 10}, lowOnly)

	var highOnly []int
	for it := tr.Range(UnboundedBound[int](), Included(3)); it.Valid(); it.Next() {
		highOnly = append(highOnly, it.Key())
	}
	assert.Equal(t, []int{1, 2, 3}, highOnly)
}

func TestRangeEmptyWhenInverted(t *testing.T) {
	tr := buildSequential(t, 4, 10)
	it := tr.Range(Included(8), Included(3))
	assert.False(t, it.Valid())
}

func TestRangeOnEmptyTree(t *testing.T) {
	tr, err := New[int, int](4)
	require.NoError(t, err)
	it := tr.Range(Included(1), Included(10))
	assert.False(t, it.Valid())
}

func TestItemsVisitsEveryEntryOnce(t *testing.T) {
	tr := buildSequential(t, 4, 37)

	seen := make(map[int]bool)
	var prev *int
	for it := tr.Items(); it.Valid(); it.Next() {
		k := it.Key()
		if prev != nil {
			assert.Less(t, *prev, k)
		}
		assert.False(t, seen[k], "key %d visited twice", k)
		seen[k] = true
		prev = &k
	}
	assert.Len(t, seen, 37)
}

func TestKeysAndValuesViews(t *testing.T) {
	tr := buildSequential(t, 4, 5)

	var keys []int
	for it := tr.Keys(); it.Valid(); it.Next() {
		keys = append(keys, it.Key())
	}
	assert.Equal(t, []int{1, 2, 3, 4, 5}, keys)

	var values []int
	for it := tr.Values(); it.Valid(); it.Next() {
		values = append(values, it.Value())
	}
	assert.Equal(t, []int{10, 20, 30, 40, 50}, values)
}

func TestItemReturnsBothKeyAndValue(t *testing.T) {
	tr := buildSequential(t, 4, 3)
	it := tr.Items()
	k, v := it.Item()
	assert.Equal(t, 1, k)
	assert.Equal(t, 10, v)
}
