package bptree

import (
	"cmp"

	"bptree/arena"
)

// boundKind distinguishes the three ways a range bound can be specified.
type boundKind uint8

const (
	unbounded boundKind = iota
	included
	excluded
)

// Bound is one side of a range query. Construct one with Included,
// Excluded, or UnboundedBound.
type Bound[K cmp.Ordered] struct {
	kind boundKind
	key  K
}

// Included builds an inclusive bound at k.
func Included[K cmp.Ordered](k K) Bound[K] { return Bound[K]{kind: included, key: k} }

// Excluded builds an exclusive bound at k.
func Excluded[K cmp.Ordered](k K) Bound[K] { return Bound[K]{kind: excluded, key: k} }

// UnboundedBound builds a bound with no limit.
func UnboundedBound[K cmp.Ordered]() Bound[K] { return Bound[K]{kind: unbounded} }

// Iterator yields (key, value) pairs in strictly ascending key order.
// Seeded at a leaf and index, it walks laterally along the leaf chain
// without re-entering branches, giving range scans O(log n + k) cost.
//
// An Iterator is invalidated by any mutation of the tree that produced it;
// resuming it afterwards is a programming error, per the package's single-
// owner, no-snapshotting concurrency model.
type Iterator[K cmp.Ordered, V any] struct {
	tree   *Tree[K, V]
	leafID arena.ID
	idx    int
	upper  Bound[K]
	done   bool
}

// Items returns an iterator over every entry in ascending key order.
func (t *Tree[K, V]) Items() *Iterator[K, V] {
	it := &Iterator[K, V]{tree: t, leafID: t.leftmostLeaf(), upper: UnboundedBound[K]()}
	it.checkDone()
	return it
}

// Range returns an iterator over entries whose keys satisfy both bounds.
// Each bound is independently Included, Excluded, or unbounded. Empty and
// inverted ranges yield nothing.
func (t *Tree[K, V]) Range(lower, upper Bound[K]) *Iterator[K, V] {
	leafID, idx, ok := t.rangeStart(lower)
	if !ok {
		return &Iterator[K, V]{tree: t, upper: upper, done: true}
	}
	it := &Iterator[K, V]{tree: t, leafID: leafID, idx: idx, upper: upper}
	it.checkDone()
	return it
}

// checkDone marks the iterator exhausted if its current position is past
// the end of its leaf or violates the upper bound.
func (it *Iterator[K, V]) checkDone() {
	if it.done {
		return
	}
	lf, err := it.tree.leaves.Get(it.leafID)
	if err != nil || it.idx >= len(lf.keys) {
		it.done = true
		return
	}
	k := lf.keys[it.idx]
	switch it.upper.kind {
	case included:
		it.done = cmp.Compare(k, it.upper.key) > 0
	case excluded:
		it.done = cmp.Compare(k, it.upper.key) >= 0
	}
}

// Valid reports whether the iterator currently has an item to yield.
func (it *Iterator[K, V]) Valid() bool { return !it.done }

// Key returns the current item's key. Only valid when Valid reports true.
func (it *Iterator[K, V]) Key() K { return it.tree.leaves.MustGet(it.leafID).keys[it.idx] }

// Value returns the current item's value. Only valid when Valid reports true.
func (it *Iterator[K, V]) Value() V { return it.tree.leaves.MustGet(it.leafID).values[it.idx] }

// Item returns the current (key, value) pair.
func (it *Iterator[K, V]) Item() (K, V) { return it.Key(), it.Value() }

// Next advances to the successor item, following the leaf chain when the
// current leaf is exhausted.
func (it *Iterator[K, V]) Next() {
	if it.done {
		return
	}
	lf := it.tree.leaves.MustGet(it.leafID)
	if it.idx+1 < len(lf.keys) {
		it.idx++
	} else if lf.next != arena.NullID {
		it.leafID = lf.next
		it.idx = 0
	} else {
		it.done = true
		return
	}
	it.checkDone()
}

// KeyIterator is a view over an Iterator that exposes only keys.
type KeyIterator[K cmp.Ordered, V any] struct{ inner *Iterator[K, V] }

// Keys returns a keys-only view over every entry in ascending order.
func (t *Tree[K, V]) Keys() *KeyIterator[K, V] { return &KeyIterator[K, V]{inner: t.Items()} }

func (k *KeyIterator[K, V]) Valid() bool { return k.inner.Valid() }
func (k *KeyIterator[K, V]) Next()       { k.inner.Next() }
func (k *KeyIterator[K, V]) Key() K      { return k.inner.Key() }

// ValueIterator is a view over an Iterator that exposes only values.
type ValueIterator[K cmp.Ordered, V any] struct{ inner *Iterator[K, V] }

// Values returns a values-only view over every entry in ascending key order.
func (t *Tree[K, V]) Values() *ValueIterator[K, V] { return &ValueIterator[K, V]{inner: t.Items()} }

func (v *ValueIterator[K, V]) Valid() bool { return v.inner.Valid() }
func (v *ValueIterator[K, V]) Next()       { v.inner.Next() }
func (v *ValueIterator[K, V]) Value() V    { return v.inner.Value() }
