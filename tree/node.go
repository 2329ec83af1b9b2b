package bptree

import (
	"cmp"

	"bptree/arena"
)

// nodeKind tags a nodeRef as pointing into the leaf arena or the branch
// arena.
type nodeKind uint8

const (
	leafKind nodeKind = iota
	branchKind
)

// nodeRef is a tagged reference to either a leaf or a branch node. The
// tree's root field holds exactly one such reference; branch children are
// slices of nodeRef.
type nodeRef struct {
	kind nodeKind
	id   arena.ID
}

func (r nodeRef) isLeaf() bool   { return r.kind == leafKind }
func (r nodeRef) isBranch() bool { return r.kind == branchKind }

// leafNode stores (key, value) pairs in parallel slices, chosen over a
// paired []struct{K;V} layout for search cache locality, and threads into
// the leaf chain via next.
type leafNode[K cmp.Ordered, V any] struct {
	keys   []K
	values []V
	next   arena.ID // arena.NullID if this is the last leaf
}

func newLeaf[K cmp.Ordered, V any](capacity int) leafNode[K, V] {
	return leafNode[K, V]{
		keys:   make([]K, 0, capacity),
		values: make([]V, 0, capacity),
		next:   arena.NullID,
	}
}

func (l *leafNode[K, V]) isFull(capacity int) bool      { return len(l.keys) == capacity }
func (l *leafNode[K, V]) isUnderfull(capacity int) bool { return len(l.keys) < capacity/2 }
func (l *leafNode[K, V]) canDonate(capacity int) bool   { return len(l.keys) > capacity/2 }

// positionOf returns the index at which k is, or would be inserted, via
// binary search, and whether k is already present.
func (l *leafNode[K, V]) positionOf(k K) (int, bool) {
	lo, hi := 0, len(l.keys)
	for lo < hi {
		mid := (lo + hi) / 2
		if cmp.Compare(l.keys[mid], k) < 0 {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo, lo < len(l.keys) && l.keys[lo] == k
}

// insertAt shifts keys/values right starting at i and inserts (k, v) there.
func (l *leafNode[K, V]) insertAt(i int, k K, v V) {
	var zeroK K
	var zeroV V

	l.keys = append(l.keys, zeroK)
	copy(l.keys[i+1:], l.keys[i:])
	l.keys[i] = k

	l.values = append(l.values, zeroV)
	copy(l.values[i+1:], l.values[i:])
	l.values[i] = v
}

// removeAt shifts keys/values left over index i, returning the removed value.
func (l *leafNode[K, V]) removeAt(i int) V {
	v := l.values[i]
	l.keys = append(l.keys[:i], l.keys[i+1:]...)
	l.values = append(l.values[:i], l.values[i+1:]...)
	return v
}

// split moves the upper half of l's entries into a new leaf value, which
// the caller allocates and links into the chain. The right half has
// ceil(n/2) entries; the separator is its first (and now smallest) key.
func (l *leafNode[K, V]) split() (leafNode[K, V], K) {
	n := len(l.keys)
	rightCount := (n + 1) / 2
	splitAt := n - rightCount

	right := leafNode[K, V]{
		keys:   append([]K(nil), l.keys[splitAt:]...),
		values: append([]V(nil), l.values[splitAt:]...),
	}
	l.keys = l.keys[:splitAt]
	l.values = l.values[:splitAt]

	return right, right.keys[0]
}

// mergeFrom appends all of right's entries and inherits right.next. The
// caller is responsible for deallocating right afterwards.
func (l *leafNode[K, V]) mergeFrom(right *leafNode[K, V]) {
	l.keys = append(l.keys, right.keys...)
	l.values = append(l.values, right.values...)
	l.next = right.next
}

func (l *leafNode[K, V]) donateFirst() (K, V) {
	k, v := l.keys[0], l.values[0]
	l.keys = l.keys[1:]
	l.values = l.values[1:]
	return k, v
}

func (l *leafNode[K, V]) donateLast() (K, V) {
	last := len(l.keys) - 1
	k, v := l.keys[last], l.values[last]
	l.keys = l.keys[:last]
	l.values = l.values[:last]
	return k, v
}

func (l *leafNode[K, V]) acceptFirst(k K, v V) {
	l.keys = append([]K{k}, l.keys...)
	l.values = append([]V{v}, l.values...)
}

func (l *leafNode[K, V]) acceptLast(k K, v V) {
	l.keys = append(l.keys, k)
	l.values = append(l.values, v)
}

// branchNode stores separator keys and child references; children has one
// more entry than keys.
type branchNode[K cmp.Ordered] struct {
	keys     []K
	children []nodeRef
}

func newBranch[K cmp.Ordered](capacity int) branchNode[K] {
	return branchNode[K]{
		keys:     make([]K, 0, capacity),
		children: make([]nodeRef, 0, capacity+1),
	}
}

func (b *branchNode[K]) isFull(capacity int) bool      { return len(b.keys) == capacity }
func (b *branchNode[K]) isUnderfull(capacity int) bool { return len(b.keys) < capacity/2 }
func (b *branchNode[K]) canDonate(capacity int) bool   { return len(b.keys) > capacity/2 }

// route returns the index i of the child to descend into for key k: the
// unique i such that (i==0 or keys[i-1]<=k) and (i==len(keys) or k<keys[i]).
// Ties route right: a key equal to a separator routes to the right
// subtree, i.e. route computes the upper bound of k in keys.
func (b *branchNode[K]) route(k K) int {
	lo, hi := 0, len(b.keys)
	for lo < hi {
		mid := (lo + hi) / 2
		if cmp.Compare(k, b.keys[mid]) < 0 {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return lo
}

// insertChildAt inserts separator at keys[i] and child at children[i+1],
// shifting subsequent entries right.
func (b *branchNode[K]) insertChildAt(i int, separator K, child nodeRef) {
	var zeroK K

	b.keys = append(b.keys, zeroK)
	copy(b.keys[i+1:], b.keys[i:])
	b.keys[i] = separator

	b.children = append(b.children, nodeRef{})
	copy(b.children[i+2:], b.children[i+1:])
	b.children[i+1] = child
}

// removeSeparatorAndChild removes keys[sepIdx] and children[childIdx] after
// a merge has folded childIdx's contents into a sibling.
func (b *branchNode[K]) removeSeparatorAndChild(sepIdx, childIdx int) {
	b.keys = append(b.keys[:sepIdx], b.keys[sepIdx+1:]...)
	b.children = append(b.children[:childIdx], b.children[childIdx+1:]...)
}

// split partitions a branch of n keys at m = n/2 (Insert calls it on an
// overflowing branch of capacity+1 keys): keys[0:m) stay, keys[m] is promoted,
// keys[m+1:] move to a new branch; children split [0:m+1] / [m+1:].
func (b *branchNode[K]) split() (branchNode[K], K) {
	n := len(b.keys)
	m := n / 2
	promoted := b.keys[m]

	right := branchNode[K]{
		keys:     append([]K(nil), b.keys[m+1:]...),
		children: append([]nodeRef(nil), b.children[m+1:]...),
	}
	b.keys = b.keys[:m]
	b.children = b.children[:m+1]

	return right, promoted
}

// mergeWithRight pushes separator between b's and right's key arrays and
// concatenates their children.
func (b *branchNode[K]) mergeWithRight(separator K, right *branchNode[K]) {
	b.keys = append(b.keys, separator)
	b.keys = append(b.keys, right.keys...)
	b.children = append(b.children, right.children...)
}

func (b *branchNode[K]) popFirstChild() (K, nodeRef) {
	k, c := b.keys[0], b.children[0]
	b.keys = b.keys[1:]
	b.children = b.children[1:]
	return k, c
}

func (b *branchNode[K]) popLastChild() (K, nodeRef) {
	lastK, lastC := len(b.keys)-1, len(b.children)-1
	k, c := b.keys[lastK], b.children[lastC]
	b.keys = b.keys[:lastK]
	b.children = b.children[:lastC]
	return k, c
}

func (b *branchNode[K]) pushFirstChild(k K, c nodeRef) {
	b.keys = append([]K{k}, b.keys...)
	b.children = append([]nodeRef{c}, b.children...)
}

func (b *branchNode[K]) pushLastChild(k K, c nodeRef) {
	b.keys = append(b.keys, k)
	b.children = append(b.children, c)
}
