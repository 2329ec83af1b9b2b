// Package bptree implements an in-memory ordered key-value container as a
// B+ tree: entries live in leaf nodes threaded into a singly-linked chain,
// branch nodes store only separator keys and routes. It is a drop-in
// alternative to a language-native ordered map, optimized for ordered
// iteration, range scans, and logarithmic point operations.
//
// Concurrency is explicitly a non-goal: a Tree is single-owner. Callers
// who need concurrent access must wrap it in external synchronization.
// Duplicate keys are a non-goal too: keys form a set, and re-inserting an
// existing key replaces its value.
package bptree

import (
	"cmp"
	"fmt"

	"bptree/arena"
	"bptree/common"
)

// MinCapacity is the smallest capacity a Tree can be constructed with. It
// keeps floor(capacity/2) >= 2, so every non-root node can always donate
// one entry to a sibling without itself becoming underfull.
const MinCapacity = 4

// Tree is an in-memory ordered map backed by a B+ tree. The zero Tree is
// not usable; construct one with New.
type Tree[K cmp.Ordered, V any] struct {
	leaves   *arena.Arena[leafNode[K, V]]
	branches *arena.Arena[branchNode[K]]
	root     nodeRef
	capacity int
	size     int
}

// New constructs an empty Tree with the given per-node key capacity.
// capacity must be >= MinCapacity, or New returns ErrInvalidCapacity.
func New[K cmp.Ordered, V any](capacity int) (*Tree[K, V], error) {
	if capacity < MinCapacity {
		return nil, fmt.Errorf("%w: capacity must be >= %d, got %d", ErrInvalidCapacity, MinCapacity, capacity)
	}

	t := &Tree[K, V]{
		leaves:   arena.New[leafNode[K, V]](0),
		branches: arena.New[branchNode[K]](0),
		capacity: capacity,
	}
	id := t.leaves.Allocate(newLeaf[K, V](capacity))
	t.root = nodeRef{kind: leafKind, id: id}
	return t, nil
}

// Len returns the number of entries in the tree.
func (t *Tree[K, V]) Len() int { return t.size }

// IsEmpty reports whether the tree holds no entries.
func (t *Tree[K, V]) IsEmpty() bool { return t.size == 0 }

// Height returns the number of levels in the tree: 1 for a tree whose root
// is a single leaf.
func (t *Tree[K, V]) Height() int {
	h := 1
	ref := t.root
	for ref.isBranch() {
		h++
		br := t.branches.MustGet(ref.id)
		ref = br.children[0]
	}
	return h
}

// Clear removes every entry, leaving the tree as a single empty leaf.
func (t *Tree[K, V]) Clear() {
	t.leaves.Reset()
	t.branches.Reset()
	id := t.leaves.Allocate(newLeaf[K, V](t.capacity))
	t.root = nodeRef{kind: leafKind, id: id}
	t.size = 0
}

// Get returns the value stored for k, if any.
func (t *Tree[K, V]) Get(k K) (V, bool) {
	var zero V
	lf := t.leaves.MustGet(t.descendToLeaf(k))
	idx, present := lf.positionOf(k)
	if !present {
		return zero, false
	}
	return lf.values[idx], true
}

// GetStrict returns the value stored for k, or ErrKeyNotFound if absent.
func (t *Tree[K, V]) GetStrict(k K) (V, error) {
	v, ok := t.Get(k)
	if !ok {
		var zero V
		return zero, fmt.Errorf("%w: %v", ErrKeyNotFound, k)
	}
	return v, nil
}

// Contains reports whether k is present in the tree.
func (t *Tree[K, V]) Contains(k K) bool {
	_, ok := t.Get(k)
	return ok
}

// descendToLeaf follows branch routing from root to the leaf that would
// hold k.
func (t *Tree[K, V]) descendToLeaf(k K) arena.ID {
	ref := t.root
	for ref.isBranch() {
		br := t.branches.MustGet(ref.id)
		ref = br.children[br.route(k)]
	}
	return ref.id
}

// leftmostLeaf descends always taking child index 0, seeding full iteration.
func (t *Tree[K, V]) leftmostLeaf() arena.ID {
	ref := t.root
	for ref.isBranch() {
		br := t.branches.MustGet(ref.id)
		ref = br.children[0]
	}
	return ref.id
}

// rangeStart implements the range-start algorithm of the spec: descend
// toward lower (or seed at the leftmost leaf if lower is unbounded), then
// advance along the leaf chain until a leaf holding a key that satisfies
// lower is found, or the chain is exhausted.
func (t *Tree[K, V]) rangeStart(lower Bound[K]) (arena.ID, int, bool) {
	if lower.kind == unbounded {
		id := t.leftmostLeaf()
		return id, 0, true
	}

	id := t.descendToLeaf(lower.key)
	for {
		lf := t.leaves.MustGet(id)
		idx, present := lf.positionOf(lower.key)
		if lower.kind == excluded && present {
			idx++
		}
		if idx < len(lf.keys) {
			return id, idx, true
		}
		if lf.next == arena.NullID {
			return arena.NullID, 0, false
		}
		id = lf.next
	}
}

func (t *Tree[K, V]) canDonateRef(ref nodeRef) bool {
	if ref.isLeaf() {
		return t.leaves.MustGet(ref.id).canDonate(t.capacity)
	}
	return t.branches.MustGet(ref.id).canDonate(t.capacity)
}

func (t *Tree[K, V]) isUnderfullRef(ref nodeRef) bool {
	if ref.isLeaf() {
		return t.leaves.MustGet(ref.id).isUnderfull(t.capacity)
	}
	return t.branches.MustGet(ref.id).isUnderfull(t.capacity)
}

// assertBranch is a thin wrapper over common.Assert used at spots where a
// nodeRef is already known (by construction) to be a branch.
func assertBranch(ref nodeRef) {
	common.Assert(ref.isBranch(), "expected a branch reference, got leaf id %d", ref.id)
}
