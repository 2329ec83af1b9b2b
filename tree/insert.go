package bptree

import (
	"bptree/arena"
	"bptree/common"
)

// descendFrame records a branch visited on the way down to a leaf, and the
// index of the child taken there. Keeping this on a local stack during
// descent (rather than back-pointers on nodes) avoids parent-pointer
// invalidation hazards across split/merge, per the design's no-cyclic-
// references rule.
type descendFrame struct {
	branchID arena.ID
	childIdx int
}

// Insert inserts or replaces the value for k, returning the value
// previously stored there, if any. Size increases by exactly one when no
// previous value existed.
func (t *Tree[K, V]) Insert(k K, v V) (V, bool) {
	var zero V

	var path []descendFrame
	ref := t.root
	for ref.isBranch() {
		br := t.branches.MustGet(ref.id)
		idx := br.route(k)
		path = append(path, descendFrame{branchID: ref.id, childIdx: idx})
		ref = br.children[idx]
	}

	leafID := ref.id
	lf := t.leaves.MustGet(leafID)
	pos, present := lf.positionOf(k)
	if present {
		old := lf.values[pos]
		lf.values[pos] = v
		return old, true
	}

	if !lf.isFull(t.capacity) {
		lf.insertAt(pos, k, v)
		t.size++
		return zero, false
	}

	// The leaf has no room: split first, then insert k into whichever
	// half the separator assigns it to.
	rightLeaf, separator := lf.split()
	rightID := t.leaves.Allocate(rightLeaf)
	right := t.leaves.MustGet(rightID)
	right.next = lf.next
	lf.next = rightID

	// A key that sorts at the split point is below the separator, so it
	// belongs at the end of the left half.
	splitAt := len(lf.keys)
	if pos <= splitAt {
		lf.insertAt(pos, k, v)
	} else {
		right.insertAt(pos-splitAt, k, v)
	}
	t.size++

	childRef := nodeRef{kind: leafKind, id: rightID}

	for i := len(path) - 1; i >= 0; i-- {
		frame := path[i]
		assertBranch(nodeRef{kind: branchKind, id: frame.branchID})
		br := t.branches.MustGet(frame.branchID)

		if !br.isFull(t.capacity) {
			br.insertChildAt(frame.childIdx, separator, childRef)
			return zero, false
		}

		// A full branch first absorbs the pending separator/child pair and
		// then splits its capacity+1 keys, so both halves keep at least
		// capacity/2 keys.
		br.insertChildAt(frame.childIdx, separator, childRef)
		rightBranch, promoted := br.split()
		rightBranchID := t.branches.Allocate(rightBranch)

		separator = promoted
		childRef = nodeRef{kind: branchKind, id: rightBranchID}
	}

	// The top of the descent path (or the root leaf itself, if the tree had
	// no branches yet) still overflowed: grow a new root.
	newRoot := newBranch[K](t.capacity)
	newRoot.keys = append(newRoot.keys, separator)
	newRoot.children = append(newRoot.children, t.root, childRef)
	newRootID := t.branches.Allocate(newRoot)
	t.root = nodeRef{kind: branchKind, id: newRootID}
	common.Assert(t.root.isBranch(), "freshly promoted root must be a branch")

	return zero, false
}
