package bptree

import (
	"cmp"
	"fmt"

	"bptree/arena"
)

// checkBound records an open lower or upper limit implied by a node's
// position among its siblings, or "none" if the node is the outermost in
// that direction.
type checkBound[K cmp.Ordered] struct {
	has bool
	key K
}

// CheckInvariants walks the tree from root and reports the first violated
// invariant (I1-I10) as a *StructuralError, serving as this package's
// executable specification. It is read-only and safe to call at any time
// between mutations.
func (t *Tree[K, V]) CheckInvariants() error {
	_, leafCount, err := t.checkNode(t.root, 1, checkBound[K]{}, checkBound[K]{}, true)
	if err != nil {
		return err
	}

	chainCount, err := t.checkLeafChain()
	if err != nil {
		return err
	}
	if chainCount != leafCount {
		return &StructuralError{
			Invariant: "I8",
			Locus:     fmt.Sprintf("leaf chain visited %d leaves, tree descent reached %d", chainCount, leafCount),
		}
	}
	return nil
}

// checkNode recursively validates ref and everything beneath it, returning
// the depth at which its leaves were found and how many leaves were
// visited.
func (t *Tree[K, V]) checkNode(ref nodeRef, depth int, lo, hi checkBound[K], isRoot bool) (int, int, error) {
	if ref.isLeaf() {
		lf, err := t.leaves.Get(ref.id)
		if err != nil {
			return 0, 0, &StructuralError{Invariant: "I10", Locus: fmt.Sprintf("leaf id %d: %v", ref.id, err)}
		}

		if len(lf.keys) != len(lf.values) {
			return 0, 0, &StructuralError{
				Invariant: "I2",
				Locus:     fmt.Sprintf("leaf id %d: %d keys, %d values", ref.id, len(lf.keys), len(lf.values)),
			}
		}
		for i := 1; i < len(lf.keys); i++ {
			if cmp.Compare(lf.keys[i-1], lf.keys[i]) >= 0 {
				return 0, 0, &StructuralError{
					Invariant: "I1",
					Locus:     fmt.Sprintf("leaf id %d: keys not strictly increasing at index %d", ref.id, i),
				}
			}
		}
		for _, k := range lf.keys {
			if lo.has && cmp.Compare(k, lo.key) < 0 {
				return 0, 0, &StructuralError{Invariant: "I5", Locus: fmt.Sprintf("leaf id %d: key %v below lower bound %v", ref.id, k, lo.key)}
			}
			if hi.has && cmp.Compare(k, hi.key) >= 0 {
				return 0, 0, &StructuralError{Invariant: "I4", Locus: fmt.Sprintf("leaf id %d: key %v at/above upper bound %v", ref.id, k, hi.key)}
			}
		}
		if !isRoot && len(lf.keys) < t.capacity/2 {
			return 0, 0, &StructuralError{Invariant: "I7", Locus: fmt.Sprintf("leaf id %d: underfull with %d keys", ref.id, len(lf.keys))}
		}

		return depth, 1, nil
	}

	br, err := t.branches.Get(ref.id)
	if err != nil {
		return 0, 0, &StructuralError{Invariant: "I10", Locus: fmt.Sprintf("branch id %d: %v", ref.id, err)}
	}

	if len(br.children) != len(br.keys)+1 {
		return 0, 0, &StructuralError{
			Invariant: "I3",
			Locus:     fmt.Sprintf("branch id %d: %d children, %d keys", ref.id, len(br.children), len(br.keys)),
		}
	}
	if isRoot && len(br.keys) < 1 {
		return 0, 0, &StructuralError{Invariant: "I7", Locus: fmt.Sprintf("branch id %d: root branch has no separators", ref.id)}
	}
	if !isRoot && len(br.keys) < t.capacity/2 {
		return 0, 0, &StructuralError{Invariant: "I7", Locus: fmt.Sprintf("branch id %d: underfull with %d keys", ref.id, len(br.keys))}
	}

	var childLeafDepth, totalLeaves int
	for i, child := range br.children {
		childLo, childHi := lo, hi
		if i > 0 {
			childLo = checkBound[K]{has: true, key: br.keys[i-1]}
		}
		if i < len(br.keys) {
			childHi = checkBound[K]{has: true, key: br.keys[i]}
		}

		d, leaves, cerr := t.checkNode(child, depth+1, childLo, childHi, false)
		if cerr != nil {
			return 0, 0, cerr
		}
		if i == 0 {
			childLeafDepth = d
		} else if d != childLeafDepth {
			return 0, 0, &StructuralError{
				Invariant: "I6",
				Locus:     fmt.Sprintf("branch id %d: child %d has leaf depth %d, sibling has %d", ref.id, i, d, childLeafDepth),
			}
		}
		totalLeaves += leaves
	}

	return childLeafDepth, totalLeaves, nil
}

// checkLeafChain walks the leaf chain from the leftmost leaf, verifying
// I8 (ascending order, terminates at NULL) and I9 (no cycles, all next
// identifiers live). It returns the number of leaves visited.
func (t *Tree[K, V]) checkLeafChain() (int, error) {
	id := t.leftmostLeaf()
	visited := make(map[arena.ID]bool)
	var count int
	var prevLastKey *K

	for {
		if id == arena.NullID {
			return count, nil
		}
		if visited[id] {
			return 0, &StructuralError{Invariant: "I9", Locus: fmt.Sprintf("leaf chain revisits id %d: cycle detected", id)}
		}
		visited[id] = true
		count++

		lf, err := t.leaves.Get(id)
		if err != nil {
			return 0, &StructuralError{Invariant: "I9", Locus: fmt.Sprintf("leaf chain: next id %d is not live: %v", id, err)}
		}

		if len(lf.keys) > 0 {
			if prevLastKey != nil && cmp.Compare(*prevLastKey, lf.keys[0]) >= 0 {
				return 0, &StructuralError{
					Invariant: "I8",
					Locus:     fmt.Sprintf("leaf chain: leaf id %d does not continue in ascending order", id),
				}
			}
			last := lf.keys[len(lf.keys)-1]
			prevLastKey = &last
		}

		id = lf.next
	}
}
