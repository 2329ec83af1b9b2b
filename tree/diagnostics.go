package bptree

import (
	"fmt"
	"strings"
)

// String renders the tree in a hierarchical, human-readable form, useful
// for debugging and ad hoc inspection. It is not part of the
// ordered-map contract and its format is not stable across versions.
func (t *Tree[K, V]) String() string {
	var b strings.Builder
	t.writeNode(&b, t.root, "", true, true)
	return b.String()
}

func (t *Tree[K, V]) writeNode(b *strings.Builder, ref nodeRef, prefix string, isLast, isRoot bool) {
	connector := "├── "
	if isLast {
		connector = "└── "
	}

	if ref.isLeaf() {
		lf, err := t.leaves.Get(ref.id)
		if err != nil {
			fmt.Fprintf(b, "%s%sLEAF(invalid id %d)\n", prefix, connector, ref.id)
			return
		}
		label := "LEAF"
		if isRoot {
			label = "ROOT(leaf)"
		}
		fmt.Fprintf(b, "%s%s%s [", prefix, connector, label)
		for i, k := range lf.keys {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(b, "%v:%v", k, lf.values[i])
		}
		b.WriteString("]\n")
		return
	}

	br, err := t.branches.Get(ref.id)
	if err != nil {
		fmt.Fprintf(b, "%s%sBRANCH(invalid id %d)\n", prefix, connector, ref.id)
		return
	}
	label := "BRANCH"
	if isRoot {
		label = "ROOT"
	}
	fmt.Fprintf(b, "%s%s%s %v\n", prefix, connector, label, br.keys)

	childPrefix := prefix
	if isLast {
		childPrefix += "    "
	} else {
		childPrefix += "│   "
	}
	for i, child := range br.children {
		t.writeNode(b, child, childPrefix, i == len(br.children)-1, false)
	}
}
