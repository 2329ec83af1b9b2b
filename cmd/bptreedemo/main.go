// Command bptreedemo exercises the bptree package end to end: it builds a
// small tree, looks up a key, scans a range, removes an entry, checks the
// invariants, and prints the resulting structure.
package main

import (
	"fmt"
	"log"

	bptree "bptree/tree"
)

func main() {
	tree, err := bptree.New[string, string](4)
	if err != nil {
		log.Fatalf("new tree: %v", err)
	}

	entries := []struct{ key, value string }{
		{"10", "pointer to 10"},
		{"11", "pointer to 11"},
		{"12", "pointer to 12"},
		{"120", "pointer to 120"},
		{"sa", "sahil"},
		{"11", "pointer to 11, revised"},
		{"1", "pointer to 1"},
	}

	for _, e := range entries {
		if old, existed := tree.Insert(e.key, e.value); existed {
			fmt.Printf("replaced %q: %q -> %q\n", e.key, old, e.value)
		}
	}

	if v, ok := tree.Get("sa"); ok {
		fmt.Println("sa ->", v)
	}

	fmt.Println("\nrange [\"1\", \"12\"]:")
	for it := tree.Range(bptree.Included("1"), bptree.Included("12")); it.Valid(); it.Next() {
		k, v := it.Item()
		fmt.Printf("  %s -> %s\n", k, v)
	}

	if _, ok := tree.Remove("120"); ok {
		fmt.Println("\nremoved \"120\"")
	}

	if err := tree.CheckInvariants(); err != nil {
		log.Fatalf("invariant check failed: %v", err)
	}

	fmt.Printf("\n%d entries, height %d:\n%s\n", tree.Len(), tree.Height(), tree)
}
