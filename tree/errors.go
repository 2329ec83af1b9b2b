package bptree

import (
	"errors"
	"fmt"
)

// Error taxonomy per the spec's error handling design: absent keys produce
// (zero, false)/nil from query-style operations, never an error; these
// sentinels cover misuse and corruption instead.
var (
	// ErrInvalidCapacity is returned by New when capacity < 4.
	ErrInvalidCapacity = errors.New("bptree: invalid capacity")

	// ErrKeyNotFound is returned by the strict query variants (GetStrict,
	// RemoveStrict) when the key is absent. The default variants return an
	// optional value instead.
	ErrKeyNotFound = errors.New("bptree: key not found")

	// ErrInvalidNodeReference names a dereference of a stale or never-live
	// arena identifier. No function of this package returns it: tree
	// operations dereference through arena.MustGet, which panics with
	// arena.ErrInvalidNodeReference, and CheckInvariants reports such a
	// reference as an I10 StructuralError.
	ErrInvalidNodeReference = errors.New("bptree: invalid node reference")

	// ErrAllocationFailed names an arena's failure to grow during a split.
	// No function of this package returns it: Insert has no error result
	// and node allocation cannot fail short of the Go runtime running out
	// of memory.
	ErrAllocationFailed = errors.New("bptree: allocation failed")
)

// StructuralError reports a single violated structural invariant found by
// CheckInvariants, naming the invariant (e.g. "I6") and a human-readable
// locus describing where it was found.
type StructuralError struct {
	Invariant string
	Locus     string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("bptree: invariant %s violated: %s", e.Invariant, e.Locus)
}
