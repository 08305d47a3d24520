// Package verify checks the structural invariants of a pool.
//
// # Overview
//
// The pool hands verify a State snapshot (capacity, free offset, handle
// counter and every registered block) and verify reports the first
// invariant that does not hold. The pool runs AllInvariants after every
// mutating operation in debug builds; tests call it directly.
//
// Validation categories:
//   - Lifecycle: arenas and registry exist together or not at all
//   - FreeOffset: 0 <= free offset <= capacity
//   - Records: sizes, bounds, reference counts, handle range and uniqueness
//   - Overlap: no two blocks share a byte, none extends past the free offset
//   - Packed: after compaction, blocks form a gap-free prefix in registry order
//
// # Quick Start
//
//	if err := verify.AllInvariants(p.State()); err != nil {
//	    t.Fatalf("pool corrupted: %v", err)
//	}
//
// # ValidationError
//
// All validation functions return *ValidationError on failure:
//
//	var verr *verify.ValidationError
//	if errors.As(err, &verr) {
//	    fmt.Printf("%s (handle %d): %s\n", verr.Type, verr.Handle, verr.Message)
//	}
package verify
