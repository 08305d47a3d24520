// Package pool implements a handle-based object store with a compacting
// collector.
//
// # Overview
//
// A Pool hands out opaque handles for variable-size byte blocks. Each block
// carries a reference count; when the count reaches zero the block becomes
// garbage, but its bytes stay where they are until the next compaction.
// Handles stay valid across compactions even though the bytes move.
//
// Storage is two fixed-capacity arenas (see package arena). One is active
// and holds every block's bytes; the other is the target of the next
// compaction. A compaction walks the registry once, drops garbage records,
// copies survivors back to back into the inactive arena, then swaps the two
// roles. Compaction only runs when an insertion does not fit, or when a
// caller forces it with Compact.
//
// # Usage Example
//
//	p := pool.New(pool.Options{Capacity: 1 << 19})
//	if err := p.Init(); err != nil {
//	    return err
//	}
//	defer p.Destroy()
//
//	h, err := p.Insert(500)
//	if err != nil {
//	    return err // pool.ErrNoSpace, pool.ErrTooLarge, ...
//	}
//
//	v, err := p.Retrieve(h)
//	if err != nil {
//	    return err // pool.ErrNotFound
//	}
//	b, _ := v.Bytes()
//	copy(b, payload)
//
//	p.AddReference(h)
//	p.DropReference(h)
//	p.DropReference(h) // count 0: collected by the next compaction
//
// # Views
//
// Retrieve returns a View rather than a raw slice. A View remembers the
// pool generation it was issued in; the generation moves on every
// compaction and on Init/Destroy, after which View.Bytes reports
// ErrStaleView. Retrieve again to get the block's new location.
//
// # Errors
//
// Capacity exhaustion (ErrNoSpace, ErrTooLarge), bad sizes (ErrInvalidSize)
// and retrieval misses (ErrNotFound) are ordinary results. Lifecycle misuse
// (ErrNotInitialized, ErrAlreadyInitialized) and invariant violations
// (ErrInvariant) are caller or implementation bugs and panic.
//
// # Invariant Checking
//
// With Options.CheckInvariants set, or in binaries built with the
// objpooldebug tag, every mutating operation finishes by running
// verify.AllInvariants and panics on the first violation.
//
// # Thread Safety
//
// Pool is not thread-safe. SafePool wraps it with a mutex held across every
// operation, compaction included.
//
// # Related Packages
//
//   - github.com/joshuapare/objpool/pool/arena: Fixed-capacity backing buffers
//   - github.com/joshuapare/objpool/pool/verify: Invariant checks
//   - github.com/joshuapare/objpool/pool/printer: Dump and statistics output
//   - github.com/joshuapare/objpool/pool/poolmetrics: Prometheus collector
package pool
