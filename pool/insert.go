package pool

import (
	"github.com/joshuapare/objpool/internal/buf"
	"github.com/joshuapare/objpool/pkg/types"
)

// Insert reserves size bytes and returns a new handle with a reference
// count of 1.
//
// If the block does not fit behind the free offset, Insert compacts first.
// If it still does not fit the result is NullHandle and ErrNoSpace, and
// nothing but the compaction has changed: no handle is consumed.
// A block that exactly fills the remaining space fits.
//
// Sizes must satisfy 0 < size < Capacity; anything else fails with
// ErrInvalidSize or ErrTooLarge without compacting.
func (p *Pool) Insert(size int) (types.Handle, error) {
	p.mustBeInitialized("Insert")

	switch {
	case size <= 0:
		p.insertFailures++
		p.log().Warn("insert rejected", "size", size, "err", ErrInvalidSize)
		return types.NullHandle, ErrInvalidSize
	case size >= p.opts.Capacity:
		p.insertFailures++
		p.log().Warn("insert rejected", "size", size, "capacity", p.opts.Capacity, "err", ErrTooLarge)
		return types.NullHandle, ErrTooLarge
	}

	if !buf.Fits(p.free, size, p.opts.Capacity) {
		p.compact()
	}
	if !buf.Fits(p.free, size, p.opts.Capacity) {
		p.insertFailures++
		p.log().Warn("insert failed", "size", size, "free_offset", p.free, "capacity", p.opts.Capacity, "err", ErrNoSpace)
		return types.NullHandle, ErrNoSpace
	}

	// Placement is taken after any compaction above.
	rec := &record{
		handle: p.next,
		size:   size,
		offset: p.free,
		refs:   1,
	}
	p.reg.link(rec)
	p.free += size
	p.next++
	p.inserts++

	p.log().Debug("insert", "handle", uint64(rec.handle), "size", size, "offset", rec.offset)
	p.checkInvariants("Insert")
	return rec.handle, nil
}
