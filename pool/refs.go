package pool

import (
	"github.com/joshuapare/objpool/internal/buf"
	"github.com/joshuapare/objpool/pkg/types"
)

// View is a borrowed reference to a block's bytes in the active arena.
// It is only good for the pool generation it was issued in.
type View struct {
	pool   *Pool
	handle types.Handle
	offset int
	size   int
	gen    uint64
}

// Handle returns the handle the view was retrieved for.
func (v View) Handle() types.Handle { return v.handle }

// Len returns the block size.
func (v View) Len() int { return v.size }

// Offset returns the block's offset in the active arena at retrieval time.
func (v View) Offset() int { return v.offset }

// Valid reports whether the view still points at the block's bytes.
func (v View) Valid() bool {
	return v.pool != nil && v.pool.reg != nil && v.gen == v.pool.gen
}

// Bytes returns the block's payload. The slice aliases the arena and must
// not be kept past the next compaction.
func (v View) Bytes() ([]byte, error) {
	if v.pool == nil {
		return nil, ErrNotFound
	}
	if !v.Valid() {
		return nil, ErrStaleView
	}
	return v.pool.active.Slice(v.offset, v.size)
}

// Retrieve looks up a live block. Unknown handles and blocks whose count
// has dropped to zero yield ErrNotFound and a zero View.
func (p *Pool) Retrieve(h types.Handle) (View, error) {
	p.mustBeInitialized("Retrieve")

	rec := p.reg.lookup(h)
	if rec == nil || rec.refs == 0 {
		p.log().Debug("retrieve miss", "handle", uint64(h))
		return View{}, ErrNotFound
	}
	return View{pool: p, handle: h, offset: rec.offset, size: rec.size, gen: p.gen}, nil
}

// Bytes is Retrieve followed by View.Bytes.
func (p *Pool) Bytes(h types.Handle) ([]byte, error) {
	v, err := p.Retrieve(h)
	if err != nil {
		return nil, err
	}
	return v.Bytes()
}

// Write copies data into the block at off.
func (p *Pool) Write(h types.Handle, off int, data []byte) error {
	b, err := p.Bytes(h)
	if err != nil {
		return err
	}
	dst, ok := buf.Slice(b, off, len(data))
	if !ok {
		return ErrOutOfRange
	}
	copy(dst, data)
	return nil
}

// AddReference increments the block's reference count. The null handle is
// reported and ignored; an unknown handle is ignored. A block at count zero
// that has not been collected yet is revived.
func (p *Pool) AddReference(h types.Handle) {
	p.mustBeInitialized("AddReference")

	if h == types.NullHandle {
		p.invalidOps++
		p.log().Warn("add reference to invalid handle", "handle", uint64(h))
		return
	}
	rec := p.reg.lookup(h)
	if rec == nil {
		p.unknownOps++
		p.log().Debug("add reference to unknown handle", "handle", uint64(h))
		return
	}
	rec.refs++
	p.checkInvariants("AddReference")
}

// DropReference decrements the block's reference count, never below zero.
// Reaching zero marks the block as garbage; its bytes are reclaimed by the
// next compaction. Unknown handles are ignored.
func (p *Pool) DropReference(h types.Handle) {
	p.mustBeInitialized("DropReference")

	rec := p.reg.lookup(h)
	if rec == nil {
		p.unknownOps++
		p.log().Debug("drop reference to unknown handle", "handle", uint64(h))
		return
	}
	if rec.refs > 0 {
		rec.refs--
	}
	p.checkInvariants("DropReference")
}
