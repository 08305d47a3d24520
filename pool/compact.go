package pool

import (
	"fmt"

	"github.com/joshuapare/objpool/pkg/types"
	"github.com/joshuapare/objpool/pool/arena"
	"github.com/joshuapare/objpool/pool/verify"
)

// Compact collects every block whose reference count is zero and packs the
// survivors, in registry order, at the start of the other arena. The arenas
// then swap roles and every outstanding View becomes stale.
//
// Insert calls this on its own when a block does not fit; calling it
// directly forces a collection.
func (p *Pool) Compact() types.CompactStats {
	p.mustBeInitialized("Compact")
	return p.compact()
}

func (p *Pool) compact() types.CompactStats {
	var st types.CompactStats
	dest := 0

	p.reg.sweep(func(rec *record) bool {
		if rec.refs == 0 {
			st.CollectedBytes += rec.size
			return false
		}
		if err := arena.Copy(p.inactive, p.active, dest, rec.offset, rec.size); err != nil {
			panic(fmt.Errorf("Compact: %w: handle %d: %w", ErrInvariant, rec.handle, err))
		}
		rec.offset = dest
		dest += rec.size
		st.Objects++
		st.LiveBytes += rec.size
		return true
	})

	// The old active arena is stale now; the next compaction overwrites it.
	p.active, p.inactive = p.inactive, p.active
	p.free = dest
	p.gen++

	p.compactions++
	p.collected += uint64(st.CollectedBytes)
	p.last, p.hasLast = st, true

	p.log().Info("compaction complete",
		"objects", st.Objects,
		"live_bytes", st.LiveBytes,
		"collected_bytes", st.CollectedBytes,
		"generation", p.gen)

	if p.checksEnabled() {
		s := p.State()
		if err := verify.AllInvariants(s); err != nil {
			panic(fmt.Errorf("Compact: %w: %w", ErrInvariant, err))
		}
		if err := verify.Packed(s); err != nil {
			panic(fmt.Errorf("Compact: %w: %w", ErrInvariant, err))
		}
	}
	if p.opts.OnCompact != nil {
		p.opts.OnCompact(st)
	}
	return st
}
