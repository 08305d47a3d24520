package pool

import (
	"slices"

	"github.com/joshuapare/objpool/pkg/types"
)

// record is the metadata of one block.
type record struct {
	handle types.Handle
	size   int
	offset int // into the active arena
	refs   int
}

func (r *record) info() types.BlockInfo {
	return types.BlockInfo{Handle: r.handle, Offset: r.offset, Size: r.size, RefCount: r.refs}
}

// registry is the set of linked records. The head is the newest record.
//
// records is stored oldest first so that linking at the head is an append;
// every walk goes from the end of the slice to the start.
type registry struct {
	records []*record // index 0 is the tail (oldest), the last element the head
	index   map[types.Handle]*record
}

func newRegistry() *registry {
	return &registry{index: make(map[types.Handle]*record)}
}

func (r *registry) len() int { return len(r.records) }

// link places rec at the head.
func (r *registry) link(rec *record) {
	r.records = append(r.records, rec)
	r.index[rec.handle] = rec
}

// lookup returns the record for h, live or garbage.
func (r *registry) lookup(h types.Handle) *record {
	return r.index[h]
}

// each visits records head to tail until fn returns false.
func (r *registry) each(fn func(*record) bool) {
	for i := len(r.records) - 1; i >= 0; i-- {
		if !fn(r.records[i]) {
			return
		}
	}
}

// sweep walks head to tail calling visit on every record and unlinks the
// records for which it returns false. Survivors keep their relative order.
func (r *registry) sweep(visit func(*record) bool) {
	kept := make([]*record, 0, len(r.records))
	r.each(func(rec *record) bool {
		if visit(rec) {
			kept = append(kept, rec)
		} else {
			delete(r.index, rec.handle)
		}
		return true
	})
	slices.Reverse(kept)
	r.records = kept
}

// infos returns every record in registry order.
func (r *registry) infos() []types.BlockInfo {
	out := make([]types.BlockInfo, 0, len(r.records))
	r.each(func(rec *record) bool {
		out = append(out, rec.info())
		return true
	})
	return out
}
