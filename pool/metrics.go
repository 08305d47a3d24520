package pool

import "github.com/joshuapare/objpool/pkg/types"

// Metrics returns a snapshot of pool statistics. It is safe to call on an
// uninitialized pool; the cumulative counters survive Destroy.
func (p *Pool) Metrics() types.Metrics {
	m := types.Metrics{
		Initialized:         p.reg != nil,
		Capacity:            p.opts.Capacity,
		FreeOffset:          p.free,
		NextHandle:          p.next,
		Generation:          p.gen,
		Inserts:             p.inserts,
		InsertFailures:      p.insertFailures,
		Compactions:         p.compactions,
		TotalCollectedBytes: p.collected,
		UnknownHandleOps:    p.unknownOps,
		InvalidHandleOps:    p.invalidOps,
	}
	if p.reg == nil {
		return m
	}

	m.Records = p.reg.len()
	p.reg.each(func(rec *record) bool {
		if rec.refs > 0 {
			m.LiveRecords++
			m.LiveBytes += rec.size
		} else {
			m.GarbageRecords++
			m.GarbageBytes += rec.size
		}
		return true
	})
	if m.Capacity > 0 {
		m.Utilization = float64(m.FreeOffset) / float64(m.Capacity)
	}
	return m
}

// LastCompaction returns the statistics of the most recent compaction in
// the current lifetime of the pool.
func (p *Pool) LastCompaction() (types.CompactStats, bool) {
	return p.last, p.hasLast
}
