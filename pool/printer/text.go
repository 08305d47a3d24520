package printer

import "github.com/joshuapare/objpool/pkg/types"

func (p *Printer) printBlocksText(blocks []types.BlockInfo) error {
	if err := p.printf("%s\n", p.opts.Title); err != nil {
		return err
	}
	if len(blocks) == 0 {
		return p.printf("There are no objects currently in the pool\n")
	}
	for _, b := range blocks {
		state := "live"
		if !b.Live() {
			state = "garbage"
		}
		if err := p.printf("  handle %d  offset %d  size %d bytes  refs %d  (%s)\n",
			uint64(b.Handle), b.Offset, b.Size, b.RefCount, state); err != nil {
			return err
		}
	}
	return nil
}

func (p *Printer) printCompactionText(st types.CompactStats) error {
	return p.printf("Garbage collector statistics:\nobjects: %d  bytes in use: %d  bytes freed: %d\n",
		st.Objects, st.LiveBytes, st.CollectedBytes)
}

func (p *Printer) printMetricsText(m types.Metrics) error {
	if !m.Initialized {
		return p.printf("Pool not initialized\n")
	}
	lines := []struct {
		format string
		args   []any
	}{
		{"Capacity:        %d bytes\n", []any{m.Capacity}},
		{"Free offset:     %d bytes (%.1f%%)\n", []any{m.FreeOffset, m.Utilization * 100}},
		{"Records:         %d (%d live, %d garbage)\n", []any{m.Records, m.LiveRecords, m.GarbageRecords}},
		{"Live bytes:      %d\n", []any{m.LiveBytes}},
		{"Garbage bytes:   %d\n", []any{m.GarbageBytes}},
		{"Next handle:     %d\n", []any{uint64(m.NextHandle)}},
		{"Inserts:         %d (%d failed)\n", []any{m.Inserts, m.InsertFailures}},
		{"Compactions:     %d (%d bytes collected)\n", []any{m.Compactions, m.TotalCollectedBytes}},
		{"Unknown handles: %d\n", []any{m.UnknownHandleOps}},
		{"Invalid handles: %d\n", []any{m.InvalidHandleOps}},
	}
	for _, l := range lines {
		if err := p.printf(l.format, l.args...); err != nil {
			return err
		}
	}
	return nil
}
