package types

import "strconv"

// Handle is an opaque, logical reference to a block. Handles survive
// compaction even though the block's bytes move.
type Handle uint64

// NullHandle means "no object". It is never issued for a live block.
const NullHandle Handle = 0

// IsNull reports whether h is the null sentinel.
func (h Handle) IsNull() bool { return h == NullHandle }

func (h Handle) String() string { return strconv.FormatUint(uint64(h), 10) }

// BlockInfo describes one registered block as seen by the dump.
type BlockInfo struct {
	Handle   Handle `json:"handle"`
	Offset   int    `json:"offset"`
	Size     int    `json:"size"`
	RefCount int    `json:"ref_count"`
}

// End returns the first byte past the block.
func (b BlockInfo) End() int { return b.Offset + b.Size }

// Live reports whether the block still has references.
func (b BlockInfo) Live() bool { return b.RefCount > 0 }

// CompactStats summarises a single compaction sweep.
type CompactStats struct {
	Objects        int `json:"objects"`         // surviving blocks
	LiveBytes      int `json:"live_bytes"`      // bytes copied forward
	CollectedBytes int `json:"collected_bytes"` // bytes of discarded garbage
}

// Metrics is a point-in-time snapshot of a pool.
type Metrics struct {
	Initialized bool `json:"initialized"`
	Capacity    int  `json:"capacity"`
	FreeOffset  int  `json:"free_offset"`

	Records        int `json:"records"`
	LiveRecords    int `json:"live_records"`
	GarbageRecords int `json:"garbage_records"`
	LiveBytes      int `json:"live_bytes"`
	GarbageBytes   int `json:"garbage_bytes"`

	NextHandle Handle `json:"next_handle"`
	Generation uint64 `json:"generation"`

	Inserts             uint64 `json:"inserts"`
	InsertFailures      uint64 `json:"insert_failures"`
	Compactions         uint64 `json:"compactions"`
	TotalCollectedBytes uint64 `json:"total_collected_bytes"`
	UnknownHandleOps    uint64 `json:"unknown_handle_ops"`
	InvalidHandleOps    uint64 `json:"invalid_handle_ops"`

	Utilization float64 `json:"utilization"` // FreeOffset / Capacity (0.0-1.0)
}
