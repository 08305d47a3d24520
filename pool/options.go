package pool

import (
	"log/slog"

	"github.com/joshuapare/objpool/pkg/types"
	"github.com/joshuapare/objpool/pool/arena"
)

// DefaultCapacity is the per-arena capacity used when Options.Capacity is zero.
const DefaultCapacity = types.DefaultCapacity

// Options configures a Pool.
type Options struct {
	// Capacity is the size in bytes of each of the two arenas.
	// Default: DefaultCapacity
	Capacity int

	// Backing selects heap or mmap storage for the arenas.
	// Default: arena.BackingHeap
	Backing arena.Backing

	// CheckInvariants runs verify.AllInvariants after every mutating
	// operation and panics on a violation.
	// Default: false (true in objpooldebug builds)
	CheckInvariants bool

	// Logger receives the pool's diagnostics.
	// Default: the process-wide logger (internal/logger.L)
	Logger *slog.Logger

	// OnCompact is called after every compaction with its statistics.
	OnCompact func(types.CompactStats)
}

func (o Options) withDefaults() Options {
	if o.Capacity <= 0 {
		o.Capacity = DefaultCapacity
	}
	if o.Backing == "" {
		o.Backing = arena.BackingHeap
	}
	return o
}
