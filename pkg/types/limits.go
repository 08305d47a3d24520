package types

// ============================================================================
// Pool Limits
// ============================================================================

const (
	// DefaultCapacity is the size in bytes of each of a pool's two arenas
	// when no capacity is configured (512 KiB).
	DefaultCapacity = 1 << 19 // 524,288 bytes

	// MinCapacity is the smallest arena a pool accepts. A block must be
	// strictly smaller than the arena, so anything below 2 bytes could
	// never hold a single block.
	MinCapacity = 2
)
