package pool

import "errors"

var (
	// ErrNoSpace indicates that a block did not fit even after compaction.
	ErrNoSpace = errors.New("pool: not enough space after compaction")

	// ErrTooLarge indicates a block at least as large as an arena.
	ErrTooLarge = errors.New("pool: block larger than arena")

	// ErrInvalidSize indicates a non-positive block size.
	ErrInvalidSize = errors.New("pool: block size must be positive")

	// ErrNotFound indicates an unknown handle or one whose block is garbage.
	ErrNotFound = errors.New("pool: no live block for handle")

	// ErrStaleView indicates a View used after the pool's generation moved on.
	ErrStaleView = errors.New("pool: view invalidated by compaction")

	// ErrOutOfRange indicates a write or read outside a block's payload.
	ErrOutOfRange = errors.New("pool: range outside block")

	// ErrNotInitialized is raised (by panic) when an operation runs on a pool
	// that has not been initialized or has been destroyed.
	ErrNotInitialized = errors.New("pool: not initialized")

	// ErrAlreadyInitialized is raised (by panic) when Init runs twice.
	ErrAlreadyInitialized = errors.New("pool: already initialized")

	// ErrInvariant is raised (by panic) when a debug invariant check fails.
	ErrInvariant = errors.New("pool: invariant violated")
)
