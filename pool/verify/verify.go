package verify

import (
	"fmt"
	"slices"

	"github.com/joshuapare/objpool/internal/buf"
	"github.com/joshuapare/objpool/pkg/types"
)

// State is the snapshot of a pool that the checks run against.
type State struct {
	Initialized bool
	Capacity    int
	ActiveCap   int // capacity of the active arena, 0 when absent
	InactiveCap int // capacity of the inactive arena, 0 when absent
	FreeOffset  int
	NextHandle  types.Handle
	Blocks      []types.BlockInfo // registry order, head first
}

// ValidationError describes a single invariant violation.
type ValidationError struct {
	Type    string
	Message string
	Handle  types.Handle // offending block, NullHandle if N/A
	Details map[string]any
}

func (e *ValidationError) Error() string {
	if e.Handle != types.NullHandle {
		return fmt.Sprintf("%s at handle %d: %s", e.Type, e.Handle, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// AllInvariants validates every quiescent-state invariant in one call.
// Returns the first error encountered, or nil if all checks pass.
func AllInvariants(s State) error {
	if err := Lifecycle(s); err != nil {
		return err
	}
	if !s.Initialized {
		return nil
	}
	if err := FreeOffset(s); err != nil {
		return err
	}
	if err := Records(s); err != nil {
		return err
	}
	return Overlap(s)
}

// Lifecycle checks that the arenas and the registry exist together.
func Lifecycle(s State) error {
	if s.Initialized {
		if s.ActiveCap != s.Capacity || s.InactiveCap != s.Capacity {
			return &ValidationError{
				Type:    "Lifecycle",
				Message: fmt.Sprintf("arena capacity mismatch: active=%d inactive=%d want %d", s.ActiveCap, s.InactiveCap, s.Capacity),
			}
		}
		return nil
	}
	if s.ActiveCap != 0 || s.InactiveCap != 0 || len(s.Blocks) != 0 {
		return &ValidationError{
			Type:    "Lifecycle",
			Message: fmt.Sprintf("partially initialized: active=%d inactive=%d blocks=%d", s.ActiveCap, s.InactiveCap, len(s.Blocks)),
		}
	}
	return nil
}

// FreeOffset checks 0 <= free offset <= capacity.
func FreeOffset(s State) error {
	if s.FreeOffset < 0 || s.FreeOffset > s.Capacity {
		return &ValidationError{
			Type:    "FreeOffset",
			Message: fmt.Sprintf("free offset %d outside [0, %d]", s.FreeOffset, s.Capacity),
			Details: map[string]any{"free_offset": s.FreeOffset, "capacity": s.Capacity},
		}
	}
	return nil
}

// Records checks every block on its own: size range, arena bounds,
// reference count floor, handle range and handle uniqueness.
func Records(s State) error {
	seen := make(map[types.Handle]struct{}, len(s.Blocks))
	for _, b := range s.Blocks {
		if b.Handle == types.NullHandle || b.Handle >= s.NextHandle {
			return &ValidationError{
				Type:    "Records",
				Message: fmt.Sprintf("handle outside (0, %d)", s.NextHandle),
				Handle:  b.Handle,
			}
		}
		if _, dup := seen[b.Handle]; dup {
			return &ValidationError{
				Type:    "Records",
				Message: "handle linked twice",
				Handle:  b.Handle,
			}
		}
		seen[b.Handle] = struct{}{}

		if b.Size <= 0 || b.Size >= s.Capacity {
			return &ValidationError{
				Type:    "Records",
				Message: fmt.Sprintf("size %d outside (0, %d)", b.Size, s.Capacity),
				Handle:  b.Handle,
			}
		}
		if _, err := buf.CheckRange(s.Capacity, b.Offset, b.Size); err != nil {
			return &ValidationError{
				Type:    "Records",
				Message: err.Error(),
				Handle:  b.Handle,
				Details: map[string]any{"offset": b.Offset, "size": b.Size},
			}
		}
		if b.RefCount < 0 {
			return &ValidationError{
				Type:    "Records",
				Message: fmt.Sprintf("negative reference count %d", b.RefCount),
				Handle:  b.Handle,
			}
		}
	}
	return nil
}

// Overlap checks that no two blocks share a byte and that every block ends
// at or before the free offset.
func Overlap(s State) error {
	sorted := slices.Clone(s.Blocks)
	slices.SortFunc(sorted, func(a, b types.BlockInfo) int { return a.Offset - b.Offset })

	for i, b := range sorted {
		if b.End() > s.FreeOffset {
			return &ValidationError{
				Type:    "Overlap",
				Message: fmt.Sprintf("block ends at %d past free offset %d", b.End(), s.FreeOffset),
				Handle:  b.Handle,
			}
		}
		if i > 0 && sorted[i-1].End() > b.Offset {
			return &ValidationError{
				Type:    "Overlap",
				Message: fmt.Sprintf("overlaps handle %d: [%d,%d) vs [%d,%d)", sorted[i-1].Handle, sorted[i-1].Offset, sorted[i-1].End(), b.Offset, b.End()),
				Handle:  b.Handle,
			}
		}
	}
	return nil
}

// Packed checks the layout a compaction leaves behind: every block is live,
// blocks sit back to back from offset 0 in registry order, and the free
// offset equals the sum of their sizes.
func Packed(s State) error {
	next := 0
	for _, b := range s.Blocks {
		if !b.Live() {
			return &ValidationError{
				Type:    "Packed",
				Message: "garbage survived compaction",
				Handle:  b.Handle,
			}
		}
		if b.Offset != next {
			return &ValidationError{
				Type:    "Packed",
				Message: fmt.Sprintf("offset %d, expected %d", b.Offset, next),
				Handle:  b.Handle,
			}
		}
		next += b.Size
	}
	if next != s.FreeOffset {
		return &ValidationError{
			Type:    "Packed",
			Message: fmt.Sprintf("free offset %d, expected sum of sizes %d", s.FreeOffset, next),
			Details: map[string]any{"free_offset": s.FreeOffset, "live_bytes": next},
		}
	}
	return nil
}
