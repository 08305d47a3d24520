// Package arena provides the fixed-capacity byte buffers that back a pool.
//
// An Arena never grows or shrinks. Every access is expressed as an
// (offset, length) pair and checked against the arena's capacity, so a bad
// offset produces an error instead of touching a neighbour's bytes.
//
// Two backings are available:
//
//   - BackingHeap: a plain Go byte slice.
//   - BackingMmap: an anonymous private mapping outside the Go heap
//     (Linux and the BSDs only). Large pools stay invisible to the garbage
//     collector this way.
package arena

import (
	"errors"
	"fmt"

	"github.com/joshuapare/objpool/internal/buf"
)

var (
	// ErrReleased indicates use of an arena after Release.
	ErrReleased = errors.New("arena: use after Release")

	// ErrOutOfBounds indicates an (offset, length) pair outside the arena.
	ErrOutOfBounds = errors.New("arena: range out of bounds")

	// ErrBadCapacity indicates a non-positive capacity.
	ErrBadCapacity = errors.New("arena: capacity must be positive")

	// ErrMmapUnsupported indicates BackingMmap was requested on a platform without it.
	ErrMmapUnsupported = errors.New("arena: mmap backing not supported on this platform")
)

// Backing selects where an arena's bytes live.
type Backing string

const (
	BackingHeap Backing = "heap"
	BackingMmap Backing = "mmap"
)

// ParseBacking maps a flag or config value to a Backing. The empty string
// selects BackingHeap.
func ParseBacking(s string) (Backing, error) {
	switch Backing(s) {
	case "", BackingHeap:
		return BackingHeap, nil
	case BackingMmap:
		return BackingMmap, nil
	default:
		return "", fmt.Errorf("arena: unknown backing %q (want heap or mmap)", s)
	}
}

// Arena is a fixed-capacity byte buffer. Not goroutine-safe.
type Arena struct {
	buf     []byte
	backing Backing
	release func([]byte) error
}

// New allocates an arena of exactly capacity bytes.
func New(capacity int, backing Backing) (*Arena, error) {
	if capacity <= 0 {
		return nil, ErrBadCapacity
	}
	switch backing {
	case "", BackingHeap:
		return &Arena{buf: make([]byte, capacity), backing: BackingHeap}, nil
	case BackingMmap:
		data, err := mapAnon(capacity)
		if err != nil {
			return nil, fmt.Errorf("arena: mmap %d bytes: %w", capacity, err)
		}
		return &Arena{buf: data, backing: BackingMmap, release: unmap}, nil
	default:
		return nil, fmt.Errorf("arena: unknown backing %q", backing)
	}
}

// Cap returns the arena's capacity in bytes, or 0 after Release.
func (a *Arena) Cap() int { return len(a.buf) }

// Backing reports where the arena's bytes live.
func (a *Arena) Backing() Backing { return a.backing }

// Released reports whether Release has been called.
func (a *Arena) Released() bool { return a.buf == nil }

// Slice returns the n bytes starting at off. The slice aliases the arena.
func (a *Arena) Slice(off, n int) ([]byte, error) {
	if a.buf == nil {
		return nil, ErrReleased
	}
	b, ok := buf.Slice(a.buf, off, n)
	if !ok {
		return nil, fmt.Errorf("%w: off=%d len=%d cap=%d", ErrOutOfBounds, off, n, len(a.buf))
	}
	return b, nil
}

// Release drops the arena's storage. Any subsequent access fails with
// ErrReleased. Releasing twice is a no-op.
func (a *Arena) Release() error {
	data := a.buf
	a.buf = nil
	if data == nil || a.release == nil {
		return nil
	}
	return a.release(data)
}

// Copy moves n bytes from src[srcOff:] to dst[dstOff:].
func Copy(dst, src *Arena, dstOff, srcOff, n int) error {
	from, err := src.Slice(srcOff, n)
	if err != nil {
		return fmt.Errorf("copy source: %w", err)
	}
	to, err := dst.Slice(dstOff, n)
	if err != nil {
		return fmt.Errorf("copy destination: %w", err)
	}
	copy(to, from)
	return nil
}
