package pool

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/joshuapare/objpool/internal/logger"
	"github.com/joshuapare/objpool/pkg/types"
	"github.com/joshuapare/objpool/pool/arena"
	"github.com/joshuapare/objpool/pool/verify"
)

// Pool is a handle-based object store over two compacting arenas.
// Not goroutine-safe; use SafePool for concurrent access.
type Pool struct {
	opts Options

	// Both arenas and the registry are non-nil exactly while the pool is
	// initialized.
	active   *arena.Arena
	inactive *arena.Arena
	reg      *registry

	free int          // next unused byte in the active arena
	next types.Handle // handle for the next successful insert
	gen  uint64       // bumped by compaction, Init and Destroy

	last    types.CompactStats
	hasLast bool

	inserts        uint64
	insertFailures uint64
	compactions    uint64
	collected      uint64
	unknownOps     uint64
	invalidOps     uint64
}

// New creates an uninitialized pool. Call Init before use.
func New(opts Options) *Pool {
	return &Pool{opts: opts.withDefaults()}
}

// Init allocates both arenas and resets the free offset and handle counter.
// It panics with ErrAlreadyInitialized if the pool is already initialized.
func (p *Pool) Init() error {
	if p.reg != nil {
		panic(fmt.Errorf("Init: %w", ErrAlreadyInitialized))
	}
	if p.opts.Capacity < types.MinCapacity {
		return fmt.Errorf("pool: capacity %d below minimum %d", p.opts.Capacity, types.MinCapacity)
	}

	a, err := arena.New(p.opts.Capacity, p.opts.Backing)
	if err != nil {
		return fmt.Errorf("pool: allocate arena: %w", err)
	}
	b, err := arena.New(p.opts.Capacity, p.opts.Backing)
	if err != nil {
		_ = a.Release()
		return fmt.Errorf("pool: allocate arena: %w", err)
	}

	p.active, p.inactive = a, b
	p.reg = newRegistry()
	p.free = 0
	p.next = 1
	p.gen++
	p.last, p.hasLast = types.CompactStats{}, false

	p.log().Debug("pool initialized", "capacity", p.opts.Capacity, "backing", string(p.opts.Backing))
	p.checkInvariants("Init")
	return nil
}

// Destroy drops every record, releases both arenas and returns the pool to
// the uninitialized state, ready for another Init. It panics with
// ErrNotInitialized if the pool is not initialized.
func (p *Pool) Destroy() error {
	p.mustBeInitialized("Destroy")

	records := p.reg.len()
	err := errors.Join(p.active.Release(), p.inactive.Release())

	p.active, p.inactive = nil, nil
	p.reg = nil
	p.free = 0
	p.next = 0
	p.gen++

	p.log().Debug("pool destroyed", "records", records)
	p.checkInvariants("Destroy")
	if err != nil {
		return fmt.Errorf("pool: release arenas: %w", err)
	}
	return nil
}

// Initialized reports whether the pool is between Init and Destroy.
func (p *Pool) Initialized() bool { return p.reg != nil }

// Capacity returns the size in bytes of each arena.
func (p *Pool) Capacity() int { return p.opts.Capacity }

// Generation returns the current view generation.
func (p *Pool) Generation() uint64 { return p.gen }

// FreeOffset returns the next unused byte of the active arena.
func (p *Pool) FreeOffset() int { return p.free }

// State returns the snapshot the verify package checks.
func (p *Pool) State() verify.State {
	s := verify.State{
		Initialized: p.reg != nil,
		Capacity:    p.opts.Capacity,
		FreeOffset:  p.free,
		NextHandle:  p.next,
	}
	if p.active != nil {
		s.ActiveCap = p.active.Cap()
	}
	if p.inactive != nil {
		s.InactiveCap = p.inactive.Cap()
	}
	if p.reg != nil {
		s.Blocks = p.reg.infos()
	}
	return s
}

// Validate runs every invariant check and returns the first violation.
func (p *Pool) Validate() error {
	return verify.AllInvariants(p.State())
}

func (p *Pool) log() *slog.Logger {
	if p.opts.Logger != nil {
		return p.opts.Logger
	}
	return logger.L
}

func (p *Pool) mustBeInitialized(op string) {
	if p.reg == nil {
		panic(fmt.Errorf("%s: %w", op, ErrNotInitialized))
	}
}

func (p *Pool) checksEnabled() bool {
	return debugInvariants || p.opts.CheckInvariants
}

func (p *Pool) checkInvariants(op string) {
	if !p.checksEnabled() {
		return
	}
	if err := verify.AllInvariants(p.State()); err != nil {
		panic(fmt.Errorf("%s: %w: %w", op, ErrInvariant, err))
	}
}
