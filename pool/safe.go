package pool

import (
	"io"
	"sync"

	"github.com/joshuapare/objpool/pkg/types"
)

// SafePool is a mutex-protected wrapper around Pool for concurrent access.
// The lock is held for the whole of every operation.
//
// There is no Retrieve: a View would escape the lock. Use Bytes (which
// copies) and Write instead.
type SafePool struct {
	mu sync.Mutex
	p  *Pool
}

// NewSafe creates an uninitialized thread-safe pool.
func NewSafe(opts Options) *SafePool {
	return &SafePool{p: New(opts)}
}

// Init thread-safely initializes the pool.
func (s *SafePool) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.p.Init()
}

// Destroy thread-safely destroys the pool.
func (s *SafePool) Destroy() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.p.Destroy()
}

// Initialized thread-safely reports whether the pool is initialized.
func (s *SafePool) Initialized() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.p.Initialized()
}

// Insert thread-safely inserts a block.
func (s *SafePool) Insert(size int) (types.Handle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.p.Insert(size)
}

// Bytes thread-safely returns a copy of the block's payload.
func (s *SafePool) Bytes(h types.Handle) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, err := s.p.Bytes(h)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out, nil
}

// Write thread-safely copies data into the block at off.
func (s *SafePool) Write(h types.Handle, off int, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.p.Write(h, off, data)
}

// AddReference thread-safely increments a reference count.
func (s *SafePool) AddReference(h types.Handle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.p.AddReference(h)
}

// DropReference thread-safely decrements a reference count.
func (s *SafePool) DropReference(h types.Handle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.p.DropReference(h)
}

// Compact thread-safely forces a compaction.
func (s *SafePool) Compact() types.CompactStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.p.Compact()
}

// Blocks thread-safely lists the registered blocks.
func (s *SafePool) Blocks() []types.BlockInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.p.Blocks()
}

// Lookup thread-safely describes one block.
func (s *SafePool) Lookup(h types.Handle) (types.BlockInfo, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.p.Lookup(h)
}

// Dump thread-safely writes the block listing to w.
func (s *SafePool) Dump(w io.Writer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.p.Dump(w)
}

// Metrics thread-safely returns a snapshot of pool statistics.
func (s *SafePool) Metrics() types.Metrics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.p.Metrics()
}

// Validate thread-safely runs every invariant check.
func (s *SafePool) Validate() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.p.Validate()
}
