package pool

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/objpool/pkg/types"
)

// testCapacity is the 512 KiB arena most scenarios assume.
const testCapacity = 524288

// newTestPool returns an initialized pool with invariant checks on. The pool
// is destroyed at cleanup if the test left it initialized.
func newTestPool(t testing.TB, capacity int) *Pool {
	t.Helper()
	p := New(Options{Capacity: capacity, CheckInvariants: true})
	require.NoError(t, p.Init())
	t.Cleanup(func() {
		if p.Initialized() {
			require.NoError(t, p.Destroy())
		}
	})
	return p
}

// mustInsert inserts and fails the test on error.
func mustInsert(t testing.TB, p *Pool, size int) types.Handle {
	t.Helper()
	h, err := p.Insert(size)
	require.NoError(t, err, "Insert(%d)", size)
	require.NotEqual(t, types.NullHandle, h)
	return h
}

// requirePanicsWith runs fn and requires a panic whose value is an error
// matching target.
func requirePanicsWith(t *testing.T, target error, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected panic wrapping %v", target)
		err, ok := r.(error)
		require.True(t, ok, "panic value %v (%T) is not an error", r, r)
		require.True(t, errors.Is(err, target), "panic %v does not wrap %v", err, target)
	}()
	fn()
}

// blockHandles returns the handles of blocks in registry order.
func blockHandles(blocks []types.BlockInfo) []types.Handle {
	out := make([]types.Handle, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, b.Handle)
	}
	return out
}

// fill writes b to every byte of the block.
func fill(t testing.TB, p *Pool, h types.Handle, b byte) {
	t.Helper()
	data, err := p.Bytes(h)
	require.NoError(t, err)
	for i := range data {
		data[i] = b
	}
}

// requireFilled checks every byte of the block equals b.
func requireFilled(t testing.TB, p *Pool, h types.Handle, b byte) {
	t.Helper()
	data, err := p.Bytes(h)
	require.NoError(t, err)
	for i, got := range data {
		if got != b {
			require.Failf(t, "payload corrupted", "handle %d byte %d = %#x, want %#x", h, i, got, b)
		}
	}
}

// discardLogger returns a logger that drops everything.
func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
