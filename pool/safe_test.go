package pool

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/objpool/pkg/types"
)

func TestSafePool_Concurrent(t *testing.T) {
	sp := NewSafe(Options{Capacity: 1 << 20, CheckInvariants: true})
	require.NoError(t, sp.Init())
	defer sp.Destroy()

	const workers = 8
	const perWorker = 200

	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for w := range workers {
		wg.Add(1)
		go func(tag byte) {
			defer wg.Done()
			var kept []types.Handle
			for i := range perWorker {
				h, err := sp.Insert(64 + i%32)
				if err != nil {
					errs <- err
					return
				}
				payload := []byte{tag, byte(i)}
				if err := sp.Write(h, 0, payload); err != nil {
					errs <- err
					return
				}
				if i%4 == 0 {
					kept = append(kept, h)
					continue
				}
				sp.DropReference(h)
				if i%50 == 0 {
					sp.Compact()
				}
			}
			for _, h := range kept {
				got, err := sp.Bytes(h)
				if err != nil {
					errs <- err
					return
				}
				if got[0] != tag {
					errs <- assert.AnError
					return
				}
			}
		}(byte(w + 1))
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	require.NoError(t, sp.Validate())
	m := sp.Metrics()
	assert.Equal(t, uint64(workers*perWorker), m.Inserts)
	assert.Equal(t, workers*perWorker/4, m.LiveRecords)
}

func TestSafePool_BytesCopies(t *testing.T) {
	sp := NewSafe(Options{Capacity: 1000})
	require.NoError(t, sp.Init())
	defer sp.Destroy()

	h, err := sp.Insert(4)
	require.NoError(t, err)
	require.NoError(t, sp.Write(h, 0, []byte("abcd")))

	got, err := sp.Bytes(h)
	require.NoError(t, err)
	got[0] = 'z'

	again, err := sp.Bytes(h)
	require.NoError(t, err)
	assert.Equal(t, []byte("abcd"), again)

	info, ok := sp.Lookup(h)
	require.True(t, ok)
	assert.Equal(t, 4, info.Size)
	assert.Len(t, sp.Blocks(), 1)
}
