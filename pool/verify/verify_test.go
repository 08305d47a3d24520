package verify

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/objpool/pkg/types"
)

func validState() State {
	return State{
		Initialized: true,
		Capacity:    1000,
		ActiveCap:   1000,
		InactiveCap: 1000,
		FreeOffset:  300,
		NextHandle:  4,
		Blocks: []types.BlockInfo{
			{Handle: 3, Offset: 200, Size: 100, RefCount: 1},
			{Handle: 2, Offset: 100, Size: 100, RefCount: 0},
			{Handle: 1, Offset: 0, Size: 100, RefCount: 2},
		},
	}
}

func requireType(t *testing.T, err error, typ string) *ValidationError {
	t.Helper()
	require.Error(t, err)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "expected *ValidationError, got %T", err)
	require.Equal(t, typ, verr.Type, "unexpected category: %v", err)
	return verr
}

func TestAllInvariants_Valid(t *testing.T) {
	require.NoError(t, AllInvariants(validState()))
}

func TestAllInvariants_Uninitialized(t *testing.T) {
	require.NoError(t, AllInvariants(State{Capacity: 1000}))
}

func TestLifecycle(t *testing.T) {
	s := State{Capacity: 1000, ActiveCap: 1000}
	requireType(t, AllInvariants(s), "Lifecycle")

	s = State{Capacity: 1000, Blocks: []types.BlockInfo{{Handle: 1, Size: 1}}}
	requireType(t, AllInvariants(s), "Lifecycle")

	s = validState()
	s.InactiveCap = 0
	requireType(t, AllInvariants(s), "Lifecycle")
}

func TestFreeOffset(t *testing.T) {
	s := validState()
	s.FreeOffset = 1001
	requireType(t, AllInvariants(s), "FreeOffset")

	s.FreeOffset = -1
	requireType(t, AllInvariants(s), "FreeOffset")
}

func TestRecords(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*State)
		handle types.Handle
	}{
		{"handle at counter", func(s *State) { s.Blocks[0].Handle = 4 }, 4},
		{"duplicate handle", func(s *State) { s.Blocks[1].Handle = 3 }, 3},
		{"zero size", func(s *State) { s.Blocks[0].Size = 0 }, 3},
		{"size equals capacity", func(s *State) { s.Blocks[2].Size = 1000 }, 1},
		{"past capacity", func(s *State) { s.Blocks[0].Offset = 950 }, 3},
		{"negative refs", func(s *State) { s.Blocks[1].RefCount = -1 }, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validState()
			tt.mutate(&s)
			verr := requireType(t, AllInvariants(s), "Records")
			assert.Equal(t, tt.handle, verr.Handle)
		})
	}

	t.Run("null handle", func(t *testing.T) {
		s := validState()
		s.Blocks[0].Handle = types.NullHandle
		requireType(t, Records(s), "Records")
	})
}

func TestOverlap(t *testing.T) {
	s := validState()
	s.Blocks[0].Offset = 150
	verr := requireType(t, AllInvariants(s), "Overlap")
	assert.Contains(t, verr.Error(), "overlaps handle 2")

	s = validState()
	s.FreeOffset = 250
	requireType(t, AllInvariants(s), "Overlap")
}

func TestPacked(t *testing.T) {
	s := State{
		Initialized: true,
		Capacity:    1000,
		FreeOffset:  150,
		NextHandle:  9,
		Blocks: []types.BlockInfo{
			{Handle: 8, Offset: 0, Size: 100, RefCount: 1},
			{Handle: 5, Offset: 100, Size: 50, RefCount: 3},
		},
	}
	require.NoError(t, Packed(s))

	gap := s
	gap.Blocks = []types.BlockInfo{s.Blocks[0], {Handle: 5, Offset: 110, Size: 50, RefCount: 3}}
	requireType(t, Packed(gap), "Packed")

	garbage := s
	garbage.Blocks = []types.BlockInfo{s.Blocks[0], {Handle: 5, Offset: 100, Size: 50, RefCount: 0}}
	requireType(t, Packed(garbage), "Packed")

	short := s
	short.FreeOffset = 200
	verr := requireType(t, Packed(short), "Packed")
	assert.Equal(t, 150, verr.Details["live_bytes"])
}

func TestValidationErrorString(t *testing.T) {
	err := &ValidationError{Type: "Records", Message: "bad", Handle: 7}
	assert.Equal(t, "Records at handle 7: bad", err.Error())

	err = &ValidationError{Type: "FreeOffset", Message: "bad"}
	assert.Equal(t, "FreeOffset: bad", err.Error())
}
