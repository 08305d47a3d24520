package pool

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/objpool/internal/buf"
	"github.com/joshuapare/objpool/pkg/types"
	"github.com/joshuapare/objpool/pool/verify"
)

// model tracks what every live block should contain.
type model struct {
	refs    map[types.Handle]int
	content map[types.Handle]byte
	size    map[types.Handle]int
}

func newModel() *model {
	return &model{
		refs:    make(map[types.Handle]int),
		content: make(map[types.Handle]byte),
		size:    make(map[types.Handle]int),
	}
}

func (m *model) live() []types.Handle {
	var out []types.Handle
	for h, r := range m.refs {
		if r > 0 {
			out = append(out, h)
		}
	}
	return out
}

func (m *model) any(rng *rand.Rand) (types.Handle, bool) {
	if len(m.refs) == 0 {
		return 0, false
	}
	i := rng.IntN(len(m.refs))
	for h := range m.refs {
		if i == 0 {
			return h, true
		}
		i--
	}
	return 0, false
}

// TestPool_RandomOperations drives the pool with a seeded random workload
// and compares it against a model after every step.
func TestPool_RandomOperations(t *testing.T) {
	for _, seed := range []uint64{1, 7, 42, 1234, 99991} {
		t.Run("", func(t *testing.T) {
			runRandom(t, seed, 2000)
		})
	}
}

func runRandom(t *testing.T, seed uint64, steps int) {
	const capacity = 64 << 10
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	p := newTestPool(t, capacity)
	m := newModel()
	var last types.Handle

	for step := range steps {
		switch op := rng.IntN(10); {
		case op < 4:
			size := 1 + rng.IntN(capacity/16)
			freeBefore := p.FreeOffset()
			h, err := p.Insert(size)
			if err != nil {
				require.ErrorIs(t, err, ErrNoSpace, "step %d", step)
				require.False(t, buf.Fits(p.FreeOffset(), size, capacity),
					"step %d: insert of %d refused with free=%d", step, size, p.FreeOffset())
				require.LessOrEqual(t, p.FreeOffset(), freeBefore)
				continue
			}
			require.Greater(t, h, last, "step %d", step)
			last = h
			b := byte(rng.Uint32())
			fill(t, p, h, b)
			m.refs[h] = 1
			m.content[h] = b
			m.size[h] = size

		case op < 6:
			if h, ok := m.any(rng); ok && m.refs[h] > 0 {
				p.AddReference(h)
				m.refs[h]++
			}

		case op < 9:
			if h, ok := m.any(rng); ok {
				p.DropReference(h)
				if m.refs[h] > 0 {
					m.refs[h]--
				}
			}

		default:
			st := p.Compact()
			require.NoError(t, verify.Packed(p.State()), "step %d", step)
			require.Equal(t, len(m.live()), st.Objects, "step %d", step)
			for h, r := range m.refs {
				if r == 0 {
					delete(m.refs, h)
					delete(m.content, h)
					delete(m.size, h)
				}
			}
		}

		require.NoError(t, p.Validate(), "step %d", step)
	}

	// Every live block still holds what was written to it.
	for _, h := range m.live() {
		info, ok := p.Lookup(h)
		require.True(t, ok, "handle %d lost", h)
		require.Equal(t, m.refs[h], info.RefCount)
		require.Equal(t, m.size[h], info.Size)
		requireFilled(t, p, h, m.content[h])
	}
}
