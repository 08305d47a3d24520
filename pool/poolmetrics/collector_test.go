package poolmetrics_test

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/objpool/pkg/types"
	"github.com/joshuapare/objpool/pool"
	"github.com/joshuapare/objpool/pool/poolmetrics"
)

type fixedSource types.Metrics

func (f fixedSource) Metrics() types.Metrics { return types.Metrics(f) }

func TestCollector_Count(t *testing.T) {
	c := poolmetrics.NewCollector(fixedSource{}, "test")
	// nine descriptors, records split into two series
	assert.Equal(t, 10, testutil.CollectAndCount(c))
}

func TestCollector_Values(t *testing.T) {
	src := fixedSource{
		Initialized:         true,
		Capacity:            1024,
		FreeOffset:          300,
		LiveBytes:           200,
		GarbageBytes:        100,
		LiveRecords:         2,
		GarbageRecords:      1,
		Compactions:         4,
		TotalCollectedBytes: 4096,
		Inserts:             9,
		InsertFailures:      1,
	}
	c := poolmetrics.NewCollector(src, "sessions")

	expected := `
# HELP objpool_free_offset_bytes Next unused byte of the active arena.
# TYPE objpool_free_offset_bytes gauge
objpool_free_offset_bytes{pool="sessions"} 300
# HELP objpool_records Registered blocks by state.
# TYPE objpool_records gauge
objpool_records{pool="sessions",state="garbage"} 1
objpool_records{pool="sessions",state="live"} 2
# HELP objpool_compactions_total Compactions run.
# TYPE objpool_compactions_total counter
objpool_compactions_total{pool="sessions"} 4
# HELP objpool_collected_bytes_total Bytes reclaimed by compaction.
# TYPE objpool_collected_bytes_total counter
objpool_collected_bytes_total{pool="sessions"} 4096
`
	require.NoError(t, testutil.CollectAndCompare(c, strings.NewReader(expected),
		"objpool_free_offset_bytes", "objpool_records",
		"objpool_compactions_total", "objpool_collected_bytes_total"))
}

func TestCollector_LivePool(t *testing.T) {
	sp := pool.NewSafe(pool.Options{Capacity: 1000})
	require.NoError(t, sp.Init())
	defer sp.Destroy()

	reg := prometheus.NewRegistry()
	reg.MustRegister(poolmetrics.NewCollector(sp, "live"))

	a, err := sp.Insert(600)
	require.NoError(t, err)
	_, err = sp.Insert(300)
	require.NoError(t, err)
	sp.DropReference(a)
	_, err = sp.Insert(600)
	require.NoError(t, err)

	families, err := reg.Gather()
	require.NoError(t, err)

	values := map[string]float64{}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			name := mf.GetName()
			for _, lp := range m.GetLabel() {
				if lp.GetName() == "state" {
					name += "/" + lp.GetValue()
				}
			}
			switch {
			case m.GetGauge() != nil:
				values[name] = m.GetGauge().GetValue()
			case m.GetCounter() != nil:
				values[name] = m.GetCounter().GetValue()
			}
		}
	}

	assert.Equal(t, 1000.0, values["objpool_capacity_bytes"])
	assert.Equal(t, 900.0, values["objpool_free_offset_bytes"])
	assert.Equal(t, 1.0, values["objpool_compactions_total"])
	assert.Equal(t, 600.0, values["objpool_collected_bytes_total"])
	assert.Equal(t, 3.0, values["objpool_inserts_total"])
	assert.Equal(t, 2.0, values["objpool_records/live"])
	assert.Equal(t, 0.0, values["objpool_records/garbage"])
}
