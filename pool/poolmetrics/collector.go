// Package poolmetrics exposes pool statistics to Prometheus.
//
// The collector reads a fresh types.Metrics snapshot on every scrape, so it
// needs no hooks in the pool itself:
//
//	reg := prometheus.NewRegistry()
//	reg.MustRegister(poolmetrics.NewCollector(sp, "sessions"))
//
// Pass a *pool.SafePool when the pool is used from more than one goroutine;
// scrapes run on the HTTP server's goroutines.
package poolmetrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/joshuapare/objpool/pkg/types"
)

const namespace = "objpool"

// Source is anything that can report pool statistics. Both *pool.Pool and
// *pool.SafePool satisfy it.
type Source interface {
	Metrics() types.Metrics
}

type collector struct {
	src Source

	capacity       *prometheus.Desc
	freeOffset     *prometheus.Desc
	liveBytes      *prometheus.Desc
	garbageBytes   *prometheus.Desc
	records        *prometheus.Desc
	compactions    *prometheus.Desc
	collected      *prometheus.Desc
	inserts        *prometheus.Desc
	insertFailures *prometheus.Desc
}

// NewCollector creates a Prometheus collector for src. Every metric carries
// a constant pool label set to poolName.
func NewCollector(src Source, poolName string) prometheus.Collector {
	labels := prometheus.Labels{"pool": poolName}
	desc := func(name, help string, variable ...string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "", name), help, variable, labels)
	}
	return &collector{
		src:            src,
		capacity:       desc("capacity_bytes", "Size in bytes of each arena."),
		freeOffset:     desc("free_offset_bytes", "Next unused byte of the active arena."),
		liveBytes:      desc("live_bytes", "Bytes held by blocks with a positive reference count."),
		garbageBytes:   desc("garbage_bytes", "Bytes held by unreferenced blocks awaiting compaction."),
		records:        desc("records", "Registered blocks by state.", "state"),
		compactions:    desc("compactions_total", "Compactions run."),
		collected:      desc("collected_bytes_total", "Bytes reclaimed by compaction."),
		inserts:        desc("inserts_total", "Successful inserts."),
		insertFailures: desc("insert_failures_total", "Rejected inserts."),
	}
}

func (c *collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.capacity
	ch <- c.freeOffset
	ch <- c.liveBytes
	ch <- c.garbageBytes
	ch <- c.records
	ch <- c.compactions
	ch <- c.collected
	ch <- c.inserts
	ch <- c.insertFailures
}

func (c *collector) Collect(ch chan<- prometheus.Metric) {
	m := c.src.Metrics()

	gauge := func(d *prometheus.Desc, v float64, lv ...string) {
		ch <- prometheus.MustNewConstMetric(d, prometheus.GaugeValue, v, lv...)
	}
	counter := func(d *prometheus.Desc, v uint64) {
		ch <- prometheus.MustNewConstMetric(d, prometheus.CounterValue, float64(v))
	}

	gauge(c.capacity, float64(m.Capacity))
	gauge(c.freeOffset, float64(m.FreeOffset))
	gauge(c.liveBytes, float64(m.LiveBytes))
	gauge(c.garbageBytes, float64(m.GarbageBytes))
	gauge(c.records, float64(m.LiveRecords), "live")
	gauge(c.records, float64(m.GarbageRecords), "garbage")
	counter(c.compactions, m.Compactions)
	counter(c.collected, m.TotalCollectedBytes)
	counter(c.inserts, m.Inserts)
	counter(c.insertFailures, m.InsertFailures)
}

var _ prometheus.Collector = new(collector)
