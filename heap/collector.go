package heap

import "github.com/prometheus/client_golang/prometheus"

// StatsSource is anything that reports allocator statistics.
type StatsSource interface {
	Stats() Stats
}

// Collector exports allocator statistics as prometheus metrics.
type Collector struct {
	src         StatsSource
	liveBlocks  *prometheus.Desc
	liveBytes   *prometheus.Desc
	heapBytes   *prometheus.Desc
	allocsTotal *prometheus.Desc
	freesTotal  *prometheus.Desc
}

// NewCollector creates a collector over src. constLabels distinguish
// several heaps registered with the same registry.
func NewCollector(src StatsSource, constLabels prometheus.Labels) *Collector {
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName("hermes", "heap", name), help, nil, constLabels)
	}
	return &Collector{
		src:         src,
		liveBlocks:  desc("live_allocations", "Number of live allocations"),
		liveBytes:   desc("live_bytes", "Bytes held by live allocations"),
		heapBytes:   desc("size_bytes", "Bytes between the heap base and its top"),
		allocsTotal: desc("allocations_total", "Total allocations"),
		freesTotal:  desc("frees_total", "Total frees"),
	}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.liveBlocks
	ch <- c.liveBytes
	ch <- c.heapBytes
	ch <- c.allocsTotal
	ch <- c.freesTotal
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	s := c.src.Stats()
	ch <- prometheus.MustNewConstMetric(c.liveBlocks, prometheus.GaugeValue, float64(s.LiveBlocks))
	ch <- prometheus.MustNewConstMetric(c.liveBytes, prometheus.GaugeValue, float64(s.LiveBytes))
	ch <- prometheus.MustNewConstMetric(c.heapBytes, prometheus.GaugeValue, float64(s.HeapBytes))
	ch <- prometheus.MustNewConstMetric(c.allocsTotal, prometheus.CounterValue, float64(s.Allocs))
	ch <- prometheus.MustNewConstMetric(c.freesTotal, prometheus.CounterValue, float64(s.Frees))
}
