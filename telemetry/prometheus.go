package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "poolkit"

// Collector is a prometheus.Collector reporting every pool in a Source.
type Collector struct {
	src Source

	idle     *prometheus.Desc
	capacity *prometheus.Desc
	totals   []*prometheus.Desc
}

// NewCollector returns a collector over src. Register it with a prometheus.Registerer.
func NewCollector(src Source) *Collector {
	labels := []string{"pool"}
	c := &Collector{
		src: src,
		idle: prometheus.NewDesc(prometheus.BuildFQName(namespace, "pool", "idle"),
			"Idle objects ready for acquire.", labels, nil),
		capacity: prometheus.NewDesc(prometheus.BuildFQName(namespace, "pool", "capacity"),
			"Maximum idle objects the pool retains.", labels, nil),
	}
	for _, ct := range counters {
		c.totals = append(c.totals, prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "pool", ct.name+"_total"), ct.help, labels, nil))
	}
	return c
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.idle
	ch <- c.capacity
	for _, d := range c.totals {
		ch <- d
	}
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	for _, s := range c.src.Snapshot() {
		ch <- prometheus.MustNewConstMetric(c.idle, prometheus.GaugeValue, float64(s.Idle), s.Name)
		ch <- prometheus.MustNewConstMetric(c.capacity, prometheus.GaugeValue, float64(s.Capacity), s.Name)
		for i, ct := range counters {
			ch <- prometheus.MustNewConstMetric(c.totals[i], prometheus.CounterValue, float64(ct.value(s)), s.Name)
		}
	}
}

var _ prometheus.Collector = (*Collector)(nil)
