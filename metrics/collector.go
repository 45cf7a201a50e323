// Package metrics exposes the pipeline's pool, queue, and appender
// health as Prometheus metrics — a pull-based prometheus.Collector
// rather than the push/aggregate pattern the retrieval pack's own
// PrometheusReporter uses, since every number here is already held in an
// atomic counter or field the collector can read straight off the
// running Manager on each scrape; there is nothing to aggregate.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kdevops/pulselog/appender"
)

// Source is the subset of logger.Manager a Collector needs. Defined here
// rather than imported directly so this package never depends on logger,
// avoiding a cycle (logger/config already sit above metrics in the
// dependency graph described in DESIGN.md).
type Source interface {
	PoolSize() int
	PoolFree() int
	QueueLen() int64
	AllAppenders() []appender.Appender
	AllAppenderNames() []string
}

// Collector implements prometheus.Collector over a Source, read fresh on
// every Collect call.
type Collector struct {
	src Source

	poolSize   *prometheus.Desc
	poolFree   *prometheus.Desc
	queueDepth *prometheus.Desc
	appWritten *prometheus.Desc
	appFailed  *prometheus.Desc
	appQuar    *prometheus.Desc
	appStatus  *prometheus.Desc
}

// New returns a Collector reading live state from src. Register it with
// a prometheus.Registry (or prometheus.MustRegister for the default one)
// before serving promhttp.Handler().
func New(src Source) *Collector {
	return &Collector{
		src: src,
		poolSize: prometheus.NewDesc(
			"pulselog_pool_size", "Configured capacity of the buffer pool.", nil, nil),
		poolFree: prometheus.NewDesc(
			"pulselog_pool_free", "Buffers currently available for acquisition.", nil, nil),
		queueDepth: prometheus.NewDesc(
			"pulselog_queue_depth", "Records enqueued and not yet processed by the worker.", nil, nil),
		appWritten: prometheus.NewDesc(
			"pulselog_appender_written_total", "Successful write/flush/close/set-encoding calls through an appender's guard.", []string{"appender"}, nil),
		appFailed: prometheus.NewDesc(
			"pulselog_appender_failed_total", "Write/flush/close failures observed by an appender's guard.", []string{"appender"}, nil),
		appQuar: prometheus.NewDesc(
			"pulselog_appender_quarantined_total", "Calls skipped because an appender was quarantined.", []string{"appender"}, nil),
		appStatus: prometheus.NewDesc(
			"pulselog_appender_quarantined", "1 if an appender is currently quarantined, else 0.", []string{"appender"}, nil),
	}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.poolSize
	ch <- c.poolFree
	ch <- c.queueDepth
	ch <- c.appWritten
	ch <- c.appFailed
	ch <- c.appQuar
	ch <- c.appStatus
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(c.poolSize, prometheus.GaugeValue, float64(c.src.PoolSize()))
	ch <- prometheus.MustNewConstMetric(c.poolFree, prometheus.GaugeValue, float64(c.src.PoolFree()))
	ch <- prometheus.MustNewConstMetric(c.queueDepth, prometheus.GaugeValue, float64(c.src.QueueLen()))

	appenders := c.src.AllAppenders()
	names := c.src.AllAppenderNames()
	for i, a := range appenders {
		g, ok := a.(*appender.Guarded)
		if !ok {
			continue
		}
		label := appenderLabel(i, names)
		snap := g.Stats.GetSnapshot()
		ch <- prometheus.MustNewConstMetric(c.appWritten, prometheus.CounterValue, float64(snap.Written), label)
		ch <- prometheus.MustNewConstMetric(c.appFailed, prometheus.CounterValue, float64(snap.Failed), label)
		ch <- prometheus.MustNewConstMetric(c.appQuar, prometheus.CounterValue, float64(snap.Quarantined), label)
		quarantined := 0.0
		if g.Quarantined() {
			quarantined = 1.0
		}
		ch <- prometheus.MustNewConstMetric(c.appStatus, prometheus.GaugeValue, quarantined, label)
	}
}

// appenderLabel names an appender for its Prometheus label, falling back
// to its position in the live list if names and appenders are somehow
// out of sync (they shouldn't be — AllAppenderNames is index-aligned
// with AllAppenders by construction in resolver.build).
func appenderLabel(i int, names []string) string {
	if i < len(names) && names[i] != "" {
		return names[i]
	}
	return "appender-" + strconv.Itoa(i)
}
