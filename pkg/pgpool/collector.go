package pgpool

import "github.com/prometheus/client_golang/prometheus"

type collector struct {
	pool *Pool

	checkedOut *prometheus.Desc
	maxConns   *prometheus.Desc
	acquires   *prometheus.Desc
	releases   *prometheus.Desc
	exhausted  *prometheus.Desc
}

// NewCollector exposes the pool counters as Prometheus metrics under the
// given namespace (e.g. clients_pool_checked_out).
func NewCollector(p *Pool, namespace string) prometheus.Collector {
	name := func(n string) string { return prometheus.BuildFQName(namespace, "pool", n) }
	return &collector{
		pool:       p,
		checkedOut: prometheus.NewDesc(name("checked_out"), "Connections currently checked out.", nil, nil),
		maxConns:   prometheus.NewDesc(name("max_conns"), "Maximum concurrent connections.", nil, nil),
		acquires:   prometheus.NewDesc(name("acquires_total"), "Successful connection checkouts.", nil, nil),
		releases:   prometheus.NewDesc(name("releases_total"), "Connections returned to the pool.", nil, nil),
		exhausted:  prometheus.NewDesc(name("exhausted_total"), "Checkouts that timed out waiting for a free connection.", nil, nil),
	}
}

func (c *collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.checkedOut
	ch <- c.maxConns
	ch <- c.acquires
	ch <- c.releases
	ch <- c.exhausted
}

func (c *collector) Collect(ch chan<- prometheus.Metric) {
	s := c.pool.Stats()
	ch <- prometheus.MustNewConstMetric(c.checkedOut, prometheus.GaugeValue, float64(s.CheckedOut))
	ch <- prometheus.MustNewConstMetric(c.maxConns, prometheus.GaugeValue, float64(s.MaxConns))
	ch <- prometheus.MustNewConstMetric(c.acquires, prometheus.CounterValue, float64(s.Acquires))
	ch <- prometheus.MustNewConstMetric(c.releases, prometheus.CounterValue, float64(s.Releases))
	ch <- prometheus.MustNewConstMetric(c.exhausted, prometheus.CounterValue, float64(s.Exhausted))
}
