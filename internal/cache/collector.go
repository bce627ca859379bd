package cache

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Collector exports registry stats to Prometheus. Values are read from the
// registry on every scrape, so nothing is double counted.
//
// Metrics, all labelled by namespace:
//   - lumen_cache_hits_total
//   - lumen_cache_misses_total
//   - lumen_cache_invalidations_total
//   - lumen_cache_evictions_total
//   - lumen_cache_entries
//   - lumen_cache_max_entries
//   - lumen_cache_hit_ratio
type Collector struct {
	registry *Registry

	hits          *prometheus.Desc
	misses        *prometheus.Desc
	invalidations *prometheus.Desc
	evictions     *prometheus.Desc
	entries       *prometheus.Desc
	maxEntries    *prometheus.Desc
	hitRatio      *prometheus.Desc
}

// NewCollector creates a Collector reading from r.
func NewCollector(r *Registry) *Collector {
	labels := []string{"namespace"}
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName("lumen", "cache", name), help, labels, nil)
	}
	return &Collector{
		registry:      r,
		hits:          desc("hits_total", "Cache lookups served from a live entry."),
		misses:        desc("misses_total", "Cache lookups that found no live entry."),
		invalidations: desc("invalidations_total", "Explicit invalidations."),
		evictions:     desc("evictions_total", "Entries evicted to respect the size bound."),
		entries:       desc("entries", "Live entries."),
		maxEntries:    desc("max_entries", "Configured size bound."),
		hitRatio:      desc("hit_ratio", "Hits divided by lookups."),
	}
}

// Register adds the collector to reg.
func (c *Collector) Register(reg prometheus.Registerer) error {
	return reg.Register(c)
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.hits
	ch <- c.misses
	ch <- c.invalidations
	ch <- c.evictions
	ch <- c.entries
	ch <- c.maxEntries
	ch <- c.hitRatio
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	for _, s := range c.registry.Stats().Namespaces {
		ns := string(s.Name)
		ch <- prometheus.MustNewConstMetric(c.hits, prometheus.CounterValue, float64(s.Hits), ns)
		ch <- prometheus.MustNewConstMetric(c.misses, prometheus.CounterValue, float64(s.Misses), ns)
		ch <- prometheus.MustNewConstMetric(c.invalidations, prometheus.CounterValue, float64(s.Invalidations), ns)
		ch <- prometheus.MustNewConstMetric(c.evictions, prometheus.CounterValue, float64(s.Evictions), ns)
		ch <- prometheus.MustNewConstMetric(c.entries, prometheus.GaugeValue, float64(s.Size), ns)
		ch <- prometheus.MustNewConstMetric(c.maxEntries, prometheus.GaugeValue, float64(s.MaxSize), ns)
		ch <- prometheus.MustNewConstMetric(c.hitRatio, prometheus.GaugeValue, s.HitRate, ns)
	}
}
