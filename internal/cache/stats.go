package cache

import "time"

// NamespaceStats is a point-in-time snapshot of one namespace. HitRate is a
// ratio in [0,1].
type NamespaceStats struct {
	Name          Name
	Size          int
	MaxSize       int
	TTL           time.Duration
	Hits          uint64
	Misses        uint64
	Invalidations uint64
	Evictions     uint64
	HitRate       float64
}

type Stats struct {
	Namespaces []NamespaceStats
	Aggregate  NamespaceStats
}

func newNamespaceStats(name Name, cfg NamespaceConfig, size int, hits, misses, invalidations, evictions uint64) NamespaceStats {
	return NamespaceStats{
		Name:          name,
		Size:          size,
		MaxSize:       cfg.MaxSize,
		TTL:           cfg.TTL,
		Hits:          hits,
		Misses:        misses,
		Invalidations: invalidations,
		Evictions:     evictions,
		HitRate:       hitRate(hits, misses),
	}
}

func hitRate(hits, misses uint64) float64 {
	total := hits + misses
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total)
}
