package formatter

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/alexanderramin/lumen/internal/cache"
)

// FormatCacheStats renders per-namespace counters plus the aggregate row.
func FormatCacheStats(s cache.Stats) string {
	headers := []string{"NAMESPACE", "SIZE", "MAX", "TTL", "HITS", "MISSES", "INVALIDATED", "EVICTED", "HIT RATE"}
	rows := make([][]string, 0, len(s.Namespaces)+1)
	row := func(name string, ns cache.NamespaceStats) []string {
		ttl := ns.TTL.String()
		if ns.TTL == 0 {
			ttl = "--"
		}
		return []string{
			name,
			fmt.Sprintf("%d", ns.Size),
			fmt.Sprintf("%d", ns.MaxSize),
			ttl,
			fmt.Sprintf("%d", ns.Hits),
			fmt.Sprintf("%d", ns.Misses),
			fmt.Sprintf("%d", ns.Invalidations),
			fmt.Sprintf("%d", ns.Evictions),
			FormatPercent(ns.HitRate),
		}
	}
	for _, ns := range s.Namespaces {
		rows = append(rows, row(string(ns.Name), ns))
	}
	total := row("total", s.Aggregate)
	for i := range total {
		total[i] = Bold(total[i])
	}
	rows = append(rows, total)
	return RenderBox("Cache", RenderTable(headers, rows))
}

// WritePrometheus writes every metric family from g in the text
// exposition format.
func WritePrometheus(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("encoding %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
