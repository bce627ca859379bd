package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/lumen/internal/app"
)

// FormatDashboard stacks every report of a dashboard response.
func FormatDashboard(d *app.DashboardResponse) string {
	var b strings.Builder
	b.WriteString(Header(fmt.Sprintf("Dashboard · last %d days", d.Days)) + "\n")
	b.WriteString(Dim("generated "+Timestamp(d.GeneratedAt)) + "\n\n")
	b.WriteString(FormatTrust(d.Trust))
	b.WriteString(FormatProgress(&d.Progress))
	b.WriteString(FormatPatterns(&d.Patterns))
	b.WriteString(FormatCycles(&d.Cycles, d.GeneratedAt))
	b.WriteString(FormatResilience(&d.Resilience))
	return b.String()
}
