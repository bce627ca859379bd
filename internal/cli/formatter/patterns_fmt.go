package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/lumen/internal/analysis"
)

// FormatPatterns renders a correlation report.
func FormatPatterns(r *analysis.PatternReport) string {
	if !r.HasEnoughData {
		return RenderBox("Patterns", notEnoughData(r.DataPoints, r.MinRequired))
	}

	var b strings.Builder
	b.WriteString(RenderKV([][2]string{
		{"Samples", fmt.Sprintf("%d", r.DataPoints)},
		{"Average mood", Mood(r.AverageMood)},
		{"Stability (σ)", fmt.Sprintf("%.2f", r.MoodStability)},
	}))

	b.WriteString("\n")
	if len(r.Correlations) == 0 {
		b.WriteString(Dim("No habit moves your mood enough to report yet.") + "\n")
	} else {
		headers := []string{"HABIT", "IMPACT", "CONFIDENCE", "WITH", "WITHOUT", "READING"}
		rows := make([][]string, 0, len(r.Correlations))
		for _, c := range r.Correlations {
			rows = append(rows, []string{
				Bold(c.HabitName),
				Signed(c.Impact),
				RenderProgress(c.Confidence, 10),
				Mood(c.AvgMoodWith),
				Mood(c.AvgMoodWithout),
				InterpretationPill(c.Interpretation),
			})
		}
		b.WriteString(RenderTable(headers, rows))
	}

	if tp := r.TemporalPatterns; tp != nil {
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("Best day %s (%s)  Worst day %s (%s)\n",
			Bold(tp.Best.Name), Mood(tp.Best.AvgMood),
			Bold(tp.Worst.Name), Mood(tp.Worst.AvgMood)))
	}

	if len(r.EmotionalTriggers) > 0 {
		b.WriteString("\n" + Header("Triggers") + "\n")
		items := make([]string, 0, len(r.EmotionalTriggers))
		for _, t := range r.EmotionalTriggers {
			items = append(items, fmt.Sprintf("%s %s", t.Category, Dim(fmt.Sprintf("%d× (%.0f%%)", t.Occurrences, t.Percentage))))
		}
		b.WriteString(Bullets(items))
	}

	b.WriteString(formatInsights(r.Insights))
	b.WriteString(formatWarnings(r.Warnings))
	return RenderBox("Patterns", b.String())
}

func formatInsights(in []analysis.Insight) string {
	if len(in) == 0 {
		return ""
	}
	items := make([]string, 0, len(in))
	for _, i := range in {
		items = append(items, i.Text)
	}
	return "\n" + Header("Insights") + "\n" + Bullets(items)
}

func formatWarnings(ws []analysis.Warning) string {
	if len(ws) == 0 {
		return ""
	}
	return "\n" + StyleYellow.Render(fmt.Sprintf("%d record(s) skipped as invalid", len(ws))) + "\n"
}

func notEnoughData(have, need int) string {
	return fmt.Sprintf("Not enough data yet: %d of %d mood samples.\n", have, need)
}
