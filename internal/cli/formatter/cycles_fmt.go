package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/lumen/internal/analysis"
)

// FormatCycles renders the cyclical pattern report. now anchors the
// relative date of the low-mood forecast.
func FormatCycles(r *analysis.CycleReport, now time.Time) string {
	if !r.HasEnoughData {
		return RenderBox("Cycles", notEnoughData(r.DataPoints, r.MinRequired))
	}

	var b strings.Builder
	pairs := [][2]string{
		{"Samples", fmt.Sprintf("%d", r.DataPoints)},
		{"Predominant cycle", Bold(string(r.PredominantCycle))},
	}
	if r.NextLowMoodPrediction != nil {
		p := *r.NextLowMoodPrediction
		pairs = append(pairs, [2]string{"Next low mood", StyleRed.Render(Timestamp(p)) + " " + Dim(RelativeDateFrom(p, now))})
	}
	b.WriteString(RenderKV(pairs))

	b.WriteString("\n" + Header("Weekly") + "\n")
	b.WriteString(formatBuckets(r.Weekly))
	b.WriteString("\n" + Header("Daily") + "\n")
	b.WriteString(formatPeaks(r.Daily))
	if r.Monthly != nil {
		b.WriteString("\n" + Header("Monthly") + "\n")
		b.WriteString(formatBuckets(*r.Monthly))
	}

	if len(r.Causal) > 0 {
		b.WriteString("\n" + Header("Causal factors") + "\n")
		headers := []string{"EVENT", "OBSERVED", "TYPICAL", "IMPACT", "CONFIDENCE", "SEEN"}
		rows := make([][]string, 0, len(r.Causal))
		for _, c := range r.Causal {
			rows = append(rows, []string{
				Bold(c.Category),
				effectLabel(c.Observed),
				Dim(string(c.Typical)),
				fmt.Sprintf("%.2f", c.Impact),
				fmt.Sprintf("%.2f", c.Confidence),
				fmt.Sprintf("%d", c.Occurrences),
			})
		}
		b.WriteString(RenderTable(headers, rows))
	}

	if len(r.Recommendations) > 0 {
		b.WriteString("\n" + Header("Recommendations") + "\n")
		b.WriteString(Bullets(r.Recommendations))
	}
	b.WriteString(formatInsights(r.Insights))
	b.WriteString(formatWarnings(r.Warnings))
	return RenderBox("Cycles", b.String())
}

func formatBuckets(p analysis.Pattern) string {
	headers := []string{"SLOT", "AVG", "SAMPLES", ""}
	rows := make([][]string, 0, len(p.Buckets))
	for _, bk := range p.Buckets {
		if bk.Count == 0 {
			rows = append(rows, []string{Dim(bk.Label), Dim("--"), Dim("0"), ""})
			continue
		}
		rows = append(rows, []string{
			bk.Label,
			Mood(bk.AvgMood),
			fmt.Sprintf("%d", bk.Count),
			MoodStyle(bk.AvgMood).Render(strings.Repeat(filledBlock, int(bk.AvgMood))),
		})
	}
	return RenderTable(headers, rows) + Dim(fmt.Sprintf("variance %.2f", p.Variance)) + "\n"
}

// formatPeaks summarizes the 24 hourly buckets by their extremes only.
func formatPeaks(p analysis.Pattern) string {
	if p.Peak == nil || p.Trough == nil {
		return Dim("No hourly data.") + "\n"
	}
	return fmt.Sprintf("Best hour %s (%s)  Worst hour %s (%s)  %s\n",
		Bold(p.Peak.Label), Mood(p.Peak.AvgMood),
		Bold(p.Trough.Label), Mood(p.Trough.AvgMood),
		Dim(fmt.Sprintf("variance %.2f", p.Variance)))
}

func effectLabel(e analysis.Effect) string {
	switch e {
	case analysis.EffectImproves:
		return StyleGreen.Render("▲ " + string(e))
	case analysis.EffectWorsens:
		return StyleRed.Render("▼ " + string(e))
	default:
		return StyleDim.Render("● " + string(e))
	}
}

// FormatResilience renders crisis recovery metrics.
func FormatResilience(r *analysis.ResilienceReport) string {
	var b strings.Builder
	if r.OpenCrisisSince != nil {
		b.WriteString(StyleRed.Render("Low period in progress since "+Timestamp(*r.OpenCrisisSince)) + "\n\n")
	}
	if !r.HasEnoughData {
		b.WriteString(r.Reason + "\n")
		return RenderBox("Resilience", b.String())
	}

	b.WriteString(RenderKV([][2]string{
		{"Score", RenderScore(r.Score, 10)},
		{"Periods analyzed", fmt.Sprintf("%d", r.PeriodsAnalyzed)},
		{"Success rate", FormatPercent(r.SuccessRate)},
		{"Avg recovery", FormatDays(r.AvgRecoveryDays)},
		{"Fastest / slowest", FormatDays(r.FastestRecoveryDays) + " / " + FormatDays(r.SlowestRecoveryDays)},
	}))

	headers := []string{"START", "END", "LOWEST", "FINAL", "RECOVERY"}
	rows := make([][]string, 0, len(r.Periods))
	for _, p := range r.Periods {
		rows = append(rows, []string{
			Timestamp(p.Start),
			Timestamp(p.End),
			Mood(float64(p.LowestMood)),
			Mood(float64(p.FinalMood)),
			FormatDays(p.RecoveryDays),
		})
	}
	b.WriteString("\n" + RenderTable(headers, rows))

	if len(r.RecoveryStrategies) > 0 {
		b.WriteString("\n" + Header("What helped") + "\n")
		b.WriteString(Bullets(r.RecoveryStrategies))
	}
	b.WriteString(formatWarnings(r.Warnings))
	return RenderBox("Resilience", b.String())
}

// FormatProgress renders streaks and achievements.
func FormatProgress(r *analysis.ProgressReport) string {
	if !r.HasEnoughData {
		return RenderBox("Progress", "No mood samples in the last two weeks.\n")
	}

	var b strings.Builder
	streak := "no daily samples"
	if r.Streak.Days > 0 {
		kind := "difficult"
		style := StyleYellow
		if r.Streak.Positive {
			kind = "positive"
			style = StyleGreen
		}
		streak = style.Render(fmt.Sprintf("%d %s day(s)", r.Streak.Days, kind)) + " " + Dim("avg "+fmt.Sprintf("%.1f", r.Streak.AvgMood))
	}
	pairs := [][2]string{{"Current streak", streak}}
	if imp := r.Improvement; imp != nil {
		pairs = append(pairs, [2]string{"Last week vs before", fmt.Sprintf("%s → %s (%+.1f)", Mood(imp.Previous), Mood(imp.Recent), imp.Gain)})
	}
	if o := r.Overcome; o != nil {
		pairs = append(pairs, [2]string{"Recovered from", fmt.Sprintf("%s → %s → %s", Mood(o.Initial), Mood(o.Middle), Mood(o.Current))})
	}
	b.WriteString(RenderKV(pairs))

	if h := r.Highlight; h != nil {
		b.WriteString("\n" + StylePurple.Render("★ "+h.Text) + " " + Dim(fmt.Sprintf("(%d/10)", h.Significance)) + "\n")
	}
	return RenderBox("Progress", b.String())
}
