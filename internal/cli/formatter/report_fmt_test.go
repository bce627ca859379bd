package formatter

import (
	"bytes"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/lumen/internal/analysis"
	"github.com/alexanderramin/lumen/internal/app"
	"github.com/alexanderramin/lumen/internal/cache"
	"github.com/alexanderramin/lumen/internal/trust"
)

var at = time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)

func TestFormatPatterns(t *testing.T) {
	r := &analysis.PatternReport{
		HasEnoughData: true,
		DataPoints:    20,
		MinRequired:   5,
		AverageMood:   6.8,
		MoodStability: 1.9,
		Correlations: []analysis.HabitCorrelation{{
			HabitName:      "caminar",
			Impact:         0.4,
			Confidence:     1,
			AvgMoodWith:    8,
			AvgMoodWithout: 4,
			Interpretation: analysis.WeaklyPositive,
		}},
		Insights: []analysis.Insight{{Kind: analysis.InsightCorrelation, Text: "caminar te sienta bien"}},
		Warnings: []analysis.Warning{{Ref: "m1", Reason: "zero timestamp"}},
	}
	out := plainText(FormatPatterns(r))
	assert.Contains(t, out, "PATTERNS")
	assert.Contains(t, out, "caminar")
	assert.Contains(t, out, "+0.40")
	assert.Contains(t, out, "weakly positive")
	assert.Contains(t, out, "caminar te sienta bien")
	assert.Contains(t, out, "1 record(s) skipped")
}

func TestFormatPatterns_NotEnoughData(t *testing.T) {
	out := plainText(FormatPatterns(&analysis.PatternReport{DataPoints: 3, MinRequired: 5}))
	assert.Contains(t, out, "3 of 5 mood samples")
}

func TestFormatCycles(t *testing.T) {
	next := at.AddDate(0, 0, 3)
	r := &analysis.CycleReport{
		HasEnoughData:         true,
		DataPoints:            21,
		PredominantCycle:      analysis.CycleWeekly,
		NextLowMoodPrediction: &next,
		Weekly: analysis.Pattern{Buckets: []analysis.Bucket{
			{Index: 0, Label: "Lunes", AvgMood: 3, Count: 3},
			{Index: 1, Label: "Martes", Count: 0},
		}},
		Causal: []analysis.CausalFactor{{
			Category: "ejercicio", Typical: analysis.EffectImproves, Observed: analysis.EffectImproves,
			Impact: 0.3, Confidence: 0.8, Occurrences: 2,
		}},
		Recommendations: []string{"Planifica algo agradable los Lunes"},
	}
	out := plainText(FormatCycles(r, at))
	assert.Contains(t, out, "weekly")
	assert.Contains(t, out, "In 3d")
	assert.Contains(t, out, "Lunes")
	assert.Contains(t, out, "ejercicio")
	assert.Contains(t, out, "Planifica algo agradable")
	assert.Contains(t, out, "No hourly data.")
}

func TestFormatResilience(t *testing.T) {
	r := &analysis.ResilienceReport{
		HasEnoughData:       true,
		Periods:             []analysis.CrisisPeriod{{Start: at, End: at.AddDate(0, 0, 2), LowestMood: 3, FinalMood: 7, RecoveryDays: 2}},
		PeriodsAnalyzed:     1,
		AvgRecoveryDays:     2,
		FastestRecoveryDays: 2,
		SlowestRecoveryDays: 2,
		SuccessRate:         1,
		Score:               8,
		RecoveryStrategies:  []string{"caminar"},
	}
	out := plainText(FormatResilience(r))
	assert.Contains(t, out, "8.0/10")
	assert.Contains(t, out, "100%")
	assert.Contains(t, out, "2d / 2d")
	assert.Contains(t, out, "caminar")

	open := at
	out = plainText(FormatResilience(&analysis.ResilienceReport{Reason: "no recovery yet", OpenCrisisSince: &open}))
	assert.Contains(t, out, "no recovery yet")
	assert.Contains(t, out, "Low period in progress since 2025-03-03 09:00")
}

func TestFormatProgress(t *testing.T) {
	r := &analysis.ProgressReport{
		HasEnoughData: true,
		Streak:        analysis.Streak{Days: 4, Positive: true, AvgMood: 8},
		Highlight:     &analysis.Achievement{Kind: analysis.AchievementStreak, Text: "4 días seguidos", Significance: 4},
	}
	out := plainText(FormatProgress(r))
	assert.Contains(t, out, "4 positive day(s)")
	assert.Contains(t, out, "★ 4 días seguidos")

	assert.Contains(t, plainText(FormatProgress(&analysis.ProgressReport{})), "No mood samples")
}

func TestFormatTrust(t *testing.T) {
	info := trust.Info{
		Level:               trust.Level2,
		InteractionCount:    11,
		MessagesToNextLevel: 20,
		Policy:              trust.PolicyFor(trust.Level2),
	}
	out := plainText(FormatTrust(info))
	assert.Contains(t, out, "L2 Estableciendo")
	assert.Contains(t, out, "20 message(s)")

	info.IsMaxLevel = true
	assert.Contains(t, plainText(FormatTrust(info)), "maximum level reached")
}

func TestFormatTransition(t *testing.T) {
	up := plainText(FormatTransition(trust.Transition{OldLevel: trust.Level1, NewLevel: trust.Level2, LevelChanged: true, InteractionCount: 11}))
	assert.Contains(t, up, "Level up!")
	assert.Contains(t, up, "L1 Conociendo → L2 Estableciendo")

	same := plainText(FormatTransition(trust.Transition{OldLevel: trust.Level1, NewLevel: trust.Level1, InteractionCount: 3}))
	assert.Equal(t, "Interaction #3 registered (L1 Conociendo)\n", same)
}

func TestFormatInsight(t *testing.T) {
	assert.Contains(t, plainText(FormatInsight(nil)), "Nothing worth mentioning")
	out := plainText(FormatInsight(&analysis.Insight{Kind: analysis.InsightSuggestion, Text: "sal a caminar", Score: 0.4, SampleCount: 20}))
	assert.Contains(t, out, "sal a caminar")
	assert.Contains(t, out, "suggestion · score 0.40 · 20 samples")
}

func TestFormatPromptSignal(t *testing.T) {
	s := &app.PromptSignal{TrustLevel: trust.Level1, Policy: trust.PolicyFor(trust.Level1)}
	out := plainText(FormatPromptSignal(s))
	assert.Contains(t, out, "PROMPT SIGNAL")
	assert.Contains(t, out, "none")
	assert.Contains(t, out, "AVOID")
}

func TestFormatCacheStats(t *testing.T) {
	reg, err := cache.NewRegistry(cache.DefaultNamespaces())
	require.NoError(t, err)
	require.NoError(t, reg.Put(cache.Cycles, cache.Key("u1", "cycles", "30"), 1))
	_, _, err = reg.Get(cache.Cycles, cache.Key("u1", "cycles", "30"))
	require.NoError(t, err)

	out := plainText(FormatCacheStats(reg.Stats()))
	assert.Contains(t, out, "cycles")
	assert.Contains(t, out, "30m0s")
	assert.Contains(t, out, "total")
}

func TestWritePrometheus(t *testing.T) {
	reg, err := cache.NewRegistry(cache.DefaultNamespaces())
	require.NoError(t, err)
	promReg := prometheus.NewRegistry()
	require.NoError(t, cache.NewCollector(reg).Register(promReg))

	var buf bytes.Buffer
	require.NoError(t, WritePrometheus(&buf, promReg))
	assert.Contains(t, buf.String(), "# TYPE lumen_cache_hits_total counter")
	assert.Contains(t, buf.String(), `lumen_cache_entries{namespace="dashboard"} 0`)
}
