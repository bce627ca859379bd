package analysis_test

import (
	"testing"

	"github.com/alexanderramin/lumen/internal/analysis"
	"github.com/alexanderramin/lumen/internal/domain"
	"github.com/alexanderramin/lumen/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgress_StreakResetsOnLowDay(t *testing.T) {
	a := analysis.NewAnalyzer()
	samples := testutil.DailyMoods(uid, testutil.Day(0), 8, 8, 7, 9, 8, 8, 7)

	r := a.Progress(analysis.Window{UserID: uid, Samples: samples, Now: testutil.Day(6)})
	require.True(t, r.HasEnoughData)
	assert.Equal(t, 7, r.Streak.Days)
	assert.True(t, r.Streak.Positive)
	assert.True(t, r.Streak.Significant)
	assert.Equal(t, 10, r.Streak.Significance)
	assert.True(t, testutil.Day(0).Equal(r.Streak.Since))
	require.NotNil(t, r.Highlight)
	assert.Equal(t, analysis.AchievementStreak, r.Highlight.Kind)

	samples = append(samples, *testutil.NewTestMood(uid, testutil.Day(7), 3))
	r = a.Progress(analysis.Window{UserID: uid, Samples: samples, Now: testutil.Day(7)})
	assert.Equal(t, 1, r.Streak.Days)
	assert.False(t, r.Streak.Positive)
	assert.False(t, r.Streak.Significant)
}

func TestProgress_StreakBreaksOnGap(t *testing.T) {
	samples := testutil.DailyMoods(uid, testutil.Day(0), 8, 8, 8)
	samples = append(samples, testutil.DailyMoods(uid, testutil.Day(5), 8, 8)...)

	r := analysis.NewAnalyzer().Progress(analysis.Window{UserID: uid, Samples: samples, Now: testutil.Day(6)})
	assert.Equal(t, 2, r.Streak.Days)
	assert.False(t, r.Streak.Significant)
}

func TestProgress_Improvement(t *testing.T) {
	samples := testutil.DailyMoods(uid, testutil.Day(0), 4, 4, 4, 4, 4, 4, 4, 7, 7, 7, 7, 7, 7, 7)
	r := analysis.NewAnalyzer().Progress(analysis.Window{UserID: uid, Samples: samples, Now: testutil.Day(14)})

	require.NotNil(t, r.Improvement)
	assert.InDelta(t, 4.0, r.Improvement.Previous, 1e-9)
	assert.InDelta(t, 7.0, r.Improvement.Recent, 1e-9)
	assert.InDelta(t, 3.0, r.Improvement.Gain, 1e-9)
	assert.Equal(t, 10, r.Improvement.Significance)
	require.NotNil(t, r.Highlight)
	assert.Equal(t, analysis.AchievementImprovement, r.Highlight.Kind, "ties keep improvement first")
}

func TestProgress_OvercomeDifficulty(t *testing.T) {
	samples := testutil.DailyMoods(uid, testutil.Day(0), 3, 3, 5, 6, 8, 8)
	r := analysis.NewAnalyzer().Progress(analysis.Window{UserID: uid, Samples: samples, Now: testutil.Day(5)})

	require.NotNil(t, r.Overcome)
	assert.InDelta(t, 3.0, r.Overcome.Initial, 1e-9)
	assert.InDelta(t, 5.5, r.Overcome.Middle, 1e-9)
	assert.InDelta(t, 8.0, r.Overcome.Current, 1e-9)
	assert.Equal(t, 10, r.Overcome.Significance)
	assert.Nil(t, r.Improvement)
	require.NotNil(t, r.Highlight)
	assert.Equal(t, analysis.AchievementOvercome, r.Highlight.Kind)
}

func TestProgress_NoSamples(t *testing.T) {
	r := analysis.NewAnalyzer().Progress(analysis.Window{UserID: uid, Samples: []domain.MoodSample{}, Now: testutil.Day(0)})
	assert.False(t, r.HasEnoughData)
	assert.Nil(t, r.Highlight)
}
