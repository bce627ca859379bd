package analysis_test

import (
	"testing"

	"github.com/alexanderramin/lumen/internal/analysis"
	"github.com/alexanderramin/lumen/internal/domain"
	"github.com/alexanderramin/lumen/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResilience_RecoveryPeriods(t *testing.T) {
	walk := testutil.NewTestHabit(uid, "caminar")
	meditate := testutil.NewTestHabit(uid, "meditar")
	read := testutil.NewTestHabit(uid, "leer")

	w := analysis.Window{
		UserID:  uid,
		Samples: testutil.DailyMoods(uid, testutil.Day(0), 8, 3, 2, 5, 7, 8, 4, 7),
		Completions: []domain.HabitCompletion{
			*testutil.NewTestCompletion(read, testutil.Day(0)),
			*testutil.NewTestCompletion(walk, testutil.Day(2)),
			*testutil.NewTestCompletion(meditate, testutil.Day(3)),
			*testutil.NewTestCompletion(walk, testutil.Day(6)),
		},
		Now: testutil.Day(8),
	}
	r := analysis.NewAnalyzer().Resilience(w)

	require.True(t, r.HasEnoughData)
	require.Len(t, r.Periods, 2)
	assert.Equal(t, 2, r.PeriodsAnalyzed)

	first := r.Periods[0]
	assert.True(t, testutil.Day(1).Equal(first.Start))
	assert.True(t, testutil.Day(4).Equal(first.End))
	assert.Equal(t, 2, first.LowestMood)
	assert.Equal(t, 7, first.FinalMood)
	assert.InDelta(t, 3.0, first.RecoveryDays, 1e-9)

	assert.InDelta(t, 2.0, r.AvgRecoveryDays, 1e-9)
	assert.InDelta(t, 1.0, r.FastestRecoveryDays, 1e-9)
	assert.InDelta(t, 3.0, r.SlowestRecoveryDays, 1e-9)
	assert.InDelta(t, 1.0, r.SuccessRate, 1e-9)
	assert.InDelta(t, 8.0, r.Score, 1e-9)
	assert.Equal(t, []string{"caminar", "meditar"}, r.RecoveryStrategies)
	assert.Nil(t, r.OpenCrisisSince)
}

func TestResilience_ScoreIsClamped(t *testing.T) {
	samples := testutil.DailyMoods(uid, testutil.Day(0), 3, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 8)
	r := analysis.NewAnalyzer().Resilience(analysis.Window{UserID: uid, Samples: samples, Now: testutil.Day(15)})

	require.True(t, r.HasEnoughData)
	assert.InDelta(t, 14.0, r.AvgRecoveryDays, 1e-9)
	assert.Equal(t, 0.0, r.Score)
}

func TestResilience_OpenCrisis(t *testing.T) {
	samples := testutil.DailyMoods(uid, testutil.Day(0), 3, 7, 6, 6, 4, 3)
	r := analysis.NewAnalyzer().Resilience(analysis.Window{UserID: uid, Samples: samples, Now: testutil.Day(6)})

	require.True(t, r.HasEnoughData)
	require.Len(t, r.Periods, 1)
	require.NotNil(t, r.OpenCrisisSince)
	assert.True(t, testutil.Day(4).Equal(*r.OpenCrisisSince))
}

func TestResilience_InsufficientData(t *testing.T) {
	a := analysis.NewAnalyzer()

	r := a.Resilience(analysis.Window{UserID: uid, Samples: testutil.DailyMoods(uid, testutil.Day(0), 3, 7), Now: testutil.Day(2)})
	assert.False(t, r.HasEnoughData)
	assert.NotEmpty(t, r.Reason)

	r = a.Resilience(analysis.Window{UserID: uid, Samples: testutil.DailyMoods(uid, testutil.Day(0), 8, 8, 7, 9, 8), Now: testutil.Day(5)})
	assert.False(t, r.HasEnoughData)
	assert.NotEmpty(t, r.Reason)
	assert.Empty(t, r.Periods)
}
