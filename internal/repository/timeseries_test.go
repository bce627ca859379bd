package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/lumen/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreTimeSeries_ReadsThroughRepos(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	user := seedUser(t, NewSQLiteUserRepo(database))
	moods := NewSQLiteMoodRepo(database)
	habits := NewSQLiteHabitRepo(database)
	completions := NewSQLiteCompletionRepo(database)

	h := testutil.NewTestHabit(user.ID, "dormir 8h")
	require.NoError(t, habits.Create(ctx, h))
	require.NoError(t, completions.Create(ctx, testutil.NewTestCompletion(h, testutil.Day(0))))
	for i := 0; i < 5; i++ {
		require.NoError(t, moods.Create(ctx, testutil.NewTestMood(user.ID, testutil.Day(i), 6)))
	}

	store := NewStoreTimeSeries(moods, completions, habits, 3)

	samples, err := store.GetMoodSamples(ctx, user.ID, testutil.Day(-1))
	require.NoError(t, err)
	assert.Len(t, samples, 3, "capped at maxSamples")

	comps, err := store.GetHabitCompletions(ctx, user.ID, testutil.Day(-1))
	require.NoError(t, err)
	assert.Len(t, comps, 1)

	active, err := store.ListActiveHabits(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "dormir 8h", active[0].Name)
}
