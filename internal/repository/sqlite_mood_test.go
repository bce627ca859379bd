package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/lumen/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoodRepo_ListSince_OrdersAndFilters(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	user := seedUser(t, NewSQLiteUserRepo(database))
	repo := NewSQLiteMoodRepo(database)

	for i, lvl := range []int{5, 6, 7, 8} {
		require.NoError(t, repo.Create(ctx, testutil.NewTestMood(user.ID, testutil.Day(3-i), lvl)))
	}

	got, err := repo.ListSince(ctx, user.ID, testutil.Day(1), 0)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.True(t, got[0].Timestamp.Before(got[1].Timestamp))
	assert.Equal(t, 7, got[0].Level)
	assert.Equal(t, 5, got[2].Level)
}

func TestMoodRepo_ListSince_KeepsMostRecentWhenCapped(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	user := seedUser(t, NewSQLiteUserRepo(database))
	repo := NewSQLiteMoodRepo(database)

	for i := 0; i < 10; i++ {
		require.NoError(t, repo.Create(ctx, testutil.NewTestMood(user.ID, testutil.Day(i), i+1)))
	}

	got, err := repo.ListSince(ctx, user.ID, testutil.Day(-1), 3)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []int{8, 9, 10}, []int{got[0].Level, got[1].Level, got[2].Level})
}

func TestMoodRepo_SubSecondOrdering(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	user := seedUser(t, NewSQLiteUserRepo(database))
	repo := NewSQLiteMoodRepo(database)

	base := testutil.Day(0)
	require.NoError(t, repo.Create(ctx, testutil.NewTestMood(user.ID, base.Add(500_000_000), 2)))
	require.NoError(t, repo.Create(ctx, testutil.NewTestMood(user.ID, base, 1)))

	got, err := repo.ListSince(ctx, user.ID, base, 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].Level)
	assert.Equal(t, 2, got[1].Level)
}

func TestMoodRepo_DeleteByUser(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	user := seedUser(t, NewSQLiteUserRepo(database))
	repo := NewSQLiteMoodRepo(database)

	require.NoError(t, repo.Create(ctx, testutil.NewTestMood(user.ID, testutil.Day(0), 5)))
	require.NoError(t, repo.DeleteByUser(ctx, user.ID))

	got, err := repo.ListSince(ctx, user.ID, testutil.Day(-10), 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}
