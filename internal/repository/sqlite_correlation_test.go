package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/lumen/internal/domain"
	"github.com/alexanderramin/lumen/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCorrelationRepo_UpsertKeepsOneRowPerFactor(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	user := seedUser(t, NewSQLiteUserRepo(database))
	repo := NewSQLiteCorrelationRepo(database)

	c := &domain.Correlation{
		UserID: user.ID, FactorName: "ejercicio",
		Impact: 0.4, Confidence: 0.5, SampleCount: 10, ComputedAt: testutil.Day(0),
	}
	require.NoError(t, repo.Upsert(ctx, c))

	c.Impact = -0.35
	c.Confidence = 1
	c.ComputedAt = testutil.Day(1)
	require.NoError(t, repo.Upsert(ctx, c))

	require.NoError(t, repo.Upsert(ctx, &domain.Correlation{
		UserID: user.ID, FactorName: "leer",
		Impact: 0.6, Confidence: 0.7, SampleCount: 14, ComputedAt: testutil.Day(1),
	}))

	got, err := repo.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "leer", got[0].FactorName, "ordered by |impact|")
	assert.Equal(t, "ejercicio", got[1].FactorName)
	assert.InDelta(t, -0.35, got[1].Impact, 1e-9)
	assert.True(t, got[1].ComputedAt.Equal(testutil.Day(1)))

	require.NoError(t, repo.DeleteByUser(ctx, user.ID))
	got, err = repo.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCorrelationRepo_RejectsOutOfRangeImpact(t *testing.T) {
	database := testutil.NewTestDB(t)
	user := seedUser(t, NewSQLiteUserRepo(database))
	repo := NewSQLiteCorrelationRepo(database)

	err := repo.Upsert(context.Background(), &domain.Correlation{
		UserID: user.ID, FactorName: "x", Impact: 1.5, Confidence: 0.5, ComputedAt: testutil.Day(0),
	})
	assert.Error(t, err)
}
