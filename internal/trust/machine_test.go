package trust

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/alexanderramin/lumen/internal/cache"
	"github.com/alexanderramin/lumen/internal/repository"
	"github.com/alexanderramin/lumen/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMachine(t *testing.T, database repository.InteractionCounter) (*Machine, *cache.Registry) {
	t.Helper()
	reg, err := cache.NewRegistry(cache.DefaultNamespaces())
	require.NoError(t, err)
	return NewMachine(database, reg, nil), reg
}

func seed(t *testing.T, repo *repository.SQLiteUserRepo, count int) string {
	t.Helper()
	u, _, err := repo.GetOrCreateByPhone(context.Background(), testutil.NewTestUser("ana"))
	require.NoError(t, err)
	for i := 0; i < count; i++ {
		_, err := repo.IncrementInteractionCount(context.Background(), u.ID)
		require.NoError(t, err)
	}
	return u.ID
}

func TestRegisterInteraction_CrossesLevelBoundary(t *testing.T) {
	repo := repository.NewSQLiteUserRepo(testutil.NewTestDB(t))
	m, _ := newMachine(t, repo)
	ctx := context.Background()
	userID := seed(t, repo, 10)

	tr, err := m.RegisterInteraction(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, Level1, tr.OldLevel)
	assert.Equal(t, Level2, tr.NewLevel)
	assert.True(t, tr.LevelChanged)
	assert.Equal(t, 11, tr.InteractionCount)

	info, err := m.GetTrustInfo(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, Level2, info.Level)
	assert.Equal(t, "Estableciendo", info.Label)
	assert.Equal(t, 20, info.MessagesToNextLevel)
	assert.False(t, info.IsMaxLevel)

	tr, err = m.RegisterInteraction(ctx, userID)
	require.NoError(t, err)
	assert.False(t, tr.LevelChanged)
}

func TestGetTrustInfo_CachedUntilRegister(t *testing.T) {
	repo := repository.NewSQLiteUserRepo(testutil.NewTestDB(t))
	m, reg := newMachine(t, repo)
	ctx := context.Background()
	userID := seed(t, repo, 100)

	info, err := m.GetTrustInfo(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, Level4, info.Level)
	assert.Equal(t, 1, info.MessagesToNextLevel)

	// A write that bypasses the machine is not visible until invalidation.
	_, err = repo.IncrementInteractionCount(ctx, userID)
	require.NoError(t, err)
	info, err = m.GetTrustInfo(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 100, info.InteractionCount)

	_, err = m.RegisterInteraction(ctx, userID)
	require.NoError(t, err)
	info, err = m.GetTrustInfo(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 102, info.InteractionCount)
	assert.Equal(t, Level5, info.Level)
	assert.True(t, info.IsMaxLevel)
	assert.Equal(t, 0, info.MessagesToNextLevel)

	stats := reg.Stats()
	var trustStats cache.NamespaceStats
	for _, s := range stats.Namespaces {
		if s.Name == cache.TrustLevel {
			trustStats = s
		}
	}
	assert.Equal(t, uint64(1), trustStats.Hits)
	assert.Equal(t, uint64(2), trustStats.Misses)
}

func TestRegisterInteraction_DropsDependentEntries(t *testing.T) {
	repo := repository.NewSQLiteUserRepo(testutil.NewTestDB(t))
	m, reg := newMachine(t, repo)
	ctx := context.Background()
	userID := seed(t, repo, 3)

	for _, name := range []cache.Name{cache.ConversationSummaries, cache.Dashboard} {
		require.NoError(t, reg.Put(name, cache.Key(userID, "x"), 1))
		require.NoError(t, reg.Put(name, cache.Key("someone-else", "x"), 1))
	}

	tr, err := m.RegisterInteraction(ctx, userID)
	require.NoError(t, err)
	require.False(t, tr.LevelChanged)

	for _, name := range []cache.Name{cache.ConversationSummaries, cache.Dashboard} {
		_, ok, err := reg.Get(name, cache.Key(userID, "x"))
		require.NoError(t, err)
		assert.False(t, ok, "%s entry of the user survived", name)

		_, ok, err = reg.Get(name, cache.Key("someone-else", "x"))
		require.NoError(t, err)
		assert.True(t, ok, "%s entry of another user was dropped", name)
	}
}

func TestGetTrustInfo_CancelledCallerStillReads(t *testing.T) {
	repo := repository.NewSQLiteUserRepo(testutil.NewTestDB(t))
	m, _ := newMachine(t, repo)
	userID := seed(t, repo, 12)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	info, err := m.GetTrustInfo(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 12, info.InteractionCount)
	assert.Equal(t, Level2, info.Level)
}

func TestRegisterInteraction_UnknownUser(t *testing.T) {
	repo := repository.NewSQLiteUserRepo(testutil.NewTestDB(t))
	m, _ := newMachine(t, repo)

	_, err := m.RegisterInteraction(context.Background(), "nobody")
	require.Error(t, err)
	assert.True(t, errors.Is(err, repository.ErrNotFound))
}

func TestRegisterInteraction_ConcurrentSameUser(t *testing.T) {
	repo := repository.NewSQLiteUserRepo(testutil.NewFileTestDB(t))
	m, _ := newMachine(t, repo)
	ctx := context.Background()
	userID := seed(t, repo, 0)

	const workers, perWorker = 6, 10
	var wg sync.WaitGroup
	var mu sync.Mutex
	changes := 0
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				tr, err := m.RegisterInteraction(ctx, userID)
				if err != nil {
					t.Errorf("register: %v", err)
					return
				}
				if tr.LevelChanged {
					mu.Lock()
					changes++
					mu.Unlock()
				}
			}
		}()
	}
	wg.Wait()

	info, err := m.GetTrustInfo(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, workers*perWorker, info.InteractionCount)
	assert.Equal(t, Level3, info.Level)
	assert.Equal(t, 2, changes, "each boundary is crossed exactly once")
	assert.Equal(t, 0, m.locks.size())
}
