package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/lumen/internal/analysis"
	"github.com/alexanderramin/lumen/internal/app"
	"github.com/alexanderramin/lumen/internal/cache"
	"github.com/alexanderramin/lumen/internal/db"
	"github.com/alexanderramin/lumen/internal/domain"
	"github.com/alexanderramin/lumen/internal/repository"
	"github.com/alexanderramin/lumen/internal/testutil"
	"github.com/alexanderramin/lumen/internal/trust"
)

const testDays = 30

type testEnv struct {
	db           *sql.DB
	cache        *cache.Registry
	users        *repository.SQLiteUserRepo
	moods        *repository.SQLiteMoodRepo
	completions  *repository.SQLiteCompletionRepo
	habitRepo    *repository.SQLiteHabitRepo
	correlations repository.CorrelationRepo

	userSvc   UserService
	habitSvc  HabitService
	ingest    IngestService
	analysis  AnalysisService
	insights  InsightService
	dashboard DashboardService
	trust     *trust.Machine
}

type envOption func(*testEnv)

func withCorrelationRepo(wrap func(repository.CorrelationRepo) repository.CorrelationRepo) envOption {
	return func(e *testEnv) {
		e.correlations = wrap(e.correlations)
	}
}

func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	reg, err := cache.NewRegistry(cache.DefaultNamespaces())
	require.NoError(t, err)

	e := &testEnv{
		db:           database,
		cache:        reg,
		users:        repository.NewSQLiteUserRepo(database),
		moods:        repository.NewSQLiteMoodRepo(database),
		completions:  repository.NewSQLiteCompletionRepo(database),
		habitRepo:    repository.NewSQLiteHabitRepo(database),
		correlations: repository.NewSQLiteCorrelationRepo(database),
	}
	for _, opt := range opts {
		opt(e)
	}

	store := repository.NewStoreTimeSeries(e.moods, e.completions, e.habitRepo, 2000)
	e.userSvc = NewUserService(e.users, db.NewSQLiteUnitOfWork(database), reg)
	e.habitSvc = NewHabitService(e.habitRepo, reg)
	e.ingest = NewIngestService(e.moods, e.completions, e.habitRepo, reg)
	e.analysis = NewAnalysisService(store, e.correlations, reg, analysis.NewAnalyzer(), testDays, nil)
	e.trust = trust.NewMachine(e.users, reg, nil)
	e.insights = NewInsightService(e.analysis, e.trust, reg)
	e.dashboard = NewDashboardService(e.analysis, e.trust, reg, testDays)
	return e
}

func (e *testEnv) user(t *testing.T) *domain.User {
	t.Helper()
	u, _, err := e.userSvc.Ensure(context.Background(), testutil.NewTestUser("ana").Phone, "Ana")
	require.NoError(t, err)
	return u
}

// seedHabitHistory logs fourteen walking days at mood 8 followed by six
// days without the habit at mood 4.
func (e *testEnv) seedHabitHistory(t *testing.T, userID string) *domain.Habit {
	t.Helper()
	ctx := context.Background()
	walk := &domain.Habit{UserID: userID, Name: "caminar", Category: domain.CategoryPhysical}
	require.NoError(t, e.habitSvc.Create(ctx, walk))

	for i := 0; i < 20; i++ {
		level := 8
		if i >= 14 {
			level = 4
		}
		require.NoError(t, e.ingest.LogMood(ctx, testutil.NewTestMood(userID, testutil.Day(i), level)))
		if i < 14 {
			require.NoError(t, e.ingest.LogCompletion(ctx, testutil.NewTestCompletion(walk, testutil.Day(i).Add(time.Hour))))
		}
	}
	return walk
}

func analysisAt(userID string, day int) app.AnalysisRequest {
	now := testutil.Day(day)
	return app.AnalysisRequest{UserID: userID, Days: testDays, Now: &now}
}

func nsStats(t *testing.T, reg *cache.Registry, name cache.Name) cache.NamespaceStats {
	t.Helper()
	for _, s := range reg.Stats().Namespaces {
		if s.Name == name {
			return s
		}
	}
	t.Fatalf("namespace %s not found", name)
	return cache.NamespaceStats{}
}
